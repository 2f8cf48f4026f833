package config

import (
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR,default=:8080"`
	DepartmentsDir  string        `env:"DEPARTMENTS_DIR,default=data/departments"`
	ClientsDir      string        `env:"CLIENTS_DIR,default=data/clients"`
	LoginsPath      string        `env:"LOGINS_PATH,default=data/logins.csv"`
	OrdersPath      string        `env:"ORDERS_PATH,default=data/orders.csv"`
	LogoPath        string        `env:"LOGO_PATH,default=data/logo.png"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}

// FromEnv builds Config with defaults, overridden by environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode env: %w", err)
	}
	return cfg, nil
}
