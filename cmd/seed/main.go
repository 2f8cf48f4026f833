package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"storefront/internal/config"
	"storefront/internal/seed"
)

func main() {
	_ = godotenv.Load()

	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	cfg, err := config.FromEnv()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if err := seed.Apply(cfg.DepartmentsDir); err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Printf("sample departments written to %s", cfg.DepartmentsDir)
}
