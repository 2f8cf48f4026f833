package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"storefront/internal/catalog"
	"storefront/internal/config"
	accountrepo "storefront/internal/repository/account"
	"storefront/internal/repository/clientrec"
	ledgerrepo "storefront/internal/repository/ledger"
	accountsvc "storefront/internal/service/account"
	ledgersvc "storefront/internal/service/ledger"
	registrysvc "storefront/internal/service/registry"
	"storefront/internal/session"
	"storefront/internal/wsserver"
)

func main() {
	_ = godotenv.Load()

	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	cfg, err := config.FromEnv()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	cat, err := catalog.Load(cfg.DepartmentsDir, logger)
	if err != nil {
		logger.Fatalf("load catalog: %v", err)
	}
	logger.Printf("catalog loaded: %d items across %d departments", cat.Len(), len(cat.Departments()))

	accounts, err := accountsvc.New(accountrepo.NewCSV(cfg.LoginsPath), logger)
	if err != nil {
		logger.Fatalf("init account directory: %v", err)
	}
	registry, err := registrysvc.New(clientrec.NewCSV(cfg.ClientsDir, logger), cat, logger)
	if err != nil {
		logger.Fatalf("init client registry: %v", err)
	}
	ledger, err := ledgersvc.New(ledgerrepo.NewCSV(cfg.OrdersPath, logger), cat, registry, logger)
	if err != nil {
		logger.Fatalf("init order ledger: %v", err)
	}

	handler := session.New(accounts, registry, ledger, logger)

	logo, err := os.ReadFile(cfg.LogoPath)
	if err != nil {
		logger.Printf("logo not available (%v), init payload will carry an empty logo", err)
	}

	srv := wsserver.New(cfg.HTTPAddr, logger, wsserver.Deps{
		Handler: handler,
		Catalog: cat,
		Logo:    logo,
		Metrics: wsserver.NewMetrics(prometheus.DefaultRegisterer),
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
