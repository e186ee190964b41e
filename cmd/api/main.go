package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/praktijkdash/cashflow-backend/internal/api"
	"github.com/praktijkdash/cashflow-backend/internal/application/service"
	"github.com/praktijkdash/cashflow-backend/internal/domain/matcher"
	"github.com/praktijkdash/cashflow-backend/internal/infrastructure/config"
	"github.com/praktijkdash/cashflow-backend/internal/infrastructure/logging"
	"github.com/praktijkdash/cashflow-backend/internal/infrastructure/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	cfg := config.LoadOrEnvWithPath(*configPath)
	logger := logging.NewLogger(cfg.Observability.Logging)

	repo, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Error("failed to open storage", "error", err, "path", cfg.Storage.DatabasePath)
		os.Exit(1)
	}
	defer repo.Close()

	matchCfg := matcher.DefaultConfig()
	if cfg.Matching.AmountTolerance != "" {
		tol, err := decimal.NewFromString(cfg.Matching.AmountTolerance)
		if err != nil {
			logger.Error("invalid matching.amount_tolerance", "error", err, "value", cfg.Matching.AmountTolerance)
			os.Exit(1)
		}
		matchCfg.AmountTolerance = tol
	}
	if cfg.Matching.DateWindowDays > 0 {
		matchCfg.DateWindowDays = cfg.Matching.DateWindowDays
	}
	if cfg.Matching.DayOfMonthWindow > 0 {
		matchCfg.DayOfMonthWindow = cfg.Matching.DayOfMonthWindow
	}

	ledgerSvc := service.NewLedgerService(repo, logger)
	reconSvc := service.NewReconciliationService(repo, matcher.New(matchCfg), logger)
	forecastSvc := service.NewForecastService(repo, logger)

	server := api.NewServer(cfg, ledgerSvc, reconSvc, forecastSvc, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
			os.Exit(1)
		}
	}
}
