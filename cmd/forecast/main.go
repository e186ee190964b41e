// Command forecast prints the cashflow projection for the configured
// database. Useful for a quick look without starting the API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/praktijkdash/cashflow-backend/internal/application/service"
	"github.com/praktijkdash/cashflow-backend/internal/infrastructure/config"
	"github.com/praktijkdash/cashflow-backend/internal/infrastructure/logging"
	"github.com/praktijkdash/cashflow-backend/internal/infrastructure/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	days := flag.Int("days", 0, "forecast horizon in days (default from config)")
	verbose := flag.Bool("v", false, "print per-day expected payments")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.LoadOrEnvWithPath(*configPath)
	logger := logging.NewLogger(cfg.Observability.Logging)

	repo, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open storage: %v\n", err)
		os.Exit(1)
	}
	defer repo.Close()

	horizon := cfg.Forecast.DefaultHorizonDays
	if *days > 0 {
		horizon = *days
	}

	svc := service.NewForecastService(repo, logger)
	f, err := svc.ComputeForecast(context.Background(), horizon)
	if err != nil {
		fmt.Fprintf(os.Stderr, "forecast: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Current balance:    %10s\n", f.CurrentBalance.StringFixed(2))
	fmt.Printf("Expected income:    %10s\n", f.TotalExpectedIncome.StringFixed(2))
	fmt.Printf("Expected expenses:  %10s\n", f.TotalExpectedExpenses.StringFixed(2))
	fmt.Printf("Net expected:       %10s\n", f.NetExpected.StringFixed(2))
	fmt.Printf("Final balance:      %10s\n", f.FinalBalance.StringFixed(2))

	if *verbose {
		fmt.Println()
		for _, day := range f.Days {
			if len(day.Items) == 0 {
				continue
			}
			fmt.Printf("%s  balance %s\n", day.Date.Format("2006-01-02"), day.Balance.StringFixed(2))
			for _, item := range day.Items {
				fmt.Printf("    %-14s %10s  %s\n", item.Kind, item.Amount.StringFixed(2), item.Description)
			}
		}
	}
}
