package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/praktijkdash/cashflow-backend/internal/api/handlers"
	"github.com/praktijkdash/cashflow-backend/internal/api/middleware"
	"github.com/praktijkdash/cashflow-backend/internal/application/service"
	"github.com/praktijkdash/cashflow-backend/internal/infrastructure/config"
)

// Server wires the HTTP layer around the application services.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer builds the gin engine, registers all routes and returns a
// server ready to Start.
func NewServer(
	cfg *config.Config,
	ledgerSvc *service.LedgerService,
	reconSvc *service.ReconciliationService,
	forecastSvc *service.ForecastService,
	logger *slog.Logger,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))

	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	engine.Use(cors.New(corsConfig))

	registerRoutes(engine, cfg, ledgerSvc, reconSvc, forecastSvc)

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:      engine,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

func registerRoutes(
	engine *gin.Engine,
	cfg *config.Config,
	ledgerSvc *service.LedgerService,
	reconSvc *service.ReconciliationService,
	forecastSvc *service.ForecastService,
) {
	health := handlers.NewHealthHandler()
	transactions := handlers.NewTransactionHandler(ledgerSvc)
	recon := handlers.NewReconciliationHandler(reconSvc)
	forecast := handlers.NewForecastHandler(forecastSvc, cfg.Forecast.DefaultHorizonDays)
	setup := handlers.NewSetupHandler(ledgerSvc)
	correcties := handlers.NewCorrectieHandler(ledgerSvc)
	cashflow := handlers.NewCashflowHandler(ledgerSvc)
	importer := handlers.NewImportHandler(ledgerSvc)

	engine.GET("/health", health.Health)

	apiGroup := engine.Group("/api")
	{
		apiGroup.POST("/transactions", transactions.Create)
		apiGroup.GET("/transactions", transactions.List)
		apiGroup.GET("/transactions/:id", transactions.Get)
		apiGroup.PUT("/transactions/:id", transactions.Update)
		apiGroup.DELETE("/transactions/:id", transactions.Delete)
		apiGroup.GET("/categories", transactions.Categories)
		apiGroup.GET("/categories/income", transactions.IncomeCategories)
		apiGroup.GET("/categories/expense", transactions.ExpenseCategories)

		apiGroup.GET("/bank-reconciliation/unmatched", recon.Unmatched)
		apiGroup.GET("/bank-reconciliation/suggestions/:id", recon.Suggestions)
		apiGroup.POST("/bank-reconciliation/match", recon.ConfirmMatch)
		apiGroup.POST("/bank-reconciliation/match-crediteur", recon.ConfirmCrediteurMatch)
		apiGroup.POST("/bank-reconciliation/classify", recon.Classify)
		apiGroup.GET("/vaste-kosten", recon.VasteKosten)
		apiGroup.GET("/variabele-kosten", recon.VariabeleKosten)

		apiGroup.GET("/cashflow-forecast", forecast.Forecast)
		apiGroup.GET("/verwachte-betalingen", forecast.VerwachteBetalingen)
		apiGroup.PUT("/forecast/line-items/:id", forecast.EditLineItem)
		apiGroup.DELETE("/forecast/line-items/:id", forecast.DeleteLineItem)

		apiGroup.POST("/crediteuren", setup.CreateCrediteur)
		apiGroup.GET("/crediteuren", setup.ListCrediteuren)
		apiGroup.DELETE("/crediteuren/:id", setup.DeleteCrediteur)
		apiGroup.POST("/verzekeraars", setup.CreateVerzekeraar)
		apiGroup.GET("/verzekeraars", setup.ListVerzekeraars)
		apiGroup.DELETE("/verzekeraars/:id", setup.DeleteVerzekeraar)
		apiGroup.POST("/bank-saldo", setup.CreateBankSaldo)
		apiGroup.GET("/bank-saldo", setup.ListBankSaldos)
		apiGroup.POST("/overige-omzet", setup.CreateOverigeOmzet)
		apiGroup.GET("/overige-omzet", setup.ListOverigeOmzet)

		apiGroup.POST("/correcties", correcties.Create)
		apiGroup.GET("/correcties", correcties.List)
		apiGroup.GET("/correcties/unmatched", correcties.ListUnmatched)
		apiGroup.GET("/correcties/suggestions/:id", correcties.Suggestions)
		apiGroup.DELETE("/correcties/:id", correcties.Delete)
		apiGroup.POST("/correcties/:id/match", correcties.Link)

		apiGroup.GET("/cashflow/daily/:date", cashflow.Daily)
		apiGroup.GET("/cashflow/summary", cashflow.Summary)

		apiGroup.POST("/import/bank", importer.ImportBankCSV)
	}
}

// Start begins serving requests. Blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info("starting http server", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.httpServer.Shutdown(ctx)
}
