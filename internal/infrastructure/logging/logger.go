// Package logging provides structured logging via log/slog, configured
// from the observability section of the application config.
package logging

import (
	"log/slog"
	"os"

	"github.com/praktijkdash/cashflow-backend/internal/infrastructure/config"
)

// NewLogger creates a structured logger based on config. Format "json"
// emits JSON lines; anything else uses the text handler.
func NewLogger(cfg config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

// NewLoggerWithSystem creates a logger with a system attribute, useful
// for scoping logs per subsystem (e.g. "api", "reconciliation").
func NewLoggerWithSystem(cfg config.LoggingConfig, system string) *slog.Logger {
	return NewLogger(cfg).With("system", system)
}
