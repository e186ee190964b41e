// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml), with ${ENV_VAR} expansion
//  2. Environment variables (fallback)
//
// Example usage:
//
//	cfg := config.LoadOrEnv()
//	dbPath := cfg.Storage.DatabasePath
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the entire application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Storage       StorageConfig       `yaml:"storage"`
	Matching      MatchingConfig      `yaml:"matching"`
	Forecast      ForecastConfig      `yaml:"forecast"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// StorageConfig holds database configuration.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// MatchingConfig holds reconciliation matcher settings.
type MatchingConfig struct {
	// AmountTolerance admits near-amount crediteur matches; "0" means
	// exact-cent only. Parsed as a decimal string.
	AmountTolerance string `yaml:"amount_tolerance"`

	// DateWindowDays is the date window for partial date credit.
	DateWindowDays int `yaml:"date_window_days"`

	// DayOfMonthWindow is the payment-day window for crediteuren.
	DayOfMonthWindow int `yaml:"day_of_month_window"`
}

// ForecastConfig holds forecast defaults.
type ForecastConfig struct {
	DefaultHorizonDays int `yaml:"default_horizon_days"`
}

// ObservabilityConfig holds observability settings.
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and parses the config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${CASHFLOW_DB_PATH})
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadFromEnv loads configuration from environment variables only.
func LoadFromEnv() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvInt("PORT", 8080),
		},
		Storage: StorageConfig{
			DatabasePath: getEnv("CASHFLOW_DB_PATH", "cashflow.db"),
		},
		Matching: MatchingConfig{
			AmountTolerance:  getEnv("MATCH_AMOUNT_TOLERANCE", "0"),
			DateWindowDays:   getEnvInt("MATCH_DATE_WINDOW_DAYS", 7),
			DayOfMonthWindow: getEnvInt("MATCH_DAY_OF_MONTH_WINDOW", 3),
		},
		Forecast: ForecastConfig{
			DefaultHorizonDays: getEnvInt("FORECAST_DEFAULT_DAYS", 30),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "text"),
			},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// LoadOrEnv tries to load from config.yaml, falls back to environment
// variables.
func LoadOrEnv() *Config {
	return LoadOrEnvWithPath("config.yaml")
}

// LoadOrEnvWithPath tries to load from the specified path, falls back
// to environment variables.
func LoadOrEnvWithPath(path string) *Config {
	if cfg, err := Load(path); err == nil {
		return cfg
	}
	return LoadFromEnv()
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	if c.Storage.DatabasePath == "" {
		c.Storage.DatabasePath = "cashflow.db"
	}
	if c.Matching.AmountTolerance == "" {
		c.Matching.AmountTolerance = "0"
	}
	if c.Matching.DateWindowDays == 0 {
		c.Matching.DateWindowDays = 7
	}
	if c.Matching.DayOfMonthWindow == 0 {
		c.Matching.DayOfMonthWindow = 3
	}
	if c.Forecast.DefaultHorizonDays == 0 {
		c.Forecast.DefaultHorizonDays = 30
	}
	if c.Observability.Logging.Level == "" {
		c.Observability.Logging.Level = "info"
	}
	if c.Observability.Logging.Format == "" {
		c.Observability.Logging.Format = "text"
	}
}

// getEnv retrieves an environment variable with a fallback default.
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable with a fallback
// default.
func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var result int
		if _, err := fmt.Sscanf(val, "%d", &result); err == nil {
			return result
		}
	}
	return fallback
}
