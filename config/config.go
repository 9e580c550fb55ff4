package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`
	// PGURL is optional. Without it accounts come from fixtures.
	PGURL        string `env:"PG_URL"`
	FixturesPath string `env:"FIXTURES_PATH"`

	FXAPIURL          string          `env:"FX_API_URL" envDefault:"https://api.exchangerate-api.com/v4/latest"`
	FXBase            string          `env:"FX_BASE" envDefault:"GBP"`
	FXQuote           string          `env:"FX_QUOTE" envDefault:"USD"`
	FXFallbackRate    decimal.Decimal `env:"FX_FALLBACK_RATE" envDefault:"1.27"`
	FXRefreshSchedule string          `env:"FX_REFRESH_SCHEDULE" envDefault:"@every 1h"`
	FXCacheTTL        time.Duration   `env:"FX_CACHE_TTL" envDefault:"1h"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads configuration from environment variables. A .env file in the
// working directory is read first; variables already set in the shell win.
func Load() (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	cfg.FXBase = strings.ToUpper(cfg.FXBase)
	cfg.FXQuote = strings.ToUpper(cfg.FXQuote)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	if money.GetCurrency(c.FXBase) == nil {
		errs = append(errs, fmt.Errorf("FX_BASE %q is not a known currency", c.FXBase))
	}
	if money.GetCurrency(c.FXQuote) == nil {
		errs = append(errs, fmt.Errorf("FX_QUOTE %q is not a known currency", c.FXQuote))
	}
	if !c.FXFallbackRate.IsPositive() {
		errs = append(errs, fmt.Errorf("FX_FALLBACK_RATE must be positive, got %s", c.FXFallbackRate))
	}
	if c.FXCacheTTL < 0 {
		errs = append(errs, fmt.Errorf("FX_CACHE_TTL must not be negative, got %s", c.FXCacheTTL))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be 'text' or 'json', got %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

// ConfigureLogging applies the level and format to the standard logrus logger
func (c *Config) ConfigureLogging() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	if c.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
