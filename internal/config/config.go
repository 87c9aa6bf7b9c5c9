// Package config loads process configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"

	"brubeckscan/internal/timefmt"
)

// Config holds all configuration loaded from environment variables.
type Config struct {
	APIBaseURL       string        `env:"BRUBECKSCAN_API_BASE_URL" envDefault:"https://brubeck1.streamr.network:3013" validate:"required,url"`
	ListenAddr       string        `env:"BRUBECKSCAN_LISTEN_ADDR" envDefault:":8080" validate:"required"`
	HTTPTimeout      time.Duration `env:"BRUBECKSCAN_HTTP_TIMEOUT" envDefault:"10s" validate:"gt=0"`
	FetchWorkers     int           `env:"BRUBECKSCAN_FETCH_WORKERS" envDefault:"4" validate:"min=1"`
	DefaultTimezone  string        `env:"BRUBECKSCAN_DEFAULT_TZ" envDefault:"US/Eastern" validate:"required"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	LogHumanFriendly bool          `env:"LOG_HUMAN_FRIENDLY" envDefault:"false"`
}

// Load reads and validates configuration. The default timezone must be a
// known IANA name; per-request zone selection falls back to UTC instead.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	if _, err := timefmt.Resolve(cfg.DefaultTimezone); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}
