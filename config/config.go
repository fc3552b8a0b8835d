// Package config loads server configuration from the environment. A
// .env file in the working directory is applied first when present.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrMissingSecret indicates no JWT signing secret was configured.
var ErrMissingSecret = errors.New("missing jwt secret")

// Config holds everything the server needs to start.
type Config struct {
	Addr        string        `env:"SPACESYNC_ADDR" envDefault:":8080"`
	SpacesDir   string        `env:"SPACESYNC_SPACES_DIR" envDefault:"spaces"`
	JWTSecret   string        `env:"SPACESYNC_JWT_SECRET"`
	LogFile     string        `env:"SPACESYNC_LOG_FILE"`
	Debug       bool          `env:"SPACESYNC_DEBUG" envDefault:"false"`
	ShutdownTTL time.Duration `env:"SPACESYNC_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// CatalogURL points at an external space directory service. When
	// set it is used instead of SpacesDir.
	CatalogURL string `env:"SPACESYNC_CATALOG_URL"`
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	// A missing .env file is not an error; explicit env always wins.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingSecret
	}
	return &cfg, nil
}
