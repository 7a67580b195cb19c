// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime settings. Every field has an env binding so the
// binary configures itself from the environment alone.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `env:"ADDR" envDefault:":8080"`

	// DBPath is the SQLite database file; parent directories are created.
	DBPath string `env:"DB_PATH" envDefault:"./data/ledger.db"`

	// JWTSecret signs session tokens. The default is for local
	// development only.
	JWTSecret string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`

	// JWTTTL is how long issued tokens remain valid.
	JWTTTL time.Duration `env:"JWT_TTL" envDefault:"24h"`

	// GinMode selects the gin runtime mode (debug, release, test).
	GinMode string `env:"GIN_MODE" envDefault:"release"`
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
