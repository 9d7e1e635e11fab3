// Package config reads server settings from LOGITRACK_* environment variables.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/tarsalgabko/logitrack/internal/seed"
)

// Prefix is prepended to every variable name.
const Prefix = "LOGITRACK_"

// Config holds the server settings. Each field is read from Prefix plus
// the name in its env tag. An unset SharedPassword falls back to
// seed.SharedPassword.
type Config struct {
	Addr           string        `env:"ADDR, default=:8080"`
	DBPath         string        `env:"DB, default=logitrack.sqlite3"`
	LogPath        string        `env:"LOG"`
	JWTSecret      string        `env:"JWT_SECRET"`
	SharedPassword string        `env:"SHARED_PASSWORD"`
	FetchLatency   time.Duration `env:"FETCH_LATENCY, default=1s"`
}

// Load reads the configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

// LoadFrom reads the configuration from vars, keyed by full variable name.
func LoadFrom(ctx context.Context, vars map[string]string) (*Config, error) {
	return load(ctx, envconfig.MapLookuper(vars))
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.PrefixLookuper(Prefix, l),
	}); err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if cfg.SharedPassword == "" {
		cfg.SharedPassword = seed.SharedPassword
	}
	return &cfg, nil
}
