// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config controls the game server.
type Config struct {
	Port int `env:"SAGRADA_PORT" envDefault:"8080"`
	// TurnTimeout ends an idle turn. Zero disables the timer.
	TurnTimeout time.Duration `env:"SAGRADA_TURN_TIMEOUT" envDefault:"2m"`
	// ArchivePath is the sqlite file for finished games. Empty disables it.
	ArchivePath string `env:"SAGRADA_ARCHIVE_PATH"`
	LogDev      bool   `env:"SAGRADA_LOG_DEV"`
	MaxPlayers  int    `env:"SAGRADA_MAX_PLAYERS" envDefault:"4"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses and validates the server configuration.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.TurnTimeout < 0 {
		return fmt.Errorf("turn timeout must not be negative, got %s", c.TurnTimeout)
	}
	if c.MaxPlayers < 1 || c.MaxPlayers > 4 {
		return fmt.Errorf("max players must be between 1 and 4, got %d", c.MaxPlayers)
	}
	return nil
}
