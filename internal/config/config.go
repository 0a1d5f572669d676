// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the root configuration. The Supports*/StartButtonText fields
// are the UI affordance gates served to clients verbatim; SupportsChatInput
// additionally gates whether typed chat messages are ingested at all.
type Config struct {
	ListenAddr  string `env:"LISTEN_ADDR" envDefault:":8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	StartButtonText    string `env:"START_BUTTON_TEXT" envDefault:"Start Battle"`
	PreConnectBuffer   bool   `env:"PRE_CONNECT_BUFFER" envDefault:"true"`
	SupportsChatInput  bool   `env:"SUPPORTS_CHAT_INPUT" envDefault:"true"`
	SupportsVideoInput bool   `env:"SUPPORTS_VIDEO_INPUT" envDefault:"true"`

	TotalRounds int    `env:"TOTAL_ROUNDS" envDefault:"3"`
	DeckPath    string `env:"DECK_PATH"`

	// TeardownLinger is how long a session stays up after its last end
	// signal before the transport is actually torn down. A restart or
	// rejoin inside the window cancels the teardown.
	TeardownLinger time.Duration `env:"TEARDOWN_LINGER" envDefault:"2s"`
}

// Load reads .env.local if present, then parses the environment.
func Load() (Config, error) {
	// Missing .env.local is the normal case outside local dev.
	_ = godotenv.Load(".env.local")

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.TotalRounds < 1 {
		return Config{}, fmt.Errorf("TOTAL_ROUNDS must be at least 1, got %d", cfg.TotalRounds)
	}
	return cfg, nil
}
