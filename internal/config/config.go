// Package config loads runtime settings from the environment.
// Command-line flags override these values.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds settings shared by every command.
type Config struct {
	Addr          string        `env:"ABENTEUER_ADDR"           envDefault:":8080"`
	FeedbackDelay time.Duration `env:"ABENTEUER_FEEDBACK_DELAY" envDefault:"2s"`
	LogLevel      string        `env:"ABENTEUER_LOG_LEVEL"      envDefault:"info"`
	StoriesDir    string        `env:"ABENTEUER_STORIES_DIR"`
	Metrics       bool          `env:"ABENTEUER_METRICS"        envDefault:"true"`
	MaxInputSize  int           `env:"ABENTEUER_MAX_INPUT_SIZE" envDefault:"4096"`
}

// Load parses the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// LoadFrom parses an explicit environment, used by tests.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// Level returns the configured slog level.
func (c Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Validate rejects a negative delay, a non-positive input limit and an
// unknown log level.
func (c Config) Validate() error {
	if c.FeedbackDelay < 0 {
		return fmt.Errorf("ABENTEUER_FEEDBACK_DELAY must not be negative, got %s", c.FeedbackDelay)
	}
	if c.MaxInputSize <= 0 {
		return fmt.Errorf("ABENTEUER_MAX_INPUT_SIZE must be positive, got %d", c.MaxInputSize)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return fmt.Errorf("invalid ABENTEUER_LOG_LEVEL %q", c.LogLevel)
	}
	return nil
}
