// Package config loads process-wide configuration from environment variables.
// Configuration is parsed once at startup and passed down explicitly; nothing
// in this package is consulted again after Load returns.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds every knob the server reads from the environment.
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Email provider. An empty key disables every endpoint: the spec for the
	// site requires a hard 500 before any work is attempted.
	EmailAPIKey string `env:"EMAIL_API_KEY"`
	EmailAPIURL string `env:"EMAIL_API_URL" envDefault:"https://api.mailpost.dev/v1"`
	FromAddress string `env:"NOTIFY_FROM" envDefault:"no-reply@brightcode.org"`
	ReplyTo     string `env:"NOTIFY_REPLY_TO" envDefault:"hello@brightcode.org"`

	// Fallback distribution list used when no workshop-level contact address
	// survives recipient filtering.
	FallbackRecipients []string `env:"NOTIFY_FALLBACK_RECIPIENTS" envSeparator:","`

	// Headless CMS access. The write token may lack create rights, in which
	// case volunteer persistence degrades to email-only.
	ContentAPIURL     string `env:"CONTENT_API_URL"`
	ContentDataset    string `env:"CONTENT_DATASET" envDefault:"production"`
	ContentReadToken  string `env:"CONTENT_READ_TOKEN"`
	ContentWriteToken string `env:"CONTENT_WRITE_TOKEN"`

	// Optional Postgres journal of accepted submissions. Empty disables it.
	DatabaseURL string `env:"DATABASE_URL"`
}

// Load parses configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
