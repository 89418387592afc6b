// Package config loads and validates all runtime configuration.
//
// Every knob comes from the process environment and is parsed exactly once,
// at startup, into a single Config struct that main threads through to the
// components that need it. Nothing else in the codebase reads os.Getenv —
// that keeps hidden configuration out of the lower layers and makes every
// dependency visible at the composition root.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration for the advocacy API server.
type Config struct {
	Port   int    `env:"PORT" envDefault:"8080"`
	DBPath string `env:"DB_PATH" envDefault:"data/campaign.db"`

	// Google Civic Information API. The key is required — zip lookup is the
	// core of the product and cannot degrade gracefully without it.
	CivicAPIBaseURL string `env:"CIVIC_API_BASE_URL" envDefault:"https://www.googleapis.com/civicinfo/v2"`
	CivicAPIKey     string `env:"CIVIC_API_KEY"`

	// AWS SES credentials for outbound advocacy email.
	AWSRegion          string `env:"AWS_REGION" envDefault:"us-east-1"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`

	// SenderIdentity is the fixed From header on every advocacy email.
	// The visitor's own address goes in Reply-To, never in From — we only
	// have SES sending authorization for our own domain.
	SenderIdentity string `env:"SENDER_IDENTITY" envDefault:"Hemp Action Campaign <action@dontbanhemp.org>"`

	// Operator credential for the curation endpoints. All three must be set
	// together; if any is missing the admin routes are simply not
	// registered (the public site keeps working).
	AdminEmail        string `env:"ADMIN_EMAIL"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`
	JWTSecret         string `env:"JWT_SECRET"`

	StatsPollInterval time.Duration `env:"STATS_POLL_INTERVAL" envDefault:"30s"`

	// CampaignDeadline is when the federal hemp ban takes effect — the
	// target of the countdown. RFC 3339.
	CampaignDeadlineRaw string    `env:"CAMPAIGN_DEADLINE" envDefault:"2026-11-12T00:00:00Z"`
	CampaignDeadline    time.Time `env:"-"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// Load parses the environment into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: parsing environment: %w", err)
	}

	deadline, err := time.Parse(time.RFC3339, cfg.CampaignDeadlineRaw)
	if err != nil {
		return nil, fmt.Errorf("config: invalid CAMPAIGN_DEADLINE %q: %w", cfg.CampaignDeadlineRaw, err)
	}
	cfg.CampaignDeadline = deadline

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every value required at startup is present.
// A missing required value is fatal — better to refuse to start than to
// serve a site whose lookup or send path fails on first use.
func (c *Config) Validate() error {
	if c.CivicAPIKey == "" {
		return errors.New("config: CIVIC_API_KEY is required")
	}
	if c.AWSAccessKeyID == "" || c.AWSSecretAccessKey == "" {
		return errors.New("config: AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY are required")
	}
	if c.SenderIdentity == "" {
		return errors.New("config: SENDER_IDENTITY is required")
	}
	if c.StatsPollInterval <= 0 {
		return errors.New("config: STATS_POLL_INTERVAL must be positive")
	}
	return nil
}

// AdminEnabled reports whether the operator credential is fully configured.
func (c *Config) AdminEnabled() bool {
	return c.AdminEmail != "" && c.AdminPasswordHash != "" && c.JWTSecret != ""
}
