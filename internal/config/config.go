// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads sitedeck settings from SITEDECK_* environment variables.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Prefix is prepended to every environment variable name.
const Prefix = "SITEDECK_"

// knownWeakSecrets contains example secrets that must never be used.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"DB_PATH" envDefault:"./data/sitedeck.db"`
	SessionSecret string `env:"SESSION_SECRET,required"`
	ServerHost    string `env:"SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"SERVER_PORT" envDefault:"8080"`
	Env           string `env:"ENV" envDefault:"development"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`

	// Object storage
	StorageDir    string `env:"STORAGE_DIR" envDefault:"./data/storage"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`
	Bucket        string `env:"BUCKET" envDefault:"sites"`

	// Cache configuration
	RedisURL     string `env:"REDIS_URL"`                           // Optional Redis URL for shared snapshots
	CachePrefix  string `env:"CACHE_PREFIX" envDefault:"sitedeck:"` // Redis key prefix
	CacheTTL     int    `env:"CACHE_TTL" envDefault:"300"`          // Snapshot TTL in seconds
	CacheMaxSize int    `env:"CACHE_MAX_SIZE" envDefault:"10000"`   // Max memory cache entries

	// Auth
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"12h"`

	GeoIPDBPath string `env:"GEOIP_DB_PATH"` // Path to GeoLite2-Country.mmdb file

	EventRetentionDays int `env:"EVENT_RETENTION_DAYS" envDefault:"90"`

	// Content change webhook, disabled without a URL
	WebhookURL     string        `env:"WEBHOOK_URL"`
	WebhookSecret  string        `env:"WEBHOOK_SECRET"`
	WebhookWorkers int           `env:"WEBHOOK_WORKERS" envDefault:"2"`
	WebhookDelay   time.Duration `env:"WEBHOOK_DELAY" envDefault:"2s"` // quiet time before a change is sent

	DoSeed bool `env:"DO_SEED" envDefault:"false"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// WebhookEnabled returns true if content changes are sent to a webhook.
func (c Config) WebhookEnabled() bool {
	return c.WebhookURL != ""
}

// GeoIPEnabled returns true if a GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// SlogLevel maps LogLevel to a slog level. Unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// MinSessionSecretLength is the minimum accepted session secret length.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a validated Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: Prefix}); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("%sSESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			Prefix, MinSessionSecretLength, len(cfg.SessionSecret))
	}
	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("%sSESSION_SECRET is a known default value and must not be used", Prefix)
		}
	}
	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn(Prefix + "SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if cfg.Bucket == "" || strings.ContainsAny(cfg.Bucket, `/\.`) {
		return nil, fmt.Errorf("%sBUCKET %q is not a valid bucket name", Prefix, cfg.Bucket)
	}
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")
	if cfg.WebhookEnabled() {
		u, err := url.Parse(cfg.WebhookURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("%sWEBHOOK_URL %q must be an absolute http(s) URL", Prefix, cfg.WebhookURL)
		}
		if cfg.WebhookSecret == "" {
			return nil, fmt.Errorf("%sWEBHOOK_SECRET is required when %sWEBHOOK_URL is set", Prefix, Prefix)
		}
	}
	if cfg.EventRetentionDays < 1 {
		cfg.EventRetentionDays = 1
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes.
func hasMinimumEntropy(s string) bool {
	classes := []string{
		"abcdefghijklmnopqrstuvwxyz",
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ",
		"0123456789",
		"!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\",
	}
	n := 0
	for _, c := range classes {
		if strings.ContainsAny(s, c) {
			n++
		}
	}
	return n >= 3
}
