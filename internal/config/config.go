// Package config loads runtime settings from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"gatehouse.dev/internal/auth"
)

// Config holds runtime settings for the gatehouse API.
type Config struct {
	// Addr is the HTTP bind address.
	Addr string
	// DatabaseDSN is the PostgreSQL DSN (pgx). Empty runs the service on the
	// in-memory store, which is only useful for local development.
	DatabaseDSN string
	// TokenSecret is the HMAC secret for signing tokens (HS256).
	TokenSecret string
	// TokenTTL is the issued token lifetime.
	TokenTTL time.Duration
	// HashCost is the bcrypt work factor.
	HashCost int
	// MinPasswordLength is the shortest accepted password.
	MinPasswordLength int
	// Environment toggles production behavior (secure cookies, no error
	// detail in responses).
	Environment string
	// CORSOrigin is the single origin allowed to send credentialed requests.
	CORSOrigin string
	// MigrateOnStart applies pending schema migrations before serving.
	MigrateOnStart bool
}

// Load builds a Config from defaults overlaid with GATEHOUSE_* environment
// variables.
func Load() *Config {
	cfg := &Config{
		Addr:              ":8080",
		TokenTTL:          auth.DefaultTokenTTL,
		HashCost:          auth.DefaultHashCost,
		MinPasswordLength: auth.DefaultMinPasswordLength,
		Environment:       "development",
		CORSOrigin:        "http://localhost:3000",
		MigrateOnStart:    true,
	}
	cfg.Addr = envString("GATEHOUSE_ADDR", cfg.Addr)
	cfg.DatabaseDSN = envString("GATEHOUSE_PG_DSN", cfg.DatabaseDSN)
	cfg.TokenSecret = envString("GATEHOUSE_TOKEN_SECRET", cfg.TokenSecret)
	cfg.TokenTTL = envDuration("GATEHOUSE_TOKEN_TTL", cfg.TokenTTL)
	cfg.HashCost = envInt("GATEHOUSE_HASH_COST", cfg.HashCost)
	cfg.MinPasswordLength = envInt("GATEHOUSE_MIN_PASSWORD_LENGTH", cfg.MinPasswordLength)
	cfg.Environment = envString("GATEHOUSE_ENV", cfg.Environment)
	cfg.CORSOrigin = envString("GATEHOUSE_CORS_ORIGIN", cfg.CORSOrigin)
	cfg.MigrateOnStart = envBool("GATEHOUSE_MIGRATE_ON_START", cfg.MigrateOnStart)
	return cfg
}

// IsProduction reports whether production behavior is enabled.
func (c *Config) IsProduction() bool { return c.Environment == "production" }

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
