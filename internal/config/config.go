// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported values of DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host    string
	Port    string
	Env     string // "development", "production", "testing"
	BaseURL string // externally visible origin, no trailing slash

	// Database selection
	DBDriver   string
	SQLitePath string

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible render cache). Empty host disables it.
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
	RenderCacheTTL time.Duration

	// S3-compatible object storage for PNG snapshots
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3PublicURL string

	// Per-client requests per minute on persist and update routes.
	RateLimitWrites int
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. A .env file in the working directory
// is read first when present; variables already set in the environment
// take precedence over it. Returns an error if critical values are missing
// in production mode.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		Host:    envOrDefault("APP_HOST", "0.0.0.0"),
		Port:    envOrDefault("APP_PORT", "3333"),
		Env:     envOrDefault("APP_ENV", "development"),
		BaseURL: strings.TrimRight(envOrDefault("URL", "http://localhost:3333"), "/"),

		DBDriver:   envOrDefault("DB_DRIVER", DriverPostgres),
		SQLitePath: envOrDefault("SQLITE_PATH", "bannerkit.db"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "bannerkit"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "bannerkit"),

		ValkeyHost:     os.Getenv("VALKEY_HOST"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    envOrDefault("S3_REGION", "fsn1"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    envOrDefault("S3_BUCKET", "bannerkit-public"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),
	}

	ttl, err := time.ParseDuration(envOrDefault("RENDER_CACHE_TTL", "10m"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("RENDER_CACHE_TTL must be a positive duration, got %q", os.Getenv("RENDER_CACHE_TTL"))
	}
	cfg.RenderCacheTTL = ttl

	limit, err := strconv.Atoi(envOrDefault("RATE_LIMIT_WRITES", "60"))
	if err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_WRITES must be an integer, got %q", os.Getenv("RATE_LIMIT_WRITES"))
	}
	cfg.RateLimitWrites = limit

	switch cfg.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, cfg.DBDriver)
	}

	if cfg.Env == "production" {
		if cfg.DBDriver == DriverPostgres && cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
		if os.Getenv("URL") == "" {
			return nil, fmt.Errorf("URL must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the connection string for the configured driver: a
// PostgreSQL URL, or the SQLite file path.
func (c *Config) DSN() string {
	if c.DBDriver == DriverSQLite {
		return c.SQLitePath
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// CacheEnabled reports whether a Valkey render cache is configured.
func (c *Config) CacheEnabled() bool {
	return c.ValkeyHost != ""
}

// StorageEnabled reports whether S3 snapshot storage is configured.
func (c *Config) StorageEnabled() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
