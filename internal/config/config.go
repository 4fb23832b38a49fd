// Package config loads runtime configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything main needs to wire the server.
type Config struct {
	Port          string
	DatabasePath  string
	SnapshotDir   string
	StorageRoot   string // "" disables the object store (degrades to "not configured")
	StorageBucket string
	PublicBaseURL string
	JWTSecret     string
	AdminEmail    string
	AdminPassword string
	BcryptCost    int
	CookieSecure  bool
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in when present; real environment variables win.
func Load() (*Config, error) {
	// Missing .env is fine; it only exists in development setups.
	_ = godotenv.Load()

	cfg := &Config{
		Port:          envOrDefault("PORT", "8080"),
		DatabasePath:  envOrDefault("DATABASE_PATH", "mehendi-chic.db"),
		SnapshotDir:   envOrDefault("SNAPSHOT_DIR", "data/mirror"),
		StorageRoot:   storageRoot(),
		StorageBucket: envOrDefault("STORAGE_BUCKET", "gallery"),
		PublicBaseURL: envOrDefault("PUBLIC_BASE_URL", "http://localhost:8080"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		BcryptCost:    12,
		CookieSecure:  os.Getenv("COOKIE_SECURE") != "false",
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
	}
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil, fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD environment variables are required")
	}

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
		}
		if parsed < 4 || parsed > 14 {
			return nil, fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", parsed)
		}
		cfg.BcryptCost = parsed
	}

	return cfg, nil
}

// storageRoot distinguishes "unset" (use the default) from "explicitly
// empty" (run without an object store; uploads report not configured).
func storageRoot() string {
	if v, ok := os.LookupEnv("STORAGE_ROOT"); ok {
		return v
	}
	return "data/storage"
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
