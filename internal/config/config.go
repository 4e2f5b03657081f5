// Package config loads server configuration from environment variables.
//
// Configuration is read once at startup and passed down explicitly — no
// package reads os.Getenv at request time. This keeps services testable
// and makes the full set of knobs visible in one place.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config holds everything the server needs to start.
type Config struct {
	Port      int
	DBPath    string
	JWTSecret string
	TokenTTL  time.Duration
	StaticDir string
	TestMode  bool
}

// Load reads the configuration from the environment.
//
// Variables:
//
//	PORT          listen port (default 3001)
//	DB_PATH       SQLite database file (default data/bloglist.db)
//	DB_PATH_TEST  database used when APP_ENV=test (default :memory:)
//	JWT_SECRET    token signing secret (required, min 16 chars)
//	TOKEN_TTL     token lifetime, Go duration syntax (default 1h)
//	STATIC_DIR    frontend build directory (default build; skipped if absent)
//	APP_ENV       "test" switches to DB_PATH_TEST and mounts /test/reset
func Load() (Config, error) {
	cfg := Config{
		Port:      envInt("PORT", 3001),
		DBPath:    envString("DB_PATH", "data/bloglist.db"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  envDuration("TOKEN_TTL", time.Hour),
		StaticDir: envString("STATIC_DIR", "build"),
		TestMode:  os.Getenv("APP_ENV") == "test",
	}

	// Test runs get their own database so they can be wiped freely.
	if cfg.TestMode {
		cfg.DBPath = envString("DB_PATH_TEST", ":memory:")
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("config: JWT_SECRET must be set")
	}

	return cfg, nil
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
