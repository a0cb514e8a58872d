package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultPort          = "8080"
	defaultDatabaseURL   = "vacationstay.db"
	defaultJWTAccessTTL  = "24h"
	defaultJWTSecret     = "change-me-jwt-secret"
	defaultInternalToken = ""
)

// Config is the runtime configuration of the API process, read from the
// environment (cmd/api loads .env first via godotenv).
type Config struct {
	AppEnv        string
	Port          string
	DatabaseURL   string
	JWTSecret     string
	JWTAccessTTL  time.Duration
	InternalToken string
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = getEnv("PORT", defaultPort)
	cfg.DatabaseURL = getEnv("DATABASE_URL", defaultDatabaseURL)
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.InternalToken = strings.TrimSpace(getEnv("INTERNAL_API_TOKEN", defaultInternalToken))

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}

	if cfg.AppEnv == "prod" && cfg.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set in prod")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := strings.TrimSpace(getEnv(key, fallback))
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}
