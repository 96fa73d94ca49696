package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// config holds the service settings read from the environment.
type config struct {
	Addr          string
	SessionTTL    time.Duration
	SweepInterval time.Duration
}

// loadDotEnv loads environment variables from .env when present.
// Existing process environment variables are not overridden.
func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load .env: %w", err)
}

func loadConfig() (config, error) {
	cfg := config{
		Addr: envOr("HTTP_ADDR", ":8080"),
	}

	var err error
	if cfg.SessionTTL, err = envDuration("SESSION_TTL", 15*time.Minute); err != nil {
		return config{}, err
	}
	if cfg.SweepInterval, err = envDuration("SESSION_SWEEP_INTERVAL", time.Minute); err != nil {
		return config{}, err
	}
	if cfg.SweepInterval <= 0 {
		return config{}, fmt.Errorf("SESSION_SWEEP_INTERVAL must be positive, got %s", cfg.SweepInterval)
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}
