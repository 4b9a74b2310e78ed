package config

import (
	"log"
	"os"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port          string
	DatabaseURL   string
	SessionSecret string
}

// Load reads configuration from the environment. The session signing key is
// required: a process that cannot sign cookies must not serve traffic, so we
// fail at startup rather than mint forgeable sessions.
func Load() *Config {
	cfg := &Config{
		Port:          getenv("PORT", "5050"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
	}

	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET is empty")
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
