package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	defaultHTTPAddr = ":8080"
	defaultAPIToken = "dev-token"
)

type Config struct {
	DatabaseDSN string
	HTTPAddr    string
	APIToken    string
}

// Load reads the configuration from the environment, falling back to
// defaults suitable for local development.
func Load() Config {
	cfg := Config{
		DatabaseDSN: strings.TrimSpace(os.Getenv("DB_CONN_STR")),
		HTTPAddr:    strings.TrimSpace(os.Getenv("HTTP_ADDR")),
		APIToken:    strings.TrimSpace(os.Getenv("API_TOKEN")),
	}

	if cfg.DatabaseDSN == "" {
		// Build the DSN from individual vars (Docker friendly).
		cfg.DatabaseDSN = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			envOr("DB_HOST", "localhost"),
			envOr("DB_PORT", "5432"),
			envOr("DB_USER", "postgres"),
			envOr("DB_PASSWORD", "postgres"),
			envOr("DB_NAME", "bankaccounts"),
		)
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = defaultHTTPAddr
	}
	if cfg.APIToken == "" {
		cfg.APIToken = defaultAPIToken
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
