package api

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	platformobservability "github.com/Apurer/go-gin-order-dashboard/internal/platform/observability"
)

// Config carries environment-driven settings for the orders API process.
type Config struct {
	Port        string
	PostgresDSN string
	LogLevel    slog.Level
	Environment string
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:        envDefault("PORT", "8081"),
		PostgresDSN: strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		Environment: envDefault("ENVIRONMENT", "local"),
	}
	if port, err := strconv.Atoi(cfg.Port); err != nil || port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("PORT must be a valid TCP port, got %q", cfg.Port)
	}
	level, err := platformobservability.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level
	return cfg, nil
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string {
	return ":" + c.Port
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
