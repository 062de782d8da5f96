package dashboard

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	platformobservability "github.com/Apurer/go-gin-order-dashboard/internal/platform/observability"
)

// DefaultOrdersAPIURL is where the order store listens when ORDERS_API_URL is unset.
const DefaultOrdersAPIURL = "http://localhost:8081"

// Config carries environment-driven settings for the dashboard process.
type Config struct {
	Port         string
	OrdersAPIURL string
	// OrdersAPITimeout of zero leaves gateway calls unbounded.
	OrdersAPITimeout time.Duration
	StatusViaUpdate  bool
	// SessionTTL of zero keeps idle browser sessions forever.
	SessionTTL    time.Duration
	PurgeInterval time.Duration
	LogLevel      slog.Level
	Environment   string
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:            envDefault("PORT", "8080"),
		OrdersAPIURL:    envDefault("ORDERS_API_URL", DefaultOrdersAPIURL),
		StatusViaUpdate: isTruthy(os.Getenv("STATUS_VIA_UPDATE")),
		SessionTTL:      12 * time.Hour,
		PurgeInterval:   10 * time.Minute,
		Environment:     envDefault("ENVIRONMENT", "local"),
	}
	if port, err := strconv.Atoi(cfg.Port); err != nil || port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("PORT must be a valid TCP port, got %q", cfg.Port)
	}
	if u, err := url.Parse(cfg.OrdersAPIURL); err != nil || u.Scheme == "" || u.Host == "" {
		return Config{}, fmt.Errorf("ORDERS_API_URL must be an absolute URL, got %q", cfg.OrdersAPIURL)
	}
	if raw := strings.TrimSpace(os.Getenv("ORDERS_API_TIMEOUT_SECONDS")); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds < 0 {
			return Config{}, fmt.Errorf("ORDERS_API_TIMEOUT_SECONDS must be a non-negative integer")
		}
		cfg.OrdersAPITimeout = time.Duration(seconds) * time.Second
	}
	if raw := strings.TrimSpace(os.Getenv("SESSION_TTL_MINUTES")); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes < 0 {
			return Config{}, fmt.Errorf("SESSION_TTL_MINUTES must be a non-negative integer")
		}
		cfg.SessionTTL = time.Duration(minutes) * time.Minute
	}
	if raw := strings.TrimSpace(os.Getenv("SESSION_PURGE_INTERVAL_MINUTES")); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			return Config{}, fmt.Errorf("SESSION_PURGE_INTERVAL_MINUTES must be a positive integer")
		}
		cfg.PurgeInterval = time.Duration(minutes) * time.Minute
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

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
