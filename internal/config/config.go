// Package config provides environment-based configuration for EduMatch services.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Gateway holds configuration for the edge gateway.
type Gateway struct {
	Port     int
	LogLevel string

	// Origin query service
	OriginURL     string
	OriginTimeout time.Duration

	// Rate limiting on the tool-call path
	ToolRateLimit int // requests per window
	RateWindow    time.Duration
}

// Origin holds configuration for the origin query service.
type Origin struct {
	Port     int
	LogLevel string

	// Database (PostgreSQL)
	DatabaseURL string

	// NATS analytics bus (optional)
	NatsURL string

	// Rate limiting on the query endpoints
	QueryRateLimit int
	RateWindow     time.Duration
}

// LoadGateway reads gateway configuration from environment variables with
// sensible defaults.
func LoadGateway() (*Gateway, error) {
	c := &Gateway{
		Port:          envInt("EDUMATCH_GATEWAY_PORT", 8080),
		LogLevel:      envStr("EDUMATCH_LOG_LEVEL", "info"),
		OriginURL:     envStr("EDUMATCH_ORIGIN_URL", "http://localhost:8000"),
		OriginTimeout: envDuration("EDUMATCH_ORIGIN_TIMEOUT", 15*time.Second),
		ToolRateLimit: envInt("TOOL_RATE_LIMIT", 120),
		RateWindow:    time.Minute,
	}

	c.OriginURL = strings.TrimRight(c.OriginURL, "/")
	if c.OriginURL == "" {
		return nil, fmt.Errorf("EDUMATCH_ORIGIN_URL is required")
	}
	if c.OriginTimeout <= 0 {
		return nil, fmt.Errorf("EDUMATCH_ORIGIN_TIMEOUT must be positive")
	}

	return c, nil
}

// LoadOrigin reads origin service configuration from environment variables.
func LoadOrigin() (*Origin, error) {
	c := &Origin{
		Port:           envInt("EDUMATCH_ORIGIN_PORT", 8000),
		LogLevel:       envStr("EDUMATCH_LOG_LEVEL", "info"),
		DatabaseURL:    envStr("DATABASE_URL", ""),
		NatsURL:        envStr("NATS_URL", ""),
		QueryRateLimit: envInt("QUERY_RATE_LIMIT", 100),
		RateWindow:     time.Minute,
	}

	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return c, nil
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
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
