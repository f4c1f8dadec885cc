// Package config loads the small set of environment-driven knobs this
// pipeline needs, in the teacher's getEnv*-helper style (backend/internal/config/config.go),
// trimmed to what a single-process planning CLI actually uses: no
// server/database/auth sections.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the pipeline's tunables.
type Config struct {
	Logging LoggingConfig
	Search  SearchConfig
	Cache   CacheConfig
}

// LoggingConfig mirrors the teacher's logging section exactly: level and
// output format.
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// SearchConfig bounds the A* search's wall-clock budget (spec.md §5).
type SearchConfig struct {
	TimeoutMs int
}

// CacheConfig sizes the heuristic's cost-trace expression cache
// (internal/heuristic.CostTracer).
type CacheConfig struct {
	TraceExpressionCapacity int
}

// Load reads configuration from the environment, first loading a local
// .env file if one is present (godotenv.Load silently no-ops otherwise),
// then validating the result.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Logging: LoggingConfig{
			Level:  getEnv("SHRDLITE_LOG_LEVEL", "info"),
			Format: getEnv("SHRDLITE_LOG_FORMAT", "text"),
		},
		Search: SearchConfig{
			TimeoutMs: getEnvAsInt("SHRDLITE_SEARCH_TIMEOUT_MS", 5000),
		},
		Cache: CacheConfig{
			TraceExpressionCapacity: getEnvAsInt("SHRDLITE_TRACE_CACHE_CAPACITY", 32),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the loaded configuration for internally consistent
// values.
func (c *Config) Validate() error {
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		return fmt.Errorf("invalid log format: %s (must be json or text)", c.Logging.Format)
	}
	if c.Search.TimeoutMs < 1 {
		return fmt.Errorf("search timeout must be at least 1ms, got %d", c.Search.TimeoutMs)
	}
	if c.Cache.TraceExpressionCapacity < 1 {
		return fmt.Errorf("trace cache capacity must be at least 1, got %d", c.Cache.TraceExpressionCapacity)
	}
	return nil
}

// TimeoutDuration converts SearchConfig.TimeoutMs to a time.Duration for
// internal/search.AStar.
func (c SearchConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
