// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/leaguectl.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Config struct — populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Remote platform
	SleeperBaseURL    string
	RequestsPerMinute int
	FetchConcurrency  int

	// League
	DefaultLeagueID string
	// Aliases maps display-name strings to platform user ids. Multiple keys
	// may point at the same id.
	Aliases map[string]string

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting (inbound HTTP)
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Cache
	CacheEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	aliases, err := loadAliases()
	if err != nil {
		return nil, err
	}

	return &Config{
		SleeperBaseURL:    envOr("SLEEPER_BASE_URL", "https://api.sleeper.app/v1"),
		RequestsPerMinute: envInt("SLEEPER_REQUESTS_PER_MINUTE", 600),
		FetchConcurrency:  envInt("FETCH_CONCURRENCY", 4),

		DefaultLeagueID: envOr("LEAGUE_ID", ""),
		Aliases:         aliases,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		CacheEnabled: envBool("CACHE_ENABLED", true),
	}, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// loadAliases reads the manager alias table from MANAGER_ALIASES (inline JSON
// object) or MANAGER_ALIASES_FILE (path to a JSON file). Both absent is fine —
// identity resolution then falls back to platform-supplied names.
func loadAliases() (map[string]string, error) {
	raw := os.Getenv("MANAGER_ALIASES")
	if raw == "" {
		if path := os.Getenv("MANAGER_ALIASES_FILE"); path != "" {
			b, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read MANAGER_ALIASES_FILE: %w", err)
			}
			raw = string(b)
		}
	}
	if raw == "" {
		return map[string]string{}, nil
	}

	aliases := make(map[string]string)
	if err := json.Unmarshal([]byte(raw), &aliases); err != nil {
		return nil, fmt.Errorf("parse manager aliases: %w", err)
	}
	return aliases, nil
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
