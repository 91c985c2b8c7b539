// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Server settings
	Port     string
	Env      string // "development", "staging", "production"
	LogLevel string

	// Database
	DatabaseURL string // PostgreSQL connection string (optional, uses in-memory if not set)

	// Chain RPC endpoints for contract analysis, keyed by chain ID.
	// Parsed from RPC_ENDPOINTS ("1=https://...;137=https://...").
	RPCEndpoints map[int64]string

	// External token registry
	RegistryAPIURL string
	RegistryAPIKey string

	// Validation defaults
	ValidationTimeout time.Duration
	StrictMode        bool
	CacheTTL          time.Duration
	ContractAnalysis  bool // enable the contract-analysis stage by default
	ExternalChecks    bool // enable the external-registry stage by default

	// Observability
	OTLPEndpoint string

	// Rate limiting
	RateLimitRPM int
}

// Defaults
const (
	DefaultPort              = "8080"
	DefaultEnv               = "development"
	DefaultLogLevel          = "info"
	DefaultValidationTimeout = 5 * time.Second
	DefaultCacheTTL          = 5 * time.Minute
	DefaultRateLimit         = 120
)

// Load reads configuration from environment variables.
// It loads .env file if present (for local development).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", DefaultPort),
		Env:               getEnv("ENV", DefaultEnv),
		LogLevel:          getEnv("LOG_LEVEL", DefaultLogLevel),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RegistryAPIURL:    os.Getenv("REGISTRY_API_URL"),
		RegistryAPIKey:    os.Getenv("REGISTRY_API_KEY"),
		ValidationTimeout: getEnvDuration("VALIDATION_TIMEOUT", DefaultValidationTimeout),
		StrictMode:        getEnvBool("STRICT_MODE", false),
		CacheTTL:          getEnvDuration("CACHE_TTL", DefaultCacheTTL),
		ContractAnalysis:  getEnvBool("ENABLE_CONTRACT_ANALYSIS", false),
		ExternalChecks:    getEnvBool("ENABLE_EXTERNAL_VALIDATION", false),
		OTLPEndpoint:      os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		RateLimitRPM:      int(getEnvInt64("RATE_LIMIT_RPM", DefaultRateLimit)),
	}

	endpoints, err := parseRPCEndpoints(os.Getenv("RPC_ENDPOINTS"))
	if err != nil {
		return nil, err
	}
	cfg.RPCEndpoints = endpoints

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration consistency. Providers are optional, the
// engine degrades to list-and-pattern checks without them, so only
// malformed values are rejected.
func (c *Config) Validate() error {
	if c.ContractAnalysis && len(c.RPCEndpoints) == 0 {
		return fmt.Errorf("ENABLE_CONTRACT_ANALYSIS requires RPC_ENDPOINTS")
	}
	if c.ExternalChecks && c.RegistryAPIURL == "" {
		return fmt.Errorf("ENABLE_EXTERNAL_VALIDATION requires REGISTRY_API_URL")
	}
	if c.ValidationTimeout <= 0 {
		return fmt.Errorf("VALIDATION_TIMEOUT must be positive")
	}
	return nil
}

// parseRPCEndpoints parses "1=https://eth.example;137=https://poly.example".
func parseRPCEndpoints(raw string) (map[int64]string, error) {
	endpoints := make(map[int64]string)
	if raw == "" {
		return endpoints, nil
	}
	for _, pair := range strings.Split(raw, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		chain, url, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("RPC_ENDPOINTS entry %q is not chainId=url", pair)
		}
		id, err := strconv.ParseInt(strings.TrimSpace(chain), 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("RPC_ENDPOINTS entry %q has invalid chain ID", pair)
		}
		endpoints[id] = strings.TrimSpace(url)
	}
	return endpoints, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
