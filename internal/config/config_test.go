package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helper to set env vars and clean up after
func setEnv(t *testing.T, key, value string) {
	t.Helper()
	old := os.Getenv(key)
	os.Setenv(key, value)
	t.Cleanup(func() {
		if old == "" {
			os.Unsetenv(key)
		} else {
			os.Setenv(key, old)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "LOG_LEVEL", "VALIDATION_TIMEOUT", "CACHE_TTL", "RPC_ENDPOINTS", "ENABLE_CONTRACT_ANALYSIS", "ENABLE_EXTERNAL_VALIDATION", "REGISTRY_API_URL"} {
		setEnv(t, key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultEnv, cfg.Env)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultValidationTimeout, cfg.ValidationTimeout)
	assert.Equal(t, DefaultCacheTTL, cfg.CacheTTL)
	assert.Equal(t, DefaultRateLimit, cfg.RateLimitRPM)
	assert.False(t, cfg.ContractAnalysis)
	assert.False(t, cfg.ExternalChecks)
	assert.Empty(t, cfg.RPCEndpoints)
}

func TestLoad_Overrides(t *testing.T) {
	setEnv(t, "PORT", "9090")
	setEnv(t, "ENV", "production")
	setEnv(t, "VALIDATION_TIMEOUT", "10s")
	setEnv(t, "CACHE_TTL", "1m")
	setEnv(t, "STRICT_MODE", "true")
	setEnv(t, "RATE_LIMIT_RPM", "300")
	setEnv(t, "RPC_ENDPOINTS", "")
	setEnv(t, "ENABLE_CONTRACT_ANALYSIS", "")
	setEnv(t, "ENABLE_EXTERNAL_VALIDATION", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 10*time.Second, cfg.ValidationTimeout)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.True(t, cfg.StrictMode)
	assert.Equal(t, 300, cfg.RateLimitRPM)
}

func TestParseRPCEndpoints(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    map[int64]string
		wantErr bool
	}{
		{
			name: "empty",
			raw:  "",
			want: map[int64]string{},
		},
		{
			name: "single chain",
			raw:  "1=https://eth.example",
			want: map[int64]string{1: "https://eth.example"},
		},
		{
			name: "multiple chains",
			raw:  "1=https://eth.example;137=https://poly.example",
			want: map[int64]string{1: "https://eth.example", 137: "https://poly.example"},
		},
		{
			name: "whitespace tolerated",
			raw:  " 1 = https://eth.example ; ",
			want: map[int64]string{1: "https://eth.example"},
		},
		{
			name:    "missing url",
			raw:     "1",
			wantErr: true,
		},
		{
			name:    "bad chain id",
			raw:     "mainnet=https://eth.example",
			wantErr: true,
		},
		{
			name:    "negative chain id",
			raw:     "-1=https://eth.example",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRPCEndpoints(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name:    "minimal config",
			config:  Config{ValidationTimeout: time.Second},
			wantErr: "",
		},
		{
			name: "contract analysis without endpoints",
			config: Config{
				ValidationTimeout: time.Second,
				ContractAnalysis:  true,
			},
			wantErr: "RPC_ENDPOINTS",
		},
		{
			name: "contract analysis with endpoints",
			config: Config{
				ValidationTimeout: time.Second,
				ContractAnalysis:  true,
				RPCEndpoints:      map[int64]string{1: "https://eth.example"},
			},
			wantErr: "",
		},
		{
			name: "external checks without registry url",
			config: Config{
				ValidationTimeout: time.Second,
				ExternalChecks:    true,
			},
			wantErr: "REGISTRY_API_URL",
		},
		{
			name:    "non-positive timeout",
			config:  Config{ValidationTimeout: 0},
			wantErr: "VALIDATION_TIMEOUT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := &Config{Env: "development"}
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	cfg.Env = "production"
	assert.False(t, cfg.IsDevelopment())
	assert.True(t, cfg.IsProduction())
}

func TestGetEnv(t *testing.T) {
	setEnv(t, "TEST_VAR", "custom_value")

	assert.Equal(t, "custom_value", getEnv("TEST_VAR", "default"))
	assert.Equal(t, "default", getEnv("NONEXISTENT_VAR", "default"))
}

func TestGetEnvInt64(t *testing.T) {
	setEnv(t, "TEST_INT", "42")
	setEnv(t, "TEST_INVALID", "not_a_number")

	assert.Equal(t, int64(42), getEnvInt64("TEST_INT", 0))
	assert.Equal(t, int64(99), getEnvInt64("NONEXISTENT_VAR", 99))
	assert.Equal(t, int64(99), getEnvInt64("TEST_INVALID", 99)) // Falls back on parse error
}

func TestGetEnvDuration(t *testing.T) {
	setEnv(t, "TEST_DUR", "250ms")
	setEnv(t, "TEST_DUR_BAD", "soon")

	assert.Equal(t, 250*time.Millisecond, getEnvDuration("TEST_DUR", time.Second))
	assert.Equal(t, time.Second, getEnvDuration("TEST_DUR_BAD", time.Second))
	assert.Equal(t, time.Second, getEnvDuration("NONEXISTENT_VAR", time.Second))
}
