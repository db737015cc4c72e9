package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The tests shadow every recognized variable so they are independent of the
// shell they run in.
func TestLoadDefaults(t *testing.T) {
	t.Setenv("BASE_URL", "http://localhost:8080")
	t.Setenv("PORT", "8080")
	t.Setenv("API_KEY", "")
	t.Setenv("TIMEOUT_SECONDS", "10")
	t.Setenv("MAX_RETRIES", "3")
	t.Setenv("RETRY_BASE_DELAY_MS", "500")
	t.Setenv("PROBE_TIMEOUT_SECONDS", "10")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.Authenticated())
	assert.Equal(t, 10*time.Second, cfg.Timeout())
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.RetryBaseDelay())
	assert.Equal(t, 10*time.Second, cfg.ProbeTimeout())
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("BASE_URL", "http://mockserver:9090")
	t.Setenv("PORT", "9090")
	t.Setenv("API_KEY", "secret-key-123")
	t.Setenv("TIMEOUT_SECONDS", "2.5")
	t.Setenv("MAX_RETRIES", "5")
	t.Setenv("RETRY_BASE_DELAY_MS", "50")
	t.Setenv("PROBE_TIMEOUT_SECONDS", "3")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "http://mockserver:9090", cfg.BaseURL)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.Authenticated())
	assert.Equal(t, "secret-key-123", cfg.APIKey)
	assert.Equal(t, 2500*time.Millisecond, cfg.Timeout())
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, 50*time.Millisecond, cfg.RetryBaseDelay())
}

func TestExplicitOverridesWinOverEnvironment(t *testing.T) {
	t.Setenv("BASE_URL", "http://from-env:8080")
	t.Setenv("MAX_RETRIES", "5")

	cfg, err := Load(map[string]interface{}{
		"base_url":    "http://from-flag:8081",
		"max_retries": 2,
	})
	require.NoError(t, err)

	assert.Equal(t, "http://from-flag:8081", cfg.BaseURL)
	assert.Equal(t, 2, cfg.MaxRetries)
}

func TestLoadRejectsInvalidBaseURL(t *testing.T) {
	for _, bad := range []string{"not a url", "localhost:8080", "ftp://example.com", "http://"} {
		t.Run(bad, func(t *testing.T) {
			t.Setenv("BASE_URL", bad)

			_, err := Load(nil)
			require.Error(t, err)
			var cfgErr *ConfigurationError
			assert.True(t, errors.As(err, &cfgErr), "expected a ConfigurationError, got %T", err)
		})
	}
}

func TestLoadRejectsInvalidNumericSettings(t *testing.T) {
	cases := map[string]map[string]interface{}{
		"zero retries":     {"max_retries": 0},
		"negative timeout": {"timeout_seconds": -1.0},
		"port too large":   {"port": 70000},
	}
	for name, overrides := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(overrides)
			require.Error(t, err)
			var cfgErr *ConfigurationError
			assert.True(t, errors.As(err, &cfgErr))
		})
	}
}
