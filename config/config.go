// Package config resolves the harness configuration from layered sources:
// explicit overrides take precedence over process environment variables, which
// take precedence over built-in defaults. A .env file in the working directory
// is loaded into the process environment automatically.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
)

// Config is the immutable environment configuration for one test session.
type Config struct {
	BaseURL             string  `koanf:"base_url" validate:"required"`
	Port                int     `koanf:"port" validate:"min=1,max=65535"`
	APIKey              string  `koanf:"api_key"`
	TimeoutSeconds      float64 `koanf:"timeout_seconds" validate:"gt=0"`
	MaxRetries          int     `koanf:"max_retries" validate:"min=1"`
	RetryBaseDelayMS    int     `koanf:"retry_base_delay_ms" validate:"min=1"`
	ProbeTimeoutSeconds float64 `koanf:"probe_timeout_seconds" validate:"gt=0"`
}

// ConfigurationError indicates bad or missing environment setup. It is fatal:
// the session aborts before any test runs.
type ConfigurationError struct {
	Setting string
	Err     error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error (%s): %s", e.Setting, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

var defaults = map[string]interface{}{
	"base_url":              "http://localhost:8080",
	"port":                  8080,
	"timeout_seconds":       10.0,
	"max_retries":           3,
	"retry_base_delay_ms":   500,
	"probe_timeout_seconds": 10.0,
}

// recognized restricts which environment variables the resolver reads.
var recognized = map[string]bool{
	"BASE_URL":              true,
	"PORT":                  true,
	"API_KEY":               true,
	"TIMEOUT_SECONDS":       true,
	"MAX_RETRIES":           true,
	"RETRY_BASE_DELAY_MS":   true,
	"PROBE_TIMEOUT_SECONDS": true,
}

// Load resolves the configuration. Overrides, if non-nil, use the same keys as
// the defaults map (lowercase) and win over everything else.
func Load(overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, &ConfigurationError{Setting: "defaults", Err: err}
	}

	err := k.Load(env.Provider("", ".", func(s string) string {
		if !recognized[s] {
			return ""
		}
		return strings.ToLower(s)
	}), nil)
	if err != nil {
		return nil, &ConfigurationError{Setting: "environment", Err: err}
	}

	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, &ConfigurationError{Setting: "overrides", Err: err}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, &ConfigurationError{Setting: "unmarshal", Err: err}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, &ConfigurationError{Setting: "validation", Err: err}
	}

	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, &ConfigurationError{Setting: "BASE_URL", Err: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, &ConfigurationError{
			Setting: "BASE_URL",
			Err:     fmt.Errorf("not a valid http(s) URL: %q", cfg.BaseURL),
		}
	}

	return cfg, nil
}

// Authenticated reports whether an API key is configured. No key means the
// unauthenticated code path is exercised, not an error.
func (c *Config) Authenticated() bool {
	return c.APIKey != ""
}

// Timeout is the per-attempt wall clock timeout for HTTP requests.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds * float64(time.Second))
}

// RetryBaseDelay is the backoff delay before the first retry; it doubles on
// each subsequent attempt.
func (c *Config) RetryBaseDelay() time.Duration {
	return time.Duration(c.RetryBaseDelayMS) * time.Millisecond
}

// ProbeTimeout is how long the session-level reachability probe will keep
// polling the server before giving up.
func (c *Config) ProbeTimeout() time.Duration {
	return time.Duration(c.ProbeTimeoutSeconds * float64(time.Second))
}
