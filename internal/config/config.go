// Package config loads and validates the service configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration for YAML parsing ("30s", "1m", ...).
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// RateLimit configures one token bucket tier.
type RateLimit struct {
	Requests int      `yaml:"requests"`
	Window   Duration `yaml:"window"`
	Burst    int      `yaml:"burst"`
}

// RateLimits holds the per-tier rate limit settings.
type RateLimits struct {
	// Read applies to all GET endpoints.
	Read RateLimit `yaml:"read"`
	// Reload applies to POST /reload, which rebuilds the whole dataset.
	Reload RateLimit `yaml:"reload"`
}

// Config is the full service configuration.
type Config struct {
	// Addr is the listen address, e.g. "localhost:8080" or ":8080".
	Addr string `yaml:"addr"`
	// Source is the path to the CSV export to serve.
	Source string `yaml:"source"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// PageSize is the default page size for queries that carry none.
	PageSize int `yaml:"page_size"`
	// Watch enables automatic reload when the source file changes.
	Watch bool `yaml:"watch"`
	// WatchDebounce is how long to wait after the last change event
	// before reloading.
	WatchDebounce Duration `yaml:"watch_debounce"`
	// CORSOrigin is the value sent in Access-Control-Allow-Origin.
	CORSOrigin string `yaml:"cors_origin"`
	// RateLimits configures per-IP request throttling.
	RateLimits RateLimits `yaml:"rate_limits"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Addr:          "localhost:8080",
		Source:        "./parts.csv",
		LogLevel:      "info",
		PageSize:      30,
		Watch:         true,
		WatchDebounce: Duration(500 * time.Millisecond),
		CORSOrigin:    "*",
		RateLimits: RateLimits{
			Read:   RateLimit{Requests: 300, Window: Duration(time.Minute), Burst: 50},
			Reload: RateLimit{Requests: 6, Window: Duration(time.Minute), Burst: 2},
		},
	}
}

// Load reads the configuration file at path, layering it over the defaults.
// A missing file yields the defaults; a malformed one is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the service cannot run with.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if c.Source == "" {
		return errors.New("source must not be empty")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	if c.PageSize < 1 {
		return errors.New("page_size must be at least 1")
	}
	if c.Watch && c.WatchDebounce.Std() <= 0 {
		return errors.New("watch_debounce must be positive when watch is enabled")
	}
	for name, rl := range map[string]RateLimit{"read": c.RateLimits.Read, "reload": c.RateLimits.Reload} {
		if rl.Requests < 1 {
			return fmt.Errorf("rate_limits.%s.requests must be at least 1", name)
		}
		if rl.Window.Std() <= 0 {
			return fmt.Errorf("rate_limits.%s.window must be positive", name)
		}
		if rl.Burst < 1 {
			return fmt.Errorf("rate_limits.%s.burst must be at least 1", name)
		}
	}
	return nil
}
