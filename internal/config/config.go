// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Defaults applied when neither the config file nor flags set a value.
const (
	DefaultTimeoutSeconds     = 30
	DefaultPollIntervalMillis = 2000
	DefaultPollMaxAttempts    = 60
	DefaultAutosaveMillis     = 2000
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Endpoints
	BaseURL     string `json:"base_url,omitempty"`      // OptiHire backend base URL (e.g. https://api.optihire.app)
	AuthURL     string `json:"auth_url,omitempty"`      // Identity provider base URL
	AuthAnonKey string `json:"auth_anon_key,omitempty"` // Identity provider publishable key sent as apikey header

	// Local state
	DataDir string `json:"data_dir,omitempty"` // Directory for session, draft, and settings files

	// Tuning
	TimeoutSeconds     int `json:"timeout_seconds,omitempty"`      // Per-request HTTP timeout
	PollIntervalMillis int `json:"poll_interval_ms,omitempty"`     // Delay between parse-status checks
	PollMaxAttempts    int `json:"poll_max_attempts,omitempty"`    // Status checks before giving up
	AutosaveMillis     int `json:"autosave_debounce_ms,omitempty"` // Quiet period before a draft flush

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed progress information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required fields are not checked here; they are enforced by CLI flag
// validation after merging.
func (c *Config) Validate() error {
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'timeout_seconds' must be non-negative")
	}
	if c.PollIntervalMillis < 0 {
		return fmt.Errorf("config error: 'poll_interval_ms' must be non-negative")
	}
	if c.PollMaxAttempts < 0 {
		return fmt.Errorf("config error: 'poll_max_attempts' must be non-negative")
	}
	if c.AutosaveMillis < 0 {
		return fmt.Errorf("config error: 'autosave_debounce_ms' must be non-negative")
	}
	if c.DataDir != "" {
		if info, err := os.Stat(c.DataDir); err == nil && !info.IsDir() {
			return fmt.Errorf("config error: 'data_dir' is not a directory: %s", c.DataDir)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.AuthURL == "" {
		result.AuthURL = defaults.AuthURL
	}
	if result.AuthAnonKey == "" {
		result.AuthAnonKey = defaults.AuthAnonKey
	}
	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}

	// Int fields: use default if zero
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if result.PollIntervalMillis == 0 {
		result.PollIntervalMillis = defaults.PollIntervalMillis
	}
	if result.PollMaxAttempts == 0 {
		result.PollMaxAttempts = defaults.PollMaxAttempts
	}
	if result.AutosaveMillis == 0 {
		result.AutosaveMillis = defaults.AutosaveMillis
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ApplyDefaults fills any remaining zero tuning values with package defaults.
func (c *Config) ApplyDefaults() {
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.PollIntervalMillis == 0 {
		c.PollIntervalMillis = DefaultPollIntervalMillis
	}
	if c.PollMaxAttempts == 0 {
		c.PollMaxAttempts = DefaultPollMaxAttempts
	}
	if c.AutosaveMillis == 0 {
		c.AutosaveMillis = DefaultAutosaveMillis
	}
	if c.DataDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.DataDir = filepath.Join(home, ".optihire")
		} else {
			c.DataDir = ".optihire"
		}
	}
}

// Timeout returns the per-request HTTP timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// PollInterval returns the delay between parse-status checks.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMillis) * time.Millisecond
}

// AutosaveDebounce returns the draft autosave quiet period.
func (c *Config) AutosaveDebounce() time.Duration {
	return time.Duration(c.AutosaveMillis) * time.Millisecond
}
