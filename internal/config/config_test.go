package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "full config",
			content: `{
				"base_url": "https://api.optihire.app",
				"auth_url": "https://auth.optihire.app",
				"data_dir": "/tmp/optihire",
				"timeout_seconds": 15,
				"poll_interval_ms": 500,
				"poll_max_attempts": 10,
				"autosave_debounce_ms": 1000
			}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "https://api.optihire.app", cfg.BaseURL)
				assert.Equal(t, "https://auth.optihire.app", cfg.AuthURL)
				assert.Equal(t, 15, cfg.TimeoutSeconds)
				assert.Equal(t, 500, cfg.PollIntervalMillis)
				assert.Equal(t, 10, cfg.PollMaxAttempts)
				assert.Equal(t, 1000, cfg.AutosaveMillis)
			},
		},
		{
			name:    "empty object",
			content: `{}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Empty(t, cfg.BaseURL)
				assert.Zero(t, cfg.TimeoutSeconds)
			},
		},
		{
			name:    "invalid JSON",
			content: `{"base_url": `,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.content)
			cfg, err := LoadConfig(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"zero config is valid", Config{}, false},
		{"negative timeout", Config{TimeoutSeconds: -1}, true},
		{"negative poll interval", Config{PollIntervalMillis: -5}, true},
		{"negative max attempts", Config{PollMaxAttempts: -1}, true},
		{"negative debounce", Config{AutosaveMillis: -100}, true},
		{"positive values", Config{TimeoutSeconds: 30, PollIntervalMillis: 2000, PollMaxAttempts: 60, AutosaveMillis: 2000}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_DataDirIsFile(t *testing.T) {
	path := writeConfigFile(t, `{}`)
	cfg := Config{DataDir: path}
	assert.Error(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		BaseURL:            "https://default.example",
		AuthURL:            "https://auth.example",
		TimeoutSeconds:     30,
		PollIntervalMillis: 2000,
	}

	t.Run("empty fields take defaults", func(t *testing.T) {
		cfg := Config{}
		merged := cfg.MergeWithDefaults(defaults)
		assert.Equal(t, "https://default.example", merged.BaseURL)
		assert.Equal(t, "https://auth.example", merged.AuthURL)
		assert.Equal(t, 30, merged.TimeoutSeconds)
		assert.Equal(t, 2000, merged.PollIntervalMillis)
	})

	t.Run("set fields win over defaults", func(t *testing.T) {
		cfg := Config{BaseURL: "https://other.example", TimeoutSeconds: 5}
		merged := cfg.MergeWithDefaults(defaults)
		assert.Equal(t, "https://other.example", merged.BaseURL)
		assert.Equal(t, 5, merged.TimeoutSeconds)
	})
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, DefaultTimeoutSeconds, cfg.TimeoutSeconds)
	assert.Equal(t, DefaultPollIntervalMillis, cfg.PollIntervalMillis)
	assert.Equal(t, DefaultPollMaxAttempts, cfg.PollMaxAttempts)
	assert.Equal(t, DefaultAutosaveMillis, cfg.AutosaveMillis)
	assert.NotEmpty(t, cfg.DataDir)

	assert.Equal(t, 30*time.Second, cfg.Timeout())
	assert.Equal(t, 2*time.Second, cfg.PollInterval())
	assert.Equal(t, 2*time.Second, cfg.AutosaveDebounce())
}

func TestApplyDefaults_PreservesExisting(t *testing.T) {
	cfg := Config{TimeoutSeconds: 10, DataDir: "/tmp/x"}
	cfg.ApplyDefaults()
	assert.Equal(t, 10, cfg.TimeoutSeconds)
	assert.Equal(t, "/tmp/x", cfg.DataDir)
}
