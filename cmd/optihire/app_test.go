package main

import (
	"errors"
	"testing"

	"github.com/jonathan/optihire/internal/api"
	"github.com/jonathan/optihire/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppConfig_EnvFallbackAndDefaults(t *testing.T) {
	t.Setenv("OPTIHIRE_API_URL", "https://api.example.com")
	t.Setenv("OPTIHIRE_AUTH_URL", "https://auth.example.com")
	t.Setenv("OPTIHIRE_ANON_KEY", "anon")
	t.Setenv("OPTIHIRE_DATA_DIR", t.TempDir())

	cfg, err := loadAppConfig(rootCmd)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.BaseURL)
	assert.Equal(t, "https://auth.example.com", cfg.AuthURL)
	assert.Equal(t, "anon", cfg.AuthAnonKey)
	assert.Equal(t, 2000, cfg.PollIntervalMillis)
	assert.Equal(t, 60, cfg.PollMaxAttempts)
	assert.Equal(t, 30, cfg.TimeoutSeconds)
}

func TestFriendlyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "conflict becomes duplicate-name text",
			err:  &api.APIError{StatusCode: 409, Detail: "duplicate"},
			want: "version name",
		},
		{
			name: "no session",
			err:  auth.ErrNoSession,
			want: "optihire login",
		},
		{
			name: "auth error uses user message",
			err:  &auth.AuthError{StatusCode: 400, Message: "Invalid login credentials"},
			want: "Invalid login credentials",
		},
		{
			name: "transport error is softened",
			err:  &api.TransportError{Op: "GET /x", Cause: errors.New("connection refused")},
			want: "could not reach the server",
		},
		{
			name: "other errors pass through",
			err:  errors.New("boom"),
			want: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, friendlyError(tt.err).Error(), tt.want)
		})
	}
}
