package draft

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonathan/optihire/internal/builder"
)

const (
	// DraftKey is the store key holding the in-progress document.
	DraftKey = "optihire_resume_draft"
	// SettingsKey is the store key holding builder UI settings.
	SettingsKey = "optihire_builder_settings"

	// SchemaVersion is stamped on every saved envelope. Loads compare
	// it and warn on mismatch but still attempt recovery.
	SchemaVersion = "1.0"
)

// Metadata describes when and how an envelope was written.
type Metadata struct {
	LastSaved  time.Time `json:"last_saved"`
	Version    string    `json:"version"`
	IsAutoSave bool      `json:"is_auto_save"`
}

// Envelope wraps a document snapshot with save metadata.
type Envelope struct {
	Data     *builder.Document `json:"data"`
	Metadata Metadata          `json:"metadata"`
}

// Settings holds builder preferences that survive restarts independently
// of any draft.
type Settings struct {
	AutosaveEnabled bool   `json:"autosave_enabled"`
	LastActiveTab   string `json:"last_active_tab"`
}

// DefaultSettings returns the settings used before any have been saved.
func DefaultSettings() Settings {
	return Settings{
		AutosaveEnabled: true,
		LastActiveTab:   builder.TabPersonal,
	}
}

// loadEnvelope reads and decodes the draft envelope from the store.
// A missing key returns (nil, nil). A corrupt value is reported as an
// error so the caller can decide whether to discard it.
func loadEnvelope(store Store) (*Envelope, error) {
	raw, found, err := store.Get(DraftKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("draft is corrupt: %w", err)
	}
	if env.Data == nil {
		return nil, fmt.Errorf("draft is corrupt: missing document")
	}
	return &env, nil
}

// saveEnvelope encodes and writes the envelope to the store.
func saveEnvelope(store Store, env *Envelope) error {
	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	return store.Set(DraftKey, raw)
}

// loadSettings reads builder settings, falling back to defaults when the
// key is absent or unreadable.
func loadSettings(store Store) Settings {
	raw, found, err := store.Get(SettingsKey)
	if err != nil || !found {
		return DefaultSettings()
	}
	var s Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		return DefaultSettings()
	}
	if s.LastActiveTab == "" {
		s.LastActiveTab = builder.TabPersonal
	}
	return s
}

// saveSettings encodes and writes builder settings.
func saveSettings(store Store, s Settings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return store.Set(SettingsKey, raw)
}
