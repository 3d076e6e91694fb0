package draft

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/optihire/internal/api"
	"github.com/jonathan/optihire/internal/builder"
	"github.com/jonathan/optihire/internal/schemas"
)

// SaveStatus describes where the engine is in its persistence cycle.
type SaveStatus string

const (
	// StatusIdle means there are unsaved edits, or nothing has changed yet.
	StatusIdle SaveStatus = "idle"
	// StatusSaving means a write to the store is in progress.
	StatusSaving SaveStatus = "saving"
	// StatusSaved means the latest edits are persisted.
	StatusSaved SaveStatus = "saved"
	// StatusError means the most recent write failed; edits are retained
	// in memory and the next save retries.
	StatusError SaveStatus = "error"
)

// DefaultDebounce is the quiet period after the last edit before an
// autosave fires.
const DefaultDebounce = 2 * time.Second

// BackendClient is the subset of the API client the engine needs to
// commit a draft.
type BackendClient interface {
	CreateResume(ctx context.Context, req *api.CreateResumeRequest) (*api.Resume, error)
	UpdateResume(ctx context.Context, id uuid.UUID, req *api.UpdateResumeRequest) (*api.Resume, error)
}

// Options configures a new Engine.
type Options struct {
	// Debounce overrides the autosave quiet period. Zero means
	// DefaultDebounce.
	Debounce time.Duration
	// Warn receives non-fatal diagnostics such as schema version
	// mismatches. Nil discards them.
	Warn io.Writer
	// SchemaPath points at the envelope JSON Schema used for a
	// warn-only structural check on recovery. Empty skips the check.
	SchemaPath string
}

// Engine owns the working document and keeps a persisted copy of it in
// the store, debouncing writes so a burst of edits costs one save.
type Engine struct {
	store    Store
	debounce time.Duration
	warn     io.Writer
	schema   string

	mu        sync.Mutex
	doc       *builder.Document
	dirty     bool
	status    SaveStatus
	lastSaved time.Time
	timer     *time.Timer
	settings  Settings
	closed    bool
}

// NewEngine returns an engine working on doc. The document is cloned so
// callers cannot mutate engine state behind its back.
func NewEngine(store Store, doc *builder.Document, opts Options) *Engine {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if doc == nil {
		doc = builder.NewDocument()
	}
	return &Engine{
		store:    store,
		debounce: opts.Debounce,
		warn:     opts.Warn,
		schema:   opts.SchemaPath,
		doc:      doc.Clone(),
		status:   StatusIdle,
		settings: loadSettings(store),
	}
}

// Document returns a snapshot of the working document.
func (e *Engine) Document() *builder.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.Clone()
}

// Dirty reports whether there are edits not yet persisted.
func (e *Engine) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dirty
}

// Status returns the current save status.
func (e *Engine) Status() SaveStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// LastSaved returns when the draft was last persisted. The zero time
// means it never has been in this session.
func (e *Engine) LastSaved() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastSaved
}

// Apply runs mutate against the working document, marks it dirty, and
// restarts the autosave countdown. Each additional edit inside the quiet
// period pushes the save further out.
func (e *Engine) Apply(mutate func(*builder.Document)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	mutate(e.doc)
	e.dirty = true
	e.status = StatusIdle
	if !e.settings.AutosaveEnabled {
		return
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(e.debounce, func() {
		_ = e.save(true)
	})
}

// Flush persists the working document immediately, regardless of the
// debounce timer or the autosave setting.
func (e *Engine) Flush() error {
	return e.save(false)
}

// save writes the current document to the store. auto marks the envelope
// as an autosave. A clean document is a no-op.
func (e *Engine) save(auto bool) error {
	e.mu.Lock()
	if e.closed && auto {
		e.mu.Unlock()
		return nil
	}
	if !e.dirty {
		e.mu.Unlock()
		return nil
	}
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.status = StatusSaving
	env := &Envelope{
		Data: e.doc.Clone(),
		Metadata: Metadata{
			LastSaved:  time.Now().UTC(),
			Version:    SchemaVersion,
			IsAutoSave: auto,
		},
	}
	e.mu.Unlock()

	err := saveEnvelope(e.store, env)

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		// Keep the edits in memory; the next autosave or Flush retries.
		e.status = StatusError
		return fmt.Errorf("failed to save draft: %w", err)
	}
	if e.status == StatusSaving {
		// An edit that raced the write already flipped status back to
		// idle and re-marked the document dirty.
		e.dirty = false
		e.status = StatusSaved
	}
	e.lastSaved = env.Metadata.LastSaved
	return nil
}

// Close stops the autosave timer and flushes any pending edits.
func (e *Engine) Close() error {
	e.mu.Lock()
	e.closed = true
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.mu.Unlock()
	return e.save(false)
}

// LoadPending returns the persisted envelope awaiting a recover-or-discard
// decision, or nil when there is none. Schema mismatches are reported on
// the warn writer but do not block recovery.
func (e *Engine) LoadPending() (*Envelope, error) {
	env, err := loadEnvelope(e.store)
	if err != nil {
		return nil, err
	}
	if env == nil {
		return nil, nil
	}
	if env.Metadata.Version != SchemaVersion {
		e.warnf("draft was saved by a different version (%s, current %s); attempting recovery anyway",
			env.Metadata.Version, SchemaVersion)
	}
	if e.schema != "" {
		if path := schemas.ResolveSchemaPath(e.schema); path != "" {
			raw, _, getErr := e.store.Get(DraftKey)
			if getErr == nil {
				if verr := schemas.ValidateBytes(path, raw); verr != nil {
					e.warnf("draft does not match its schema: %v", verr)
				}
			}
		}
	}
	return env, nil
}

// Recover adopts the envelope's document as the working document. The
// envelope stays in the store until the draft is committed or discarded.
func (e *Engine) Recover(env *Envelope) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc = env.Data.Clone()
	e.doc.Normalize()
	e.dirty = false
	e.status = StatusSaved
	e.lastSaved = env.Metadata.LastSaved
}

// Discard removes the persisted draft without touching the working
// document.
func (e *Engine) Discard() error {
	if err := e.store.Remove(DraftKey); err != nil {
		return fmt.Errorf("failed to discard draft: %w", err)
	}
	return nil
}

// Commit validates the working document and pushes it to the backend:
// an update when the document carries a server id, a create otherwise.
// On success the persisted draft is cleared and the document adopts the
// server's identity; on failure the draft is left intact for retry.
func (e *Engine) Commit(ctx context.Context, backend BackendClient, userID uuid.UUID) (*api.Resume, error) {
	e.mu.Lock()
	doc := e.doc.Clone()
	e.mu.Unlock()

	if err := doc.ValidateForSave(); err != nil {
		return nil, err
	}

	var (
		saved *api.Resume
		err   error
	)
	if doc.ID == "" {
		saved, err = backend.CreateResume(ctx, doc.ToCreateRequest(userID))
	} else {
		id, parseErr := uuid.Parse(doc.ID)
		if parseErr != nil {
			return nil, fmt.Errorf("draft has an invalid resume id %q: %w", doc.ID, parseErr)
		}
		saved, err = backend.UpdateResume(ctx, id, doc.ToUpdateRequest())
	}
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.doc.ID = saved.ID.String()
	e.doc.VersionName = saved.VersionName
	e.dirty = false
	e.status = StatusSaved
	e.mu.Unlock()

	if err := e.store.Remove(DraftKey); err != nil {
		e.warnf("resume saved but the local draft could not be cleared: %v", err)
	}
	return saved, nil
}

// AutosaveEnabled reports whether debounced autosave is on.
func (e *Engine) AutosaveEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings.AutosaveEnabled
}

// SetAutosaveEnabled toggles debounced autosave and persists the choice.
// Turning it off cancels any pending countdown; edits then persist only
// through Flush or Close.
func (e *Engine) SetAutosaveEnabled(enabled bool) error {
	e.mu.Lock()
	e.settings.AutosaveEnabled = enabled
	if !enabled && e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	settings := e.settings
	e.mu.Unlock()
	return saveSettings(e.store, settings)
}

// LastTab returns the tab the builder was last on.
func (e *Engine) LastTab() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings.LastActiveTab
}

// SetLastTab records the active builder tab and persists it.
func (e *Engine) SetLastTab(tab string) error {
	e.mu.Lock()
	e.settings.LastActiveTab = tab
	settings := e.settings
	e.mu.Unlock()
	return saveSettings(e.store, settings)
}

func (e *Engine) warnf(format string, args ...any) {
	if e.warn == nil {
		return
	}
	fmt.Fprintf(e.warn, "Warning: "+format+"\n", args...)
}
