package draft

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/optihire/internal/api"
	"github.com/jonathan/optihire/internal/builder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore wraps a store and counts writes per key.
type countingStore struct {
	Store
	mu     sync.Mutex
	writes map[string]int
}

func newCountingStore() *countingStore {
	return &countingStore{Store: NewMemStore(), writes: make(map[string]int)}
}

func (s *countingStore) Set(key string, value []byte) error {
	s.mu.Lock()
	s.writes[key]++
	s.mu.Unlock()
	return s.Store.Set(key, value)
}

func (s *countingStore) writeCount(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes[key]
}

func testEngine(t *testing.T, store Store) *Engine {
	t.Helper()
	e := NewEngine(store, nil, Options{Debounce: 20 * time.Millisecond})
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func TestApply_BurstCollapsesToOneWrite(t *testing.T) {
	store := newCountingStore()
	e := testEngine(t, store)

	for i := 0; i < 10; i++ {
		e.Apply(func(d *builder.Document) {
			d.Summary = "edit"
		})
	}

	require.Eventually(t, func() bool {
		return e.Status() == StatusSaved
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, 1, store.writeCount(DraftKey))
	assert.False(t, e.Dirty())
	assert.False(t, e.LastSaved().IsZero())
}

func TestApply_EditDuringQuietPeriodRestartsCountdown(t *testing.T) {
	store := newCountingStore()
	e := NewEngine(store, nil, Options{Debounce: 50 * time.Millisecond})
	defer e.Close()

	e.Apply(func(d *builder.Document) { d.Summary = "one" })
	time.Sleep(25 * time.Millisecond)
	e.Apply(func(d *builder.Document) { d.Summary = "two" })
	time.Sleep(30 * time.Millisecond)

	// 55ms after the first edit, but only 30ms after the second: the
	// countdown restarted, so nothing is saved yet.
	assert.Equal(t, 0, store.writeCount(DraftKey))
	assert.True(t, e.Dirty())
}

func TestFlush_WritesImmediately(t *testing.T) {
	store := newCountingStore()
	e := NewEngine(store, nil, Options{Debounce: time.Hour})
	defer e.Close()

	e.Apply(func(d *builder.Document) {
		d.VersionName = "Primary"
		d.Personal.FullName = "Ada Lovelace"
	})
	require.NoError(t, e.Flush())

	assert.Equal(t, 1, store.writeCount(DraftKey))
	assert.Equal(t, StatusSaved, e.Status())

	env, err := loadEnvelope(store)
	require.NoError(t, err)
	require.NotNil(t, env)
	assert.False(t, env.Metadata.IsAutoSave)
	assert.Equal(t, SchemaVersion, env.Metadata.Version)
}

func TestFlush_CleanDocumentIsNoOp(t *testing.T) {
	store := newCountingStore()
	e := testEngine(t, store)

	require.NoError(t, e.Flush())
	assert.Equal(t, 0, store.writeCount(DraftKey))
}

func TestSaveRoundTrip_DocumentSurvivesReload(t *testing.T) {
	store := NewMemStore()
	e := NewEngine(store, nil, Options{Debounce: time.Hour})
	defer e.Close()

	e.Apply(func(d *builder.Document) {
		d.VersionName = "Primary"
		d.Personal.FullName = "Ada Lovelace"
		d.Summary = "Mathematician and engineer."
		d.AddExperience(builder.ExperienceEntry{
			CompanyName:  "Analytical Engines Ltd",
			JobTitle:     "Programmer",
			Achievements: []string{"Wrote the first program"},
		})
		d.AddSkill(builder.SkillEntry{SkillName: "Go", ProficiencyLevel: "Expert"})
	})
	require.NoError(t, e.Flush())
	want := e.Document()

	restarted := NewEngine(store, nil, Options{Debounce: time.Hour})
	defer restarted.Close()

	env, err := restarted.LoadPending()
	require.NoError(t, err)
	require.NotNil(t, env)
	restarted.Recover(env)

	assert.Equal(t, want, restarted.Document())
	assert.Equal(t, StatusSaved, restarted.Status())
	assert.False(t, restarted.Dirty())
}

func TestLoadPending_NoDraft(t *testing.T) {
	e := testEngine(t, NewMemStore())

	env, err := e.LoadPending()
	require.NoError(t, err)
	assert.Nil(t, env)
}

func TestLoadPending_CorruptDraft(t *testing.T) {
	store := NewMemStore()
	require.NoError(t, store.Set(DraftKey, []byte("{not json")))
	e := testEngine(t, store)

	_, err := e.LoadPending()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt")
}

func TestLoadPending_VersionMismatchWarnsButRecovers(t *testing.T) {
	store := NewMemStore()
	env := &Envelope{
		Data: builder.NewDocument(),
		Metadata: Metadata{
			LastSaved: time.Now().UTC(),
			Version:   "0.9",
		},
	}
	raw, err := json.Marshal(env)
	require.NoError(t, err)
	require.NoError(t, store.Set(DraftKey, raw))

	var warnings bytes.Buffer
	e := NewEngine(store, nil, Options{Debounce: time.Hour, Warn: &warnings})
	defer e.Close()

	loaded, err := e.LoadPending()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Contains(t, warnings.String(), "different version")
}

func TestDiscard_RemovesDraftKeepsDocument(t *testing.T) {
	store := NewMemStore()
	e := NewEngine(store, nil, Options{Debounce: time.Hour})
	defer e.Close()

	e.Apply(func(d *builder.Document) { d.Summary = "kept in memory" })
	require.NoError(t, e.Flush())

	require.NoError(t, e.Discard())

	_, found, err := store.Get(DraftKey)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "kept in memory", e.Document().Summary)
}

func TestSave_StoreFailureKeepsEditsAndRetries(t *testing.T) {
	store := NewMemStore()
	store.FailWrites = true
	e := NewEngine(store, nil, Options{Debounce: time.Hour})
	defer e.Close()

	e.Apply(func(d *builder.Document) { d.Summary = "retained" })
	err := e.Flush()
	require.Error(t, err)
	assert.Equal(t, StatusError, e.Status())
	assert.True(t, e.Dirty())
	assert.Equal(t, "retained", e.Document().Summary)

	store.FailWrites = false
	require.NoError(t, e.Flush())
	assert.Equal(t, StatusSaved, e.Status())
	assert.False(t, e.Dirty())
}

func TestSetAutosaveEnabled_OffStopsDebouncedSaves(t *testing.T) {
	store := newCountingStore()
	e := NewEngine(store, nil, Options{Debounce: 20 * time.Millisecond})
	defer e.Close()

	require.NoError(t, e.SetAutosaveEnabled(false))
	e.Apply(func(d *builder.Document) { d.Summary = "unsaved" })
	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, 0, store.writeCount(DraftKey))
	assert.True(t, e.Dirty())

	// Manual save still works.
	require.NoError(t, e.Flush())
	assert.Equal(t, 1, store.writeCount(DraftKey))
}

func TestSettings_PersistAcrossEngines(t *testing.T) {
	store := NewMemStore()

	e := NewEngine(store, nil, Options{Debounce: time.Hour})
	assert.True(t, e.AutosaveEnabled())
	assert.Equal(t, builder.TabPersonal, e.LastTab())

	require.NoError(t, e.SetAutosaveEnabled(false))
	require.NoError(t, e.SetLastTab(builder.TabSkills))
	require.NoError(t, e.Close())

	restarted := NewEngine(store, nil, Options{Debounce: time.Hour})
	defer restarted.Close()
	assert.False(t, restarted.AutosaveEnabled())
	assert.Equal(t, builder.TabSkills, restarted.LastTab())
}

func TestClose_FlushesPendingEdits(t *testing.T) {
	store := newCountingStore()
	e := NewEngine(store, nil, Options{Debounce: time.Hour})

	e.Apply(func(d *builder.Document) { d.Summary = "flushed on close" })
	require.NoError(t, e.Close())

	assert.Equal(t, 1, store.writeCount(DraftKey))

	env, err := loadEnvelope(store)
	require.NoError(t, err)
	require.NotNil(t, env)
	assert.Equal(t, "flushed on close", env.Data.Summary)
}

// stubBackend records commit calls and returns scripted results.
type stubBackend struct {
	created   *api.CreateResumeRequest
	updated   *api.UpdateResumeRequest
	updatedID uuid.UUID
	result    *api.Resume
	err       error
}

func (b *stubBackend) CreateResume(_ context.Context, req *api.CreateResumeRequest) (*api.Resume, error) {
	b.created = req
	return b.result, b.err
}

func (b *stubBackend) UpdateResume(_ context.Context, id uuid.UUID, req *api.UpdateResumeRequest) (*api.Resume, error) {
	b.updatedID = id
	b.updated = req
	return b.result, b.err
}

func TestCommit_CreatesWhenDocumentHasNoServerID(t *testing.T) {
	store := NewMemStore()
	e := NewEngine(store, nil, Options{Debounce: time.Hour})
	defer e.Close()

	e.Apply(func(d *builder.Document) {
		d.VersionName = "Primary"
		d.Personal.FullName = "Ada Lovelace"
	})
	require.NoError(t, e.Flush())

	userID := uuid.New()
	serverID := uuid.New()
	backend := &stubBackend{result: &api.Resume{ID: serverID, VersionName: "Primary"}}

	saved, err := e.Commit(context.Background(), backend, userID)
	require.NoError(t, err)
	assert.Equal(t, serverID, saved.ID)

	require.NotNil(t, backend.created)
	assert.Equal(t, userID, backend.created.UserID)
	assert.Equal(t, "Primary", backend.created.VersionName)
	assert.Nil(t, backend.updated)

	// The document adopted the server identity and the draft is cleared.
	assert.Equal(t, serverID.String(), e.Document().ID)
	_, found, err := store.Get(DraftKey)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCommit_UpdatesWhenDocumentHasServerID(t *testing.T) {
	store := NewMemStore()
	e := NewEngine(store, nil, Options{Debounce: time.Hour})
	defer e.Close()

	id := uuid.New()
	e.Apply(func(d *builder.Document) {
		d.ID = id.String()
		d.VersionName = "Primary v2"
		d.Personal.FullName = "Ada Lovelace"
	})

	backend := &stubBackend{result: &api.Resume{ID: id, VersionName: "Primary v2"}}

	_, err := e.Commit(context.Background(), backend, uuid.New())
	require.NoError(t, err)

	assert.Nil(t, backend.created)
	require.NotNil(t, backend.updated)
	assert.Equal(t, id, backend.updatedID)
	require.NotNil(t, backend.updated.VersionName)
	assert.Equal(t, "Primary v2", *backend.updated.VersionName)
}

func TestCommit_ValidationFailureSkipsBackend(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*builder.Document)
		wantField string
	}{
		{
			name:      "missing version name",
			mutate:    func(d *builder.Document) { d.Personal.FullName = "Ada Lovelace" },
			wantField: "version_name",
		},
		{
			name:      "missing full name",
			mutate:    func(d *builder.Document) { d.VersionName = "Primary" },
			wantField: "full_name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(NewMemStore(), nil, Options{Debounce: time.Hour})
			defer e.Close()
			e.Apply(tt.mutate)

			backend := &stubBackend{}
			_, err := e.Commit(context.Background(), backend, uuid.New())
			require.Error(t, err)

			var verr *builder.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantField, verr.Field)
			assert.Nil(t, backend.created)
			assert.Nil(t, backend.updated)
		})
	}
}

func TestCommit_BackendFailureLeavesDraftIntact(t *testing.T) {
	store := NewMemStore()
	e := NewEngine(store, nil, Options{Debounce: time.Hour})
	defer e.Close()

	e.Apply(func(d *builder.Document) {
		d.VersionName = "Primary"
		d.Personal.FullName = "Ada Lovelace"
	})
	require.NoError(t, e.Flush())

	backend := &stubBackend{err: &api.APIError{StatusCode: 409, Detail: "duplicate"}}
	_, err := e.Commit(context.Background(), backend, uuid.New())
	require.Error(t, err)
	assert.True(t, api.IsConflict(err))

	// The persisted draft survives for retry.
	_, found, getErr := store.Get(DraftKey)
	require.NoError(t, getErr)
	assert.True(t, found)
	assert.Empty(t, e.Document().ID)
}
