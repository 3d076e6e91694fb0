// Package poller tracks the parsing status of an uploaded resume by
// repeatedly querying the backend until the job reaches a terminal state
// or a bounded number of attempts is exhausted.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/optihire/internal/api"
)

// Defaults for the polling cadence.
const (
	DefaultInterval    = 2 * time.Second
	DefaultMaxAttempts = 60
)

// User-facing messages for the three failure exits.
const (
	MsgNetworkError   = "Network error while checking parsing status. Please try again."
	MsgTimeout        = "Resume parsing is taking longer than expected. Please check the status again later."
	MsgFailedFallback = "Resume parsing failed. Please try uploading again."
)

// StatusClient is the backend operation the poller depends on.
// *api.Client satisfies it.
type StatusClient interface {
	ParseStatus(ctx context.Context, id uuid.UUID) (*api.ParseStatus, error)
}

// State is a read-only snapshot of the current polling session.
type State struct {
	SubjectID   uuid.UUID
	Attempt     int
	Status      api.Status
	LastMessage string
}

// Config tunes the polling cadence.
type Config struct {
	Interval    time.Duration
	MaxAttempts int
}

// DefaultConfig returns the standard cadence: one check every two
// seconds, sixty checks before giving up.
func DefaultConfig() *Config {
	return &Config{
		Interval:    DefaultInterval,
		MaxAttempts: DefaultMaxAttempts,
	}
}

// Poller runs at most one polling session at a time. Starting a new
// subject cancels the session in flight; results belonging to a
// superseded session are discarded without touching state or callbacks.
type Poller struct {
	client      StatusClient
	interval    time.Duration
	maxAttempts int

	mu      sync.Mutex
	session int
	state   *State
	timer   *time.Timer

	// Latest-callback cells: updating these never restarts the session.
	onComplete func(id uuid.UUID)
	onError    func(message string)
}

// New creates a poller using client for status checks.
func New(client StatusClient, cfg *Config) *Poller {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Poller{
		client:      client,
		interval:    interval,
		maxAttempts: maxAttempts,
	}
}

// OnComplete sets the callback invoked once when a session's job reaches
// the Completed status. May be replaced while a session is running.
func (p *Poller) OnComplete(fn func(id uuid.UUID)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onComplete = fn
}

// OnError sets the callback invoked once when a session ends in failure,
// timeout, or a transport error. May be replaced while a session is running.
func (p *Poller) OnError(fn func(message string)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onError = fn
}

// Watch begins polling the given subject immediately. Any session in
// flight is cancelled first; its pending timer is cleared and a late
// response, if one arrives, is ignored.
func (p *Poller) Watch(ctx context.Context, id uuid.UUID) {
	p.mu.Lock()
	p.cancelLocked()
	p.state = &State{SubjectID: id, Status: api.StatusPending}
	session := p.session
	p.mu.Unlock()

	// First check runs without an initial delay.
	go p.cycle(ctx, session)
}

// Stop cancels the active session, if any. No callback fires for a
// stopped session.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cancelLocked()
}

// cancelLocked invalidates the current session and clears its timer and
// state. Callers must hold p.mu.
func (p *Poller) cancelLocked() {
	p.session++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.state = nil
}

// Watching reports whether a session is active and returns its snapshot.
func (p *Poller) Watching() (State, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == nil {
		return State{}, false
	}
	return *p.state, true
}

// cycle issues one status check for the given session. The next cycle is
// scheduled only after this response has been processed, so requests
// never overlap and slow responses slow the cadence.
func (p *Poller) cycle(ctx context.Context, session int) {
	p.mu.Lock()
	if session != p.session || p.state == nil {
		p.mu.Unlock()
		return
	}
	p.state.Attempt++
	attempt := p.state.Attempt
	id := p.state.SubjectID
	p.mu.Unlock()

	status, err := p.client.ParseStatus(ctx, id)

	p.mu.Lock()
	if session != p.session || p.state == nil {
		// A newer session (or Stop) superseded this one while the
		// request was in flight.
		p.mu.Unlock()
		return
	}

	if err != nil {
		p.cancelLocked()
		onError := p.onError
		p.mu.Unlock()
		if ctx.Err() != nil {
			// Consumer teardown, not a failure to report.
			return
		}
		if onError != nil {
			onError(MsgNetworkError)
		}
		return
	}

	p.state.Status = status.Status
	p.state.LastMessage = status.Message

	switch {
	case status.Status == api.StatusCompleted:
		p.cancelLocked()
		onComplete := p.onComplete
		p.mu.Unlock()
		if onComplete != nil {
			onComplete(id)
		}

	case status.Status == api.StatusFailed:
		p.cancelLocked()
		onError := p.onError
		p.mu.Unlock()
		message := MsgFailedFallback
		if status.ErrorDetails != nil && *status.ErrorDetails != "" {
			message = *status.ErrorDetails
		}
		if onError != nil {
			onError(message)
		}

	case attempt >= p.maxAttempts:
		p.cancelLocked()
		onError := p.onError
		p.mu.Unlock()
		if onError != nil {
			onError(MsgTimeout)
		}

	default:
		p.timer = time.AfterFunc(p.interval, func() {
			p.cycle(ctx, session)
		})
		p.mu.Unlock()
	}
}
