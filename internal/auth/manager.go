package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionKey is the store key holding the persisted session.
const SessionKey = "optihire_session"

// expiryLeeway refreshes tokens slightly before their actual expiry so
// a request never leaves with a token about to lapse in flight.
const expiryLeeway = 30 * time.Second

// SessionStore is the persistence capability the manager needs. The
// draft package's stores satisfy it.
type SessionStore interface {
	Get(key string) (value []byte, found bool, err error)
	Set(key string, value []byte) error
	Remove(key string) error
}

// ChangeEvent names a transition in auth state.
type ChangeEvent string

const (
	EventSignedIn       ChangeEvent = "signed_in"
	EventSignedOut      ChangeEvent = "signed_out"
	EventTokenRefreshed ChangeEvent = "token_refreshed"
)

// Manager owns the current session: it persists it across runs, refreshes
// the access token when it nears expiry, and notifies a subscriber of
// auth-state changes. It implements the API client's token source.
type Manager struct {
	client *Client
	store  SessionStore

	mu       sync.Mutex
	session  *Session
	onChange func(ChangeEvent, *Session)
}

// NewManager returns a manager backed by client and store. Any session
// persisted by a previous run is loaded immediately; a corrupt record is
// dropped rather than surfaced.
func NewManager(client *Client, store SessionStore) *Manager {
	m := &Manager{client: client, store: store}
	if raw, found, err := store.Get(SessionKey); err == nil && found {
		var s Session
		if json.Unmarshal(raw, &s) == nil && s.AccessToken != "" {
			m.session = &s
		}
	}
	return m
}

// OnChange registers the subscriber for auth-state transitions. The
// latest registration wins; the callback runs outside the manager lock.
func (m *Manager) OnChange(fn func(ChangeEvent, *Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

// Current returns the active session, or nil when signed out.
func (m *Manager) Current() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// SignUp registers a new account. When the service returns a usable
// session the user is signed in immediately.
func (m *Manager) SignUp(ctx context.Context, creds Credentials) (*Session, error) {
	session, err := m.client.SignUp(ctx, creds)
	if err != nil {
		return nil, err
	}
	if session.AccessToken != "" {
		m.adopt(session, EventSignedIn)
	}
	return session, nil
}

// SignIn authenticates and persists the resulting session.
func (m *Manager) SignIn(ctx context.Context, creds Credentials) (*Session, error) {
	session, err := m.client.SignInWithPassword(ctx, creds)
	if err != nil {
		return nil, err
	}
	m.adopt(session, EventSignedIn)
	return session, nil
}

// SignOut revokes the session server-side and clears it locally. The
// local session is cleared even when the revoke call fails.
func (m *Manager) SignOut(ctx context.Context) error {
	m.mu.Lock()
	session := m.session
	m.session = nil
	m.mu.Unlock()

	// A failed removal is non-fatal; the token expires on its own.
	_ = m.store.Remove(SessionKey)
	m.notify(EventSignedOut, nil)

	if session == nil {
		return nil
	}
	return m.client.SignOut(ctx, session.AccessToken)
}

// Token returns a valid access token, refreshing first when the current
// one is within the expiry leeway. Satisfies the API client's TokenSource.
func (m *Manager) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	session := m.session
	m.mu.Unlock()

	if session == nil {
		return "", ErrNoSession
	}
	if !tokenExpiring(session, time.Now()) {
		return session.AccessToken, nil
	}

	refreshed, err := m.client.Refresh(ctx, session.RefreshToken)
	if err != nil {
		if IsInvalidCredentials(err) {
			// The refresh token was revoked or consumed elsewhere.
			m.clearLocal()
			return "", fmt.Errorf("session expired: %w", err)
		}
		return "", err
	}
	m.adopt(refreshed, EventTokenRefreshed)
	return refreshed.AccessToken, nil
}

// User fetches the identity for the current session.
func (m *Manager) User(ctx context.Context) (*User, error) {
	token, err := m.Token(ctx)
	if err != nil {
		return nil, err
	}
	return m.client.User(ctx, token)
}

// UpdatePassword changes the signed-in user's password.
func (m *Manager) UpdatePassword(ctx context.Context, newPassword string) error {
	token, err := m.Token(ctx)
	if err != nil {
		return err
	}
	return m.client.UpdatePassword(ctx, token, newPassword)
}

// ResetPassword requests a recovery email; no session required.
func (m *Manager) ResetPassword(ctx context.Context, email string) error {
	return m.client.ResetPassword(ctx, email)
}

// adopt installs a session, persists it, and notifies the subscriber.
func (m *Manager) adopt(session *Session, event ChangeEvent) {
	m.mu.Lock()
	m.session = session
	m.mu.Unlock()

	if raw, err := json.Marshal(session); err == nil {
		_ = m.store.Set(SessionKey, raw)
	}
	m.notify(event, session)
}

func (m *Manager) clearLocal() {
	m.mu.Lock()
	m.session = nil
	m.mu.Unlock()
	_ = m.store.Remove(SessionKey)
	m.notify(EventSignedOut, nil)
}

func (m *Manager) notify(event ChangeEvent, session *Session) {
	m.mu.Lock()
	fn := m.onChange
	m.mu.Unlock()
	if fn != nil {
		fn(event, session)
	}
}

// tokenExpiring reports whether the access token is expired or will be
// within the leeway window. The exp claim is authoritative; the stored
// ExpiresAt is the fallback when the token does not parse as a JWT.
func tokenExpiring(session *Session, now time.Time) bool {
	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(session.AccessToken, jwt.MapClaims{})
	if err == nil {
		if exp, expErr := token.Claims.GetExpirationTime(); expErr == nil && exp != nil {
			return now.Add(expiryLeeway).After(exp.Time)
		}
	}
	if session.ExpiresAt > 0 {
		return now.Add(expiryLeeway).After(time.Unix(session.ExpiresAt, 0))
	}
	return false
}
