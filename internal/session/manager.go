// Package session owns the authentication lifecycle for a running
// client: restore on start, sign-in, sign-out, and a subscription
// mechanism so the rest of the process observes transitions without
// polling.
package session

import (
	"context"
	"log"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/applytrack/applytrack/internal/apperr"
)

type State int

const (
	// StateLoading holds from process start until Restore resolves.
	// Data access during Loading is refused.
	StateLoading State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// Session is the authenticated identity plus the bearer token that
// proves it to the persistence service.
type Session struct {
	UserID uuid.UUID
	Email  string
	Token  string
}

// Provider is the external identity provider boundary. The manager
// only wraps its primitives; credential verification happens there.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (Session, error)
	Verify(ctx context.Context, token string) (Session, error)
}

// Listener is invoked synchronously on every session transition.
type Listener func(state State, s Session)

// Manager holds the single current-session value for this process.
type Manager struct {
	provider  Provider
	tokenFile string

	mu        sync.Mutex
	state     State
	current   Session
	nextID    int
	listeners map[int]Listener
}

func NewManager(p Provider, tokenFile string) *Manager {
	return &Manager{
		provider:  p,
		tokenFile: tokenFile,
		state:     StateLoading,
		listeners: make(map[int]Listener),
	}
}

// Restore resolves the initial Loading state exactly once: a persisted
// token that still verifies yields Authenticated, anything else
// (no file, stale token, provider failure) yields Anonymous. A failed
// restore is not an error; the user simply signs in again.
func (m *Manager) Restore(ctx context.Context) State {
	m.mu.Lock()
	if m.state != StateLoading {
		st := m.state
		m.mu.Unlock()
		return st
	}
	m.mu.Unlock()

	b, err := os.ReadFile(m.tokenFile)
	if err != nil {
		m.transition(StateAnonymous, Session{})
		return StateAnonymous
	}
	s, err := m.provider.Verify(ctx, string(b))
	if err != nil {
		// Stale or expired token; drop it so the next start skips the round trip.
		_ = os.Remove(m.tokenFile)
		m.transition(StateAnonymous, Session{})
		return StateAnonymous
	}
	m.transition(StateAuthenticated, s)
	return StateAuthenticated
}

// SignIn exchanges credentials for a session. On success the session
// is persisted for future restores and becomes current. On failure the
// previous state is left untouched. Only Restore may leave Loading, so
// signing in before the initial resolution is refused.
func (m *Manager) SignIn(ctx context.Context, email, password string) (Session, error) {
	m.mu.Lock()
	if m.state == StateLoading {
		m.mu.Unlock()
		return Session{}, &apperr.PermissionError{Reason: "session not restored yet"}
	}
	m.mu.Unlock()

	s, err := m.provider.SignIn(ctx, email, password)
	if err != nil {
		return Session{}, err
	}
	if err := os.WriteFile(m.tokenFile, []byte(s.Token), 0600); err != nil {
		// The in-memory session still works; only restore-on-start is lost.
		log.Printf("Unable to persist session token: %v", err)
	}
	m.transition(StateAuthenticated, s)
	return s, nil
}

// SignOut clears the persisted token and the current session. During
// Loading it is a no-op; only Restore resolves the initial state.
func (m *Manager) SignOut() {
	m.mu.Lock()
	if m.state == StateLoading {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()
	_ = os.Remove(m.tokenFile)
	m.transition(StateAnonymous, Session{})
}

// Expire handles a session-expiry notification from the provider.
func (m *Manager) Expire() {
	m.mu.Lock()
	if m.state != StateAuthenticated {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()
	_ = os.Remove(m.tokenFile)
	m.transition(StateAnonymous, Session{})
}

// Subscribe registers a listener for session transitions and returns
// its unsubscribe function. Unsubscribing is deterministic: after the
// returned function completes the listener will not fire again.
func (m *Manager) Subscribe(fn Listener) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

// Current returns the session value and lifecycle state.
func (m *Manager) Current() (Session, State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current, m.state
}

// UserID is the identity accessor the record store reads. It refuses
// Loading as well as Anonymous: data access before Restore resolves is
// a caller bug, not an anonymous request.
func (m *Manager) UserID(ctx context.Context) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.state {
	case StateAuthenticated:
		return m.current.UserID, nil
	case StateLoading:
		return uuid.Nil, &apperr.PermissionError{Reason: "session not restored yet"}
	default:
		return uuid.Nil, &apperr.PermissionError{Reason: "no authenticated session"}
	}
}

func (m *Manager) transition(state State, s Session) {
	m.mu.Lock()
	if m.state == state && m.current.UserID == s.UserID {
		m.mu.Unlock()
		return
	}
	m.state = state
	m.current = s

	// Snapshot so a listener can unsubscribe itself mid-dispatch.
	snapshot := make([]Listener, 0, len(m.listeners))
	for _, fn := range m.listeners {
		snapshot = append(snapshot, fn)
	}
	m.mu.Unlock()

	for _, fn := range snapshot {
		fn(state, s)
	}
}
