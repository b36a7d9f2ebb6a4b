package session

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/aretw0/abenteuer/internal/logging"
	"github.com/aretw0/abenteuer/pkg/domain"
	"github.com/google/uuid"
)

// Resolver maps a story id to the navigator for that story.
type Resolver interface {
	Navigator(storyID string) (Navigator, error)
}

// Tracker observes managed session lifetimes. *metrics.Collector
// implements it.
type Tracker interface {
	SessionStarted()
	SessionEnded()
}

type nopTracker struct{}

func (nopTracker) SessionStarted() {}
func (nopTracker) SessionEnded()   {}

// Manager keeps the live sessions of a multi-client host.
// Sessions exist only in memory and are torn down on Delete or CloseAll.
type Manager struct {
	resolver Resolver
	opts     []Option
	logger   *slog.Logger
	tracker  Tracker

	mu       sync.Mutex
	sessions map[string]*Session
	onChange func(id string, view domain.View)
}

// ManagerOption configures the Manager.
type ManagerOption func(*Manager)

// WithSessionOptions applies opts to every session the Manager creates.
func WithSessionOptions(opts ...Option) ManagerOption {
	return func(m *Manager) {
		m.opts = append(m.opts, opts...)
	}
}

// WithManagerLogger configures a logger for the Manager and its sessions.
func WithManagerLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithTracker reports every session the Manager creates and ends.
func WithTracker(t Tracker) ManagerOption {
	return func(m *Manager) {
		m.tracker = t
	}
}

// NewManager creates a Session Manager resolving stories through resolver.
func NewManager(resolver Resolver, opts ...ManagerOption) *Manager {
	m := &Manager{
		resolver: resolver,
		sessions: make(map[string]*Session),
		logger:   logging.NewNop(),
		tracker:  nopTracker{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create starts a new session for storyID and registers it under a fresh id.
func (m *Manager) Create(ctx context.Context, storyID, requestedStart string) (*Session, error) {
	nav, err := m.resolver.Navigator(storyID)
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	id := uuid.NewString()
	opts := append([]Option{WithLogger(m.logger)}, m.opts...)
	opts = append(opts, WithID(id), WithOnChange(func(v domain.View) {
		m.notify(id, v)
	}))
	s := New(ctx, nav, requestedStart, opts...)

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()
	m.tracker.SessionStarted()

	m.logger.InfoContext(ctx, "session created", "session_id", id, "story", storyID)
	return s, nil
}

// OnChange registers an observer for deferred transitions completing in
// any managed session. It replaces the previous observer.
func (m *Manager) OnChange(fn func(id string, view domain.View)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

func (m *Manager) notify(id string, view domain.View) {
	m.mu.Lock()
	fn := m.onChange
	m.mu.Unlock()

	if fn != nil {
		fn(id, view)
	}
}

// Get returns the session registered under id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

// Delete closes the session and forgets it.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return domain.ErrSessionNotFound
	}
	s.Close()
	m.tracker.SessionEnded()
	m.logger.Info("session ended", "session_id", id)
	return nil
}

// List returns the ids of live sessions in lexical order.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CloseAll tears down every live session.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Close()
		m.tracker.SessionEnded()
	}
}
