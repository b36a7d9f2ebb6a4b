package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/abenteuer/internal/logging"
	"github.com/aretw0/abenteuer/pkg/domain"
)

// DefaultFeedbackDelay is how long feedback stays on screen before the
// deferred transition completes.
const DefaultFeedbackDelay = 2000 * time.Millisecond

// Navigator computes transitions over a domain.State.
// *runtime.Engine is the production implementation.
type Navigator interface {
	Start(ctx context.Context, requestedStart string) *domain.State
	Reset(ctx context.Context, requestedStart string) *domain.State
	Select(ctx context.Context, state *domain.State, sceneID, choiceID string) (*domain.State, error)
	Commit(ctx context.Context, state *domain.State) (*domain.State, error)
	Back(ctx context.Context, state *domain.State) (*domain.State, error)
	View(state *domain.State) domain.View
}

// Session is one user's live traversal of a story.
// It is safe for concurrent use; the scheduled feedback callback and caller
// events are serialized by an internal lock.
type Session struct {
	id    string
	nav   Navigator
	entry string

	delay     time.Duration
	scheduler Scheduler
	onChange  func(domain.View)
	logger    *slog.Logger

	mu      sync.Mutex
	state   *domain.State
	epoch   uint64
	timer   Timer
	settled chan struct{}
	closed  bool
}

// Option configures a Session.
type Option func(*Session)

// WithFeedbackDelay sets the feedback display interval.
func WithFeedbackDelay(d time.Duration) Option {
	return func(s *Session) {
		s.delay = d
	}
}

// WithScheduler replaces the timer source (tests use a manual scheduler).
func WithScheduler(scheduler Scheduler) Option {
	return func(s *Session) {
		s.scheduler = scheduler
	}
}

// WithOnChange registers an observer called after a deferred transition
// completes asynchronously. It runs outside the session lock.
func WithOnChange(fn func(domain.View)) Option {
	return func(s *Session) {
		s.onChange = fn
	}
}

// WithLogger configures a logger for the Session.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithID assigns an identifier, used in logs and by the Manager.
func WithID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// New starts a traversal at requestedStart (falling back to the story default).
func New(ctx context.Context, nav Navigator, requestedStart string, opts ...Option) *Session {
	s := &Session{
		nav:       nav,
		entry:     requestedStart,
		delay:     DefaultFeedbackDelay,
		scheduler: RealScheduler,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id != "" {
		s.logger = s.logger.With("session_id", s.id)
	}

	s.state = nav.Start(ctx, requestedStart)
	return s
}

// ID returns the session identifier (empty for standalone sessions).
func (s *Session) ID() string {
	return s.id
}

// View returns the current presentation snapshot.
func (s *Session) View() domain.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.View(s.state)
}

// State returns a copy of the current traversal state.
func (s *Session) State() *domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Choose applies a choice from sceneID. A choice with feedback enters the
// pending phase and schedules its completion after the feedback delay.
// Ignorable rejections (stale scene, pending transition, terminal scene)
// return the unchanged view and an error matching domain.IsIgnorable.
func (s *Session) Choose(ctx context.Context, sceneID, choiceID string) (domain.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.View{}, domain.ErrSessionClosed
	}

	next, err := s.nav.Select(ctx, s.state, sceneID, choiceID)
	if err != nil {
		s.logger.DebugContext(ctx, "choice ignored", "scene", sceneID, "choice", choiceID, "err", err)
		return s.nav.View(s.state), err
	}

	s.state = next
	if next.Pending() {
		s.schedule()
	}
	return s.nav.View(s.state), nil
}

// Back returns to the previous scene. No-op at the entry scene.
func (s *Session) Back(ctx context.Context) (domain.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.View{}, domain.ErrSessionClosed
	}

	next, err := s.nav.Back(ctx, s.state)
	if err != nil {
		return s.nav.View(s.state), err
	}
	s.state = next
	return s.nav.View(s.state), nil
}

// Reset discards history and any pending transition, then starts again at
// requestedStart.
func (s *Session) Reset(ctx context.Context, requestedStart string) (domain.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.View{}, domain.ErrSessionClosed
	}

	s.cancel()
	s.state = s.nav.Reset(ctx, requestedStart)
	return s.nav.View(s.state), nil
}

// Restart resets to the entry point this session was created with.
func (s *Session) Restart(ctx context.Context) (domain.View, error) {
	return s.Reset(ctx, s.entry)
}

// Await blocks until no deferred transition is pending, then returns the
// current view. It returns early with ctx.Err() on cancellation.
func (s *Session) Await(ctx context.Context) (domain.View, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domain.View{}, domain.ErrSessionClosed
	}
	if !s.state.Pending() {
		view := s.nav.View(s.state)
		s.mu.Unlock()
		return view, nil
	}
	settled := s.settled
	s.mu.Unlock()

	select {
	case <-ctx.Done():
		return domain.View{}, ctx.Err()
	case <-settled:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.View{}, domain.ErrSessionClosed
	}
	return s.nav.View(s.state), nil
}

// Close tears the session down. A pending transition is cancelled and
// every later operation returns domain.ErrSessionClosed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.cancel()
	s.closed = true
	s.logger.Debug("session closed")
}

// Closed reports whether Close was called.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// schedule arms the phase-two callback for the current epoch. Caller holds mu.
func (s *Session) schedule() {
	epoch := s.epoch
	s.settled = make(chan struct{})
	s.timer = s.scheduler.AfterFunc(s.delay, func() {
		s.complete(epoch)
	})
}

// cancel invalidates any scheduled callback. Caller holds mu.
func (s *Session) cancel() {
	s.epoch++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.release()
}

// release wakes Await callers. Caller holds mu.
func (s *Session) release() {
	if s.settled != nil {
		close(s.settled)
		s.settled = nil
	}
}

// complete runs phase two of a deferred transition.
func (s *Session) complete(epoch uint64) {
	s.mu.Lock()

	if s.closed || epoch != s.epoch || !s.state.Pending() {
		s.mu.Unlock()
		s.logger.Debug("stale deferred transition discarded", "epoch", epoch)
		return
	}

	next, err := s.nav.Commit(context.Background(), s.state)
	if err != nil {
		s.mu.Unlock()
		s.logger.Warn("deferred transition failed", "err", err)
		return
	}

	s.state = next
	s.timer = nil
	s.epoch++
	s.release()
	view := s.nav.View(s.state)
	onChange := s.onChange
	s.mu.Unlock()

	if onChange != nil {
		onChange(view)
	}
}
