package abenteuer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/abenteuer/internal/logging"
	"github.com/aretw0/abenteuer/internal/runtime"
	"github.com/aretw0/abenteuer/pkg/catalog"
	"github.com/aretw0/abenteuer/pkg/domain"
	"github.com/aretw0/abenteuer/pkg/lexicon"
	"github.com/aretw0/abenteuer/pkg/session"
)

// Engine is the high-level entry point for the Abenteuer library.
// It owns the story catalog, one navigator per story and a session manager.
type Engine struct {
	catalog       *catalog.Catalog
	storyDirs     []string
	lexicon       *lexicon.Lexicon
	hooks         domain.LifecycleHooks
	logger        *slog.Logger
	feedbackDelay time.Duration
	scheduler     session.Scheduler
	tracker       session.Tracker

	navigators map[string]*runtime.Engine
	manager    *session.Manager
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithCatalog replaces the built-in story catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(e *Engine) {
		e.catalog = c
	}
}

// WithStoryDir adds every story found in dir (YAML files and scene
// directories) to the catalog.
func WithStoryDir(dir string) Option {
	return func(e *Engine) {
		if dir != "" {
			e.storyDirs = append(e.storyDirs, dir)
		}
	}
}

// WithLexicon replaces the built-in word table.
func WithLexicon(l *lexicon.Lexicon) Option {
	return func(e *Engine) {
		e.lexicon = l
	}
}

// WithLifecycleHooks registers observability hooks on every navigator.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = domain.ChainHooks(e.hooks, hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithFeedbackDelay sets how long choice feedback is shown before the
// deferred transition completes.
func WithFeedbackDelay(d time.Duration) Option {
	return func(e *Engine) {
		e.feedbackDelay = d
	}
}

// WithSessionTracker reports sessions created through Manager, such as a
// live-session gauge.
func WithSessionTracker(t session.Tracker) Option {
	return func(e *Engine) {
		e.tracker = t
	}
}

// WithScheduler replaces the timer source for every session.
func WithScheduler(s session.Scheduler) Option {
	return func(e *Engine) {
		e.scheduler = s
	}
}

// New initializes an Engine. Without options it serves the built-in café
// and train stories. Every story is validated up front; a defective one
// fails construction.
func New(ctx context.Context, opts ...Option) (*Engine, error) {
	eng := &Engine{
		logger:        logging.NewNop(),
		feedbackDelay: session.DefaultFeedbackDelay,
		scheduler:     session.RealScheduler,
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.catalog == nil {
		c, err := catalog.Default()
		if err != nil {
			return nil, fmt.Errorf("failed to load built-in stories: %w", err)
		}
		eng.catalog = c
	}
	for _, dir := range eng.storyDirs {
		if err := eng.catalog.LoadDir(ctx, dir); err != nil {
			return nil, err
		}
	}
	if eng.lexicon == nil {
		eng.lexicon = lexicon.Default()
	}

	eng.navigators = make(map[string]*runtime.Engine)
	for _, entry := range eng.catalog.List() {
		nav, err := runtime.NewEngine(entry.Story,
			runtime.WithLogger(eng.logger),
			runtime.WithLifecycleHooks(eng.hooks),
		)
		if err != nil {
			return nil, err
		}
		eng.navigators[entry.ID] = nav
	}

	managerOpts := []session.ManagerOption{
		session.WithManagerLogger(eng.logger),
		session.WithSessionOptions(eng.sessionOptions()...),
	}
	if eng.tracker != nil {
		managerOpts = append(managerOpts, session.WithTracker(eng.tracker))
	}
	eng.manager = session.NewManager(eng, managerOpts...)

	eng.logger.Debug("engine ready", "stories", len(eng.navigators))
	return eng, nil
}

// Catalog returns the story catalog.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Stories lists the available stories ordered by id.
func (e *Engine) Stories() []catalog.Entry {
	return e.catalog.List()
}

// Story returns the catalog entry for storyID.
func (e *Engine) Story(storyID string) (catalog.Entry, error) {
	return e.catalog.Get(storyID)
}

// Navigator returns the navigator for storyID. It satisfies
// session.Resolver.
func (e *Engine) Navigator(storyID string) (session.Navigator, error) {
	nav, err := e.Runtime(storyID)
	if err != nil {
		return nil, err
	}
	return nav, nil
}

// Runtime returns the concrete navigator for storyID.
func (e *Engine) Runtime(storyID string) (*runtime.Engine, error) {
	nav, ok := e.navigators[storyID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrStoryNotFound, storyID)
	}
	return nav, nil
}

// Start opens a standalone session on storyID. requestedStart is an
// untrusted deep link; unknown scenes fall back to the story default.
func (e *Engine) Start(ctx context.Context, storyID, requestedStart string, opts ...session.Option) (*session.Session, error) {
	nav, err := e.Runtime(storyID)
	if err != nil {
		return nil, err
	}
	all := append(e.sessionOptions(), opts...)
	return session.New(ctx, nav, requestedStart, all...), nil
}

// Manager returns the multi-session registry used by the servers.
func (e *Engine) Manager() *session.Manager {
	return e.manager
}

// Lexicon returns the word table.
func (e *Engine) Lexicon() *lexicon.Lexicon {
	return e.lexicon
}

// Logger returns the engine logger.
func (e *Engine) Logger() *slog.Logger {
	return e.logger
}

// Close ends every managed session.
func (e *Engine) Close() {
	e.manager.CloseAll()
}

func (e *Engine) sessionOptions() []session.Option {
	return []session.Option{
		session.WithFeedbackDelay(e.feedbackDelay),
		session.WithScheduler(e.scheduler),
		session.WithLogger(e.logger),
	}
}
