package runtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/abenteuer/internal/logging"
	"github.com/aretw0/abenteuer/internal/validator"
	"github.com/aretw0/abenteuer/pkg/domain"
)

// Engine is the story navigator. It owns every legal transition over a
// domain.State for a single validated story. Engines hold no per-session
// data: state goes in, a new state comes out.
type Engine struct {
	story  *domain.Story
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	report *validator.Report
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// NewEngine validates the story and returns a navigator for it.
// A structurally defective story is refused: the returned error wraps
// domain.ErrInvalidStory and no engine is created.
func NewEngine(story *domain.Story, opts ...EngineOption) (*Engine, error) {
	e := &Engine{
		story:  story,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	report, err := validator.ValidateStory(story)
	if err != nil {
		return nil, fmt.Errorf("cannot load story: %w", err)
	}
	e.report = report

	e.logger = e.logger.With("story", story.ID)
	if len(report.Unreachable) > 0 {
		e.logger.Warn("story has unreachable scenes", "scenes", report.Unreachable)
	}
	return e, nil
}

// Story returns the story this engine navigates.
func (e *Engine) Story() *domain.Story {
	return e.story
}

// Report returns the non-fatal validation findings.
func (e *Engine) Report() *validator.Report {
	return e.report
}

// Start creates the initial state for a traversal.
// An unknown or empty requested start falls back to the story default.
func (e *Engine) Start(ctx context.Context, requestedStart string) *domain.State {
	startID := domain.ResolveStart(e.story, requestedStart)
	if requestedStart != "" && startID != requestedStart {
		e.logger.DebugContext(ctx, "requested start scene not found, using default",
			"requested", requestedStart,
			"scene", startID)
	}

	state := domain.NewState(e.story.ID, startID)
	e.enterScene(ctx, state)
	return state
}

// Reset discards the previous traversal and starts over.
// It is equivalent to Start; the name documents intent ("play again").
func (e *Engine) Reset(ctx context.Context, requestedStart string) *domain.State {
	return e.Start(ctx, requestedStart)
}
