package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/abenteuer/internal/logging"
	"github.com/aretw0/abenteuer/pkg/domain"
	"github.com/aretw0/abenteuer/pkg/session"
)

// Runner handles the play loop of one session using provided IO.
// It uses an IOHandler strategy to abstract the interaction mode (Text vs JSON).
type Runner struct {
	Handler IOHandler
	Logger  *slog.Logger
}

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// NewRunner creates a Runner. Without options it plays on Stdin/Stdout.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{Logger: logging.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	if r.Handler == nil {
		r.Handler = NewTextHandler(os.Stdin, os.Stdout)
	}
	return r
}

// Run plays sess until the user quits or input ends. Cancelling ctx stops
// the loop and returns ctx.Err(). A handler that is an io.Closer is closed
// when Run returns.
func (r *Runner) Run(ctx context.Context, sess *session.Session) error {
	if c, ok := r.Handler.(io.Closer); ok {
		defer c.Close()
	}
	view := sess.View()

	for {
		if err := r.Handler.Output(ctx, view); err != nil {
			return fmt.Errorf("output error: %w", err)
		}

		// Feedback is on screen; the scene changes once the delay elapses.
		if view.PendingFeedback != "" {
			next, err := sess.Await(ctx)
			if err != nil {
				return err
			}
			view = next
			continue
		}

		cmd, err := r.readCommand(ctx, view)
		if err != nil {
			if errors.Is(err, io.EOF) {
				r.Logger.Debug("input closed")
				return nil
			}
			return err
		}

		var next domain.View
		switch cmd.Kind {
		case CommandQuit:
			return nil
		case CommandBack:
			next, err = sess.Back(ctx)
		case CommandRestart:
			next, err = sess.Restart(ctx)
		case CommandChoose:
			choice := view.Scene.Choices[cmd.Choice]
			next, err = sess.Choose(ctx, view.Scene.ID, choice.ID)
		}
		if err != nil {
			if !domain.IsIgnorable(err) {
				return err
			}
			r.Logger.Debug("navigation ignored", "err", err)
		}
		view = next
	}
}

// readCommand prompts until a line parses as a command valid for view.
func (r *Runner) readCommand(ctx context.Context, view domain.View) (Command, error) {
	for {
		line, err := r.Handler.Input(ctx)
		if errors.Is(err, ErrInputTooLarge) || errors.Is(err, ErrInvalidUTF8) {
			if err := r.Handler.SystemOutput(ctx, err.Error()); err != nil {
				return Command{}, err
			}
			continue
		}
		if err != nil {
			return Command{}, err
		}
		cmd, err := ParseCommand(line, view)
		if err == nil {
			return cmd, nil
		}
		if err := r.Handler.SystemOutput(ctx, err.Error()); err != nil {
			return Command{}, err
		}
	}
}
