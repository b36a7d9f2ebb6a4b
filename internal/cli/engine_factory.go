package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/abenteuer"
	"github.com/aretw0/abenteuer/internal/config"
	"github.com/aretw0/abenteuer/internal/logging"
	"github.com/aretw0/abenteuer/internal/metrics"
)

// EngineOptions are the settings every engine-backed command shares.
type EngineOptions struct {
	Config config.Config
	// Debug logs navigator events at debug level.
	Debug bool
	// Metrics, when set, receives navigator events.
	Metrics *metrics.Collector
}

// createLogger configures the application logger on Stderr.
func createLogger(opts EngineOptions) *slog.Logger {
	if opts.Debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.New(opts.Config.Level())
}

// createEngine initializes an engine with standard CLI conventions.
func createEngine(ctx context.Context, opts EngineOptions, logger *slog.Logger) (*abenteuer.Engine, error) {
	engineOpts := []abenteuer.Option{
		abenteuer.WithLogger(logger),
		abenteuer.WithFeedbackDelay(opts.Config.FeedbackDelay),
	}

	if opts.Debug {
		engineOpts = append(engineOpts, abenteuer.WithLifecycleHooks(createDebugHooks(logger)))
	}
	if opts.Metrics != nil {
		engineOpts = append(engineOpts,
			abenteuer.WithLifecycleHooks(opts.Metrics.Hooks()),
			abenteuer.WithSessionTracker(opts.Metrics),
		)
	}
	if opts.Config.StoriesDir != "" {
		engineOpts = append(engineOpts, abenteuer.WithStoryDir(opts.Config.StoriesDir))
	}

	engine, err := abenteuer.New(ctx, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}
