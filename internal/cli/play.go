package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/abenteuer/internal/presentation/tui"
	"github.com/aretw0/abenteuer/pkg/runner"
)

// PlayOptions configures an interactive session.
type PlayOptions struct {
	EngineOptions
	Story string
	Start string
	// JSON switches to one JSON view per line.
	JSON bool

	In  io.Reader
	Out io.Writer
}

// RunPlay plays one story until the user quits.
func RunPlay(opts PlayOptions) error {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	logger := createLogger(opts.EngineOptions)

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	engine, err := createEngine(sigCtx, opts.EngineOptions, logger)
	if err != nil {
		return err
	}
	defer engine.Close()

	sess, err := engine.Start(sigCtx, opts.Story, opts.Start)
	if err != nil {
		return err
	}
	defer sess.Close()

	var handler runner.IOHandler
	if opts.JSON {
		handler = runner.NewJSONHandler(opts.In, opts.Out,
			runner.WithJSONHandlerMaxInputSize(opts.Config.MaxInputSize))
	} else {
		renderer := tui.PlainRenderer
		if IsTerminal(opts.Out) {
			tui.PrintBanner(opts.Out)
			renderer = tui.NewRenderer()
		}
		handler = runner.NewTextHandler(opts.In, opts.Out,
			runner.WithTextHandlerRenderer(runner.ContentRenderer(renderer)),
			runner.WithTextHandlerMaxInputSize(opts.Config.MaxInputSize))
	}

	r := runner.NewRunner(
		runner.WithLogger(logger),
		runner.WithInputHandler(handler),
	)
	err = handleExecutionError(r.Run(sigCtx, sess))

	if sig := sigCtx.Signal(); sig != nil && !opts.JSON {
		fmt.Fprintln(opts.Out)
		printSystemMessage(opts.Out, "Interrupted (%v). Bis bald!", sig)
	}
	return err
}
