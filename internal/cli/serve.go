package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/abenteuer/internal/metrics"
	httpAdapter "github.com/aretw0/abenteuer/pkg/adapters/http"
)

// ShutdownTimeout bounds graceful shutdown of the HTTP server.
const ShutdownTimeout = 5 * time.Second

// ServeOptions configures the HTTP server.
type ServeOptions struct {
	EngineOptions
}

// RunServe serves the JSON API until SIGINT or SIGTERM.
func RunServe(opts ServeOptions) error {
	if opts.Config.Metrics && opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	logger := createLogger(opts.EngineOptions)

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	engine, err := createEngine(sigCtx, opts.EngineOptions, logger)
	if err != nil {
		return err
	}
	defer engine.Close()

	handlerOpts := []httpAdapter.Option{httpAdapter.WithLogger(logger)}
	if opts.Metrics != nil {
		handlerOpts = append(handlerOpts, httpAdapter.WithMetrics(opts.Metrics))
	}

	srv := &http.Server{
		Addr:              opts.Config.Addr,
		Handler:           httpAdapter.NewHandler(engine, handlerOpts...),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Starting Abenteuer Server", "addr", srv.Addr, "stories", len(engine.Stories()))
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-sigCtx.Done():
		logger.Info("Start shutdown", "signal", sigCtx.Signal())

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Graceful shutdown did not complete", "timeout", ShutdownTimeout, "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		logger.Info("Abenteuer Server stopped gracefully")
		return nil
	}
}
