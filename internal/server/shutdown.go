package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"seller-report/internal/config"
)

const hookTimeout = 10 * time.Second

type ShutdownHook func(ctx context.Context) error

// GracefulServer runs an http.Server until its context is cancelled, then
// drains connections and runs the registered hooks concurrently.
type GracefulServer struct {
	server *http.Server
	logger *slog.Logger
	config config.ServerConfig
	hooks  []ShutdownHook
	mu     sync.RWMutex
}

func NewGracefulServer(server *http.Server, logger *slog.Logger, cfg config.ServerConfig) *GracefulServer {
	return &GracefulServer{
		server: server,
		logger: logger,
		config: cfg,
	}
}

func (gs *GracefulServer) RegisterShutdownHook(fn ShutdownHook) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.hooks = append(gs.hooks, fn)
}

// ListenAndServe blocks until the server fails or ctx is done. Cancel ctx on
// SIGINT/SIGTERM to trigger a graceful shutdown.
func (gs *GracefulServer) ListenAndServe(ctx context.Context) error {
	serverErrors := make(chan error, 1)

	go func() {
		gs.logger.Info("starting server",
			"addr", gs.server.Addr,
			"read_timeout", gs.config.ReadTimeout,
			"write_timeout", gs.config.WriteTimeout,
		)
		serverErrors <- gs.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil

	case <-ctx.Done():
		gs.logger.Info("shutdown signal received", "cause", context.Cause(ctx))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), gs.config.ShutdownTimeout)
		defer cancel()

		return gs.Shutdown(shutdownCtx)
	}
}

// Shutdown stops the HTTP server and runs every hook, each bounded by
// hookTimeout. The first failure is returned.
func (gs *GracefulServer) Shutdown(ctx context.Context) error {
	gs.logger.Info("starting graceful shutdown", "timeout", gs.config.ShutdownTimeout)

	gs.mu.RLock()
	hooks := make([]ShutdownHook, len(gs.hooks))
	copy(hooks, gs.hooks)
	gs.mu.RUnlock()

	var g errgroup.Group

	for i, hook := range hooks {
		g.Go(func() error {
			hookCtx, cancel := context.WithTimeout(ctx, hookTimeout)
			defer cancel()

			gs.logger.Debug("executing shutdown hook", "hook_index", i)
			if err := hook(hookCtx); err != nil {
				gs.logger.Error("shutdown hook failed", "hook_index", i, "error", err)
				return fmt.Errorf("shutdown hook %d failed: %w", i, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		gs.logger.Info("stopping HTTP server")
		if err := gs.server.Shutdown(ctx); err != nil {
			gs.logger.Error("HTTP server shutdown failed", "error", err)
			return fmt.Errorf("HTTP server shutdown failed: %w", err)
		}
		gs.logger.Info("HTTP server stopped gracefully")
		return nil
	})

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	select {
	case err := <-done:
		gs.logger.Info("graceful shutdown completed")
		return err
	case <-ctx.Done():
		gs.logger.Warn("shutdown timeout exceeded, forcing exit")
		return ctx.Err()
	}
}
