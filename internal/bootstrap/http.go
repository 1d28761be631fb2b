package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/sisbib/sisbib-web/config"
)

// NewHTTPServer builds the server with the configured timeouts.
func NewHTTPServer(cfg config.HTTPConfig, handler http.Handler) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	addr := cfg.Addr
	if addr == "" {
		addr = ":8080"
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// HTTPRunConfig contains dependencies for running the HTTP server.
type HTTPRunConfig struct {
	Server *http.Server
	// Listener is optional; when nil the server listens on Server.Addr.
	Listener        net.Listener
	ShutdownTimeout time.Duration
	Logger          *slog.Logger
}

// RunHTTPServer serves until ctx ends, then shuts down gracefully.
// A listen failure is returned as an error; a clean shutdown returns nil.
func RunHTTPServer(ctx context.Context, cfg HTTPRunConfig) error {
	if cfg.Server == nil {
		return errors.New("http server is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	errCh := make(chan error, 1)
	go func() {
		if cfg.Listener != nil {
			logger.InfoContext(ctx, "starting HTTP server", "addr", cfg.Listener.Addr().String())
			errCh <- cfg.Server.Serve(cfg.Listener)
			return
		}
		logger.InfoContext(ctx, "starting HTTP server", "addr", cfg.Server.Addr)
		errCh <- cfg.Server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		return ShutdownHTTPServer(ShutdownConfig{
			Context: context.WithoutCancel(ctx),
			Server:  cfg.Server,
			Timeout: cfg.ShutdownTimeout,
			Logger:  logger,
		})
	}
}

// ShutdownConfig contains dependencies for HTTP server shutdown.
type ShutdownConfig struct {
	Context context.Context
	Server  *http.Server
	Timeout time.Duration
	Logger  *slog.Logger
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(cfg ShutdownConfig) error {
	if cfg.Server == nil {
		return nil
	}
	parent := cfg.Context
	if parent == nil {
		parent = context.Background()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	if cfg.Logger != nil {
		cfg.Logger.InfoContext(parent, "shutting down HTTP server", "timeout", timeout)
	}

	shutdownCtx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	if err := cfg.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	if cfg.Logger != nil {
		cfg.Logger.InfoContext(parent, "HTTP server stopped")
	}

	return nil
}
