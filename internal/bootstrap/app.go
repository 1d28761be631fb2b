package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/sisbib/sisbib-web/config"
	"github.com/sisbib/sisbib-web/internal/adapters/backend"
	"github.com/sisbib/sisbib-web/internal/fetch"
	httpx "github.com/sisbib/sisbib-web/internal/http"
	"github.com/sisbib/sisbib-web/internal/service"
)

// App holds the wired runtime: backend client, session store and auth service.
type App struct {
	Config   config.AppConfig
	Logger   *slog.Logger
	Backend  *backend.Client
	Sessions *SessionBackend
	Auth     *service.AuthService
	Fetches  *fetch.Registry
}

// NewApp connects the session store and builds the services. Call Close when done.
func NewApp(ctx context.Context, cfg config.AppConfig, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	client, err := NewBackendClient(cfg.Backend, logger)
	if err != nil {
		return nil, fmt.Errorf("backend client: %w", err)
	}

	sessions, err := OpenSessionBackend(ctx, &cfg, logger)
	if err != nil {
		return nil, err
	}

	auth, err := BuildAuthService(AuthServiceConfig{
		Authenticator: client,
		Sessions:      sessions.Store,
		Session:       cfg.Session,
		Logger:        logger,
	})
	if err != nil {
		return nil, errors.Join(err, sessions.Close())
	}

	return &App{
		Config:   cfg,
		Logger:   logger,
		Backend:  client,
		Sessions: sessions,
		Auth:     auth,
		Fetches:  fetch.NewRegistry(),
	}, nil
}

// Close releases store connections.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	return a.Sessions.Close()
}

// Handler builds the router with its middleware chain.
func (a *App) Handler() (http.Handler, error) {
	services := httpx.RouterServices{
		Auth:               a.Auth,
		API:                a.Backend,
		Fetches:            a.Fetches,
		CookieDomain:       a.Config.HTTP.CookieDomain,
		CompressionEnabled: a.Config.HTTP.CompressionEnabled,
		CompressionLevel:   a.Config.HTTP.CompressionLevel,
		MetricsEnabled:     a.Config.Observability.Metrics.Enabled,
		IsDev:              a.Config.IsDev,
		Logger:             a.Logger,
	}
	if a.Sessions.Pinger != nil {
		services.Store = a.Sessions.Pinger
	}
	return httpx.NewRouter(services)
}

// Run serves HTTP on the configured address until ctx ends.
func (a *App) Run(ctx context.Context) error {
	return a.Serve(ctx, nil)
}

// Serve runs the HTTP server (on ln when given) and, for stores without a
// native TTL, the session reaper. The first failure stops everything.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	handler, err := a.Handler()
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	var reaper *service.SessionReaper
	if a.Sessions.Purger != nil {
		if reaper, err = service.NewSessionReaper(service.SessionReaperOptions{
			Store:    a.Sessions.Purger,
			Interval: a.Config.Session.PurgeInterval,
			Logger:   a.Logger,
		}); err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return RunHTTPServer(gctx, HTTPRunConfig{
			Server:          NewHTTPServer(a.Config.HTTP, handler),
			Listener:        ln,
			ShutdownTimeout: a.Config.HTTP.ShutdownTimeout,
			Logger:          a.Logger,
		})
	})

	if reaper != nil {
		g.Go(func() error { return reaper.Run(gctx) })
	}

	a.Logger.InfoContext(ctx, "sisbib-web started",
		"session_store", a.Sessions.Kind,
		"backend_url", a.Config.Backend.URL,
		"dev", a.Config.IsDev,
	)
	return g.Wait()
}
