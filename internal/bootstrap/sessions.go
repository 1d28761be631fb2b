package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sisbib/sisbib-web/config"
	"github.com/sisbib/sisbib-web/internal/adapters/memory"
	pgadapter "github.com/sisbib/sisbib-web/internal/adapters/postgres"
	redisadapter "github.com/sisbib/sisbib-web/internal/adapters/redis"
	"github.com/sisbib/sisbib-web/internal/ports"
	"github.com/sisbib/sisbib-web/internal/service"
)

// SessionBackend is the configured session store and the optional
// capabilities of the concrete adapter behind it.
type SessionBackend struct {
	Kind   config.SessionStoreKind
	Store  ports.SessionStore
	Pinger ports.Pinger        // nil for the in-memory store
	Purger ports.SessionPurger // only stores without a native TTL

	closers []func() error
}

// Close releases the connections opened for the store.
func (b *SessionBackend) Close() error {
	if b == nil {
		return nil
	}
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	b.closers = nil
	return errors.Join(errs...)
}

// OpenSessionBackend connects whatever the configured store kind needs.
// Postgres migrations run here when enabled.
func OpenSessionBackend(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (*SessionBackend, error) {
	if cfg == nil {
		return nil, errors.New("app config is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	dbCfg := DatabaseConfig{DBConfig: cfg.Postgres, RedisConfig: cfg.Redis, Logger: logger}

	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		client, err := ConnectRedis(ctx, dbCfg)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		store := redisadapter.NewSessionStoreWithPrefix(client, cfg.Session.Prefix)
		return &SessionBackend{
			Kind:    config.SessionStoreRedis,
			Store:   store,
			Pinger:  store,
			closers: []func() error{client.Close},
		}, nil

	case config.SessionStorePostgres:
		pool, err := ConnectDB(ctx, dbCfg)
		if err != nil {
			return nil, fmt.Errorf("connect db: %w", err)
		}
		if cfg.Postgres.RunMigrationsOnStart {
			if err := RunMigrations(ctx, pool, logger); err != nil {
				pool.Close()
				return nil, err
			}
		} else {
			logger.InfoContext(ctx, "skipping database migrations on startup", "reason", "disabled via config")
		}
		store := pgadapter.NewSessionStore(pool)
		return &SessionBackend{
			Kind:   config.SessionStorePostgres,
			Store:  store,
			Pinger: store,
			Purger: store,
			closers: []func() error{func() error {
				pool.Close()
				return nil
			}},
		}, nil

	case config.SessionStoreMemory, "":
		logger.WarnContext(ctx, "using in-memory session store; sessions are lost on restart")
		return &SessionBackend{
			Kind:  config.SessionStoreMemory,
			Store: memory.NewSessionStoreWithCleanup(cfg.Session.PurgeInterval),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported session store %q", cfg.Session.Store)
	}
}

// AuthServiceConfig contains configuration for the auth service.
type AuthServiceConfig struct {
	Authenticator ports.Authenticator
	Sessions      ports.SessionStore
	Session       config.SessionConfig
	Logger        *slog.Logger
}

// BuildAuthService wires the session lifecycle onto the backend login.
func BuildAuthService(cfg AuthServiceConfig) (*service.AuthService, error) {
	if cfg.Authenticator == nil {
		return nil, errors.New("authenticator is required")
	}
	if cfg.Sessions == nil {
		return nil, errors.New("session store is required")
	}
	return service.NewAuthService(service.AuthServiceOptions{
		Authenticator: cfg.Authenticator,
		Sessions:      cfg.Sessions,
		TTL:           cfg.Session.TTL,
		Logger:        cfg.Logger,
	}), nil
}
