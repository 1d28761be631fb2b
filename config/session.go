package config

import (
	"fmt"
	"strings"
	"time"
)

// SessionStoreKind selects where sessions are kept.
type SessionStoreKind string

const (
	// SessionStoreMemory keeps sessions in process memory; they are lost on restart.
	SessionStoreMemory SessionStoreKind = "memory"
	// SessionStoreRedis keeps sessions in Redis with a native TTL.
	SessionStoreRedis SessionStoreKind = "redis"
	// SessionStorePostgres keeps sessions in the scs sessions table.
	SessionStorePostgres SessionStoreKind = "postgres"
)

// UnmarshalText implements encoding.TextUnmarshaler for SessionStoreKind.
func (k *SessionStoreKind) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch SessionStoreKind(v) {
	case SessionStoreMemory, SessionStoreRedis, SessionStorePostgres:
		*k = SessionStoreKind(v)
		return nil
	default:
		return fmt.Errorf("invalid SessionStoreKind: %q (valid options: memory, redis, postgres)", v)
	}
}

const (
	defaultSessionTTL    = 12 * time.Hour
	defaultSessionPrefix = "sisbib.auth:"
	defaultPurgeInterval = 15 * time.Minute
)

// SessionConfig controls the server-side session store.
type SessionConfig struct {
	Store SessionStoreKind `env:"SESSION_STORE" envDefault:"memory"`

	// TTL is how long a session stays valid after login.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"12h"`

	// Prefix namespaces session keys in Redis.
	Prefix string `env:"SESSION_PREFIX" envDefault:"sisbib.auth:"`

	// PurgeInterval is how often expired Postgres rows are deleted.
	PurgeInterval time.Duration `env:"SESSION_PURGE_INTERVAL" envDefault:"15m"`
}

// Sanitize applies guardrails to session configuration values.
func (c *SessionConfig) Sanitize() {
	if c.Store == "" {
		c.Store = SessionStoreMemory
	}
	if c.TTL <= 0 {
		c.TTL = defaultSessionTTL
	}
	if c.Prefix = strings.TrimSpace(c.Prefix); c.Prefix == "" {
		c.Prefix = defaultSessionPrefix
	}
	if c.PurgeInterval < time.Minute {
		c.PurgeInterval = defaultPurgeInterval
	}
}
