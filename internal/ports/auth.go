package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/sisbib/sisbib-web/internal/domain/auth"
)

// Credentials is what the login form submits.
type Credentials struct {
	Email    string
	Password string
	Role     domainauth.Role
}

// LoginResult is the backend's answer to a successful login.
// Role is the raw role reported by the backend, which may differ from the requested one.
type LoginResult struct {
	Role string
	User domainauth.User
}

// Authenticator verifies credentials against the library backend.
type Authenticator interface {
	Login(ctx context.Context, creds Credentials) (LoginResult, error)
}

// SessionStore persists and retrieves user sessions.
// Get returns domainauth.ErrSessionNotFound (possibly wrapped) for unknown or expired ids.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// Pinger is implemented by stores that can report backend readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SessionPurger is implemented by stores that need expired rows removed out of band.
type SessionPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}
