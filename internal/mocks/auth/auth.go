package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"net/http"
	"strings"
	"sync"

	domainauth "github.com/sisbib/sisbib-web/internal/domain/auth"
	apperrors "github.com/sisbib/sisbib-web/internal/errors"
	"github.com/sisbib/sisbib-web/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.Authenticator = (*StubAuthenticator)(nil)
	_ ports.SessionStore  = (*FailingSessionStore)(nil)
)

// Account is a user the StubAuthenticator accepts.
type Account struct {
	Password string
	Role     string // raw backend role, e.g. "Admin"; empty falls back to the requested role
	User     domainauth.User
}

// StubAuthenticator checks credentials against a fixed set of accounts.
type StubAuthenticator struct {
	LoginFunc func(ctx context.Context, creds ports.Credentials) (ports.LoginResult, error)

	// Accounts keyed by lowercase email.
	Accounts map[string]Account

	mu     sync.Mutex
	logins []ports.Credentials
}

// NewStubAuthenticator creates a StubAuthenticator with one account per role.
func NewStubAuthenticator() *StubAuthenticator {
	return &StubAuthenticator{
		Accounts: map[string]Account{
			"admin@biblio.cl": {
				Password: "secret", Role: "Admin",
				User: domainauth.User{UserID: 1, Email: "admin@biblio.cl", Nombre: "Ada", Apellido1: "Lovelace"},
			},
			"biblio@biblio.cl": {
				Password: "secret", Role: "Bibliotecario",
				User: domainauth.User{UserID: 2, Email: "biblio@biblio.cl", Nombre: "Jorge"},
			},
			"cliente@biblio.cl": {
				Password: "secret", Role: "Cliente",
				User: domainauth.User{UserID: 3, Email: "cliente@biblio.cl"},
			},
		},
	}
}

// MsgInvalidCredentials mirrors the backend's rejection message.
const MsgInvalidCredentials = "Credenciales inválidas o usuario no existe"

func (a *StubAuthenticator) Login(ctx context.Context, creds ports.Credentials) (ports.LoginResult, error) {
	a.mu.Lock()
	a.logins = append(a.logins, creds)
	a.mu.Unlock()

	if a.LoginFunc != nil {
		return a.LoginFunc(ctx, creds)
	}
	acct, ok := a.Accounts[strings.ToLower(creds.Email)]
	if !ok || acct.Password != creds.Password {
		return ports.LoginResult{}, apperrors.Rejected(MsgInvalidCredentials, http.StatusUnauthorized)
	}
	role := acct.Role
	if role == "" {
		role = string(creds.Role)
	}
	return ports.LoginResult{Role: role, User: acct.User}, nil
}

// Logins returns every credential set passed to Login.
func (a *StubAuthenticator) Logins() []ports.Credentials {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]ports.Credentials(nil), a.logins...)
}

// FailingSessionStore fails every operation with Err.
type FailingSessionStore struct {
	Err error
}

func (f FailingSessionStore) Save(context.Context, domainauth.Session) error { return f.Err }

func (f FailingSessionStore) Get(context.Context, string) (domainauth.Session, error) {
	return domainauth.Session{}, f.Err
}

func (f FailingSessionStore) Delete(context.Context, string) error { return f.Err }
