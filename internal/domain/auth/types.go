package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"
)

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
type Role string

const (
	RoleAdmin         Role = "admin"
	RoleBibliotecario Role = "bibliotecario"
	RoleCliente       Role = "cliente"
)

// Landing paths for each role.
const (
	HomeAdmin         = "/admin/dashboard"
	HomeBibliotecario = "/bibliotecario/home"
	HomeCliente       = "/cliente/home"
	HomePublic        = "/"
)

// Roles lists every valid role in display order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleBibliotecario, RoleCliente}
}

// ParseRole normalizes s and reports whether it names a known role.
// The backend stores roles capitalized ("Admin", "Cliente"), so matching is case-insensitive.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RoleAdmin, RoleBibliotecario, RoleCliente:
		return r, true
	default:
		return "", false
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleBibliotecario, RoleCliente:
		return true
	default:
		return false
	}
}

// Label returns the human-facing name of the role.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleBibliotecario:
		return "Bibliotecario"
	case RoleCliente:
		return "Cliente"
	default:
		return string(r)
	}
}

// Home returns the canonical landing path for r. Unknown roles land on the public page.
func (r Role) Home() string {
	switch r {
	case RoleAdmin:
		return HomeAdmin
	case RoleBibliotecario:
		return HomeBibliotecario
	case RoleCliente:
		return HomeCliente
	default:
		return HomePublic
	}
}

// User is the identity returned by the backend on login.
type User struct {
	UserID    int64  `json:"user_id"`
	Email     string `json:"email"`
	Nombre    string `json:"nombre,omitempty"`
	Apellido1 string `json:"apellido1,omitempty"`
	Apellido2 string `json:"apellido2,omitempty"`
}

// Session is the server-side record we persist for an authenticated user.
// ID is an opaque session identifier carried in the session cookie.
type Session struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// RoleHome maps a session to its landing path. A nil session lands on "/".
func RoleHome(s *Session) string {
	if s == nil {
		return HomePublic
	}
	return s.Role.Home()
}

// DisplayName returns the first non-empty of full name, given name, and email.
func DisplayName(s *Session) string {
	if s == nil {
		return ""
	}
	nombre := strings.TrimSpace(s.User.Nombre)
	apellido := strings.TrimSpace(s.User.Apellido1)
	switch {
	case nombre != "" && apellido != "":
		return nombre + " " + apellido
	case nombre != "":
		return nombre
	default:
		return strings.TrimSpace(s.User.Email)
	}
}
