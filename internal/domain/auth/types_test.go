package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"admin", RoleAdmin, true},
		{" Admin ", RoleAdmin, true},
		{"Bibliotecario", RoleBibliotecario, true},
		{"CLIENTE", RoleCliente, true},
		{"", "", false},
		{"guest", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseRole(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoleHome(t *testing.T) {
	assert.Equal(t, "/", RoleHome(nil))
	assert.Equal(t, "/admin/dashboard", RoleHome(&Session{Role: RoleAdmin}))
	assert.Equal(t, "/bibliotecario/home", RoleHome(&Session{Role: RoleBibliotecario}))
	assert.Equal(t, "/cliente/home", RoleHome(&Session{Role: RoleCliente}))
	assert.Equal(t, "/", RoleHome(&Session{Role: Role("root")}))

	// deterministic
	s := &Session{Role: RoleAdmin}
	assert.Equal(t, RoleHome(s), RoleHome(s))
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{"full name", User{Nombre: "Ana", Apellido1: "Rojas", Email: "ana@x.cl"}, "Ana Rojas"},
		{"given name only", User{Nombre: "Ana", Email: "ana@x.cl"}, "Ana"},
		{"email fallback", User{Email: "ana@x.cl"}, "ana@x.cl"},
		{"surname alone is not a name", User{Apellido1: "Rojas", Email: "ana@x.cl"}, "ana@x.cl"},
		{"blank name", User{Nombre: "  ", Email: "ana@x.cl"}, "ana@x.cl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayName(&Session{User: tt.user}))
		})
	}
	assert.Empty(t, DisplayName(nil))
}

func TestSession_Expired(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.False(t, Session{ExpiresAt: now.Add(time.Minute)}.Expired(now))
	assert.True(t, Session{ExpiresAt: now}.Expired(now))
	assert.True(t, Session{ExpiresAt: now.Add(-time.Minute)}.Expired(now))
	assert.False(t, Session{}.Expired(now))
}

func TestRole_Label(t *testing.T) {
	assert.Equal(t, "Admin", RoleAdmin.Label())
	assert.Equal(t, "Bibliotecario", RoleBibliotecario.Label())
	assert.Equal(t, "Cliente", RoleCliente.Label())
	assert.True(t, RoleCliente.Valid())
	assert.False(t, Role("Cliente").Valid())
}
