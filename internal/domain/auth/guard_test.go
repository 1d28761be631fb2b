package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	admin := &Session{ID: "s1", Role: RoleAdmin}
	cliente := &Session{ID: "s2", Role: RoleCliente}
	adminOnly := []Role{RoleAdmin}

	tests := []struct {
		name    string
		session *Session
		allowed []Role
		path    string
		want    Decision
	}{
		{
			name:    "unauthenticated goes to login with remembered path",
			allowed: adminOnly,
			path:    "/admin/usuarios",
			want:    Decision{Outcome: RedirectLogin, Location: "/login?from=%2Fadmin%2Fusuarios"},
		},
		{
			name:    "unauthenticated on open guard still goes to login",
			path:    "/cliente/home",
			want:    Decision{Outcome: RedirectLogin, Location: "/login?from=%2Fcliente%2Fhome"},
		},
		{
			name:    "wrong role is bounced home, never to login",
			session: cliente,
			allowed: adminOnly,
			path:    "/admin/usuarios",
			want:    Decision{Outcome: RedirectHome, Location: "/cliente/home"},
		},
		{
			name:    "allowed role renders",
			session: admin,
			allowed: adminOnly,
			path:    "/admin/usuarios",
			want:    Decision{Outcome: Render},
		},
		{
			name:    "empty role set admits any session",
			session: cliente,
			path:    "/logout",
			want:    Decision{Outcome: Render},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.session, tt.allowed, tt.path))
		})
	}
}

func TestDecide_EveryRoleOutsideSetGoesHome(t *testing.T) {
	for _, r := range Roles() {
		for _, required := range Roles() {
			if r == required {
				continue
			}
			d := Decide(&Session{Role: r}, []Role{required}, "/x")
			assert.Equal(t, RedirectHome, d.Outcome)
			assert.Equal(t, r.Home(), d.Location)
		}
	}
}

func TestLoginLocation(t *testing.T) {
	assert.Equal(t, "/login", LoginLocation(""))
	assert.Equal(t, "/login", LoginLocation("/"))
	assert.Equal(t, "/login", LoginLocation("/login"))
	assert.Equal(t, "/login", LoginLocation("//evil.example/admin"))
	assert.Equal(t, "/login", LoginLocation("https://evil.example/"))
	assert.Equal(t, "/login?from=%2Fadmin%2Fprestamos%3Fq%3Dx", LoginLocation("/admin/prestamos?q=x"))
}

func TestSafeLocalPath(t *testing.T) {
	assert.Equal(t, "/a/b", SafeLocalPath("/a/b"))
	assert.Empty(t, SafeLocalPath("a/b"))
	assert.Empty(t, SafeLocalPath("//host/x"))
	assert.Empty(t, SafeLocalPath("/\\host"))
	assert.Empty(t, SafeLocalPath("http://host/x"))
}

func TestPostLoginLocation(t *testing.T) {
	routes := map[string][]Role{
		"/admin/usuarios": {RoleAdmin},
		"/cliente/home":   {RoleCliente},
	}
	allowedFor := func(p string) ([]Role, bool) {
		r, ok := routes[p]
		return r, ok
	}
	admin := &Session{Role: RoleAdmin}

	assert.Equal(t, "/admin/usuarios", PostLoginLocation(admin, "/admin/usuarios", allowedFor))
	assert.Equal(t, "/admin/dashboard", PostLoginLocation(admin, "/cliente/home", allowedFor))
	assert.Equal(t, "/admin/dashboard", PostLoginLocation(admin, "/unknown", allowedFor))
	assert.Equal(t, "/admin/dashboard", PostLoginLocation(admin, "//evil", allowedFor))
	assert.Equal(t, "/admin/dashboard", PostLoginLocation(admin, "", allowedFor))
	assert.Equal(t, "/", PostLoginLocation(nil, "/admin/usuarios", allowedFor))
}
