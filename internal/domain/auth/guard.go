package auth

import (
	"net/url"
	"slices"
	"strings"
)

// Outcome is the result kind of a guard decision.
type Outcome int

const (
	// Render lets the protected view render unmodified.
	Render Outcome = iota
	// RedirectLogin sends an unauthenticated visitor to the login page.
	RedirectLogin
	// RedirectHome bounces an authenticated visitor to their own landing page.
	RedirectHome
)

// LoginPath is where unauthenticated visitors are sent.
const LoginPath = "/login"

// FromParam carries the originally requested path through the login page.
const FromParam = "from"

// Decision describes what to do with a request for a protected view.
type Decision struct {
	Outcome  Outcome
	Location string // empty when Outcome is Render
}

// Decide is the route guard. It is a pure function of the session, the view's
// allowed roles and the requested path. An empty allowed set admits any session.
func Decide(s *Session, allowed []Role, requestedPath string) Decision {
	if s == nil {
		return Decision{Outcome: RedirectLogin, Location: LoginLocation(requestedPath)}
	}
	if len(allowed) > 0 && !slices.Contains(allowed, s.Role) {
		return Decision{Outcome: RedirectHome, Location: RoleHome(s)}
	}
	return Decision{Outcome: Render}
}

// LoginLocation builds the login URL remembering requestedPath when it is a safe local path.
func LoginLocation(requestedPath string) string {
	p := SafeLocalPath(requestedPath)
	if p == "" || p == LoginPath || p == HomePublic {
		return LoginPath
	}
	return LoginPath + "?" + url.Values{FromParam: []string{p}}.Encode()
}

// SafeLocalPath returns p if it is an absolute path on this site, otherwise "".
// Scheme-relative ("//host") and backslash tricks are rejected.
func SafeLocalPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.Contains(p, "\\") {
		return ""
	}
	u, err := url.Parse(p)
	if err != nil || u.IsAbs() || u.Host != "" {
		return ""
	}
	return p
}

// PostLoginLocation picks where a freshly logged-in session goes: the remembered
// path when it is a known protected view the role may see, otherwise the role's home.
func PostLoginLocation(s *Session, from string, allowedFor func(path string) ([]Role, bool)) string {
	home := RoleHome(s)
	p := SafeLocalPath(from)
	if s == nil || p == "" || p == LoginPath || p == HomePublic || allowedFor == nil {
		return home
	}
	allowed, known := allowedFor(p)
	if !known || Decide(s, allowed, p).Outcome != Render {
		return home
	}
	return p
}
