package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	domainauth "github.com/sisbib/sisbib-web/internal/domain/auth"
	apperrors "github.com/sisbib/sisbib-web/internal/errors"
	"github.com/sisbib/sisbib-web/internal/ports"
	"github.com/sisbib/sisbib-web/internal/service"
)

const sessionCookieName = "session_id"

// AuthServiceInterface defines the interface for auth service operations.
type AuthServiceInterface interface {
	Login(ctx context.Context, in service.LoginInput) (*domainauth.Session, error)
	Logout(ctx context.Context, sess *domainauth.Session) error
}

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc          AuthServiceInterface
	UI           *UIHandlers
	CookieDomain string
	// RouteRoles tells which roles may open a path; used to vet the post-login destination.
	RouteRoles func(path string) ([]domainauth.Role, bool)
	Logger     *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type roleOption struct {
	Value string
	Label string
}

func roleOptions() []roleOption {
	roles := domainauth.Roles()
	out := make([]roleOption, 0, len(roles))
	for _, r := range roles {
		out = append(out, roleOption{Value: string(r), Label: r.Label()})
	}
	return out
}

func loginMeta() PageMeta {
	return PageMeta{Title: "Ingresar - SisBib", PageTitle: "Bienvenido", CurrentPage: PageLogin}
}

// LoginPage renders the login form.
// GET /login?from=<path>.
func (h *AuthHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	data := basePageData(r, loginMeta())
	data["From"] = domainauth.SafeLocalPath(r.URL.Query().Get(domainauth.FromParam))
	data["Roles"] = roleOptions()
	data["Form"] = map[string]string{"role": string(domainauth.RoleCliente)}
	h.UI.renderPage(w, r, http.StatusOK, data)
}

// Login verifies credentials with the backend and starts a session.
// POST /login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLoginError(w, r, apperrors.Validation("No se pudo leer el formulario."))
		return
	}
	role, _ := domainauth.ParseRole(r.PostFormValue("role"))
	in := service.LoginInput{
		Credentials: ports.Credentials{
			Email:    formString(r, "email"),
			Password: r.PostFormValue("password"),
			Role:     role,
		},
	}
	if c, err := r.Cookie(sessionCookieName); err == nil {
		in.PreviousSessionID = c.Value
	}

	sess, err := h.Svc.Login(r.Context(), in)
	if skipStale(w, err) {
		return
	}
	if err != nil {
		h.logger().InfoContext(r.Context(), "login failed",
			slog.String("role", string(role)),
			slog.String("code", string(apperrors.GetCode(err))),
			slog.Any("error", err))
		h.renderLoginError(w, r, err)
		return
	}

	setSessionCookie(w, r, sess, h.CookieDomain)
	redirect(w, r, domainauth.PostLoginLocation(sess, r.PostFormValue(domainauth.FromParam), h.RouteRoles))
}

func (h *AuthHandlers) renderLoginError(w http.ResponseWriter, r *http.Request, err error) {
	data := basePageData(r, loginMeta())
	data["From"] = domainauth.SafeLocalPath(r.PostFormValue(domainauth.FromParam))
	data["Roles"] = roleOptions()
	data["Form"] = postedValues(r, []string{"password"})
	data["Flash"] = errorFlash(apperrors.UserMessage(err))
	if field := apperrors.GetField(err); field != "" {
		data["Errors"] = map[string]string{field: apperrors.UserMessage(err)}
	}
	h.UI.renderPage(w, r, viewStatus(r, err), data)
}

// Logout ends the current session and returns to the landing page.
// POST /logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sess := GetSessionFromContext(r.Context()); sess != nil {
		if err := h.Svc.Logout(r.Context(), sess); err != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", err)
		}
	}
	clearSessionCookie(w, r, h.CookieDomain)
	redirect(w, r, domainauth.HomePublic)
}

// setSessionCookie writes the session cookie based on the session's expiry.
func setSessionCookie(w http.ResponseWriter, r *http.Request, s *domainauth.Session, domain string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    s.ID,
		Path:     "/",
		Domain:   domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
	})
}

// clearSessionCookie expires the session cookie. It mirrors the attributes
// used when setting it so every browser drops it.
func clearSessionCookie(w http.ResponseWriter, r *http.Request, domain string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}
