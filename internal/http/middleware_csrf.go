package httpx

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultCSRFCookieName is the cookie holding the double-submit token.
	DefaultCSRFCookieName = "csrf_token"
	// DefaultCSRFHeaderName is the header htmx requests carry the token in.
	DefaultCSRFHeaderName = "X-Csrf-Token"
	// DefaultCSRFTokenLength is the token size in bytes before encoding.
	DefaultCSRFTokenLength = 32

	csrfCookieMaxAge = 12 * time.Hour
)

// CSRFConfig holds configuration for CSRF protection middleware.
type CSRFConfig struct {
	CookieName    string
	HeaderName    string
	FormFieldName string
	CookieDomain  string
	TokenLength   int
	Logger        *slog.Logger
	// Rejected writes the response for a request that failed validation.
	// Defaults to a plain 403.
	Rejected func(w http.ResponseWriter, r *http.Request)
}

func (cfg *CSRFConfig) setDefaults() {
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCSRFCookieName
	}
	if cfg.HeaderName == "" {
		cfg.HeaderName = DefaultCSRFHeaderName
	}
	if cfg.FormFieldName == "" {
		cfg.FormFieldName = DefaultCSRFCookieName
	}
	if cfg.TokenLength == 0 {
		cfg.TokenLength = DefaultCSRFTokenLength
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Rejected == nil {
		cfg.Rejected = func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "CSRF token validation failed", http.StatusForbidden)
		}
	}
}

// CSRFProtection guards state-changing requests with the double-submit cookie
// pattern. The token travels back in the X-Csrf-Token header (htmx) or the
// csrf_token form field (plain forms). Safe methods only mint the cookie.
func CSRFProtection(cfg CSRFConfig) func(http.Handler) http.Handler {
	cfg.setDefaults()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := cookieValue(r, cfg.CookieName)
			if token == "" {
				var err error
				if token, err = generateCSRFToken(cfg.TokenLength); err != nil {
					cfg.Logger.ErrorContext(r.Context(), "csrf token generation failed", "error", err)
					http.Error(w, "unable to generate CSRF token", http.StatusInternalServerError)
					return
				}
				setCSRFCookie(w, r, cfg.CookieName, cfg.CookieDomain, token)
			}

			r = r.WithContext(context.WithValue(r.Context(), csrfTokenKey{}, token))

			if requiresCSRFValidation(r.Method) && !validCSRFToken(r, token, cfg) {
				cfg.Logger.WarnContext(r.Context(), "csrf validation failed",
					slog.String("method", r.Method), slog.String("path", r.URL.Path))
				cfg.Rejected(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func requiresCSRFValidation(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return false
	default:
		return true
	}
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

// generateCSRFToken fails closed when the random source errors.
func generateCSRFToken(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("csrf token generation failed: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

func setCSRFCookie(w http.ResponseWriter, r *http.Request, name, domain, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		Domain:   domain,
		HttpOnly: false, // read by app.js for the htmx header
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(csrfCookieMaxAge.Seconds()),
	})
}

// isSecureRequest reports TLS directly or via X-Forwarded-Proto.
func isSecureRequest(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	for proto := range strings.SplitSeq(r.Header.Get("X-Forwarded-Proto"), ",") {
		if strings.EqualFold(strings.TrimSpace(proto), "https") {
			return true
		}
	}
	return false
}

// validCSRFToken compares the submitted token with the cookie in constant time.
// Only form-encoded bodies are parsed for the form field.
func validCSRFToken(r *http.Request, cookieToken string, cfg CSRFConfig) bool {
	if cookieToken == "" {
		return false
	}
	submitted := r.Header.Get(cfg.HeaderName)
	if submitted == "" {
		ct := r.Header.Get("Content-Type")
		if !strings.HasPrefix(ct, "application/x-www-form-urlencoded") && !strings.HasPrefix(ct, "multipart/form-data") {
			return false
		}
		if err := r.ParseForm(); err != nil {
			return false
		}
		submitted = r.PostFormValue(cfg.FormFieldName)
	}
	return submitted != "" && subtle.ConstantTimeCompare([]byte(submitted), []byte(cookieToken)) == 1
}

type csrfTokenKey struct{}

// GetCSRFToken returns the token for templates to embed in forms.
func GetCSRFToken(r *http.Request) string {
	if token, ok := r.Context().Value(csrfTokenKey{}).(string); ok {
		return token
	}
	return ""
}
