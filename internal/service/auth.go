package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	domainauth "github.com/sisbib/sisbib-web/internal/domain/auth"
	apperrors "github.com/sisbib/sisbib-web/internal/errors"
	"github.com/sisbib/sisbib-web/internal/observability/metrics"
	"github.com/sisbib/sisbib-web/internal/ports"
)

// DefaultSessionTTL is used when AuthServiceOptions.TTL is unset.
const DefaultSessionTTL = 12 * time.Hour

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Authenticator ports.Authenticator
	Sessions      ports.SessionStore
	TTL           time.Duration
	Logger        *slog.Logger
	// Now overrides the clock in tests.
	Now func() time.Time
}

// AuthService owns the session lifecycle: login against the backend, lookup, and logout.
type AuthService struct {
	authn    ports.Authenticator
	sessions ports.SessionStore
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		authn:    opts.Authenticator,
		sessions: opts.Sessions,
		ttl:      ttl,
		logger:   logger.With("component", "auth_service"),
		now:      now,
	}
}

// LoginInput is a login attempt. PreviousSessionID is the id currently held by
// the browser, if any; it is replaced on success.
type LoginInput struct {
	Credentials       ports.Credentials
	PreviousSessionID string
}

// Login verifies credentials with the backend and persists a fresh session.
// Rejections carry the backend's message verbatim.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*domainauth.Session, error) {
	creds := in.Credentials
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" || creds.Password == "" {
		return nil, apperrors.Validation("Ingresa email y contraseña")
	}
	if !creds.Role.Valid() {
		return nil, apperrors.ValidationField("role", "Selecciona un rol")
	}

	res, err := s.authn.Login(ctx, creds)
	if err != nil {
		if !apperrors.IsCanceled(err) {
			metrics.SessionEventsTotal.WithLabelValues("login_failed", string(creds.Role)).Inc()
		}
		return nil, err
	}

	// The backend is authoritative for the role; fall back to the requested one
	// only when it reports nothing usable.
	role, ok := domainauth.ParseRole(res.Role)
	if !ok {
		role = creds.Role
	}
	user := res.User
	if strings.TrimSpace(user.Email) == "" {
		user.Email = creds.Email
	}

	now := s.now().UTC()
	sess := domainauth.Session{
		ID:        uuid.NewString(),
		Role:      role,
		User:      user,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if in.PreviousSessionID != "" {
		if delErr := s.sessions.Delete(ctx, in.PreviousSessionID); delErr != nil && !errors.Is(delErr, domainauth.ErrSessionNotFound) {
			s.logger.WarnContext(ctx, "failed to delete previous session", "error", delErr)
		}
	}
	if saveErr := s.sessions.Save(ctx, sess); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}

	metrics.SessionEventsTotal.WithLabelValues("login", string(role)).Inc()
	s.logger.InfoContext(ctx, "user logged in", "user_id", user.UserID, "role", role)
	return &sess, nil
}

// GetSession retrieves a live session by ID. Unknown ids yield ErrSessionNotFound,
// expired ones are deleted and yield ErrSessionExpired. Any other error is a store outage.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, domainauth.ErrSessionNotFound
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domainauth.ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	if sess.Expired(s.now()) || !sess.Role.Valid() {
		metrics.SessionEventsTotal.WithLabelValues("expired", string(sess.Role)).Inc()
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil && !errors.Is(deleteErr, domainauth.ErrSessionNotFound) {
			return nil, errors.Join(domainauth.ErrSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, domainauth.ErrSessionExpired
	}

	return &sess, nil
}

// Logout removes a session. An empty or unknown id is not an error.
func (s *AuthService) Logout(ctx context.Context, sess *domainauth.Session) error {
	if sess == nil || sess.ID == "" {
		return nil
	}

	if err := s.sessions.Delete(ctx, sess.ID); err != nil && !errors.Is(err, domainauth.ErrSessionNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}

	metrics.SessionEventsTotal.WithLabelValues("logout", string(sess.Role)).Inc()
	return nil
}

// IsNoSession reports whether err means the browser simply has no usable
// session, as opposed to the store being unreachable.
func IsNoSession(err error) bool {
	return errors.Is(err, domainauth.ErrSessionNotFound) || errors.Is(err, domainauth.ErrSessionExpired)
}
