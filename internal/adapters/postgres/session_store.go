// Package postgres provides a PostgreSQL-backed session store for deployments
// that already run a database and prefer it over Redis.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexedwards/scs/pgxstore"
	"github.com/jackc/pgx/v5/pgxpool"

	domainauth "github.com/sisbib/sisbib-web/internal/domain/auth"
	apperrors "github.com/sisbib/sisbib-web/internal/errors"
)

// SessionStore keeps sessions in the scs sessions table, encoded as JSON.
// Expired rows are hidden on read and removed by PurgeExpired; the pgxstore
// sweeper stays off so purges are counted by the session reaper.
type SessionStore struct {
	pool  *pgxpool.Pool
	store *pgxstore.PostgresStore
	now   func() time.Time
}

// NewSessionStore creates a store over a pgx pool.
// The sessions table comes from internal/migrate.
func NewSessionStore(pool *pgxpool.Pool) *SessionStore {
	return &SessionStore{
		pool:  pool,
		store: pgxstore.NewWithCleanupInterval(pool, 0),
		now:   time.Now,
	}
}

func (s *SessionStore) Save(ctx context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	if sess.Expired(s.now()) {
		return errors.New("session is expired")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.store.CommitCtx(ctx, sess.ID, data, sess.ExpiresAt); err != nil {
		return fmt.Errorf("save session: %w", apperrors.MapDBError(err))
	}
	return nil
}

// Get loads a live session. Missing, expired and undecodable rows report domainauth.ErrSessionNotFound.
func (s *SessionStore) Get(ctx context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, domainauth.ErrSessionNotFound
	}

	data, found, err := s.store.FindCtx(ctx, id)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("get session: %w", apperrors.MapDBError(err))
	}
	if !found {
		return domainauth.Session{}, domainauth.ErrSessionNotFound
	}

	var sess domainauth.Session
	if unmarshalErr := json.Unmarshal(data, &sess); unmarshalErr != nil || sess.Expired(s.now()) {
		if deleteErr := s.Delete(ctx, id); deleteErr != nil {
			return domainauth.Session{}, fmt.Errorf("drop session: %w", deleteErr)
		}
		return domainauth.Session{}, domainauth.ErrSessionNotFound
	}
	return sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.store.DeleteCtx(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", apperrors.MapDBError(err))
	}
	return nil
}

// PurgeExpired removes rows past their expiry and returns how many were deleted.
func (s *SessionStore) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE expiry < current_timestamp`)
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", apperrors.MapDBError(err))
	}
	return tag.RowsAffected(), nil
}

// Ping reports whether the database answers.
func (s *SessionStore) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres ping: %w", apperrors.MapDBError(err))
	}
	return nil
}
