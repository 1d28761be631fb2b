// Package memory provides a process-local session store for development and tests.
// Sessions do not survive a restart.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexedwards/scs/v2/memstore"

	domainauth "github.com/sisbib/sisbib-web/internal/domain/auth"
)

// DefaultCleanupInterval is how often expired entries are swept from memory.
const DefaultCleanupInterval = time.Minute

// SessionStore keeps sessions in an scs memstore, encoded as JSON.
type SessionStore struct {
	store *memstore.MemStore
	now   func() time.Time
}

// NewSessionStore creates an empty in-memory session store that sweeps
// expired entries every DefaultCleanupInterval.
func NewSessionStore() *SessionStore {
	return NewSessionStoreWithCleanup(DefaultCleanupInterval)
}

// NewSessionStoreWithCleanup creates a store sweeping expired entries every
// interval. A zero interval disables the sweep; reads still hide expired entries.
// The sweep lives as long as the process: memstore.StopCleanup is not safe to
// call while the sweep goroutine is starting.
func NewSessionStoreWithCleanup(interval time.Duration) *SessionStore {
	return &SessionStore{
		store: memstore.NewWithCleanupInterval(interval),
		now:   time.Now,
	}
}

// NewSessionStoreWithClock is NewSessionStore with an injectable clock.
func NewSessionStoreWithClock(now func() time.Time) *SessionStore {
	s := NewSessionStore()
	if now != nil {
		s.now = now
	}
	return s
}

// Save stores a session, replacing any previous value with the same ID.
func (s *SessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	if sess.Expired(s.now()) {
		return errors.New("session already expired")
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.store.Commit(sess.ID, data, sess.ExpiresAt)
}

// Get returns the session or domainauth.ErrSessionNotFound. Expired entries are evicted on read.
func (s *SessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, domainauth.ErrSessionNotFound
	}
	data, found, err := s.store.Find(id)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("find session: %w", err)
	}
	if !found {
		return domainauth.Session{}, domainauth.ErrSessionNotFound
	}

	var sess domainauth.Session
	if err := json.Unmarshal(data, &sess); err != nil || sess.Expired(s.now()) {
		if delErr := s.store.Delete(id); delErr != nil {
			return domainauth.Session{}, fmt.Errorf("drop session: %w", delErr)
		}
		return domainauth.Session{}, domainauth.ErrSessionNotFound
	}
	return sess, nil
}

// Delete removes a session. Unknown ids are not an error.
func (s *SessionStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.store.Delete(id)
}

// Len reports how many live sessions are held.
func (s *SessionStore) Len() int {
	all, err := s.store.All()
	if err != nil {
		return 0
	}
	return len(all)
}
