package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	domainauth "github.com/sisbib/sisbib-web/internal/domain/auth"
	"github.com/sisbib/sisbib-web/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(id string, ttl time.Duration) domainauth.Session {
	return domainauth.Session{
		ID:        id,
		Role:      domainauth.RoleAdmin,
		User:      domainauth.User{UserID: 1, Email: "admin@biblio.cl", Nombre: "Ada"},
		CreatedAt: time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(ttl),
	}
}

func TestSessionStore_SaveGetDelete(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	store := NewSessionStore(pool)
	ctx := context.Background()

	sess := newSession("pg-1", time.Hour)
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "pg-1")
	require.NoError(t, err)
	assert.Equal(t, sess.Role, got.Role)
	assert.Equal(t, sess.User, got.User)
	assert.WithinDuration(t, sess.ExpiresAt, got.ExpiresAt, time.Second)

	require.NoError(t, store.Delete(ctx, "pg-1"))
	_, err = store.Get(ctx, "pg-1")
	assert.ErrorIs(t, err, domainauth.ErrSessionNotFound)
}

func TestSessionStore_SaveReplaces(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	store := NewSessionStore(pool)
	ctx := context.Background()

	sess := newSession("pg-2", time.Hour)
	require.NoError(t, store.Save(ctx, sess))
	sess.Role = domainauth.RoleCliente
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "pg-2")
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleCliente, got.Role)
}

func TestSessionStore_ExpiredRowsAreInvisibleAndPurged(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	store := NewSessionStore(pool)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, newSession("pg-live", time.Hour)))
	// Rows written straight through pgxstore with a past expiry.
	data, err := json.Marshal(newSession("pg-old", -time.Hour))
	require.NoError(t, err)
	require.NoError(t, store.store.CommitCtx(ctx, "pg-old", data, time.Now().Add(-time.Minute)))

	_, err = store.Get(ctx, "pg-old")
	assert.ErrorIs(t, err, domainauth.ErrSessionNotFound)

	n, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = store.Get(ctx, "pg-live")
	require.NoError(t, err, "live sessions survive a purge")
}

func TestSessionStore_ClockExpiryHidesRow(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	store := NewSessionStore(pool)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, newSession("pg-3", time.Hour)))
	store.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err := store.Get(ctx, "pg-3")
	assert.ErrorIs(t, err, domainauth.ErrSessionNotFound)

	var count int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM sessions WHERE token = $1`, "pg-3").Scan(&count))
	assert.Zero(t, count, "a row found expired on read is dropped")
}

func TestSessionStore_Validation(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	store := NewSessionStore(pool)
	ctx := context.Background()

	assert.Error(t, store.Save(ctx, newSession("", time.Hour)))
	assert.Error(t, store.Save(ctx, newSession("old", -time.Minute)))

	_, err := store.Get(ctx, "")
	assert.ErrorIs(t, err, domainauth.ErrSessionNotFound)
	require.NoError(t, store.Delete(ctx, ""))
	require.NoError(t, store.Ping(ctx))
}
