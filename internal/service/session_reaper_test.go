package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePurger counts calls and answers with a fixed result.
type fakePurger struct {
	calls atomic.Int32
	n     int64
	err   error
	// onCall runs after each purge; used to stop Run.
	onCall func()
}

func (f *fakePurger) PurgeExpired(context.Context) (int64, error) {
	f.calls.Add(1)
	if f.onCall != nil {
		f.onCall()
	}
	return f.n, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewSessionReaper(t *testing.T) {
	_, err := NewSessionReaper(SessionReaperOptions{})
	require.Error(t, err)

	r, err := NewSessionReaper(SessionReaperOptions{Store: &fakePurger{}})
	require.NoError(t, err)
	assert.Equal(t, DefaultPurgeInterval, r.interval)
}

func TestSessionReaper_PurgeOnce(t *testing.T) {
	t.Run("returns the purged count", func(t *testing.T) {
		p := &fakePurger{n: 3}
		r, err := NewSessionReaper(SessionReaperOptions{Store: p, Logger: discardLogger()})
		require.NoError(t, err)

		n, err := r.PurgeOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
		assert.Equal(t, int32(1), p.calls.Load())
	})

	t.Run("wraps store errors", func(t *testing.T) {
		boom := errors.New("db down")
		r, err := NewSessionReaper(SessionReaperOptions{Store: &fakePurger{err: boom}, Logger: discardLogger()})
		require.NoError(t, err)

		_, err = r.PurgeOnce(context.Background())
		require.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "purge expired sessions")
	})
}

func TestSessionReaper_Run(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The context ends during the first purge; Run must still return nil.
	p := &fakePurger{n: 1, onCall: cancel}
	r, err := NewSessionReaper(SessionReaperOptions{Store: p, Interval: time.Millisecond, Logger: discardLogger()})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	assert.GreaterOrEqual(t, p.calls.Load(), int32(1))
}

func TestSessionReaper_RunKeepsGoingAfterErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := &fakePurger{err: errors.New("transient")}
	p.onCall = func() {
		if p.calls.Load() >= 3 {
			cancel()
		}
	}
	r, err := NewSessionReaper(SessionReaperOptions{Store: p, Interval: time.Millisecond, Logger: discardLogger()})
	require.NoError(t, err)

	require.NoError(t, r.Run(ctx))
	assert.GreaterOrEqual(t, p.calls.Load(), int32(3))
}
