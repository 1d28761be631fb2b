package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sisbib/sisbib-web/internal/observability/metrics"
	"github.com/sisbib/sisbib-web/internal/ports"
)

// DefaultPurgeInterval is used when SessionReaperOptions.Interval is unset.
const DefaultPurgeInterval = 15 * time.Minute

// SessionReaperOptions groups dependencies for SessionReaper.
type SessionReaperOptions struct {
	Store    ports.SessionPurger // Required
	Interval time.Duration
	Logger   *slog.Logger
}

// SessionReaper periodically deletes expired sessions from stores without a
// native TTL. Expired sessions are already rejected on read; this only
// reclaims space.
type SessionReaper struct {
	store    ports.SessionPurger
	interval time.Duration
	logger   *slog.Logger
}

// NewSessionReaper constructs a SessionReaper.
func NewSessionReaper(opts SessionReaperOptions) (*SessionReaper, error) {
	if opts.Store == nil {
		return nil, errors.New("session purger is required")
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultPurgeInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionReaper{
		store:    opts.Store,
		interval: interval,
		logger:   logger.With("component", "session_reaper"),
	}, nil
}

// Run purges once after a short jitter, then on every tick until ctx ends.
// Returns nil on graceful shutdown.
func (s *SessionReaper) Run(ctx context.Context) error {
	s.logger.InfoContext(ctx, "starting session reaper", "interval", s.interval)

	// Jitter keeps replicas started together from purging in lockstep.
	s.waitWithJitter(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.purge(ctx)
	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "session reaper stopping", "reason", ctx.Err())
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			s.purge(ctx)
		}
	}
}

// PurgeOnce deletes expired sessions and returns how many were removed.
func (s *SessionReaper) PurgeOnce(ctx context.Context) (int64, error) {
	n, err := s.store.PurgeExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("purge expired sessions: %w", err)
	}
	return n, nil
}

func (s *SessionReaper) purge(ctx context.Context) {
	start := time.Now()
	n, err := s.PurgeOnce(ctx)
	if err != nil {
		if isContextCancellation(err) {
			return
		}
		metrics.SessionPurgeErrorsTotal.Inc()
		s.logger.WarnContext(ctx, "session purge failed", "error", err)
		return
	}
	metrics.SessionsPurgedTotal.Add(float64(n))
	if n > 0 {
		s.logger.InfoContext(ctx, "purged expired sessions", "count", n, "duration", time.Since(start))
	}
}

// waitWithJitter sleeps up to 10% of the interval.
func (s *SessionReaper) waitWithJitter(ctx context.Context) {
	maxJitter := int64(s.interval / 10)
	if maxJitter <= 0 {
		return
	}

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		s.logger.WarnContext(ctx, "failed to generate jitter, skipping", "error", err)
		return
	}
	jitter := time.Duration(int64(binary.BigEndian.Uint64(buf[:]) % uint64(maxJitter))) // #nosec G115 - bounded by maxJitter

	timer := time.NewTimer(jitter)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

func isContextCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
