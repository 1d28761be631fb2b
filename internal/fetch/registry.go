// Package fetch tracks in-flight list fetches so that only the newest fetch
// for a given view commits its results.
package fetch

import (
	"context"
	"errors"
	"sync"

	"github.com/sisbib/sisbib-web/internal/observability/metrics"
)

// ErrSuperseded is the cancellation cause of a fetch replaced by a newer one.
var ErrSuperseded = errors.New("fetch superseded by a newer request")

// Key identifies one view as seen by one browser tab of one session.
type Key struct {
	Session string
	Tab     string
	View    string
}

type entry struct {
	gen    uint64
	cancel context.CancelCauseFunc
}

// Registry hands out supersession tokens. The zero value is not usable; use NewRegistry.
type Registry struct {
	mu     sync.Mutex
	gen    uint64
	active map[Key]entry
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{active: make(map[Key]entry)}
}

// Token is the handle of one fetch. Its context is canceled with ErrSuperseded
// as soon as a newer fetch begins for the same key.
type Token struct {
	reg    *Registry
	key    Key
	gen    uint64
	ctx    context.Context
	cancel context.CancelCauseFunc
}

// Begin starts a fetch for key, canceling any fetch already running for it.
func (r *Registry) Begin(parent context.Context, key Key) *Token {
	ctx, cancel := context.WithCancelCause(parent)

	r.mu.Lock()
	r.gen++
	gen := r.gen
	prev, hadPrev := r.active[key]
	r.active[key] = entry{gen: gen, cancel: cancel}
	r.mu.Unlock()

	if hadPrev {
		prev.cancel(ErrSuperseded)
		metrics.FetchesSupersededTotal.WithLabelValues(key.View).Inc()
	}
	return &Token{reg: r, key: key, gen: gen, ctx: ctx, cancel: cancel}
}

// Context is the context the fetch must run under.
func (t *Token) Context() context.Context { return t.ctx }

// Current reports whether the fetch may still commit: no newer fetch began
// for its key and its context is still live.
func (t *Token) Current() bool {
	if t.ctx.Err() != nil {
		return false
	}
	t.reg.mu.Lock()
	defer t.reg.mu.Unlock()
	e, ok := t.reg.active[t.key]
	return ok && e.gen == t.gen
}

// Superseded reports whether a newer fetch replaced this one.
func (t *Token) Superseded() bool {
	return errors.Is(context.Cause(t.ctx), ErrSuperseded)
}

// Done releases the token. It is safe to call more than once.
func (t *Token) Done() {
	t.reg.mu.Lock()
	if e, ok := t.reg.active[t.key]; ok && e.gen == t.gen {
		delete(t.reg.active, t.key)
	}
	t.reg.mu.Unlock()
	t.cancel(context.Canceled)
}

// Len returns the number of fetches in flight.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.active)
}
