package httpx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sisbib/sisbib-web/internal/ports"
)

const (
	healthResponse      = `{"status":"ok"}`
	readinessTimeout    = 3 * time.Second
	readinessStatusDown = "down"
	readinessStatusUp   = "up"
)

// healthHandler returns a simple 200 OK status for liveness checks.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.WriteString(w, healthResponse); err != nil {
		// Nothing more to do if the client connection is gone.
		return
	}
}

// ReadinessChecker checks one dependency.
type ReadinessChecker func(ctx context.Context) error

// ReadinessHandlers reports whether the session store and the library backend respond.
type ReadinessHandlers struct {
	Store   ports.Pinger // nil for the in-memory store
	Backend ReadinessChecker
	Logger  *slog.Logger
}

// Ready handles GET /readyz.
func (h *ReadinessHandlers) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	checks := map[string]string{}
	ok := true
	check := func(name string, fn ReadinessChecker) {
		if fn == nil {
			return
		}
		if err := fn(ctx); err != nil {
			ok = false
			checks[name] = readinessStatusDown
			if h.Logger != nil {
				h.Logger.WarnContext(ctx, "readiness check failed", "check", name, "error", err)
			}
			return
		}
		checks[name] = readinessStatusUp
	}
	if h.Store != nil {
		check("session_store", h.Store.Ping)
	}
	check("backend", h.Backend)

	status := http.StatusOK
	body := map[string]any{"status": "ok", "checks": checks}
	if !ok {
		status = http.StatusServiceUnavailable
		body["status"] = "unavailable"
	}
	WriteJSON(w, status, body)
}
