// Package metrics holds the Prometheus collectors for sisbib-web.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sisbib_web"

// Outcome label values for backend calls.
const (
	OutcomeSuccess     = "success"
	OutcomeRejected    = "rejected"
	OutcomeUnavailable = "unavailable"
	OutcomeTimeout     = "timeout"
	OutcomeCanceled    = "canceled"
)

var (
	// Backend API Metrics
	BackendRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Calls made to the library backend.",
	}, []string{"endpoint", "outcome"})

	BackendRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Latency of calls to the library backend.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})

	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests served, by route pattern and status code.",
	}, []string{"route", "code"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Time taken to serve HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	// Session Metrics
	SessionEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_events_total",
		Help:      "Session lifecycle events (login, login_failed, logout, expired).",
	}, []string{"event", "role"})

	SessionsPurgedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_purged_total",
		Help:      "Expired sessions deleted by the session reaper.",
	})

	SessionPurgeErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_purge_errors_total",
		Help:      "Session reaper passes that failed.",
	})

	GuardDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Route guard outcomes.",
	}, []string{"outcome"})

	// View Metrics
	FetchesSupersededTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fetches_superseded_total",
		Help:      "List fetches discarded because a newer fetch for the same view started.",
	}, []string{"view"})
)
