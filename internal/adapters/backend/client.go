// Package backend is the typed client for the library REST backend.
// Every response is normalized to the {ok, error?, items?, ...} envelope and
// every failure is classified with internal/errors codes.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/sisbib/sisbib-web/internal/errors"
	obserrors "github.com/sisbib/sisbib-web/internal/observability/errors"
	"github.com/sisbib/sisbib-web/internal/observability/metrics"
)

const (
	defaultTimeout  = 10 * time.Second
	maxResponseSize = 4 << 20
)

// Config describes how to reach the backend.
type Config struct {
	BaseURL string
	// Timeout bounds each request. Caller cancellation is reported separately from it.
	Timeout time.Duration
	Client  *http.Client
	Logger  *slog.Logger
}

// Client calls the library backend. It never retries.
type Client struct {
	base    *url.URL
	timeout time.Duration
	client  *http.Client
	logger  *slog.Logger
}

// NewClient validates cfg and builds a Client.
func NewClient(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		return nil, errors.New("backend base url is required")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("backend url must be http or https, got %q", base.Scheme)
	}
	base.Path = strings.TrimSuffix(base.Path, "/")

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{base: base, timeout: timeout, client: hc, logger: logger}, nil
}

// Envelope is the uniform response shape of every backend endpoint.
// Callers must check OK before trusting any other field.
type Envelope struct {
	OK      bool            `json:"ok"`
	Error   string          `json:"error,omitempty"`
	Items   json.RawMessage `json:"items,omitempty"`
	Count   *int            `json:"count,omitempty"`
	Message string          `json:"message,omitempty"`
	Role    string          `json:"role,omitempty"`
	User    json.RawMessage `json:"user,omitempty"`
	Status  string          `json:"status,omitempty"`
}

// call describes one backend request.
type call struct {
	endpoint string // metric/log label, e.g. "prestamos.list"
	method   string
	path     string
	query    url.Values
	body     any
}

// do performs c and returns the envelope of a successful (ok:true) response.
func (c *Client) do(ctx context.Context, in call) (*Envelope, error) {
	start := time.Now()
	env, err := c.roundTrip(ctx, in)
	metrics.BackendRequestDuration.WithLabelValues(in.endpoint).Observe(time.Since(start).Seconds())
	metrics.BackendRequestsTotal.WithLabelValues(in.endpoint, outcome(err)).Inc()

	switch {
	case err == nil:
		c.logger.DebugContext(ctx, "backend call", "endpoint", in.endpoint, "duration", time.Since(start))
	case apperrors.IsCanceled(err):
		// the caller moved on; nothing to report
	case apperrors.IsRejected(err):
		c.logger.InfoContext(ctx, "backend rejected request",
			"endpoint", in.endpoint, "error", err)
	default:
		c.logger.WarnContext(ctx, "backend call failed",
			"endpoint", in.endpoint, "error", err, "error_class", obserrors.Classify(errors.Unwrap(err)))
	}
	return env, err
}

func (c *Client) roundTrip(ctx context.Context, in call) (*Envelope, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.newRequest(reqCtx, in)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "build backend request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, c.transportError(ctx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, c.transportError(ctx, err)
	}

	var env Envelope
	if decodeErr := json.Unmarshal(data, &env); decodeErr != nil {
		cause := fmt.Errorf("%s %s: status %d: decode envelope: %w", in.method, in.path, resp.StatusCode, decodeErr)
		return nil, &apperrors.AppError{
			Code:    apperrors.ErrCodeUnavailable,
			Message: apperrors.MsgUnavailable,
			Cause:   cause,
			Status:  resp.StatusCode,
		}
	}
	if !env.OK {
		return nil, apperrors.Rejected(strings.TrimSpace(env.Error), resp.StatusCode)
	}
	return &env, nil
}

func (c *Client) newRequest(ctx context.Context, in call) (*http.Request, error) {
	u := *c.base
	u.Path = c.base.Path + in.path
	if len(in.query) > 0 {
		u.RawQuery = in.query.Encode()
	}

	var body io.Reader
	if in.body != nil {
		b, err := json.Marshal(in.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", in.endpoint, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, in.method, u.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// transportError classifies a failure to complete the exchange. parent is the
// caller's context: its cancellation is silent, while our own deadline is a timeout.
func (c *Client) transportError(parent context.Context, err error) error {
	if parentErr := parent.Err(); parentErr != nil {
		return apperrors.FromContext(parentErr)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.FromContext(context.DeadlineExceeded)
	}
	return apperrors.Unavailable(err)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case apperrors.IsCanceled(err):
		return metrics.OutcomeCanceled
	case apperrors.IsRejected(err):
		return metrics.OutcomeRejected
	case apperrors.IsTimeout(err):
		return metrics.OutcomeTimeout
	default:
		return metrics.OutcomeUnavailable
	}
}

// decodeItems unmarshals env.Items into a slice. Missing or null items yield an empty slice.
func decodeItems[T any](env *Envelope, endpoint string) ([]T, error) {
	items := []T{}
	if env == nil || len(env.Items) == 0 || string(env.Items) == "null" {
		return items, nil
	}
	if err := json.Unmarshal(env.Items, &items); err != nil {
		return nil, apperrors.Unavailable(fmt.Errorf("decode %s items: %w", endpoint, err))
	}
	return items, nil
}
