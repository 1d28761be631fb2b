package httpx

import (
	"context"
	"net/http"

	apperrors "github.com/sisbib/sisbib-web/internal/errors"
	"github.com/sisbib/sisbib-web/internal/fetch"
)

// fetchLatest runs load for view under a supersession token keyed by the
// caller's session and browser tab. When a newer fetch for the same view
// starts first in that tab, the result is dropped and a canceled error is
// returned so the caller renders nothing.
//
// Only htmx requests carrying a tab id take part. Full-page navigations
// always run to completion: the browser replaces the old page by itself.
func fetchLatest[T any](h *UIHandlers, r *http.Request, view string, load func(ctx context.Context) (T, error)) (T, error) {
	tab := TabID(r)
	if h.Fetches == nil || !IsHTMX(r) || tab == "" {
		return load(r.Context())
	}
	tok := h.Fetches.Begin(r.Context(), fetch.Key{Session: sessionIDFromContext(r.Context()), Tab: tab, View: view})
	defer tok.Done()

	v, err := load(tok.Context())
	if !tok.Current() {
		var zero T
		if tok.Superseded() {
			h.logger().DebugContext(r.Context(), "fetch superseded", "view", view)
			return zero, apperrors.Wrap(fetch.ErrSuperseded, apperrors.ErrCodeCanceled, "superseded")
		}
		return zero, apperrors.Wrap(context.Canceled, apperrors.ErrCodeCanceled, "canceled")
	}
	return v, err
}
