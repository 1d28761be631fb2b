package httpx

import (
	"compress/gzip"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
	"time"

	domainauth "github.com/sisbib/sisbib-web/internal/domain/auth"
	"github.com/sisbib/sisbib-web/internal/observability/metrics"
	"github.com/sisbib/sisbib-web/internal/service"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &respWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("route", routeLabel(r)),
				slog.Int("status", ww.status),
				slog.Bool("htmx", IsHTMX(r)),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *respWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *respWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Metrics records request counts and latency per route pattern.
// It must wrap the ServeMux so the matched pattern is visible after the call.
func Metrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &respWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			route := routeLabel(r)
			metrics.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(ww.status)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		})
	}
}

func routeLabel(r *http.Request) string {
	if r.Pattern == "" {
		return "unmatched"
	}
	return r.Pattern
}

// SessionResolver resolves a cookie value to a live session.
type SessionResolver interface {
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
}

// Guard resolves the session cookie and enforces role access for UI routes.
type Guard struct {
	Sessions     SessionResolver
	CookieDomain string
	Logger       *slog.Logger
	// Unavailable renders the response when the session store cannot be reached.
	// Defaults to a plain 503.
	Unavailable func(w http.ResponseWriter, r *http.Request)
}

// Load attaches the session named by the session cookie, if any.
// Unknown or expired ids clear the cookie and continue anonymously; a store
// outage ends the request with 503.
func (g *Guard) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(sessionCookieName)
		if err != nil || c.Value == "" {
			next.ServeHTTP(w, r)
			return
		}
		sess, err := g.Sessions.GetSession(r.Context(), c.Value)
		switch {
		case err == nil:
			next.ServeHTTP(w, r.WithContext(SetSessionInContext(r.Context(), sess)))
		case service.IsNoSession(err):
			clearSessionCookie(w, r, g.CookieDomain)
			next.ServeHTTP(w, r)
		case errors.Is(err, context.Canceled):
			return
		default:
			g.logger().ErrorContext(r.Context(), "session lookup failed",
				slog.String("path", r.URL.Path), slog.Any("error", err))
			metrics.GuardDecisionsTotal.WithLabelValues("unavailable").Inc()
			g.unavailable(w, r)
		}
	})
}

// Require only lets sessions holding one of roles through. Anonymous callers
// go to the login page with their destination preserved; other roles go home.
// Require must run after Load.
func (g *Guard) Require(roles ...domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := GetSessionFromContext(r.Context())
			d := domainauth.Decide(sess, roles, requestedPath(r))
			switch d.Outcome {
			case domainauth.Render:
				metrics.GuardDecisionsTotal.WithLabelValues("render").Inc()
				next.ServeHTTP(w, r)
			case domainauth.RedirectLogin:
				metrics.GuardDecisionsTotal.WithLabelValues("redirect_login").Inc()
				redirect(w, r, d.Location)
			case domainauth.RedirectHome:
				metrics.GuardDecisionsTotal.WithLabelValues("redirect_home").Inc()
				g.logger().InfoContext(r.Context(), "role not allowed",
					slog.String("path", r.URL.Path), slog.String("role", string(sess.Role)))
				redirect(w, r, d.Location)
			}
		})
	}
}

// Anonymous serves public entry pages. Signed-in callers are sent to their home.
// Anonymous must run after Load.
func (g *Guard) Anonymous(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sess := GetSessionFromContext(r.Context()); sess != nil {
			metrics.GuardDecisionsTotal.WithLabelValues("redirect_home").Inc()
			redirect(w, r, domainauth.RoleHome(sess))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (g *Guard) unavailable(w http.ResponseWriter, r *http.Request) {
	if g.Unavailable != nil {
		g.Unavailable(w, r)
		return
	}
	http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
}

func (g *Guard) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}

// requestedPath is the page the user was trying to reach. For htmx requests
// that is the page in the address bar, not the fragment endpoint.
func requestedPath(r *http.Request) string {
	if IsHTMX(r) {
		if current := localPathFromURL(r.Header.Get("Hx-Current-Url")); current != "" {
			return current
		}
	}
	return r.URL.RequestURI()
}

func localPathFromURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if u.IsAbs() {
		return domainauth.SafeLocalPath(u.RequestURI())
	}
	return domainauth.SafeLocalPath(raw)
}

// CompressionConfig holds configuration for the compression middleware.
type CompressionConfig struct {
	Level   int // gzip level 1-9; 0 means gzip.DefaultCompression
	MinSize int // bodies shorter than this are sent as-is
	Logger  *slog.Logger
}

var compressibleTypes = map[string]bool{
	"text/html":              true,
	"text/css":               true,
	"text/plain":             true,
	"text/javascript":        true,
	"application/javascript": true,
	"application/json":       true,
	"image/svg+xml":          true,
}

// Compression gzips compressible responses for clients that accept it.
// Bodies are held back until MinSize bytes arrive so short responses skip the
// gzip framing entirely.
func Compression(cfg CompressionConfig) func(http.Handler) http.Handler {
	if cfg.Level == 0 {
		cfg.Level = gzip.DefaultCompression
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	pool := &sync.Pool{New: func() any {
		zw, err := gzip.NewWriterLevel(nil, cfg.Level)
		if err != nil {
			return gzip.NewWriter(nil)
		}
		return zw
	}}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodHead || !acceptsGzip(r.Header.Get("Accept-Encoding")) {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Add("Vary", "Accept-Encoding")

			gzw := &gzipResponseWriter{ResponseWriter: w, pool: pool, minSize: cfg.MinSize}
			next.ServeHTTP(gzw, r)
			if err := gzw.finish(); err != nil {
				cfg.Logger.ErrorContext(r.Context(), "closing gzip writer failed", "error", err)
			}
		})
	}
}

// acceptsGzip checks if the client accepts gzip encoding, respecting q=0.
func acceptsGzip(acceptEncoding string) bool {
	for part := range strings.SplitSeq(acceptEncoding, ",") {
		name, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if !strings.EqualFold(strings.TrimSpace(name), "gzip") {
			continue
		}
		q := strings.TrimSpace(params)
		if v, ok := strings.CutPrefix(q, "q="); ok {
			if f, err := strconv.ParseFloat(v, 64); err == nil && f == 0 {
				return false
			}
		}
		return true
	}
	return false
}

func isCompressibleContentType(contentType string) bool {
	mediaType, _, _ := strings.Cut(contentType, ";")
	return compressibleTypes[strings.ToLower(strings.TrimSpace(mediaType))]
}

// gzipResponseWriter defers the compression decision until it has seen the
// status, the content type and enough of the body.
type gzipResponseWriter struct {
	http.ResponseWriter
	pool    *sync.Pool
	minSize int

	status     int
	decided    bool
	passthru   bool
	buf        []byte
	gzipWriter *gzip.Writer
}

func (w *gzipResponseWriter) WriteHeader(status int) {
	if w.status != 0 || w.decided {
		return
	}
	w.status = status
	if status < http.StatusOK || status == http.StatusNoContent || status == http.StatusNotModified ||
		w.Header().Get("Content-Encoding") != "" {
		w.decided, w.passthru = true, true
		w.ResponseWriter.WriteHeader(status)
	}
}

func (w *gzipResponseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.WriteHeader(http.StatusOK)
	}
	if w.decided {
		if w.passthru {
			return w.ResponseWriter.Write(b)
		}
		return w.gzipWriter.Write(b)
	}
	w.buf = append(w.buf, b...)
	if len(w.buf) < w.minSize {
		return len(b), nil
	}
	if err := w.decide(); err != nil {
		return 0, err
	}
	return len(b), nil
}

// decide commits headers and drains the buffer.
func (w *gzipResponseWriter) decide() error {
	w.decided = true
	if w.Header().Get("Content-Type") == "" && len(w.buf) > 0 {
		w.Header().Set("Content-Type", http.DetectContentType(w.buf))
	}
	buf := w.buf
	w.buf = nil
	if len(buf) < w.minSize || len(buf) == 0 || !isCompressibleContentType(w.Header().Get("Content-Type")) {
		w.passthru = true
		w.ResponseWriter.WriteHeader(w.status)
		_, err := w.ResponseWriter.Write(buf)
		return err
	}
	w.Header().Set("Content-Encoding", "gzip")
	w.Header().Del("Content-Length")
	w.ResponseWriter.WriteHeader(w.status)
	zw, _ := w.pool.Get().(*gzip.Writer)
	zw.Reset(w.ResponseWriter)
	w.gzipWriter = zw
	_, err := zw.Write(buf)
	return err
}

func (w *gzipResponseWriter) finish() error {
	if !w.decided {
		if w.status == 0 {
			w.status = http.StatusOK
		}
		if err := w.decide(); err != nil {
			return err
		}
	}
	if w.gzipWriter == nil {
		return nil
	}
	err := w.gzipWriter.Close()
	w.gzipWriter.Reset(nil)
	w.pool.Put(w.gzipWriter)
	w.gzipWriter = nil
	return err
}

// Flush implements http.Flusher for streaming support.
func (w *gzipResponseWriter) Flush() {
	if !w.decided && w.status != 0 {
		_ = w.decide()
	}
	if w.gzipWriter != nil {
		_ = w.gzipWriter.Flush()
	}
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
