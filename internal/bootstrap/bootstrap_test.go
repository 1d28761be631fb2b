package bootstrap

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sisbib/sisbib-web/config"
	"github.com/sisbib/sisbib-web/internal/adapters/memory"
	mockauth "github.com/sisbib/sisbib-web/internal/mocks/auth"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewLogger(t *testing.T) {
	t.Run("json by default and filtered by level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, config.LoggingConfig{Level: "warn", Format: "json"})

		logger.Info("hidden")
		logger.Warn("shown", "k", "v")

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, `"msg":"shown"`)
		assert.Contains(t, out, `"k":"v"`)
	})

	t.Run("text format", func(t *testing.T) {
		var buf bytes.Buffer
		NewLogger(&buf, config.LoggingConfig{Format: "text"}).Info("hello")
		assert.Contains(t, buf.String(), "msg=hello")
	})
}

func TestPostgresDSN(t *testing.T) {
	dsn := PostgresDSN(config.DBConfig{
		Host:     "db",
		Port:     5432,
		User:     "sisbib",
		Password: "p@ss/word",
		Name:     "sisbib_web",
		SSLMode:  "disable",
	})
	assert.Equal(t, "postgres://sisbib:p%40ss%2Fword@db:5432/sisbib_web?sslmode=disable", dsn)
}

func TestOpenSessionBackend_Memory(t *testing.T) {
	cfg := config.AppConfig{Session: config.SessionConfig{Store: config.SessionStoreMemory}}

	b, err := OpenSessionBackend(context.Background(), &cfg, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, config.SessionStoreMemory, b.Kind)
	assert.IsType(t, &memory.SessionStore{}, b.Store)
	assert.Nil(t, b.Pinger)
	assert.Nil(t, b.Purger)
	assert.NoError(t, b.Close())
}

func TestOpenSessionBackend_Errors(t *testing.T) {
	_, err := OpenSessionBackend(context.Background(), nil, discardLogger())
	require.Error(t, err)

	cfg := config.AppConfig{Session: config.SessionConfig{Store: "memcached"}}
	_, err = OpenSessionBackend(context.Background(), &cfg, discardLogger())
	require.ErrorContains(t, err, "unsupported session store")
}

func TestSessionBackend_CloseRunsClosersInReverse(t *testing.T) {
	var order []string
	b := &SessionBackend{closers: []func() error{
		func() error { order = append(order, "first"); return nil },
		func() error { order = append(order, "second"); return io.ErrClosedPipe },
	}}

	err := b.Close()
	require.ErrorIs(t, err, io.ErrClosedPipe)
	assert.Equal(t, []string{"second", "first"}, order)
	assert.NoError(t, b.Close(), "closers run once")

	var nilBackend *SessionBackend
	assert.NoError(t, nilBackend.Close())
}

func TestBuildAuthService(t *testing.T) {
	_, err := BuildAuthService(AuthServiceConfig{Sessions: memory.NewSessionStore()})
	require.ErrorContains(t, err, "authenticator")

	_, err = BuildAuthService(AuthServiceConfig{Authenticator: &mockauth.StubAuthenticator{}})
	require.ErrorContains(t, err, "session store")

	svc, err := BuildAuthService(AuthServiceConfig{
		Authenticator: &mockauth.StubAuthenticator{},
		Sessions:      memory.NewSessionStore(),
		Logger:        discardLogger(),
	})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestNewBackendClient_RejectsBadURL(t *testing.T) {
	_, err := NewBackendClient(config.BackendConfig{URL: "ftp://example.com"}, discardLogger())
	require.Error(t, err)
}

func TestNewHTTPServer(t *testing.T) {
	cfg := config.HTTPConfig{ReadTimeout: time.Second, WriteTimeout: 2 * time.Second, IdleTimeout: 3 * time.Second}
	srv := NewHTTPServer(cfg, http.NotFoundHandler())

	assert.Equal(t, ":8080", srv.Addr)
	assert.Equal(t, time.Second, srv.ReadTimeout)
	assert.Equal(t, 2*time.Second, srv.WriteTimeout)
	assert.Equal(t, 3*time.Second, srv.IdleTimeout)
}

func TestRunHTTPServer_RequiresServer(t *testing.T) {
	require.Error(t, RunHTTPServer(context.Background(), HTTPRunConfig{}))
}

func TestShutdownHTTPServer_NilServer(t *testing.T) {
	assert.NoError(t, ShutdownHTTPServer(ShutdownConfig{}))
}

// fakeBackend answers /api/health like the library backend.
func fakeBackend(t *testing.T, healthy bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/api/health" && healthy {
			_, _ = io.WriteString(w, `{"ok":true}`)
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `{"ok":false,"error":"down"}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(backendURL string) config.AppConfig {
	cfg := config.AppConfig{
		Backend: config.BackendConfig{URL: backendURL, Timeout: 2 * time.Second},
		Session: config.SessionConfig{Store: config.SessionStoreMemory},
		HTTP:    config.HTTPConfig{ShutdownTimeout: 2 * time.Second},
	}
	cfg.Sanitize()
	return cfg
}

func TestApp_Serve(t *testing.T) {
	tests := []struct {
		name       string
		healthy    bool
		wantReady  int
		wantStatus string
	}{
		{name: "backend up", healthy: true, wantReady: http.StatusOK, wantStatus: `"status":"ok"`},
		{name: "backend down", healthy: false, wantReady: http.StatusServiceUnavailable, wantStatus: `"status":"unavailable"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := fakeBackend(t, tt.healthy)
			app, err := NewApp(context.Background(), testConfig(backend.URL), discardLogger())
			require.NoError(t, err)
			t.Cleanup(func() { _ = app.Close() })

			ln, err := net.Listen("tcp", "127.0.0.1:0")
			require.NoError(t, err)

			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- app.Serve(ctx, ln) }()

			base := "http://" + ln.Addr().String()
			resp, err := http.Get(base + "/healthz")
			require.NoError(t, err)
			_ = resp.Body.Close()
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			resp, err = http.Get(base + "/readyz")
			require.NoError(t, err)
			body, _ := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			assert.Equal(t, tt.wantReady, resp.StatusCode)
			assert.Contains(t, string(body), tt.wantStatus)

			cancel()
			select {
			case err := <-done:
				require.NoError(t, err)
			case <-time.After(5 * time.Second):
				t.Fatal("Serve did not stop after cancellation")
			}
		})
	}
}

func TestApp_ServeLandingPage(t *testing.T) {
	backend := fakeBackend(t, true)
	app, err := NewApp(context.Background(), testConfig(backend.URL), discardLogger())
	require.NoError(t, err)

	h, err := app.Handler()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html"))
}

func TestNewApp_BadBackendURL(t *testing.T) {
	cfg := testConfig("")
	cfg.Backend.URL = "not a url"
	_, err := NewApp(context.Background(), cfg, discardLogger())
	require.ErrorContains(t, err, "backend client")
}
