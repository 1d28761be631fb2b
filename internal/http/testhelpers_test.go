package httpx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sisbib/sisbib-web/internal/adapters/memory"
	domainauth "github.com/sisbib/sisbib-web/internal/domain/auth"
	"github.com/sisbib/sisbib-web/internal/fetch"
	"github.com/sisbib/sisbib-web/internal/mocks"
	mockauth "github.com/sisbib/sisbib-web/internal/mocks/auth"
	"github.com/sisbib/sisbib-web/internal/ports"
	"github.com/sisbib/sisbib-web/internal/service"
)

const testCSRFToken = "test-csrf-token"

// testNow is the fixed clock used by handlers under test.
var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// RequireTemplateRenderer creates a TemplateRenderer for tests, skipping the test if templates are not available.
func RequireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(TemplatePathFromTest),
		Logger:     discardLogger(),
	})
	if err != nil {
		t.Skipf("Templates not available, skipping: %v", err)
		return nil
	}
	return tr
}

// ContainsAll checks if a string contains all the given substrings.
func ContainsAll(s string, subs []string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testApp is the full router wired to in-memory sessions, the stub
// authenticator and a gomock backend.
type testApp struct {
	t       *testing.T
	handler http.Handler
	api     *mocks.MockLibraryAPI
	authn   *mockauth.StubAuthenticator
	auth    *service.AuthService
	store   ports.SessionStore
}

type testAppOption func(*RouterServices, *testAppDeps)

type testAppDeps struct {
	store ports.SessionStore
}

// withSessionStore swaps the in-memory store, e.g. for a failing one.
func withSessionStore(s ports.SessionStore) testAppOption {
	return func(_ *RouterServices, d *testAppDeps) { d.store = s }
}

func newTestApp(t *testing.T, opts ...testAppOption) *testApp {
	t.Helper()
	if _, err := os.Stat(TemplatePathFromTest); os.IsNotExist(err) {
		t.Skip("Templates not available, skipping integration test")
	}

	ctrl := gomock.NewController(t)
	api := mocks.NewMockLibraryAPI(ctrl)
	authn := mockauth.NewStubAuthenticator()

	deps := &testAppDeps{store: memory.NewSessionStore()}
	services := RouterServices{
		API:        api,
		Fetches:    fetch.NewRegistry(),
		TemplateFS: os.DirFS(TemplatePathFromTest),
		StaticFS:   os.DirFS("../../frontend/static"),
		Now:        func() time.Time { return testNow },
		Logger:     discardLogger(),
	}
	for _, opt := range opts {
		opt(&services, deps)
	}
	auth := service.NewAuthService(service.AuthServiceOptions{
		Authenticator: authn,
		Sessions:      deps.store,
		Logger:        discardLogger(),
	})
	services.Auth = auth

	handler, err := NewRouter(services)
	require.NoError(t, err)

	return &testApp{t: t, handler: handler, api: api, authn: authn, auth: auth, store: deps.store}
}

// login opens a session for one of the stub accounts and returns its id.
func (a *testApp) login(role domainauth.Role) string {
	a.t.Helper()
	emails := map[domainauth.Role]string{
		domainauth.RoleAdmin:         "admin@biblio.cl",
		domainauth.RoleBibliotecario: "biblio@biblio.cl",
		domainauth.RoleCliente:       "cliente@biblio.cl",
	}
	sess, err := a.auth.Login(context.Background(), service.LoginInput{
		Credentials: ports.Credentials{Email: emails[role], Password: "secret", Role: role},
	})
	require.NoError(a.t, err)
	return sess.ID
}

// testRequest describes one request against the app.
type testRequest struct {
	Method  string
	Path    string
	Session string
	Form    url.Values
	HTMX    bool
	Target  string
	// Tab is the browser tab id sent with htmx requests; defaults to testTabID.
	Tab string
}

const testTabID = "tab-1"

func (a *testApp) do(tr testRequest) *httptest.ResponseRecorder {
	a.t.Helper()
	return a.serve(a.newRequest(tr))
}

func (a *testApp) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) newRequest(tr testRequest) *http.Request {
	method := tr.Method
	if method == "" {
		method = http.MethodGet
	}
	var body io.Reader
	if tr.Form != nil {
		body = strings.NewReader(tr.Form.Encode())
	}
	req := httptest.NewRequest(method, tr.Path, body)
	if tr.Form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: testCSRFToken})
	if method != http.MethodGet {
		req.Header.Set(DefaultCSRFHeaderName, testCSRFToken)
	}
	if tr.Session != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: tr.Session})
	}
	if tr.HTMX {
		req.Header.Set("Hx-Request", "true")
		tab := tr.Tab
		if tab == "" {
			tab = testTabID
		}
		req.Header.Set(TabIDHeader, tab)
	}
	if tr.Target != "" {
		req.Header.Set("Hx-Target", tr.Target)
	}
	return req
}

// sessionCookie returns the session cookie set on the response, if any.
func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	return nil
}
