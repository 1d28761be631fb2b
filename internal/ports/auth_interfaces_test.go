package ports_test

import (
	"testing"

	"github.com/sisbib/sisbib-web/internal/adapters/backend"
	"github.com/sisbib/sisbib-web/internal/adapters/memory"
	"github.com/sisbib/sisbib-web/internal/adapters/postgres"
	"github.com/sisbib/sisbib-web/internal/adapters/redis"
	"github.com/sisbib/sisbib-web/internal/mocks"
	mockauth "github.com/sisbib/sisbib-web/internal/mocks/auth"
	"github.com/sisbib/sisbib-web/internal/ports"
)

// This test only verifies that adapters and mocks conform to the ports at compile time.
func TestImplementationsSatisfyPorts(t *testing.T) {
	t.Helper()

	var _ ports.SessionStore = (*memory.SessionStore)(nil)
	var _ ports.SessionStore = (*redis.SessionStore)(nil)
	var _ ports.SessionStore = (*postgres.SessionStore)(nil)
	var _ ports.Pinger = (*redis.SessionStore)(nil)
	var _ ports.Pinger = (*postgres.SessionStore)(nil)
	var _ ports.LibraryAPI = (*backend.Client)(nil)

	var _ ports.SessionStore = (*mocks.MockSessionStore)(nil)
	var _ ports.LibraryAPI = (*mocks.MockLibraryAPI)(nil)
	var _ ports.Authenticator = (*mockauth.StubAuthenticator)(nil)
	var _ ports.SessionStore = (*mockauth.FailingSessionStore)(nil)
}
