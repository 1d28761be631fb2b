package bootstrap

import (
	"log/slog"
	"net/http"

	"github.com/sisbib/sisbib-web/config"
	"github.com/sisbib/sisbib-web/internal/adapters/backend"
)

// NewBackendClient builds the library backend client from config.
func NewBackendClient(cfg config.BackendConfig, logger *slog.Logger) (*backend.Client, error) {
	return backend.NewClient(backend.Config{
		BaseURL: cfg.URL,
		Timeout: cfg.Timeout,
		// Per-request deadlines come from Timeout; the transport keeps the defaults.
		Client: &http.Client{Transport: http.DefaultTransport},
		Logger: logger,
	})
}
