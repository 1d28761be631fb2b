package config

import (
	"strings"
	"time"
)

const defaultBackendTimeout = 10 * time.Second

// BackendConfig describes how to reach the library REST backend.
type BackendConfig struct {
	// URL is the backend base URL; API paths such as /api/login are joined onto it.
	URL string `env:"BACKEND_URL" envDefault:"http://127.0.0.1:5000"`

	// Timeout bounds every backend call.
	Timeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"10s"`
}

// Sanitize trims the URL and restores a usable timeout.
func (c *BackendConfig) Sanitize() {
	c.URL = strings.TrimRight(strings.TrimSpace(c.URL), "/")
	if c.Timeout <= 0 {
		c.Timeout = defaultBackendTimeout
	}
}
