package httpx

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveCompressed(t *testing.T, cfg CompressionConfig, req *http.Request, h http.HandlerFunc) *http.Response {
	t.Helper()
	rec := httptest.NewRecorder()
	Compression(cfg)(h).ServeHTTP(rec, req)
	res := rec.Result()
	t.Cleanup(func() { _ = res.Body.Close() })
	return res
}

func gzipRequest(method, acceptEncoding string) *http.Request {
	req := httptest.NewRequest(method, "/", nil)
	if acceptEncoding != "" {
		req.Header.Set("Accept-Encoding", acceptEncoding)
	}
	return req
}

func readGzip(t *testing.T, r io.Reader) string {
	t.Helper()
	gr, err := gzip.NewReader(r)
	require.NoError(t, err)
	defer gr.Close()
	b, err := io.ReadAll(gr)
	require.NoError(t, err)
	return string(b)
}

func htmlHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		if body != "" {
			_, _ = w.Write([]byte(body))
		}
	}
}

func TestCompression(t *testing.T) {
	body := strings.Repeat("<tr><td>Rayuela</td></tr>", 200)

	tests := []struct {
		name           string
		acceptEncoding string
		level          int
		expectGzip     bool
	}{
		{"client accepts gzip", "gzip, deflate", 6, true},
		{"client does not accept gzip", "deflate", 6, false},
		{"no accept-encoding header", "", 6, false},
		{"default level", "gzip", 0, true},
		{"best level", "gzip", 9, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := serveCompressed(t, CompressionConfig{Level: tt.level},
				gzipRequest(http.MethodGet, tt.acceptEncoding), htmlHandler(http.StatusOK, body))

			if !tt.expectGzip {
				assert.Empty(t, res.Header.Get("Content-Encoding"))
				b, err := io.ReadAll(res.Body)
				require.NoError(t, err)
				assert.Equal(t, body, string(b))
				return
			}
			assert.Equal(t, "gzip", res.Header.Get("Content-Encoding"))
			assert.Empty(t, res.Header.Get("Content-Length"))
			assert.Equal(t, "Accept-Encoding", res.Header.Get("Vary"))
			assert.Equal(t, body, readGzip(t, res.Body))
		})
	}
}

func TestCompressionWithStatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		expectGzip bool
	}{
		{"200 with HTML", http.StatusOK, "contenido", true},
		{"404 with HTML", http.StatusNotFound, "no encontrado", true},
		{"503 with HTML", http.StatusServiceUnavailable, "no disponible", true},
		{"204 No Content", http.StatusNoContent, "", false},
		{"304 Not Modified", http.StatusNotModified, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := serveCompressed(t, CompressionConfig{},
				gzipRequest(http.MethodGet, "gzip"), htmlHandler(tt.status, tt.body))
			assert.Equal(t, tt.status, res.StatusCode)
			if tt.expectGzip {
				assert.Equal(t, "gzip", res.Header.Get("Content-Encoding"))
				assert.Equal(t, tt.body, readGzip(t, res.Body))
			} else {
				assert.Empty(t, res.Header.Get("Content-Encoding"))
			}
		})
	}
}

func TestCompressionContentTypeFiltering(t *testing.T) {
	tests := []struct {
		contentType string
		expectGzip  bool
	}{
		{"text/html", true},
		{"text/css", true},
		{"application/json", true},
		{"text/javascript; charset=utf-8", true},
		{"image/png", false},
		{"application/pdf", false},
	}
	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			res := serveCompressed(t, CompressionConfig{}, gzipRequest(http.MethodGet, "gzip"),
				func(w http.ResponseWriter, _ *http.Request) {
					w.Header().Set("Content-Type", tt.contentType)
					_, _ = w.Write([]byte("payload"))
				})
			if tt.expectGzip {
				assert.Equal(t, "gzip", res.Header.Get("Content-Encoding"))
			} else {
				assert.Empty(t, res.Header.Get("Content-Encoding"))
			}
		})
	}
}

func TestCompressionMinSize(t *testing.T) {
	small := serveCompressed(t, CompressionConfig{MinSize: 1024},
		gzipRequest(http.MethodGet, "gzip"), htmlHandler(http.StatusOK, "<p>corto</p>"))
	assert.Empty(t, small.Header.Get("Content-Encoding"))
	b, err := io.ReadAll(small.Body)
	require.NoError(t, err)
	assert.Equal(t, "<p>corto</p>", string(b))

	chunked := func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		for range 10 {
			_, _ = w.Write([]byte(strings.Repeat("x", 200)))
		}
	}
	large := serveCompressed(t, CompressionConfig{MinSize: 1024}, gzipRequest(http.MethodGet, "gzip"), chunked)
	assert.Equal(t, "gzip", large.Header.Get("Content-Encoding"))
	assert.Equal(t, strings.Repeat("x", 2000), readGzip(t, large.Body))
}

func TestCompressionHEADRequest(t *testing.T) {
	res := serveCompressed(t, CompressionConfig{}, gzipRequest(http.MethodHead, "gzip"), htmlHandler(http.StatusOK, ""))
	assert.Empty(t, res.Header.Get("Content-Encoding"))
}

func TestAcceptsGzip(t *testing.T) {
	tests := map[string]bool{
		"gzip;q=1":      true,
		"gzip;q=0.5":    true,
		"gzip;q=0":      false,
		"gzip; q=0.0":   false,
		"deflate, gzip": true,
		"deflate":       false,
		"":              false,
		"x-gzip":        false,
	}
	for header, want := range tests {
		assert.Equal(t, want, acceptsGzip(header), header)
	}
}

func TestCompressionPreExistingContentEncoding(t *testing.T) {
	res := serveCompressed(t, CompressionConfig{}, gzipRequest(http.MethodGet, "gzip"),
		func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.Header().Set("Content-Encoding", "br")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ya comprimido"))
		})
	assert.Equal(t, "br", res.Header.Get("Content-Encoding"))
}
