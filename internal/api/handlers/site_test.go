package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSiteRouter(t *testing.T, with404 bool) *gin.Engine {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte("<h1>home</h1>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "projects"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "projects", "index.html"), []byte("<h1>projects</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sitemap-index.xml"), []byte("<sitemapindex/>"), 0o644))
	if with404 {
		require.NoError(t, os.WriteFile(filepath.Join(root, "404.html"), []byte("<h1>lost</h1>"), 0o644))
	}

	gin.SetMode(gin.TestMode)
	h := NewSiteHandler(root)
	r := gin.New()
	r.GET("/sitemap.xml", h.Sitemap)
	r.NoRoute(h.Serve)
	return r
}

func serve(r http.Handler, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSitemapRedirect(t *testing.T) {
	r := newSiteRouter(t, false)

	w := serve(r, http.MethodGet, "http://example.com/sitemap.xml", nil)
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "http://example.com/sitemap-index.xml", w.Header().Get("Location"))
	assert.Equal(t, "public, max-age=3600", w.Header().Get("Cache-Control"))

	w = serve(r, http.MethodGet, "http://example.com/sitemap.xml", http.Header{"X-Forwarded-Proto": {"https"}})
	assert.Equal(t, "https://example.com/sitemap-index.xml", w.Header().Get("Location"))
}

func TestSiteServe(t *testing.T) {
	tests := []struct {
		name     string
		with404  bool
		method   string
		target   string
		wantCode int
		wantBody string
	}{
		{"index", false, http.MethodGet, "/", http.StatusOK, "<h1>home</h1>"},
		{"directory index", false, http.MethodGet, "/projects/", http.StatusOK, "<h1>projects</h1>"},
		{"sitemap index file", false, http.MethodGet, "/sitemap-index.xml", http.StatusOK, "<sitemapindex/>"},
		{"custom 404 page", true, http.MethodGet, "/missing", http.StatusNotFound, "<h1>lost</h1>"},
		{"plain 404", false, http.MethodGet, "/missing", http.StatusNotFound, "404 page not found"},
		{"unknown api path", true, http.MethodGet, "/api/unknown", http.StatusNotFound, `"code":"NOT_FOUND"`},
		{"unsupported method", false, http.MethodPost, "/", http.StatusNotFound, `"success":false`},
		{"traversal stays in root", false, http.MethodGet, "/../../etc/passwd", http.StatusNotFound, "404 page not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newSiteRouter(t, tt.with404)
			w := serve(r, tt.method, tt.target, nil)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}
