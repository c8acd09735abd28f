package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aalexmrt/portfolio/internal/api/dto/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/*path", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.POST("/panic", func(c *gin.Context) {
		panic("kaboom")
	})
	return r
}

func TestCanonicalHost(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		target   string
		wantCode int
		wantLoc  string
	}{
		{"www redirected", "www.example.com", "/projects?tab=ai", http.StatusMovedPermanently, "https://example.com/projects?tab=ai"},
		{"www with port", "www.example.com:8080", "/", http.StatusMovedPermanently, "https://example.com/"},
		{"upper case www", "WWW.example.com", "/a", http.StatusMovedPermanently, "https://example.com/a"},
		{"bare host untouched", "example.com", "/", http.StatusOK, ""},
		{"www elsewhere untouched", "blog.www.example.com", "/", http.StatusOK, ""},
	}

	r := newRouter(CanonicalHost())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			req.Host = tt.host
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantLoc, w.Header().Get("Location"))
			if tt.wantLoc != "" {
				assert.Equal(t, "public, max-age=31536000, immutable", w.Header().Get("Cache-Control"))
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r := newRouter(RequestID())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "upstream-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "upstream-id", w.Header().Get("X-Request-ID"))
}

func TestRecovery(t *testing.T) {
	r := newRouter(Recovery())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp common.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "An unexpected error occurred. Please try again later.", resp.Error)
	assert.Equal(t, "kaboom", resp.Details)
}
