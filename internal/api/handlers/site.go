package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aalexmrt/portfolio/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

// SiteHandler serves the pre-built static site and the sitemap redirect
type SiteHandler struct {
	root  string
	files http.Handler
}

func NewSiteHandler(root string) *SiteHandler {
	return &SiteHandler{
		root:  root,
		files: http.FileServer(http.Dir(root)),
	}
}

// Sitemap permanently redirects /sitemap.xml to the generated sitemap index
func (h *SiteHandler) Sitemap(c *gin.Context) {
	scheme := "http"
	if c.Request.TLS != nil || strings.EqualFold(c.GetHeader("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Redirect(http.StatusMovedPermanently, scheme+"://"+c.Request.Host+"/sitemap-index.xml")
}

// Serve serves files from the site directory. Unknown API paths get a JSON
// 404; unknown pages get the site's 404.html when it exists.
func (h *SiteHandler) Serve(c *gin.Context) {
	urlPath := path.Clean("/" + c.Request.URL.Path)

	if strings.HasPrefix(urlPath, "/api/") || (c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
		c.JSON(http.StatusNotFound, common.NewErrorResponse(common.ErrCodeNotFound, "Not found", ""))
		return
	}

	if h.exists(urlPath) {
		h.files.ServeHTTP(c.Writer, c.Request)
		return
	}

	if page, err := os.ReadFile(filepath.Join(h.root, "404.html")); err == nil {
		c.Data(http.StatusNotFound, "text/html; charset=utf-8", page)
		return
	}
	c.String(http.StatusNotFound, "404 page not found")
}

// exists reports whether urlPath maps to a file or a directory with an index
func (h *SiteHandler) exists(urlPath string) bool {
	name := filepath.Join(h.root, filepath.FromSlash(urlPath))
	info, err := os.Stat(name)
	if err != nil {
		return false
	}
	if !info.IsDir() {
		return true
	}
	_, err = os.Stat(filepath.Join(name, "index.html"))
	return err == nil
}
