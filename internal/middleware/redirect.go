package middleware

import (
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// CanonicalHost permanently redirects www.<host> to https://<host>, keeping
// path and query. The port is dropped since the public site is HTTPS only.
func CanonicalHost() gin.HandlerFunc {
	return func(c *gin.Context) {
		host := c.Request.Host
		if h, _, err := net.SplitHostPort(host); err == nil {
			host = h
		}

		if !strings.HasPrefix(strings.ToLower(host), "www.") {
			c.Next()
			return
		}

		target := url.URL{
			Scheme:   "https",
			Host:     host[len("www."):],
			Path:     c.Request.URL.Path,
			RawPath:  c.Request.URL.RawPath,
			RawQuery: c.Request.URL.RawQuery,
		}

		c.Header("Cache-Control", "public, max-age=31536000, immutable")
		c.Redirect(http.StatusMovedPermanently, target.String())
		c.Abort()
	}
}
