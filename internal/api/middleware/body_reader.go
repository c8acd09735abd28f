package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/aalexmrt/portfolio/internal/api/constants"
	"github.com/aalexmrt/portfolio/internal/api/dto/common"
	"github.com/aalexmrt/portfolio/internal/utils"

	"github.com/gin-gonic/gin"
)

// DefaultMaxBodySize bounds request bodies on the public API
const DefaultMaxBodySize int64 = 64 * 1024

// PreserveRequestBody middleware reads the request body once, enforcing
// maxBodySize, and restores it so validators and handlers can both read it.
func PreserveRequestBody(maxBodySize int64) gin.HandlerFunc {
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxBodySize
	}

	return func(c *gin.Context) {
		// Only process methods that carry a request body
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		default:
			c.Next()
			return
		}
		if c.Request.Body == nil {
			c.Next()
			return
		}

		bodyBytes, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				utils.HandleAPIError(c, err, http.StatusRequestEntityTooLarge, common.ErrCodeBadRequest, "Request body is too large.")
				return
			}
			utils.HandleAPIError(c, err, http.StatusBadRequest, common.ErrCodeBadRequest, "Error reading request body.")
			return
		}

		c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		c.Set(constants.ContextKeyRawBody, bodyBytes)

		c.Next()
	}
}

// rawBody returns the body captured by PreserveRequestBody, reading it if the
// middleware did not run.
func rawBody(c *gin.Context) ([]byte, error) {
	if raw, ok := c.Get(constants.ContextKeyRawBody); ok {
		if b, ok := raw.([]byte); ok {
			return b, nil
		}
	}
	if c.Request.Body == nil {
		return nil, nil
	}
	b, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(b))
	return b, nil
}
