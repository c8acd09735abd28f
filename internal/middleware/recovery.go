package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/aalexmrt/portfolio/internal/api/constants"
	"github.com/aalexmrt/portfolio/internal/api/dto/common"
	"github.com/aalexmrt/portfolio/internal/api/dto/v1/contact"
	"github.com/aalexmrt/portfolio/internal/logging"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into a 500 JSON response and logs the stack trace
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logging.GetLogger().Error("[PANIC] %s %s | %s | %s | %v\n%s",
					c.Request.Method,
					c.Request.URL.Path,
					c.ClientIP(),
					c.GetString(constants.ContextKeyRequestID),
					r,
					debug.Stack(),
				)

				details := ""
				if gin.Mode() != gin.ReleaseMode {
					details = fmt.Sprint(r)
				}

				if c.Writer.Written() {
					c.Abort()
					return
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					common.NewErrorResponse(common.ErrCodeInternalServer, contact.ErrUnexpected, details))
			}
		}()

		c.Next()
	}
}
