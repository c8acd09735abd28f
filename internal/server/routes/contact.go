package routes

import (
	"github.com/aalexmrt/portfolio/internal/api/handlers"
	"github.com/aalexmrt/portfolio/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// SetupContactRoutes configures contact form routes
func SetupContactRoutes(api *gin.RouterGroup, contact *handlers.ContactHandler, cfg *handlers.ClientConfigHandler, m *Middleware) {
	chain := []gin.HandlerFunc{}
	if m.ContactRateLimit != nil {
		chain = append(chain, m.ContactRateLimit.Middleware())
	}
	chain = append(chain,
		middleware.PreserveRequestBody(m.MaxBodySize),
		m.Validation.ValidateContactRequest(),
		contact.Submit,
	)

	// Public endpoints, no auth required
	api.GET("/config", cfg.Get)
	api.POST("/contact", chain...)
}
