package routes

import (
	"github.com/aalexmrt/portfolio/internal/api/middleware"
	"github.com/aalexmrt/portfolio/internal/logging"
	coremw "github.com/aalexmrt/portfolio/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// GlobalOptions configures middleware applied to every request
type GlobalOptions struct {
	ServiceName    string
	AllowedOrigins []string
	Development    bool
	LogRequests    bool
}

// Setup configures all route groups
func Setup(router *gin.Engine, h *Handlers, m *Middleware) {
	api := router.Group("/api")

	SetupHealthRoutes(router, h.Health)
	SetupContactRoutes(api, h.Contact, h.Config, m)
	SetupSiteRoutes(router, h.Site)

	logging.GetLogger().Debug("All routes have been set up successfully")
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, logger *logging.Logger, opts GlobalOptions) {
	router.Use(coremw.Recovery())
	router.Use(coremw.RequestID())
	router.Use(otelgin.Middleware(opts.ServiceName))
	router.Use(middleware.RequestLogger(logger, opts.LogRequests))
	router.Use(coremw.CanonicalHost())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS(opts.AllowedOrigins, opts.Development))
}
