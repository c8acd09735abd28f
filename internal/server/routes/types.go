package routes

import (
	"github.com/aalexmrt/portfolio/internal/api/handlers"
	"github.com/aalexmrt/portfolio/internal/api/middleware"
)

// Handlers contains all the route handlers
type Handlers struct {
	Contact *handlers.ContactHandler
	Config  *handlers.ClientConfigHandler
	Health  *handlers.HealthHandler
	Site    *handlers.SiteHandler
}

// Middleware contains route-specific middleware
type Middleware struct {
	Validation       *middleware.ValidationMiddleware
	ContactRateLimit *middleware.RateLimiter
	MaxBodySize      int64
}
