package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/aalexmrt/portfolio/internal/api/handlers"
	"github.com/aalexmrt/portfolio/internal/api/middleware"
	"github.com/aalexmrt/portfolio/internal/config"
	"github.com/aalexmrt/portfolio/internal/logging"
	"github.com/aalexmrt/portfolio/internal/server/routes"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// ContactRateLimit bounds contact submissions per client IP
var ContactRateLimit = middleware.RateLimitConfig{
	Requests: 5,
	Interval: time.Hour,
	Burst:    5,
}

var trustedPlatforms = map[string]string{
	config.PlatformCloudflare: gin.PlatformCloudflare,
	config.PlatformGoogle:     gin.PlatformGoogleAppEngine,
	config.PlatformFlyIO:      gin.PlatformFlyIO,
}

// NewServer creates a new server instance with all routes registered
func NewServer(cfg *config.Config, services *Services) *Server {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Disable Gin's default logger entirely because we're using our custom logger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	// Create a new engine without default middleware
	router := gin.New()
	router.RedirectTrailingSlash = true

	// ClientIP keys the rate limiter, so forwarding headers are honoured
	// only from the configured platform or proxies.
	router.TrustedPlatform = trustedPlatforms[cfg.TrustedPlatform]
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logging.GetLogger().Warn("Ignoring TRUSTED_PROXIES: %v", err)
		_ = router.SetTrustedProxies(nil)
	}

	routes.SetupGlobalMiddleware(router, logging.GetLogger(), routes.GlobalOptions{
		ServiceName:    ServiceName,
		AllowedOrigins: cfg.AllowedOrigins,
		Development:    cfg.IsDevelopment(),
		LogRequests:    cfg.LogRequests,
	})

	routes.Setup(router, &routes.Handlers{
		Contact: handlers.NewContactHandler(services.Contact),
		Config:  handlers.NewClientConfigHandler(cfg.TurnstileSiteKey, cfg.CaptchaConfigured()),
		Health:  handlers.NewHealthHandler(),
		Site:    handlers.NewSiteHandler(cfg.SiteDir),
	}, &routes.Middleware{
		Validation:       middleware.NewValidationMiddleware(),
		ContactRateLimit: middleware.NewRateLimiter(ContactRateLimit),
		MaxBodySize:      middleware.DefaultMaxBodySize,
	})

	return &Server{
		router: router,
		cfg:    cfg,
	}
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves HTTP until ctx is cancelled, then drains in-flight requests
func (s *Server) Start(ctx context.Context) error {
	logger := logging.GetLogger()

	srv := &http.Server{
		Addr:              net.JoinHostPort("", s.cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server on port %s (%s)", s.cfg.Port, s.cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}
