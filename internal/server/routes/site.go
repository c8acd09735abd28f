package routes

import (
	"github.com/aalexmrt/portfolio/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupSiteRoutes configures the sitemap redirect and static site fallback
func SetupSiteRoutes(router *gin.Engine, site *handlers.SiteHandler) {
	router.GET("/sitemap.xml", site.Sitemap)
	router.NoRoute(site.Serve)
}
