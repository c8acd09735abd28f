package handlers

import (
	"net/http"

	"github.com/aalexmrt/portfolio/internal/version"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, version.HealthResponse{
		Success: true,
		Message: "Health check OK",
		Build:   version.GetBuildInfo(),
	})
}
