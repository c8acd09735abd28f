package server

import (
	"github.com/aalexmrt/portfolio/internal/api/handlers"
	"github.com/aalexmrt/portfolio/internal/config"

	"github.com/gin-gonic/gin"
)

// ServiceName identifies this process in traces and logs
const ServiceName = "portfolio"

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	cfg    *config.Config
}

// Services holds the business services behind the HTTP handlers
type Services struct {
	Contact handlers.ContactSubmitter
}
