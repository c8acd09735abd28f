package handlers

import (
	"net/http"

	"github.com/aalexmrt/portfolio/internal/api/dto/v1/contact"

	"github.com/gin-gonic/gin"
)

// ClientConfigHandler serves the public widget settings. Only the site key
// leaves the server; the secret key never does.
type ClientConfigHandler struct {
	resp contact.ClientConfigResponse
}

func NewClientConfigHandler(siteKey string, captchaRequired bool) *ClientConfigHandler {
	return &ClientConfigHandler{resp: contact.ClientConfigResponse{
		Success:          true,
		TurnstileSiteKey: siteKey,
		CaptchaRequired:  captchaRequired,
	}}
}

func (h *ClientConfigHandler) Get(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=300")
	c.JSON(http.StatusOK, h.resp)
}
