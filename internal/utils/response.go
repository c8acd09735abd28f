package utils

import (
	"net/http"

	"github.com/aalexmrt/portfolio/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

// HandleSuccess sends a success response with a message and an optional resource id
func HandleSuccess(c *gin.Context, message, id string) {
	c.JSON(http.StatusOK, common.NewSuccessResponse(message, id))
}
