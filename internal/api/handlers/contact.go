package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aalexmrt/portfolio/internal/api/constants"
	"github.com/aalexmrt/portfolio/internal/api/dto/common"
	"github.com/aalexmrt/portfolio/internal/api/dto/v1/contact"
	"github.com/aalexmrt/portfolio/internal/service"
	"github.com/aalexmrt/portfolio/internal/utils"

	"github.com/gin-gonic/gin"
)

// ContactSubmitter relays a validated submission and returns the message id
type ContactSubmitter interface {
	Submit(ctx context.Context, sub *service.Submission) (string, error)
}

type ContactHandler struct {
	contactService ContactSubmitter
}

func NewContactHandler(contactService ContactSubmitter) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
	}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	// Get contact data from context (set by validation middleware)
	contactData, exists := c.Get(constants.ContextKeyContact)
	if !exists {
		utils.HandleAPIError(c, errors.New("contact data not found in context"), http.StatusInternalServerError, common.ErrCodeInternalServer, contact.ErrUnexpected)
		return
	}

	req, ok := contactData.(*contact.ContactRequest)
	if !ok {
		utils.HandleAPIError(c, fmt.Errorf("invalid contact data type %T", contactData), http.StatusInternalServerError, common.ErrCodeInternalServer, contact.ErrUnexpected)
		return
	}

	sub := &service.Submission{
		Name:           req.Name,
		Email:          req.Email,
		Message:        req.Message,
		TurnstileToken: req.TurnstileToken,
		RemoteIP:       c.ClientIP(),
		UserAgent:      c.Request.UserAgent(),
		Referrer:       c.Request.Referer(),
	}

	id, err := h.contactService.Submit(c.Request.Context(), sub)
	switch {
	case err == nil:
		utils.HandleSuccess(c, contact.MessageSent, id)
	case errors.Is(err, service.ErrNotConfigured):
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeConfiguration, contact.ErrServerConfig)
	case errors.Is(err, service.ErrCaptchaRequired):
		utils.HandleAPIError(c, err, http.StatusBadRequest, common.ErrCodeCaptcha, contact.ErrCaptchaRequired)
	case errors.Is(err, service.ErrCaptchaFailed):
		utils.HandleAPIError(c, err, http.StatusBadRequest, common.ErrCodeCaptcha, contact.ErrCaptchaFailed)
	case errors.Is(err, service.ErrProvider):
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeProvider, contact.ErrSendFailed)
	default:
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, contact.ErrUnexpected)
	}
}
