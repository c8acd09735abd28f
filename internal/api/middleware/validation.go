package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aalexmrt/portfolio/internal/api/constants"
	"github.com/aalexmrt/portfolio/internal/api/dto/common"
	"github.com/aalexmrt/portfolio/internal/api/dto/v1/contact"
	"github.com/aalexmrt/portfolio/internal/api/sanitization"
	"github.com/aalexmrt/portfolio/internal/api/validation"
	"github.com/aalexmrt/portfolio/internal/service"
	"github.com/aalexmrt/portfolio/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ValidationMiddleware handles request validation
type ValidationMiddleware struct {
	validate *validator.Validate
}

// NewValidationMiddleware creates a new validation middleware
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validate: validation.Default(),
	}
}

var contactFields = []string{"name", "email", "message"}

func requireFields(body []byte, names ...string) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return err
	}
	for _, name := range names {
		if _, ok := fields[name]; !ok {
			return fmt.Errorf("missing field %q", name)
		}
	}
	return nil
}

// ValidateContactRequest decodes, sanitizes and validates a contact submission
// and stores it in the context under constants.ContextKeyContact.
func (m *ValidationMiddleware) ValidateContactRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := rawBody(c)
		if err != nil {
			utils.HandleAPIError(c, err, http.StatusBadRequest, common.ErrCodeBadRequest, contact.ErrInvalidFormat)
			return
		}

		if len(bytes.TrimSpace(body)) == 0 {
			utils.HandleAPIError(c, nil, http.StatusBadRequest, common.ErrCodeBadRequest, contact.ErrEmptyBody)
			return
		}

		var req contact.ContactRequest
		if err := json.Unmarshal(body, &req); err != nil {
			// Well-formed JSON of the wrong shape is a form data problem
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) {
				utils.HandleAPIError(c, errors.Join(service.ErrValidation, err), http.StatusBadRequest, common.ErrCodeValidation, contact.ErrInvalidFormData)
				return
			}
			utils.HandleAPIError(c, err, http.StatusBadRequest, common.ErrCodeBadRequest, contact.ErrInvalidFormat)
			return
		}

		// encoding/json matches keys case-insensitively; the form fields
		// must arrive under their exact names
		if err := requireFields(body, contactFields...); err != nil {
			utils.HandleAPIError(c, errors.Join(service.ErrValidation, err), http.StatusBadRequest, common.ErrCodeValidation, contact.ErrInvalidFormData)
			return
		}

		sanitization.SanitizeContact(&req)

		if err := m.validate.Struct(&req); err != nil {
			utils.HandleAPIError(c, errors.Join(service.ErrValidation, err), http.StatusBadRequest, common.ErrCodeValidation, contact.ErrInvalidFormData)
			return
		}

		c.Set(constants.ContextKeyContact, &req)
		c.Next()
	}
}
