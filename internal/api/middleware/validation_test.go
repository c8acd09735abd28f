package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aalexmrt/portfolio/internal/api/constants"
	"github.com/aalexmrt/portfolio/internal/api/dto/common"
	"github.com/aalexmrt/portfolio/internal/api/dto/v1/contact"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidationRouter(got **contact.ContactRequest) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/contact",
		PreserveRequestBody(1024),
		NewValidationMiddleware().ValidateContactRequest(),
		func(c *gin.Context) {
			v, _ := c.Get(constants.ContextKeyContact)
			*got = v.(*contact.ContactRequest)
			c.Status(http.StatusOK)
		},
	)
	return r
}

func TestValidateContactRequest(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantCode  int
		wantError string
	}{
		{"empty body", "", http.StatusBadRequest, contact.ErrEmptyBody},
		{"whitespace body", " \n\t", http.StatusBadRequest, contact.ErrEmptyBody},
		{"malformed json", `{"name":`, http.StatusBadRequest, contact.ErrInvalidFormat},
		{"not an object", `["a"]`, http.StatusBadRequest, contact.ErrInvalidFormData},
		{"wrong field type", `{"name":42,"email":"a@b.co","message":"hi"}`, http.StatusBadRequest, contact.ErrInvalidFormData},
		{"null body", `null`, http.StatusBadRequest, contact.ErrInvalidFormData},
		{"missing message", `{"name":"Jane","email":"jane@example.com"}`, http.StatusBadRequest, contact.ErrInvalidFormData},
		{"upper-case keys", `{"NAME":"Jane","EMAIL":"jane@example.com","MESSAGE":"hi","turnstileToken":"tok"}`, http.StatusBadRequest, contact.ErrInvalidFormData},
		{"one mixed-case key", `{"name":"Jane","Email":"jane@example.com","message":"hi"}`, http.StatusBadRequest, contact.ErrInvalidFormData},
		{"bad email", `{"name":"Jane","email":"jane@example","message":"hi"}`, http.StatusBadRequest, contact.ErrInvalidFormData},
		{"blank name", `{"name":"   ","email":"jane@example.com","message":"hi"}`, http.StatusBadRequest, contact.ErrInvalidFormData},
		{"too large", `{"name":"Jane","email":"jane@example.com","message":"` + strings.Repeat("x", 2048) + `"}`, http.StatusRequestEntityTooLarge, "Request body is too large."},
		{"valid", `{"name":" Jane ","email":"jane@example.com","message":"hi","turnstileToken":"tok"}`, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *contact.ContactRequest
			r := newValidationRouter(&got)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			require.Equal(t, tt.wantCode, w.Code)
			if tt.wantError == "" {
				require.NotNil(t, got)
				assert.Equal(t, "Jane", got.Name)
				assert.Equal(t, "tok", got.TurnstileToken)
				return
			}

			assert.Nil(t, got)
			var resp common.APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantError, resp.Error)
		})
	}
}
