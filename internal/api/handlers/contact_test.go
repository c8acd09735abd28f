package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aalexmrt/portfolio/internal/api/constants"
	"github.com/aalexmrt/portfolio/internal/api/dto/common"
	"github.com/aalexmrt/portfolio/internal/api/dto/v1/contact"
	"github.com/aalexmrt/portfolio/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubmitter struct {
	id  string
	err error
	got *service.Submission
}

func (f *fakeSubmitter) Submit(ctx context.Context, sub *service.Submission) (string, error) {
	f.got = sub
	return f.id, f.err
}

func newContactRouter(h *ContactHandler, req *contact.ContactRequest) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/contact", func(c *gin.Context) {
		if req != nil {
			c.Set(constants.ContextKeyContact, req)
		}
		c.Next()
	}, h.Submit)
	return r
}

func doContact(t *testing.T, r *gin.Engine, header http.Header) (*httptest.ResponseRecorder, common.APIResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp common.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestContactHandlerSubmit(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
		wantErr  common.ErrorCode
	}{
		{"sent", nil, http.StatusOK, "", ""},
		{"not configured", service.ErrNotConfigured, http.StatusInternalServerError, contact.ErrServerConfig, common.ErrCodeConfiguration},
		{"captcha missing", service.ErrCaptchaRequired, http.StatusBadRequest, contact.ErrCaptchaRequired, common.ErrCodeCaptcha},
		{"captcha rejected", fmt.Errorf("%w: [timeout-or-duplicate]", service.ErrCaptchaFailed), http.StatusBadRequest, contact.ErrCaptchaFailed, common.ErrCodeCaptcha},
		{"provider failure", fmt.Errorf("%w: 422", service.ErrProvider), http.StatusInternalServerError, contact.ErrSendFailed, common.ErrCodeProvider},
		{"unexpected", errors.New("siteverify: connection reset"), http.StatusInternalServerError, contact.ErrUnexpected, common.ErrCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeSubmitter{id: "msg_1", err: tt.err}
			r := newContactRouter(NewContactHandler(svc), &contact.ContactRequest{
				Name:           "Jane",
				Email:          "jane@example.com",
				Message:        "Hello",
				TurnstileToken: "tok",
			})

			w, resp := doContact(t, r, nil)
			assert.Equal(t, tt.wantCode, w.Code)

			if tt.err == nil {
				assert.True(t, resp.Success)
				assert.Equal(t, contact.MessageSent, resp.Message)
				assert.Equal(t, "msg_1", resp.ID)
				return
			}
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantMsg, resp.Error)
			assert.Equal(t, string(tt.wantErr), resp.Code)
			if tt.wantErr == common.ErrCodeInternalServer {
				assert.Equal(t, tt.err.Error(), resp.Details)
			} else {
				assert.Empty(t, resp.Details)
			}
		})
	}
}

func TestContactHandlerSubmissionMetadata(t *testing.T) {
	header := http.Header{
		"Cf-Connecting-Ip": {"203.0.113.9"},
		"X-Real-Ip":        {"198.51.100.7"},
		"User-Agent":       {"test-agent"},
		"Referer":          {"https://example.com/contact"},
	}

	tests := []struct {
		name     string
		platform string
		wantIP   string
	}{
		{"cloudflare platform trusted", gin.PlatformCloudflare, "203.0.113.9"},
		// httptest requests come from 192.0.2.1
		{"no trusted platform", "", "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeSubmitter{id: "msg_2"}
			r := newContactRouter(NewContactHandler(svc), &contact.ContactRequest{
				Name:           "Jane",
				Email:          "jane@example.com",
				Message:        "Hello",
				TurnstileToken: "tok",
			})
			r.TrustedPlatform = tt.platform
			require.NoError(t, r.SetTrustedProxies(nil))

			w, _ := doContact(t, r, header)
			require.Equal(t, http.StatusOK, w.Code)
			require.NotNil(t, svc.got)

			assert.Equal(t, "Jane", svc.got.Name)
			assert.Equal(t, "tok", svc.got.TurnstileToken)
			assert.Equal(t, tt.wantIP, svc.got.RemoteIP)
			assert.Equal(t, "test-agent", svc.got.UserAgent)
			assert.Equal(t, "https://example.com/contact", svc.got.Referrer)
		})
	}
}

func TestContactHandlerMissingContext(t *testing.T) {
	svc := &fakeSubmitter{}
	r := newContactRouter(NewContactHandler(svc), nil)

	w, resp := doContact(t, r, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, contact.ErrUnexpected, resp.Error)
	assert.Nil(t, svc.got)
}
