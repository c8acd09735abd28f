package contactform

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aalexmrt/portfolio/internal/api/dto/v1/contact"
	"github.com/aalexmrt/portfolio/internal/config"
	"github.com/aalexmrt/portfolio/internal/server"
	"github.com/aalexmrt/portfolio/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCaptcha struct {
	token  string
	resets atomic.Int32
}

func (c *fakeCaptcha) Token() string { return c.token }
func (c *fakeCaptcha) Reset()        { c.resets.Add(1) }

type fakeContactService struct {
	mu    sync.Mutex
	subs  []*service.Submission
	err   error
	block chan struct{}
}

func (s *fakeContactService) Submit(ctx context.Context, sub *service.Submission) (string, error) {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, sub)
	if s.err != nil {
		return "", s.err
	}
	return "msg_7", nil
}

func (s *fakeContactService) calls() []*service.Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*service.Submission(nil), s.subs...)
}

func newEndpoint(t *testing.T, svc *fakeContactService) string {
	t.Helper()
	cfg := &config.Config{
		Environment: config.EnvDevelopment,
		Port:        "0",
		SiteDir:     t.TempDir(),
	}
	srv := httptest.NewServer(server.NewServer(cfg, &server.Services{Contact: svc}).Handler())
	t.Cleanup(srv.Close)
	return srv.URL + "/api/contact"
}

func fill(f *Form) {
	f.SetName("Jane Doe")
	f.SetEmail("jane@example.com")
	f.SetMessage("Hello there")
}

func TestSubmitSuccess(t *testing.T) {
	svc := &fakeContactService{}
	captcha := &fakeCaptcha{token: "tok"}
	form := New(newEndpoint(t, svc), captcha)
	form.ResetDelay = 20 * time.Millisecond
	defer form.Close()
	fill(form)

	id, err := form.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "msg_7", id)

	state := form.State()
	assert.Equal(t, StatusSuccess, state.Status)
	assert.False(t, state.Submitting)
	assert.Empty(t, state.Name)
	assert.Empty(t, state.Email)
	assert.Empty(t, state.Message)

	calls := svc.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "tok", calls[0].TurnstileToken)
	assert.Equal(t, "Jane Doe", calls[0].Name)

	assert.Eventually(t, func() bool {
		return form.State().Status == StatusIdle
	}, time.Second, 5*time.Millisecond)
	assert.Zero(t, captcha.resets.Load())
}

func TestSubmitRequiresCaptcha(t *testing.T) {
	svc := &fakeContactService{}
	form := New(newEndpoint(t, svc), &fakeCaptcha{})
	fill(form)

	_, err := form.Submit(context.Background())
	assert.ErrorIs(t, err, ErrCaptchaIncomplete)

	state := form.State()
	assert.Equal(t, StatusError, state.Status)
	assert.Equal(t, contact.ErrCaptchaIncomplete, state.ErrorMessage)
	assert.Equal(t, "Jane Doe", state.Name, "fields are kept for retry")
	assert.Empty(t, svc.calls())
}

func TestSubmitBypassMode(t *testing.T) {
	svc := &fakeContactService{}
	form := New(newEndpoint(t, svc), nil)
	form.BypassMode = true
	defer form.Close()
	fill(form)

	_, err := form.Submit(context.Background())
	require.NoError(t, err)

	calls := svc.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, contact.BypassToken, calls[0].TurnstileToken)
}

func TestSubmitServerRejection(t *testing.T) {
	svc := &fakeContactService{err: service.ErrCaptchaFailed}
	captcha := &fakeCaptcha{token: "tok"}
	form := New(newEndpoint(t, svc), captcha)
	fill(form)

	_, err := form.Submit(context.Background())
	require.Error(t, err)

	var respErr *ResponseError
	require.ErrorAs(t, err, &respErr)
	assert.Equal(t, http.StatusBadRequest, respErr.StatusCode)
	assert.Equal(t, "CAPTCHA_ERROR", respErr.Code)

	state := form.State()
	assert.Equal(t, StatusError, state.Status)
	assert.Equal(t, contact.ErrCaptchaFailed, state.ErrorMessage)
	assert.Equal(t, int32(1), captcha.resets.Load())
}

func TestSubmitClientValidation(t *testing.T) {
	svc := &fakeContactService{}
	form := New(newEndpoint(t, svc), &fakeCaptcha{token: "tok"})
	form.SetName("Jane")
	form.SetEmail("not-an-email")
	form.SetMessage("   ")

	assert.Error(t, form.Validate())

	_, err := form.Submit(context.Background())
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)

	fields := make([]string, 0, len(valErr.Fields))
	for _, f := range valErr.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"Email", "Message"}, fields)

	assert.Equal(t, contact.ErrInvalidFormData, form.State().ErrorMessage)
	assert.Empty(t, svc.calls())
}

func TestSubmitUnreadableResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	captcha := &fakeCaptcha{token: "tok"}
	form := New(srv.URL, captcha)
	fill(form)

	_, err := form.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSendFailed)
	assert.Equal(t, contact.ErrSendFailed, form.State().ErrorMessage)
	assert.Equal(t, int32(1), captcha.resets.Load())
}

func TestSubmitInFlight(t *testing.T) {
	release := make(chan struct{})
	svc := &fakeContactService{block: release}
	form := New(newEndpoint(t, svc), &fakeCaptcha{token: "tok"})
	defer form.Close()
	fill(form)

	done := make(chan error, 1)
	go func() {
		_, err := form.Submit(context.Background())
		done <- err
	}()

	require.Eventually(t, func() bool {
		return form.State().Submitting
	}, time.Second, time.Millisecond)

	_, err := form.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	close(release)
	assert.NoError(t, <-done)
	assert.Len(t, svc.calls(), 1)
}

func TestSubmitPayloadShape(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"message":"Message sent successfully!","id":"abc"}`))
	}))
	defer srv.Close()

	form := New(srv.URL, StaticToken("tok"))
	form.ResetDelay = -1
	form.SetName("  Jane  ")
	form.SetEmail("Jane@Example.com")
	form.SetMessage("Hi\r\nthere")

	id, err := form.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", id)
	assert.Equal(t, map[string]string{
		"name":           "Jane",
		"email":          "Jane@example.com",
		"message":        "Hi\nthere",
		"turnstileToken": "tok",
	}, got)
	assert.Equal(t, StatusSuccess, form.State().Status)
}
