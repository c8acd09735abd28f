// Package contactform drives a contact form submission from the client side:
// field state, CAPTCHA token handling, the POST to /api/contact and the
// success/error status shown to the visitor.
package contactform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/aalexmrt/portfolio/internal/api/dto/common"
	"github.com/aalexmrt/portfolio/internal/api/dto/v1/contact"
	"github.com/aalexmrt/portfolio/internal/api/sanitization"
	"github.com/aalexmrt/portfolio/internal/api/validation"
)

// DefaultResetDelay is how long a success status stays visible
const DefaultResetDelay = 5 * time.Second

// maxResponseSize bounds the endpoint response read into memory
const maxResponseSize = 64 * 1024

var (
	ErrSubmissionInFlight = errors.New(contact.ErrSubmissionInFlight)
	ErrCaptchaIncomplete  = errors.New(contact.ErrCaptchaIncomplete)
	ErrSendFailed         = errors.New(contact.ErrSendFailed)
)

// Status is the visible outcome of the last submission
type Status int

const (
	StatusIdle Status = iota
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// Captcha is the challenge widget embedded in the form
type Captcha interface {
	// Token returns the solved challenge token, or "" when unsolved
	Token() string
	// Reset clears the widget so the visitor can solve a fresh challenge
	Reset()
}

// StaticToken is a Captcha that always yields the same token
type StaticToken string

func (t StaticToken) Token() string { return string(t) }
func (t StaticToken) Reset()        {}

// ValidationError reports fields rejected before anything is sent
type ValidationError struct {
	Fields []common.ValidationError
}

func (e *ValidationError) Error() string {
	return contact.ErrInvalidFormData
}

// ResponseError is a rejection reported by the endpoint
type ResponseError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *ResponseError) Error() string {
	return e.Message
}

// State is a snapshot of the form
type State struct {
	Name         string
	Email        string
	Message      string
	Status       Status
	Submitting   bool
	ErrorMessage string
}

// Form holds the contact form state. All methods are safe for concurrent use.
type Form struct {
	// Endpoint is the absolute URL of the contact API
	Endpoint   string
	HTTPClient *http.Client
	Captcha    Captcha
	// BypassMode sends contact.BypassToken instead of asking the widget
	BypassMode bool
	// ResetDelay defaults to DefaultResetDelay; negative disables the reset
	ResetDelay time.Duration

	mu           sync.Mutex
	name         string
	email        string
	message      string
	status       Status
	submitting   bool
	errorMessage string
	resetTimer   *time.Timer
}

// New creates a form posting to endpoint
func New(endpoint string, captcha Captcha) *Form {
	return &Form{
		Endpoint:   endpoint,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Captcha:    captcha,
		ResetDelay: DefaultResetDelay,
	}
}

func (f *Form) SetName(name string) {
	f.mu.Lock()
	f.name = name
	f.mu.Unlock()
}

func (f *Form) SetEmail(email string) {
	f.mu.Lock()
	f.email = email
	f.mu.Unlock()
}

func (f *Form) SetMessage(message string) {
	f.mu.Lock()
	f.message = message
	f.mu.Unlock()
}

// State returns a snapshot of the fields and status
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return State{
		Name:         f.name,
		Email:        f.email,
		Message:      f.message,
		Status:       f.status,
		Submitting:   f.submitting,
		ErrorMessage: f.errorMessage,
	}
}

// Validate applies the server's field rules to the current values
func (f *Form) Validate() error {
	f.mu.Lock()
	req := f.request("")
	f.mu.Unlock()
	return validate(req)
}

func validate(req *contact.ContactRequest) error {
	if err := validation.Struct(req); err != nil {
		return &ValidationError{Fields: validation.FormatValidationError(err)}
	}
	return nil
}

// request builds the sanitized payload; callers hold f.mu
func (f *Form) request(token string) *contact.ContactRequest {
	req := &contact.ContactRequest{
		Name:           f.name,
		Email:          f.email,
		Message:        f.message,
		TurnstileToken: token,
	}
	sanitization.SanitizeContact(req)
	return req
}

// Submit validates and posts the form. It returns the provider message id on
// success. A second call while one is in flight fails with ErrSubmissionInFlight.
func (f *Form) Submit(ctx context.Context) (string, error) {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return "", ErrSubmissionInFlight
	}
	f.stopResetLocked()
	f.status = StatusIdle
	f.errorMessage = ""
	f.submitting = true

	token := contact.BypassToken
	if !f.BypassMode {
		token = ""
		if f.Captcha != nil {
			token = f.Captcha.Token()
		}
	}
	req := f.request(token)
	f.mu.Unlock()

	if err := validate(req); err != nil {
		f.fail(err, false)
		return "", err
	}

	if token == "" {
		f.fail(ErrCaptchaIncomplete, false)
		return "", ErrCaptchaIncomplete
	}

	resp, err := f.post(ctx, req)
	if err != nil {
		f.fail(err, true)
		return "", err
	}

	f.succeed()
	return resp.ID, nil
}

func (f *Form) post(ctx context.Context, req *contact.ContactRequest) (*common.APIResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, f.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	client := f.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	httpResp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	var resp common.APIResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: status %d", ErrSendFailed, httpResp.StatusCode)
	}

	if !resp.Success {
		if resp.Error == "" {
			return nil, fmt.Errorf("%w: status %d", ErrSendFailed, httpResp.StatusCode)
		}
		return nil, &ResponseError{
			StatusCode: httpResp.StatusCode,
			Code:       resp.Code,
			Message:    resp.Error,
		}
	}
	return &resp, nil
}

func (f *Form) succeed() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.submitting = false
	f.status = StatusSuccess
	f.name, f.email, f.message = "", "", ""

	delay := f.ResetDelay
	if delay == 0 {
		delay = DefaultResetDelay
	}
	if delay > 0 {
		f.resetTimer = time.AfterFunc(delay, f.resetStatus)
	}
}

// fail records err as the visible error. resetCaptcha is set once a token has
// been spent on the endpoint.
func (f *Form) fail(err error, resetCaptcha bool) {
	message := contact.ErrSendFailed
	var respErr *ResponseError
	var valErr *ValidationError
	switch {
	case errors.As(err, &respErr):
		message = respErr.Message
	case errors.As(err, &valErr):
		message = valErr.Error()
	case errors.Is(err, ErrCaptchaIncomplete):
		message = ErrCaptchaIncomplete.Error()
	}

	f.mu.Lock()
	f.submitting = false
	f.status = StatusError
	f.errorMessage = message
	captcha := f.Captcha
	bypass := f.BypassMode
	f.mu.Unlock()

	if resetCaptcha && !bypass && captcha != nil {
		captcha.Reset()
	}
}

func (f *Form) resetStatus() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status == StatusSuccess && !f.submitting {
		f.status = StatusIdle
	}
	f.resetTimer = nil
}

func (f *Form) stopResetLocked() {
	if f.resetTimer != nil {
		f.resetTimer.Stop()
		f.resetTimer = nil
	}
}

// Close stops a pending status reset
func (f *Form) Close() {
	f.mu.Lock()
	f.stopResetLocked()
	f.mu.Unlock()
}
