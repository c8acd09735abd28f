package contact

import "github.com/aalexmrt/portfolio/internal/api/dto/common"

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name           string `json:"name" binding:"required,notblank,max=200"`
	Email          string `json:"email" binding:"required,contactemail"`
	Message        string `json:"message" binding:"required,notblank,max=5000"`
	TurnstileToken string `json:"turnstileToken,omitempty"`
}

// ContactResponse represents the response after submitting a contact form
type ContactResponse = common.APIResponse

// User-facing messages shared by the endpoint and the form controller
const (
	MessageSent           = "Message sent successfully!"
	ErrEmptyBody          = "Request body is empty. Please fill out the form."
	ErrInvalidFormat      = "Invalid request format. Please try again."
	ErrInvalidFormData    = "Invalid form data. Please check your inputs and try again."
	ErrCaptchaRequired    = "Security verification is required. Please try again."
	ErrCaptchaFailed      = "Security verification failed. Please try again."
	ErrServerConfig       = "Server configuration error. Please try again later."
	ErrSendFailed         = "Failed to send message. Please try again later."
	ErrUnexpected         = "An unexpected error occurred. Please try again later."
	ErrTooManyRequests    = "Too many messages. Please try again later."
	ErrCaptchaIncomplete  = "Please complete the security verification."
	ErrSubmissionInFlight = "A message is already being sent."
)

// BypassToken is accepted in place of a Turnstile token when the widget cannot run
const BypassToken = "dev-mode-bypass"

// ClientConfigResponse carries the public settings the contact form needs
// to render the Turnstile widget
type ClientConfigResponse struct {
	Success          bool   `json:"success"`
	TurnstileSiteKey string `json:"turnstileSiteKey,omitempty"`
	CaptchaRequired  bool   `json:"captchaRequired"`
}
