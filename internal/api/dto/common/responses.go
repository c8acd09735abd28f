package common

// APIResponse is the JSON body returned by every public API endpoint
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	ID      string `json:"id,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// ValidationError represents a validation error detail
type ValidationError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Param string `json:"param,omitempty"`
}

// Define type for error codes to enforce consistency
type ErrorCode string

// Standard error codes
const (
	ErrCodeValidation      ErrorCode = "VALIDATION_ERROR"
	ErrCodeBadRequest      ErrorCode = "BAD_REQUEST"
	ErrCodeCaptcha         ErrorCode = "CAPTCHA_ERROR"
	ErrCodeConfiguration   ErrorCode = "CONFIGURATION_ERROR"
	ErrCodeProvider        ErrorCode = "PROVIDER_ERROR"
	ErrCodeInternalServer  ErrorCode = "INTERNAL_SERVER_ERROR"
	ErrCodeTooManyRequests ErrorCode = "TOO_MANY_REQUESTS"
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"
)

// NewSuccessResponse creates a new successful API response
func NewSuccessResponse(message, id string) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
		ID:      id,
	}
}

// NewErrorResponse creates a new error API response
func NewErrorResponse(code ErrorCode, message string, details string) APIResponse {
	return APIResponse{
		Success: false,
		Error:   message,
		Code:    string(code),
		Details: details,
	}
}
