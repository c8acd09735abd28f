package service

import "errors"

// Sentinel errors for the contact pipeline
var (
	ErrValidation      = errors.New("validation error")
	ErrCaptchaRequired = errors.New("captcha token required")
	ErrCaptchaFailed   = errors.New("captcha verification failed")
	ErrNotConfigured   = errors.New("email provider not configured")
	ErrProvider        = errors.New("email provider error")
)
