package server

import (
	"github.com/aalexmrt/portfolio/internal/config"
	"github.com/aalexmrt/portfolio/internal/logging"
	"github.com/aalexmrt/portfolio/internal/service"
)

// NewServices wires the Turnstile verifier and the Resend sender into the
// contact service. A missing Resend key is not fatal: the site still serves
// and contact submissions answer with a configuration error.
func NewServices(cfg *config.Config) (*Services, error) {
	logger := logging.GetLogger()

	captcha := service.NewTurnstileService(cfg.TurnstileSecretKey, cfg.TurnstileVerifyURL)
	if !cfg.CaptchaConfigured() {
		logger.Warn("TURNSTILE_SECRET_KEY not set, contact submissions are not CAPTCHA-verified")
	}

	var sender service.EmailSender
	resend, err := service.NewResendService(cfg.ResendAPIKey, "")
	switch {
	case err == nil:
		sender = resend
	case cfg.EmailConfigured():
		return nil, err
	default:
		logger.Warn("RESEND_API_KEY not set, contact submissions will fail")
	}

	contactService := service.NewContactService(service.ContactConfig{
		FromEmail:        cfg.ResendFromEmail,
		ToEmail:          cfg.ContactToEmail,
		Development:      cfg.IsDevelopment(),
		AllowBypassToken: cfg.TurnstileBypass,
	}, captcha, sender)

	return &Services{Contact: contactService}, nil
}
