package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aalexmrt/portfolio/internal/api/dto/v1/contact"
	"github.com/aalexmrt/portfolio/internal/logging"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/aalexmrt/portfolio/internal/service")

// CaptchaVerifier checks a challenge token against a remote service
type CaptchaVerifier interface {
	Configured() bool
	VerifyToken(ctx context.Context, token, remoteIP string) error
}

// EmailSender dispatches an email and returns the provider message id
type EmailSender interface {
	Send(ctx context.Context, email *Email) (string, error)
}

// Submission is a validated contact form submission plus request metadata
type Submission struct {
	Name           string
	Email          string
	Message        string
	TurnstileToken string

	RemoteIP  string
	UserAgent string
	Referrer  string
}

// ContactConfig holds the addressing and mode settings of the contact pipeline
type ContactConfig struct {
	FromEmail   string
	ToEmail     string
	Development bool

	// AllowBypassToken accepts contact.BypassToken outside development mode
	AllowBypassToken bool
}

// ContactService verifies and relays contact submissions
type ContactService struct {
	cfg     ContactConfig
	captcha CaptchaVerifier
	sender  EmailSender
}

// NewContactService creates a contact service. A nil sender means the email
// provider is not configured and every submission fails with ErrNotConfigured.
func NewContactService(cfg ContactConfig, captcha CaptchaVerifier, sender EmailSender) *ContactService {
	return &ContactService{
		cfg:     cfg,
		captcha: captcha,
		sender:  sender,
	}
}

// Submit verifies the CAPTCHA token if required, sends the notification email
// and returns the provider message id.
func (s *ContactService) Submit(ctx context.Context, sub *Submission) (string, error) {
	ctx, span := tracer.Start(ctx, "ContactService.Submit",
		trace.WithAttributes(
			attribute.Int("contact.message_length", len(sub.Message)),
			attribute.String("client.address", sub.RemoteIP),
			attribute.String("user_agent.original", sub.UserAgent),
			attribute.String("http.request.header.referer", sub.Referrer),
		))
	defer span.End()

	id, err := s.submit(ctx, sub)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	span.SetAttributes(attribute.String("contact.message_id", id))
	return id, nil
}

func (s *ContactService) submit(ctx context.Context, sub *Submission) (string, error) {
	if s.sender == nil {
		return "", ErrNotConfigured
	}

	if err := s.verifyCaptcha(ctx, sub); err != nil {
		return "", err
	}

	email, err := RenderContactEmail(ctx, sub, s.cfg.FromEmail, s.cfg.ToEmail)
	if err != nil {
		return "", err
	}

	ctx, span := tracer.Start(ctx, "EmailSender.Send")
	defer span.End()

	id, err := s.sender.Send(ctx, email)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}

	logging.GetLogger().Info("Contact message %s sent for %s (referrer %q)", id, sub.RemoteIP, sub.Referrer)
	return id, nil
}

// verifyCaptcha applies the Turnstile policy: skipped in development mode or
// without a secret, bypassed by the bypass token when allowed, verified otherwise.
func (s *ContactService) verifyCaptcha(ctx context.Context, sub *Submission) error {
	logger := logging.GetLogger()

	if s.cfg.Development {
		logger.Debug("Turnstile verification skipped in development mode")
		return nil
	}

	if s.captcha == nil || !s.captcha.Configured() {
		return nil
	}

	if sub.TurnstileToken == "" {
		return ErrCaptchaRequired
	}

	if sub.TurnstileToken == contact.BypassToken && s.cfg.AllowBypassToken {
		logger.Warn("Turnstile bypassed with development token from %s", sub.RemoteIP)
		return nil
	}

	ctx, span := tracer.Start(ctx, "CaptchaVerifier.VerifyToken")
	defer span.End()

	if err := s.captcha.VerifyToken(ctx, sub.TurnstileToken, sub.RemoteIP); err != nil {
		if !errors.Is(err, ErrCaptchaFailed) && !errors.Is(err, ErrCaptchaRequired) {
			span.RecordError(err)
		}
		return err
	}
	return nil
}
