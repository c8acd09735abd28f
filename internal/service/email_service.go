package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
)

// Email is a provider-neutral outbound message
type Email struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// ResendService sends email through the Resend API
type ResendService struct {
	client *resend.Client
}

// NewResendService creates a Resend-backed sender.
// baseURL overrides the API endpoint and may be empty.
func NewResendService(apiKey, baseURL string) (*ResendService, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}

	client := resend.NewCustomClient(&http.Client{Timeout: 10 * time.Second}, apiKey)
	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid resend base URL: %w", err)
		}
		client.BaseURL = u
	}

	return &ResendService{client: client}, nil
}

// Send dispatches the email and returns the provider message id
func (s *ResendService) Send(ctx context.Context, email *Email) (string, error) {
	params := &resend.SendEmailRequest{
		From:    email.From,
		To:      email.To,
		ReplyTo: email.ReplyTo,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", fmt.Errorf("resend send failed: %w", err)
	}
	if sent == nil || sent.Id == "" {
		return "", fmt.Errorf("resend returned no message id")
	}

	return sent.Id, nil
}
