package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// TurnstileService handles Cloudflare Turnstile verification
type TurnstileService struct {
	secretKey string
	verifyURL string
	client    *http.Client
}

// NewTurnstileService creates a new Turnstile service.
// An empty secret yields a service that reports itself as not configured.
func NewTurnstileService(secretKey, verifyURL string) *TurnstileService {
	return &TurnstileService{
		secretKey: secretKey,
		verifyURL: verifyURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// turnstileRequest is the siteverify request body
type turnstileRequest struct {
	Secret   string `json:"secret"`
	Response string `json:"response"`
	RemoteIP string `json:"remoteip,omitempty"`
}

// turnstileResponse represents the response from Cloudflare's siteverify API
type turnstileResponse struct {
	Success     bool     `json:"success"`
	ChallengeTS string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	ErrorCodes  []string `json:"error-codes,omitempty"`
	Action      string   `json:"action"`
	CData       string   `json:"cdata"`
}

// Configured reports whether a secret key is set
func (s *TurnstileService) Configured() bool {
	return s.secretKey != ""
}

// VerifyToken verifies a Turnstile token.
// A rejected token returns an error wrapping ErrCaptchaFailed; transport and
// decoding failures are returned unwrapped.
func (s *TurnstileService) VerifyToken(ctx context.Context, token, remoteIP string) error {
	if !s.Configured() {
		return fmt.Errorf("turnstile secret key not configured")
	}

	if token == "" {
		return ErrCaptchaRequired
	}

	jsonData, err := json.Marshal(turnstileRequest{
		Secret:   s.secretKey,
		Response: token,
		RemoteIP: remoteIP,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal turnstile request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.verifyURL, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create turnstile request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to verify turnstile token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("turnstile API returned status %d", resp.StatusCode)
	}

	var result turnstileResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to parse turnstile response: %w", err)
	}

	if !result.Success {
		return fmt.Errorf("%w: %v", ErrCaptchaFailed, result.ErrorCodes)
	}

	return nil
}
