package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
)

//go:generate templ generate -f contact_email.templ

// contactEmailText renders the plaintext alternative. Values are not escaped.
func contactEmailText(sub *Submission) string {
	return fmt.Sprintf(`New Contact Form Submission

Name: %[1]s
Email: %[2]s

Message:
%[3]s

---
This message was sent from your portfolio contact form.
Reply directly to this email to respond to %[1]s.
`, sub.Name, sub.Email, sub.Message)
}

// contactEmailSubject folds whitespace so a name cannot break the header line
func contactEmailSubject(sub *Submission) string {
	return "Portfolio Contact Form: Message from " + strings.Join(strings.Fields(sub.Name), " ")
}

// RenderContactEmail builds the owner notification for a submission
func RenderContactEmail(ctx context.Context, sub *Submission, from, to string) (*Email, error) {
	var html bytes.Buffer
	if err := contactEmailHTML(sub).Render(ctx, &html); err != nil {
		return nil, fmt.Errorf("failed to render contact email: %w", err)
	}

	return &Email{
		From:    from,
		To:      []string{to},
		ReplyTo: sub.Email,
		Subject: contactEmailSubject(sub),
		HTML:    html.String(),
		Text:    contactEmailText(sub),
	}, nil
}
