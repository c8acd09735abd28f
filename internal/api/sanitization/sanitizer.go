package sanitization

import (
	"strings"

	"github.com/aalexmrt/portfolio/internal/api/dto/v1/contact"

	"golang.org/x/text/unicode/norm"
)

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// SanitizeString normalizes to NFC and trims surrounding whitespace
func SanitizeString(input string) string {
	return strings.TrimSpace(norm.NFC.String(input))
}

// SanitizeEmail normalizes an email address; the local part keeps its case
func SanitizeEmail(input string) string {
	email := SanitizeString(input)
	at := strings.LastIndexByte(email, '@')
	if at < 0 {
		return email
	}
	return email[:at] + strings.ToLower(email[at:])
}

// SanitizeMessage normalizes line endings and trims the message body.
// Inner whitespace is preserved since the email renders it pre-wrapped.
func SanitizeMessage(input string) string {
	return SanitizeString(lineEndings.Replace(input))
}

// SanitizeContact normalizes every field of a contact submission in place.
// HTML escaping is left to the email renderer.
func SanitizeContact(req *contact.ContactRequest) {
	req.Name = SanitizeString(req.Name)
	req.Email = SanitizeEmail(req.Email)
	req.Message = SanitizeMessage(req.Message)
	req.TurnstileToken = strings.TrimSpace(req.TurnstileToken)
}
