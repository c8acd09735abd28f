package validation

import (
	"errors"
	"regexp"
	"strings"
	"sync"

	"github.com/aalexmrt/portfolio/internal/api/dto/common"

	"github.com/go-playground/validator/v10"
)

// emailRegex is deliberately loose: something@something.something with no whitespace.
var emailRegex = regexp.MustCompile(`^[^\s\p{Zs}@]+@[^\s\p{Zs}@]+\.[^\s\p{Zs}@]+$`)

var (
	defaultValidator *validator.Validate
	initOnce         sync.Once
)

// New returns a validator reading `binding` tags with the custom rules registered
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	RegisterValidators(v)
	return v
}

// Default returns the shared validator instance
func Default() *validator.Validate {
	initOnce.Do(func() {
		defaultValidator = New()
	})
	return defaultValidator
}

// RegisterValidators registers custom validators
func RegisterValidators(v *validator.Validate) {
	v.RegisterValidation("contactemail", validateContactEmail)
	v.RegisterValidation("notblank", validateNotBlank)
}

// IsValidEmail checks the address against the contact form email shape
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func validateContactEmail(fl validator.FieldLevel) bool {
	return IsValidEmail(fl.Field().String())
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// FormatValidationError formats validation errors into a user-friendly response
func FormatValidationError(err error) []common.ValidationError {
	var result []common.ValidationError
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			result = append(result, common.ValidationError{
				Field: e.Field(),
				Tag:   e.Tag(),
				Param: e.Param(),
			})
		}
	}
	return result
}

// Struct validates s with the shared validator
func Struct(s interface{}) error {
	return Default().Struct(s)
}
