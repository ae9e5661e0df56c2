// Package validation checks account form fields before anything is sent to the backend.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validator is a function that validates a string value and returns an error message if invalid.
type Validator func(v string) string

// Field length limits shared by the browser forms and the CLI prompts.
const (
	MaxUsernameLen = 150
	MaxEmailLen    = 254
	MaxPasswordLen = 1024
)

//nolint:gochecknoglobals // compiled once, read-only
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)

// Required validates that a field is not empty and does not exceed maxLen characters.
// Uses rune count for proper Unicode support.
func Required(fieldName string, maxLen int) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return fieldName + " is required."
		}
		if utf8.RuneCountInString(v) > maxLen {
			return fmt.Sprintf("%s cannot exceed %d characters.", fieldName, maxLen)
		}
		return ""
	}
}

// Secret validates a value that is used verbatim (no trimming), such as a password.
func Secret(fieldName string, maxLen int) Validator {
	return func(v string) string {
		if v == "" {
			return fieldName + " is required."
		}
		if utf8.RuneCountInString(v) > maxLen {
			return fmt.Sprintf("%s cannot exceed %d characters.", fieldName, maxLen)
		}
		return ""
	}
}

// Email validates a non-empty address of the form local@domain.
func Email(fieldName string) Validator {
	required := Required(fieldName, MaxEmailLen)
	return func(v string) string {
		if msg := required(v); msg != "" {
			return msg
		}
		if !emailPattern.MatchString(strings.TrimSpace(v)) {
			return "Enter a valid email address."
		}
		return ""
	}
}

// Pattern validates that a field matches the provided regular expression.
func Pattern(fieldName string, re *regexp.Regexp) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		if !re.MatchString(v) {
			return fieldName + " has an invalid format."
		}
		return ""
	}
}

// FieldValidator provides a fluent API for validating multiple fields.
type FieldValidator struct {
	errors map[string]string
}

// New creates a new FieldValidator instance.
func New() *FieldValidator {
	return &FieldValidator{errors: make(map[string]string)}
}

// Validate validates a field with one or more validators.
// It stops at the first error for each field.
func (fv *FieldValidator) Validate(field, value string, validators ...Validator) *FieldValidator {
	for _, v := range validators {
		if err := v(value); err != "" {
			fv.errors[field] = err
			break // Stop at first error per field
		}
	}
	return fv
}

// Errors returns the accumulated validation errors.
func (fv *FieldValidator) Errors() map[string]string {
	return fv.errors
}

// Credentials validates a login form.
func Credentials(username, password string) map[string]string {
	return New().
		Validate("username", username, Required("Username", MaxUsernameLen)).
		Validate("password", password, Secret("Password", MaxPasswordLen)).
		Errors()
}

// Registration validates a register form.
func Registration(username, email, password string) map[string]string {
	return New().
		Validate("username", username, Required("Username", MaxUsernameLen)).
		Validate("email", email, Email("Email")).
		Validate("password", password, Secret("Password", MaxPasswordLen)).
		Errors()
}
