package validate

import (
	"fmt"
	"regexp"
)

// FieldError reports a validation failure with a remediation message for a
// single input field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var (
	emailRe   = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)
	phoneRe   = regexp.MustCompile(`^\d{10}$`)
	lowerRe   = regexp.MustCompile(`[a-z]`)
	upperRe   = regexp.MustCompile(`[A-Z]`)
	digitRe   = regexp.MustCompile(`[0-9]`)
	specialRe = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// Email checks the user@domain.tld shape.
func Email(email string) error {
	if !emailRe.MatchString(email) {
		return &FieldError{Field: "email", Message: "Invalid email format. Please enter a valid email address."}
	}
	return nil
}

// Password enforces each rule in order so the caller gets a rule-specific
// message for the first violation.
func Password(password string) error {
	if len(password) < 8 {
		return &FieldError{Field: "password", Message: "Password must be at least 8 characters long."}
	}
	if !lowerRe.MatchString(password) {
		return &FieldError{Field: "password", Message: "Password must contain at least one lowercase letter."}
	}
	if !upperRe.MatchString(password) {
		return &FieldError{Field: "password", Message: "Password must contain at least one uppercase letter."}
	}
	if !digitRe.MatchString(password) {
		return &FieldError{Field: "password", Message: "Password must contain at least one digit."}
	}
	if !specialRe.MatchString(password) {
		return &FieldError{Field: "password", Message: "Password must contain at least one special character."}
	}
	return nil
}

// Phone accepts exactly ten digits.
func Phone(phone string) error {
	if !phoneRe.MatchString(phone) {
		return &FieldError{Field: "phone", Message: "Invalid phone number format. It must contain exactly 10 digits."}
	}
	return nil
}
