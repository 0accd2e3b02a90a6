package models

import "strings"

const (
	// MinNameLength is the minimal length of a first or last name after trimming.
	MinNameLength = 2
	// MinPasswordLength is the minimal password length.
	MinPasswordLength = 8
)

// Field names reported by ValidationError.
const (
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldSessionID = "session_id"
)

// ValidationError reports a field that violates its shape rule.
type ValidationError struct {
	// Field is the JSON name of the offending field.
	Field string
	// Message is the human-readable description returned to clients.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// ValidName reports whether s is at least MinNameLength bytes long
// once surrounding whitespace is removed.
func ValidName(s string) bool {
	return len(strings.TrimSpace(s)) >= MinNameLength
}

// ValidEmail reports whether s contains both '@' and '.'.
// No further RFC shape checks are made.
func ValidEmail(s string) bool {
	return strings.Contains(s, "@") && strings.Contains(s, ".")
}

// ValidPassword reports whether s is at least MinPasswordLength bytes long.
func ValidPassword(s string) bool {
	return len(s) >= MinPasswordLength
}

func checkFirstName(s string) error {
	if !ValidName(s) {
		return &ValidationError{Field: FieldFirstName, Message: "First name must be at least 2 characters long."}
	}
	return nil
}

func checkLastName(s string) error {
	if !ValidName(s) {
		return &ValidationError{Field: FieldLastName, Message: "Last name must be at least 2 characters long."}
	}
	return nil
}

func checkEmail(s string) error {
	if !ValidEmail(s) {
		return &ValidationError{Field: FieldEmail, Message: "Email must be valid (contain @ and .)"}
	}
	return nil
}

func checkPassword(s string) error {
	if !ValidPassword(s) {
		return &ValidationError{Field: FieldPassword, Message: "Password must be at least 8 characters long."}
	}
	return nil
}
