package models

import "errors"

var (
	// ErrNotFound is returned when no to-do item has the requested id.
	ErrNotFound = errors.New("to-do item not found")
	// ErrUnauthenticated is returned for missing or invalid credentials.
	// Unknown users and wrong passwords are not distinguished.
	ErrUnauthenticated = errors.New("unauthorized access")
	// ErrUserNotFound is returned by the credential store for unknown usernames.
	ErrUserNotFound = errors.New("user not found")
)

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	// Field is the JSON name of the offending field.
	Field string
	// Reason is a short human-readable explanation.
	Reason string
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}
