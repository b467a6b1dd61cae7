package services

import (
	"errors"
)

// ErrNotConfigured is returned by every operation when no database
// connection string was configured
var ErrNotConfigured = errors.New("DATABASE_URL not configured")

// Validation messages returned to clients verbatim
const (
	MsgUpsertFieldsRequired = "booking_key and status required"
	MsgDeleteKeyRequired    = "booking_key required"
)

// ValidationError reports a request payload missing required fields
type ValidationError struct {
	Message string
	Err     error
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap returns the underlying validator error
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a validation failure
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}
