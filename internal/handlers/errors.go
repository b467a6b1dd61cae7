package handlers

import (
	"errors"
	"net/http"

	"booking-status-api/internal/services"
)

var (
	// ErrMethodNotAllowed is returned for methods the handler does not serve
	ErrMethodNotAllowed = errors.New("Method not allowed")

	// ErrBodyNotObject is returned for a literal null request body
	ErrBodyNotObject = errors.New("request body must be a JSON object")
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusForError maps an error kind to its HTTP status code. Anything that is
// not a configuration, validation or method error is a backend failure.
func statusForError(err error) int {
	var validationErr *services.ValidationError

	switch {
	case errors.Is(err, services.ErrNotConfigured):
		return http.StatusInternalServerError
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}
