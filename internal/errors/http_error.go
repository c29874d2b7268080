package errors

import (
	"encoding/json"
	"errors"
	"net/http"
)

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// Helpers for the error classes handlers care about: validation failures are
// rejected before any write, conflicts mean the booking was finalized
// elsewhere, not-found means it vanished under another operator.
var (
	ErrValidation   = func(msg string) *HTTPError { return NewHTTPError(http.StatusBadRequest, msg) }
	ErrConflict     = func(msg string) *HTTPError { return NewHTTPError(http.StatusConflict, msg) }
	ErrNotFound     = func(msg string) *HTTPError { return NewHTTPError(http.StatusNotFound, msg) }
	ErrUnauthorized = func(msg string) *HTTPError { return NewHTTPError(http.StatusUnauthorized, msg) }
	// ErrTransient covers downstream providers (SMS, payment) failing in a
	// retryable way.
	ErrTransient = func(msg string) *HTTPError { return NewHTTPError(http.StatusServiceUnavailable, msg) }
)

// WriteDetail writes the error as a {"detail": ...} body, surfacing HTTPError
// messages verbatim and hiding everything else behind fallback.
func WriteDetail(w http.ResponseWriter, err error, fallback string) {
	code := http.StatusInternalServerError
	detail := fallback
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		detail = httpErr.Message
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
