package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/brewduel/internal/model"
)

// ErrorResponse is the body of every error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Error codes
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeRoomNotFound   = "ROOM_NOT_FOUND"
	CodeNotReady       = "NOT_READY"
	CodeBusy           = "BUSY"
	CodeNotFound       = "NOT_FOUND"
	CodeInternalError  = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an error body
type httpError struct {
	status int
	body   ErrorResponse
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.body.Error
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(he.body)
}

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError.
// Client errors carry the wrapped message; server errors never leak details.
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrInvalidRequest):
		return &httpError{http.StatusBadRequest, ErrorResponse{err.Error(), CodeInvalidRequest}}
	case errors.Is(err, model.ErrRoomNotFound):
		return &httpError{http.StatusNotFound, ErrorResponse{"Room not found", CodeRoomNotFound}}
	case errors.Is(err, model.ErrResultsNotReady):
		return &httpError{http.StatusNotFound, ErrorResponse{"Results not ready", CodeNotReady}}
	case errors.Is(err, model.ErrLockTimeout):
		return &httpError{http.StatusServiceUnavailable, ErrorResponse{"Server busy, retry shortly", CodeBusy}}
	default:
		return &httpError{http.StatusInternalServerError, ErrorResponse{"Internal server error", CodeInternalError}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, ErrorResponse{message, CodeInvalidRequest}}
}

// NewNotFoundError creates a not found error for unknown routes
func NewNotFoundError() error {
	return &httpError{http.StatusNotFound, ErrorResponse{"Not found", CodeNotFound}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, ErrorResponse{"Internal server error", CodeInternalError}}
}
