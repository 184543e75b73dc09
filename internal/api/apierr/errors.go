package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/seabattle-go/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeNotFound       = "NOT_FOUND"
	CodeInvalidState   = "INVALID_STATE"
	CodeConflict       = "CONFLICT"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeUnavailable    = "UNAVAILABLE"
	CodeInternalError  = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError using its domain kind
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	msg := model.Message(err)
	if msg == "" {
		msg = err.Error()
	}

	switch model.KindOf(err) {
	case model.ErrNotFound:
		return &httpError{http.StatusNotFound, APIError{CodeNotFound, msg}}
	case model.ErrInvalidInput:
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, msg}}
	case model.ErrInvalidState:
		return &httpError{http.StatusConflict, APIError{CodeInvalidState, msg}}
	case model.ErrConflict:
		return &httpError{http.StatusConflict, APIError{CodeConflict, msg}}
	case model.ErrAuthFailure:
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, msg}}
	}

	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnavailableError reports that the game loop is not accepting work
func NewUnavailableError() error {
	return &httpError{http.StatusServiceUnavailable, APIError{CodeUnavailable, "Server is shutting down"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
