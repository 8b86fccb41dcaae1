package internal

import (
	"context"
	"errors"
	"net/http"
)

// HTTPError carries a status code and a visitor-facing message.
type HTTPError struct {
	// Err is logged, never shown.
	Err     error
	Message string
	Code    int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// NewHTTPError creates an HTTPError. An empty message uses the status text.
func NewHTTPError(code int, message string, err error) *HTTPError {
	if message == "" {
		message = http.StatusText(code)
	}
	return &HTTPError{Code: code, Message: message, Err: err}
}

// ErrNotFound is a 404 wrapping err.
func ErrNotFound(err error) *HTTPError {
	return NewHTTPError(http.StatusNotFound, "", err)
}

// ErrBadRequest is a 400 with message.
func ErrBadRequest(message string, err error) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, err)
}

// StatusCoder is implemented by errors that choose their response status.
type StatusCoder interface {
	StatusCode() int
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

// StatusOf maps err to a response status: the code of an HTTPError or
// StatusCoder in the chain, 504 for deadline errors, 500 otherwise.
func StatusOf(err error) int {
	var sc StatusCoder
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &sc):
		return sc.StatusCode()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
