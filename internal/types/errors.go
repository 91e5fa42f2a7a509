package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a RequestError
type ErrorKind string

const (
	KindUnauthorized ErrorKind = "Unauthorized"
	KindForbidden    ErrorKind = "Forbidden"
	KindNotFound     ErrorKind = "NotFound"
	KindServerError  ErrorKind = "ServerError"
	KindHTTP         ErrorKind = "HTTPError"
	KindBusiness     ErrorKind = "BusinessError"
	KindTransport    ErrorKind = "TransportError"
)

// Common errors
var (
	// ErrUnauthorized is matched by 401 responses
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is matched by 403 responses
	ErrForbidden = errors.New("access forbidden")

	// ErrNotFound is matched by 404 responses
	ErrNotFound = errors.New("resource not found")

	// ErrServerError is matched by 5xx responses
	ErrServerError = errors.New("server error")

	// ErrHTTP is matched by other non-2xx responses
	ErrHTTP = errors.New("http error")

	// ErrBusiness is matched by envelopes carrying a non-success code
	ErrBusiness = errors.New("business error")

	// ErrTransport is matched by network, timeout and decoding failures
	ErrTransport = errors.New("transport error")
)

var kindSentinels = map[ErrorKind]error{
	KindUnauthorized: ErrUnauthorized,
	KindForbidden:    ErrForbidden,
	KindNotFound:     ErrNotFound,
	KindServerError:  ErrServerError,
	KindHTTP:         ErrHTTP,
	KindBusiness:     ErrBusiness,
	KindTransport:    ErrTransport,
}

// RequestError is the single error type raised by the request pipeline
type RequestError struct {
	Kind    ErrorKind `json:"kind"`
	Code    int       `json:"code"`
	Message string    `json:"message"`
	// Data is the raw response body, when there was one
	Data []byte `json:"data,omitempty"`
	Err  error  `json:"-"`
}

// Error implements the error interface
func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%d): %s: %v", e.Kind, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s (%d): %s", e.Kind, e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e *RequestError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind, or another RequestError of the same kind and code
func (e *RequestError) Is(target error) bool {
	if sentinel, ok := kindSentinels[e.Kind]; ok && sentinel == target {
		return true
	}

	t, ok := target.(*RequestError)
	if !ok {
		return false
	}

	return e.Kind == t.Kind && e.Code == t.Code
}

// Timeout reports whether the failure was a deadline being exceeded
func (e *RequestError) Timeout() bool {
	if e.Kind != KindTransport || e.Err == nil {
		return false
	}
	var te interface{ Timeout() bool }
	if errors.As(e.Err, &te) {
		return te.Timeout()
	}
	return false
}

// NewRequestError creates a new RequestError
func NewRequestError(kind ErrorKind, code int, message string, data []byte) *RequestError {
	return &RequestError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Data:    data,
	}
}
