package hospital

import (
	"errors"
	"fmt"

	internalTypes "github.com/eshaffer321/hospitalnav-go/internal/types"
)

// RequestError is returned by every failed backend call
type RequestError = internalTypes.RequestError

// ErrorKind classifies a RequestError
type ErrorKind = internalTypes.ErrorKind

const (
	KindUnauthorized = internalTypes.KindUnauthorized
	KindForbidden    = internalTypes.KindForbidden
	KindNotFound     = internalTypes.KindNotFound
	KindServerError  = internalTypes.KindServerError
	KindHTTP         = internalTypes.KindHTTP
	KindBusiness     = internalTypes.KindBusiness
	KindTransport    = internalTypes.KindTransport
)

var (
	// ErrUnauthorized is returned when the session is missing or rejected
	ErrUnauthorized = internalTypes.ErrUnauthorized

	// ErrForbidden is returned on 403
	ErrForbidden = internalTypes.ErrForbidden

	// ErrNotFound is returned when resource not found
	ErrNotFound = internalTypes.ErrNotFound

	// ErrServerError is returned for server errors
	ErrServerError = internalTypes.ErrServerError

	// ErrHTTP is returned for other non-2xx statuses
	ErrHTTP = internalTypes.ErrHTTP

	// ErrBusiness is returned when the envelope code is not a success code
	ErrBusiness = internalTypes.ErrBusiness

	// ErrTransport is returned for network, timeout and decoding failures
	ErrTransport = internalTypes.ErrTransport

	// ErrNotAuthenticated is returned by calls that need a token when none is stored
	ErrNotAuthenticated = errors.New("not authenticated")
)

// NewRequestError builds a RequestError
func NewRequestError(kind ErrorKind, code int, message string, data []byte) *RequestError {
	return internalTypes.NewRequestError(kind, code, message, data)
}

// AsRequestError extracts the RequestError from a wrapped chain
func AsRequestError(err error) (*RequestError, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr, true
	}
	return nil, false
}

// ValidationError represents validation errors
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []*ValidationError

// Error implements the error interface
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	return fmt.Sprintf("%d validation errors occurred, first: %s", len(e), e[0].Error())
}
