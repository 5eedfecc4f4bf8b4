package utils

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure the client layer can report.
type ErrorKind string

const (
	// TransportFailure means no response was received, or the local session
	// storage could not be read or written.
	TransportFailure ErrorKind = "transport_failure"
	// HTTPFailure means the gateway answered with a non-2xx status.
	HTTPFailure ErrorKind = "http_failure"
	// ParseFailure means a 2xx body was malformed or did not match its schema.
	ParseFailure ErrorKind = "parse_failure"
	// ValidationFailure means a client-side precondition was violated and no request was sent.
	ValidationFailure ErrorKind = "validation_failure"
)

// ErrSessionStorage marks a TransportFailure raised by the session storage
// rather than the network.
var ErrSessionStorage = errors.New("session storage unavailable")

// APIError is the only error type returned by the HTTP client and the resource services.
// Message is safe to show to a user.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Cause      error
}

func (e *APIError) Error() string {
	if e.Kind == HTTPFailure {
		return fmt.Sprintf("%s (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

func NewTransportError(cause error) *APIError {
	return &APIError{
		Kind:    TransportFailure,
		Message: "could not reach the storefront service",
		Cause:   cause,
	}
}

func NewStorageError(message string, cause error) *APIError {
	return &APIError{
		Kind:    TransportFailure,
		Message: message,
		Cause:   fmt.Errorf("%w: %w", ErrSessionStorage, cause),
	}
}

func NewHTTPError(status int, message string) *APIError {
	if message == "" {
		message = fmt.Sprintf("request failed with status %d", status)
	}
	return &APIError{
		Kind:       HTTPFailure,
		StatusCode: status,
		Message:    message,
	}
}

func NewParseError(cause error) *APIError {
	return &APIError{
		Kind:    ParseFailure,
		Message: "unexpected response from the storefront service",
		Cause:   cause,
	}
}

func NewValidationError(message string) *APIError {
	return &APIError{
		Kind:    ValidationFailure,
		Message: message,
	}
}

// AsAPIError unwraps err into an *APIError when it carries one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsKind reports whether err is an *APIError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Kind == kind
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.StatusCode
	}
	return 0
}

// UserMessage returns the text a view should show for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.Message
	}
	return err.Error()
}
