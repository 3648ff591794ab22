package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a domain failure. Handlers map kinds to HTTP status
// codes exactly once at the transport boundary; services never pick status
// codes themselves.
type ErrorKind int

const (
	KindBadRequest ErrorKind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindGone
	KindTooManyRequests
	KindInternal
)

// ErrorSource points a failure at a specific request field. Domain errors
// usually carry an empty path; the validation layer fills it in.
type ErrorSource struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Error is the single tagged error type every service returns.
type Error struct {
	Kind    ErrorKind
	Message string
	Sources []ErrorSource
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Is lets errors.Is match two domain errors by kind, so callers can compare
// against a bare E(kind, ...) sentinel.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// E builds a domain error of the given kind.
func E(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds a domain error that preserves the underlying cause for logs
// while exposing only message and kind to callers.
func Wrap(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// KindOf extracts the kind from any error chain. Unknown errors are
// reported as internal so raw infrastructure failures never leak.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// HTTPStatus is the one place kinds become status codes.
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindGone:
		return http.StatusGone
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
