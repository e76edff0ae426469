// Package apperror defines the failure taxonomy shared by all layers.
// Services and middleware signal failures by kind; the error-rendering
// middleware in pkg/middleware is the single place these are translated
// into HTTP responses.
package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an application failure.
type Kind int

const (
	// Unknown is the fallback for unclassified failures.
	Unknown Kind = iota
	// Unauthenticated means the request carried no usable credentials.
	Unauthenticated
	// Forbidden means the authenticated identity may not touch the resource.
	Forbidden
	// Validation means the request body failed field validation.
	Validation
	// NotFound means the addressed resource does not exist.
	NotFound
	// Conflict means a uniqueness constraint was violated.
	Conflict
	// Storage means the document store failed; details stay server-side.
	Storage
)

// Error carries a failure kind, a client-safe message and an optional
// underlying error kept for logging only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status maps the failure kind to an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case Validation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case Storage:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NewUnauthenticated(message string, err error) *Error {
	return New(Unauthenticated, message, err)
}

func NewForbidden(message string, err error) *Error {
	return New(Forbidden, message, err)
}

func NewValidation(message string, err error) *Error {
	return New(Validation, message, err)
}

func NewNotFound(message string, err error) *Error {
	return New(NotFound, message, err)
}

func NewConflict(message string, err error) *Error {
	return New(Conflict, message, err)
}

func NewStorage(message string, err error) *Error {
	return New(Storage, message, err)
}

// From classifies an arbitrary error. Errors that are not *Error become
// Unknown with a generic message so internals never reach a client.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return &Error{Kind: Unknown, Message: "internal error", Err: err}
}

// IsKind reports whether err carries the given failure kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}

func IsNotFound(err error) bool  { return IsKind(err, NotFound) }
func IsForbidden(err error) bool { return IsKind(err, Forbidden) }
