// Package apperror defines the error taxonomy shared by workflows, repositories
// and the tool adapter layer. Every failure that leaves the core is an *Error
// carrying a JSON-RPC code and an HTTP-equivalent status.
package apperror

import (
	"errors"
	"net/http"
)

// Code is a JSON-RPC 2.0 error code.
type Code int

const (
	CodeInvalidRequest Code = -32600
	CodeMethodNotFound Code = -32601
	CodeInvalidParams  Code = -32602
	CodeInternalError  Code = -32603
	CodeParseError     Code = -32700
	CodeServerError    Code = -32000
	CodeUnauthorized   Code = -32001
)

// Kind classifies an application error.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindNotFound:
		return "NotFoundError"
	default:
		return "InternalServerError"
	}
}

// Error is the single error type surfaced by the core.
type Error struct {
	Kind       Kind
	Code       Code
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports client-supplied data that failed a constraint.
func Validation(message string) *Error {
	return &Error{
		Kind:       KindValidation,
		Code:       CodeInvalidParams,
		StatusCode: http.StatusBadRequest,
		Message:    message,
	}
}

// Internal reports a storage or unexpected failure.
func Internal(message string, cause error) *Error {
	if message == "" {
		message = "Internal server error"
	}
	return &Error{
		Kind:       KindInternal,
		Code:       CodeInternalError,
		StatusCode: http.StatusInternalServerError,
		Message:    message,
		Err:        cause,
	}
}

// NotFound is reserved for lookup-by-id operations.
func NotFound(message string, cause error) *Error {
	if message == "" {
		message = "Resource not found"
	}
	return &Error{
		Kind:       KindNotFound,
		Code:       CodeInternalError,
		StatusCode: http.StatusNotFound,
		Message:    message,
		Err:        cause,
	}
}

// From returns err as an *Error, wrapping anything else into an internal error
// with the given message. It returns nil for a nil err.
func From(err error, message string) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(message, err)
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
