// File: internal/apperr/apperr.go
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for callers and for HTTP status mapping.
type Kind string

const (
	KindInvalidArgument   Kind = "INVALID_ARGUMENT"
	KindUnauthorized      Kind = "UNAUTHORIZED"
	KindNotFound          Kind = "NOT_FOUND"
	KindForbidden         Kind = "FORBIDDEN"
	KindGenerationFailure Kind = "GENERATION_FAILURE"
	KindStorageFailure    Kind = "STORAGE_FAILURE"
)

// Error is the structured failure every service operation returns.
// It carries its kind, the operation that failed, a caller-facing
// message and the underlying cause, if any.
type Error struct {
	Kind      Kind
	Operation string
	Message   string
	Cause     error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s error in %s: %s (caused by: %v)",
			e.Kind, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s error in %s: %s", e.Kind, e.Operation, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func NewInvalidArgument(operation, msg string) *Error {
	return &Error{Kind: KindInvalidArgument, Operation: operation, Message: msg}
}

func NewUnauthorized(operation, msg string) *Error {
	return &Error{Kind: KindUnauthorized, Operation: operation, Message: msg}
}

func NewNotFound(operation, msg string) *Error {
	return &Error{Kind: KindNotFound, Operation: operation, Message: msg}
}

func NewForbidden(operation, msg string) *Error {
	return &Error{Kind: KindForbidden, Operation: operation, Message: msg}
}

func NewGenerationFailure(operation, msg string, cause error) *Error {
	return &Error{Kind: KindGenerationFailure, Operation: operation, Message: msg, Cause: cause}
}

func NewStorageFailure(operation, msg string, cause error) *Error {
	return &Error{Kind: KindStorageFailure, Operation: operation, Message: msg, Cause: cause}
}

// KindOf extracts the kind of err, or KindStorageFailure when err is not
// a structured *Error. Unclassified failures are treated as storage-level
// so they surface as server errors, never as silently swallowed results.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStorageFailure
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
