// Package apperror defines the error type shared by validators, services and
// handlers. Each error carries an explicit Kind, so handlers choose a status
// code without inspecting messages.
package apperror

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/lib/pq"
)

// Kind classifies an error for the HTTP layer.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindUnauthorized
	KindForbidden
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// HTTPStatus maps a kind to its response code. Conflicts (duplicate email)
// are reported as 400, like any other rejected input.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is a public-facing error: Message is safe to return to clients,
// Inner keeps the underlying cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Inner   error
}

func (e *Error) Error() string {
	if e.Inner != nil {
		return e.Message + ": " + e.Inner.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Inner
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Validation(message string) *Error {
	return New(KindValidation, message)
}

func Conflict(message string) *Error {
	return New(KindConflict, message)
}

func Unauthorized(message string) *Error {
	return New(KindUnauthorized, message)
}

func Forbidden(message string) *Error {
	return New(KindForbidden, message)
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// Internal wraps an unexpected failure behind a generic message.
func Internal(message string, inner error) *Error {
	return &Error{Kind: KindInternal, Message: message, Inner: inner}
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// uniqueViolation is the PostgreSQL SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// Wrap converts persistence errors into tagged errors. sql.ErrNoRows becomes
// notFound, a unique violation becomes a conflict, anything else is internal.
// Errors that are already tagged pass through untouched.
func Wrap(err error, notFound string, conflict string) error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, sql.ErrNoRows) {
		return &Error{Kind: KindNotFound, Message: notFound, Inner: err}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation && conflict != "" {
		return &Error{Kind: KindConflict, Message: conflict, Inner: err}
	}

	return Internal("Internal server error", err)
}
