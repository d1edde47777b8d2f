package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies an application error.
type Kind string

const (
	KindNotFound               Kind = "NOT_FOUND"
	KindValidation             Kind = "VALIDATION"
	KindAuthenticationInvalid  Kind = "AUTHENTICATION_INVALID"
	KindAuthenticationRequired Kind = "AUTHENTICATION_REQUIRED"
	KindForbidden              Kind = "FORBIDDEN"
	KindConflict               Kind = "CONFLICT"
	KindInternal               Kind = "INTERNAL"
)

// Error is the error type returned by services and handlers. Fields carries
// per-field messages for validation failures.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status maps the error kind onto an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthenticationInvalid, KindAuthenticationRequired:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NotFound(message string) error {
	return New(KindNotFound, message)
}

// Validation creates a validation error with optional per-field messages.
func Validation(message string, fields map[string]string) error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// FieldError is a validation error for a single input field.
func FieldError(field, message string) error {
	return Validation("Validation failed", map[string]string{field: message})
}

func AuthenticationInvalid(message string) error {
	return New(KindAuthenticationInvalid, message)
}

func AuthenticationRequired(message string) error {
	return New(KindAuthenticationRequired, message)
}

func Forbidden(message string) error {
	return New(KindForbidden, message)
}

func Conflict(message string) error {
	return New(KindConflict, message)
}

func Internal(message string, err error) error {
	return Wrap(KindInternal, message, err)
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func is(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}

func IsNotFound(err error) bool {
	return is(err, KindNotFound)
}

func IsValidation(err error) bool {
	return is(err, KindValidation)
}

func IsAuthenticationInvalid(err error) bool {
	return is(err, KindAuthenticationInvalid)
}

func IsAuthenticationRequired(err error) bool {
	return is(err, KindAuthenticationRequired)
}

func IsForbidden(err error) bool {
	return is(err, KindForbidden)
}

func IsConflict(err error) bool {
	return is(err, KindConflict)
}

// IsDuplicateError checks if an error is a unique constraint violation
// reported by Postgres or SQLite.
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "UNIQUE constraint") ||
		strings.Contains(errStr, "duplicate entry")
}
