package apperrors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Code classifies an application error.
type Code string

const (
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeNotFound     Code = "NOT_FOUND"
	CodeForbidden    Code = "FORBIDDEN"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeConflict     Code = "CONFLICT"
	CodeStorage      Code = "STORAGE_ERROR"
	CodeUpstream     Code = "UPSTREAM_ERROR"
)

// Error is the application error type carried between stores, services, and
// handlers. Validation, not-found, and forbidden errors surface their message
// to the caller; storage and upstream errors are logged with their cause and
// surfaced generically.
type Error struct {
	Code     Code
	Message  string
	HTTPCode int
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Public reports whether the message is safe to show to the caller verbatim.
func (e *Error) Public() bool {
	return e.Code != CodeStorage && e.Code != CodeUpstream
}

// New creates an error with an explicit code and HTTP status.
func New(code Code, message string, httpCode int) *Error {
	return &Error{Code: code, Message: message, HTTPCode: httpCode}
}

// Validation reports a missing or invalid required field.
func Validation(message string) *Error {
	return New(CodeValidation, message, http.StatusBadRequest)
}

// NotFound reports an unknown identifier.
func NotFound(message string) *Error {
	return New(CodeNotFound, message, http.StatusNotFound)
}

// Forbidden reports an ownership or permission failure.
func Forbidden(message string) *Error {
	return New(CodeForbidden, message, http.StatusForbidden)
}

// Unauthorized reports a missing or invalid authentication.
func Unauthorized(message string) *Error {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

// Conflict reports a uniqueness violation such as a duplicate email.
func Conflict(message string) *Error {
	return New(CodeConflict, message, http.StatusConflict)
}

// Storage wraps a persistence or file IO failure.
func Storage(err error, message string) *Error {
	return &Error{Code: CodeStorage, Message: message, HTTPCode: http.StatusInternalServerError, Err: err}
}

// Upstream wraps a failure from an external collaborator such as the AI service.
func Upstream(err error, message string) *Error {
	return &Error{Code: CodeUpstream, Message: message, HTTPCode: http.StatusBadGateway, Err: err}
}

// CodeOf extracts the classification of err, or empty when err is not an *Error.
func CodeOf(err error) Code {
	var ae *Error
	if stderrors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

func IsValidation(err error) bool { return CodeOf(err) == CodeValidation }
func IsNotFound(err error) bool   { return CodeOf(err) == CodeNotFound }
func IsForbidden(err error) bool  { return CodeOf(err) == CodeForbidden }
func IsConflict(err error) bool   { return CodeOf(err) == CodeConflict }
