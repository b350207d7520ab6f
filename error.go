package obrdocs

import (
	"errors"
	"fmt"
)

// Error codes used across the application. They map one-to-one onto the
// failure taxonomy reported in logs and the failure record of a run.
const (
	ECHALLENGE   = "challenge_detected"
	ECONVERSION  = "conversion_failure"
	EHTTP        = "http_error"
	EINTERNAL    = "internal"
	EINVALID     = "invalid"
	ENOTFOUND    = "not_found"
	EUNAVAILABLE = "unavailable"
)

// Error represents an application error with a machine-readable code and a
// human-readable message.
type Error struct {
	// Code is one of the E* constants above.
	Code string

	// Message is a human-readable description of the error.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("obrdocs error: code=%s message=%s", e.Code, e.Message)
}

// Errorf returns a new Error with the given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps err and returns its code.
// Returns an empty string for nil errors and EINTERNAL for non-application errors.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	}
	if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps err and returns its message.
// Returns an empty string for nil errors and a generic message for
// non-application errors.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	}
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}
