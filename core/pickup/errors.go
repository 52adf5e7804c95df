package pickup

import (
	"errors"
	"fmt"
)

// Code classifies a failed prediction.
type Code string

const (
	// CodeInvalidInput marks a missing or malformed request body.
	CodeInvalidInput Code = "invalid_input"
	// CodeInternal covers failures while building features, running the
	// models or assembling the result.
	CodeInternal Code = "internal"
)

// Error is the failure half of a prediction outcome.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Invalid returns a CodeInvalidInput error.
func Invalid(msg string) *Error {
	return &Error{Code: CodeInvalidInput, Message: msg}
}

// Internal wraps err as a CodeInternal error carrying err's message.
func Internal(err error) *Error {
	return &Error{Code: CodeInternal, Message: err.Error(), Err: err}
}

// Internalf formats a CodeInternal error.
func Internalf(format string, args ...any) *Error {
	return Internal(fmt.Errorf(format, args...))
}

// CodeOf extracts the code of err, defaulting to CodeInternal.
func CodeOf(err error) Code {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code
	}
	return CodeInternal
}
