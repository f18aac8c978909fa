package config

import (
	"errors"
	"fmt"
)

// ErrorCode classifies configuration failures.
type ErrorCode string

const (
	CodeNotFound    ErrorCode = "CONFIG_NOT_FOUND"
	CodeReadFailed  ErrorCode = "CONFIG_READ_FAILED"
	CodeUnsupported ErrorCode = "CONFIG_UNSUPPORTED"
	CodeSyntax      ErrorCode = "CONFIG_SYNTAX"
	CodeSchema      ErrorCode = "CONFIG_SCHEMA"
	CodeInvalid     ErrorCode = "CONFIG_INVALID"
)

// Error is returned for any configuration problem.
type Error struct {
	Code    ErrorCode
	Path    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsConfigError reports whether err wraps an *Error.
func IsConfigError(err error) bool {
	var ce *Error
	return errors.As(err, &ce)
}
