// Package apperrors defines the error taxonomy shared by the backend
// client and the handlers.
package apperrors

import (
	"errors"
	"fmt"
)

// ErrorCode classifies failures for propagation decisions: network and
// auth failures on the entitlement path degrade silently, validation
// failures surface with a reason, and missing configuration is reported
// once and never retried.
type ErrorCode string

const (
	CodeNetworkFailure    ErrorCode = "NETWORK_FAILURE"
	CodeAuthFailure       ErrorCode = "AUTH_FAILURE"
	CodeValidationFailure ErrorCode = "VALIDATION_FAILURE"
	CodeNotConfigured     ErrorCode = "NOT_CONFIGURED"
)

type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(code ErrorCode, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf extracts the taxonomy code from an error chain, or "" if the
// error was not produced by this package.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func IsNetworkFailure(err error) bool    { return CodeOf(err) == CodeNetworkFailure }
func IsAuthFailure(err error) bool       { return CodeOf(err) == CodeAuthFailure }
func IsValidationFailure(err error) bool { return CodeOf(err) == CodeValidationFailure }
func IsNotConfigured(err error) bool     { return CodeOf(err) == CodeNotConfigured }
