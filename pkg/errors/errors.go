// Package errors provides structured error types for cytoconv.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the conversion core, CLI and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Conversion failures surface with one of two codes:
//   - INVALID_INPUT: the input is not the expected shape (not a plain
//     attribute mapping, or not a sequence where one is required)
//   - MISSING_ENDPOINT: an edge could not resolve its source or target
//
// The remaining codes are used by the storage, cache and transport layers.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "expected a plain object, got %T", v)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	var me *errors.MissingEndpointError
//	if stderrors.As(err, &me) {
//	    fmt.Println("unresolved endpoint:", me.Endpoint)
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Conversion errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeMissingEndpoint Code = "MISSING_ENDPOINT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Backend errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error or *MissingEndpointError
// with a matching code.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error carries no code.
// The outermost coded error in the chain wins.
func GetCode(err error) Code {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.Code
		case *MissingEndpointError:
			return ErrCodeMissingEndpoint
		}
		err = errors.Unwrap(err)
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// InvalidInput is shorthand for New(ErrCodeInvalidInput, ...).
func InvalidInput(format string, args ...any) *Error {
	return New(ErrCodeInvalidInput, format, args...)
}

// MissingEndpointError reports an edge whose source or target could not be
// resolved from any of its aliases.
type MissingEndpointError struct {
	Endpoint string   // "source" or "target"
	Aliases  []string // keys that were consulted, in check order
}

// Error implements the error interface.
func (e *MissingEndpointError) Error() string {
	return fmt.Sprintf("%s: could not assign the required '%s' property of an edge", ErrCodeMissingEndpoint, e.Endpoint)
}

// Code returns the error code for this error type.
func (e *MissingEndpointError) Code() Code {
	return ErrCodeMissingEndpoint
}
