// Package errors provides structured error types for photopack.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and the CLI
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - OVERSIZED_PHOTO: A photo that can never fit the canvas
//   - INTERNAL_*: Defects in the packing machinery
//
// # Usage
//
//	err := errors.New(errors.ErrCodeOversizedPhoto, "photo %q is wider than the canvas", id)
//	if errors.Is(err, errors.ErrCodeOversizedPhoto) {
//	    // report the offending photo
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "read manifest %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidOrdering Code = "INVALID_ORDERING"
	ErrCodeInvalidManifest Code = "INVALID_MANIFEST"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Packing errors
	ErrCodeOversizedPhoto Code = "OVERSIZED_PHOTO"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal          Code = "INTERNAL_ERROR"
	ErrCodeInternalInvariant Code = "INTERNAL_INVARIANT"
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
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
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

// IsInternal reports whether err signals a defect in the packing machinery
// rather than a problem with the input. Such errors are never retried.
func IsInternal(err error) bool {
	switch GetCode(err) {
	case ErrCodeInternal, ErrCodeInternalInvariant:
		return true
	}
	return false
}

// InvariantError carries the debugging context of an internal invariant
// violation: the offending photo (if any) and a dump of the state that
// failed the check.
type InvariantError struct {
	PhotoID string
	Dump    string
	Message string
}

// Error implements the error interface.
func (e *InvariantError) Error() string {
	msg := e.Message
	if e.PhotoID != "" {
		msg = fmt.Sprintf("%s (photo %q)", msg, e.PhotoID)
	}
	if e.Dump != "" {
		msg += "\n" + e.Dump
	}
	return msg
}

// Code returns the error code for this error type.
func (e *InvariantError) Code() Code {
	return ErrCodeInternalInvariant
}

// Invariant builds an INTERNAL_INVARIANT error wrapping an *InvariantError,
// so callers can match it either by code or with errors.As.
func Invariant(photoID, dump, format string, args ...any) *Error {
	ie := &InvariantError{PhotoID: photoID, Dump: dump, Message: fmt.Sprintf(format, args...)}
	return Wrap(ErrCodeInternalInvariant, ie, "internal invariant violated")
}
