// Package errors provides standardized domain errors with codes for rolexhound.
//
// Usage:
//
//	// In components - return typed errors
//	if watchRejected {
//	    return errors.WatchRejected("path does not exist")
//	}
//
//	// At the process boundary - map to an exit status
//	var domainErr *errors.Error
//	if errors.As(err, &domainErr) {
//	    os.Exit(domainErr.ExitStatus())
//	}
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the application. Each fatal code maps to a
// distinct process exit status.
const (
	CodeUsage         Code = "USAGE"
	CodeQueueInit     Code = "QUEUE_INIT"
	CodeWatchRejected Code = "WATCH_REJECTED"
	CodeDisplayName   Code = "DISPLAY_NAME"
	CodeReadFailure   Code = "READ_FAILURE"
	CodeSinkInit      Code = "SINK_INIT"
	CodeSink          Code = "SINK"
	CodeInternal      Code = "INTERNAL"
)

// Exit statuses corresponding to the fatal error codes.
const (
	StatusSuccess       = 0
	StatusUsage         = 1
	StatusQueueInit     = 2
	StatusWatchRejected = 3
	StatusDisplayName   = 4
	StatusReadFailure   = 5
	StatusSinkInit      = 6
	StatusInternal      = 7
)

// ExitStatus returns the process exit status for an error code.
func (c Code) ExitStatus() int {
	switch c {
	case CodeUsage:
		return StatusUsage
	case CodeQueueInit:
		return StatusQueueInit
	case CodeWatchRejected:
		return StatusWatchRejected
	case CodeDisplayName:
		return StatusDisplayName
	case CodeReadFailure:
		return StatusReadFailure
	case CodeSinkInit:
		return StatusSinkInit
	default:
		return StatusInternal
	}
}

// Error is a domain error with a code, message, and optional cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// ExitStatus returns the process exit status for this error.
func (e *Error) ExitStatus() int {
	return e.Code.ExitStatus()
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		cause:   err,
	}
}

// Sentinel errors for use with errors.Is().
var (
	ErrUsage         = &Error{Code: CodeUsage, Message: "usage error"}
	ErrQueueInit     = &Error{Code: CodeQueueInit, Message: "event queue initialization failed"}
	ErrWatchRejected = &Error{Code: CodeWatchRejected, Message: "watch registration rejected"}
	ErrDisplayName   = &Error{Code: CodeDisplayName, Message: "display name undeterminable"}
	ErrReadFailure   = &Error{Code: CodeReadFailure, Message: "event read failed"}
	ErrSinkInit      = &Error{Code: CodeSinkInit, Message: "notification subsystem initialization failed"}
	ErrSink          = &Error{Code: CodeSink, Message: "notification delivery failed"}
	ErrInternal      = &Error{Code: CodeInternal, Message: "internal error"}
)

// Constructor functions for creating errors with custom messages.

// Usage creates a usage error.
func Usage(msg string) *Error {
	return &Error{Code: CodeUsage, Message: msg}
}

// QueueInit creates an event queue initialization error.
func QueueInit(msg string) *Error {
	return &Error{Code: CodeQueueInit, Message: msg}
}

// WatchRejected creates a watch registration error.
func WatchRejected(msg string) *Error {
	return &Error{Code: CodeWatchRejected, Message: msg}
}

// WatchRejectedf creates a watch registration error with formatted message.
func WatchRejectedf(format string, args ...any) *Error {
	return &Error{Code: CodeWatchRejected, Message: fmt.Sprintf(format, args...)}
}

// DisplayName creates a display name derivation error.
func DisplayName(msg string) *Error {
	return &Error{Code: CodeDisplayName, Message: msg}
}

// ReadFailure creates an event read error.
func ReadFailure(msg string) *Error {
	return &Error{Code: CodeReadFailure, Message: msg}
}

// SinkInit creates a notification subsystem initialization error.
func SinkInit(msg string) *Error {
	return &Error{Code: CodeSinkInit, Message: msg}
}

// Sink creates a notification delivery error.
func Sink(msg string) *Error {
	return &Error{Code: CodeSink, Message: msg}
}

// Internal creates an internal error.
func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

// Internalf creates an internal error with formatted message.
func Internalf(format string, args ...any) *Error {
	return &Error{Code: CodeInternal, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// Wrapf wraps an error with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}
