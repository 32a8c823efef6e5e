// Package errors provides standardized error handling for treeclip.
// It defines common error kinds and helper functions for consistent error
// creation, wrapping, and inspection across the application.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package functions re-exported for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Path error kinds
	InvalidPath
	FileAccessDenied
	// Config error kinds
	InvalidConfig
	// Clipboard error kinds
	ClipboardUnavailable
	ClipboardWriteFailed
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	path string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	switch {
	case e.path != "" && e.err != nil:
		return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
	case e.path != "":
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	case e.err != nil:
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the error kind
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// Path returns the file path associated with the error, if any
func (e *ApplicationError) Path() string {
	return e.path
}

// NewPathError creates an error about a filesystem path
func NewPathError(msg, path string, err error) *ApplicationError {
	return &ApplicationError{msg: msg, path: path, err: err, kind: InvalidPath}
}

// NewAccessError creates an error for a file that exists but cannot be read
func NewAccessError(msg, path string, err error) *ApplicationError {
	return &ApplicationError{msg: msg, path: path, err: err, kind: FileAccessDenied}
}

// NewConfigError creates a configuration error
func NewConfigError(msg string, err error) *ApplicationError {
	return &ApplicationError{msg: msg, err: err, kind: InvalidConfig}
}

// NewClipboardError creates a clipboard error. unavailable distinguishes a
// missing clipboard mechanism from a failed write.
func NewClipboardError(msg string, err error, unavailable bool) *ApplicationError {
	kind := ClipboardWriteFailed
	if unavailable {
		kind = ClipboardUnavailable
	}
	return &ApplicationError{msg: msg, err: err, kind: kind}
}

// IsKind reports whether err (or any error it wraps) is an ApplicationError
// of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		return appErr.kind == kind
	}
	return false
}
