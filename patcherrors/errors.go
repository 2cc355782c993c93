// Package patcherrors provides structured error types for otpatch.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish a missing path from a failed
// test assertion or an operation list that does not fit its document.
//
// # Error Categories
//
//   - OperationError: a single operation could not be applied (NotFound,
//     InvalidIndex, MissingValue, TestFailed, InvalidArgument)
//   - UnknownOperationError: an operation kind has no registered handler
//   - PatchMismatchError: invert was asked to undo operations that do not
//     fit the supplied document
//   - ConfigError: invalid option values
//
// # Usage with errors.Is
//
//	doc, err := patch.Apply(doc, ops, patch.WithStrict(true))
//	if errors.Is(err, patcherrors.ErrTestFailed) {
//	    // a test operation rejected the batch
//	}
//
//	var opErr *patcherrors.OperationError
//	if errors.As(err, &opErr) {
//	    fmt.Println("failed at", opErr.Index, opErr.Path)
//	}
package patcherrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrNotFound indicates that a path (or one of its ancestors) does not exist.
	ErrNotFound = errors.New("path not found")

	// ErrInvalidIndex indicates an array index that is malformed or out of range.
	ErrInvalidIndex = errors.New("invalid array index")

	// ErrMissingValue indicates an operation that requires a value was given none.
	ErrMissingValue = errors.New("missing value")

	// ErrTestFailed indicates a test operation found a different value.
	ErrTestFailed = errors.New("test failed")

	// ErrUnknownOperation indicates an operation kind with no registered handler.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrPatchMismatch indicates operations that cannot be inverted against
	// the supplied document.
	ErrPatchMismatch = errors.New("patch mismatch")

	// ErrInvalidArgument indicates a malformed path or argument.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// OperationError describes why a single operation could not be applied.
type OperationError struct {
	// Index is the position of the operation in its list (-1 if unknown)
	Index int
	// Op is the operation kind
	Op string
	// Path is the path the operation addressed
	Path string
	// Kind is one of the sentinel errors above and drives errors.Is
	Kind error
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *OperationError) Error() string {
	msg := "[op:" + e.Op + "]"
	if e.Index >= 0 {
		msg = fmt.Sprintf("operation %d %s", e.Index, msg)
	}
	if e.Kind != nil {
		msg += " " + e.Kind.Error()
	}
	if e.Path != "" {
		msg += fmt.Sprintf(" at %q", e.Path)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *OperationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error's kind.
func (e *OperationError) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

// UnknownOperationError reports an operation kind that no handler serves.
type UnknownOperationError struct {
	// Op is the unrecognised kind
	Op string
	// Index is the position of the operation in its list (-1 if unknown)
	Index int
}

// Error returns a human-readable error message.
func (e *UnknownOperationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("unknown operation %q at index %d", e.Op, e.Index)
	}
	return fmt.Sprintf("unknown operation %q", e.Op)
}

// Is reports whether target matches this error type.
func (e *UnknownOperationError) Is(target error) bool {
	return target == ErrUnknownOperation
}

// PatchMismatchError reports an operation whose target could not be found in
// the document it was supposed to have been applied to.
type PatchMismatchError struct {
	// Index is the position of the operation in its list
	Index int
	// Op is the operation kind
	Op string
	// Path is the path that could not be walked
	Path string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *PatchMismatchError) Error() string {
	msg := fmt.Sprintf("patch mismatch: operation %d [op:%s]", e.Index, e.Op)
	if e.Path != "" {
		msg += fmt.Sprintf(" at %q", e.Path)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *PatchMismatchError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *PatchMismatchError) Is(target error) bool {
	return target == ErrPatchMismatch
}

// ConfigError represents an invalid option value.
type ConfigError struct {
	// Option is the name of the configuration option
	Option string
	// Value is the invalid value (optional)
	Value any
	// Message describes the configuration problem
	Message string
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
