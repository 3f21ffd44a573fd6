package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrAlreadyRunning indicates Run was called while a run is in progress.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrCompileFailed indicates at least one input failed to compile.
	ErrCompileFailed = errors.New("compilation failed")

	// ErrNotBound indicates a looked-up key has no binding.
	ErrNotBound = errors.New("key is not bound")

	// ErrWatchNeedsFiles indicates watch mode was requested without files.
	ErrWatchNeedsFiles = errors.New("watch mode needs at least one file")

	// ErrLookupFormat indicates an output format lookup mode cannot print.
	ErrLookupFormat = errors.New("format not supported for lookup")
)

// OperationError represents an error that occurred during a specific operation.
type OperationError struct {
	Op      string // Operation name (e.g., "compile", "lookup", "script")
	Target  string // Target of the operation (e.g., file path, key)
	Context string // Additional context
	Err     error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{
		Op:     op,
		Target: target,
		Err:    err,
	}
}

// WithContext adds context to the error.
// Safe to call on nil receiver - returns nil.
func (e *OperationError) WithContext(ctx string) *OperationError {
	if e == nil {
		return nil
	}
	e.Context = ctx
	return e
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}

	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Context != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Context)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// InitError reports a component that failed to initialize in New.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}
