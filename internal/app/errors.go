package app

import (
	"errors"
	"fmt"
)

// API errors.
var (
	// ErrClosed indicates the API has been closed.
	ErrClosed = errors.New("api closed")

	// ErrNilHandler indicates a nil handler was registered.
	ErrNilHandler = errors.New("nil handler")
)

// OperationError reports a failed API operation.
type OperationError struct {
	Op     string // operation name, e.g. "add default handlers"
	Target string // what it acted on, e.g. a script path
	Err    error
}

// Error implements error.
func (e *OperationError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *OperationError) Unwrap() error {
	return e.Err
}
