package script

import "errors"

var (
	// ErrStateClosed is returned when using a State after Close.
	ErrStateClosed = errors.New("lua state closed")

	// ErrFunctionNotFound is returned by Call for a missing global.
	ErrFunctionNotFound = errors.New("lua function not found")
)
