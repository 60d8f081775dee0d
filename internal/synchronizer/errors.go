package synchronizer

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument reports malformed setter or configuration input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound reports a lookup (element id, variable name) that found nothing.
	ErrNotFound = errors.New("not found")
	// ErrUnsupportedOperation reports a destination or field shape that does
	// not offer the capability an operation needs.
	ErrUnsupportedOperation = errors.New("unsupported operation")
	// ErrNotYetSupported marks branches that are deliberately unimplemented:
	// operators, expressions, formulas, lists of updatables, string selectors.
	ErrNotYetSupported = errors.New("not yet supported")
)

// TargetError is returned by Process when a target fails. Targets after
// Index were not processed.
type TargetError struct {
	Index int
	Err   error
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("target %d: %v", e.Index, e.Err)
}

func (e *TargetError) Unwrap() error {
	return e.Err
}
