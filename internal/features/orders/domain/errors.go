package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks malformed or out-of-range input to a value
	// object or operation. Caller-fixable, never retried.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStateConflict marks an operation not permitted in the current
	// aggregate state or by the current actor.
	ErrStateConflict = errors.New("state conflict")
)

// InvalidArgumentf builds an ErrInvalidArgument carrying the violated rule
// in natural language, suitable for direct display.
func InvalidArgumentf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// StateConflictf builds an ErrStateConflict carrying the violated rule in
// natural language, suitable for direct display.
func StateConflictf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrStateConflict, fmt.Sprintf(format, args...))
}
