package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound       = errors.New("resource not found")
	ErrRunNotFound    = fmt.Errorf("%w: run", ErrNotFound)
	ErrColumnNotFound = fmt.Errorf("%w: column", ErrNotFound)

	// Configuration errors, raised before any row is read
	ErrInvalidJob         = errors.New("invalid test configuration")
	ErrNoTestColumns      = fmt.Errorf("%w: no test columns selected", ErrInvalidJob)
	ErrConfidenceRange    = fmt.Errorf("%w: confidence interval probability out of range", ErrInvalidJob)
	ErrGroupLabelUnset    = fmt.Errorf("%w: group label unset", ErrInvalidJob)
	ErrGroupColumnMissing = fmt.Errorf("%w: grouping column unset", ErrInvalidJob)
	ErrUnknownKind        = fmt.Errorf("%w: unknown test kind", ErrInvalidJob)
	ErrTestValueInvalid   = fmt.Errorf("%w: test value must be finite", ErrInvalidJob)

	// Lifecycle errors
	ErrFinalized     = errors.New("test already finalized")
	ErrMergeMismatch = errors.New("cannot merge tests with different configuration")

	// Execution errors
	ErrCanceled = errors.New("execution canceled")
	ErrRowArity = errors.New("row arity does not match schema")
)

// Error constructors with context
func NewColumnNotFoundError(name string) error {
	return fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidJob, field, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidJob) || errors.Is(err, ErrColumnNotFound)
}

func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}
