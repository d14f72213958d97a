package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// ErrInvalidParameter covers out-of-range probabilities, non-positive
	// counts, and zero effect sizes. Raised synchronously at the call site;
	// every operation is retriable with corrected inputs.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNumericDegeneracy covers computations whose intermediate values
	// collapse (zero or negative variance, degenerate allocation). Signaled
	// rather than silently producing infinite or undefined results.
	ErrNumericDegeneracy = errors.New("numeric degeneracy")
)

// Error constructors with context
func NewInvalidParameterError(param string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidParameter, param, reason)
}

func NewDegeneracyError(quantity string, value float64) error {
	return fmt.Errorf("%w: %s = %g", ErrNumericDegeneracy, quantity, value)
}

// Error checking helpers
func IsInvalidParameter(err error) bool {
	return errors.Is(err, ErrInvalidParameter)
}

func IsNumericDegeneracy(err error) bool {
	return errors.Is(err, ErrNumericDegeneracy)
}
