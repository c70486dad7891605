package reactor

import (
	"errors"
	"fmt"
)

var (
	// ErrParameterBounds indicates a scalar outside its physical range.
	ErrParameterBounds = errors.New("reactor: parameter out of valid bounds")

	// ErrStepBudget indicates final time / time step needs more samples than MaxSamples allows.
	ErrStepBudget = errors.New("reactor: step count exceeds sample budget")
)

// ValidationError wraps a bounds error with the offending field.
type ValidationError struct {
	Field   string
	Value   float64
	Wrapped error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s = %g: %v", e.Field, e.Value, e.Wrapped)
}

func (e *ValidationError) Unwrap() error {
	return e.Wrapped
}
