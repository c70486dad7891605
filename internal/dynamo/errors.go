package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for integration.
var (
	// ErrInvalidState indicates a state vector holding NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrDimensionMismatch indicates mismatched state/system dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")
)

// SimulationError wraps an error with the step at which it happened.
type SimulationError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%g): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}

// CheckState verifies x against the dimension of dyn and rejects
// non-finite values.
func CheckState(dyn System, x State) error {
	if len(x) != dyn.StateDim() {
		return fmt.Errorf("%w: state has %d values, system wants %d", ErrDimensionMismatch, len(x), dyn.StateDim())
	}
	if !x.IsValid() {
		return ErrInvalidState
	}
	return nil
}
