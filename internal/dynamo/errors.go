package dynamo

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState indicates a position or velocity that is NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	ErrNilProfile = errors.New("dynamo: profile is nil")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	State   ObjectState
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f, x=%g, vx=%g): %v", e.Step, e.Time, e.State.X, e.State.Vx, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
