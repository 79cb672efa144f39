package property

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFluid is returned for a fluid the service has no data for.
	ErrUnsupportedFluid = errors.New("unsupported fluid")

	// ErrUnsupportedState is returned for a state combination the service cannot evaluate,
	// such as a transport property inside the two-phase dome.
	ErrUnsupportedState = errors.New("unsupported state")

	// ErrOutOfRange is returned when the state lies outside the valid range of the data.
	ErrOutOfRange = errors.New("state out of range")
)

// LookupError records a failed property lookup and the state that caused it.
type LookupError struct {
	Property Property
	Fluid    Fluid
	Var1     StateVar
	Val1     float64
	Var2     StateVar
	Val2     float64
	Err      error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("property lookup %s(%s=%g, %s=%g) of %s: %v",
		e.Property, e.Var1, e.Val1, e.Var2, e.Val2, e.Fluid, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}
