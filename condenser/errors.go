package condenser

import "errors"

var (
	// ErrInvalidGeometry reports a nonpositive coil dimension or a row pitch not smaller
	// than the coil length.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrInvalidFlowRate reports a nonpositive mass or volumetric flow, or an invalid
	// circuit count.
	ErrInvalidFlowRate = errors.New("invalid flow rate")

	// ErrInvalidState reports refrigerant temperatures out of cycle order.
	ErrInvalidState = errors.New("invalid refrigerant state")

	// ErrZeroCoefficient is returned by OverallU when a film coefficient is not positive.
	ErrZeroCoefficient = errors.New("heat-transfer coefficient must be positive")

	// ErrUnknownOption reports an unrecognized correlation or property source.
	ErrUnknownOption = errors.New("unknown option")
)
