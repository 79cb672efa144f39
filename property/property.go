// Package property provides thermophysical properties of the working fluids
// (refrigerants and air) as functions of two state variables.
package property

import (
	"fmt"
	"strings"
)

// Property names a thermophysical property.
type Property string

// Supported properties. Values are SI: kg/m3, Pa s, J/(kg K), W/(m K), Pa, J/kg.
const (
	Density      Property = "density"
	Viscosity    Property = "viscosity"
	SpecificHeat Property = "specific-heat"
	Conductivity Property = "conductivity"
	Pressure     Property = "pressure"
	Enthalpy     Property = "enthalpy"
)

// StateVar names an independent state variable of a lookup.
type StateVar string

const (
	StateTemperature StateVar = "T" // K
	StatePressure    StateVar = "P" // Pa
	StateQuality     StateVar = "Q" // -, 0 = saturated liquid, 1 = saturated vapor
)

// Fluid identifies a working fluid.
type Fluid string

const (
	R134a Fluid = "R134a"
	R407C Fluid = "R407C"
	Air   Fluid = "Air"
)

func (f Fluid) String() string {
	return string(f)
}

// Refrigerants lists the refrigerants selectable as condenser working fluid.
func Refrigerants() []Fluid {
	return []Fluid{R134a, R407C}
}

// ParseFluid converts a name such as "r134a" to a Fluid.
func ParseFluid(s string) (Fluid, error) {
	f, ok := map[string]Fluid{
		"r134a": R134a,
		"r407c": R407C,
		"air":   Air,
	}[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFluid, s)
	}
	return f, nil
}

// Service looks up one property of a fluid at the state fixed by two state variables.
//
// Implementations must be safe for concurrent use and must fail with a *LookupError when
// the fluid or the state combination is unsupported or outside the valid range.
type Service interface {
	Lookup(prop Property, v1 StateVar, x1 float64, v2 StateVar, x2 float64, fluid Fluid) (float64, error)
}

// state is a normalized pair of state variables.
type state struct {
	t, p, q          float64
	hasT, hasP, hasQ bool
}

func newState(v1 StateVar, x1 float64, v2 StateVar, x2 float64) (state, error) {
	var s state
	if v1 == v2 {
		return s, fmt.Errorf("%w: state variable %s given twice", ErrUnsupportedState, v1)
	}
	for _, v := range []struct {
		name  StateVar
		value float64
	}{{v1, x1}, {v2, x2}} {
		switch v.name {
		case StateTemperature:
			s.t, s.hasT = v.value, true
		case StatePressure:
			s.p, s.hasP = v.value, true
		case StateQuality:
			s.q, s.hasQ = v.value, true
		default:
			return s, fmt.Errorf("%w: unknown state variable %q", ErrUnsupportedState, v.name)
		}
	}
	if s.hasT && !(s.t > 0) {
		return s, fmt.Errorf("%w: temperature %g K", ErrOutOfRange, s.t)
	}
	if s.hasP && !(s.p > 0) {
		return s, fmt.Errorf("%w: pressure %g Pa", ErrOutOfRange, s.p)
	}
	if s.hasQ && !(s.q >= 0 && s.q <= 1) {
		return s, fmt.Errorf("%w: quality %g", ErrOutOfRange, s.q)
	}
	return s, nil
}
