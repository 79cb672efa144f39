package property

import (
	"fmt"
	"math"
)

// Atmospheric pressure, Pa
const AtmosphericPressure = 101325.0

// Specific gas constant of dry air, J/(kg K)
const gasConstantAir = 287.058

const (
	airTemperatureMin = 200.0 // K
	airTemperatureMax = 600.0 // K
	airPressureMax    = 2.0e6 // Pa
)

/*
Evaluates a dry-air property as an ideal gas.

	Args:
	    prop: property to evaluate
	    s: state, temperature and pressure are required

	Returns:
	    property value in SI units

	Notes:
	    density from the ideal gas law, viscosity and conductivity from Sutherland's law,
	    specific heat from a quadratic fit valid for 200-600 K. Enthalpy is referenced to
	    0 J/kg at 0 degree C.
*/
func airLookup(prop Property, s state) (float64, error) {
	if s.hasQ {
		return 0, fmt.Errorf("%w: quality is not defined for air", ErrUnsupportedState)
	}
	if !s.hasT || !s.hasP {
		return 0, fmt.Errorf("%w: air requires temperature and pressure", ErrUnsupportedState)
	}
	if s.t < airTemperatureMin || s.t > airTemperatureMax {
		return 0, fmt.Errorf("%w: air temperature %g K outside [%g, %g]", ErrOutOfRange, s.t, airTemperatureMin, airTemperatureMax)
	}
	if s.p > airPressureMax {
		return 0, fmt.Errorf("%w: air pressure %g Pa above %g", ErrOutOfRange, s.p, airPressureMax)
	}

	switch prop {
	case Density:
		return s.p / (gasConstantAir * s.t), nil
	case Viscosity:
		return getMuAir(s.t), nil
	case Conductivity:
		return getKAir(s.t), nil
	case SpecificHeat:
		return getCpAir(s.t), nil
	case Enthalpy:
		// cp integrated from 0 degree C
		const t0 = 273.15
		return 1002.5*(s.t-t0) + 275e-6*(math.Pow(s.t-200.0, 3)-math.Pow(t0-200.0, 3))/3.0, nil
	case Pressure:
		return s.p, nil
	default:
		return 0, fmt.Errorf("%w: property %q", ErrUnsupportedState, prop)
	}
}

// Dynamic viscosity of air, Pa s
func getMuAir(t float64) float64 {
	const mu0, t0, sutherland = 1.716e-5, 273.15, 110.4
	return mu0 * math.Pow(t/t0, 1.5) * (t0 + sutherland) / (t + sutherland)
}

// Thermal conductivity of air, W/(m K)
func getKAir(t float64) float64 {
	const k0, t0, sutherland = 0.0241, 273.15, 194.0
	return k0 * math.Pow(t/t0, 1.5) * (t0 + sutherland) / (t + sutherland)
}

// Specific heat of air at constant pressure, J/(kg K)
func getCpAir(t float64) float64 {
	return 1002.5 + 275e-6*(t-200.0)*(t-200.0)
}
