package condenser

import (
	"fmt"
	"math"

	"condenser_calc/property"
)

// AirProperties are the air properties the air-side correlation needs.
type AirProperties struct {
	Density      float64 `json:"density"`       // kg/m3
	Viscosity    float64 `json:"viscosity"`     // Pa s
	SpecificHeat float64 `json:"specific_heat"` // J/(kg K)
	Conductivity float64 `json:"conductivity"`  // W/(m K)
}

// FixedAirProperties returns constant air properties near 45 degree C.
func FixedAirProperties() AirProperties {
	return AirProperties{
		Density:      rhoAirFixed,
		Viscosity:    muAirFixed,
		SpecificHeat: cpAirFixed,
		Conductivity: kAirFixed,
	}
}

/*
Looks up air properties at atmospheric pressure.

	Args:
	    svc: property service
	    theta: air temperature, degree C

	Returns:
	    AirProperties, or the first lookup failure
*/
func LookupAirProperties(svc property.Service, theta float64) (AirProperties, error) {
	t := theta + zeroCelsius
	get := func(prop property.Property) (float64, error) {
		return svc.Lookup(prop, property.StateTemperature, t, property.StatePressure, property.AtmosphericPressure, property.Air)
	}

	var p AirProperties
	var err error
	if p.Density, err = get(property.Density); err != nil {
		return p, err
	}
	if p.Viscosity, err = get(property.Viscosity); err != nil {
		return p, err
	}
	if p.SpecificHeat, err = get(property.SpecificHeat); err != nil {
		return p, err
	}
	if p.Conductivity, err = get(property.Conductivity); err != nil {
		return p, err
	}
	return p, nil
}

// Prandtl returns cp mu / k.
func (p AirProperties) Prandtl() float64 {
	return p.SpecificHeat * p.Viscosity / p.Conductivity
}

// CapacityRate returns the heat capacity rate of a volumetric flow, W/K.
func (p AirProperties) CapacityRate(flow float64) float64 {
	return p.Density * flow * p.SpecificHeat
}

// AirStream is the air crossing the coil.
type AirStream struct {
	Flow             float64 // m3/s
	InletTemperature float64 // degree C
	Area             float64 // flow cross-section, m2
}

// Velocity returns the mean velocity through the flow area, m/s.
func (s AirStream) Velocity() float64 {
	return s.Flow / s.Area
}

// AirSideResult holds the air-side dimensionless numbers and film coefficient.
type AirSideResult struct {
	Velocity float64 `json:"velocity"` // m/s
	Reynolds float64 `json:"reynolds"`
	Prandtl  float64 `json:"prandtl"`
	Nusselt  float64 `json:"nusselt"`
	H        float64 `json:"h"` // W/(m2 K)
}

const laminarLimit = 2300.0

/*
Nusselt number of the air side.

	Args:
	    re: Reynolds number, -
	    pr: Prandtl number, -

	Notes:
	    FinnedBank:   Nu = 0.41 Re^0.6 Pr^(1/3)
	    InternalFlow: Nu = 3.66 below Re 2300, otherwise 0.023 Re^0.8 Pr^0.3
*/
func (c AirCorrelation) Nusselt(re, pr float64) (float64, error) {
	switch c {
	case FinnedBank:
		const C, m = 0.41, 0.6
		return C * math.Pow(re, m) * math.Pow(pr, 1.0/3.0), nil
	case InternalFlow:
		if re < laminarLimit {
			return 3.66, nil
		}
		return dittusBoelter(re, pr, 0.3), nil
	default:
		return 0, fmt.Errorf("%w: air correlation %q", ErrUnknownOption, c)
	}
}

// EvaluateAirSide computes the air-side film coefficient on a tube of outer diameter d, m.
func EvaluateAirSide(p AirProperties, s AirStream, d float64, c AirCorrelation) (AirSideResult, error) {
	if !(s.Area > 0) {
		return AirSideResult{}, fmt.Errorf("%w: air flow area must be positive, got %g", ErrInvalidGeometry, s.Area)
	}
	if !(d > 0) {
		return AirSideResult{}, fmt.Errorf("%w: tube diameter must be positive, got %g", ErrInvalidGeometry, d)
	}
	if !(s.Flow > 0) {
		return AirSideResult{}, fmt.Errorf("%w: airflow must be positive, got %g", ErrInvalidFlowRate, s.Flow)
	}

	v := s.Velocity()
	re := p.Density * v * d / p.Viscosity
	pr := p.Prandtl()
	nu, err := c.Nusselt(re, pr)
	if err != nil {
		return AirSideResult{}, err
	}

	return AirSideResult{
		Velocity: v,
		Reynolds: re,
		Prandtl:  pr,
		Nusselt:  nu,
		H:        nu * p.Conductivity / d,
	}, nil
}
