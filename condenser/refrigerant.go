package condenser

import (
	"fmt"
	"math"

	"condenser_calc/property"
)

// Phase is the refrigerant phase of a zone.
type Phase int

const (
	SuperheatedVapor  Phase = iota // desuperheating zone inlet
	SaturatedTwoPhase              // condensing zone
	SubcooledLiquid                // subcooling zone outlet
)

var phaseNames = [...]string{"superheated-vapor", "saturated-two-phase", "subcooled-liquid"}

// String returns the phase name, or Phase(n) for values outside the enumeration.
func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// MarshalText encodes the phase by its String name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (p *Phase) UnmarshalText(text []byte) error {
	for _, c := range []Phase{SuperheatedVapor, SaturatedTwoPhase, SubcooledLiquid} {
		if c.String() == string(text) {
			*p = c
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// FlowState is a point of the refrigerant cycle.
type FlowState struct {
	Phase       Phase
	Temperature float64 // degree C
	Pressure    float64 // Pa, single-phase states
	Quality     float64 // -, two-phase state
}

// RefrigerantSideResult holds the refrigerant-side numbers of one zone.
type RefrigerantSideResult struct {
	Phase        Phase   `json:"phase"`
	Reynolds     float64 `json:"reynolds"`
	Prandtl      float64 `json:"prandtl"`
	Nusselt      float64 `json:"nusselt"`
	Enhancement  float64 `json:"enhancement"` // two-phase multiplier on Nu, 1 for single phase
	H            float64 `json:"h"`           // W/(m2 K)
	SpecificHeat float64 `json:"specific_heat"`
}

type transportProperties struct {
	viscosity, specificHeat, conductivity float64
}

func lookupTransport(svc property.Service, fluid property.Fluid, v1 property.StateVar, x1 float64, v2 property.StateVar, x2 float64) (transportProperties, error) {
	var tp transportProperties
	var err error
	if tp.viscosity, err = svc.Lookup(property.Viscosity, v1, x1, v2, x2, fluid); err != nil {
		return tp, err
	}
	if tp.specificHeat, err = svc.Lookup(property.SpecificHeat, v1, x1, v2, x2, fluid); err != nil {
		return tp, err
	}
	if tp.conductivity, err = svc.Lookup(property.Conductivity, v1, x1, v2, x2, fluid); err != nil {
		return tp, err
	}
	return tp, nil
}

// dittusBoelter returns Nu = 0.023 Re^0.8 Pr^n.
func dittusBoelter(re, pr, n float64) float64 {
	return 0.023 * math.Pow(re, 0.8) * math.Pow(pr, n)
}

// internalReynolds returns the mass-flow based Reynolds number 4 m / (pi D mu).
func internalReynolds(massFlow, d, mu float64) float64 {
	return 4 * massFlow / (math.Pi * d * mu)
}

func checkTube(massFlow, d float64) error {
	if !(massFlow > 0) {
		return fmt.Errorf("%w: refrigerant mass flow must be positive, got %g", ErrInvalidFlowRate, massFlow)
	}
	if !(d > 0) {
		return fmt.Errorf("%w: tube diameter must be positive, got %g", ErrInvalidGeometry, d)
	}
	return nil
}

/*
Single-phase film coefficient inside a tube.

	Args:
	    svc: property service
	    fluid: refrigerant
	    st: state with temperature (degree C) and pressure (Pa)
	    massFlow: mass flow through the tube, kg/s
	    d: tube diameter, m

	Returns:
	    RefrigerantSideResult

	Notes:
	    Dittus-Boelter, Nu = 0.023 Re^0.8 Pr^0.4
*/
func SinglePhase(svc property.Service, fluid property.Fluid, st FlowState, massFlow, d float64) (RefrigerantSideResult, error) {
	if err := checkTube(massFlow, d); err != nil {
		return RefrigerantSideResult{}, err
	}

	tp, err := lookupTransport(svc, fluid,
		property.StateTemperature, st.Temperature+zeroCelsius,
		property.StatePressure, st.Pressure)
	if err != nil {
		return RefrigerantSideResult{}, err
	}

	re := internalReynolds(massFlow, d, tp.viscosity)
	pr := tp.specificHeat * tp.viscosity / tp.conductivity
	nu := dittusBoelter(re, pr, 0.4)

	return RefrigerantSideResult{
		Phase:        st.Phase,
		Reynolds:     re,
		Prandtl:      pr,
		Nusselt:      nu,
		Enhancement:  1,
		H:            nu * tp.conductivity / d,
		SpecificHeat: tp.specificHeat,
	}, nil
}

// ShahEnhancement returns the two-phase multiplier 1 + 3.8 x^0.8 (1 - x) on the
// liquid-only Nusselt number at quality x.
func ShahEnhancement(x float64) float64 {
	return 1 + 3.8*math.Pow(x, 0.8)*(1-x)
}

/*
Condensation film coefficient inside a tube.

	Args:
	    svc: property service
	    fluid: refrigerant
	    st: saturated state with temperature (degree C) and quality
	    massFlow: mass flow through the tube, kg/s
	    d: tube diameter, m

	Notes:
	    liquid-only Dittus-Boelter with saturated-liquid properties, multiplied by the
	    Shah enhancement at st.Quality. The zone is represented by a single quality
	    (DesignQuality); the enhancement is not integrated over the zone.
*/
func Condensation(svc property.Service, fluid property.Fluid, st FlowState, massFlow, d float64) (RefrigerantSideResult, error) {
	if err := checkTube(massFlow, d); err != nil {
		return RefrigerantSideResult{}, err
	}
	if st.Quality < 0 || st.Quality > 1 {
		return RefrigerantSideResult{}, fmt.Errorf("%w: quality %g outside [0, 1]", ErrInvalidState, st.Quality)
	}

	tp, err := lookupTransport(svc, fluid,
		property.StateTemperature, st.Temperature+zeroCelsius,
		property.StateQuality, 0)
	if err != nil {
		return RefrigerantSideResult{}, err
	}

	re := internalReynolds(massFlow, d, tp.viscosity)
	pr := tp.specificHeat * tp.viscosity / tp.conductivity
	enhancement := ShahEnhancement(st.Quality)
	nu := dittusBoelter(re, pr, 0.4) * enhancement

	return RefrigerantSideResult{
		Phase:        st.Phase,
		Reynolds:     re,
		Prandtl:      pr,
		Nusselt:      nu,
		Enhancement:  enhancement,
		H:            nu * tp.conductivity / d,
		SpecificHeat: tp.specificHeat,
	}, nil
}
