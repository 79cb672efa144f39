package property

import (
	"embed"
	"fmt"
	"io/fs"
	"math"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

//go:embed data/*.csv
var dataFS embed.FS

const (
	zeroCelsius = 273.15

	// Relaxation length of the superheated-vapor departure from the ideal gas, K
	superheatRelaxation = 20.0

	// Tolerance when classifying a (T, P) state against the saturation line, K
	saturationTolerance = 1e-6

	universalGasConstant = 8314.462618 // J/(kmol K)
)

// fluidRow is one line of fluids.csv.
type fluidRow struct {
	Name         string  `csv:"name"`
	Table        string  `csv:"table"`
	MolarMass    float64 `csv:"molar_mass"`      // kg/kmol
	Cp0A         float64 `csv:"cp0_a_kj"`        // ideal-gas specific heat at 0 degree C, kJ/(kg K)
	Cp0B         float64 `csv:"cp0_b_kj"`        // slope of ideal-gas specific heat, kJ/(kg K2)
	MuSlope      float64 `csv:"mu_slope_upas"`   // vapor viscosity slope along an isobar, uPa s/K
	KSlope       float64 `csv:"k_slope_mw"`      // vapor conductivity slope along an isobar, mW/(m K2)
	MaxSuperheat float64 `csv:"max_superheat_k"` // K
}

// saturationRow is one line of a refrigerant saturation table.
type saturationRow struct {
	TemperatureC float64 `csv:"temperature_c"`
	PBubble      float64 `csv:"p_bubble_kpa"`
	PDew         float64 `csv:"p_dew_kpa"`
	RhoLiquid    float64 `csv:"rho_liquid"`
	RhoVapor     float64 `csv:"rho_vapor"`
	HLiquid      float64 `csv:"h_liquid_kj"`
	HVapor       float64 `csv:"h_vapor_kj"`
	CpLiquid     float64 `csv:"cp_liquid_kj"`
	CpVapor      float64 `csv:"cp_vapor_kj"`
	MuLiquid     float64 `csv:"mu_liquid_upas"`
	MuVapor      float64 `csv:"mu_vapor_upas"`
	KLiquid      float64 `csv:"k_liquid_mw"`
	KVapor       float64 `csv:"k_vapor_mw"`
}

// phaseCurve holds the properties of one saturated phase as functions of temperature.
type phaseCurve struct {
	density      interp.PiecewiseLinear
	enthalpy     interp.PiecewiseLinear
	specificHeat interp.PiecewiseLinear
	viscosity    interp.PiecewiseLinear
	conductivity interp.PiecewiseLinear
}

func (c *phaseCurve) fit(t []float64, rho, h, cp, mu, k []float64) error {
	for _, f := range []struct {
		pl *interp.PiecewiseLinear
		ys []float64
	}{
		{&c.density, rho},
		{&c.enthalpy, h},
		{&c.specificHeat, cp},
		{&c.viscosity, mu},
		{&c.conductivity, k},
	} {
		if err := f.pl.Fit(t, f.ys); err != nil {
			return err
		}
	}
	return nil
}

func (c *phaseCurve) at(prop Property, t float64) (float64, error) {
	switch prop {
	case Density:
		return c.density.Predict(t), nil
	case Enthalpy:
		return c.enthalpy.Predict(t), nil
	case SpecificHeat:
		return c.specificHeat.Predict(t), nil
	case Viscosity:
		return c.viscosity.Predict(t), nil
	case Conductivity:
		return c.conductivity.Predict(t), nil
	default:
		return 0, fmt.Errorf("%w: property %q", ErrUnsupportedState, prop)
	}
}

// superheatModel relaxes the saturated-vapor state toward an ideal gas along an isobar.
type superheatModel struct {
	r            float64 // J/(kg K)
	cp0A         float64 // J/(kg K)
	cp0B         float64 // J/(kg K2)
	muSlope      float64 // Pa s/K
	kSlope       float64 // W/(m K2)
	maxSuperheat float64 // K
}

func (m superheatModel) cp0(t float64) float64 {
	return m.cp0A + m.cp0B*(t-zeroCelsius)
}

// refrigerant is the property data of one refrigerant.
type refrigerant struct {
	fluid      Fluid
	tMin, tMax float64 // K

	lnPBubble interp.PiecewiseLinear // ln(Pa) vs K
	lnPDew    interp.PiecewiseLinear
	tBubble   interp.PiecewiseLinear // K vs ln(Pa)
	tDew      interp.PiecewiseLinear

	lnPBubbleMin, lnPBubbleMax float64
	lnPDewMin, lnPDewMax       float64

	liquid phaseCurve
	vapor  phaseCurve
	model  superheatModel
}

// Table is a Service backed by saturation tables for the refrigerants and an ideal-gas
// model for air. It is read-only after construction and safe for concurrent use.
type Table struct {
	refrigerants map[Fluid]*refrigerant
}

var _ Service = (*Table)(nil)

// NewTable loads the fluid data embedded in the binary.
func NewTable() (*Table, error) {
	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		return nil, err
	}
	return LoadTable(sub)
}

// LoadTable loads fluids.csv and the saturation tables it references from fsys.
func LoadTable(fsys fs.FS) (*Table, error) {
	f, err := fsys.Open("fluids.csv")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var fluids []*fluidRow
	if err := gocsv.Unmarshal(f, &fluids); err != nil {
		return nil, fmt.Errorf("fluids.csv: %w", err)
	}

	t := &Table{refrigerants: make(map[Fluid]*refrigerant, len(fluids))}
	for _, row := range fluids {
		fluid, err := ParseFluid(row.Name)
		if err != nil {
			return nil, fmt.Errorf("fluids.csv: %w", err)
		}
		if fluid == Air {
			return nil, fmt.Errorf("fluids.csv: air is built in")
		}
		r, err := loadRefrigerant(fsys, fluid, row)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", row.Table, err)
		}
		t.refrigerants[fluid] = r
	}
	return t, nil
}

func loadRefrigerant(fsys fs.FS, fluid Fluid, fr *fluidRow) (*refrigerant, error) {
	if fr.MolarMass <= 0 || fr.Cp0A <= 0 || fr.MaxSuperheat <= 0 {
		return nil, fmt.Errorf("invalid model constants for %s", fluid)
	}

	f, err := fsys.Open(fr.Table)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []*saturationRow
	if err := gocsv.Unmarshal(f, &rows); err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("need at least 2 rows, got %d", len(rows))
	}

	n := len(rows)
	col := func(get func(row *saturationRow) float64, scale float64) []float64 {
		ret := make([]float64, n)
		for i := range rows {
			ret[i] = get(rows[i]) * scale
		}
		return ret
	}

	t := make([]float64, n)
	for i := range rows {
		t[i] = rows[i].TemperatureC + zeroCelsius
		if i > 0 && t[i] <= t[i-1] {
			return nil, fmt.Errorf("temperature not increasing at row %d", i+1)
		}
	}

	pBubble := col(func(row *saturationRow) float64 { return row.PBubble }, 1e3)
	pDew := col(func(row *saturationRow) float64 { return row.PDew }, 1e3)
	rhoL := col(func(row *saturationRow) float64 { return row.RhoLiquid }, 1)
	rhoV := col(func(row *saturationRow) float64 { return row.RhoVapor }, 1)
	hL := col(func(row *saturationRow) float64 { return row.HLiquid }, 1e3)
	hV := col(func(row *saturationRow) float64 { return row.HVapor }, 1e3)
	cpL := col(func(row *saturationRow) float64 { return row.CpLiquid }, 1e3)
	cpV := col(func(row *saturationRow) float64 { return row.CpVapor }, 1e3)
	muL := col(func(row *saturationRow) float64 { return row.MuLiquid }, 1e-6)
	muV := col(func(row *saturationRow) float64 { return row.MuVapor }, 1e-6)
	kL := col(func(row *saturationRow) float64 { return row.KLiquid }, 1e-3)
	kV := col(func(row *saturationRow) float64 { return row.KVapor }, 1e-3)

	for _, c := range [][]float64{pBubble, pDew, rhoL, rhoV, cpL, cpV, muL, muV, kL, kV} {
		if floats.Min(c) <= 0 {
			return nil, fmt.Errorf("non-positive property value")
		}
	}

	lnPBubble := make([]float64, n)
	lnPDew := make([]float64, n)
	for i := 0; i < n; i++ {
		if pDew[i] > pBubble[i] {
			return nil, fmt.Errorf("dew pressure above bubble pressure at row %d", i+1)
		}
		lnPBubble[i] = math.Log(pBubble[i])
		lnPDew[i] = math.Log(pDew[i])
		if i > 0 && (lnPBubble[i] <= lnPBubble[i-1] || lnPDew[i] <= lnPDew[i-1]) {
			return nil, fmt.Errorf("saturation pressure not increasing at row %d", i+1)
		}
	}

	r := &refrigerant{
		fluid:        fluid,
		tMin:         t[0],
		tMax:         t[n-1],
		lnPBubbleMin: floats.Min(lnPBubble),
		lnPBubbleMax: floats.Max(lnPBubble),
		lnPDewMin:    floats.Min(lnPDew),
		lnPDewMax:    floats.Max(lnPDew),
		model: superheatModel{
			r:            universalGasConstant / fr.MolarMass,
			cp0A:         fr.Cp0A * 1e3,
			cp0B:         fr.Cp0B * 1e3,
			muSlope:      fr.MuSlope * 1e-6,
			kSlope:       fr.KSlope * 1e-3,
			maxSuperheat: fr.MaxSuperheat,
		},
	}

	for _, f := range []struct {
		pl     *interp.PiecewiseLinear
		xs, ys []float64
	}{
		{&r.lnPBubble, t, lnPBubble},
		{&r.lnPDew, t, lnPDew},
		{&r.tBubble, lnPBubble, t},
		{&r.tDew, lnPDew, t},
	} {
		if err := f.pl.Fit(f.xs, f.ys); err != nil {
			return nil, err
		}
	}
	if err := r.liquid.fit(t, rhoL, hL, cpL, muL, kL); err != nil {
		return nil, err
	}
	if err := r.vapor.fit(t, rhoV, hV, cpV, muV, kV); err != nil {
		return nil, err
	}

	return r, nil
}

// Lookup implements Service.
func (tb *Table) Lookup(prop Property, v1 StateVar, x1 float64, v2 StateVar, x2 float64, fluid Fluid) (float64, error) {
	v, err := tb.lookup(prop, v1, x1, v2, x2, fluid)
	if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
		err = fmt.Errorf("%w: non-finite result", ErrOutOfRange)
	}
	if err != nil {
		return 0, &LookupError{
			Property: prop,
			Fluid:    fluid,
			Var1:     v1,
			Val1:     x1,
			Var2:     v2,
			Val2:     x2,
			Err:      err,
		}
	}
	return v, nil
}

func (tb *Table) lookup(prop Property, v1 StateVar, x1 float64, v2 StateVar, x2 float64, fluid Fluid) (float64, error) {
	s, err := newState(v1, x1, v2, x2)
	if err != nil {
		return 0, err
	}

	if fluid == Air {
		return airLookup(prop, s)
	}

	r, ok := tb.refrigerants[fluid]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFluid, fluid)
	}

	switch {
	case s.hasT && s.hasQ:
		return r.saturated(prop, s.t, s.q)
	case s.hasP && s.hasQ:
		t, err := r.saturationTemperature(s.p, s.q)
		if err != nil {
			return 0, err
		}
		return r.saturated(prop, t, s.q)
	default:
		return r.singlePhase(prop, s.t, s.p)
	}
}

func (r *refrigerant) checkTemperature(t float64) error {
	if t < r.tMin || t > r.tMax {
		return fmt.Errorf("%w: temperature %g K outside [%g, %g] for %s", ErrOutOfRange, t, r.tMin, r.tMax, r.fluid)
	}
	return nil
}

func (r *refrigerant) bubblePressure(t float64) float64 {
	return math.Exp(r.lnPBubble.Predict(t))
}

func (r *refrigerant) dewPressure(t float64) float64 {
	return math.Exp(r.lnPDew.Predict(t))
}

/*
Returns the saturation temperature at pressure p.

	Args:
	    p: pressure, Pa
	    q: quality, -

	Returns:
	    bubble temperature for q = 0, dew temperature for q = 1 and the linear blend
	    of both inside the glide, K
*/
func (r *refrigerant) saturationTemperature(p, q float64) (float64, error) {
	lnP := math.Log(p)
	if lnP < r.lnPBubbleMin || lnP > r.lnPBubbleMax || lnP < r.lnPDewMin || lnP > r.lnPDewMax {
		return 0, fmt.Errorf("%w: saturation pressure %g Pa outside table for %s", ErrOutOfRange, p, r.fluid)
	}
	tb := r.tBubble.Predict(lnP)
	td := r.tDew.Predict(lnP)
	return tb + q*(td-tb), nil
}

// saturated evaluates a property on the saturation line at temperature t and quality q.
func (r *refrigerant) saturated(prop Property, t, q float64) (float64, error) {
	if err := r.checkTemperature(t); err != nil {
		return 0, err
	}

	switch prop {
	case Pressure:
		pb := r.bubblePressure(t)
		return pb + q*(r.dewPressure(t)-pb), nil
	case Enthalpy:
		hl := r.liquid.enthalpy.Predict(t)
		return hl + q*(r.vapor.enthalpy.Predict(t)-hl), nil
	case Density:
		if q == 0 {
			return r.liquid.density.Predict(t), nil
		}
		// homogeneous mixture
		return 1.0 / ((1.0-q)/r.liquid.density.Predict(t) + q/r.vapor.density.Predict(t)), nil
	}

	switch q {
	case 0:
		return r.liquid.at(prop, t)
	case 1:
		return r.vapor.at(prop, t)
	default:
		return 0, fmt.Errorf("%w: %s inside the two-phase region (quality %g)", ErrUnsupportedState, prop, q)
	}
}

// singlePhase evaluates a property at temperature t and pressure p off the saturation line.
func (r *refrigerant) singlePhase(prop Property, t, p float64) (float64, error) {
	lnP := math.Log(p)
	inBubble := lnP >= r.lnPBubbleMin && lnP <= r.lnPBubbleMax
	inDew := lnP >= r.lnPDewMin && lnP <= r.lnPDewMax

	if inBubble {
		if tb := r.tBubble.Predict(lnP); t <= tb+saturationTolerance {
			return r.compressedLiquid(prop, t, p)
		}
	}
	if inDew {
		if td := r.tDew.Predict(lnP); t >= td-saturationTolerance {
			return r.superheated(prop, t, p, td)
		}
	}
	if inBubble && inDew {
		return 0, fmt.Errorf("%w: T=%g K, P=%g Pa lies inside the two-phase region of %s", ErrUnsupportedState, t, p, r.fluid)
	}
	return 0, fmt.Errorf("%w: pressure %g Pa outside table for %s", ErrOutOfRange, p, r.fluid)
}

/*
Evaluates a subcooled (compressed) liquid property.

	Notes:
	    transport properties and specific heat are taken on the saturated-liquid line at t;
	    enthalpy adds the flow work (p - p_bubble(t)) / rho of an incompressible liquid.
*/
func (r *refrigerant) compressedLiquid(prop Property, t, p float64) (float64, error) {
	if err := r.checkTemperature(t); err != nil {
		return 0, err
	}
	switch prop {
	case Pressure:
		return p, nil
	case Enthalpy:
		rho := r.liquid.density.Predict(t)
		return r.liquid.enthalpy.Predict(t) + (p-r.bubblePressure(t))/rho, nil
	default:
		return r.liquid.at(prop, t)
	}
}

/*
Evaluates a superheated vapor property.

	Args:
	    prop: property
	    t: temperature, K
	    p: pressure, Pa
	    td: dew temperature at p, K

	Notes:
	    specific heat relaxes from the saturated-vapor value to the ideal-gas value
	    with length superheatRelaxation; enthalpy is its integral from the dew point.
	    The compressibility factor relaxes from its saturated value toward 1 as (td/t)^3.
*/
func (r *refrigerant) superheated(prop Property, t, p, td float64) (float64, error) {
	if err := r.checkTemperature(td); err != nil {
		return 0, err
	}
	dT := math.Max(0, t-td)
	if dT > r.model.maxSuperheat {
		return 0, fmt.Errorf("%w: superheat %g K above %g K for %s", ErrOutOfRange, dT, r.model.maxSuperheat, r.fluid)
	}

	m := r.model
	departure := r.vapor.specificHeat.Predict(td) - m.cp0(td)
	decay := math.Exp(-dT / superheatRelaxation)

	switch prop {
	case Pressure:
		return p, nil
	case SpecificHeat:
		return m.cp0(t) + departure*decay, nil
	case Enthalpy:
		ideal := m.cp0A*dT + m.cp0B/2*(math.Pow(t-zeroCelsius, 2)-math.Pow(td-zeroCelsius, 2))
		return r.vapor.enthalpy.Predict(td) + ideal + departure*superheatRelaxation*(1-decay), nil
	case Density:
		zSat := p / (r.vapor.density.Predict(td) * m.r * td)
		z := 1 - (1-zSat)*math.Pow(td/t, 3)
		return p / (z * m.r * t), nil
	case Viscosity:
		return r.vapor.viscosity.Predict(td) + m.muSlope*dT, nil
	case Conductivity:
		return r.vapor.conductivity.Predict(td) + m.kSlope*dT, nil
	default:
		return 0, fmt.Errorf("%w: property %q", ErrUnsupportedState, prop)
	}
}
