package condenser

import (
	"fmt"

	"condenser_calc/property"
)

// Input is the full parameter set of one condenser calculation.
// Lengths are in m, temperatures in degree C.
type Input struct {
	Airflow           float64 `json:"airflow" yaml:"airflow"`                         // volumetric air flow rate, m3/s
	Rows              int     `json:"rows" yaml:"rows"`                               // tube rows, -
	TubeOuterDiameter float64 `json:"tube_outer_diameter" yaml:"tube_outer_diameter"` // m
	CoilLength        float64 `json:"coil_length" yaml:"coil_length"`
	CoilHeight        float64 `json:"coil_height" yaml:"coil_height"`
	CoilThickness     float64 `json:"coil_thickness" yaml:"coil_thickness"`
	FinSpacing        float64 `json:"fin_spacing" yaml:"fin_spacing"`
	RowPitch          float64 `json:"row_pitch" yaml:"row_pitch"`
	FreeFlowRatio     float64 `json:"free_flow_ratio" yaml:"free_flow_ratio"` // flow area / face area, -
	Circuits          int     `json:"circuits" yaml:"circuits"`               // 0 derives the count from the tubes

	Refrigerant property.Fluid `json:"refrigerant" yaml:"refrigerant"`
	MassFlow    float64        `json:"mass_flow" yaml:"mass_flow"` // total refrigerant mass flow, kg/s

	SuperheatTemperature  float64 `json:"superheat_temperature" yaml:"superheat_temperature"` // compressor discharge
	CondensingTemperature float64 `json:"condensing_temperature" yaml:"condensing_temperature"`
	SubcoolTemperature    float64 `json:"subcool_temperature" yaml:"subcool_temperature"` // condenser outlet
	AmbientTemperature    float64 `json:"ambient_temperature" yaml:"ambient_temperature"` // air inlet

	DesuperheatArea  float64 `json:"desuperheat_area" yaml:"desuperheat_area"` // m2
	CondensationArea float64 `json:"condensation_area" yaml:"condensation_area"`
	SubcoolArea      float64 `json:"subcool_area" yaml:"subcool_area"`
}

// AirCorrelation selects the air-side Nusselt correlation.
type AirCorrelation string

const (
	// FinnedBank is the external cross-flow correlation for finned tube banks.
	FinnedBank AirCorrelation = "finned-bank"
	// InternalFlow is the laminar/Dittus-Boelter correlation for duct flow.
	InternalFlow AirCorrelation = "internal"
)

// AirPropertySource selects where air properties come from.
type AirPropertySource string

const (
	// FixedAir uses constant air properties near 45 degree C.
	FixedAir AirPropertySource = "fixed"
	// LookupAir asks the property service at the ambient temperature.
	LookupAir AirPropertySource = "lookup"
)

// Options switches the optional stages of the calculation.
type Options struct {
	AirCorrelation AirCorrelation    `json:"air_correlation" yaml:"air_correlation"`
	AirProperties  AirPropertySource `json:"air_properties" yaml:"air_properties"`
	SplitCircuits  bool              `json:"split_circuits" yaml:"split_circuits"` // divide mass flow among circuits
	EvaluateZones  bool              `json:"evaluate_zones" yaml:"evaluate_zones"` // run the NTU zone chain
}

// DefaultOptions enables every stage.
func DefaultOptions() Options {
	return Options{
		AirCorrelation: FinnedBank,
		AirProperties:  LookupAir,
		SplitCircuits:  true,
		EvaluateZones:  true,
	}
}

// DefaultInput returns the reference coil of the calculator: 3/8 in tubes, 2.5 m x 2.0 m,
// R134a at 0.599 kg/s condensing at 57 degree C.
func DefaultInput() Input {
	return Input{
		Airflow:               12.0,
		Rows:                  4,
		TubeOuterDiameter:     0.375 * 0.0254,
		CoilLength:            2.5,
		CoilHeight:            2.0,
		CoilThickness:         0.2,
		FinSpacing:            2.54e-3,
		RowPitch:              0.0254,
		FreeFlowRatio:         0.25,
		Circuits:              0,
		Refrigerant:           property.R134a,
		MassFlow:              0.599,
		SuperheatTemperature:  95.0,
		CondensingTemperature: 57.0,
		SubcoolTemperature:    52.0,
		AmbientTemperature:    35.0,
		DesuperheatArea:       6.0,
		CondensationArea:      36.0,
		SubcoolArea:           4.0,
	}
}

// Validate checks the input before any correlation runs.
func (in Input) Validate() error {
	for _, d := range []struct {
		name  string
		value float64
	}{
		{"tube_outer_diameter", in.TubeOuterDiameter},
		{"coil_length", in.CoilLength},
		{"coil_height", in.CoilHeight},
		{"coil_thickness", in.CoilThickness},
		{"fin_spacing", in.FinSpacing},
		{"row_pitch", in.RowPitch},
		{"free_flow_ratio", in.FreeFlowRatio},
		{"desuperheat_area", in.DesuperheatArea},
		{"condensation_area", in.CondensationArea},
		{"subcool_area", in.SubcoolArea},
	} {
		if !(d.value > 0) {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidGeometry, d.name, d.value)
		}
	}
	if in.FreeFlowRatio > 1 {
		return fmt.Errorf("%w: free_flow_ratio must not exceed 1, got %g", ErrInvalidGeometry, in.FreeFlowRatio)
	}
	if in.Rows < 1 {
		return fmt.Errorf("%w: rows must be at least 1, got %d", ErrInvalidGeometry, in.Rows)
	}
	if in.RowPitch >= in.CoilLength {
		return fmt.Errorf("%w: row_pitch %g must be smaller than coil_length %g", ErrInvalidGeometry, in.RowPitch, in.CoilLength)
	}

	if !(in.Airflow > 0) {
		return fmt.Errorf("%w: airflow must be positive, got %g", ErrInvalidFlowRate, in.Airflow)
	}
	if !(in.MassFlow > 0) {
		return fmt.Errorf("%w: mass_flow must be positive, got %g", ErrInvalidFlowRate, in.MassFlow)
	}
	if in.Circuits < 0 {
		return fmt.Errorf("%w: circuits must not be negative, got %d", ErrInvalidFlowRate, in.Circuits)
	}

	if in.SuperheatTemperature <= in.CondensingTemperature {
		return fmt.Errorf("%w: superheat_temperature %g must exceed condensing_temperature %g",
			ErrInvalidState, in.SuperheatTemperature, in.CondensingTemperature)
	}
	if in.SubcoolTemperature > in.CondensingTemperature {
		return fmt.Errorf("%w: subcool_temperature %g must not exceed condensing_temperature %g",
			ErrInvalidState, in.SubcoolTemperature, in.CondensingTemperature)
	}
	return nil
}

// Validate checks that the options name known correlations and sources.
func (o Options) Validate() error {
	switch o.AirCorrelation {
	case FinnedBank, InternalFlow:
	default:
		return fmt.Errorf("%w: air correlation %q", ErrUnknownOption, o.AirCorrelation)
	}
	switch o.AirProperties {
	case FixedAir, LookupAir:
	default:
		return fmt.Errorf("%w: air property source %q", ErrUnknownOption, o.AirProperties)
	}
	return nil
}
