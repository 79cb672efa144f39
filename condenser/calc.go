// Package condenser computes the heat-transfer performance of an air-cooled refrigerant
// condenser: air- and refrigerant-side film coefficients, overall U per zone and the
// zone-by-zone NTU-effectiveness energy balance.
package condenser

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"condenser_calc/property"
)

// ZoneValues holds one value per thermal zone.
type ZoneValues struct {
	Desuperheat  float64 `json:"desuperheat"`
	Condensation float64 `json:"condensation"`
	Subcool      float64 `json:"subcool"`
}

// Result is the complete output of one calculation.
type Result struct {
	Geometry           Geometry `json:"geometry"`
	FaceArea           float64  `json:"face_area"`             // m2
	FlowArea           float64  `json:"flow_area"`             // m2
	MassFlowPerCircuit float64  `json:"mass_flow_per_circuit"` // kg/s
	SaturationPressure float64  `json:"saturation_pressure"`   // Pa

	AirProperties   AirProperties `json:"air_properties"`
	Air             AirSideResult `json:"air"`
	AirCapacityRate float64       `json:"air_capacity_rate"` // W/K

	Desuperheat  RefrigerantSideResult `json:"desuperheat"`
	Condensation RefrigerantSideResult `json:"condensation"`
	Subcool      RefrigerantSideResult `json:"subcool"`

	U ZoneValues `json:"u"`

	// Zone chain; empty unless Options.EvaluateZones.
	Zones                []ZoneResult `json:"zones,omitempty"`
	RequiredDuty         float64      `json:"required_duty,omitempty"` // W
	ActualDuty           float64      `json:"actual_duty,omitempty"`   // W
	AirOutletTemperature float64      `json:"air_outlet_temperature,omitempty"`
}

/*
Runs the condenser calculation.

	Args:
	    in: coil, refrigerant and air parameters
	    opts: correlation and stage selection
	    svc: property service

	Returns:
	    the complete Result, or the first validation or lookup error. No partial result is
	    returned on failure.
*/
func Calculate(in Input, opts Options, svc property.Service) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	// ---- geometry ----

	circuits := in.Circuits
	if !opts.SplitCircuits {
		circuits = 1
	}
	geom := ResolveGeometry(in.CoilLength, in.RowPitch, in.Rows, circuits)

	res := &Result{
		Geometry:           geom,
		FaceArea:           in.CoilLength * in.CoilHeight,
		MassFlowPerCircuit: geom.MassFlowPerCircuit(in.MassFlow),
	}
	res.FlowArea = res.FaceArea * in.FreeFlowRatio

	log.WithFields(log.Fields{
		"tubes":    geom.TotalTubes,
		"circuits": geom.Circuits,
		"flowArea": res.FlowArea,
	}).Debug("geometry resolved")

	// ---- air side ----

	var err error
	switch opts.AirProperties {
	case FixedAir:
		res.AirProperties = FixedAirProperties()
	case LookupAir:
		if res.AirProperties, err = LookupAirProperties(svc, in.AmbientTemperature); err != nil {
			return nil, fmt.Errorf("air properties: %w", err)
		}
	}

	stream := AirStream{Flow: in.Airflow, InletTemperature: in.AmbientTemperature, Area: res.FlowArea}
	if res.Air, err = EvaluateAirSide(res.AirProperties, stream, in.TubeOuterDiameter, opts.AirCorrelation); err != nil {
		return nil, err
	}
	res.AirCapacityRate = res.AirProperties.CapacityRate(in.Airflow)

	log.WithFields(log.Fields{
		"velocity": res.Air.Velocity,
		"Re":       res.Air.Reynolds,
		"h":        res.Air.H,
	}).Debug("air side")

	// ---- refrigerant side ----

	tCond := in.CondensingTemperature + zeroCelsius
	if res.SaturationPressure, err = svc.Lookup(property.Pressure,
		property.StateTemperature, tCond, property.StateQuality, 0, in.Refrigerant); err != nil {
		return nil, fmt.Errorf("saturation pressure: %w", err)
	}

	superheated := FlowState{Phase: SuperheatedVapor, Temperature: in.SuperheatTemperature, Pressure: res.SaturationPressure}
	saturated := FlowState{Phase: SaturatedTwoPhase, Temperature: in.CondensingTemperature, Quality: DesignQuality}
	subcooled := FlowState{Phase: SubcooledLiquid, Temperature: in.SubcoolTemperature, Pressure: res.SaturationPressure}

	m := res.MassFlowPerCircuit
	d := in.TubeOuterDiameter
	if res.Desuperheat, err = SinglePhase(svc, in.Refrigerant, superheated, m, d); err != nil {
		return nil, fmt.Errorf("desuperheating zone: %w", err)
	}
	if res.Condensation, err = Condensation(svc, in.Refrigerant, saturated, m, d); err != nil {
		return nil, fmt.Errorf("condensation zone: %w", err)
	}
	if res.Subcool, err = SinglePhase(svc, in.Refrigerant, subcooled, m, d); err != nil {
		return nil, fmt.Errorf("subcooling zone: %w", err)
	}

	log.WithFields(log.Fields{
		"pSat":          res.SaturationPressure,
		"hDesuperheat":  res.Desuperheat.H,
		"hCondensation": res.Condensation.H,
		"hSubcool":      res.Subcool.H,
	}).Debug("refrigerant side")

	// ---- overall U ----

	if res.U.Desuperheat, err = OverallU(res.Air.H, res.Desuperheat.H); err != nil {
		return nil, err
	}
	if res.U.Condensation, err = OverallU(res.Air.H, res.Condensation.H); err != nil {
		return nil, err
	}
	if res.U.Subcool, err = OverallU(res.Air.H, res.Subcool.H); err != nil {
		return nil, err
	}

	if !opts.EvaluateZones {
		return res, nil
	}

	// ---- zone energy balance ----

	duty, err := zoneDuties(svc, in, res.SaturationPressure)
	if err != nil {
		return nil, err
	}

	zones := []Zone{
		{
			Name:                   Desuperheating,
			RequiredDuty:           duty.Desuperheat,
			Area:                   in.DesuperheatArea,
			U:                      res.U.Desuperheat,
			RefrigerantCapacity:    in.MassFlow * res.Desuperheat.SpecificHeat,
			RefrigerantTemperature: in.SuperheatTemperature,
		},
		{
			Name:                   Condensing,
			Condensing:             true,
			RequiredDuty:           duty.Condensation,
			Area:                   in.CondensationArea,
			U:                      res.U.Condensation,
			RefrigerantTemperature: in.CondensingTemperature,
		},
		{
			Name:                   Subcooling,
			RequiredDuty:           duty.Subcool,
			Area:                   in.SubcoolArea,
			U:                      res.U.Subcool,
			RefrigerantCapacity:    in.MassFlow * res.Subcool.SpecificHeat,
			RefrigerantTemperature: in.CondensingTemperature,
		},
	}
	res.Zones = EvaluateZones(in.AmbientTemperature, res.AirCapacityRate, zones)

	required := make([]float64, len(res.Zones))
	actual := make([]float64, len(res.Zones))
	for i, z := range res.Zones {
		required[i] = z.RequiredDuty
		actual[i] = z.ActualDuty
	}
	res.RequiredDuty = floats.Sum(required)
	res.ActualDuty = floats.Sum(actual)
	res.AirOutletTemperature = res.Zones[len(res.Zones)-1].AirOutletTemperature

	log.WithFields(log.Fields{
		"required": res.RequiredDuty,
		"actual":   res.ActualDuty,
		"airOut":   res.AirOutletTemperature,
	}).Debug("zones evaluated")

	return res, nil
}

/*
Refrigerant-side duty of each zone from the enthalpy drop across it.

	Args:
	    svc: property service
	    in: input
	    pSat: saturation pressure at the condensing temperature, Pa

	Returns:
	    duties, W. All enthalpies lie on the pSat isobar or the saturation line at the
	    condensing temperature.
*/
func zoneDuties(svc property.Service, in Input, pSat float64) (ZoneValues, error) {
	fluid := in.Refrigerant
	tSuper := in.SuperheatTemperature + zeroCelsius
	tCond := in.CondensingTemperature + zeroCelsius
	tSub := in.SubcoolTemperature + zeroCelsius

	var zv ZoneValues
	hSuper, err := svc.Lookup(property.Enthalpy, property.StateTemperature, tSuper, property.StatePressure, pSat, fluid)
	if err != nil {
		return zv, fmt.Errorf("desuperheating inlet enthalpy: %w", err)
	}
	hVapor, err := svc.Lookup(property.Enthalpy, property.StateTemperature, tCond, property.StateQuality, 1, fluid)
	if err != nil {
		return zv, fmt.Errorf("saturated vapor enthalpy: %w", err)
	}
	hLiquid, err := svc.Lookup(property.Enthalpy, property.StateTemperature, tCond, property.StateQuality, 0, fluid)
	if err != nil {
		return zv, fmt.Errorf("saturated liquid enthalpy: %w", err)
	}
	hSub, err := svc.Lookup(property.Enthalpy, property.StateTemperature, tSub, property.StatePressure, pSat, fluid)
	if err != nil {
		return zv, fmt.Errorf("subcooled outlet enthalpy: %w", err)
	}

	zv.Desuperheat = in.MassFlow * (hSuper - hVapor)
	zv.Condensation = in.MassFlow * (hVapor - hLiquid)
	zv.Subcool = in.MassFlow * (hLiquid - hSub)
	return zv, nil
}
