package condenser

import "math"

// ZoneName names a thermal zone of the coil.
type ZoneName string

const (
	Desuperheating ZoneName = "desuperheating"
	Condensing     ZoneName = "condensation"
	Subcooling     ZoneName = "subcooling"
)

// Zone is the input of the NTU engine for one thermal zone.
type Zone struct {
	Name ZoneName

	// Condensing selects the isothermal effectiveness 1 - exp(-NTU) and an infinite
	// refrigerant capacity rate.
	Condensing bool

	RequiredDuty           float64 // refrigerant-side duty m dh, W
	Area                   float64 // m2
	U                      float64 // W/(m2 K)
	RefrigerantCapacity    float64 // m cp, W/K; ignored when Condensing
	RefrigerantTemperature float64 // zone inlet, degree C
}

// ZoneResult is the NTU evaluation of one zone. Values are immutable once produced.
type ZoneResult struct {
	Name                 ZoneName `json:"name" csv:"zone"`
	RequiredDuty         float64  `json:"required_duty" csv:"required_duty_w"`
	Area                 float64  `json:"area" csv:"area_m2"`
	U                    float64  `json:"u" csv:"u_w_m2k"`
	CMin                 float64  `json:"c_min" csv:"c_min_w_k"`
	NTU                  float64  `json:"ntu" csv:"ntu"`
	CapacityRatio        float64  `json:"capacity_ratio" csv:"capacity_ratio"`
	Effectiveness        float64  `json:"effectiveness" csv:"effectiveness"`
	ActualDuty           float64  `json:"actual_duty" csv:"actual_duty_w"`
	AirInletTemperature  float64  `json:"air_inlet_temperature" csv:"air_in_c"`
	AirOutletTemperature float64  `json:"air_outlet_temperature" csv:"air_out_c"`
	Degenerate           bool     `json:"degenerate" csv:"degenerate"`
}

// CondensingEffectiveness returns 1 - exp(-NTU), the effectiveness with one isothermal stream.
func CondensingEffectiveness(ntu float64) float64 {
	return 1 - math.Exp(-ntu)
}

/*
Effectiveness of a cross-flow exchanger with both fluids unmixed.

	Args:
	    ntu: number of transfer units, -
	    cr: capacity ratio Cmin/Cmax, - (0 <= cr <= 1)

	Returns:
	    1 - exp[(1/Cr) NTU^0.22 (exp(-Cr NTU^0.78) - 1)], or 1 - exp(-NTU) for Cr = 0
*/
func CrossFlowEffectiveness(ntu, cr float64) float64 {
	if cr == 0 {
		return CondensingEffectiveness(ntu)
	}
	return 1 - math.Exp((1/cr)*math.Pow(ntu, 0.22)*(math.Exp(-cr*math.Pow(ntu, 0.78))-1))
}

/*
Evaluates the zones in flow order, feeding each zone the air leaving the previous one.

	Args:
	    airInlet: air temperature entering the first zone, degree C
	    cAir: air heat capacity rate, W/K
	    zones: zones in refrigerant flow order

	Returns:
	    one ZoneResult per zone. The last AirOutletTemperature is the coil outlet.

	Notes:
	    a zone with no required duty, capacity, U or area is degenerate: it transfers
	    nothing and passes the air temperature through.
*/
func EvaluateZones(airInlet, cAir float64, zones []Zone) []ZoneResult {
	results := make([]ZoneResult, 0, len(zones))
	tAir := airInlet

	for _, z := range zones {
		cRef := z.RefrigerantCapacity
		if z.Condensing {
			cRef = math.Inf(1)
		}
		cMin := math.Min(cAir, cRef)
		cMax := math.Max(cAir, cRef)

		r := ZoneResult{
			Name:                z.Name,
			RequiredDuty:        z.RequiredDuty,
			Area:                z.Area,
			U:                   z.U,
			CMin:                cMin,
			AirInletTemperature: tAir,
		}

		if cMax > 0 && !math.IsInf(cMax, 1) {
			r.CapacityRatio = cMin / cMax
		}
		if cMin > 0 {
			r.NTU = z.U * z.Area / cMin
		}

		r.Degenerate = math.Abs(z.RequiredDuty) < zeroDutyTolerance || !(cMin > 0) || !(z.U > 0) || !(z.Area > 0)
		if !r.Degenerate {
			if z.Condensing {
				r.Effectiveness = CondensingEffectiveness(r.NTU)
			} else {
				r.Effectiveness = CrossFlowEffectiveness(r.NTU, r.CapacityRatio)
			}
			r.ActualDuty = r.Effectiveness * cMin * (z.RefrigerantTemperature - tAir)
		}

		if cAir > 0 {
			tAir += r.ActualDuty / cAir
		}
		r.AirOutletTemperature = tAir
		results = append(results, r)
	}

	return results
}
