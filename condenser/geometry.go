package condenser

import "math"

// Geometry is the tube and circuit layout derived from the raw coil dimensions.
type Geometry struct {
	TubesPerRow     int     `json:"tubes_per_row"`
	TotalTubes      int     `json:"total_tubes"`
	Circuits        int     `json:"circuits"`
	TubesPerCircuit float64 `json:"tubes_per_circuit"` // reported unrounded
	WidthPerCircuit float64 `json:"width_per_circuit"` // m

	// Degenerate is set when the pitch exceeds the length and no tube fits in a row.
	Degenerate bool `json:"degenerate"`
}

/*
Resolves tube counts and the circuit split of a coil.

	Args:
	    length: coil length, m (> 0)
	    pitch: row pitch, m (> 0)
	    rows: number of tube rows, - (>= 1)
	    circuits: number of refrigerant circuits, -; 0 or less derives
	              round(total tubes / 6) floored at 1

	Returns:
	    Geometry. A pitch larger than the length yields zero tubes and a degenerate result
	    rather than an error.
*/
func ResolveGeometry(length, pitch float64, rows, circuits int) Geometry {
	tubesPerRow := int(math.Floor(length / pitch))
	if tubesPerRow < 0 {
		tubesPerRow = 0
	}
	totalTubes := tubesPerRow * rows

	if circuits <= 0 {
		circuits = int(math.Round(float64(totalTubes) / defaultTubesPerCircuit))
		if circuits < 1 {
			circuits = 1
		}
	}

	return Geometry{
		TubesPerRow:     tubesPerRow,
		TotalTubes:      totalTubes,
		Circuits:        circuits,
		TubesPerCircuit: float64(totalTubes) / float64(circuits),
		WidthPerCircuit: length / float64(circuits),
		Degenerate:      totalTubes == 0,
	}
}

// MassFlowPerCircuit splits the total refrigerant mass flow evenly over the circuits.
func (g Geometry) MassFlowPerCircuit(total float64) float64 {
	return total / float64(g.Circuits)
}
