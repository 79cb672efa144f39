package condenser

import "fmt"

/*
Overall heat-transfer coefficient of two film resistances in series.

	Args:
	    hAir: air-side film coefficient, W/(m2 K)
	    hRef: refrigerant-side film coefficient, W/(m2 K)

	Returns:
	    U = 1 / (1/hAir + 1/hRef), W/(m2 K)

	Notes:
	    no fouling, wall conduction or fin efficiency terms.
*/
func OverallU(hAir, hRef float64) (float64, error) {
	if !(hAir > 0) || !(hRef > 0) {
		return 0, fmt.Errorf("%w: h_air=%g, h_ref=%g", ErrZeroCoefficient, hAir, hRef)
	}
	return 1 / (1/hAir + 1/hRef), nil
}
