package condenser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"condenser_calc/property"
)

type lookupCall struct {
	prop  property.Property
	v1    property.StateVar
	x1    float64
	v2    property.StateVar
	x2    float64
	fluid property.Fluid
}

// stubService answers every lookup of a property with one fixed value.
type stubService struct {
	values map[property.Property]float64
	err    error
	calls  []lookupCall
}

func (s *stubService) Lookup(prop property.Property, v1 property.StateVar, x1 float64, v2 property.StateVar, x2 float64, fluid property.Fluid) (float64, error) {
	s.calls = append(s.calls, lookupCall{prop, v1, x1, v2, x2, fluid})
	if s.err != nil {
		return 0, s.err
	}
	v, ok := s.values[prop]
	if !ok {
		return 0, &property.LookupError{Property: prop, Fluid: fluid, Var1: v1, Val1: x1, Var2: v2, Val2: x2, Err: property.ErrUnsupportedState}
	}
	return v, nil
}

func newStub() *stubService {
	return &stubService{values: map[property.Property]float64{
		property.Viscosity:    1.5e-5,
		property.SpecificHeat: 1100.0,
		property.Conductivity: 0.02,
	}}
}

func newTable(t *testing.T) *property.Table {
	t.Helper()
	tb, err := property.NewTable()
	require.NoError(t, err)
	return tb
}
