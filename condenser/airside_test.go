package condenser

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"condenser_calc/property"
)

func TestEvaluateAirSideScenario(t *testing.T) {
	// 9.52 mm tubes, 2500 m3/h through a 1.0 m x 0.6 m coil with 25 % free flow
	const d = 9.52e-3
	area := 0.25 * (1.0 * 0.6)
	stream := AirStream{Flow: 2500.0 / 3600.0, InletTemperature: 35.0, Area: area}

	props, err := LookupAirProperties(newTable(t), stream.InletTemperature)
	require.NoError(t, err)

	got, err := EvaluateAirSide(props, stream, d, FinnedBank)
	require.NoError(t, err)

	assert.InDelta(t, 0.15, area, 1e-12)
	assert.InDelta(t, 4.63, got.Velocity, 0.005)
	assert.InEpsilon(t, props.Density*got.Velocity*d/props.Viscosity, got.Reynolds, 1e-12)
	assert.InEpsilon(t, props.SpecificHeat*props.Viscosity/props.Conductivity, got.Prandtl, 1e-12)
	assert.InEpsilon(t, 0.41*math.Pow(got.Reynolds, 0.6)*math.Pow(got.Prandtl, 1.0/3.0), got.Nusselt, 1e-12)
	assert.InEpsilon(t, got.Nusselt*props.Conductivity/d, got.H, 1e-12)
}

func TestLookupAirProperties(t *testing.T) {
	p, err := LookupAirProperties(newTable(t), 35.0)
	require.NoError(t, err)

	assert.InDelta(t, 1.146, p.Density, 0.005)
	assert.InDelta(t, 1.88e-5, p.Viscosity, 0.05e-5)
	assert.InDelta(t, 1006, p.SpecificHeat, 5)
	assert.InDelta(t, 0.0267, p.Conductivity, 0.001)
	assert.InDelta(t, 0.71, p.Prandtl(), 0.02)
}

func TestLookupAirPropertiesFailure(t *testing.T) {
	_, err := LookupAirProperties(newTable(t), 500.0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, property.ErrOutOfRange))
}

func TestAirCorrelationNusselt(t *testing.T) {
	nu, err := InternalFlow.Nusselt(1500, 0.7)
	require.NoError(t, err)
	assert.Equal(t, 3.66, nu)

	nu, err = InternalFlow.Nusselt(10000, 0.7)
	require.NoError(t, err)
	assert.InEpsilon(t, 0.023*math.Pow(10000, 0.8)*math.Pow(0.7, 0.3), nu, 1e-12)

	nu, err = FinnedBank.Nusselt(5000, 0.7)
	require.NoError(t, err)
	assert.InEpsilon(t, 0.41*math.Pow(5000, 0.6)*math.Pow(0.7, 1.0/3.0), nu, 1e-12)

	_, err = AirCorrelation("plate-fin").Nusselt(5000, 0.7)
	assert.ErrorIs(t, err, ErrUnknownOption)
}

func TestEvaluateAirSideFixedProperties(t *testing.T) {
	p := FixedAirProperties()
	stream := AirStream{Flow: 12.0, Area: 5.0}

	got, err := EvaluateAirSide(p, stream, 0.009525, FinnedBank)
	require.NoError(t, err)

	assert.InDelta(t, 2.4, got.Velocity, 1e-12)
	assert.InEpsilon(t, 1.06*2.4*0.009525/2.1e-5, got.Reynolds, 1e-12)
	assert.InEpsilon(t, 1006*2.1e-5/0.028, got.Prandtl, 1e-12)
	assert.True(t, got.H > 0 && !math.IsInf(got.H, 0))
}

func TestEvaluateAirSideRejectsBadInput(t *testing.T) {
	p := FixedAirProperties()

	_, err := EvaluateAirSide(p, AirStream{Flow: 1, Area: 0}, 0.01, FinnedBank)
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	_, err = EvaluateAirSide(p, AirStream{Flow: 1, Area: 1}, 0, FinnedBank)
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	_, err = EvaluateAirSide(p, AirStream{Flow: -1, Area: 1}, 0.01, FinnedBank)
	assert.ErrorIs(t, err, ErrInvalidFlowRate)

	_, err = EvaluateAirSide(p, AirStream{Flow: 1, Area: 1}, 0.01, "")
	assert.ErrorIs(t, err, ErrUnknownOption)
}

func TestAirCapacityRate(t *testing.T) {
	p := FixedAirProperties()
	assert.InEpsilon(t, 1.06*12.0*1006, p.CapacityRate(12.0), 1e-12)
}
