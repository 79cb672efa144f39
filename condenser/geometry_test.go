package condenser

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveGeometry(t *testing.T) {
	tests := []struct {
		name     string
		length   float64
		pitch    float64
		rows     int
		circuits int
		want     Geometry
	}{
		{
			name:   "derived circuits",
			length: 2.5, pitch: 0.0254, rows: 4, circuits: 0,
			want: Geometry{TubesPerRow: 98, TotalTubes: 392, Circuits: 65, TubesPerCircuit: 392.0 / 65, WidthPerCircuit: 2.5 / 65},
		},
		{
			name:   "explicit circuits",
			length: 2.5, pitch: 0.0254, rows: 4, circuits: 4,
			want: Geometry{TubesPerRow: 98, TotalTubes: 392, Circuits: 4, TubesPerCircuit: 98, WidthPerCircuit: 0.625},
		},
		{
			name:   "fractional tubes per circuit",
			length: 1.0, pitch: 0.0254, rows: 3, circuits: 5,
			want: Geometry{TubesPerRow: 39, TotalTubes: 117, Circuits: 5, TubesPerCircuit: 23.4, WidthPerCircuit: 0.2},
		},
		{
			name:   "few tubes derive one circuit",
			length: 0.1, pitch: 0.04, rows: 1, circuits: 0,
			want: Geometry{TubesPerRow: 2, TotalTubes: 2, Circuits: 1, TubesPerCircuit: 2, WidthPerCircuit: 0.1},
		},
		{
			name:   "pitch larger than length",
			length: 0.5, pitch: 0.6, rows: 4, circuits: 0,
			want: Geometry{TubesPerRow: 0, TotalTubes: 0, Circuits: 1, TubesPerCircuit: 0, WidthPerCircuit: 0.5, Degenerate: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveGeometry(tt.length, tt.pitch, tt.rows, tt.circuits)
			assert.Equal(t, tt.want.TubesPerRow, got.TubesPerRow)
			assert.Equal(t, tt.want.TotalTubes, got.TotalTubes)
			assert.Equal(t, tt.want.Circuits, got.Circuits)
			assert.InDelta(t, tt.want.TubesPerCircuit, got.TubesPerCircuit, 1e-9)
			assert.InDelta(t, tt.want.WidthPerCircuit, got.WidthPerCircuit, 1e-9)
			assert.Equal(t, tt.want.Degenerate, got.Degenerate)
		})
	}
}

func TestResolveGeometryFloorLaw(t *testing.T) {
	for _, length := range []float64{0.3, 1.0, 1.7, 2.5, 4.0} {
		for _, pitch := range []float64{0.019, 0.0254, 0.031, 0.5, 5.0} {
			for rows := 1; rows <= 6; rows++ {
				g := ResolveGeometry(length, pitch, rows, 2)
				want := int(math.Floor(length / pitch))
				assert.Equal(t, want, g.TubesPerRow, "length=%g pitch=%g", length, pitch)
				assert.Equal(t, want*rows, g.TotalTubes)
				if pitch > length {
					assert.Zero(t, g.TubesPerRow)
					assert.True(t, g.Degenerate)
				}
			}
		}
	}
}

func TestMassFlowPerCircuit(t *testing.T) {
	g := ResolveGeometry(2.5, 0.0254, 4, 4)
	assert.InDelta(t, 0.599/4, g.MassFlowPerCircuit(0.599), 1e-12)

	g = ResolveGeometry(2.5, 0.0254, 4, 8)
	assert.InDelta(t, 0.599/8, g.MassFlowPerCircuit(0.599), 1e-12)
}
