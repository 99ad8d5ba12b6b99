package vibroplate

import (
	"math"
	"testing"
)

func TestOrderParameter(t *testing.T) {
	p := Plate{Amp: 1.5}
	r := 0.5
	// the phase of z is (z+1)π
	tests := []struct {
		name string
		z    []float64
		want float64
	}{
		{"empty", nil, 0},
		{"single", []float64{0.3}, 1},
		{"in phase", []float64{-1, -1, -1, -1}, 1},
		{"full turn apart", []float64{-1, 1}, 1},
		{"opposite", []float64{-1, 0}, 0},
		{"quarter", []float64{-1, -0.5}, math.Sqrt2 / 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := OrderParameter(tc.z, p, r); !approx(got, tc.want, 1e-12) {
				t.Errorf("OrderParameter(%v) = %g, want %g", tc.z, got, tc.want)
			}
		})
	}
}

func TestMeanOrder(t *testing.T) {
	p := Plate{W: 1, Amp: 1, H: 2.2, Res: 0.1, K: 1001, G: -0.1}
	q := Particle{Z: 0.6, V: 0, R: 0.5}

	// identical particles stay in lockstep
	s := New(p, []Particle{q, q, q}, 0.01, Penalty{})
	if got := MeanOrder(s, 500, 0.5); !approx(got, 1, 1e-12) {
		t.Errorf("mean order of identical particles = %g, want 1", got)
	}
	if s.Step() != 500 {
		t.Errorf("MeanOrder ran %d steps, want 500", s.Step())
	}

	if got := MeanOrder(s, 0, 0.5); got != 0 {
		t.Errorf("empty window = %g, want 0", got)
	}
	if s.Step() != 500 {
		t.Errorf("empty window advanced the simulation to step %d", s.Step())
	}
}
