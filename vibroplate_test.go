package vibroplate

import (
	"math"
	"testing"
)

// approx reports whether a and b differ by at most tol.
func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestPlateKinematics(t *testing.T) {
	p := Plate{W: 3, Amp: 0.5, H: 2}
	for _, tt := range []float64{0, 0.01, 0.5, 1, math.Pi / 6, 100, -2.5} {
		if got, want := p.Floor(tt), 0.5*math.Sin(3*tt); got != want {
			t.Errorf("Floor(%g) = %g, want %g", tt, got, want)
		}
		if got, want := p.Ceiling(tt), 0.5*math.Sin(3*tt)+2; got != want {
			t.Errorf("Ceiling(%g) = %g, want %g", tt, got, want)
		}
		if got, want := p.Velocity(tt), 0.5*3*math.Cos(3*tt); got != want {
			t.Errorf("Velocity(%g) = %g, want %g", tt, got, want)
		}
	}
}

func TestPlateGapIsConstant(t *testing.T) {
	p := Plate{W: 1, Amp: 1, H: 2.2}
	for i := 0; i < 10000; i++ {
		tt := float64(i) * 0.0137
		if gap := p.Ceiling(tt) - p.Floor(tt); !approx(gap, p.H, 1e-15) {
			t.Fatalf("gap at t=%g is %.17g, want %g", tt, gap, p.H)
		}
	}
}

func TestCollisionBounds(t *testing.T) {
	p := Plate{W: 1, Amp: 1, H: 2.2}
	q := Particle{R: 0.5}
	tt := 0.01
	if got, want := p.CollisionFloor(q, tt), math.Sin(tt)+0.5; got != want {
		t.Errorf("CollisionFloor = %g, want %g", got, want)
	}
	if got, want := p.CollisionCeiling(q, tt), math.Sin(tt)+2.2-0.5; got != want {
		t.Errorf("CollisionCeiling = %g, want %g", got, want)
	}
}
