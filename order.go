package vibroplate

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/stat"
)

// OrderParameter measures how synchronized particles of radius r are.
// Each position z is mapped to the phase (z-(r-Amp))/(Amp-r)*π, which is 0
// when the particle rests on the floor at its lowest point, and the modulus
// of the mean phasor is returned:
// 1 means all particles share the same phase, values near 0 mean no order.
// It returns 0 for an empty slice.
func OrderParameter(z []float64, p Plate, r float64) float64 {
	if len(z) == 0 {
		return 0
	}
	var sum complex128
	for _, x := range z {
		φ := (x - (r - p.Amp)) / (p.Amp - r) * math.Pi
		sum += cmplx.Exp(complex(0, φ))
	}
	return cmplx.Abs(sum) / float64(len(z))
}

// MeanOrder runs n steps of s and returns the time average of the order
// parameter of its particles, all assumed to have radius r.
func MeanOrder(s *Simulation, n int, r float64) float64 {
	if n <= 0 {
		return 0
	}
	values := make([]float64, 0, n)
	for snap := range s.Snapshots() {
		values = append(values, OrderParameter(snap.Z, s.Plate, r))
		if len(values) == n {
			break
		}
	}
	return stat.Mean(values, nil)
}
