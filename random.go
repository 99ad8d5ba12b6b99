package vibroplate

import "golang.org/x/exp/rand"

// RandomParticles returns n particles of radius r resting at mid gap with
// velocities drawn uniformly in [vmin, vmax). The same seed always gives
// the same particles.
func RandomParticles(n int, p Plate, r, vmin, vmax float64, seed uint64) []Particle {
	rnd := rand.New(rand.NewSource(seed))
	particles := make([]Particle, n)
	for i := range particles {
		particles[i] = Particle{
			Z: p.H / 2,
			V: vmin + (vmax-vmin)*rnd.Float64(),
			R: r,
		}
	}
	return particles
}
