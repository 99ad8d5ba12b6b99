package vibroplate

import "iter"

// A Simulation contains all the state and parameters of a simulation.
// It is not safe for concurrent use.
//
// Plate and Particles may be read between steps but must not be replaced
// after New. The time step and the policy are fixed at construction.
type Simulation struct {
	Plate     Plate
	Particles []Particle

	dt     float64
	policy Policy
	step   int
	t      float64
}

// New returns a simulation at step 0 and time 0.
// The particles are copied so the caller keeps ownership of its slice.
func New(plate Plate, particles []Particle, dt float64, policy Policy) *Simulation {
	s := &Simulation{
		Plate:     plate,
		Particles: make([]Particle, len(particles)),
		dt:        dt,
		policy:    policy,
	}
	copy(s.Particles, particles)
	return s
}

// Step returns the number of steps run so far.
func (s *Simulation) Step() int { return s.step }

// Time returns the current simulation time.
func (s *Simulation) Time() float64 { return s.t }

// Dt returns the duration of a time step.
func (s *Simulation) Dt() float64 { return s.dt }

// Policy returns the collision policy.
func (s *Simulation) Policy() Policy { return s.policy }

// Advance runs a single simulation step and returns the resulting snapshot.
func (s *Simulation) Advance() Snapshot {
	s.advance()
	return s.Snapshot()
}

// advance moves every particle, in order, to the end of the next step.
func (s *Simulation) advance() {
	s.step++
	s.t += s.dt
	for i := range s.Particles {
		s.policy.Move(&s.Particles[i], s.Plate, s.t, s.dt)
	}
}

// Snapshot returns a copy of the current state.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		T: s.t,
		Z: make([]float64, len(s.Particles)),
		V: make([]float64, len(s.Particles)),
	}
	for i, q := range s.Particles {
		snap.Z[i] = q.Z
		snap.V[i] = q.V
	}
	return snap
}

// Skip runs n steps and drops their snapshots.
func (s *Simulation) Skip(n int) {
	for range n {
		s.advance()
	}
}

// Snapshots returns an infinite sequence of snapshots.
// Each pull advances the simulation by one step, so the sequence
// cannot be restarted: ranging over it again continues from the
// current state.
func (s *Simulation) Snapshots() iter.Seq[Snapshot] {
	return func(yield func(Snapshot) bool) {
		for {
			if !yield(s.Advance()) {
				return
			}
		}
	}
}
