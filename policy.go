package vibroplate

import "math"

// A Policy moves a particle by one time step and resolves its contact with
// the plates. t is the time at the end of the step, which is also the time
// at which the plates are evaluated.
type Policy interface {
	Move(q *Particle, p Plate, t, dt float64)
}

// Penalty treats the plates as stiff springs with linear damping.
// A penetrating particle feels a restoring force proportional to Plate.K
// and a damping force proportional to Plate.Res. Integration is
// semi-implicit Euler: velocity first, then position with the new velocity.
type Penalty struct{}

// Move implements the Policy interface.
func (Penalty) Move(q *Particle, p Plate, t, dt float64) {
	ceil, floor := p.CollisionCeiling(*q, t), p.CollisionFloor(*q, t)
	a := p.G
	switch {
	case q.Z > ceil:
		a += -math.Abs(q.Z-ceil)*p.K - q.V*p.Res
	case q.Z < floor:
		a += math.Abs(q.Z-floor)*p.K - q.V*p.Res
	}
	q.V += a * dt
	q.Z += q.V * dt
}

// Reflect treats the plates as hard walls. After a free flight step, a
// particle found beyond a plate is mirrored back across it and its velocity
// relative to the plate is reversed and scaled by Plate.Res.
//
// Only the final position is checked so a fast particle may cross a plate
// and come back within a single step unnoticed, and at most one correction
// is applied per step.
type Reflect struct{}

// Move implements the Policy interface.
func (Reflect) Move(q *Particle, p Plate, t, dt float64) {
	q.Z += q.V*dt + p.G*dt*dt/2
	q.V += p.G * dt

	ceil, floor := p.CollisionCeiling(*q, t), p.CollisionFloor(*q, t)
	switch {
	case q.Z > ceil:
		q.Z += -2 * (q.Z - ceil)
		q.V += -(p.Res + 1) * (q.V - p.Velocity(t))
	case q.Z < floor:
		q.Z += -2 * (q.Z - floor)
		q.V += -(p.Res + 1) * (q.V - p.Velocity(t))
	}
}

// PolicyByName returns the policy registered under name:
// "penalty" (soft plates) or "reflect" (hard plates).
func PolicyByName(name string) (Policy, bool) {
	switch name {
	case "penalty":
		return Penalty{}, true
	case "reflect":
		return Reflect{}, true
	}
	return nil, false
}
