// Package vibroplate simulates point particles bouncing in a vibrating channel.
//
// The floor and the ceiling of the channel are rigidly coupled and oscillate
// vertically as Amp*sin(W*t). Particles only interact with the two plates,
// never with each other. Gravity pulls them along the z axis and a collision
// Policy decides how they bounce off the moving plates.
package vibroplate

import "math"

// A Plate contains the parameters of the vibrating channel.
type Plate struct {
	W   float64 // angular frequency in rad/time
	Amp float64 // amplitude of the oscillation
	H   float64 // gap between floor and ceiling
	Res float64 // restitution (Reflect) or damping (Penalty) coefficient
	G   float64 // gravity, negative points down
	K   float64 // stiffness of the plates (Penalty only)
}

// Floor returns the position of the floor at time t.
func (p Plate) Floor(t float64) float64 {
	return p.Amp * math.Sin(p.W*t)
}

// Ceiling returns the position of the ceiling at time t.
func (p Plate) Ceiling(t float64) float64 {
	return p.Amp*math.Sin(p.W*t) + p.H
}

// Velocity returns the velocity shared by both plates at time t.
func (p Plate) Velocity(t float64) float64 {
	return p.Amp * p.W * math.Cos(p.W*t)
}

// CollisionFloor returns the lowest position the center of particle q
// can reach at time t without touching the floor.
func (p Plate) CollisionFloor(q Particle, t float64) float64 {
	return p.Floor(t) + q.R
}

// CollisionCeiling returns the highest position the center of particle q
// can reach at time t without touching the ceiling.
func (p Plate) CollisionCeiling(q Particle, t float64) float64 {
	return p.Ceiling(t) - q.R
}

// A Particle is a ball moving along the vertical axis.
type Particle struct {
	Z float64 // position
	V float64 // velocity
	R float64 // radius
}

// A Snapshot is the state of all particles right after a step.
// Z and V are aligned with the particle order of the simulation.
type Snapshot struct {
	T float64
	Z []float64
	V []float64
}
