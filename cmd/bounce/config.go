package main

import (
	"errors"
	"fmt"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/PrincetonUniversity/vibroplate"
	"github.com/PrincetonUniversity/vibroplate/text"
)

// Config holds the various parameters required for running a simulation.
type Config struct {
	// Output is the path of the output file, "-" for standard output (text only).
	Output string
	Format string // possible values: text, hdf5
	Fields string // possible values: position, velocity, both (text only)

	// Collision policy
	Policy string // possible values: penalty, reflect

	// Plate parameters
	W   float64 // unit: rad/time
	Amp float64 // unit: length
	H   float64 // unit: length
	Res float64 // unit: 1 (reflect) or 1/time (penalty)
	G   float64 // unit: length/time²
	K   float64 // unit: 1/time² (penalty only)

	// Time stepping
	Dt     float64 // duration of time steps
	Warmup int     // number of discarded steps
	Steps  int     // number of records
	Stride int     // number of steps between records

	// Particles are either listed explicitly in Positions and Velocities,
	// or RandomCount particles start at mid gap with uniform random velocities.
	Radius      float64   // unit: length
	Positions   []float64 // unit: length
	Velocities  []float64 // unit: length/time
	RandomCount int       // number of random particles
	MinVelocity float64   // unit: length/time
	MaxVelocity float64   // unit: length/time
	Seed        uint64    // seed of random velocities
}

// DefaultConf are the default parameters.
var DefaultConf = &Config{
	Output:     "data.txt",
	Format:     "text",
	Fields:     "position",
	Policy:     "penalty",
	W:          1,
	Amp:        1,
	H:          2.2,
	Res:        1,
	G:          -0.1,
	K:          1001,
	Dt:         0.01,
	Warmup:     50000000,
	Steps:      10000,
	Stride:     1,
	Radius:     0.5,
	Positions:  []float64{0.6, 0.6, 0.6, 0.6},
	Velocities: []float64{-10, 7, -1, 15},
	Seed:       1,
}

// ParseConfig parses the TOML config file whose path is provided.
func ParseConfig(path string) (*Config, error) {
	// config file overwrites default parameters
	conf := *DefaultConf
	// the decoder reuses slices with enough capacity
	conf.Positions = slices.Clone(conf.Positions)
	conf.Velocities = slices.Clone(conf.Velocities)
	_, err := toml.DecodeFile(path, &conf)
	if err != nil {
		return nil, err
	}
	return &conf, conf.Validate()
}

// Validate checks the parameters that would make a run meaningless.
func (c *Config) Validate() error {
	if _, ok := vibroplate.PolicyByName(c.Policy); !ok {
		return fmt.Errorf("bad policy %q", c.Policy)
	}
	switch c.Format {
	case "text":
		if _, err := text.ParseFields(c.Fields); err != nil {
			return err
		}
	case "hdf5":
		if c.Output == "-" {
			return errors.New("hdf5 output cannot be standard output")
		}
	default:
		return fmt.Errorf("bad format %q", c.Format)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("time step must be positive, got %g", c.Dt)
	}
	if c.Warmup < 0 || c.Steps < 0 || c.Stride < 0 {
		return errors.New("warmup, steps and stride cannot be negative")
	}
	if c.RandomCount == 0 {
		if len(c.Positions) == 0 {
			return errors.New("no particles")
		}
		if len(c.Positions) != len(c.Velocities) {
			return fmt.Errorf("%d positions but %d velocities", len(c.Positions), len(c.Velocities))
		}
	}
	if c.RandomCount < 0 {
		return fmt.Errorf("bad random count %d", c.RandomCount)
	}
	if c.Radius < 0 {
		return fmt.Errorf("radius cannot be negative, got %g", c.Radius)
	}
	return nil
}

// Plate returns the plate parameters.
func (c *Config) Plate() vibroplate.Plate {
	return vibroplate.Plate{W: c.W, Amp: c.Amp, H: c.H, Res: c.Res, G: c.G, K: c.K}
}

// Particles returns the initial particles.
func (c *Config) Particles() []vibroplate.Particle {
	if c.RandomCount > 0 {
		return vibroplate.RandomParticles(c.RandomCount, c.Plate(), c.Radius, c.MinVelocity, c.MaxVelocity, c.Seed)
	}
	particles := make([]vibroplate.Particle, len(c.Positions))
	for i := range particles {
		particles[i] = vibroplate.Particle{Z: c.Positions[i], V: c.Velocities[i], R: c.Radius}
	}
	return particles
}
