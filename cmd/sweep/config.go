package main

import (
	"errors"
	"fmt"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/PrincetonUniversity/vibroplate"
)

// Config holds the various parameters required for running a sweep.
type Config struct {
	// Output is the path of the tab separated grid of order parameters.
	// Figure is the path of the heat map PNG, none if empty.
	Output string
	Figure string

	Workers int // number of simulations run in parallel

	// Swept parameters
	Hs   []float64 // gaps, one row each, unit: length
	Amps []float64 // amplitudes, one column each, unit: length

	// Fixed plate parameters
	Policy string  // possible values: penalty, reflect
	W      float64 // unit: rad/time
	Res    float64 // unit: 1 (reflect) or 1/time (penalty)
	G      float64 // unit: length/time²
	K      float64 // unit: 1/time² (penalty only)

	// Time stepping
	Dt     float64 // duration of time steps
	Warmup int     // number of discarded steps
	Window int     // number of steps averaged

	// Particles
	Radius     float64   // unit: length
	Positions  []float64 // unit: length
	Velocities []float64 // unit: length/time
}

// DefaultConf are the default parameters.
var DefaultConf = &Config{
	Output:     "data.txt",
	Figure:     "",
	Workers:    12,
	Hs:         ratios(20, 40, 2, 16),
	Amps:       ratios(1, 20, 2, 11),
	Policy:     "penalty",
	W:          1,
	Res:        0.1,
	G:          -0.1,
	K:          1001,
	Dt:         0.01,
	Warmup:     10000000,
	Window:     10000,
	Radius:     0.5,
	Positions:  []float64{0.6, 0.6, 0.6, 0.6},
	Velocities: []float64{-3, 3, -4, 1},
}

// ratios returns i/d for i from start (included) to stop (excluded) by step.
func ratios(start, stop, step int, d float64) []float64 {
	var r []float64
	for i := start; i < stop; i += step {
		r = append(r, float64(i)/d)
	}
	return r
}

// ParseConfig parses the TOML config file whose path is provided.
func ParseConfig(path string) (*Config, error) {
	// config file overwrites default parameters
	conf := *DefaultConf
	// the decoder reuses slices with enough capacity
	conf.Hs = slices.Clone(conf.Hs)
	conf.Amps = slices.Clone(conf.Amps)
	conf.Positions = slices.Clone(conf.Positions)
	conf.Velocities = slices.Clone(conf.Velocities)
	_, err := toml.DecodeFile(path, &conf)
	if err != nil {
		return nil, err
	}
	return &conf, conf.Validate()
}

// Validate checks the parameters that would make a sweep meaningless.
func (c *Config) Validate() error {
	if _, ok := vibroplate.PolicyByName(c.Policy); !ok {
		return fmt.Errorf("bad policy %q", c.Policy)
	}
	if len(c.Hs) == 0 || len(c.Amps) == 0 {
		return errors.New("nothing to sweep")
	}
	if c.Dt <= 0 {
		return fmt.Errorf("time step must be positive, got %g", c.Dt)
	}
	if c.Warmup < 0 || c.Window <= 0 {
		return errors.New("warmup cannot be negative and window must be positive")
	}
	if len(c.Positions) == 0 {
		return errors.New("no particles")
	}
	if len(c.Positions) != len(c.Velocities) {
		return fmt.Errorf("%d positions but %d velocities", len(c.Positions), len(c.Velocities))
	}
	if c.Workers < 1 {
		return fmt.Errorf("bad number of workers %d", c.Workers)
	}
	return nil
}

// Plate returns the plate parameters for gap h and amplitude amp.
func (c *Config) Plate(h, amp float64) vibroplate.Plate {
	return vibroplate.Plate{W: c.W, Amp: amp, H: h, Res: c.Res, G: c.G, K: c.K}
}

// Particles returns the initial particles.
func (c *Config) Particles() []vibroplate.Particle {
	particles := make([]vibroplate.Particle, len(c.Positions))
	for i := range particles {
		particles[i] = vibroplate.Particle{Z: c.Positions[i], V: c.Velocities[i], R: c.Radius}
	}
	return particles
}
