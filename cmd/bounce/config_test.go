package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/PrincetonUniversity/vibroplate"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bounce.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfValid(t *testing.T) {
	if err := DefaultConf.Validate(); err != nil {
		t.Fatal(err)
	}
	particles := DefaultConf.Particles()
	if len(particles) != 4 || particles[3] != (vibroplate.Particle{Z: 0.6, V: 15, R: 0.5}) {
		t.Errorf("unexpected default particles %+v", particles)
	}
}

func TestParseConfig(t *testing.T) {
	path := writeConfig(t, `
Output = "out/run.h5"
Format = "hdf5"
Policy = "reflect"
Amp = 0.29
H = 3
Res = 0.9
Dt = 0.0062831853
Warmup = 1000
Steps = 100
Stride = 1000
RandomCount = 10
MinVelocity = -30
MaxVelocity = 30
Seed = 5
`)
	conf, err := ParseConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if conf.Policy != "reflect" || conf.Amp != 0.29 || conf.Stride != 1000 || conf.Seed != 5 {
		t.Errorf("unexpected config %+v", conf)
	}
	// untouched keys keep their defaults
	if conf.W != 1 || conf.G != -0.1 || conf.Radius != 0.5 {
		t.Errorf("defaults lost: %+v", conf)
	}
	if DefaultConf.Policy != "penalty" {
		t.Error("ParseConfig modified the defaults")
	}

	particles := conf.Particles()
	if len(particles) != 10 {
		t.Fatalf("%d particles, want 10", len(particles))
	}
	for _, q := range particles {
		if q.Z != 1.5 || q.V < -30 || q.V >= 30 {
			t.Errorf("unexpected random particle %+v", q)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"policy", func(c *Config) { c.Policy = "sticky" }},
		{"format", func(c *Config) { c.Format = "csv" }},
		{"fields", func(c *Config) { c.Fields = "mass" }},
		{"hdf5 stdout", func(c *Config) { c.Format = "hdf5"; c.Output = "-" }},
		{"dt", func(c *Config) { c.Dt = 0 }},
		{"steps", func(c *Config) { c.Steps = -1 }},
		{"no particles", func(c *Config) { c.Positions = nil; c.Velocities = nil }},
		{"mismatch", func(c *Config) { c.Velocities = c.Velocities[:2] }},
		{"random count", func(c *Config) { c.RandomCount = -3 }},
		{"radius", func(c *Config) { c.Radius = -0.1 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := *DefaultConf
			tc.modify(&c)
			if err := c.Validate(); err == nil {
				t.Error("invalid config accepted")
			}
		})
	}
}

func TestParseConfigErrors(t *testing.T) {
	if _, err := ParseConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing file accepted")
	}
	if _, err := ParseConfig(writeConfig(t, `Policy = `)); err == nil {
		t.Error("bad TOML accepted")
	}
	if _, err := ParseConfig(writeConfig(t, `Policy = "sticky"`)); err == nil {
		t.Error("bad policy accepted")
	}
}

func TestRunText(t *testing.T) {
	c := *DefaultConf
	c.Output = filepath.Join(t.TempDir(), "data.txt")
	c.Warmup = 10
	c.Steps = 5
	if err := run(&c); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(c.Output)
	if err != nil {
		t.Fatal(err)
	}
	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	if lines != 5 {
		t.Errorf("%d lines, want 5", lines)
	}
}

func TestRunStdoutClosed(t *testing.T) {
	ignoreBrokenPipe()
	if !signal.Ignored(syscall.SIGPIPE) {
		t.Fatal("SIGPIPE not ignored")
	}

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	r.Close()
	stdout := os.Stdout
	os.Stdout = w
	defer func() {
		os.Stdout = stdout
		w.Close()
	}()

	c := *DefaultConf
	c.Output = "-"
	c.Warmup = 0
	c.Steps = 2000
	if err := run(&c); err != nil {
		t.Errorf("closed standard output: %v", err)
	}
}
