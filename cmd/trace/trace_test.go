package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/PrincetonUniversity/vibroplate"
	"github.com/PrincetonUniversity/vibroplate/figure"
	"github.com/PrincetonUniversity/vibroplate/hdf5"
	"github.com/PrincetonUniversity/vibroplate/text"
)

func newSim() *vibroplate.Simulation {
	plate := vibroplate.Plate{W: 1, Amp: 1, H: 2.2, Res: 1, K: 1001, G: -0.1}
	particles := []vibroplate.Particle{{Z: 0.6, V: -1, R: 0.5}, {Z: 0.6, V: 2, R: 0.5}}
	return vibroplate.New(plate, particles, 0.01, vibroplate.Penalty{})
}

func TestLoadTextAndPlot(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "data.txt")

	if err := text.Run(newSim(), &text.Config{Output: data, Steps: 200, Fields: text.Position}); err != nil {
		t.Fatal(err)
	}

	rows, err := loadText(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 200 || len(rows[0]) != 5 {
		t.Fatalf("got %d rows of %d columns", len(rows), len(rows[0]))
	}

	p, err := figure.Trace(rows, len(rows[0])-3)
	if err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "trace.png")
	if err := figure.SavePNG(p, out); err != nil {
		t.Fatal(err)
	}
	if fi, err := os.Stat(out); err != nil || fi.Size() == 0 {
		t.Errorf("no figure written: %v", err)
	}
}

func TestLoadTextMissing(t *testing.T) {
	if _, err := loadText(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("missing file accepted")
	}
}

func TestLoadHDF5MatchesText(t *testing.T) {
	dir := t.TempDir()
	txt, h5 := filepath.Join(dir, "data.txt"), filepath.Join(dir, "data.h5")

	if err := text.Run(newSim(), &text.Config{Output: txt, Warmup: 50, Steps: 40, Stride: 2, Fields: text.Position}); err != nil {
		t.Fatal(err)
	}
	s := newSim()
	err := hdf5.Run(s, &hdf5.Config{
		Output:   h5,
		Warmup:   50,
		Steps:    40,
		Stride:   2,
		Datasets: hdf5.Datasets(len(s.Particles), s.Plate, s.Particles[0]),
	})
	if err != nil {
		t.Fatal(err)
	}

	want, err := loadText(txt)
	if err != nil {
		t.Fatal(err)
	}
	got, err := loadHDF5(h5)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("hdf5 rows differ from text rows (%d and %d rows)", len(got), len(want))
	}
}

func TestLoadHDF5Missing(t *testing.T) {
	if _, err := loadHDF5(filepath.Join(t.TempDir(), "nope.h5")); err == nil {
		t.Error("missing file accepted")
	}
}
