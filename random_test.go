package vibroplate

import (
	"reflect"
	"testing"
)

func TestRandomParticles(t *testing.T) {
	p := Plate{H: 3}
	a := RandomParticles(1000, p, 0.5, -30, 30, 42)
	b := RandomParticles(1000, p, 0.5, -30, 30, 42)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed gave different particles")
	}
	if c := RandomParticles(1000, p, 0.5, -30, 30, 43); reflect.DeepEqual(a, c) {
		t.Error("different seeds gave the same particles")
	}

	var neg, pos int
	for i, q := range a {
		if q.Z != 1.5 || q.R != 0.5 {
			t.Fatalf("particle %d: %+v, want z=1.5 r=0.5", i, q)
		}
		if q.V < -30 || q.V >= 30 {
			t.Fatalf("particle %d: velocity %g out of [-30, 30)", i, q.V)
		}
		if q.V < 0 {
			neg++
		} else {
			pos++
		}
	}
	if neg < 400 || pos < 400 {
		t.Errorf("velocities not spread: %d negative, %d positive", neg, pos)
	}
}
