package runner

import (
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/lane-runner/internal/core"
)

func TestPuffDrifts(t *testing.T) {
	fx := NewEffects(rand.New(rand.NewSource(3)))
	origin := core.V3(0, 0.5, 0)
	fx.Puff(TransientDust, origin, dustParticles, 0, dustLifetime)

	start := append([]Transient(nil), fx.Transients()...)
	if len(start) != dustParticles {
		t.Fatalf("Expected %d dust transients, got %d", dustParticles, len(start))
	}
	for i, tr := range start {
		v := tr.Vel
		if v.X() < -0.1 || v.X() >= 0.1 || v.Y() < 0 || v.Y() >= 0.1 || v.Z() < -0.1 || v.Z() >= 0.1 {
			t.Errorf("Transient %d velocity %v out of range", i, v)
		}
	}

	fx.Update(testFrame)
	for i, tr := range fx.Transients() {
		want := origin.Add(start[i].Vel)
		if !almostEqual(tr.Pos.X(), want.X()) || !almostEqual(tr.Pos.Y(), want.Y()) || !almostEqual(tr.Pos.Z(), want.Z()) {
			t.Errorf("Transient %d at %v, want %v", i, tr.Pos, want)
		}
	}

	fx.Update(dustLifetime - time.Millisecond)
	if len(fx.Transients()) != dustParticles {
		t.Fatal("Dust removed before its lifetime")
	}
	fx.Update(dustLifetime)
	if len(fx.Transients()) != 0 {
		t.Error("Dust should be gone after its lifetime")
	}
}
