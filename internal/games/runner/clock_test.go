package runner

import (
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/lane-runner/internal/core"
)

func TestClockTicks(t *testing.T) {
	c := NewClock(10 * time.Millisecond)
	for i := 0; i < 5; i++ {
		c.Tick()
	}
	if c.Now() != 50*time.Millisecond {
		t.Errorf("Now = %v, want 50ms", c.Now())
	}
	if c.Millis() != 50 {
		t.Errorf("Millis = %f, want 50", c.Millis())
	}

	if NewClock(0).Frame() != time.Second/60 {
		t.Error("Zero frame should default to 60 ticks per second")
	}
}

func TestDeadline(t *testing.T) {
	var d Deadline
	if d.Due(time.Hour) || d.Armed() {
		t.Fatal("Zero deadline must never fire")
	}

	d.Arm(time.Second, 2*time.Second)
	if d.Due(2 * time.Second) {
		t.Error("Deadline fired early")
	}
	if d.Remaining(2*time.Second) != time.Second {
		t.Errorf("Remaining = %v, want 1s", d.Remaining(2*time.Second))
	}
	if !d.Due(3 * time.Second) {
		t.Error("Deadline should fire at its time")
	}

	d.Cancel()
	if d.Due(time.Hour) || d.Remaining(0) != 0 {
		t.Error("Cancelled deadline must never fire")
	}
}

func TestTransientLifetime(t *testing.T) {
	fx := NewEffects(rand.New(rand.NewSource(1)))
	fx.Spawn(TransientSplash, core.V3(0, 0, 0), time.Second, 500*time.Millisecond)

	tr := fx.Transients()[0]
	if p := tr.Progress(1250 * time.Millisecond); !almostEqual(p, 0.5) {
		t.Errorf("Progress = %f, want 0.5", p)
	}

	fx.Update(1499 * time.Millisecond)
	if len(fx.Transients()) != 1 {
		t.Fatal("Splash removed before its lifetime")
	}
	fx.Update(1500 * time.Millisecond)
	if len(fx.Transients()) != 0 {
		t.Error("Splash should be gone after 500ms")
	}
}

func TestBurstParticlesFall(t *testing.T) {
	fx := NewEffects(rand.New(rand.NewSource(1)))
	fx.Burst(core.V3(0, 2, 0), coinBurstSize)
	if len(fx.Particles()) != coinBurstSize {
		t.Fatalf("Expected %d particles, got %d", coinBurstSize, len(fx.Particles()))
	}

	// Upward speed is below 0.2, so every fragment lands well within 100 frames.
	for i := 0; i < 100; i++ {
		fx.Update(0)
	}
	if len(fx.Particles()) != 0 {
		t.Errorf("%d particles never fell below ground", len(fx.Particles()))
	}
}
