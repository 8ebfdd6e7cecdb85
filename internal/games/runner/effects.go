package runner

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/lane-runner/internal/core"
)

// TransientKind identifies a short-lived visual effect.
type TransientKind int

const (
	TransientRing   TransientKind = iota // Expanding ring around the player on power-up pickup
	TransientDust                        // Puff under the feet on a jump
	TransientSplash                      // Raindrop hitting the ground
	TransientStar                        // Night-sky sparkle
)

// Lifetimes of the transient effects.
const (
	dustLifetime   = 1000 * time.Millisecond
	splashLifetime = 500 * time.Millisecond
	starLifetime   = 1000 * time.Millisecond
)

const (
	particleGravity = 0.01
	dustParticles   = 5
)

// Transient is a visual effect that lives for a fixed duration of
// simulation time and then disappears.
type Transient struct {
	Kind     TransientKind
	Pos      core.Vec3
	Vel      core.Vec3 // Drift per frame, zero for stationary effects
	SpawnAt  time.Duration
	Duration time.Duration
}

// Progress returns how far through its lifetime the effect is, in [0, 1].
func (t Transient) Progress(now time.Duration) float64 {
	if t.Duration <= 0 || now >= t.SpawnAt+t.Duration {
		return 1
	}
	if now <= t.SpawnAt {
		return 0
	}
	return float64(now-t.SpawnAt) / float64(t.Duration)
}

// Done reports whether the effect has run its course.
func (t Transient) Done(now time.Duration) bool {
	return now >= t.SpawnAt+t.Duration
}

// Particle is a burst fragment that falls under gravity until it drops
// below the ground.
type Particle struct {
	Pos core.Vec3
	Vel core.Vec3
}

// Effects owns the session's transient visuals and burst particles.
type Effects struct {
	rng        *rand.Rand
	transients []Transient
	particles  []Particle
}

// NewEffects creates an empty effect set.
func NewEffects(rng *rand.Rand) *Effects {
	return &Effects{
		rng:        rng,
		transients: make([]Transient, 0, 16),
		particles:  make([]Particle, 0, 16),
	}
}

// Spawn adds a transient starting at now.
func (e *Effects) Spawn(kind TransientKind, pos core.Vec3, now, d time.Duration) {
	e.transients = append(e.transients, Transient{Kind: kind, Pos: pos, SpawnAt: now, Duration: d})
}

// Puff emits n drifting transients of the given kind from pos, each living
// for d.
func (e *Effects) Puff(kind TransientKind, pos core.Vec3, n int, now, d time.Duration) {
	for i := 0; i < n; i++ {
		vel := core.V3(
			e.rng.Float64()*0.2-0.1,
			e.rng.Float64()*0.1,
			e.rng.Float64()*0.2-0.1,
		)
		e.transients = append(e.transients, Transient{Kind: kind, Pos: pos, Vel: vel, SpawnAt: now, Duration: d})
	}
}

// Burst emits n particles from pos with small random upward velocities.
func (e *Effects) Burst(pos core.Vec3, n int) {
	for i := 0; i < n; i++ {
		vel := core.V3(
			e.rng.Float64()*0.2-0.1,
			e.rng.Float64()*0.2,
			e.rng.Float64()*0.2-0.1,
		)
		e.particles = append(e.particles, Particle{Pos: pos, Vel: vel})
	}
}

// Update integrates the burst particles and drops everything that has
// finished at simulation time now.
func (e *Effects) Update(now time.Duration) {
	particles := e.particles[:0]
	for _, p := range e.particles {
		p.Pos = p.Pos.Add(p.Vel)
		p.Vel[1] -= particleGravity
		if p.Pos.Y() < 0 {
			continue
		}
		particles = append(particles, p)
	}
	e.particles = particles

	transients := e.transients[:0]
	for _, t := range e.transients {
		if t.Done(now) {
			continue
		}
		t.Pos = t.Pos.Add(t.Vel)
		transients = append(transients, t)
	}
	e.transients = transients
}

// Transients returns the live transients.
func (e *Effects) Transients() []Transient {
	return e.transients
}

// Particles returns the live burst particles.
func (e *Effects) Particles() []Particle {
	return e.particles
}

// Clear drops every effect.
func (e *Effects) Clear() {
	e.transients = e.transients[:0]
	e.particles = e.particles[:0]
}
