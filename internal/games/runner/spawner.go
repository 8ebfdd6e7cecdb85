package runner

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
)

// Per-frame animation rates.
const (
	spinRate      = 0.05  // Radians per frame for coins, power-ups and rotating obstacles
	bobFrequency  = 0.003 // Radians per millisecond for floating entities
	coinBurstSize = 5
)

// ObstacleVariant selects an obstacle's shape and motion.
type ObstacleVariant int

const (
	VariantBox ObstacleVariant = iota
	VariantSpike
	VariantRotating // Spins about the scroll axis
	VariantFloating // Bobs vertically
	variantCount
)

// String returns the variant name.
func (v ObstacleVariant) String() string {
	switch v {
	case VariantBox:
		return "box"
	case VariantSpike:
		return "spike"
	case VariantRotating:
		return "rotating"
	case VariantFloating:
		return "floating"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// Size returns the unrotated collision extents of the variant.
func (v ObstacleVariant) Size() core.Vec3 {
	switch v {
	case VariantBox:
		return core.V3(1.5, 1.5, 1.5)
	case VariantSpike:
		return core.V3(1, 2, 1)
	case VariantRotating:
		return core.V3(3, 0.5, 0.5)
	case VariantFloating:
		return core.V3(1.4, 1.4, 1.4)
	default:
		panic(fmt.Sprintf("runner: unknown obstacle variant %d", int(v)))
	}
}

// Obstacle ends the run on contact unless the player is protected.
type Obstacle struct {
	ID       int
	Variant  ObstacleVariant
	Pos      core.Vec3 // Center
	Rotation float64   // Rotating variant only
}

// Box returns the obstacle's collision volume.
func (o Obstacle) Box() core.Box {
	size := o.Variant.Size()
	if o.Variant == VariantRotating {
		size = core.RotatedZ(size, o.Rotation)
	}
	return core.BoxFromCenter(o.Pos, size)
}

// Coin is a collectible worth CoinValue times the coin multiplier.
type Coin struct {
	ID   int
	Pos  core.Vec3
	Spin float64
}

var coinSize = core.V3(0.4, 1.4, 1.4)

// Box returns the coin's collision volume.
func (c Coin) Box() core.Box {
	return core.BoxFromCenter(c.Pos, coinSize)
}

// PowerUp is a pickup that activates a timed effect.
type PowerUp struct {
	ID         int
	Kind       PowerUpKind
	Pos        core.Vec3
	FloatPhase float64 // Offset of the bobbing sinusoid
	Spin       float64
}

var powerUpSize = core.V3(1, 1, 1)

// Box returns the pickup's collision volume.
func (p PowerUp) Box() core.Box {
	return core.BoxFromCenter(p.Pos, powerUpSize)
}

// World holds every scrolling entity of a session.
type World struct {
	Obstacles []Obstacle
	Coins     []Coin
	PowerUps  []PowerUp

	cfg config.SpawnConfig
}

// NewWorld creates an empty world.
func NewWorld(cfg config.SpawnConfig) *World {
	return &World{
		Obstacles: make([]Obstacle, 0, 16),
		Coins:     make([]Coin, 0, 16),
		PowerUps:  make([]PowerUp, 0, 4),
		cfg:       cfg,
	}
}

// Transport moves every entity toward the camera by speed and recycles the
// ones that have passed the despawn line. Returns the number recycled.
func (w *World) Transport(speed float64) int {
	limit := w.cfg.DespawnZ
	removed := 0

	obstacles := w.Obstacles[:0]
	for _, o := range w.Obstacles {
		o.Pos[2] += speed
		if o.Pos.Z() > limit {
			removed++
			continue
		}
		obstacles = append(obstacles, o)
	}
	w.Obstacles = obstacles

	coins := w.Coins[:0]
	for _, c := range w.Coins {
		c.Pos[2] += speed
		c.Spin += spinRate
		if c.Pos.Z() > limit {
			removed++
			continue
		}
		coins = append(coins, c)
	}
	w.Coins = coins

	powerUps := w.PowerUps[:0]
	for _, p := range w.PowerUps {
		p.Pos[2] += speed
		if p.Pos.Z() > limit {
			removed++
			continue
		}
		powerUps = append(powerUps, p)
	}
	w.PowerUps = powerUps

	return removed
}

// Animate advances the per-variant motion at simulation time nowMs.
func (w *World) Animate(nowMs float64) {
	for i := range w.Obstacles {
		o := &w.Obstacles[i]
		switch o.Variant {
		case VariantRotating:
			o.Rotation += spinRate
		case VariantFloating:
			o.Pos[1] = w.cfg.FloatingHeight + math.Sin(nowMs*bobFrequency)*w.cfg.FloatingAmplitude
		}
	}
	for i := range w.PowerUps {
		p := &w.PowerUps[i]
		p.Spin += spinRate
		p.Pos[1] = w.cfg.PowerUpHeight + math.Sin(nowMs*bobFrequency+p.FloatPhase)*w.cfg.PowerUpBob
	}
}

// Attract pulls every coin within radius of target by step units toward it.
func (w *World) Attract(target core.Vec3, radius, step float64) int {
	pulled := 0
	for i := range w.Coins {
		c := &w.Coins[i]
		delta := target.Sub(c.Pos)
		dist := delta.Len()
		if dist >= radius || dist == 0 {
			continue
		}
		c.Pos = c.Pos.Add(delta.Mul(step / dist))
		pulled++
	}
	return pulled
}

// RemoveCoin deletes the coin at index i, keeping order.
func (w *World) RemoveCoin(i int) {
	w.Coins = append(w.Coins[:i], w.Coins[i+1:]...)
}

// RemovePowerUp deletes the pickup at index i, keeping order.
func (w *World) RemovePowerUp(i int) {
	w.PowerUps = append(w.PowerUps[:i], w.PowerUps[i+1:]...)
}

// Count returns the number of live entities.
func (w *World) Count() int {
	return len(w.Obstacles) + len(w.Coins) + len(w.PowerUps)
}

// Clear drops every entity.
func (w *World) Clear() {
	w.Obstacles = w.Obstacles[:0]
	w.Coins = w.Coins[:0]
	w.PowerUps = w.PowerUps[:0]
}

// Spawner creates entities at the spawn depth with randomized placement.
type Spawner struct {
	cfg    config.SpawnConfig
	rng    *rand.Rand
	nextID int
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(cfg config.SpawnConfig, rng *rand.Rand) *Spawner {
	return &Spawner{cfg: cfg, rng: rng}
}

func (s *Spawner) id() int {
	s.nextID++
	return s.nextID
}

// SpawnObstacle creates an obstacle of a uniformly chosen variant on one of
// the fixed obstacle offsets.
func (s *Spawner) SpawnObstacle() Obstacle {
	variant := ObstacleVariant(s.rng.Intn(int(variantCount)))
	x := s.cfg.ObstacleOffsets[s.rng.Intn(len(s.cfg.ObstacleOffsets))]
	y := s.cfg.ObstacleHeight
	if variant == VariantFloating {
		y = s.cfg.FloatingHeight
	}
	return Obstacle{
		ID:      s.id(),
		Variant: variant,
		Pos:     core.V3(x, y, s.cfg.Depth),
	}
}

// SpawnCoin creates a coin at a uniform lateral offset.
func (s *Spawner) SpawnCoin() Coin {
	return Coin{
		ID:  s.id(),
		Pos: core.V3(s.lateral(), s.cfg.CoinHeight, s.cfg.Depth),
	}
}

// SpawnPowerUp creates a pickup of a uniformly chosen kind.
func (s *Spawner) SpawnPowerUp() PowerUp {
	kind := PowerUpKind(s.rng.Intn(int(powerUpKindCount)))
	return PowerUp{
		ID:         s.id(),
		Kind:       kind,
		Pos:        core.V3(s.lateral(), s.cfg.PowerUpHeight, s.cfg.Depth),
		FloatPhase: s.rng.Float64() * 2 * math.Pi,
	}
}

// lateral returns an offset in [-spread, spread).
func (s *Spawner) lateral() float64 {
	return s.rng.Float64()*2*s.cfg.CoinSpread - s.cfg.CoinSpread
}
