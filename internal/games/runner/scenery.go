package runner

import (
	"math/rand"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
)

// DecorationKind is a roadside object.
type DecorationKind int

const (
	DecorTree DecorationKind = iota
	DecorBush
	DecorFlower
	DecorRock
	DecorCactus
	DecorSnowman
	DecorLamppost
)

// String returns the decoration name.
func (k DecorationKind) String() string {
	switch k {
	case DecorTree:
		return "tree"
	case DecorBush:
		return "bush"
	case DecorFlower:
		return "flower"
	case DecorRock:
		return "rock"
	case DecorCactus:
		return "cactus"
	case DecorSnowman:
		return "snowman"
	case DecorLamppost:
		return "lamppost"
	default:
		return "?"
	}
}

// Glyph returns the display character.
func (k DecorationKind) Glyph() rune {
	switch k {
	case DecorTree:
		return '♣'
	case DecorBush:
		return '*'
	case DecorFlower:
		return '✿'
	case DecorRock:
		return '▲'
	case DecorCactus:
		return '¥'
	case DecorSnowman:
		return '☃'
	case DecorLamppost:
		return '┃'
	default:
		return '?'
	}
}

// ThemeDecoration returns the decoration a theme places along new track.
func ThemeDecoration(theme string) DecorationKind {
	switch theme {
	case config.ThemeDesert:
		return DecorCactus
	case config.ThemeSnow:
		return DecorSnowman
	case config.ThemeNight:
		return DecorLamppost
	default:
		return DecorTree
	}
}

// Prop is one scenery object.
type Prop struct {
	Kind  DecorationKind
	Pos   core.Vec3
	Wraps bool // Side props wrap around; track decorations are dropped
}

// Scenery holds the roadside props. Side props past the wrap line return to
// the far end with a fresh lateral offset; decorations placed on the track
// are dropped there.
type Scenery struct {
	cfg   config.SceneryConfig
	rng   *rand.Rand
	props []Prop
}

// NewScenery scatters the initial props along both sides of the track.
func NewScenery(cfg config.SceneryConfig, rng *rand.Rand) *Scenery {
	s := &Scenery{
		cfg:   cfg,
		rng:   rng,
		props: make([]Prop, 0, cfg.InitialObjects*2),
	}
	for i := 0; i < cfg.InitialObjects; i++ {
		kind := DecorationKind(rng.Intn(int(DecorRock) + 1))
		z := rng.Float64() * cfg.ResetZ // [reset, 0)
		s.props = append(s.props, Prop{Kind: kind, Pos: core.V3(s.sideX(), 0, z), Wraps: true})
	}
	return s
}

// sideX returns a lateral offset in ±[8, 18).
func (s *Scenery) sideX() float64 {
	x := 8 + s.rng.Float64()*10
	if s.rng.Float64() < 0.5 {
		return -x
	}
	return x
}

// Decorate adds a themed prop requested by the track generator.
func (s *Scenery) Decorate(kind DecorationKind, x, z float64) {
	s.props = append(s.props, Prop{Kind: kind, Pos: core.V3(x, 0, z)})
}

// Transport moves every prop toward the camera and recycles the ones past
// the wrap line.
func (s *Scenery) Transport(speed float64) {
	live := s.props[:0]
	for _, p := range s.props {
		p.Pos[2] += speed
		if p.Pos.Z() > s.cfg.WrapZ {
			if !p.Wraps {
				continue
			}
			p.Pos[2] = s.cfg.ResetZ
			p.Pos[0] = s.sideX()
		}
		live = append(live, p)
	}
	s.props = live
}

// Props returns the live props.
func (s *Scenery) Props() []Prop {
	return s.props
}

// Clear drops every prop.
func (s *Scenery) Clear() {
	s.props = s.props[:0]
}
