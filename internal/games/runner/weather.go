package runner

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
)

// Weather is the current weather mode.
type Weather int

const (
	WeatherClear Weather = iota
	WeatherRain
	WeatherSnow
	WeatherFog
	weatherCount
)

// String returns the mode name.
func (w Weather) String() string {
	switch w {
	case WeatherClear:
		return "clear"
	case WeatherRain:
		return "rain"
	case WeatherSnow:
		return "snow"
	case WeatherFog:
		return "fog"
	default:
		return fmt.Sprintf("weather(%d)", int(w))
	}
}

// Glyph returns the HUD icon for the mode.
func (w Weather) Glyph() rune {
	switch w {
	case WeatherClear:
		return '☀'
	case WeatherRain:
		return '☂'
	case WeatherSnow:
		return '❄'
	case WeatherFog:
		return '≡'
	default:
		return '?'
	}
}

func (w Weather) mustValid() {
	if w < 0 || w >= weatherCount {
		panic(fmt.Sprintf("runner: unknown weather %d", int(w)))
	}
}

// ParseWeather maps a mode name to its Weather value.
func ParseWeather(s string) (Weather, error) {
	for w := WeatherClear; w < weatherCount; w++ {
		if w.String() == s {
			return w, nil
		}
	}
	return WeatherClear, fmt.Errorf("runner: unknown weather %q", s)
}

// ThemeFog returns the baseline fog density of a theme.
func ThemeFog(theme string) float64 {
	switch theme {
	case config.ThemeDesert:
		return 0.01
	case config.ThemeSnow:
		return 0.03
	case config.ThemeNight:
		return 0.04
	default:
		return 0.02
	}
}

// WeatherParticle is a raindrop or snowflake.
type WeatherParticle struct {
	Kind     Weather // WeatherRain or WeatherSnow
	Pos      core.Vec3
	Vel      core.Vec3
	Rotation core.Vec3
}

// Lighting is the light level derived from the time of day.
type Lighting struct {
	Sun         float64 // sin(pi * t), peaks at midday
	Ambient     float64
	Directional float64
}

const (
	rainHeight    = 20.0
	rainSpread    = 20.0
	snowHeight    = 15.0
	snowSpread    = 10.0
	snowTumble    = 0.01
	fogMultiplier = 2.0
)

// WeatherSim advances the weather mode, time of day, fog and particles.
//
// Two drivers change the mode. The coarse driver fires every configured
// interval and always picks a different mode. The fine driver rolls every
// frame and picks any mode, possibly the current one. A fine change does
// not move the coarse deadline, so the coarse driver may fire shortly after.
type WeatherSim struct {
	cfg       config.WeatherConfig
	rng       *rand.Rand
	night     bool
	mode      Weather
	timeOfDay float64
	fogBase   float64
	fog       float64
	interval  time.Duration
	coarse    Deadline
	particles []WeatherParticle
}

// NewWeatherSim creates a simulator starting in the configured mode with
// the coarse deadline armed from now.
func NewWeatherSim(cfg config.WeatherConfig, theme string, rng *rand.Rand, now time.Duration) *WeatherSim {
	mode, err := ParseWeather(cfg.Initial)
	if err != nil {
		mode = WeatherClear
	}
	base := ThemeFog(theme)
	w := &WeatherSim{
		cfg:       cfg,
		rng:       rng,
		night:     theme == config.ThemeNight,
		mode:      mode,
		fogBase:   base,
		fog:       base,
		interval:  time.Duration(cfg.ChangeIntervalMs) * time.Millisecond,
		particles: make([]WeatherParticle, 0, 64),
	}
	w.coarse.Arm(now, w.interval)
	w.applyFog()
	return w
}

// Step advances one frame at simulation time now. origin is the player
// position particles are scattered around. Returns true if the mode changed.
func (w *WeatherSim) Step(now time.Duration, origin core.Vec3, fx *Effects) bool {
	before := w.mode

	w.timeOfDay += w.cfg.TimeStep
	if w.timeOfDay >= 1 {
		w.timeOfDay = 0
	}

	if w.night && w.rng.Float64() < w.cfg.StarChance {
		star := core.V3(w.rng.Float64()*100-50, w.rng.Float64()*30+20, w.rng.Float64()*100-50)
		fx.Spawn(TransientStar, star, now, starLifetime)
	}

	if w.coarse.Due(now) {
		w.mode = w.pickOther()
		w.coarse.Arm(now, w.interval)
	}
	if w.rng.Float64() < w.cfg.Volatility {
		w.mode = Weather(w.rng.Intn(int(weatherCount)))
	}

	live := w.particles[:0]
	for _, p := range w.particles {
		if p.Pos.Y() < 0 {
			continue
		}
		live = append(live, p)
	}
	w.particles = live

	if w.cfg.Particles {
		w.spawn(now, origin, fx)
	}
	w.applyFog()

	for i := range w.particles {
		p := &w.particles[i]
		p.Pos = p.Pos.Add(p.Vel)
		if w.mode == WeatherSnow {
			p.Rotation[0] += snowTumble
			p.Rotation[1] += snowTumble
		}
	}

	return w.mode != before
}

// pickOther returns a uniformly chosen mode different from the current one.
func (w *WeatherSim) pickOther() Weather {
	next := Weather(w.rng.Intn(int(weatherCount) - 1))
	if next >= w.mode {
		next++
	}
	return next
}

func (w *WeatherSim) spawn(now time.Duration, origin core.Vec3, fx *Effects) {
	switch w.mode {
	case WeatherRain:
		for i := 0; i < w.cfg.RainRolls; i++ {
			if w.rng.Float64() >= w.cfg.RainChance {
				continue
			}
			pos := core.V3(
				origin.X()+w.rng.Float64()*2*rainSpread-rainSpread,
				rainHeight,
				origin.Z()+w.rng.Float64()*2*rainSpread-rainSpread,
			)
			vel := core.V3(w.rng.Float64()*0.1-0.05, -0.8-w.rng.Float64()*0.4, 0.2)
			w.particles = append(w.particles, WeatherParticle{Kind: WeatherRain, Pos: pos, Vel: vel})
			if w.rng.Float64() < w.cfg.SplashChance {
				fx.Spawn(TransientSplash, core.V3(pos.X(), 0.01, pos.Z()), now, splashLifetime)
			}
		}
	case WeatherSnow:
		if w.rng.Float64() < w.cfg.SnowChance {
			pos := core.V3(
				origin.X()+w.rng.Float64()*2*snowSpread-snowSpread,
				snowHeight,
				origin.Z()+w.rng.Float64()*2*snowSpread-snowSpread,
			)
			vel := core.V3(w.rng.Float64()*0.02-0.01, -0.1, w.rng.Float64()*0.02-0.01)
			w.particles = append(w.particles, WeatherParticle{Kind: WeatherSnow, Pos: pos, Vel: vel})
		}
	}
}

// applyFog sets the fog density for the current mode. Rain and snow keep
// whatever density the previous mode left.
func (w *WeatherSim) applyFog() {
	switch w.mode {
	case WeatherFog:
		w.fog = w.fogBase * fogMultiplier
	case WeatherClear:
		w.fog = w.fogBase
	case WeatherRain, WeatherSnow:
	default:
		w.mode.mustValid()
	}
}

// Set forces the mode. Unknown modes panic.
func (w *WeatherSim) Set(mode Weather) {
	mode.mustValid()
	w.mode = mode
	w.applyFog()
}

// Mode returns the current weather mode.
func (w *WeatherSim) Mode() Weather {
	return w.mode
}

// TimeOfDay returns the day phase in [0, 1).
func (w *WeatherSim) TimeOfDay() float64 {
	return w.timeOfDay
}

// Fog returns the current fog density.
func (w *WeatherSim) Fog() float64 {
	return w.fog
}

// Lighting returns the light levels for the current time of day.
func (w *WeatherSim) Lighting() Lighting {
	sun := math.Sin(w.timeOfDay * math.Pi)
	return Lighting{
		Sun:         sun,
		Ambient:     0.5 + 0.5*sun,
		Directional: 2 * sun,
	}
}

// NextChange returns the time left before the coarse driver fires.
func (w *WeatherSim) NextChange(now time.Duration) time.Duration {
	return w.coarse.Remaining(now)
}

// Particles returns the live weather particles.
func (w *WeatherSim) Particles() []WeatherParticle {
	return w.particles
}

// Cancel disarms the coarse driver and drops every particle.
func (w *WeatherSim) Cancel() {
	w.coarse.Cancel()
	w.particles = w.particles[:0]
}
