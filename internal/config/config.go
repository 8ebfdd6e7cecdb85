// Package config provides YAML-based configuration loading for the runner
// simulation, including difficulty presets and validation.
package config

import (
	"fmt"
	"math"
	"time"
)

// RunnerConfig contains every tunable of the endless-runner simulation.
// Distances are world units, speeds are units per frame and times are
// milliseconds of simulation time.
type RunnerConfig struct {
	Theme    string         `yaml:"theme"`
	Physics  PhysicsConfig  `yaml:"physics"`
	Lanes    LanesConfig    `yaml:"lanes"`
	Player   PlayerConfig   `yaml:"player"`
	Speed    SpeedConfig    `yaml:"speed"`
	Track    TrackConfig    `yaml:"track"`
	Spawn    SpawnConfig    `yaml:"spawn"`
	PowerUps PowerUpsConfig `yaml:"powerups"`
	Weather  WeatherConfig  `yaml:"weather"`
	Scenery  SceneryConfig  `yaml:"scenery"`
}

// PhysicsConfig defines the jump integrator.
type PhysicsConfig struct {
	Gravity          float64 `yaml:"gravity"`            // Subtracted from vertical velocity each airborne frame
	JumpImpulse      float64 `yaml:"jump_impulse"`       // Upward velocity of a grounded jump
	DoubleJumpFactor float64 `yaml:"double_jump_factor"` // Fraction of JumpImpulse for the mid-air jump
	GroundY          float64 `yaml:"ground_y"`           // Height of the player's feet when grounded
}

// LanesConfig defines the three lateral rails.
type LanesConfig struct {
	Positions     []float64 `yaml:"positions"`      // X offset of lanes -1, 0, 1
	Tilt          float64   `yaml:"tilt"`           // Body tilt per lane (radians)
	TiltSmoothing float64   `yaml:"tilt_smoothing"` // Lerp factor applied each frame
	CameraFollow  float64   `yaml:"camera_follow"`  // Camera x = player x * follow
}

// PlayerConfig defines the player's collision volume.
type PlayerConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Depth  float64 `yaml:"depth"`
}

// SpeedConfig defines scroll speed progression.
type SpeedConfig struct {
	Initial        float64 `yaml:"initial"`
	Max            float64 `yaml:"max"`
	Acceleration   float64 `yaml:"acceleration"`    // Added every frame while below Max
	MilestoneEvery int     `yaml:"milestone_every"` // Score interval that forces a spawn wave
	MilestoneBonus float64 `yaml:"milestone_bonus"` // Speed added at each milestone
}

// TrackConfig defines the rolling window of path segments.
type TrackConfig struct {
	SegmentLength    float64 `yaml:"segment_length"`
	Window           int     `yaml:"window"`            // Maximum live segments
	SpawnThreshold   float64 `yaml:"spawn_threshold"`   // Newest segment z that triggers the next one
	DecorationChance float64 `yaml:"decoration_chance"` // Chance a new segment gets a themed decoration
	DecorationSpread float64 `yaml:"decoration_spread"` // Decoration x in [-spread, spread)
}

// SpawnConfig defines where entities appear and vanish.
type SpawnConfig struct {
	Depth             float64   `yaml:"depth"`     // Z at which entities spawn
	DespawnZ          float64   `yaml:"despawn_z"` // Entities past this z are recycled
	ObstacleOffsets   []float64 `yaml:"obstacle_offsets"`
	ObstacleHeight    float64   `yaml:"obstacle_height"`
	FloatingHeight    float64   `yaml:"floating_height"`
	FloatingAmplitude float64   `yaml:"floating_amplitude"`
	CoinSpread        float64   `yaml:"coin_spread"` // Coin and power-up x in [-spread, spread)
	CoinHeight        float64   `yaml:"coin_height"`
	PowerUpHeight     float64   `yaml:"powerup_height"`
	PowerUpBob        float64   `yaml:"powerup_bob"`
	PowerUpChance     float64   `yaml:"powerup_chance"` // Per-frame power-up spawn probability
}

// PowerUpsConfig defines timed effect parameters.
type PowerUpsConfig struct {
	DurationMs     int     `yaml:"duration_ms"`
	SpeedFactor    float64 `yaml:"speed_factor"`
	SlowdownFactor float64 `yaml:"slowdown_factor"`
	MagnetRadius   float64 `yaml:"magnet_radius"`
	MagnetPull     float64 `yaml:"magnet_pull"` // Distance a coin moves toward the player per frame
	CoinMultiplier int     `yaml:"coin_multiplier"`
	CoinValue      int     `yaml:"coin_value"`
	RingMs         int     `yaml:"ring_ms"` // Activation ring effect lifetime
}

// WeatherConfig defines the day cycle and weather transitions.
type WeatherConfig struct {
	Initial          string  `yaml:"initial"`
	ChangeIntervalMs int     `yaml:"change_interval_ms"` // Coarse driver period
	Volatility       float64 `yaml:"volatility"`         // Per-frame chance of a fine-grained change
	TimeStep         float64 `yaml:"time_step"`          // Time-of-day advance per frame
	Particles        bool    `yaml:"particles"`          // Spawn rain/snow particles
	RainRolls        int     `yaml:"rain_rolls"`
	RainChance       float64 `yaml:"rain_chance"`
	SplashChance     float64 `yaml:"splash_chance"`
	SnowChance       float64 `yaml:"snow_chance"`
	StarChance       float64 `yaml:"star_chance"`
}

// SceneryConfig defines side decorations.
type SceneryConfig struct {
	InitialObjects int     `yaml:"initial_objects"`
	WrapZ          float64 `yaml:"wrap_z"`  // Objects past this z wrap around
	ResetZ         float64 `yaml:"reset_z"` // Z an object wraps to
}

// PowerUpDuration returns the lifetime of a timed effect.
func (c RunnerConfig) PowerUpDuration() time.Duration {
	return time.Duration(c.PowerUps.DurationMs) * time.Millisecond
}

// WeatherInterval returns the period of the coarse weather driver.
func (c RunnerConfig) WeatherInterval() time.Duration {
	return time.Duration(c.Weather.ChangeIntervalMs) * time.Millisecond
}

// Theme names.
const (
	ThemeJungle = "jungle"
	ThemeDesert = "desert"
	ThemeSnow   = "snow"
	ThemeNight  = "night"
)

// Weather mode names accepted in weather.initial.
var weatherNames = []string{"clear", "rain", "snow", "fog"}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset maps a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// Preset scale factors applied to the loaded speeds and power-up chance.
var presetScales = map[DifficultyPreset]struct{ initial, max, powerUps float64 }{
	DifficultyEasy: {0.75, 0.8, 2},
	DifficultyHard: {1.5, 1.4, 0.5},
}

// ApplyPreset scales the configured initial speed, max speed and power-up
// spawn chance. Normal leaves the config untouched. Max speed never drops
// below the scaled initial speed and the chance stays within [0, 1].
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	sc, ok := presetScales[preset]
	if !ok {
		return
	}
	cfg.Speed.Initial *= sc.initial
	cfg.Speed.Max = math.Max(cfg.Speed.Max*sc.max, cfg.Speed.Initial)
	cfg.Spawn.PowerUpChance = math.Min(cfg.Spawn.PowerUpChance*sc.powerUps, 1)
}

// ValidationError describes a configuration value that cannot be simulated.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// Validate checks that the configuration describes a playable simulation.
func (c RunnerConfig) Validate() error {
	switch c.Theme {
	case ThemeJungle, ThemeDesert, ThemeSnow, ThemeNight:
	default:
		return ValidationError{"theme", fmt.Sprintf("unknown theme %q", c.Theme)}
	}
	if c.Physics.Gravity <= 0 {
		return ValidationError{"physics.gravity", "must be positive"}
	}
	if c.Physics.JumpImpulse <= 0 {
		return ValidationError{"physics.jump_impulse", "must be positive"}
	}
	if len(c.Lanes.Positions) != 3 {
		return ValidationError{"lanes.positions", "exactly three lanes are required"}
	}
	if c.Speed.Initial <= 0 || c.Speed.Max < c.Speed.Initial {
		return ValidationError{"speed", "need 0 < initial <= max"}
	}
	if c.Speed.MilestoneEvery <= 0 {
		return ValidationError{"speed.milestone_every", "must be positive"}
	}
	if c.Track.Window < 1 || c.Track.SegmentLength <= 0 {
		return ValidationError{"track", "window and segment_length must be positive"}
	}
	if len(c.Spawn.ObstacleOffsets) == 0 {
		return ValidationError{"spawn.obstacle_offsets", "at least one offset is required"}
	}
	if c.Spawn.DespawnZ <= c.Spawn.Depth {
		return ValidationError{"spawn.despawn_z", "must be in front of spawn depth"}
	}
	if c.PowerUps.DurationMs <= 0 || c.Weather.ChangeIntervalMs <= 0 {
		return ValidationError{"durations", "power-up duration and weather interval must be positive"}
	}
	if c.PowerUps.SpeedFactor <= 0 || c.PowerUps.SlowdownFactor <= 0 {
		return ValidationError{"powerups", "speed factors must be positive"}
	}
	probs := map[string]float64{
		"track.decoration_chance": c.Track.DecorationChance,
		"spawn.powerup_chance":    c.Spawn.PowerUpChance,
		"weather.volatility":      c.Weather.Volatility,
		"weather.rain_chance":     c.Weather.RainChance,
		"weather.splash_chance":   c.Weather.SplashChance,
		"weather.snow_chance":     c.Weather.SnowChance,
		"weather.star_chance":     c.Weather.StarChance,
	}
	for field, p := range probs {
		if p < 0 || p > 1 {
			return ValidationError{field, "probability must be within [0, 1]"}
		}
	}
	for _, name := range weatherNames {
		if c.Weather.Initial == name {
			return nil
		}
	}
	return ValidationError{"weather.initial", fmt.Sprintf("unknown weather %q", c.Weather.Initial)}
}
