package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the built-in configuration. It mirrors
// defaults/runner.yaml and is used when the embedded file cannot be parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Theme: ThemeJungle,
		Physics: PhysicsConfig{
			Gravity:          0.015,
			JumpImpulse:      0.4,
			DoubleJumpFactor: 0.8,
			GroundY:          1,
		},
		Lanes: LanesConfig{
			Positions:     []float64{-2, 0, 2},
			Tilt:          0.2,
			TiltSmoothing: 0.1,
			CameraFollow:  0.3,
		},
		Player: PlayerConfig{
			Width:  0.5,
			Height: 1.3,
			Depth:  0.4,
		},
		Speed: SpeedConfig{
			Initial:        0.2,
			Max:            0.5,
			Acceleration:   0.00001,
			MilestoneEvery: 100,
			MilestoneBonus: 0.01,
		},
		Track: TrackConfig{
			SegmentLength:    50,
			Window:           3,
			SpawnThreshold:   -25,
			DecorationChance: 0.3,
			DecorationSpread: 10,
		},
		Spawn: SpawnConfig{
			Depth:             -50,
			DespawnZ:          10,
			ObstacleOffsets:   []float64{-2, 2},
			ObstacleHeight:    1,
			FloatingHeight:    2.5,
			FloatingAmplitude: 0.5,
			CoinSpread:        2,
			CoinHeight:        2,
			PowerUpHeight:     2,
			PowerUpBob:        0.2,
			PowerUpChance:     0.001,
		},
		PowerUps: PowerUpsConfig{
			DurationMs:     5000, // 5 seconds
			SpeedFactor:    1.5,
			SlowdownFactor: 0.5,
			MagnetRadius:   5,
			MagnetPull:     0.5,
			CoinMultiplier: 2,
			CoinValue:      100,
			RingMs:         1000,
		},
		Weather: WeatherConfig{
			Initial:          "clear",
			ChangeIntervalMs: 15000, // 15 seconds
			Volatility:       0.001,
			TimeStep:         0.0001,
			Particles:        true,
			RainRolls:        5,
			RainChance:       0.3,
			SplashChance:     0.1,
			SnowChance:       0.2,
			StarChance:       0.1,
		},
		Scenery: SceneryConfig{
			InitialObjects: 20,
			WrapZ:          20,
			ResetZ:         -50,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
