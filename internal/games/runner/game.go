// Package runner implements a three-lane endless runner: a procedurally
// generated track scrolls toward the player, carrying obstacles, coins and
// timed power-ups under a drifting day and weather cycle.
//
// Session is the simulation itself and has no platform dependencies.
// Game adapts a session to the registry so the terminal platform can
// drive, render and restart it.
package runner

import (
	"strings"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names select the
// values from the config file.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// LoadConfig loads the runner configuration for a theme, applying the
// preset selected on the command line. A config that fails to load or
// validate falls back to the defaults for the same theme and preset.
func LoadConfig(theme string) config.RunnerConfig {
	cfg, err := config.LoadRunner(configPath)
	if err != nil {
		cfg = config.DefaultRunnerConfig()
	}
	tune(&cfg, theme)
	if cfg.Validate() == nil {
		return cfg
	}

	cfg = config.DefaultRunnerConfig()
	tune(&cfg, theme)
	if cfg.Validate() != nil {
		cfg = config.DefaultRunnerConfig()
	}
	return cfg
}

func tune(cfg *config.RunnerConfig, theme string) {
	if theme != "" {
		cfg.Theme = theme
	}
	if difficultyPreset != "" {
		config.ApplyPreset(cfg, difficultyPreset)
	}
}

// Game implements registry.Game for one themed track.
type Game struct {
	theme   string
	runtime core.RuntimeConfig
	cfg     config.RunnerConfig
	session *Session
	last    Frame
}

// New creates a game on the given theme's track.
func New(theme string) *Game {
	return &Game{theme: theme}
}

// ID returns the track identifier.
func (g *Game) ID() string {
	return g.theme
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.theme == "" {
		return "Lane Runner"
	}
	return "Lane Runner: " + strings.ToUpper(g.theme[:1]) + g.theme[1:]
}

// Reset discards the current session, cancelling its timers, and starts a
// fresh run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	if g.session != nil {
		g.session.Close()
	}
	g.cfg = LoadConfig(g.theme)
	g.session = NewSession(g.cfg, runtime.Seed, runtime.FrameDuration())
	g.last = g.session.frame()
}

// Step advances the session by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		return core.StepResult{}
	}
	g.last = g.session.Step(in)
	return core.StepResult{State: g.State()}
}

// State returns the platform-level state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	st := g.session.State()
	return core.GameState{
		Score:    st.Score,
		Distance: st.Distance,
		GameOver: st.IsGameOver,
		Paused:   st.IsPaused,
	}
}

// Summary describes the current run for score storage.
func (g *Game) Summary() core.RunSummary {
	if g.session == nil {
		return core.RunSummary{Track: g.theme}
	}
	sum := g.session.Summary()
	sum.Track = g.theme
	return sum
}

// Session returns the live session, or nil before the first Reset.
func (g *Game) Session() *Session {
	return g.session
}

// LastFrame returns the result of the most recent step.
func (g *Game) LastFrame() Frame {
	return g.last
}

// Themes lists the playable tracks in menu order.
func Themes() []string {
	return []string{config.ThemeJungle, config.ThemeDesert, config.ThemeSnow, config.ThemeNight}
}

func init() {
	for _, theme := range Themes() {
		registry.Register(theme, func() registry.Game {
			return New(theme)
		})
	}
}
