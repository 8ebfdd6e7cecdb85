package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/games/runner"
	"github.com/vovakirdan/lane-runner/internal/storage"
)

var (
	flagFrames    int
	flagInputRate float64
	flagSave      bool
)

var simCmd = &cobra.Command{
	Use:   "sim [track]",
	Short: "Run a headless simulation",
	Long: `Run a session without a terminal UI. A seeded pilot presses random
lane and jump keys; every frame event is logged at debug level and a run
summary at info level. The same --seed and flags always replay the same run.

Examples:
  runner sim
  runner sim snow --frames 36000 --seed 7
  runner sim night --input-rate 0.05 --log-level debug
  runner sim desert --save`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagTheme, "theme", "", "Track theme: jungle, desert, snow, night")
	simCmd.Flags().IntVar(&flagFrames, "frames", 60*60*5, "Maximum frames to simulate")
	simCmd.Flags().Float64Var(&flagInputRate, "input-rate", 0.02, "Chance per frame that the pilot presses a key")
	simCmd.Flags().BoolVar(&flagSave, "save", false, "Store the finished run in the runs database")
}

// simConfig loads the configuration the way play does, but reports errors
// instead of falling back to defaults.
func simConfig(track string) (config.RunnerConfig, error) {
	cfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		return cfg, err
	}
	cfg.Theme = track
	if preset := config.ParsePreset(flagDifficulty); preset != "" {
		config.ApplyPreset(&cfg, preset)
	} else if flagDifficulty != "" {
		return cfg, fmt.Errorf("unknown difficulty %q", flagDifficulty)
	}
	return cfg, cfg.Validate()
}

func runSim(_ *cobra.Command, args []string) error {
	logger := newLogger("sim")

	track, err := trackArg(args)
	if err != nil {
		return err
	}
	cfg, err := simConfig(track)
	if err != nil {
		return err
	}
	if flagInputRate < 0 || flagInputRate > 1 {
		return fmt.Errorf("input rate %v outside [0, 1]", flagInputRate)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rt := core.RuntimeConfig{TickRate: flagFPS, Seed: seed}

	s := runner.NewSession(cfg, seed, rt.FrameDuration())
	defer s.Close()
	logger.Info("simulation started", "track", track, "seed", seed, "frames", flagFrames, "run", s.ID())

	pilot := rand.New(rand.NewSource(seed ^ 0x5eed)) //#nosec G404 -- deterministic input script
	keys := []core.Action{core.ActionLeft, core.ActionRight, core.ActionJump}

	in := core.NewInputFrame()
	for i := 0; i < flagFrames; i++ {
		in.Clear()
		if pilot.Float64() < flagInputRate {
			in.Set(keys[pilot.Intn(len(keys))])
		}

		if !in.Empty() {
			logger.Debug("input", "frame", i, "actions", in.Events())
		}
		f := s.Step(in)
		for _, e := range f.Events {
			logEvent(logger, i, e)
		}
		if f.State.IsGameOver {
			break
		}
	}

	sum := s.Summary()
	snap := s.Snapshot()
	logger.Info("simulation finished",
		"score", sum.Score,
		"distance", fmt.Sprintf("%.1f", sum.Distance),
		"coins", sum.Coins,
		"frames", sum.Frames,
		"weather", sum.Weather,
		"segments", s.Track().Generated(),
		"game_over", s.State().IsGameOver,
		"hash", snap.Hash(),
	)

	if !flagSave {
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	id, err := store.SaveRun(sum)
	if err != nil {
		return err
	}
	logger.Info("run saved", "id", id, "run", sum.RunID)
	return nil
}

func logEvent(logger *log.Logger, frame int, e runner.Event) {
	kv := []any{"frame", frame}
	switch e.Kind {
	case runner.EventLaneChange:
		kv = append(kv, "lane", e.Lane)
	case runner.EventCoin:
		kv = append(kv, "points", e.Points)
	case runner.EventPowerUp, runner.EventPowerUpExpired:
		kv = append(kv, "powerup", e.PowerUp)
	case runner.EventWeatherChanged:
		kv = append(kv, "weather", e.Weather)
	case runner.EventGameOver:
		kv = append(kv, "score", e.Score)
	}
	logger.Debug(e.Kind.String(), kv...)
}
