package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/platform/tui"
	"github.com/vovakirdan/lane-runner/internal/registry"
	"github.com/vovakirdan/lane-runner/internal/storage"
)

var (
	flagTheme   string
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play [track]",
	Short: "Play a track",
	Long: `Start a run on the given track (jungle when omitted).

Controls:
  Left/A, Right/D  - Change lane
  Space/Up/W       - Jump (again mid-air with the double jump power-up)
  P/Esc            - Pause
  R                - Restart (after game over)
  B                - Back to menu (paused or after game over)
  Ctrl+S           - Screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slower start and top speed, more power-ups
  normal - Values from the config file
  hard   - Faster start and top speed, fewer power-ups

Examples:
  runner play
  runner play desert
  runner play --theme night --difficulty hard
  runner play snow --config ./my-runner.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagTheme, "theme", "", "Track theme: jungle, desert, snow, night")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write diagnostics to this file while playing")
}

// trackArg picks the track from the positional argument, then --theme.
func trackArg(args []string) (string, error) {
	track := "jungle"
	switch {
	case len(args) > 0:
		track = args[0]
	case flagTheme != "":
		track = flagTheme
	}
	if !registry.Exists(track) {
		return "", fmt.Errorf("unknown track %q, run 'runner list' to see available tracks", track)
	}
	return track, nil
}

// terminalConfig builds the runtime config from the current terminal size.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the runs database. Failure is logged and play continues
// without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// tuiLogger returns a logger for the TUI. The terminal is owned by the
// program, so diagnostics only go to --log-file when given.
func tuiLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return nil, func() {}, nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "runner",
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger, func() { f.Close() }, nil
}

func runPlay(_ *cobra.Command, args []string) error {
	track, err := trackArg(args)
	if err != nil {
		return err
	}

	game, err := registry.Create(track)
	if err != nil {
		return err
	}

	logger, closeLog, err := tuiLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(newLogger("runner"))
	if store != nil {
		defer store.Close()
	}

	if _, err := tui.Run(game, store, logger, terminalConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
