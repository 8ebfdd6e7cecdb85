package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-runner/internal/registry"
	"github.com/vovakirdan/lane-runner/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <track>",
	Short: "Show the best runs on a track",
	Long: `Display the best runs for the specified track.

Examples:
  runner scores jungle
  runner scores snow --limit 25
  runner scores night --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every stored run for the track")
}

func runScores(_ *cobra.Command, args []string) error {
	track := args[0]
	if !registry.Exists(track) {
		return fmt.Errorf("unknown track %q, run 'runner list' to see available tracks", track)
	}

	game, err := registry.Create(track)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(track); err != nil {
			return err
		}
		fmt.Printf("Cleared runs for %s\n", game.Title())
		return nil
	}

	runs, err := store.TopRuns(track, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Best Runs - %s\n", game.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'runner play %s' to set the first score!\n", track)
		return nil
	}

	fmt.Printf("  %-4s  %-9s  %-9s  %-5s  %-7s  %s\n", "Rank", "Score", "Distance", "Coins", "Weather", "Date")
	fmt.Printf("  %-4s  %-9s  %-9s  %-5s  %-7s  %s\n", "----", "-----", "--------", "-----", "-------", "----")
	printRuns(runs)

	fmt.Println()
	stats, err := store.Stats(track)
	if err != nil {
		return err
	}
	longest, err := store.LongestDistance(track)
	if err != nil {
		return err
	}
	fmt.Printf("Best: %d  Longest: %.1f  Runs: %d  Average: %.0f\n",
		stats.HighScore, longest, stats.Runs, stats.AvgScore)
	return nil
}

func printRuns(runs []storage.RunEntry) {
	for i, r := range runs {
		fmt.Printf("  %-4d  %-9d  %-9.1f  %-5d  %-7s  %s\n",
			i+1, r.Score, r.Distance, r.Coins, r.Weather, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
