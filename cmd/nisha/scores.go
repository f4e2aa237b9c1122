package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/nisha-go/internal/config"
	"github.com/vovakirdan/nisha-go/internal/platform/tui"
	"github.com/vovakirdan/nisha-go/internal/runner"
	"github.com/vovakirdan/nisha-go/internal/storage"
)

var (
	flagScoresPreset string
	flagScoresLimit  int
	flagScoresAll    bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Print the best runs for a difficulty preset",
	Long: `Display the top runs and aggregate stats for a preset.
The preset is --preset, falling back to --difficulty (default: normal).

Examples:
  nisha scores
  nisha scores --preset hard
  nisha scores --all
  nisha scores --preset easy --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVarP(&flagScoresPreset, "preset", "p", "", "Difficulty preset to show")
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show every preset that has runs")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the preset's run history and high score")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	preset := flagScoresPreset
	if preset == "" {
		preset = flagDifficulty
	}
	preset = string(config.ParsePreset(preset))

	if flagScoresClear {
		if err := store.ClearRuns(preset); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared runs and high score for %s.\n", preset)
		return
	}

	presets := []string{preset}
	if flagScoresAll {
		presets, err = store.Presets()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing presets: %v\n", err)
			os.Exit(1)
		}
		if len(presets) == 0 {
			fmt.Println("No runs recorded yet.")
			return
		}
	}

	for i, p := range presets {
		if i > 0 {
			fmt.Println()
		}
		if err := printPresetScores(store, p, flagScoresLimit); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
			os.Exit(1)
		}
	}
}

func printPresetScores(store *storage.Store, preset string, limit int) error {
	runs, err := store.TopRuns(preset, limit)
	if err != nil {
		return err
	}

	fmt.Printf("Best Runs - %s\n", preset)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'nisha play --difficulty %s' to set the first high score!\n", preset)
		return nil
	}

	fmt.Printf("  %-4s  %-7s  %-4s  %-9s  %-6s  %s\n", "Rank", "Score", "Wave", "Fate", "Time", "Date")
	fmt.Printf("  %-4s  %-7s  %-4s  %-9s  %-6s  %s\n", "----", "-----", "----", "----", "----", "----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-7s  %-4d  %-9s  %-6s  %s\n",
			i+1,
			runner.FormatScore(r.Score),
			r.Wave,
			r.DeathReason,
			tui.FormatDuration(r.Duration),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}

	stats, err := store.Stats(preset)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Best: %s  Runs: %d  Avg: %s  Best wave: %d\n",
		runner.FormatScore(stats.HighScore), stats.Runs, runner.FormatScore(stats.AvgScore), stats.BestWave)
	fmt.Printf("Play time: %s  Collisions: %d  Depletions: %d\n",
		tui.FormatDuration(stats.PlayTime), stats.Collisions, stats.Depletions)
	return nil
}
