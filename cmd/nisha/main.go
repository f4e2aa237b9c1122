// nisha is NISHA GO!, an endless three-lane runner for the terminal.
//
// Usage:
//
//	nisha                    - Play (same as nisha play)
//	nisha play               - Play a run
//	nisha scores             - Print the best runs and stats
//	nisha scoreboard         - Browse run history interactively
//	nisha presets            - List difficulty presets
//	nisha serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible spawning
//	--db <path>           - Set database path (default: ~/.nisha/nisha.db)
//	--config <path>       - Runner tuning YAML (default: embedded)
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/nisha-go/internal/config"
	"github.com/vovakirdan/nisha-go/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagVerbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "nisha",
	Short: "NISHA GO! - Dodge chaos, grab trainers, keep your momentum",
	Long: `NISHA GO! is an endless three-lane runner for the terminal.

Switch lanes to dodge falling chaos and collect trainers. Momentum
drains every tick; trainers refill it. Hit chaos or run out of momentum
and the run is over.

Available commands:
  play        - Play a run (default)
  scores      - Print the best runs and stats
  scoreboard  - Browse run history interactively
  presets     - List difficulty presets
  serve       - Start SSH server for remote play

Examples:
  nisha
  nisha play --difficulty hard
  nisha scores --preset easy
  nisha serve --ssh :2222`,
	Run: runPlay,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to run database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")

	addPlayFlags(rootCmd)
	addPlayFlags(playCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(scoreboardCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger returns a stderr logger tagged with prefix.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// fileLogger logs to ~/.nisha/nisha.log while the TUI owns the terminal.
// The returned closer is never nil.
func fileLogger(prefix string) (*log.Logger, io.Closer) {
	home, err := os.UserHomeDir()
	if err != nil {
		return log.New(io.Discard), nopCloser{}
	}
	dir := filepath.Join(home, ".nisha")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard), nopCloser{}
	}
	f, err := os.OpenFile(filepath.Join(dir, "nisha.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return log.New(io.Discard), nopCloser{}
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, f
}

// loadRunnerConfig loads --config and applies --difficulty.
func loadRunnerConfig() (config.RunnerConfig, config.DifficultyPreset, error) {
	cfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		return config.RunnerConfig{}, "", err
	}
	preset := config.ParsePreset(flagDifficulty)
	config.ApplyRunnerPreset(&cfg, preset)
	return cfg, preset, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
