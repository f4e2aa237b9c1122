package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/nisha-go/internal/config"
	"github.com/vovakirdan/nisha-go/internal/platform/tui"
	"github.com/vovakirdan/nisha-go/internal/storage"
)

var scoreboardCmd = &cobra.Command{
	Use:   "scoreboard",
	Short: "Browse run history interactively",
	Long: `Open the interactive scoreboard.

Controls:
  Left/Right/Tab - Switch preset
  Up/Down        - Scroll runs
  S              - Toggle best / recent
  Esc            - Back
  Q              - Quit`,
	Args: cobra.NoArgs,
	Run:  runScoreboard,
}

func runScoreboard(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	preset := string(config.ParsePreset(flagDifficulty))
	if _, err := tui.RunScoreboard(store, preset, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
