package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/nisha-go/internal/audio"
	"github.com/vovakirdan/nisha-go/internal/core"
	"github.com/vovakirdan/nisha-go/internal/platform/sound"
	"github.com/vovakirdan/nisha-go/internal/platform/tui"
	"github.com/vovakirdan/nisha-go/internal/storage"
)

var (
	flagReducedMotion bool
	flagMute          bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a run",
	Long: `Start a run of NISHA GO!

Controls:
  A/Left/H     - Move one lane left
  D/Right/L    - Move one lane right
  Space/Enter  - Start, or restart after a run ends
  P/Esc        - Pause / resume
  R            - Restart (paused or after game over)
  X            - Abort the current run
  M            - Toggle sound
  Ctrl+E       - Export the score as JSON
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Mouse: click to start, drag left or right to switch lanes.

Difficulty options:
  easy   - Gentler ramp, slower momentum drain
  normal - Tuning from the config file
  hard   - Faster, denser chaos from the first wave
  fixed  - No difficulty ramp

Examples:
  nisha play
  nisha play --difficulty hard
  nisha play --seed 42 --reduced-motion
  nisha play --config ./my-runner.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&flagReducedMotion, "reduced-motion", false, "Disable particle effects")
	cmd.Flags().BoolVar(&flagMute, "mute", false, "Start with sound off")
}

func runPlay(_ *cobra.Command, _ []string) {
	stderr := newLogger("nisha")

	cfg, preset, err := loadRunnerConfig()
	if err != nil {
		stderr.Error("cannot load runner config", "error", err)
		os.Exit(1)
	}
	if flagDifficulty != "" && string(preset) != flagDifficulty {
		stderr.Warn("unknown difficulty, using normal", "difficulty", flagDifficulty)
	}

	runtime := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		runtime.ScreenW = w
		runtime.ScreenH = h
	}
	runtime.TickRate = flagFPS
	runtime.Seed = flagSeed
	runtime.ReducedMotion = flagReducedMotion

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		stderr.Warn("could not open run database, scores will not be kept", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	// Open the speaker. Without one the game is silent but playable.
	var sink *audio.Sink
	spk, err := sound.Open(audio.SampleRate)
	if err != nil {
		stderr.Warn("audio unavailable", "error", err)
	} else {
		sink = audio.NewSink(spk, nil)
		sink.SetEnabled(!flagMute)
	}

	logger, logFile := fileLogger("nisha")
	logger.Info("starting run", "preset", preset, "seed", flagSeed, "fps", flagFPS)

	runErr := tui.Run(tui.Options{
		Config:  cfg,
		Preset:  string(preset),
		Runtime: runtime,
		Store:   store,
		Sound:   sink,
		Logger:  logger,
	})

	// Release resources before potential exit
	if spk != nil {
		spk.Close()
	}
	if store != nil {
		store.Close()
	}
	logFile.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
