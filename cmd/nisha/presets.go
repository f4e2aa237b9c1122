package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/nisha-go/internal/config"
)

var flagDumpConfig bool

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List difficulty presets",
	Long: `Shows the difficulty presets and what each one changes.

With --dump, prints the default runner config YAML instead. Save it,
edit it and pass it back with --config.`,
	Args: cobra.NoArgs,
	Run:  runPresets,
}

func init() {
	presetsCmd.Flags().BoolVar(&flagDumpConfig, "dump", false, "Print the default runner config YAML")
}

func runPresets(_ *cobra.Command, _ []string) {
	if flagDumpConfig {
		os.Stdout.Write(config.DefaultYAML()) //nolint:errcheck
		return
	}

	fmt.Println("Difficulty presets:")
	fmt.Println()

	maxLen := 2
	for _, p := range config.Presets {
		if len(p) > maxLen {
			maxLen = len(p)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxLen, "ID", "Effect")
	fmt.Printf("  %-*s  %s\n", maxLen, "--", "------")
	for _, p := range config.Presets {
		fmt.Printf("  %-*s  %s\n", maxLen, p, p.Describe())
	}

	fmt.Println()
	fmt.Println("Run 'nisha play --difficulty <id>' to play a preset.")
}
