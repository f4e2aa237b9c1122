package config

import "math"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in display order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset maps a CLI value to a preset. Unknown or empty values mean normal.
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return DifficultyNormal
	}
}

// Describe returns a one-line summary of what the preset changes.
func (p DifficultyPreset) Describe() string {
	switch p {
	case DifficultyEasy:
		return "Gentler ramp (x1.05 per wave), momentum drains 25% slower"
	case DifficultyHard:
		return "Faster, denser chaos from wave 1, steeper ramp (x1.1)"
	case DifficultyFixed:
		return "No difficulty ramp, wave 1 forever"
	default:
		return "Tuning from the loaded config file"
	}
}

// ApplyRunnerPreset modifies the config based on a difficulty preset.
// Results stay within the config's own bounds, so a valid config stays valid.
func ApplyRunnerPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.Multiplier = 1.05
		cfg.Momentum.Decay *= 0.75
	case DifficultyHard:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.Multiplier = 1.1
		cfg.Chaos.Speed = math.Min(cfg.Chaos.MaxSpeed, cfg.Chaos.Speed*1.5)
		cfg.Chaos.SpawnInterval = math.Max(cfg.Chaos.MinInterval, cfg.Chaos.SpawnInterval/1.5)
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	}
}
