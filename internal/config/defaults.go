package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the built-in runner configuration.
// It mirrors defaults/runner.yaml and is used when the embedded file cannot be parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Playfield: Playfield{
			Lanes:     3,
			LaneWidth: 48,
			Height:    256,
		},
		Player: Player{
			Size:         32,
			StartLane:    1,
			BottomMargin: 32,
		},
		Chaos: Chaos{
			Size:          24,
			SpawnInterval: 1800,
			MinInterval:   600,
			Speed:         1.2,
			MaxSpeed:      4,
		},
		Trainers: Trainers{
			Size:          20,
			SpawnInterval: 3000,
			Speed:         1,
			ScoreBonus:    100,
			MomentumBonus: 20,
		},
		Momentum: Momentum{
			Max:       100,
			Decay:     0.02,
			MaxDecay:  0.05,
			WarnRatio: 0.25,
		},
		Scoring: Scoring{
			PerSecond: 10,
		},
		Difficulty: DifficultyConfig{
			Enabled:    true,
			Interval:   8000,
			Multiplier: 1.08,
		},
		Effects: Effects{
			ParticleCount: 8,
			ParticleSpeed: 2,
			ParticleLife:  20,
			PopupLife:     30,
			PopupRise:     1,
			PopupOffset:   10,
		},
		Input: Input{
			SwipeThreshold: 30,
		},
	}
}

// DefaultYAML returns the embedded default config, used by `nisha presets --dump`.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
