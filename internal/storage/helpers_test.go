package storage

import "github.com/vovakirdan/nisha-go/internal/config"

// runnerTestConfig is the default tuning with spawning and ramping disabled,
// so a run only accrues score from elapsed time.
func runnerTestConfig() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Chaos.SpawnInterval = 1e12
	cfg.Trainers.SpawnInterval = 1e12
	cfg.Difficulty.Enabled = false
	return cfg
}
