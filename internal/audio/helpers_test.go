package audio

import "github.com/vovakirdan/nisha-go/internal/config"

func quietRunnerConfig() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Chaos.SpawnInterval = 1e12
	cfg.Trainers.SpawnInterval = 1e12
	cfg.Difficulty.Enabled = false
	return cfg
}
