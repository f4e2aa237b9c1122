package runner

import (
	"math"

	"github.com/vovakirdan/nisha-go/internal/config"
)

// Advance moves the run to the next wave. Every parameter is scaled by the
// configured multiplier and clamped to its bound, so repeated calls converge
// on the caps instead of running away.
func Advance(run *RunState, cfg config.RunnerConfig) {
	m := cfg.Difficulty.Multiplier

	run.Wave++
	run.ChaosSpeed = math.Min(cfg.Chaos.MaxSpeed, run.ChaosSpeed*m)
	run.ChaosInterval = math.Max(cfg.Chaos.MinInterval, run.ChaosInterval/m)
	run.MomentumDecay = math.Min(cfg.Momentum.MaxDecay, run.MomentumDecay*m)
	run.SpeedMultiplier *= m
}
