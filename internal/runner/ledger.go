package runner

import (
	"github.com/vovakirdan/nisha-go/internal/config"
	"github.com/vovakirdan/nisha-go/internal/core"
)

// depletedEpsilon absorbs the rounding left by subtracting a decay that has
// no exact binary form, so a full bar lasts exactly Max/Decay ticks.
const depletedEpsilon = 1e-9

// Drain accrues time-based score and subtracts one tick of momentum decay.
// Decay is flat per tick regardless of elapsedMs. It reports true when
// momentum reached zero; momentum is clamped at zero in that case.
func Drain(run *RunState, cfg config.RunnerConfig, elapsedMs float64) bool {
	if elapsedMs > 0 {
		run.Score += cfg.Scoring.PerSecond * elapsedMs / 1000
	}

	run.Momentum -= run.MomentumDecay
	if run.Momentum <= depletedEpsilon {
		run.Momentum = 0
		return true
	}
	return false
}

// Collect applies the reward of one trainer: score, momentum capped at max,
// and re-arming of the low momentum warning.
func Collect(run *RunState, cfg config.RunnerConfig) {
	run.Score += cfg.Trainers.ScoreBonus
	run.Momentum = core.ClampF(run.Momentum+cfg.Trainers.MomentumBonus, 0, cfg.Momentum.Max)
	run.MomentumWarned = false
}

// CheckMomentumWarning reports true once each time momentum drops below the
// warning threshold. Collecting a trainer re-arms it.
func CheckMomentumWarning(run *RunState, cfg config.RunnerConfig) bool {
	if run.MomentumWarned {
		return false
	}
	if run.Momentum < cfg.Momentum.WarnRatio*cfg.Momentum.Max {
		run.MomentumWarned = true
		return true
	}
	return false
}

// MomentumRatio returns momentum as a fraction of max in [0, 1].
func MomentumRatio(run RunState, cfg config.RunnerConfig) float64 {
	if cfg.Momentum.Max <= 0 {
		return 0
	}
	return core.ClampF(run.Momentum/cfg.Momentum.Max, 0, 1)
}
