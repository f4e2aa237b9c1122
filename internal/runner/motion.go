package runner

import "github.com/vovakirdan/nisha-go/internal/config"

// StepMotion moves every obstacle and pickup down by its own speed and drops
// the ones that fell past the bottom edge.
func StepMotion(run *RunState, cfg config.RunnerConfig) {
	bottom := cfg.Playfield.Height

	// Back to front so removal never skips the element shifted into slot i
	for i := len(run.Obstacles) - 1; i >= 0; i-- {
		run.Obstacles[i].Y += run.Obstacles[i].Speed
		if run.Obstacles[i].Y > bottom {
			run.Obstacles = append(run.Obstacles[:i], run.Obstacles[i+1:]...)
		}
	}

	for i := len(run.Pickups) - 1; i >= 0; i-- {
		run.Pickups[i].Y += run.Pickups[i].Speed
		if run.Pickups[i].Y > bottom {
			run.Pickups = append(run.Pickups[:i], run.Pickups[i+1:]...)
		}
	}
}
