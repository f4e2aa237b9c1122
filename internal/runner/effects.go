package runner

import (
	"fmt"
	"math"

	"github.com/vovakirdan/nisha-go/internal/config"
)

// emitCollectEffects spawns the radial particle burst and the score popup for
// a collected trainer. Reduced motion drops the particles but keeps the popup.
func emitCollectEffects(run *RunState, cfg config.RunnerConfig, c Collection, reducedMotion bool) {
	fx := cfg.Effects

	if !reducedMotion && fx.ParticleCount > 0 {
		for i := 0; i < fx.ParticleCount; i++ {
			angle := 2 * math.Pi * float64(i) / float64(fx.ParticleCount)
			run.Particles = append(run.Particles, Particle{
				X:       c.X,
				Y:       c.Y,
				VX:      math.Cos(angle) * fx.ParticleSpeed,
				VY:      math.Sin(angle) * fx.ParticleSpeed,
				Life:    fx.ParticleLife,
				MaxLife: fx.ParticleLife,
			})
		}
	}

	if fx.PopupLife > 0 {
		run.Popups = append(run.Popups, Popup{
			X:       c.X,
			Y:       c.Y - fx.PopupOffset,
			Text:    popupText(cfg.Trainers.ScoreBonus),
			Life:    fx.PopupLife,
			MaxLife: fx.PopupLife,
		})
	}
}

// StepEffects ages particles and popups and drops the expired ones.
func StepEffects(run *RunState, cfg config.RunnerConfig) {
	for i := len(run.Particles) - 1; i >= 0; i-- {
		p := &run.Particles[i]
		p.X += p.VX
		p.Y += p.VY
		p.Life--
		if p.Life <= 0 {
			run.Particles = append(run.Particles[:i], run.Particles[i+1:]...)
		}
	}

	for i := len(run.Popups) - 1; i >= 0; i-- {
		p := &run.Popups[i]
		p.Y -= cfg.Effects.PopupRise
		p.Life--
		if p.Life <= 0 {
			run.Popups = append(run.Popups[:i], run.Popups[i+1:]...)
		}
	}
}

func popupText(bonus float64) string {
	return fmt.Sprintf("+%d", int(bonus))
}
