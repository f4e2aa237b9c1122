// Package runner implements the NISHA GO! lane runner: the player shifts between
// lanes to dodge falling chaos blocks and collect trainers while a draining
// momentum meter acts as a second life bar.
//
// All simulation state lives in a single RunState value that the Game threads
// through the difficulty, spawn, motion, collision and ledger steps once per
// tick. Nothing in this package blocks, locks or touches the terminal.
package runner

import "github.com/vovakirdan/nisha-go/internal/config"

// Phase is the top-level game state.
type Phase int

const (
	PhaseStart Phase = iota
	PhasePlaying
	PhasePaused
	PhaseGameOver
)

// String returns the HUD label for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "READY"
	case PhasePlaying:
		return "RUN"
	case PhasePaused:
		return "HALT"
	case PhaseGameOver:
		return "FAIL"
	default:
		return "UNKNOWN"
	}
}

// DeathReason records why a run ended.
type DeathReason int

const (
	DeathNone DeathReason = iota
	DeathCollision
	DeathMomentumDepleted
)

// String returns the short identifier stored with run history.
func (d DeathReason) String() string {
	switch d {
	case DeathCollision:
		return "collision"
	case DeathMomentumDepleted:
		return "momentum"
	default:
		return "none"
	}
}

// Message returns the game-over banner text.
func (d DeathReason) Message() string {
	if d == DeathMomentumDepleted {
		return "MOMENTUM DEPLETED"
	}
	return "COLLISION DETECTED"
}

// RunState is everything that changes during one play session.
// Timestamps are milliseconds of play time; paused time does not count.
type RunState struct {
	Phase      Phase
	PlayerLane int

	Score    float64 // Fractional; floored only for display and comparison
	Momentum float64 // Always within [0, Momentum.Max]

	// Difficulty parameters, only written by Advance.
	Wave            int
	ChaosInterval   float64
	ChaosSpeed      float64
	MomentumDecay   float64
	SpeedMultiplier float64

	Elapsed            float64
	LastChaosSpawn     float64
	LastTrainerSpawn   float64
	LastDifficultyTick float64

	MomentumWarned bool
	DeathReason    DeathReason
	NewRecord      bool

	Obstacles []Obstacle
	Pickups   []Pickup
	Particles []Particle
	Popups    []Popup
}

// newRunState returns the start-of-run defaults for cfg.
func newRunState(cfg config.RunnerConfig) RunState {
	return RunState{
		Phase:           PhaseStart,
		PlayerLane:      cfg.Player.StartLane,
		Momentum:        cfg.Momentum.Max,
		Wave:            1,
		ChaosInterval:   cfg.Chaos.SpawnInterval,
		ChaosSpeed:      cfg.Chaos.Speed,
		MomentumDecay:   cfg.Momentum.Decay,
		SpeedMultiplier: 1.0,
	}
}
