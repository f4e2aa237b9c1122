// Package config provides YAML-based game configuration loading and
// difficulty presets for the runner.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid runner config")

// RunnerConfig contains all tunables for the lane runner.
// Distances are playfield units, speeds are units per tick and
// intervals are milliseconds of play time.
type RunnerConfig struct {
	Playfield  Playfield        `yaml:"playfield"`
	Player     Player           `yaml:"player"`
	Chaos      Chaos            `yaml:"chaos"`
	Trainers   Trainers         `yaml:"trainers"`
	Momentum   Momentum         `yaml:"momentum"`
	Scoring    Scoring          `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Effects    Effects          `yaml:"effects"`
	Input      Input            `yaml:"input"`
}

// Playfield defines the lane layout.
type Playfield struct {
	Lanes     int     `yaml:"lanes"`
	LaneWidth float64 `yaml:"lane_width"`
	Height    float64 `yaml:"height"`
}

// Width returns the total playfield width.
func (p Playfield) Width() float64 {
	return float64(p.Lanes) * p.LaneWidth
}

// Player defines the player's hitbox and starting lane.
type Player struct {
	Size         float64 `yaml:"size"`
	StartLane    int     `yaml:"start_lane"`
	BottomMargin float64 `yaml:"bottom_margin"`
}

// Chaos defines obstacle parameters.
type Chaos struct {
	Size          float64 `yaml:"size"`
	SpawnInterval float64 `yaml:"spawn_interval"`
	MinInterval   float64 `yaml:"min_interval"`
	Speed         float64 `yaml:"speed"`
	MaxSpeed      float64 `yaml:"max_speed"`
}

// Trainers defines pickup parameters.
type Trainers struct {
	Size          float64 `yaml:"size"`
	SpawnInterval float64 `yaml:"spawn_interval"`
	Speed         float64 `yaml:"speed"`
	ScoreBonus    float64 `yaml:"score_bonus"`
	MomentumBonus float64 `yaml:"momentum_bonus"`
}

// Momentum defines the secondary life meter.
type Momentum struct {
	Max       float64 `yaml:"max"`
	Decay     float64 `yaml:"decay"`      // Subtracted once per tick
	MaxDecay  float64 `yaml:"max_decay"`  // Cap for the ramped decay
	WarnRatio float64 `yaml:"warn_ratio"` // Fraction of Max below which a warning fires
}

// Scoring defines time-based score accrual.
type Scoring struct {
	PerSecond float64 `yaml:"per_second"`
}

// DifficultyConfig defines the wave ramp.
type DifficultyConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Interval   float64 `yaml:"interval"`
	Multiplier float64 `yaml:"multiplier"`
}

// Effects defines cosmetic particle and popup behavior.
type Effects struct {
	ParticleCount int     `yaml:"particle_count"`
	ParticleSpeed float64 `yaml:"particle_speed"`
	ParticleLife  int     `yaml:"particle_life"`
	PopupLife     int     `yaml:"popup_life"`
	PopupRise     float64 `yaml:"popup_rise"`
	PopupOffset   float64 `yaml:"popup_offset"` // popup starts this far above the pickup
}

// Input defines gesture thresholds.
type Input struct {
	SwipeThreshold float64 `yaml:"swipe_threshold"`
}

// PlayerY returns the fixed vertical position of the player's hitbox.
func (c RunnerConfig) PlayerY() float64 {
	return c.Playfield.Height - c.Player.Size - c.Player.BottomMargin
}

// Validate checks that the config can drive a run.
func (c RunnerConfig) Validate() error {
	var problems []string
	check := func(ok bool, msg string) {
		if !ok {
			problems = append(problems, msg)
		}
	}

	check(c.Playfield.Lanes > 0, "playfield.lanes must be positive")
	check(c.Playfield.LaneWidth > 0, "playfield.lane_width must be positive")
	check(c.Playfield.Height > 0, "playfield.height must be positive")
	check(c.Player.Size > 0, "player.size must be positive")
	check(c.Player.StartLane >= 0 && c.Player.StartLane < c.Playfield.Lanes, "player.start_lane out of range")
	check(c.PlayerY() >= 0, "player does not fit in the playfield")
	check(c.Chaos.Size > 0, "chaos.size must be positive")
	check(c.Chaos.SpawnInterval > 0 && c.Chaos.MinInterval > 0, "chaos intervals must be positive")
	check(c.Chaos.MinInterval <= c.Chaos.SpawnInterval, "chaos.min_interval exceeds spawn_interval")
	check(c.Chaos.Speed > 0 && c.Chaos.Speed <= c.Chaos.MaxSpeed, "chaos.speed must be in (0, max_speed]")
	check(c.Trainers.Size > 0, "trainers.size must be positive")
	check(c.Trainers.SpawnInterval > 0, "trainers.spawn_interval must be positive")
	check(c.Trainers.Speed > 0, "trainers.speed must be positive")
	check(c.Momentum.Max > 0, "momentum.max must be positive")
	check(c.Momentum.Decay >= 0 && c.Momentum.Decay <= c.Momentum.MaxDecay, "momentum.decay must be in [0, max_decay]")
	check(c.Momentum.WarnRatio >= 0 && c.Momentum.WarnRatio <= 1, "momentum.warn_ratio must be in [0, 1]")
	check(c.Scoring.PerSecond >= 0, "scoring.per_second must not be negative")
	check(c.Difficulty.Interval > 0, "difficulty.interval must be positive")
	check(c.Difficulty.Multiplier > 0, "difficulty.multiplier must be positive")

	if len(problems) > 0 {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, problems)
	}
	return nil
}
