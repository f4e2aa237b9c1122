package runner

import (
	"github.com/vovakirdan/nisha-go/internal/config"
	"github.com/vovakirdan/nisha-go/internal/core"
)

// Collection describes one collected pickup.
type Collection struct {
	Lane int
	X, Y float64 // Center of the pickup at the moment of contact
}

// CollisionResult is the outcome of one collision pass.
type CollisionResult struct {
	Collided  bool
	Collected []Collection
}

// laneLeft returns the left edge of a lane.
func laneLeft(cfg config.RunnerConfig, lane int) float64 {
	return float64(lane) * cfg.Playfield.LaneWidth
}

// centeredInLane returns the box of an entity of the given size centered in lane.
func centeredInLane(cfg config.RunnerConfig, lane int, y, size float64) core.Rect {
	x := laneLeft(cfg, lane) + (cfg.Playfield.LaneWidth-size)/2
	return core.NewRect(x, y, size, size)
}

// PlayerRect returns the player's hitbox for a lane. The player never moves vertically.
func PlayerRect(cfg config.RunnerConfig, lane int) core.Rect {
	return centeredInLane(cfg, lane, cfg.PlayerY(), cfg.Player.Size)
}

// ObstacleRect returns the hitbox of a chaos block.
func ObstacleRect(cfg config.RunnerConfig, o Obstacle) core.Rect {
	return centeredInLane(cfg, o.Lane, o.Y, cfg.Chaos.Size)
}

// PickupRect returns the hitbox of a trainer.
func PickupRect(cfg config.RunnerConfig, p Pickup) core.Rect {
	return centeredInLane(cfg, p.Lane, p.Y, cfg.Trainers.Size)
}

// ResolveCollisions tests the player against every obstacle and pickup.
// The first obstacle hit stops resolution; pickups are then left untouched.
// Each pickup hit applies the collection reward and removes the pickup.
func ResolveCollisions(run *RunState, cfg config.RunnerConfig) CollisionResult {
	var res CollisionResult
	player := PlayerRect(cfg, run.PlayerLane)

	for _, o := range run.Obstacles {
		if player.Intersects(ObstacleRect(cfg, o)) {
			res.Collided = true
			return res
		}
	}

	for i := len(run.Pickups) - 1; i >= 0; i-- {
		p := run.Pickups[i]
		box := PickupRect(cfg, p)
		if !player.Intersects(box) {
			continue
		}
		Collect(run, cfg)
		cx, cy := box.Center()
		res.Collected = append(res.Collected, Collection{Lane: p.Lane, X: cx, Y: cy})
		run.Pickups = append(run.Pickups[:i], run.Pickups[i+1:]...)
	}

	return res
}
