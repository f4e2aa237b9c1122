package runner

import "github.com/vovakirdan/nisha-go/internal/config"

// Rand is the random source used for spawning. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Spawner creates obstacles and pickups at the top of the playfield.
// When to spawn is decided by the caller from the run's timestamps.
type Spawner struct {
	rng Rand
}

// NewSpawner creates a spawner drawing lanes from rng.
func NewSpawner(rng Rand) Spawner {
	return Spawner{rng: rng}
}

// SpawnObstacle adds a chaos block in a random lane, just above the top edge.
func (s Spawner) SpawnObstacle(run *RunState, cfg config.RunnerConfig) Obstacle {
	o := Obstacle{
		Lane:  s.rng.Intn(cfg.Playfield.Lanes),
		Y:     -cfg.Chaos.Size,
		Speed: run.ChaosSpeed,
	}
	run.Obstacles = append(run.Obstacles, o)
	return o
}

// SpawnPickup adds a trainer in a random lane. If a chaos block sits in the
// top third of that lane, a coin flip may shift the trainer to the next lane.
// This only lowers the odds of an unreachable trainer; it guarantees nothing.
func (s Spawner) SpawnPickup(run *RunState, cfg config.RunnerConfig) Pickup {
	lane := s.rng.Intn(cfg.Playfield.Lanes)

	if chaosNearTop(run, lane, cfg.Playfield.Height/3) && s.rng.Float64() > 0.5 {
		lane = (lane + 1) % cfg.Playfield.Lanes
	}

	p := Pickup{
		Lane:  lane,
		Y:     -cfg.Trainers.Size,
		Speed: cfg.Trainers.Speed * run.SpeedMultiplier,
	}
	run.Pickups = append(run.Pickups, p)
	return p
}

func chaosNearTop(run *RunState, lane int, limit float64) bool {
	for _, o := range run.Obstacles {
		if o.Lane == lane && o.Y < limit {
			return true
		}
	}
	return false
}
