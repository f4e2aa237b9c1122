package core

// RuntimeConfig is what the host platform tells a run about its surroundings.
// Gameplay tuning lives in config.RunnerConfig instead.
type RuntimeConfig struct {
	ScreenW       int   // terminal columns
	ScreenH       int   // terminal rows
	TickRate      int   // host frames per second
	Seed          int64 // spawn RNG seed; 0 seeds from the clock
	ReducedMotion bool  // drop cosmetic particles
}

// DefaultConfig is a classic 80x24 terminal at 60 fps.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}
