package runner

import (
	"time"

	"github.com/vovakirdan/nisha-go/internal/core"
)

// Clock supplies frame timestamps.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Driver turns host frames into game ticks. It measures the time between
// frames, feeds buffered input and calls Update. Time keeps being measured
// while the game is paused, so resuming never produces a huge first delta.
type Driver struct {
	game  *Game
	clock Clock

	last    time.Time
	started bool

	// FPS bookkeeping, sampled once per second of wall time.
	frames    int
	fpsWindow time.Time
	fps       int
}

// NewDriver creates a driver for game. A nil clock uses the system clock.
func NewDriver(game *Game, clock Clock) *Driver {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Driver{game: game, clock: clock}
}

// Game returns the driven game.
func (d *Driver) Game() *Game {
	return d.game
}

// Frame runs one frame at the clock's current time and returns the
// elapsed milliseconds fed to the game.
func (d *Driver) Frame(in core.InputFrame) float64 {
	return d.FrameAt(d.clock.Now(), in)
}

// FrameAt runs one frame at now. The first frame always has zero elapsed time.
func (d *Driver) FrameAt(now time.Time, in core.InputFrame) float64 {
	elapsed := 0.0
	if d.started {
		elapsed = float64(now.Sub(d.last)) / float64(time.Millisecond)
		if elapsed < 0 {
			elapsed = 0
		}
	} else {
		d.started = true
		d.fpsWindow = now
	}
	d.last = now

	d.game.HandleInput(in)
	d.game.Update(elapsed)

	if now.Sub(d.fpsWindow) >= time.Second {
		d.fps = d.frames
		d.frames = 0
		d.fpsWindow = now
	}
	d.frames++
	return elapsed
}

// FPS returns the frame count of the last full second.
func (d *Driver) FPS() int {
	return d.fps
}
