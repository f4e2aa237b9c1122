package runner

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/nisha-go/internal/config"
	"github.com/vovakirdan/nisha-go/internal/core"
)

// Options holds the optional collaborators of a Game. Zero values get
// working defaults: a time-seeded random source, a NopSink, an in-memory
// high score and a discarding logger.
type Options struct {
	Rand          Rand
	Sink          FeedbackSink
	Scores        HighScoreStore
	Logger        *log.Logger
	ReducedMotion bool
	SessionID     string
}

// RunSummary describes a finished run.
type RunSummary struct {
	SessionID string
	Score     float64
	HighScore float64
	Wave      int
	Reason    DeathReason
	NewRecord bool
	Duration  time.Duration // Play time, pauses excluded
}

// Game owns the run state and applies the per-tick update in a fixed order.
type Game struct {
	cfg           config.RunnerConfig
	run           RunState
	spawner       Spawner
	sink          FeedbackSink
	scores        HighScoreStore
	logger        *log.Logger
	reducedMotion bool
	sessionID     string

	highScore float64
	lastRun   *RunSummary
	finished  int
}

// New creates a game in the start phase. The stored high score is read once here.
func New(cfg config.RunnerConfig, opts Options) *Game {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Sink == nil {
		opts.Sink = NopSink{}
	}
	if opts.Scores == nil {
		opts.Scores = &MemoryHighScore{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.SessionID == "" {
		opts.SessionID = NewSessionID()
	}

	g := &Game{
		cfg:           cfg,
		run:           newRunState(cfg),
		spawner:       NewSpawner(opts.Rand),
		sink:          opts.Sink,
		scores:        opts.Scores,
		logger:        opts.Logger,
		reducedMotion: opts.ReducedMotion,
		sessionID:     opts.SessionID,
	}
	g.loadHighScore()
	return g
}

// NewSessionID returns a short hex tag like "0x1A2B3C" identifying a session on the HUD.
func NewSessionID() string {
	id := uuid.New()
	return fmt.Sprintf("0x%02X%02X%02X", id[0], id[1], id[2])
}

// Config returns the configuration the game was built with.
func (g *Game) Config() config.RunnerConfig {
	return g.cfg
}

// State returns a copy of the run state. Entity slices are shared and must
// be treated as read-only.
func (g *Game) State() RunState {
	return g.run
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.run.Phase
}

// HighScore returns the best score known to this session.
func (g *Game) HighScore() float64 {
	return g.highScore
}

// SessionID returns the HUD session tag.
func (g *Game) SessionID() string {
	return g.sessionID
}

// ReducedMotion reports whether cosmetic particles are suppressed.
func (g *Game) ReducedMotion() bool {
	return g.reducedMotion
}

// LastRun returns the summary of the most recently finished run.
func (g *Game) LastRun() (RunSummary, bool) {
	if g.lastRun == nil {
		return RunSummary{}, false
	}
	return *g.lastRun, true
}

// FinishedRuns counts the runs that have ended since the game was created.
func (g *Game) FinishedRuns() int {
	return g.finished
}

// Start begins the first run. Only valid from the start phase.
func (g *Game) Start() bool {
	if g.run.Phase != PhaseStart {
		return false
	}
	g.beginRun()
	return true
}

// Restart discards the current run and begins a fresh one.
// Valid from the paused and game over phases.
func (g *Game) Restart() bool {
	if g.run.Phase != PhasePaused && g.run.Phase != PhaseGameOver {
		return false
	}
	g.beginRun()
	return true
}

func (g *Game) beginRun() {
	g.run = newRunState(g.cfg)
	g.run.Phase = PhasePlaying
	g.notify(Event{Kind: EventGameStarted})
}

// Pause freezes the run. Only valid while playing.
func (g *Game) Pause() bool {
	if g.run.Phase != PhasePlaying {
		return false
	}
	g.run.Phase = PhasePaused
	return true
}

// Resume continues a paused run.
func (g *Game) Resume() bool {
	if g.run.Phase != PhasePaused {
		return false
	}
	g.run.Phase = PhasePlaying
	return true
}

// TogglePause switches between playing and paused; other phases ignore it.
func (g *Game) TogglePause() bool {
	if g.run.Phase == PhasePlaying {
		return g.Pause()
	}
	return g.Resume()
}

// Abort ends the current run as if the player had crashed.
func (g *Game) Abort() bool {
	if g.run.Phase != PhasePlaying && g.run.Phase != PhasePaused {
		return false
	}
	g.endRun(DeathCollision)
	return true
}

// Move shifts the player one lane left (dir < 0) or right (dir > 0).
// Moves outside the playfield, or outside the playing phase, are ignored.
func (g *Game) Move(dir int) bool {
	if g.run.Phase != PhasePlaying || dir == 0 {
		return false
	}

	step := 1
	if dir < 0 {
		step = -1
	}
	lane := g.run.PlayerLane + step
	if lane < 0 || lane >= g.cfg.Playfield.Lanes {
		return false
	}

	g.run.PlayerLane = lane
	g.notify(Event{Kind: EventMoved, Lane: lane, Score: g.run.Score})
	return true
}

// HandleInput applies buffered actions in arrival order.
// Confirm and Tap are contextual: start, resume or restart depending on phase.
// ToggleSound and Quit belong to the host and are ignored here.
func (g *Game) HandleInput(in core.InputFrame) {
	for _, a := range in.Actions {
		switch a {
		case core.ActionLeft:
			g.Move(-1)
		case core.ActionRight:
			g.Move(1)
		case core.ActionConfirm, core.ActionTap:
			switch g.run.Phase {
			case PhaseStart:
				g.Start()
			case PhasePaused:
				g.Resume()
			case PhaseGameOver:
				g.Restart()
			}
		case core.ActionPause:
			g.TogglePause()
		case core.ActionRestart:
			g.Restart()
		case core.ActionAbort:
			g.Abort()
		}
	}
}

// Update advances the run by one tick that took elapsedMs of wall time.
// It does nothing unless the game is playing.
func (g *Game) Update(elapsedMs float64) {
	if g.run.Phase != PhasePlaying {
		return
	}
	if elapsedMs < 0 {
		elapsedMs = 0
	}

	run := &g.run
	cfg := g.cfg
	run.Elapsed += elapsedMs

	// Depletion is checked before anything moves, so it wins over a collision
	// on the same tick.
	if Drain(run, cfg, elapsedMs) {
		g.endRun(DeathMomentumDepleted)
		return
	}

	if run.Elapsed-run.LastChaosSpawn > run.ChaosInterval {
		g.spawner.SpawnObstacle(run, cfg)
		run.LastChaosSpawn = run.Elapsed
	}
	if run.Elapsed-run.LastTrainerSpawn > cfg.Trainers.SpawnInterval {
		g.spawner.SpawnPickup(run, cfg)
		run.LastTrainerSpawn = run.Elapsed
	}
	if cfg.Difficulty.Enabled && run.Elapsed-run.LastDifficultyTick > cfg.Difficulty.Interval {
		Advance(run, cfg)
		run.LastDifficultyTick = run.Elapsed
	}

	StepMotion(run, cfg)

	res := ResolveCollisions(run, cfg)
	if res.Collided {
		g.endRun(DeathCollision)
		return
	}
	for _, c := range res.Collected {
		emitCollectEffects(run, cfg, c, g.reducedMotion)
		g.notify(Event{Kind: EventCollected, Lane: c.Lane, X: c.X, Y: c.Y, Score: run.Score})
	}

	StepEffects(run, cfg)

	if CheckMomentumWarning(run, cfg) {
		g.notify(Event{Kind: EventMomentumLow, Score: run.Score})
	}
}

// endRun performs the single terminal transition of a run.
func (g *Game) endRun(reason DeathReason) {
	if g.run.Phase == PhaseGameOver {
		return
	}

	g.run.Phase = PhaseGameOver
	g.run.DeathReason = reason
	g.finished++
	g.run.NewRecord = g.recordHighScore()

	if reason == DeathCollision {
		g.notify(Event{Kind: EventCollided, Reason: reason, Score: g.run.Score})
	}
	g.notify(Event{
		Kind:      EventGameOver,
		Reason:    reason,
		Score:     g.run.Score,
		NewRecord: g.run.NewRecord,
	})

	g.lastRun = &RunSummary{
		SessionID: g.sessionID,
		Score:     g.run.Score,
		HighScore: g.highScore,
		Wave:      g.run.Wave,
		Reason:    reason,
		NewRecord: g.run.NewRecord,
		Duration:  time.Duration(g.run.Elapsed * float64(time.Millisecond)),
	}
}

func (g *Game) notify(e Event) {
	g.sink.Notify(e)
}
