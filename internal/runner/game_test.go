package runner

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/nisha-go/internal/config"
	"github.com/vovakirdan/nisha-go/internal/core"
)

func TestNewGameStartsIdle(t *testing.T) {
	g, _ := newTestGame(config.DefaultRunnerConfig())

	if g.Phase() != PhaseStart {
		t.Fatalf("phase = %v, want start", g.Phase())
	}
	run := g.State()
	if run.PlayerLane != 1 || run.Momentum != 100 || run.Wave != 1 {
		t.Errorf("unexpected initial run: %+v", run)
	}

	g.Update(1000)
	if g.State().Score != 0 {
		t.Error("Update must not advance a run that has not started")
	}
}

func TestPhaseTransitions(t *testing.T) {
	g, sink := newTestGame(quietConfig())

	if g.Pause() || g.Restart() || g.Abort() {
		t.Fatal("pause, restart and abort must be rejected before start")
	}
	if !g.Start() || g.Phase() != PhasePlaying {
		t.Fatal("start should enter playing")
	}
	if g.Start() {
		t.Error("start is only valid once")
	}
	if sink.count(EventGameStarted) != 1 {
		t.Errorf("game started events = %d, want 1", sink.count(EventGameStarted))
	}

	g.TogglePause()
	if g.Phase() != PhasePaused {
		t.Fatalf("phase = %v, want paused", g.Phase())
	}
	before := g.State()
	g.Update(500)
	if g.State().Score != before.Score || g.State().Momentum != before.Momentum {
		t.Error("paused run must not change")
	}
	if g.Move(-1) {
		t.Error("moves are ignored while paused")
	}

	g.TogglePause()
	if g.Phase() != PhasePlaying {
		t.Fatalf("phase = %v, want playing", g.Phase())
	}

	if !g.Abort() || g.Phase() != PhaseGameOver {
		t.Fatal("abort should end the run")
	}
	if g.State().DeathReason != DeathCollision {
		t.Errorf("abort reason = %v, want collision", g.State().DeathReason)
	}
	if g.TogglePause() {
		t.Error("game over cannot be paused")
	}
}

func TestLaneStaysInRange(t *testing.T) {
	g, sink := newTestGame(quietConfig())
	g.Start()

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		dir := rng.Intn(3) - 1
		g.Move(dir)
		if lane := g.State().PlayerLane; lane < 0 || lane > 2 {
			t.Fatalf("lane %d out of bounds after %d moves", lane, i)
		}
	}

	g.run.PlayerLane = 0
	moved := sink.count(EventMoved)
	if g.Move(-1) {
		t.Error("moving left from lane 0 must be a no-op")
	}
	if sink.count(EventMoved) != moved {
		t.Error("a rejected move must not emit feedback")
	}
	g.run.PlayerLane = 2
	if g.Move(1) {
		t.Error("moving right from the last lane must be a no-op")
	}
}

func TestMomentumBoundAndScoreMonotonic(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	g := New(cfg, Options{Rand: rand.New(rand.NewSource(3))})
	g.Start()

	rng := rand.New(rand.NewSource(11))
	prev := 0.0
	for i := 0; i < 20000 && g.Phase() == PhasePlaying; i++ {
		if rng.Intn(10) == 0 {
			g.Move(rng.Intn(3) - 1)
		}
		g.Update(16.6)

		run := g.State()
		if run.Momentum < 0 || run.Momentum > cfg.Momentum.Max {
			t.Fatalf("tick %d: momentum %v out of [0, %v]", i, run.Momentum, cfg.Momentum.Max)
		}
		if run.Score < prev {
			t.Fatalf("tick %d: score dropped from %v to %v", i, prev, run.Score)
		}
		prev = run.Score
		for _, o := range run.Obstacles {
			if o.Lane < 0 || o.Lane >= cfg.Playfield.Lanes {
				t.Fatalf("obstacle lane %d out of bounds", o.Lane)
			}
		}
		for _, p := range run.Pickups {
			if p.Lane < 0 || p.Lane >= cfg.Playfield.Lanes {
				t.Fatalf("pickup lane %d out of bounds", p.Lane)
			}
		}
	}
}

func TestMomentumDepletionScenario(t *testing.T) {
	cfg := quietConfig()
	cfg.Momentum.Decay = 0.5
	cfg.Momentum.MaxDecay = 1
	g, sink := newTestGame(cfg)
	g.Start()

	ticks := int(cfg.Momentum.Max / cfg.Momentum.Decay)
	for i := 0; i < ticks-1; i++ {
		g.Update(0)
		if g.Phase() != PhasePlaying {
			t.Fatalf("run ended early at tick %d", i+1)
		}
	}
	g.Update(0)

	run := g.State()
	if run.Phase != PhaseGameOver {
		t.Fatalf("phase = %v after %d ticks, want game over", run.Phase, ticks)
	}
	if run.DeathReason != DeathMomentumDepleted {
		t.Errorf("reason = %v, want momentum", run.DeathReason)
	}
	if run.Momentum != 0 {
		t.Errorf("momentum = %v, want exactly 0", run.Momentum)
	}
	if sink.count(EventCollided) != 0 {
		t.Error("depletion must not report a collision")
	}
	if sink.count(EventMomentumLow) != 1 {
		t.Errorf("momentum low events = %d, want 1", sink.count(EventMomentumLow))
	}
}

func TestMomentumDepletionWithDefaultDecay(t *testing.T) {
	cfg := quietConfig()
	g, _ := newTestGame(cfg)
	g.Start()

	ticks := 0
	for g.Phase() == PhasePlaying && ticks < 6000 {
		g.Update(0)
		ticks++
	}

	want := int(math.Round(cfg.Momentum.Max / cfg.Momentum.Decay))
	if ticks != want {
		t.Errorf("depleted after %d ticks, want exactly %d", ticks, want)
	}
	if g.State().Momentum != 0 {
		t.Errorf("momentum = %v, want 0", g.State().Momentum)
	}
	if g.State().DeathReason != DeathMomentumDepleted {
		t.Errorf("reason = %v, want momentum", g.State().DeathReason)
	}
}

func TestPickupCollectionScenario(t *testing.T) {
	cfg := quietConfig()
	g, sink := newTestGame(cfg)
	g.Start()

	g.run.Momentum = 10
	g.run.MomentumWarned = true
	g.run.Pickups = []Pickup{{Lane: 1, Y: cfg.PlayerY(), Speed: 0}}

	res := ResolveCollisions(&g.run, cfg)

	if res.Collided {
		t.Fatal("pickup must not count as a collision")
	}
	if len(res.Collected) != 1 || res.Collected[0].Lane != 1 {
		t.Fatalf("collected = %+v, want one pickup in lane 1", res.Collected)
	}
	if g.run.Score != 100 {
		t.Errorf("score = %v, want 100", g.run.Score)
	}
	if g.run.Momentum != 30 {
		t.Errorf("momentum = %v, want 30", g.run.Momentum)
	}
	if len(g.run.Pickups) != 0 {
		t.Error("pickup should be removed")
	}
	if g.run.MomentumWarned {
		t.Error("collection should re-arm the momentum warning")
	}
	_ = sink
}

func TestPickupMomentumIsCapped(t *testing.T) {
	cfg := quietConfig()
	run := newRunState(cfg)
	run.Momentum = 95
	run.Pickups = []Pickup{{Lane: 1, Y: cfg.PlayerY()}, {Lane: 1, Y: cfg.PlayerY() + 1}}

	res := ResolveCollisions(&run, cfg)
	if len(res.Collected) != 2 {
		t.Fatalf("collected %d pickups, want 2", len(res.Collected))
	}
	if run.Momentum != cfg.Momentum.Max {
		t.Errorf("momentum = %v, want capped at %v", run.Momentum, cfg.Momentum.Max)
	}
	if run.Score != 200 {
		t.Errorf("score = %v, want 200", run.Score)
	}
}

func TestCollectedPickupThroughUpdate(t *testing.T) {
	cfg := quietConfig()
	g, sink := newTestGame(cfg)
	g.Start()
	g.run.Pickups = []Pickup{{Lane: 1, Y: cfg.PlayerY(), Speed: 0}}

	g.Update(0)

	if sink.count(EventCollected) != 1 {
		t.Fatalf("collected events = %d, want 1", sink.count(EventCollected))
	}
	if len(g.run.Particles) != cfg.Effects.ParticleCount {
		t.Errorf("particles = %d, want %d", len(g.run.Particles), cfg.Effects.ParticleCount)
	}
	if len(g.run.Popups) != 1 || g.run.Popups[0].Text != "+100" {
		t.Errorf("popups = %+v, want one +100", g.run.Popups)
	}
}

func TestObstacleCollisionScenario(t *testing.T) {
	tests := []struct {
		name     string
		momentum float64
	}{
		{"full momentum", 100},
		{"half momentum", 50},
		{"almost empty", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := quietConfig()
			g, sink := newTestGame(cfg)
			g.Start()
			g.run.PlayerLane = 0
			g.run.Momentum = tt.momentum
			g.run.Obstacles = []Obstacle{{Lane: 0, Y: cfg.PlayerY(), Speed: 0}}

			g.Update(0)

			run := g.State()
			if run.Phase != PhaseGameOver || run.DeathReason != DeathCollision {
				t.Fatalf("phase=%v reason=%v, want game over by collision", run.Phase, run.DeathReason)
			}
			if sink.count(EventCollided) != 1 || sink.count(EventGameOver) != 1 {
				t.Errorf("collided=%d gameover=%d, want 1 each", sink.count(EventCollided), sink.count(EventGameOver))
			}
		})
	}
}

func TestObstacleHitSkipsPickups(t *testing.T) {
	cfg := quietConfig()
	run := newRunState(cfg)
	run.Obstacles = []Obstacle{{Lane: 1, Y: cfg.PlayerY()}}
	run.Pickups = []Pickup{{Lane: 1, Y: cfg.PlayerY()}}

	res := ResolveCollisions(&run, cfg)
	if !res.Collided {
		t.Fatal("expected collision")
	}
	if len(run.Pickups) != 1 || run.Score != 0 {
		t.Error("pickups must not be resolved after an obstacle hit")
	}
}

func TestTerminalExclusivity(t *testing.T) {
	cfg := quietConfig()
	g, sink := newTestGame(cfg)
	g.Start()

	// Both terminal conditions hold on the same tick
	g.run.Momentum = cfg.Momentum.Decay / 2
	g.run.Obstacles = []Obstacle{{Lane: 1, Y: cfg.PlayerY()}}

	g.Update(16)
	g.Update(16)
	g.Abort()

	if g.State().DeathReason != DeathMomentumDepleted {
		t.Errorf("reason = %v, want momentum to win", g.State().DeathReason)
	}
	if n := sink.count(EventGameOver); n != 1 {
		t.Errorf("game over events = %d, want exactly 1", n)
	}
	if n := sink.count(EventCollided); n != 0 {
		t.Errorf("collided events = %d, want 0", n)
	}
}

func TestRestartIdempotence(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	g := New(cfg, Options{Rand: rand.New(rand.NewSource(5))})
	g.Start()
	for i := 0; i < 3000 && g.Phase() == PhasePlaying; i++ {
		g.Update(50)
	}
	if g.Phase() == PhasePlaying {
		g.Abort()
	}

	if !g.Restart() {
		t.Fatal("restart from game over should succeed")
	}

	fresh := New(cfg, Options{Rand: &fixedRand{}})
	fresh.Start()

	got, want := g.State(), fresh.State()
	if got.Score != 0 || got.Momentum != cfg.Momentum.Max || got.Wave != 1 {
		t.Errorf("restart did not reset counters: %+v", got)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("restarted run differs from a fresh one:\n got %+v\nwant %+v", got, want)
	}
}

func TestFinishedRunsCountsEveryEnd(t *testing.T) {
	g, _ := newTestGame(quietConfig())
	if g.FinishedRuns() != 0 {
		t.Fatalf("finished runs = %d before start", g.FinishedRuns())
	}
	g.Start()
	g.Abort()
	g.Abort()
	if g.FinishedRuns() != 1 {
		t.Errorf("finished runs = %d, want 1 after a repeated abort", g.FinishedRuns())
	}

	g.HandleInput(core.InputFrame{Actions: []core.Action{core.ActionRestart, core.ActionAbort}})
	if g.Phase() != PhaseGameOver || g.FinishedRuns() != 2 {
		t.Errorf("phase = %v, finished runs = %d, want game over and 2", g.Phase(), g.FinishedRuns())
	}
}

func TestRestartFromPause(t *testing.T) {
	g, _ := newTestGame(quietConfig())
	g.Start()
	g.Update(1000)
	g.Pause()

	if !g.Restart() || g.Phase() != PhasePlaying {
		t.Fatal("restart from pause should begin a new run")
	}
	if g.State().Score != 0 {
		t.Errorf("score = %v after restart, want 0", g.State().Score)
	}
}

func TestHandleInputContextualTap(t *testing.T) {
	g, _ := newTestGame(quietConfig())

	tap := func() {
		in := core.NewInputFrame()
		in.Set(core.ActionTap)
		g.HandleInput(in)
	}

	tap()
	if g.Phase() != PhasePlaying {
		t.Fatalf("tap on start screen: phase = %v", g.Phase())
	}

	in := core.NewInputFrame()
	in.Set(core.ActionLeft)
	in.Set(core.ActionPause)
	g.HandleInput(in)
	if g.State().PlayerLane != 0 || g.Phase() != PhasePaused {
		t.Fatalf("left then pause: lane=%d phase=%v", g.State().PlayerLane, g.Phase())
	}

	tap()
	if g.Phase() != PhasePlaying {
		t.Fatalf("tap while paused should resume, phase = %v", g.Phase())
	}

	g.Abort()
	tap()
	if g.Phase() != PhasePlaying || g.State().PlayerLane != 1 {
		t.Fatalf("tap on game over should restart, phase=%v lane=%d", g.Phase(), g.State().PlayerLane)
	}
}

func TestSpawnTimersUsePlayTime(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Difficulty.Enabled = false
	g, _ := newTestGame(cfg)
	g.Start()

	g.Update(1800)
	if len(g.run.Obstacles) != 0 {
		t.Fatal("spawn requires strictly more than the interval")
	}
	g.Update(1)
	if len(g.run.Obstacles) != 1 {
		t.Fatalf("obstacles = %d, want 1", len(g.run.Obstacles))
	}

	g.Pause()
	g.Update(5000)
	g.Resume()
	g.Update(1)
	if len(g.run.Obstacles) != 1 {
		t.Error("paused time must not count towards spawning")
	}
}

func TestDifficultyTicksDuringUpdate(t *testing.T) {
	cfg := quietConfig()
	cfg.Difficulty.Enabled = true
	g, _ := newTestGame(cfg)
	g.Start()

	g.Update(cfg.Difficulty.Interval + 1)
	if g.run.Wave != 2 {
		t.Errorf("wave = %d, want 2", g.run.Wave)
	}
	g.Update(1)
	if g.run.Wave != 2 {
		t.Error("difficulty must wait for the next interval")
	}
}

func TestHighScorePersistence(t *testing.T) {
	store := &MemoryHighScore{}
	store.SaveHighScore(50)

	g := New(quietConfig(), Options{Scores: store, Rand: &fixedRand{}})
	if g.HighScore() != 50 {
		t.Fatalf("high score = %v, want 50", g.HighScore())
	}

	g.Start()
	g.run.Score = 120.5
	g.Abort()

	if !g.State().NewRecord {
		t.Error("expected a new record")
	}
	saved, _ := store.LoadHighScore()
	if saved != 120.5 || g.HighScore() != 120.5 {
		t.Errorf("saved=%v high=%v, want 120.5", saved, g.HighScore())
	}

	g.Restart()
	g.run.Score = 10
	g.Abort()
	if g.State().NewRecord {
		t.Error("a lower score is not a record")
	}

	summary, ok := g.LastRun()
	if !ok || summary.HighScore != 120.5 || summary.NewRecord {
		t.Errorf("last run = %+v", summary)
	}
}

func TestHighScoreStoreFailuresAreNotFatal(t *testing.T) {
	store := &failingStore{}
	g := New(quietConfig(), Options{Scores: store, Rand: &fixedRand{}})
	if g.HighScore() != 0 {
		t.Errorf("high score = %v, want 0 on load failure", g.HighScore())
	}

	g.Start()
	g.run.Score = 42
	g.Abort()

	if store.saves != 1 {
		t.Errorf("saves = %d, want 1", store.saves)
	}
	if !g.State().NewRecord || g.HighScore() != 42 {
		t.Error("in-memory record should survive a failed save")
	}
}

func TestSessionIDFormat(t *testing.T) {
	id := NewSessionID()
	if len(id) != 8 || id[:2] != "0x" {
		t.Fatalf("session id %q, want 0x + 6 hex digits", id)
	}
	for _, r := range id[2:] {
		if !(r >= '0' && r <= '9' || r >= 'A' && r <= 'F') {
			t.Errorf("session id %q has non-hex digit %q", id, r)
		}
	}
}

func TestScoreAccruesFromElapsedTime(t *testing.T) {
	g, _ := newTestGame(quietConfig())
	g.Start()
	g.Update(500)
	g.Update(500)

	if math.Abs(g.State().Score-10) > 1e-9 {
		t.Errorf("score = %v, want 10 after one second", g.State().Score)
	}
}
