package runner

import (
	"testing"

	"github.com/vovakirdan/nisha-go/internal/config"
)

func TestAdvanceConverges(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	run := newRunState(cfg)

	for i := 0; i < 500; i++ {
		Advance(&run, cfg)
		if run.ChaosSpeed > cfg.Chaos.MaxSpeed {
			t.Fatalf("call %d: speed %v exceeds max %v", i, run.ChaosSpeed, cfg.Chaos.MaxSpeed)
		}
		if run.ChaosInterval < cfg.Chaos.MinInterval {
			t.Fatalf("call %d: interval %v below min %v", i, run.ChaosInterval, cfg.Chaos.MinInterval)
		}
		if run.MomentumDecay > cfg.Momentum.MaxDecay {
			t.Fatalf("call %d: decay %v exceeds cap %v", i, run.MomentumDecay, cfg.Momentum.MaxDecay)
		}
	}

	if run.ChaosSpeed != cfg.Chaos.MaxSpeed {
		t.Errorf("speed = %v, want to settle at %v", run.ChaosSpeed, cfg.Chaos.MaxSpeed)
	}
	if run.ChaosInterval != cfg.Chaos.MinInterval {
		t.Errorf("interval = %v, want to settle at %v", run.ChaosInterval, cfg.Chaos.MinInterval)
	}
	if run.Wave != 501 {
		t.Errorf("wave = %d, want 501", run.Wave)
	}
}

func TestAdvanceOneStep(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	run := newRunState(cfg)
	Advance(&run, cfg)

	if run.Wave != 2 {
		t.Errorf("wave = %d, want 2", run.Wave)
	}
	m := cfg.Difficulty.Multiplier
	if got, want := run.ChaosSpeed, cfg.Chaos.Speed*m; got != want {
		t.Errorf("speed = %v, want %v", got, want)
	}
	if got, want := run.ChaosInterval, cfg.Chaos.SpawnInterval/m; got != want {
		t.Errorf("interval = %v, want %v", got, want)
	}
	if run.SpeedMultiplier != m {
		t.Errorf("multiplier = %v, want 1.08", run.SpeedMultiplier)
	}
}

func TestSpawnObstacleSnapshotsSpeed(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	run := newRunState(cfg)
	s := NewSpawner(&fixedRand{ints: []int{2}})

	o := s.SpawnObstacle(&run, cfg)
	if o.Lane != 2 || o.Y != -cfg.Chaos.Size || o.Speed != cfg.Chaos.Speed {
		t.Fatalf("obstacle = %+v", o)
	}

	Advance(&run, cfg)
	if run.Obstacles[0].Speed != cfg.Chaos.Speed {
		t.Error("difficulty must not change the speed of existing obstacles")
	}
	if o2 := s.SpawnObstacle(&run, cfg); o2.Speed != run.ChaosSpeed {
		t.Errorf("new obstacle speed = %v, want %v", o2.Speed, run.ChaosSpeed)
	}
}

func TestSpawnPickupRedirect(t *testing.T) {
	tests := []struct {
		name      string
		obstacles []Obstacle
		coin      float64
		wantLane  int
	}{
		{"no obstacle", nil, 0.9, 2},
		{"obstacle near top, coin heads", []Obstacle{{Lane: 2, Y: 10}}, 0.9, 0},
		{"obstacle near top, coin tails", []Obstacle{{Lane: 2, Y: 10}}, 0.5, 2},
		{"obstacle low in lane", []Obstacle{{Lane: 2, Y: 200}}, 0.9, 2},
		{"obstacle in other lane", []Obstacle{{Lane: 1, Y: 10}}, 0.9, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultRunnerConfig()
			run := newRunState(cfg)
			run.Obstacles = tt.obstacles
			run.SpeedMultiplier = 1.5
			s := NewSpawner(&fixedRand{ints: []int{2}, floats: []float64{tt.coin}})

			p := s.SpawnPickup(&run, cfg)
			if p.Lane != tt.wantLane {
				t.Errorf("lane = %d, want %d", p.Lane, tt.wantLane)
			}
			if p.Y != -cfg.Trainers.Size || p.Speed != cfg.Trainers.Speed*1.5 {
				t.Errorf("pickup = %+v", p)
			}
			if len(run.Pickups) != 1 {
				t.Errorf("pickups = %d, want 1", len(run.Pickups))
			}
		})
	}
}

func TestStepMotionPrunes(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	run := newRunState(cfg)
	run.Obstacles = []Obstacle{
		{Lane: 0, Y: 255, Speed: 2},
		{Lane: 1, Y: 0, Speed: 1},
		{Lane: 2, Y: 256, Speed: 0.5},
	}
	run.Pickups = []Pickup{
		{Lane: 0, Y: 256, Speed: 0},
		{Lane: 1, Y: 250, Speed: 10},
	}

	StepMotion(&run, cfg)

	if len(run.Obstacles) != 1 || run.Obstacles[0].Lane != 1 || run.Obstacles[0].Y != 1 {
		t.Errorf("obstacles = %+v, want only the lane 1 block at y=1", run.Obstacles)
	}
	// Y == height is still on the field
	if len(run.Pickups) != 1 || run.Pickups[0].Lane != 0 {
		t.Errorf("pickups = %+v, want only the lane 0 pickup", run.Pickups)
	}
}

func TestCollisionEdgesAreHalfOpen(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	player := PlayerRect(cfg, 1)

	tests := []struct {
		name string
		y    float64
		want bool
	}{
		{"touching from above", player.Y - cfg.Chaos.Size, false},
		{"one unit overlap", player.Y - cfg.Chaos.Size + 1, true},
		{"touching from below", player.Bottom(), false},
		{"just inside bottom", player.Bottom() - 0.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := newRunState(cfg)
			run.Obstacles = []Obstacle{{Lane: 1, Y: tt.y}}
			if got := ResolveCollisions(&run, cfg).Collided; got != tt.want {
				t.Errorf("collided = %v, want %v", got, tt.want)
			}
		})
	}

	run := newRunState(cfg)
	run.Obstacles = []Obstacle{{Lane: 0, Y: player.Y}, {Lane: 2, Y: player.Y}}
	if ResolveCollisions(&run, cfg).Collided {
		t.Error("obstacles in neighbouring lanes must not hit the player")
	}
}

func TestDrain(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	run := newRunState(cfg)

	if Drain(&run, cfg, 100) {
		t.Fatal("full momentum should not deplete")
	}
	if run.Score != 1 {
		t.Errorf("score = %v, want 1 after 100ms", run.Score)
	}
	if run.Momentum != cfg.Momentum.Max-cfg.Momentum.Decay {
		t.Errorf("momentum = %v, want flat per-tick decay", run.Momentum)
	}

	// Decay does not depend on the frame length
	m := run.Momentum
	Drain(&run, cfg, 1000)
	if run.Momentum != m-cfg.Momentum.Decay {
		t.Errorf("momentum = %v, want %v", run.Momentum, m-cfg.Momentum.Decay)
	}

	run.Momentum = 0.01
	if !Drain(&run, cfg, 0) || run.Momentum != 0 {
		t.Errorf("expected depletion clamped to zero, momentum = %v", run.Momentum)
	}

	// Rounding residue from repeated subtraction counts as empty
	run.Momentum = cfg.Momentum.Decay + 1e-12
	if !Drain(&run, cfg, 0) || run.Momentum != 0 {
		t.Errorf("expected residue to deplete, momentum = %v", run.Momentum)
	}
}

func TestMomentumWarningFiresOnce(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	run := newRunState(cfg)

	run.Momentum = 25
	if CheckMomentumWarning(&run, cfg) {
		t.Error("warning is strictly below the threshold")
	}
	run.Momentum = 24.9
	if !CheckMomentumWarning(&run, cfg) {
		t.Fatal("expected warning")
	}
	if CheckMomentumWarning(&run, cfg) {
		t.Error("warning must fire only once")
	}

	Collect(&run, cfg)
	run.Momentum = 10
	if !CheckMomentumWarning(&run, cfg) {
		t.Error("collection should re-arm the warning")
	}
}

func TestEffectsReducedMotion(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	c := Collection{Lane: 1, X: 72, Y: 200}

	run := newRunState(cfg)
	emitCollectEffects(&run, cfg, c, true)
	if len(run.Particles) != 0 {
		t.Errorf("particles = %d, want none with reduced motion", len(run.Particles))
	}
	if len(run.Popups) != 1 {
		t.Fatalf("popups = %d, want 1", len(run.Popups))
	}
	if p := run.Popups[0]; p.X != 72 || p.Y != 190 {
		t.Errorf("popup at (%v, %v), want (72, 190) above the pickup", p.X, p.Y)
	}

	run = newRunState(cfg)
	emitCollectEffects(&run, cfg, c, false)
	if len(run.Particles) != 8 {
		t.Fatalf("particles = %d, want 8", len(run.Particles))
	}

	for i := 0; i < cfg.Effects.ParticleLife-1; i++ {
		StepEffects(&run, cfg)
	}
	if len(run.Particles) != 8 {
		t.Errorf("particles = %d, want 8 before expiry", len(run.Particles))
	}
	if run.Popups[0].Y != 190-float64(cfg.Effects.ParticleLife-1) {
		t.Errorf("popup y = %v, want rising one unit per tick", run.Popups[0].Y)
	}
	StepEffects(&run, cfg)
	if len(run.Particles) != 0 {
		t.Errorf("particles = %d, want expired", len(run.Particles))
	}
	for i := cfg.Effects.ParticleLife; i < cfg.Effects.PopupLife; i++ {
		StepEffects(&run, cfg)
	}
	if len(run.Popups) != 0 {
		t.Errorf("popups = %d, want expired", len(run.Popups))
	}
}

func TestMultiSink(t *testing.T) {
	a, b := &recordingSink{}, &recordingSink{}
	var fn []EventKind
	sink := MultiSink{a, nil, b, SinkFunc(func(e Event) { fn = append(fn, e.Kind) })}

	sink.Notify(Event{Kind: EventMoved})
	sink.Notify(Event{Kind: EventGameOver})

	if len(a.events) != 2 || len(b.events) != 2 || len(fn) != 2 {
		t.Errorf("fan out counts: %d %d %d, want 2 each", len(a.events), len(b.events), len(fn))
	}
	if fn[1] != EventGameOver {
		t.Errorf("order = %v", fn)
	}
}
