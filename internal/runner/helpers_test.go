package runner

import (
	"errors"

	"github.com/vovakirdan/nisha-go/internal/config"
)

// fixedRand replays scripted values, cycling when exhausted.
type fixedRand struct {
	ints   []int
	floats []float64
	ii, fi int
}

func (r *fixedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[r.ii%len(r.ints)]
	r.ii++
	return v % n
}

func (r *fixedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[r.fi%len(r.floats)]
	r.fi++
	return v
}

// recordingSink keeps every event it receives.
type recordingSink struct {
	events []Event
}

func (s *recordingSink) Notify(e Event) {
	s.events = append(s.events, e)
}

func (s *recordingSink) count(kind EventKind) int {
	n := 0
	for _, e := range s.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// failingStore errors on every call.
type failingStore struct {
	saves int
}

func (f *failingStore) LoadHighScore() (float64, error) {
	return 0, errors.New("disk on fire")
}

func (f *failingStore) SaveHighScore(float64) error {
	f.saves++
	return errors.New("disk on fire")
}

// quietConfig returns the defaults with spawning pushed out of reach.
func quietConfig() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Chaos.SpawnInterval = 1e12
	cfg.Trainers.SpawnInterval = 1e12
	cfg.Difficulty.Enabled = false
	return cfg
}

func newTestGame(cfg config.RunnerConfig) (*Game, *recordingSink) {
	sink := &recordingSink{}
	g := New(cfg, Options{Rand: &fixedRand{}, Sink: sink, SessionID: "0xABCDEF"})
	return g, sink
}
