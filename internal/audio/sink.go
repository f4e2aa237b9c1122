package audio

import (
	"sync"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/nisha-go/internal/runner"
)

// Player accepts finished streamers for asynchronous playback.
type Player interface {
	Play(beep.Streamer)
}

// Sink plays a cue for every gameplay event. It implements runner.FeedbackSink.
type Sink struct {
	mu      sync.Mutex
	synth   *Synth
	player  Player
	enabled bool
}

// NewSink creates an enabled sink. A nil player makes every event silent.
func NewSink(player Player, synth *Synth) *Sink {
	if synth == nil {
		synth = NewSynth(SampleRate, DefaultVolume)
	}
	return &Sink{synth: synth, player: player, enabled: player != nil}
}

// Notify implements runner.FeedbackSink.
func (s *Sink) Notify(e runner.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled || s.player == nil {
		return
	}
	if st := s.synth.Render(CueFor(e.Kind)); st != nil {
		s.player.Play(st)
	}
}

// Toggle switches sound on or off and returns the new state.
// Without a player the sink stays off.
func (s *Sink) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enabled = !s.enabled && s.player != nil
	return s.enabled
}

// SetEnabled forces the sound state.
func (s *Sink) SetEnabled(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = on && s.player != nil
}

// Enabled reports whether cues are played.
func (s *Sink) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

var _ runner.FeedbackSink = (*Sink)(nil)
