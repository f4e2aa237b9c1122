// Package audio turns gameplay events into short chiptune cues.
// It only builds beep streamers; playback belongs to a Player such as
// the speaker in internal/platform/sound.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/vovakirdan/nisha-go/internal/runner"
)

// SampleRate is the rate every cue is rendered at.
const SampleRate = beep.SampleRate(44100)

// DefaultVolume is the master gain applied to every cue.
const DefaultVolume = 0.3

// Wave is an oscillator shape.
type Wave int

const (
	WaveSquare Wave = iota
	WaveSine
	WaveSaw
	WaveNoise
)

// Note is one tone inside a cue.
type Note struct {
	At   time.Duration // Offset from the start of the cue
	Freq float64
	Dur  time.Duration
	Wave Wave
	Gain float64
}

// Cue is a short arrangement of notes played for one event.
type Cue []Note

// Length returns the time until the last note ends.
func (c Cue) Length() time.Duration {
	var end time.Duration
	for _, n := range c {
		end = max(end, n.At+n.Dur)
	}
	return end
}

// CueFor returns the arrangement for an event kind, or nil for silent events.
func CueFor(kind runner.EventKind) Cue {
	ms := time.Millisecond
	switch kind {
	case runner.EventMoved:
		return Cue{{Freq: 220, Dur: 50 * ms, Wave: WaveSquare, Gain: 0.3}}
	case runner.EventCollected:
		return Cue{
			{At: 0, Freq: 440, Dur: 80 * ms, Wave: WaveSquare, Gain: 0.5},
			{At: 50 * ms, Freq: 554, Dur: 80 * ms, Wave: WaveSquare, Gain: 0.5},
			{At: 100 * ms, Freq: 659, Dur: 120 * ms, Wave: WaveSquare, Gain: 0.5},
		}
	case runner.EventGameStarted:
		return Cue{
			{At: 0, Freq: 330, Dur: 100 * ms, Wave: WaveSquare, Gain: 0.4},
			{At: 80 * ms, Freq: 440, Dur: 100 * ms, Wave: WaveSquare, Gain: 0.4},
			{At: 160 * ms, Freq: 550, Dur: 150 * ms, Wave: WaveSquare, Gain: 0.4},
		}
	case runner.EventMomentumLow:
		return Cue{{Freq: 180, Dur: 100 * ms, Wave: WaveSaw, Gain: 0.4}}
	case runner.EventCollided:
		return Cue{{Dur: 150 * ms, Wave: WaveNoise, Gain: 0.8}}
	case runner.EventGameOver:
		// Starts after the crash burst has mostly faded
		return Cue{
			{At: 200 * ms, Freq: 440, Dur: 150 * ms, Wave: WaveSquare, Gain: 0.6},
			{At: 350 * ms, Freq: 349, Dur: 150 * ms, Wave: WaveSquare, Gain: 0.6},
			{At: 500 * ms, Freq: 294, Dur: 200 * ms, Wave: WaveSquare, Gain: 0.6},
			{At: 700 * ms, Freq: 220, Dur: 400 * ms, Wave: WaveSaw, Gain: 0.4},
		}
	default:
		return nil
	}
}

// Synth renders cues into streamers.
type Synth struct {
	rate   beep.SampleRate
	volume float64
	rng    *rand.Rand
}

// NewSynth creates a synth at rate with the given master volume in [0, 1].
func NewSynth(rate beep.SampleRate, volume float64) *Synth {
	return &Synth{rate: rate, volume: volume, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Render builds a finite streamer for c. An empty cue renders nil.
func (s *Synth) Render(c Cue) beep.Streamer {
	if len(c) == 0 {
		return nil
	}

	voices := make([]beep.Streamer, 0, len(c))
	for _, n := range c {
		voice := s.note(n)
		if n.At > 0 {
			voice = beep.Seq(beep.Silence(s.rate.N(n.At)), voice)
		}
		voices = append(voices, voice)
	}

	return newVolume(beep.Mix(voices...), s.volume)
}

// note renders one decaying tone of exactly n.Dur.
func (s *Synth) note(n Note) beep.Streamer {
	samples := s.rate.N(n.Dur)
	src := s.source(n)
	return newDecay(beep.Take(samples, src), samples, n.Gain)
}

// source returns an endless oscillator for the note's wave.
// Tone generators reject frequencies at or above Nyquist; those fall back to
// the local oscillator, which aliases but never fails.
func (s *Synth) source(n Note) beep.Streamer {
	switch n.Wave {
	case WaveSine:
		if tone, err := generators.SineTone(s.rate, n.Freq); err == nil {
			return tone
		}
	case WaveSquare:
		if tone, err := generators.SquareTone(s.rate, n.Freq); err == nil {
			return tone
		}
	}
	return &oscillator{freq: n.Freq, wave: n.Wave, rate: s.rate, rng: s.rng}
}

// oscillator generates saw and noise waves, which the tone generators lack.
type oscillator struct {
	freq  float64
	phase float64
	wave  Wave
	rate  beep.SampleRate
	rng   *rand.Rand
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		var val float64
		switch o.wave {
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		default:
			val = 2 * (o.phase - 0.5)
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// decay scales a stream from gain down to 1 % of gain over total samples,
// the exponential ramp of a plucked chip voice.
type decay struct {
	streamer beep.Streamer
	position int
	total    int
	gain     float64
}

func newDecay(s beep.Streamer, total int, gain float64) beep.Streamer {
	return &decay{streamer: s, total: max(1, total), gain: gain}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		t := float64(d.position) / float64(d.total)
		vol := d.gain * math.Pow(0.01, t)
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// newVolume wraps s in a linear volume. math.Log2(0) is -Inf, so zero is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
