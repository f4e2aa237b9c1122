package runner

// EventKind identifies a feedback event.
type EventKind int

const (
	EventMoved EventKind = iota
	EventCollected
	EventCollided
	EventGameStarted
	EventMomentumLow
	EventGameOver
)

// String returns a lowercase name for logs.
func (k EventKind) String() string {
	switch k {
	case EventMoved:
		return "moved"
	case EventCollected:
		return "collected"
	case EventCollided:
		return "collided"
	case EventGameStarted:
		return "game_started"
	case EventMomentumLow:
		return "momentum_low"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is a fire-and-forget notification about something that happened in a run.
type Event struct {
	Kind      EventKind
	Lane      int         // Player lane for Moved, pickup lane for Collected
	X, Y      float64     // Playfield point for Collected
	Score     float64     // Score at the time of the event
	Reason    DeathReason // Set for Collided and GameOver
	NewRecord bool        // Set for GameOver
}

// FeedbackSink receives gameplay events. Implementations must not block.
type FeedbackSink interface {
	Notify(Event)
}

// NopSink discards every event.
type NopSink struct{}

// Notify implements FeedbackSink.
func (NopSink) Notify(Event) {}

// MultiSink fans an event out to several sinks in order.
type MultiSink []FeedbackSink

// Notify implements FeedbackSink.
func (m MultiSink) Notify(e Event) {
	for _, s := range m {
		if s != nil {
			s.Notify(e)
		}
	}
}

// SinkFunc adapts a function to FeedbackSink.
type SinkFunc func(Event)

// Notify implements FeedbackSink.
func (f SinkFunc) Notify(e Event) {
	f(e)
}
