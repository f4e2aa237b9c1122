package runner

// Obstacle is a falling chaos block. Contact ends the run.
type Obstacle struct {
	Lane  int
	Y     float64 // Top edge; grows every tick
	Speed float64 // Captured at spawn, never updated afterwards
}

// Pickup is a falling trainer. Contact grants score and momentum.
type Pickup struct {
	Lane  int
	Y     float64
	Speed float64
}

// Particle is a cosmetic spark emitted when a pickup is collected.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Life    int
	MaxLife int
}

// Popup is a floating "+100" label.
type Popup struct {
	X, Y    float64
	Text    string
	Life    int
	MaxLife int
}
