package runner

import (
	"math"
	"sync"
)

// HighScoreStore persists the single best score across sessions.
type HighScoreStore interface {
	LoadHighScore() (float64, error)
	SaveHighScore(score float64) error
}

// MemoryHighScore keeps the high score in memory only.
// It is the default store when none is configured.
type MemoryHighScore struct {
	mu    sync.Mutex
	score float64
}

// LoadHighScore implements HighScoreStore.
func (m *MemoryHighScore) LoadHighScore() (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.score, nil
}

// SaveHighScore implements HighScoreStore.
func (m *MemoryHighScore) SaveHighScore(score float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.score = score
	return nil
}

// loadHighScore reads the stored best score. Failures and garbage values
// fall back to zero so a broken store never blocks a session.
func (g *Game) loadHighScore() {
	v, err := g.scores.LoadHighScore()
	if err != nil {
		g.logger.Warn("could not load high score", "err", err)
		v = 0
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		v = 0
	}
	g.highScore = v
}

// recordHighScore compares the final score with the best one and persists
// a new record. A failed write is logged; the in-memory value still updates.
func (g *Game) recordHighScore() bool {
	final := g.run.Score
	if final <= g.highScore {
		return false
	}

	g.highScore = final
	if err := g.scores.SaveHighScore(final); err != nil {
		g.logger.Warn("could not save high score", "score", int(final), "err", err)
	}
	return true
}
