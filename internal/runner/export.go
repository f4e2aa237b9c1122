package runner

import (
	"encoding/json"
	"fmt"
	"time"
)

// ScoreExport is the JSON document written by the export action.
type ScoreExport struct {
	Game      string    `json:"game"`
	SessionID string    `json:"session_id"`
	Score     int       `json:"score"`
	HighScore int       `json:"high_score"`
	Wave      int       `json:"wave"`
	Phase     string    `json:"phase"`
	Reason    string    `json:"death_reason,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Export captures the current scores. It is valid in any phase.
func (g *Game) Export(now time.Time) ScoreExport {
	e := ScoreExport{
		Game:      "NISHA GO!",
		SessionID: g.sessionID,
		Score:     int(g.run.Score),
		HighScore: int(g.highScore),
		Wave:      g.run.Wave,
		Phase:     g.run.Phase.String(),
		Timestamp: now.UTC(),
	}
	if g.run.Phase == PhaseGameOver {
		e.Reason = g.run.DeathReason.String()
	}
	return e
}

// MarshalExport renders the export as indented JSON.
func MarshalExport(e ScoreExport) ([]byte, error) {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("runner: marshal export: %w", err)
	}
	return data, nil
}
