package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// RunStats contains aggregated statistics for one preset.
type RunStats struct {
	Preset     string
	Runs       int
	HighScore  float64
	AvgScore   float64
	BestWave   int
	PlayTime   time.Duration
	Collisions int
	Depletions int
	LastPlayed time.Time
}

// Stats retrieves aggregated statistics for a preset.
func (s *Store) Stats(preset string) (*RunStats, error) {
	stats := &RunStats{Preset: preset}

	var playMs int64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(AVG(score), 0), COALESCE(MAX(wave), 0), COALESCE(SUM(duration_ms), 0),
		        COALESCE(SUM(CASE WHEN death_reason = 'collision' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN death_reason = 'momentum' THEN 1 ELSE 0 END), 0)
		 FROM runs WHERE preset = ?`,
		preset,
	).Scan(&stats.Runs, &stats.AvgScore, &stats.BestWave, &playMs, &stats.Collisions, &stats.Depletions)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	stats.PlayTime = time.Duration(playMs) * time.Millisecond

	high, err := s.HighScore(preset)
	if err != nil {
		return nil, err
	}
	stats.HighScore = high

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE preset = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		preset,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// Presets returns every preset that has runs or a high score, sorted by name.
func (s *Store) Presets() ([]string, error) {
	rows, err := s.db.Query(
		`SELECT preset FROM runs
		 UNION
		 SELECT preset FROM high_scores
		 ORDER BY preset`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list presets: %w", err)
	}
	defer rows.Close()

	var presets []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("storage: cannot scan preset: %w", err)
		}
		presets = append(presets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return presets, nil
}
