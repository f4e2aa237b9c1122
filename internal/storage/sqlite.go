// Package storage provides SQLite-based persistence for run history and high scores.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/nisha-go/internal/runner"
)

// DefaultPath is where the CLI keeps its database unless --db says otherwise.
const DefaultPath = "~/.nisha/nisha.db"

// Store manages the SQLite database connection for run persistence.
// It is safe for concurrent use; SSH sessions share one Store.
type Store struct {
	db *sql.DB
}

// Run represents one finished run.
type Run struct {
	ID          int64
	RunID       string // UUID, assigned on save when empty
	Preset      string
	Score       float64
	Wave        int
	DeathReason string
	Duration    time.Duration
	SessionID   string
	CreatedAt   time.Time
}

// RunFromSummary converts a finished game's summary into a storable run.
func RunFromSummary(preset string, s runner.RunSummary) Run {
	return Run{
		Preset:      preset,
		Score:       s.Score,
		Wave:        s.Wave,
		DeathReason: s.Reason.String(),
		Duration:    s.Duration,
		SessionID:   s.SessionID,
	}
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			preset TEXT NOT NULL,
			score REAL NOT NULL,
			wave INTEGER NOT NULL DEFAULT 1,
			death_reason TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			session_id TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_preset ON runs(preset);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(preset, score DESC);

		CREATE TABLE IF NOT EXISTS high_scores (
			preset TEXT PRIMARY KEY,
			score REAL NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run and returns it with ID and RunID filled in.
func (s *Store) SaveRun(r Run) (Run, error) {
	if r.RunID == "" {
		r.RunID = uuid.NewString()
	}

	result, err := s.db.Exec(
		`INSERT INTO runs (run_id, preset, score, wave, death_reason, duration_ms, session_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Preset, r.Score, r.Wave, r.DeathReason, r.Duration.Milliseconds(), r.SessionID,
	)
	if err != nil {
		return r, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return r, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	r.ID = id

	return r, nil
}

const runColumns = `id, run_id, preset, score, wave, death_reason, duration_ms, session_id, created_at`

// TopRuns retrieves the best N runs for a preset, ordered by score descending.
// An empty preset matches every preset.
func (s *Store) TopRuns(preset string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE (? = '' OR preset = ?)
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		preset, preset, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// RecentRuns retrieves the latest N runs for a preset, newest first.
// An empty preset matches every preset.
func (s *Store) RecentRuns(preset string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE (? = '' OR preset = ?)
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		preset, preset, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMs int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.RunID, &r.Preset, &r.Score, &r.Wave,
			&r.DeathReason, &durationMs, &r.SessionID, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// HighScore returns the stored best score for a preset, or 0 if none was recorded.
func (s *Store) HighScore(preset string) (float64, error) {
	var score float64
	err := s.db.QueryRow(
		"SELECT score FROM high_scores WHERE preset = ?",
		preset,
	).Scan(&score)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	return score, nil
}

// SetHighScore records score as the preset's best if it beats the stored one.
// Lower scores are ignored, so sessions sharing the database never lower a
// record another session saved after they loaded theirs.
func (s *Store) SetHighScore(preset string, score float64) error {
	_, err := s.db.Exec(
		`INSERT INTO high_scores (preset, score, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(preset) DO UPDATE SET score = excluded.score, updated_at = excluded.updated_at
		 WHERE excluded.score > high_scores.score`,
		preset, score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save high score: %w", err)
	}
	return nil
}

// ClearRuns deletes the run history and high score of a preset.
// An empty preset clears everything.
func (s *Store) ClearRuns(preset string) error {
	if _, err := s.db.Exec("DELETE FROM runs WHERE (? = '' OR preset = ?)", preset, preset); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM high_scores WHERE (? = '' OR preset = ?)", preset, preset); err != nil {
		return fmt.Errorf("storage: cannot clear high score: %w", err)
	}
	return nil
}

// HighScoreSlot is the persistent high score of one difficulty preset.
type HighScoreSlot struct {
	store  *Store
	preset string
}

// HighScoreSlot returns the high score slot for preset.
func (s *Store) HighScoreSlot(preset string) *HighScoreSlot {
	return &HighScoreSlot{store: s, preset: preset}
}

// LoadHighScore implements runner.HighScoreStore.
func (h *HighScoreSlot) LoadHighScore() (float64, error) {
	return h.store.HighScore(h.preset)
}

// SaveHighScore implements runner.HighScoreStore.
func (h *HighScoreSlot) SaveHighScore(score float64) error {
	return h.store.SetHighScore(h.preset, score)
}

var _ runner.HighScoreStore = (*HighScoreSlot)(nil)
