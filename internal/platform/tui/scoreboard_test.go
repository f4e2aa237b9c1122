package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/nisha-go/internal/storage"
)

func seededStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	for _, r := range []storage.Run{
		{Preset: "normal", Score: 120, Wave: 2, DeathReason: "collision", Duration: 12 * time.Second},
		{Preset: "normal", Score: 480, Wave: 5, DeathReason: "momentum", Duration: 48 * time.Second},
		{Preset: "hard", Score: 90, Wave: 3, DeathReason: "collision", Duration: 9 * time.Second},
		{Preset: "custom", Score: 10, Wave: 1, DeathReason: "collision"},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	store.SetHighScore("normal", 480) //nolint:errcheck
	return store
}

func TestScoreboardLoadsPreset(t *testing.T) {
	m := NewScoreboardModel(seededStore(t), "normal", 100, 30)

	if m.Preset() != "normal" {
		t.Fatalf("preset = %q, want normal", m.Preset())
	}
	if len(m.runs) != 2 || m.runs[0].Score != 480 {
		t.Fatalf("runs = %+v, want best first", m.runs)
	}
	if m.stats == nil || m.stats.Runs != 2 || m.stats.HighScore != 480 {
		t.Errorf("stats = %+v", m.stats)
	}
	if !strings.Contains(m.statsLine(), "best 00480") {
		t.Errorf("stats line = %q", m.statsLine())
	}
	if !containsString(m.presets, "custom") {
		t.Errorf("presets = %v, want stored custom preset included", m.presets)
	}
}

func TestScoreboardNavigation(t *testing.T) {
	m := NewScoreboardModel(seededStore(t), "normal", 60, 30)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.Preset() != "hard" || len(m.runs) != 1 {
		t.Errorf("after tab: preset=%q runs=%d", m.Preset(), len(m.runs))
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	m = next.(ScoreboardModel)
	if !m.recent || m.runs[0].Score != 480 {
		t.Errorf("recent order = %+v", m.runs)
	}
	if !strings.Contains(m.View(), "RECENT RUNS - NORMAL") {
		t.Error("title should show the recent order")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, "easy", 60, 20)
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("empty state missing")
	}
}

func TestScoreboardWideLayoutShowsStatsPanel(t *testing.T) {
	m := NewScoreboardModel(seededStore(t), "normal", 120, 30)
	view := m.View()
	for _, want := range []string{"STATS", "drained", "00480"} {
		if !strings.Contains(view, want) {
			t.Errorf("wide view missing %q", want)
		}
	}

	// Wrapping backwards from the first preset lands on the last one.
	m = NewScoreboardModel(seededStore(t), "easy", 120, 30)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if got := next.(ScoreboardModel).Preset(); got != "custom" {
		t.Errorf("left from easy = %q, want custom", got)
	}
}

func TestFormatDuration(t *testing.T) {
	if got := FormatDuration(75 * time.Second); got != "1:15" {
		t.Errorf("FormatDuration = %q", got)
	}
}
