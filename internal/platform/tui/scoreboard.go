package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/nisha-go/internal/config"
	"github.com/vovakirdan/nisha-go/internal/runner"
	"github.com/vovakirdan/nisha-go/internal/storage"
)

const (
	panelMinWidth = 80  // below this the stats panel folds under the table
	panelWidth    = 24
	maxRuns       = 100
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Next     key.Binding
	Prev     key.Binding
	SortMode key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.SortMode, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Next:     key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("→/tab", "next preset")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("←", "prev preset")),
		SortMode: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "best/recent")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// boardStyles holds the scoreboard's lipgloss styles in the runner palette.
type boardStyles struct {
	title     lipgloss.Style
	frame     lipgloss.Style
	tab       lipgloss.Style
	activeTab lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	empty     lipgloss.Style
	help      lipgloss.Style
}

func newBoardStyles() boardStyles {
	glow := lipgloss.Color("208")
	dim := lipgloss.Color("241")
	return boardStyles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(glow),
		frame:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		tab:       lipgloss.NewStyle().Foreground(dim).Padding(0, 1),
		activeTab: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("232")).Background(glow).Padding(0, 1),
		label:     lipgloss.NewStyle().Foreground(dim),
		value:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		empty:     lipgloss.NewStyle().Foreground(dim).Italic(true).Padding(2, 4),
		help:      lipgloss.NewStyle().Foreground(dim),
	}
}

// ScoreboardModel browses stored runs, one difficulty preset at a time.
type ScoreboardModel struct {
	store   *storage.Store
	presets []string
	cursor  int
	recent  bool // newest first instead of best first
	runs    []storage.Run
	stats   *storage.RunStats

	table  table.Model
	help   help.Model
	keys   ScoreboardKeyMap
	styles boardStyles
	width  int
	height int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel opens the scoreboard on preset. Presets found in the
// store but not built in (custom configs) get a tab after the built-in ones.
func NewScoreboardModel(store *storage.Store, preset string, width, height int) ScoreboardModel {
	presets := make([]string, 0, len(config.Presets))
	for _, p := range config.Presets {
		presets = append(presets, string(p))
	}
	if store != nil {
		if stored, err := store.Presets(); err == nil {
			for _, p := range stored {
				if !containsString(presets, p) {
					presets = append(presets, p)
				}
			}
		}
	}

	m := ScoreboardModel{
		store:   store,
		presets: presets,
		help:    help.New(),
		keys:    DefaultScoreboardKeyMap(),
		styles:  newBoardStyles(),
		width:   width,
		height:  height,
	}
	for i, p := range presets {
		if p == preset {
			m.cursor = i
		}
	}

	m.table = m.newTable()
	m.reload()
	return m
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Preset returns the selected preset.
func (m ScoreboardModel) Preset() string {
	if len(m.presets) == 0 {
		return ""
	}
	return m.presets[m.cursor]
}

func (m ScoreboardModel) wide() bool {
	return m.width >= panelMinWidth
}

func (m ScoreboardModel) newTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 7},
		{Title: "Wave", Width: 5},
		{Title: "Fate", Width: 10},
		{Title: "Time", Width: 7},
		{Title: "Date", Width: 12},
	}
	avail := m.width - 4
	if m.wide() {
		avail -= panelWidth + 4
	}
	if fixed := 4 + 7 + 5 + 10 + 7; avail > fixed+12 {
		columns[5].Width = min(avail-fixed, 18)
	}

	rows := m.height - 9
	if !m.wide() {
		rows -= 2 // stats line under the table
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(rows, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("130")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("232")).
		Background(lipgloss.Color("208")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// reload fetches runs and stats for the selected preset. Store errors leave
// the board empty.
func (m *ScoreboardModel) reload() {
	m.runs, m.stats = nil, nil
	if m.store != nil && len(m.presets) > 0 {
		preset := m.Preset()
		fetch := m.store.TopRuns
		if m.recent {
			fetch = m.store.RecentRuns
		}
		if runs, err := fetch(preset, maxRuns); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.Stats(preset); err == nil {
			m.stats = stats
		}
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			runner.FormatScore(r.Score),
			fmt.Sprintf("%02d", r.Wave),
			r.DeathReason,
			FormatDuration(r.Duration),
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// FormatDuration renders a run length as m:ss.
func FormatDuration(d time.Duration) string {
	secs := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.step(-1)
			return m, nil
		case key.Matches(msg, m.keys.SortMode):
			m.recent = !m.recent
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// step moves the preset cursor by delta, wrapping around.
func (m *ScoreboardModel) step(delta int) {
	n := len(m.presets)
	if n == 0 {
		return
	}
	m.cursor = ((m.cursor+delta)%n + n) % n
	m.reload()
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	order := "BEST"
	if m.recent {
		order = "RECENT"
	}
	title := fmt.Sprintf("NISHA GO! %s RUNS - %s", order, strings.ToUpper(m.Preset()))

	var b strings.Builder
	b.WriteString(m.styles.title.Render(centerText(title, m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n\n")

	board := m.styles.frame.Render(m.tableView())
	if m.wide() {
		board = lipgloss.JoinHorizontal(lipgloss.Top, board, "  ", m.statsPanel())
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, board))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, board))
		if line := m.statsLine(); line != "" {
			b.WriteString("\n")
			b.WriteString(m.styles.value.Render(centerText(line, m.width)))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.help.Render(m.help.View(m.keys)))
	return b.String()
}

// tabs renders the preset strip, or just the selection when it does not fit.
func (m ScoreboardModel) tabs() string {
	parts := make([]string, len(m.presets))
	for i, p := range m.presets {
		if i == m.cursor {
			parts[i] = m.styles.activeTab.Render(p)
		} else {
			parts[i] = m.styles.tab.Render(p)
		}
	}
	line := strings.Join(parts, " ")
	if lipgloss.Width(line) > m.width-4 {
		return fmt.Sprintf("< %s >", m.Preset())
	}
	return line
}

func (m ScoreboardModel) tableView() string {
	if len(m.runs) == 0 {
		return m.styles.empty.Render("No runs recorded yet.\nPlay a run to set a high score!")
	}
	return m.table.View()
}

// statsPanel is the wide-layout summary box beside the table.
func (m ScoreboardModel) statsPanel() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("STATS"))
	b.WriteString("\n")

	if m.stats == nil || m.stats.Runs == 0 {
		b.WriteString(m.styles.label.Render("no runs"))
		return m.styles.frame.Width(panelWidth).Render(b.String())
	}

	st := m.stats
	last := "-"
	if !st.LastPlayed.IsZero() {
		last = st.LastPlayed.Local().Format("Jan 02")
	}
	for _, kv := range [][2]string{
		{"runs", fmt.Sprintf("%d", st.Runs)},
		{"best", runner.FormatScore(st.HighScore)},
		{"avg", runner.FormatScore(st.AvgScore)},
		{"wave", fmt.Sprintf("%02d", st.BestWave)},
		{"crash", fmt.Sprintf("%d", st.Collisions)},
		{"drained", fmt.Sprintf("%d", st.Depletions)},
		{"played", FormatDuration(st.PlayTime)},
		{"last", last},
	} {
		label := m.styles.label.Render(fmt.Sprintf("%-8s", kv[0]))
		b.WriteString("\n" + label + m.styles.value.Render(kv[1]))
	}
	return m.styles.frame.Width(panelWidth).Render(b.String())
}

// statsLine is the one-line summary used by the narrow layout.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.Runs == 0 {
		return ""
	}
	st := m.stats
	return fmt.Sprintf("runs %d  best %s  avg %d  wave %02d  crash %d  drained %d  played %s",
		st.Runs, runner.FormatScore(st.HighScore), int(st.AvgScore), st.BestWave,
		st.Collisions, st.Depletions, FormatDuration(st.PlayTime))
}

// IsGoingBack reports whether the user left with back rather than quit.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// RunScoreboard runs the scoreboard full screen until the user leaves.
func RunScoreboard(store *storage.Store, preset string, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, preset, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}

// centerText centers text within width, measuring styled text without its
// escape sequences.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
