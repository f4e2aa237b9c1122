package tui

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/nisha-go/internal/audio"
	"github.com/vovakirdan/nisha-go/internal/config"
	"github.com/vovakirdan/nisha-go/internal/core"
	"github.com/vovakirdan/nisha-go/internal/runner"
	"github.com/vovakirdan/nisha-go/internal/storage"
)

// statusTicks is how long a status line stays on screen.
const statusTicks = 120

// Options configures a play session.
type Options struct {
	Config  config.RunnerConfig
	Preset  string
	Runtime core.RuntimeConfig
	Store   *storage.Store // Optional run history and high score
	Sound   *audio.Sink    // Optional; nil means no audio at all
	Logger  *log.Logger
	Clock   runner.Clock

	// DataDir holds exports and screenshots. Defaults to ~/.nisha.
	DataDir string
}

// Model is the Bubble Tea model for one NISHA GO! session.
type Model struct {
	game      *runner.Game
	driver    *runner.Driver
	screen    *core.Screen
	keys      *KeyMapper
	input     core.InputFrame
	opts      Options
	drag      *dragStart
	status    string
	statusIn  int
	savedRuns int
	quitting  bool
}

// dragStart is where a mouse press began, in cells.
type dragStart struct {
	x, y int
}

// NewModel creates the model and its game. The seed in opts.Runtime, when
// non-zero, makes spawning reproducible.
func NewModel(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Preset == "" {
		opts.Preset = string(config.DifficultyNormal)
	}
	def := core.DefaultConfig()
	if opts.Runtime.ScreenW <= 0 || opts.Runtime.ScreenH <= 0 {
		opts.Runtime.ScreenW, opts.Runtime.ScreenH = def.ScreenW, def.ScreenH
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = def.TickRate
	}

	gameOpts := runner.Options{
		Logger:        opts.Logger,
		ReducedMotion: opts.Runtime.ReducedMotion,
	}
	if opts.Runtime.Seed != 0 {
		gameOpts.Rand = rand.New(rand.NewSource(opts.Runtime.Seed))
	}
	if opts.Store != nil {
		gameOpts.Scores = opts.Store.HighScoreSlot(opts.Preset)
	}
	sinks := runner.MultiSink{eventLogger(opts.Logger)}
	if opts.Sound != nil {
		sinks = append(sinks, opts.Sound)
	}
	gameOpts.Sink = sinks

	game := runner.New(opts.Config, gameOpts)

	return Model{
		game:   game,
		driver: runner.NewDriver(game, opts.Clock),
		screen: core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		keys:   NewKeyMapper(),
		input:  core.NewInputFrame(),
		opts:   opts,
	}
}

// eventLogger logs run milestones. Moves and pickups are too frequent to log.
func eventLogger(logger *log.Logger) runner.SinkFunc {
	return func(e runner.Event) {
		switch e.Kind {
		case runner.EventGameStarted:
			logger.Debug("run started")
		case runner.EventMomentumLow:
			logger.Debug("momentum low", "score", int(e.Score))
		case runner.EventGameOver:
			logger.Info("run over", "score", int(e.Score), "reason", e.Reason, "record", e.NewRecord)
		}
	}
}

// Game returns the session's game.
func (m Model) Game() *runner.Game {
	return m.game
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.setStatus(m.saveScreenshot())
		return m, nil
	case "ctrl+e":
		m.setStatus(m.exportScore())
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if action == core.ActionToggleSound {
		m.toggleSound()
		return m, nil
	}

	m.input.Set(action)
	return m, nil
}

// handleMouse treats a press-drag-release as a touch swipe.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.drag = &dragStart{x: msg.X, y: msg.Y}
		}
	case tea.MouseActionRelease:
		if m.drag == nil {
			return m, nil
		}
		l := runner.NewLayout(m.opts.Config, m.screen.Width(), m.screen.Height())
		dx, dy := l.CellsToUnits(msg.X-m.drag.x, msg.Y-m.drag.y)
		m.drag = nil
		m.input.Set(core.ClassifySwipe(dx, dy, m.opts.Config.Input.SwipeThreshold))
	}
	return m, nil
}

// handleTick runs one frame and records finished runs.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.driver.Frame(m.input)
	m.input.Clear()

	// A run can end and a new one start within the same frame, so the
	// phase alone cannot tell whether the last summary was saved.
	if n := m.game.FinishedRuns(); n != m.savedRuns {
		m.saveRun()
		m.savedRuns = n
	}

	if m.statusIn > 0 {
		m.statusIn--
		if m.statusIn == 0 {
			m.status = ""
		}
	}

	return m, tickCmd(m.opts.Runtime.TickRate)
}

// saveRun appends the finished run to the history. Best effort.
func (m *Model) saveRun() {
	if m.opts.Store == nil {
		return
	}
	summary, ok := m.game.LastRun()
	if !ok {
		return
	}
	if _, err := m.opts.Store.SaveRun(storage.RunFromSummary(m.opts.Preset, summary)); err != nil {
		m.opts.Logger.Warn("could not save run", "err", err)
	}
}

func (m *Model) toggleSound() {
	if m.opts.Sound == nil {
		m.setStatus("SOUND UNAVAILABLE")
		return
	}
	if m.opts.Sound.Toggle() {
		m.setStatus("SOUND ON")
	} else {
		m.setStatus("SOUND OFF")
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusIn = statusTicks
}

func (m *Model) dataDir() string {
	if m.opts.DataDir != "" {
		return m.opts.DataDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".nisha"
	}
	return filepath.Join(home, ".nisha")
}

// exportScore writes the score export JSON and returns a status line.
func (m *Model) exportScore() string {
	data, err := runner.MarshalExport(m.game.Export(time.Now()))
	if err != nil {
		m.opts.Logger.Warn("could not export score", "err", err)
		return "EXPORT FAILED"
	}

	dir := filepath.Join(m.dataDir(), "exports")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("could not create export directory", "dir", dir, "err", err)
		return "EXPORT FAILED"
	}

	path := filepath.Join(dir, fmt.Sprintf("nisha_%s.json", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		m.opts.Logger.Warn("could not write export", "path", path, "err", err)
		return "EXPORT FAILED"
	}

	m.opts.Logger.Info("score exported", "path", path)
	return "EXPORTED " + filepath.Base(path)
}

// saveScreenshot saves the current screen to a text file.
func (m *Model) saveScreenshot() string {
	m.game.Render(m.screen)

	dir := filepath.Join(m.dataDir(), "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	path := filepath.Join(dir, fmt.Sprintf("nisha_%s.txt", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("could not save screenshot", "path", path, "err", err)
		return "SCREENSHOT FAILED"
	}
	return "SAVED " + filepath.Base(path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	m.drawOverlay()
	return RenderScreen(m.screen)
}

// drawOverlay adds the host-side bits the game does not know about.
func (m Model) drawOverlay() {
	w, h := m.screen.Width(), m.screen.Height()
	if w < runner.MinScreenW || h < runner.MinScreenH {
		return
	}

	fps := fmt.Sprintf("%3dFPS", m.driver.FPS())
	m.screen.DrawTextColored(w-len(fps)-1, h-2, fps, core.ColorGray)

	if m.opts.Sound != nil && !m.opts.Sound.Enabled() {
		m.screen.DrawTextColored(w-5, h-1, "MUTE", core.ColorGray)
	}

	if m.status != "" {
		m.screen.DrawHLine(0, h-1, w, ' ', core.ColorDefault)
		m.screen.DrawTextColored(1, h-1, m.status, core.ColorOrangeGlow)
	}
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
