package runner

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/nisha-go/internal/config"
	"github.com/vovakirdan/nisha-go/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar   = '█'
	ChaosChar    = '▓'
	ChaosEdge    = '▒'
	TrainerChar  = '◆'
	ParticleChar = '·'
	LaneChar     = '┊'
	BarFull      = '█'
	BarEmpty     = '░'
	RadarEmpty   = '·'
	RadarPlayer  = '▲'
)

// RadarRows is how many bands the mini-grid splits the playfield height into.
const RadarRows = 3

// RadarCell is what the mini-grid shows for one lane and band.
type RadarCell int

const (
	RadarClear RadarCell = iota
	RadarTrainer
	RadarChaos
)

// Minimum terminal size for the playfield to make sense.
const (
	MinScreenW = 24
	MinScreenH = 12
)

// Layout maps playfield units to terminal cells. Lanes are separated by a
// one-cell divider; the HUD takes the top row and the bottom two rows.
type Layout struct {
	Left      int // Column of the first lane cell
	Top       int // Row of the first playfield row
	LaneCells int // Columns per lane
	Rows      int // Playfield rows
	lanes     int
	cfg       config.Playfield
}

// NewLayout fits the playfield into a screen of w×h cells.
func NewLayout(cfg config.RunnerConfig, w, h int) Layout {
	lanes := cfg.Playfield.Lanes
	laneCells := core.Clamp((w-2-(lanes-1))/lanes, 3, 11)
	fieldW := lanes*laneCells + lanes - 1

	return Layout{
		Left:      max(1, (w-fieldW)/2),
		Top:       1,
		LaneCells: laneCells,
		Rows:      max(1, h-3),
		lanes:     lanes,
		cfg:       cfg.Playfield,
	}
}

// Width returns the number of columns covered by the lanes and dividers.
func (l Layout) Width() int {
	return l.lanes*l.LaneCells + l.lanes - 1
}

// LaneCol returns the first column of a lane.
func (l Layout) LaneCol(lane int) int {
	return l.Left + lane*(l.LaneCells+1)
}

// Row converts a playfield y to a screen row.
func (l Layout) Row(y float64) int {
	return l.Top + int(math.Floor(y/l.cfg.Height*float64(l.Rows)))
}

// Col converts a playfield x to a screen column.
func (l Layout) Col(x float64) int {
	lane := core.Clamp(int(x/l.cfg.LaneWidth), 0, l.lanes-1)
	within := x - float64(lane)*l.cfg.LaneWidth
	return l.LaneCol(lane) + int(within/l.cfg.LaneWidth*float64(l.LaneCells))
}

// CellsToUnits converts a cell delta to playfield units, used to feed
// terminal mouse drags into the swipe classifier.
func (l Layout) CellsToUnits(dx, dy int) (float64, float64) {
	ux := float64(dx) * l.cfg.LaneWidth / float64(l.LaneCells+1)
	uy := float64(dy) * l.cfg.Height / float64(l.Rows)
	return ux, uy
}

// Render draws the run onto dst: playfield, entities, HUD and phase overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2, "TERMINAL TOO SMALL", core.ColorAlert)
		return
	}

	l := NewLayout(g.cfg, dst.Width(), dst.Height())
	run := g.run

	g.drawField(dst, l)
	for _, p := range run.Pickups {
		g.drawEntity(dst, l, p.Lane, p.Y, g.cfg.Trainers.Size, TrainerChar, core.ColorOrangeGlow)
	}
	for _, o := range run.Obstacles {
		g.drawEntity(dst, l, o.Lane, o.Y, g.cfg.Chaos.Size, ChaosChar, core.ColorChaos)
	}
	g.drawEntity(dst, l, run.PlayerLane, g.cfg.PlayerY(), g.cfg.Player.Size, PlayerChar, core.ColorOrangeBright)

	for _, p := range run.Particles {
		g.drawInField(dst, l, l.Col(p.X), l.Row(p.Y), ParticleChar, core.ColorTrainerInner)
	}
	for _, p := range run.Popups {
		row := l.Row(p.Y)
		if row >= l.Top && row < l.Top+l.Rows {
			dst.DrawTextColored(l.Col(p.X)-len(p.Text)/2, row, p.Text, core.ColorTrainerInner)
		}
	}

	g.drawHUD(dst, l)
	g.drawOverlay(dst)
}

func (g *Game) drawField(dst *core.Screen, l Layout) {
	dst.DrawVLine(l.Left-1, l.Top, l.Rows, '│', core.ColorOrangeDim)
	dst.DrawVLine(l.Left+l.Width(), l.Top, l.Rows, '│', core.ColorOrangeDim)
	for lane := 1; lane < l.lanes; lane++ {
		dst.DrawVLine(l.LaneCol(lane)-1, l.Top, l.Rows, LaneChar, core.ColorLaneLine)
	}
}

// drawEntity fills the cells covered by a square entity centered in its lane.
func (g *Game) drawEntity(dst *core.Screen, l Layout, lane int, y, size float64, ch rune, c core.Color) {
	w := max(1, int(math.Round(size/g.cfg.Playfield.LaneWidth*float64(l.LaneCells))))
	x := l.LaneCol(lane) + (l.LaneCells-w)/2
	top := l.Row(y)
	bottom := max(top+1, l.Row(y+size))

	for row := top; row < bottom; row++ {
		for col := x; col < x+w; col++ {
			edge := ch == ChaosChar && (col == x || col == x+w-1) && w > 2
			if edge {
				g.drawInField(dst, l, col, row, ChaosEdge, core.ColorChaosOutline)
			} else {
				g.drawInField(dst, l, col, row, ch, c)
			}
		}
	}
}

func (g *Game) drawInField(dst *core.Screen, l Layout, col, row int, ch rune, c core.Color) {
	if row < l.Top || row >= l.Top+l.Rows {
		return
	}
	dst.SetColored(col, row, ch, c)
}

func (g *Game) drawHUD(dst *core.Screen, l Layout) {
	run := g.run
	w, h := dst.Width(), dst.Height()

	top := fmt.Sprintf(" %s  HI %s  W%02d  %.1fx  %s",
		FormatScore(run.Score), FormatScore(g.highScore), run.Wave, run.SpeedMultiplier, LaneLabel(run.PlayerLane, l.lanes))
	dst.DrawTextColored(0, 0, top, core.ColorOrangeBright)
	dst.DrawTextColored(w-len(g.sessionID)-1, 0, g.sessionID, core.ColorGray)

	ratio := MomentumRatio(run, g.cfg)
	barW := max(4, w-20)
	filled := int(math.Round(ratio * float64(barW)))
	bar := strings.Repeat(string(BarFull), filled) + strings.Repeat(string(BarEmpty), barW-filled)
	dst.DrawTextColored(1, h-2, "MOM", core.ColorGray)
	dst.DrawTextColored(5, h-2, bar, momentumColor(ratio))
	dst.DrawTextColored(6+barW, h-2, fmt.Sprintf("%3d%%", int(math.Round(ratio*100))), momentumColor(ratio))

	dst.DrawTextColored(1, h-1, "←/→ move  esc pause  x abort  m sound  q quit", core.ColorGray)

	g.drawRadar(dst, w-l.lanes-1, l.Top)
}

// MiniGrid summarizes the field as one row per band, top band first, and one
// column per lane. Chaos hides a trainer sharing its cell.
func (g *Game) MiniGrid() [RadarRows][]RadarCell {
	var grid [RadarRows][]RadarCell
	for i := range grid {
		grid[i] = make([]RadarCell, g.cfg.Playfield.Lanes)
	}

	band := g.cfg.Playfield.Height / RadarRows
	mark := func(lane int, y float64, c RadarCell) {
		row := int(math.Floor(y / band))
		if row < 0 || row >= RadarRows || lane < 0 || lane >= len(grid[row]) {
			return
		}
		if c > grid[row][lane] {
			grid[row][lane] = c
		}
	}
	for _, p := range g.run.Pickups {
		mark(p.Lane, p.Y, RadarTrainer)
	}
	for _, o := range g.run.Obstacles {
		mark(o.Lane, o.Y, RadarChaos)
	}
	return grid
}

// drawRadar puts the mini-grid at (x, y) with the player's lane marked below it.
func (g *Game) drawRadar(dst *core.Screen, x, y int) {
	for r, row := range g.MiniGrid() {
		for lane, c := range row {
			switch c {
			case RadarChaos:
				dst.SetColored(x+lane, y+r, ChaosChar, core.ColorChaos)
			case RadarTrainer:
				dst.SetColored(x+lane, y+r, TrainerChar, core.ColorOrangeGlow)
			default:
				dst.SetColored(x+lane, y+r, RadarEmpty, core.ColorGray)
			}
		}
	}
	dst.SetColored(x+g.run.PlayerLane, y+RadarRows, RadarPlayer, core.ColorOrangeBright)
}

func (g *Game) drawOverlay(dst *core.Screen) {
	mid := dst.Height() / 2
	run := g.run

	switch run.Phase {
	case PhaseStart:
		overlayPanel(dst, mid-3, 6)
		dst.DrawTextCentered(mid-2, "NISHA GO!", core.ColorOrangeBright)
		dst.DrawTextCentered(mid, "SPACE or TAP to start", core.ColorOrangeGlow)
		dst.DrawTextCentered(mid+1, "dodge chaos, grab trainers", core.ColorGray)
	case PhasePaused:
		overlayPanel(dst, mid-2, 5)
		dst.DrawTextCentered(mid-1, "PAUSED", core.ColorOrangeBright)
		dst.DrawTextCentered(mid+1, "esc resume  r restart", core.ColorGray)
	case PhaseGameOver:
		overlayPanel(dst, mid-4, 9)
		dst.DrawTextCentered(mid-3, run.DeathReason.Message(), core.ColorAlert)
		dst.DrawTextCentered(mid-1, "SCORE "+FormatScore(run.Score), core.ColorOrangeBright)
		dst.DrawTextCentered(mid, "BEST  "+FormatScore(g.highScore), core.ColorOrangeGlow)
		if run.NewRecord {
			dst.DrawTextCentered(mid+1, "NEW RECORD", core.ColorOrangeGlow)
		}
		dst.DrawTextCentered(mid+3, "SPACE restart  ctrl+e export", core.ColorGray)
	}
}

// overlayPanel blanks a framed box across the middle of the screen so overlay
// text stays readable over moving entities.
func overlayPanel(dst *core.Screen, top, rows int) {
	w := min(dst.Width()-2, 34)
	x := (dst.Width() - w) / 2
	dst.DrawRect(x, top, w, rows, ' ', core.ColorDefault)
	dst.DrawBox(x, top, w, rows, core.ColorOrangeDim)
}

func momentumColor(ratio float64) core.Color {
	switch {
	case ratio < 0.25:
		return core.ColorAlert
	case ratio < 0.5:
		return core.ColorOrangeBright
	default:
		return core.ColorOrangeGlow
	}
}

// FormatScore floors a score and pads it to five digits.
func FormatScore(score float64) string {
	return fmt.Sprintf("%05d", int(math.Floor(score)))
}

// LaneLabel names a lane L/C/R for the classic three lanes, or by number otherwise.
func LaneLabel(lane, lanes int) string {
	if lanes == 3 {
		return [...]string{"L", "C", "R"}[core.Clamp(lane, 0, 2)]
	}
	return fmt.Sprintf("%d", lane+1)
}
