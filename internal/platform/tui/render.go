package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/nisha-go/internal/core"
)

// colorStyles maps core.Color to lipgloss styles for the amber HUD palette.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorOrangeBright: lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
	core.ColorOrangeGlow:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	core.ColorOrangeDim:    lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
	core.ColorChaos:        lipgloss.NewStyle().Foreground(lipgloss.Color("88")),
	core.ColorChaosOutline: lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
	core.ColorTrainerInner: lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
	core.ColorAlert:        lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	core.ColorLaneLine:     lipgloss.NewStyle().Foreground(lipgloss.Color("94")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
