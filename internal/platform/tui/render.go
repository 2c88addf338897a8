package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/siege-arcade/internal/core"
)

// colorCodes maps core.Color to ANSI 256-color codes.
var colorCodes = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

// Painter turns screen buffers into styled strings for one output.
// SSH sessions get their own painter so colors follow the client's terminal.
type Painter struct {
	styles map[core.Color]lipgloss.Style
	plain  lipgloss.Style
}

// NewPainter builds styles for the renderer. Nil uses the default renderer.
func NewPainter(r *lipgloss.Renderer) *Painter {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	p := &Painter{
		styles: make(map[core.Color]lipgloss.Style, len(colorCodes)),
		plain:  r.NewStyle(),
	}
	for c, code := range colorCodes {
		p.styles[c] = r.NewStyle().Foreground(lipgloss.Color(code))
	}
	return p
}

var defaultPainter = NewPainter(nil)

// RenderScreen converts a Screen buffer using the default renderer.
func RenderScreen(s *core.Screen) string {
	return defaultPainter.Render(s)
}

// Render converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one escape sequence.
func (p *Painter) Render(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color
			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(p.style(startColor).Render(run.String()))
		}
	}
	return sb.String()
}

func (p *Painter) style(c core.Color) lipgloss.Style {
	if st, ok := p.styles[c]; ok {
		return st
	}
	return p.plain
}
