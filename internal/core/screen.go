package core

import (
	"strings"
	"unicode/utf8"
)

// Cell is one character position: a rune and its foreground color.
type Cell struct {
	Rune  rune
	Color Color
}

var blank = Cell{Rune: ' '}

// Screen is an off-screen character buffer. Games draw into it and the
// platform turns it into terminal output. Writes outside the buffer are
// dropped, so callers can draw partly visible shapes without clipping.
type Screen struct {
	w, h  int
	cells []Cell // row-major, len w*h
}

// NewScreen returns a blank w×h buffer.
func NewScreen(w, h int) *Screen {
	s := &Screen{w: max(w, 0), h: max(h, 0)}
	s.cells = make([]Cell, s.w*s.h)
	s.Clear()
	return s
}

func (s *Screen) Width() int  { return s.w }
func (s *Screen) Height() int { return s.h }

func (s *Screen) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return 0, false
	}
	return y*s.w + x, true
}

// Resize changes the buffer size. The overlapping top-left region is kept.
func (s *Screen) Resize(w, h int) {
	if w == s.w && h == s.h {
		return
	}
	old := *s
	*s = *NewScreen(w, h)
	for y := 0; y < min(old.h, s.h); y++ {
		copy(s.cells[y*s.w:y*s.w+min(old.w, s.w)], old.cells[y*old.w:])
	}
}

// Clear resets every cell to an uncolored space.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = blank
	}
}

// Set writes r in the default color.
func (s *Screen) Set(x, y int, r rune) { s.SetColor(x, y, r, ColorDefault) }

// SetColor writes r in color c.
func (s *Screen) SetColor(x, y int, r rune, c Color) {
	if i, ok := s.index(x, y); ok {
		s.cells[i] = Cell{Rune: r, Color: c}
	}
}

// Get returns the rune at (x, y), or a space outside the buffer.
func (s *Screen) Get(x, y int) rune { return s.GetCell(x, y).Rune }

// GetCell returns the cell at (x, y), or a blank cell outside the buffer.
func (s *Screen) GetCell(x, y int) Cell {
	if i, ok := s.index(x, y); ok {
		return s.cells[i]
	}
	return blank
}

func (s *Screen) DrawText(x, y int, text string) { s.DrawTextColor(x, y, text, ColorDefault) }

// DrawTextColor writes text left to right from (x, y), one rune per cell.
func (s *Screen) DrawTextColor(x, y int, text string, c Color) {
	for _, r := range text {
		s.SetColor(x, y, r, c)
		x++
	}
}

func (s *Screen) DrawTextCentered(y int, text string) {
	s.DrawTextCenteredColor(y, text, ColorDefault)
}

// DrawTextCenteredColor writes text on row y, centered on the buffer width.
func (s *Screen) DrawTextCenteredColor(y int, text string, c Color) {
	s.DrawTextColor((s.w-utf8.RuneCountInString(text))/2, y, text, c)
}

func (s *Screen) DrawRect(r Rect, fill rune) { s.DrawRectColor(r, fill, ColorDefault) }

// DrawRectColor fills r with a colored rune.
func (s *Screen) DrawRectColor(r Rect, fill rune, c Color) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.SetColor(x, y, fill, c)
		}
	}
}

// DrawBox outlines r with light box-drawing runes.
func (s *Screen) DrawBox(r Rect) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	right, bottom := r.Right()-1, r.Bottom()-1
	for x := r.X + 1; x < right; x++ {
		s.Set(x, r.Y, '─')
		s.Set(x, bottom, '─')
	}
	for y := r.Y + 1; y < bottom; y++ {
		s.Set(r.X, y, '│')
		s.Set(right, y, '│')
	}
	s.Set(r.X, r.Y, '┌')
	s.Set(right, r.Y, '┐')
	s.Set(r.X, bottom, '└')
	s.Set(right, bottom, '┘')
}

// Row returns row y as plain text. Rows outside the buffer are all spaces.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.h {
		return strings.Repeat(" ", s.w)
	}
	var sb strings.Builder
	for _, c := range s.cells[y*s.w : (y+1)*s.w] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

// String returns the whole buffer as newline-separated plain rows.
func (s *Screen) String() string {
	rows := make([]string, s.h)
	for y := range rows {
		rows[y] = s.Row(y)
	}
	return strings.Join(rows, "\n")
}
