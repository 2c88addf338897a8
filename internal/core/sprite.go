package core

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptySprite is returned when sprite data contains no art rows.
var ErrEmptySprite = errors.New("core: sprite has no rows")

// Sprite is a small piece of text art. Spaces are transparent.
type Sprite struct {
	Name  string
	Rows  [][]rune
	Color Color
}

// AssetSource resolves sprites by name. A nil result means the asset is
// missing and the caller should draw its fallback.
type AssetSource interface {
	Sprite(name string) *Sprite
}

// AssetRef names an asset a game wants preloaded.
// Missing required assets are reported as errors, optional ones as warnings.
type AssetRef struct {
	Name     string
	Required bool
}

// Width returns the widest row length.
func (s *Sprite) Width() int {
	w := 0
	for _, row := range s.Rows {
		w = max(w, len(row))
	}
	return w
}

// Height returns the number of rows.
func (s *Sprite) Height() int {
	return len(s.Rows)
}

// ParseSprite reads the text art format:
//
//	@color yellow
//	 /\_/\
//	( o.o )
//
// The optional "@color" header selects the foreground color; every other line
// is an art row. Trailing blank lines are dropped.
func ParseSprite(name string, data []byte) (*Sprite, error) {
	sp := &Sprite{Name: name}
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.HasPrefix(line, "@color ") {
			c, ok := ColorByName(strings.TrimSpace(strings.TrimPrefix(line, "@color ")))
			if !ok {
				return nil, fmt.Errorf("core: sprite %s: unknown color in %q", name, line)
			}
			sp.Color = c
			continue
		}
		sp.Rows = append(sp.Rows, []rune(line))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("core: sprite %s: %w", name, err)
	}
	for len(sp.Rows) > 0 && strings.TrimSpace(string(sp.Rows[len(sp.Rows)-1])) == "" {
		sp.Rows = sp.Rows[:len(sp.Rows)-1]
	}
	if len(sp.Rows) == 0 {
		return nil, fmt.Errorf("core: sprite %s: %w", name, ErrEmptySprite)
	}
	return sp, nil
}

// DrawSprite scales a sprite into dst with nearest-neighbour sampling.
// Transparent cells leave the screen untouched.
func (s *Screen) DrawSprite(sp *Sprite, dst Rect) {
	if sp == nil || dst.W <= 0 || dst.H <= 0 {
		return
	}
	sw, sh := sp.Width(), sp.Height()
	if sw == 0 || sh == 0 {
		return
	}
	for dy := 0; dy < dst.H; dy++ {
		row := sp.Rows[dy*sh/dst.H]
		for dx := 0; dx < dst.W; dx++ {
			sx := dx * sw / dst.W
			if sx >= len(row) || row[sx] == ' ' {
				continue
			}
			s.SetColor(dst.X+dx, dst.Y+dy, row[sx], sp.Color)
		}
	}
}
