// Package levels provides the level table and cutscene script for the
// hidden-object game. This package has no dependency on the game itself.
package levels

import (
	"errors"
	"fmt"
	"strings"
)

// ItemType is the kind of hidden item.
type ItemType string

const (
	ItemBottle ItemType = "bottle"
	ItemSticky ItemType = "sticky"
)

// ParseItemType normalizes an item type name. Historical spellings of the
// sticky note ("sticknote" and its misspellings) all map to ItemSticky.
func ParseItemType(s string) (ItemType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bottle":
		return ItemBottle, nil
	case "sticky", "sticknote", "sicknote", "sitcknote", "stickynote":
		return ItemSticky, nil
	default:
		return "", fmt.Errorf("levels: unknown item type %q", s)
	}
}

// Item is a clickable hidden object. X and Y are percentages (0..100) of the
// scene size.
type Item struct {
	Type  ItemType
	X, Y  float64
	Title string // Optional sticky note title
	Note  string // Optional sticky note text
}

// Level is a single scene.
type Level struct {
	Index      int
	Name       string
	Background string // Asset name under scenes/
	Secret     bool
	Items      []Item
}

// Counts returns the number of bottles and sticky notes in the level.
func (l Level) Counts() (bottles, stickies int) {
	for _, it := range l.Items {
		switch it.Type {
		case ItemBottle:
			bottles++
		case ItemSticky:
			stickies++
		}
	}
	return bottles, stickies
}

// Goal returns the item type that counts toward completion and how many are
// needed: bottles if the level has any, otherwise sticky notes.
func (l Level) Goal() (ItemType, int) {
	bottles, stickies := l.Counts()
	if bottles > 0 {
		return ItemBottle, bottles
	}
	if stickies > 0 {
		return ItemSticky, stickies
	}
	return ItemBottle, 0
}

// Frame is one cutscene image with its voice clip.
type Frame struct {
	Image string // Asset name
	Clip  string // Audio clip name
}

// Trigger starts a cutscene range after a level is won.
type Trigger struct {
	Level  int
	Start  int
	End    int
	Unlock *int // Raise maxUnlockedLevel to this when the range ends
	Page   *int // Zero-based menu page to show afterwards
	Auto   bool // Advance frames on a timer instead of on input
}

// Notes configures the generated sticky note texts.
type Notes struct {
	Sender    string
	Recipient string
}

// Pack is a complete level set.
type Pack struct {
	Name     string
	Notes    Notes
	Levels   []Level
	Frames   []Frame
	Triggers []Trigger
}

// ErrNoLevels is returned for packs without any level.
var ErrNoLevels = errors.New("levels: pack has no levels")

// TriggerFor returns the cutscene trigger for a level index.
func (p *Pack) TriggerFor(level int) (Trigger, bool) {
	for _, t := range p.Triggers {
		if t.Level == level {
			return t, true
		}
	}
	return Trigger{}, false
}

// Pages returns the number of menu pages for a page size.
func (p *Pack) Pages(pageSize int) int {
	if pageSize <= 0 || len(p.Levels) == 0 {
		return 1
	}
	return (len(p.Levels) + pageSize - 1) / pageSize
}

// Validate checks the pack for structural problems.
func (p *Pack) Validate() error {
	if len(p.Levels) == 0 {
		return ErrNoLevels
	}
	for i, lvl := range p.Levels {
		if lvl.Name == "" {
			return fmt.Errorf("levels: level %d has no name", i)
		}
		for j, it := range lvl.Items {
			if it.X < 0 || it.X > 100 || it.Y < 0 || it.Y > 100 {
				return fmt.Errorf("levels: level %q item %d out of range (%v, %v)", lvl.Name, j, it.X, it.Y)
			}
		}
	}
	for _, t := range p.Triggers {
		if t.Level < 0 || t.Level >= len(p.Levels) {
			return fmt.Errorf("levels: cutscene trigger for unknown level %d", t.Level)
		}
		if t.Start < 0 {
			return fmt.Errorf("levels: cutscene trigger for level %d starts at %d", t.Level, t.Start)
		}
	}
	return nil
}
