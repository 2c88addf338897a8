package hunt

import (
	"fmt"

	"github.com/vovakirdan/siege-arcade/internal/games/hunt/levels"
)

// cutscene plays a range of frames from the pack's cutscene script.
type cutscene struct {
	frames []levels.Frame
	start  int
	index  int
	end    int // Last frame index, inclusive
	unlock *int
	page   *int
	auto   bool
}

// newCutscene clamps a trigger's range to the available frames. It fails
// when the range starts past the last frame. The notice is non-empty when
// the player should be told the range was shortened.
func newCutscene(frames []levels.Frame, t levels.Trigger) (*cutscene, string, error) {
	if t.Start >= len(frames) {
		return nil, "", fmt.Errorf("hunt: cutscene %d is not available", t.Start)
	}
	c := &cutscene{
		frames: frames,
		start:  t.Start,
		index:  t.Start,
		end:    t.End,
		unlock: t.Unlock,
		page:   t.Page,
		auto:   t.Auto,
	}
	var notice string
	if c.end > len(frames)-1 {
		c.end = len(frames) - 1
		notice = fmt.Sprintf("Some cutscenes are missing; playing %d-%d.", c.index, c.end)
	}
	if c.end < c.index {
		c.end = c.index
	}
	return c, notice, nil
}

// frame returns the frame on screen.
func (c *cutscene) frame() levels.Frame {
	return c.frames[c.index]
}

// next moves to the following frame and reports whether the range is over.
func (c *cutscene) next() bool {
	c.index++
	return c.index > c.end
}

// position returns the one-based frame number within the range and its length.
func (c *cutscene) position() (int, int) {
	return c.index - c.start + 1, c.end - c.start + 1
}
