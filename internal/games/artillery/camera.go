package artillery

import "github.com/vovakirdan/siege-arcade/internal/core"

// Camera is a horizontal scroll offset added to world x before drawing.
type Camera struct {
	X         float64
	Smoothing float64
}

// Follow eases the offset toward desired.
func (c *Camera) Follow(desired float64) {
	c.X += (desired - c.X) * c.Smoothing
}

// ToView converts a world x into viewport space.
func (c *Camera) ToView(x float64) float64 {
	return x + c.X
}

// ToWorld converts a viewport x into world space.
func (c *Camera) ToWorld(x float64) float64 {
	return x - c.X
}

// desiredOffset computes the offset that puts targetX at viewX on screen,
// clamped so no more than a quarter viewport of empty world shows past the
// playable extents [minX, maxX]. When the extents do not fit, the offset
// centres them instead.
func desiredOffset(targetX, viewX, minX, maxX, viewW float64) float64 {
	desired := viewX - targetX
	buffer := viewW / 4
	maxCam := -(minX - buffer)
	minCam := viewW - (maxX + buffer)
	if minCam < maxCam {
		return core.Clamp(desired, minCam, maxCam)
	}
	return viewW/2 - (minX+maxX)/2
}

// worldExtents returns the horizontal span of the characters and boxes.
func worldExtents(left, right *Character, boxes []*Box) (float64, float64) {
	minX, maxX := left.Rect.X, right.Rect.Right()
	for _, b := range boxes {
		if !b.Active {
			continue
		}
		if b.Rect.X < minX {
			minX = b.Rect.X
		}
		if b.Rect.Right() > maxX {
			maxX = b.Rect.Right()
		}
	}
	return minX, maxX
}
