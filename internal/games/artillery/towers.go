package artillery

import (
	"math"
	"math/rand"
	"sort"

	"github.com/vovakirdan/siege-arcade/internal/config"
	"github.com/vovakirdan/siege-arcade/internal/core"
)

// buildTowers stacks boxes between the two characters. Every box starts as
// mystery except the top one of each stack.
func buildTowers(left, right *Character, groundY float64, cfg config.ArtilleryTowers, rng *rand.Rand) []*Box {
	if cfg.BoxSize <= 0 || cfg.BoxesPerStack <= 0 {
		return nil
	}
	lx, rx := left.Center().X, right.Center().X
	boxes := make([]*Box, 0, len(cfg.StackPositions)*cfg.BoxesPerStack)
	for stack, frac := range cfg.StackPositions {
		cx := lx + frac*(rx-lx)
		for i := 0; i < cfg.BoxesPerStack; i++ {
			b := &Box{
				Rect: core.RectF{
					X: cx - cfg.BoxSize/2,
					Y: groundY - float64(i+1)*cfg.BoxSize,
					W: cfg.BoxSize,
					H: cfg.BoxSize,
				},
				Stack:  stack,
				Active: true,
			}
			if i == cfg.BoxesPerStack-1 {
				b.Type = randomSpecial(rng)
			}
			boxes = append(boxes, b)
		}
	}
	return boxes
}

func randomSpecial(rng *rand.Rand) BoxType {
	return specialBoxTypes[rng.Intn(len(specialBoxTypes))]
}

// supportGap returns how far a box can drop before it rests on the ground or
// on an active box below it that overlaps it horizontally.
func supportGap(b *Box, boxes []*Box, groundY, tolerance float64) float64 {
	gap := groundY - b.Rect.Bottom()
	for _, o := range boxes {
		if o == b || !o.Active || !o.Rect.OverlapsX(b.Rect) {
			continue
		}
		d := o.Rect.Y - b.Rect.Bottom()
		if d >= -tolerance && d < gap {
			gap = d
		}
	}
	return gap
}

// settleBoxes applies one frame of support physics. A box resting on the
// ground or on another box within tolerance stays put; otherwise it falls
// by the fixed fall speed, snapping onto support when closer than that.
// Lower boxes are resolved first so a column falls together.
func settleBoxes(boxes []*Box, groundY float64, cfg config.ArtilleryTowers) {
	order := make([]*Box, 0, len(boxes))
	for _, b := range boxes {
		if b.Active {
			order = append(order, b)
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Rect.Bottom() > order[j].Rect.Bottom()
	})

	for _, b := range order {
		gap := supportGap(b, boxes, groundY, cfg.SupportTolerance)
		if gap <= cfg.SupportTolerance {
			b.Falling = false
			continue
		}
		b.Falling = true
		b.Rect.Y += math.Min(cfg.FallSpeed, gap)
	}
}

// enforceBoxTypes hides the type of every covered box and reveals the top
// box of each stack, re-rolling it if it is still mystery.
func enforceBoxTypes(boxes []*Box, rng *rand.Rand) {
	for _, b := range boxes {
		if !b.Active {
			continue
		}
		if covered(b, boxes) {
			b.Type = BoxMystery
		} else if b.Type == BoxMystery {
			b.Type = randomSpecial(rng)
		}
	}
}

// covered reports whether another active box of the same stack sits above b.
func covered(b *Box, boxes []*Box) bool {
	for _, o := range boxes {
		if o != b && o.Active && o.Stack == b.Stack && o.Rect.Y < b.Rect.Y {
			return true
		}
	}
	return false
}

// activeBoxes counts the boxes still standing.
func activeBoxes(boxes []*Box) int {
	n := 0
	for _, b := range boxes {
		if b.Active {
			n++
		}
	}
	return n
}
