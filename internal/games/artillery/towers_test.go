package artillery

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/siege-arcade/internal/config"
	"github.com/vovakirdan/siege-arcade/internal/core"
)

const testGroundY = 710.0

func testFighters() (*Character, *Character) {
	left := &Character{Side: SidePlayer, Rect: core.RectF{X: 0, Y: 500, W: 100, H: 100}, hitAge: -1}
	right := &Character{Side: SideOpponent, Rect: core.RectF{X: 1100, Y: 500, W: 100, H: 100}, hitAge: -1}
	return left, right
}

func TestBuildTowers(t *testing.T) {
	cfg := config.DefaultArtilleryConfig().Towers
	left, right := testFighters()
	boxes := buildTowers(left, right, testGroundY, cfg, rand.New(rand.NewSource(1)))

	if want := len(cfg.StackPositions) * cfg.BoxesPerStack; len(boxes) != want {
		t.Fatalf("built %d boxes, expected %d", len(boxes), want)
	}
	for i, b := range boxes {
		level := i % cfg.BoxesPerStack
		wantBottom := testGroundY - float64(level)*cfg.BoxSize
		if math.Abs(b.Rect.Bottom()-wantBottom) > 1e-9 {
			t.Errorf("box %d bottom = %f, expected %f", i, b.Rect.Bottom(), wantBottom)
		}
		top := level == cfg.BoxesPerStack-1
		if top && b.Type == BoxMystery {
			t.Errorf("top box %d should have a special type", i)
		}
		if !top && b.Type != BoxMystery {
			t.Errorf("covered box %d has type %v, expected mystery", i, b.Type)
		}
	}

	// Stacks sit at the configured fractions between the fighters
	centre := boxes[0].Rect.Center().X
	want := left.Center().X + cfg.StackPositions[0]*(right.Center().X-left.Center().X)
	if math.Abs(centre-want) > 1e-9 {
		t.Errorf("first stack centred at %f, expected %f", centre, want)
	}
}

func TestSettleBoxesFallOntoSupport(t *testing.T) {
	cfg := config.DefaultArtilleryConfig().Towers
	left, right := testFighters()
	boxes := buildTowers(left, right, testGroundY, cfg, rand.New(rand.NewSource(1)))

	// Knock out the second box of the first stack
	boxes[1].Active = false
	settleBoxes(boxes, testGroundY, cfg)
	if !boxes[2].Falling || !boxes[3].Falling {
		t.Fatal("boxes above a gap should start falling")
	}
	if boxes[0].Falling {
		t.Error("box on the ground should not fall")
	}

	for i := 0; i < 20; i++ {
		settleBoxes(boxes, testGroundY, cfg)
	}
	if got := boxes[2].Rect.Bottom(); math.Abs(got-boxes[0].Rect.Y) > 1e-9 {
		t.Errorf("box 2 bottom = %f, expected to rest on box 0 at %f", got, boxes[0].Rect.Y)
	}
	if got := boxes[3].Rect.Bottom(); math.Abs(got-boxes[2].Rect.Y) > 1e-9 {
		t.Errorf("box 3 bottom = %f, expected to rest on box 2 at %f", got, boxes[2].Rect.Y)
	}
	if boxes[2].Falling || boxes[3].Falling {
		t.Error("boxes should stop falling once supported")
	}
}

func TestSettleBoxesSnapsWithinFallSpeed(t *testing.T) {
	cfg := config.DefaultArtilleryConfig().Towers
	b := &Box{Rect: core.RectF{X: 0, Y: testGroundY - 64, W: 60, H: 60}, Active: true}
	settleBoxes([]*Box{b}, testGroundY, cfg)
	if b.Rect.Bottom() != testGroundY {
		t.Errorf("bottom = %f, expected to snap onto the ground", b.Rect.Bottom())
	}
}

func TestSettleBoxesTolerance(t *testing.T) {
	cfg := config.DefaultArtilleryConfig().Towers
	b := &Box{Rect: core.RectF{X: 0, Y: testGroundY - 60 - cfg.SupportTolerance, W: 60, H: 60}, Active: true}
	before := b.Rect.Y
	settleBoxes([]*Box{b}, testGroundY, cfg)
	if b.Rect.Y != before || b.Falling {
		t.Error("box within the support tolerance should stay put")
	}
}

func TestEnforceBoxTypes(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	lower := &Box{Rect: core.RectF{Y: 650, W: 60, H: 60}, Type: BoxFlame, Active: true}
	upper := &Box{Rect: core.RectF{Y: 590, W: 60, H: 60}, Type: BoxMystery, Active: true}
	boxes := []*Box{lower, upper}

	enforceBoxTypes(boxes, rng)
	if lower.Type != BoxMystery {
		t.Errorf("covered box type = %v, expected mystery", lower.Type)
	}
	if upper.Type == BoxMystery {
		t.Error("top box should be given a special type")
	}

	upper.Active = false
	enforceBoxTypes(boxes, rng)
	if lower.Type == BoxMystery {
		t.Error("uncovered box should be re-typed")
	}

	// A special top box keeps its type
	kept := lower.Type
	enforceBoxTypes(boxes, rng)
	if lower.Type != kept {
		t.Errorf("top box changed from %v to %v", kept, lower.Type)
	}
}

func TestCoveredIgnoresOtherStacks(t *testing.T) {
	a := &Box{Rect: core.RectF{Y: 650}, Stack: 0, Active: true}
	b := &Box{Rect: core.RectF{Y: 590}, Stack: 1, Active: true}
	if covered(a, []*Box{a, b}) {
		t.Error("a box in another stack does not cover")
	}
	if n := activeBoxes([]*Box{a, b, {}}); n != 2 {
		t.Errorf("activeBoxes = %d, expected 2", n)
	}
}
