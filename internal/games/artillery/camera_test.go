package artillery

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/siege-arcade/internal/config"
	"github.com/vovakirdan/siege-arcade/internal/core"
)

func TestDesiredOffset(t *testing.T) {
	const viewW = 1280.0
	tests := []struct {
		name             string
		targetX, viewX   float64
		minX, maxX, want float64
	}{
		{"centred target", 640, 640, -75, 1356, 0},
		{"clamped at the left edge", 12, viewW / 3, -75, 1356, 395},
		{"clamped at the right edge", 1268, viewW * 2 / 3, -75, 1356, -396},
		{"inside the clamp", 700, 640, -75, 1356, -60},
		{"narrow world is centred", 0, 640, 0, 100, 590},
	}
	for _, tc := range tests {
		got := desiredOffset(tc.targetX, tc.viewX, tc.minX, tc.maxX, viewW)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("%s: desiredOffset = %f, expected %f", tc.name, got, tc.want)
		}
	}
}

func TestCameraFollowSmooths(t *testing.T) {
	c := Camera{Smoothing: 0.08}
	c.Follow(100)
	if math.Abs(c.X-8) > 1e-9 {
		t.Errorf("X after one step = %f, expected 8", c.X)
	}
	for i := 0; i < 500; i++ {
		c.Follow(100)
	}
	if math.Abs(c.X-100) > 1e-6 {
		t.Errorf("X = %f, expected to converge on 100", c.X)
	}
	if got := c.ToWorld(c.ToView(42)); math.Abs(got-42) > 1e-9 {
		t.Errorf("ToWorld(ToView(42)) = %f", got)
	}
}

func TestWorldExtentsIncludesBoxes(t *testing.T) {
	left, right := testFighters()
	boxes := []*Box{
		{Rect: core.RectF{X: -50, W: 60, H: 60}, Active: true},
		{Rect: core.RectF{X: 1500, W: 60, H: 60}},
	}
	minX, maxX := worldExtents(left, right, boxes)
	if minX != -50 || maxX != right.Rect.Right() {
		t.Errorf("extents = (%f, %f), expected (-50, %f)", minX, maxX, right.Rect.Right())
	}
}

func TestOpponentAIStaysInRange(t *testing.T) {
	cfg := config.DefaultArtilleryConfig()
	diff := config.NewDifficultyManager(cfg.Difficulty)
	diff.SetEnabled(false)
	ai := &opponentAI{cfg: cfg.Opponent, difficulty: diff, rng: rand.New(rand.NewSource(9))}

	left, right := testFighters()
	base := left.Center().Sub(right.Center()).Angle()
	for i := 0; i < 200; i++ {
		angle := ai.aim(right, left, 0, 0)
		if math.Abs(angle-base) > cfg.Opponent.Inaccuracy/2+1e-9 {
			t.Fatalf("aim %f outside the window around %f", angle, base)
		}
		charge := ai.charge(0, 0)
		if charge < cfg.Opponent.MinCharge || charge > cfg.Opponent.MaxCharge {
			t.Fatalf("charge %f outside [%f, %f]", charge, cfg.Opponent.MinCharge, cfg.Opponent.MaxCharge)
		}
		delay := ai.thinkDelay(0, 0)
		if delay < time.Second || delay > 2*time.Second {
			t.Fatalf("think delay %v outside [1s, 2s]", delay)
		}
	}
	if ai.turnDelay() != 500*time.Millisecond {
		t.Errorf("turnDelay = %v, expected 500ms", ai.turnDelay())
	}
}
