package artillery

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/siege-arcade/internal/config"
	"github.com/vovakirdan/siege-arcade/internal/core"
)

// opponentAI picks timing, aim and charge for the computer side. It is
// randomized timing plus angle jitter, sharpened by the difficulty manager
// as the match goes on.
type opponentAI struct {
	cfg        config.ArtilleryOpponent
	difficulty *config.DifficultyManager
	rng        *rand.Rand
}

// thinkDelay returns how long the opponent waits before firing.
func (ai *opponentAI) thinkDelay(turns, ticks int) time.Duration {
	ms := float64(ai.cfg.ThinkMinMS) + ai.rng.Float64()*float64(ai.cfg.ThinkSpreadMS)
	return ai.difficulty.ThinkTime(time.Duration(ms*float64(time.Millisecond)), turns, ticks)
}

// aim returns the angle from shooter to target plus a random offset inside a
// window centred on the direct line.
func (ai *opponentAI) aim(from, at *Character, turns, ticks int) float64 {
	base := at.Center().Sub(from.Center()).Angle()
	width := ai.difficulty.Inaccuracy(ai.cfg.Inaccuracy, turns, ticks)
	return base + (ai.rng.Float64()-0.5)*width
}

// charge picks a ratio from the opponent's charge range.
func (ai *opponentAI) charge(turns, ticks int) float64 {
	lo := ai.difficulty.MinCharge(ai.cfg.MinCharge, ai.cfg.MaxCharge, turns, ticks)
	return core.Clamp(lo+ai.rng.Float64()*(ai.cfg.MaxCharge-lo), 0, 1)
}

// turnDelay is the pause between the opponent firing and handing the turn back.
func (ai *opponentAI) turnDelay() time.Duration {
	return time.Duration(ai.cfg.TurnDelayMS) * time.Millisecond
}
