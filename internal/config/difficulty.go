package config

import "time"

// DifficultyManager scales the computer opponent as a match goes on. The
// level starts at the configured initial value and climbs linearly to 1 by
// Progression.MaxAt turns (or ticks).
type DifficultyManager struct {
	cfg  DifficultyConfig
	base float64
}

func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg, base: unit(cfg.InitialLevel)}
}

// SetInitialLevel overrides the starting level.
func (d *DifficultyManager) SetInitialLevel(level float64) { d.base = unit(level) }

// SetEnabled turns progression on or off. When off, Level stays at the
// initial level.
func (d *DifficultyManager) SetEnabled(enabled bool) { d.cfg.Enabled = enabled }

func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level is the current difficulty in [0, 1].
func (d *DifficultyManager) Level(turns, ticks int) float64 {
	if !d.IsEnabled() {
		return d.base
	}
	var elapsed int
	switch d.cfg.Progression.Type {
	case "turns":
		elapsed = turns
	case "time":
		elapsed = ticks
	default:
		return d.base
	}
	progress := unit(float64(elapsed) / float64(max(d.cfg.Progression.MaxAt, 1)))
	return d.base + progress*(1-d.base)
}

// Inaccuracy narrows the opponent's aim jitter window from base toward
// base*(1-AimReduction).
func (d *DifficultyManager) Inaccuracy(base float64, turns, ticks int) float64 {
	return base * (1 - d.Level(turns, ticks)*unit(d.cfg.Scaling.AimReduction))
}

// ThinkTime shortens the opponent's pause before firing.
func (d *DifficultyManager) ThinkTime(base time.Duration, turns, ticks int) time.Duration {
	k := 1 - d.Level(turns, ticks)*unit(d.cfg.Scaling.ThinkReduction)
	return time.Duration(float64(base) * k)
}

// MinCharge raises the weakest charge the opponent may pick, capped at
// maxCharge.
func (d *DifficultyManager) MinCharge(base, maxCharge float64, turns, ticks int) float64 {
	return min(maxCharge, base+d.Level(turns, ticks)*d.cfg.Scaling.ChargeBoost)
}

func unit(v float64) float64 { return max(0, min(1, v)) }
