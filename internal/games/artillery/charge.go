package artillery

import (
	"math"
	"time"

	"github.com/vovakirdan/siege-arcade/internal/config"
	"github.com/vovakirdan/siege-arcade/internal/core"
)

// Shot holds the launch parameters derived from a charge.
type Shot struct {
	Ratio  float64
	Speed  float64
	Damage int
}

// ChargeRatio converts a hold duration into a ratio in [0, 1].
// Holding longer than max gives exactly the same ratio as max.
func ChargeRatio(held, max time.Duration) float64 {
	if max <= 0 {
		return 1
	}
	if held > max {
		held = max
	}
	if held < 0 {
		held = 0
	}
	return float64(held) / float64(max)
}

// ShotFor interpolates speed and damage linearly over the charge ratio.
func ShotFor(ratio float64, c config.ArtilleryCharge) Shot {
	ratio = core.Clamp(ratio, 0, 1)
	damage := int(math.Ceil(float64(c.MinDamage) + ratio*float64(c.MaxDamage-c.MinDamage)))
	return Shot{
		Ratio:  ratio,
		Speed:  c.BaseSpeed + ratio*c.AddedSpeed,
		Damage: max(c.MinDamage, damage),
	}
}

// launch creates a projectile leaving the shooter's edge along angle.
func launch(from *Character, angle float64, shot Shot, ph config.ArtilleryPhysics) *Projectile {
	offset := from.Rect.W/2 + ph.Radius + 2
	return &Projectile{
		Pos:        from.Center().Add(core.FromAngle(angle, offset)),
		Vel:        core.FromAngle(angle, shot.Speed),
		Radius:     ph.Radius,
		Owner:      from.Side,
		Damage:     shot.Damage,
		Ratio:      shot.Ratio,
		Bounces:    ph.Bounces,
		Multiplier: 1,
	}
}
