package artillery

import (
	"math"

	"github.com/vovakirdan/siege-arcade/internal/config"
)

// groundEvent reports what happened when a projectile touched the ground.
type groundEvent int

const (
	groundNone   groundEvent = iota
	groundBounce             // Bounced, still in play
	groundSettle             // Bounced too softly and stopped
	groundRoll               // Out of bounces, still rolling
	groundStop               // Rolled to a halt
)

// integrate advances a projectile by one frame.
func integrate(p *Projectile, gravity float64) {
	p.Pos = p.Pos.Add(p.Vel)
	p.Vel.Y += gravity
}

// outOfPlay reports whether the projectile left the generous box around
// the visible area: one viewport either side horizontally, one above and
// two below.
func outOfPlay(p *Projectile, camera, viewW, viewH float64) bool {
	left := -camera - viewW
	right := -camera + 2*viewW
	top := -viewW
	bottom := viewH + 2*viewW
	return p.Pos.X < left || p.Pos.X > right || p.Pos.Y < top || p.Pos.Y > bottom
}

// groundCollide resolves contact with the ground line.
func groundCollide(p *Projectile, groundY float64, ph config.ArtilleryPhysics) groundEvent {
	if p.Pos.Y+p.Radius < groundY {
		return groundNone
	}
	p.Pos.Y = groundY - p.Radius

	if p.Bounces > 0 {
		p.Bounces--
		p.Vel.Y = -p.Vel.Y * ph.BounceDamping
		p.Vel.X *= ph.BounceFriction
		if math.Abs(p.Vel.Y) < ph.SettleVY && math.Abs(p.Vel.X) < ph.SettleVX {
			p.Vel.X, p.Vel.Y = 0, 0
			p.finish()
			return groundSettle
		}
		return groundBounce
	}

	p.Rolling = true
	p.Vel.Y = 0
	p.Vel.X *= ph.RollFriction
	if math.Abs(p.Vel.X) < ph.RollStopVX {
		p.Vel.X = 0
		p.finish()
		return groundStop
	}
	return groundRoll
}
