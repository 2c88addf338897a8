package artillery

import (
	"math"

	"github.com/vovakirdan/siege-arcade/internal/core"
	"github.com/vovakirdan/siege-arcade/internal/multiplayer"
)

// Sides of the duel. The player always stands on the left and acts first.
const (
	SidePlayer   = multiplayer.Player1
	SideOpponent = multiplayer.Player2
)

// EntityKind tags the entity variants that take part in collisions.
type EntityKind int

const (
	KindCharacter EntityKind = iota
	KindProjectile
	KindPowerUp
	KindBox
)

func (k EntityKind) String() string {
	switch k {
	case KindCharacter:
		return "character"
	case KindProjectile:
		return "projectile"
	case KindPowerUp:
		return "powerup"
	case KindBox:
		return "box"
	default:
		return "unknown"
	}
}

// Entity is anything with a footprint in world space.
type Entity interface {
	Kind() EntityKind
	Bounds() core.RectF
}

// Character is one combatant.
type Character struct {
	ID   string // Roster id
	Name string
	Side multiplayer.PlayerID
	Rect core.RectF
	HP   int

	hitAge int // Ticks since the last hit; -1 when not in hit state
}

func (c *Character) Kind() EntityKind   { return KindCharacter }
func (c *Character) Bounds() core.RectF { return c.Rect }

// Center returns the middle of the character.
func (c *Character) Center() core.Vec {
	return c.Rect.Center()
}

// Alive reports whether the character has hit points left.
func (c *Character) Alive() bool {
	return c.HP > 0
}

// TakeDamage subtracts damage, never going below zero, and starts the hit state.
func (c *Character) TakeDamage(damage int) int {
	c.HP = max(0, c.HP-damage)
	c.hitAge = 0
	return c.HP
}

// InHitState reports whether the character is still recovering from a hit.
// Characters in hit state are immune to further hits.
func (c *Character) InHitState() bool {
	return c.hitAge >= 0
}

// tick ages the hit state and clears it after hitTicks.
func (c *Character) tick(hitTicks int) {
	if c.hitAge < 0 {
		return
	}
	c.hitAge++
	if c.hitAge >= hitTicks {
		c.hitAge = -1
	}
}

// recoil returns the horizontal knock-back offset for drawing: a half sine
// over the first bounceTicks of the hit state, pushing away from the centre.
func (c *Character) recoil(bounceTicks int, distance float64) float64 {
	if c.hitAge < 0 || bounceTicks <= 0 || c.hitAge >= bounceTicks {
		return 0
	}
	off := distance * math.Sin(float64(c.hitAge)/float64(bounceTicks)*math.Pi)
	if c.Side == SidePlayer {
		return -off
	}
	return off
}

// Projectile is a shot in flight.
type Projectile struct {
	Pos    core.Vec
	Vel    core.Vec
	Radius float64
	Owner  multiplayer.PlayerID
	Damage int
	Ratio  float64 // Charge ratio the shot was fired with

	// Bounces is the remaining ground-bounce budget. It only ever goes down;
	// a negative value marks the projectile for removal.
	Bounces int

	Empowered  bool    // Passed through the mid-field power-up
	Skin       BoxType // Box bonus carried by this shot, BoxMystery for none
	Multiplier float64 // Damage multiplier from the box bonus
	Struck     bool    // Hit a character or a box
	Rolling    bool    // Out of bounces and decelerating on the ground
}

func (p *Projectile) Kind() EntityKind { return KindProjectile }

func (p *Projectile) Bounds() core.RectF {
	return core.RectF{X: p.Pos.X - p.Radius, Y: p.Pos.Y - p.Radius, W: 2 * p.Radius, H: 2 * p.Radius}
}

// Spent reports whether the projectile is due for removal.
func (p *Projectile) Spent() bool {
	return p.Bounces < 0
}

// finish retires the projectile.
func (p *Projectile) finish() {
	p.Bounces = -1
}

// hitDamage applies the box bonus then the power-up empowerment, rounding up
// after each multiplier.
func (p *Projectile) hitDamage(empowerMultiplier float64) int {
	d := p.Damage
	if p.Multiplier > 1 {
		d = int(math.Ceil(float64(d) * p.Multiplier))
	}
	if p.Empowered {
		d = int(math.Ceil(float64(d) * empowerMultiplier))
	}
	return d
}

// PowerUp is the collectible that spawns mid-field after a miss.
type PowerUp struct {
	Rect   core.RectF
	Active bool
}

func (p *PowerUp) Kind() EntityKind   { return KindPowerUp }
func (p *PowerUp) Bounds() core.RectF { return p.Rect }

// BoxType is the type tag of a tower box.
type BoxType int

const (
	BoxMystery BoxType = iota
	BoxFlame
	BoxFrost
	BoxThunder
)

// specialBoxTypes are the types a revealed box may take.
var specialBoxTypes = []BoxType{BoxFlame, BoxFrost, BoxThunder}

func (t BoxType) String() string {
	switch t {
	case BoxFlame:
		return "flame"
	case BoxFrost:
		return "frost"
	case BoxThunder:
		return "thunder"
	default:
		return "mystery"
	}
}

// Box is one block of a tower.
type Box struct {
	Rect    core.RectF
	Type    BoxType
	Stack   int
	Active  bool
	Falling bool
}

func (b *Box) Kind() EntityKind   { return KindBox }
func (b *Box) Bounds() core.RectF { return b.Rect }
