package tui

import (
	"math"
	"math/rand"
	"strconv"
	"time"

	"github.com/vovakirdan/siege-arcade/internal/core"
)

// PlanetState is the menu easter egg. It advances once per menu launch.
type PlanetState int

const (
	PlanetHidden PlanetState = iota
	PlanetRight             // Bottom-right corner
	PlanetLeft              // Bottom-left corner
)

const (
	planetKey    = "menu.planet"
	planetChance = 0.04
	planetSprite = "menu/planet"
	starCount    = 150
)

// nextPlanet returns the state after one launch. roll is uniform in [0, 1).
func nextPlanet(s PlanetState, roll float64) PlanetState {
	switch s {
	case PlanetHidden:
		if roll < planetChance {
			return PlanetRight
		}
		return PlanetHidden
	case PlanetRight:
		return PlanetLeft
	default:
		return PlanetHidden
	}
}

// advancePlanet loads the stored state, advances it and stores it back.
// An unreadable value counts as hidden.
func advancePlanet(kv core.KV, key string, rng *rand.Rand) (PlanetState, error) {
	cur := PlanetHidden
	raw, ok, err := kv.Get(key)
	if err != nil {
		return PlanetHidden, err
	}
	if ok {
		if n, convErr := strconv.Atoi(raw); convErr == nil && n >= 0 && n <= int(PlanetLeft) {
			cur = PlanetState(n)
		}
	}
	next := nextPlanet(cur, rng.Float64())
	if err := kv.Set(key, strconv.Itoa(int(next))); err != nil {
		return next, err
	}
	return next, nil
}

type star struct {
	x, y   float64 // Fractions of the screen
	size   float64
	speed  float64
	offset float64
}

// Starfield is a fixed set of slowly pulsing stars.
type Starfield struct {
	stars []star
}

// NewStarfield places stars at random screen fractions.
func NewStarfield(rng *rand.Rand, n int) *Starfield {
	sf := &Starfield{stars: make([]star, n)}
	for i := range sf.stars {
		sf.stars[i] = star{
			x:      rng.Float64(),
			y:      rng.Float64(),
			size:   rng.Float64() * 2,
			speed:  rng.Float64()*0.05 + 0.02,
			offset: rng.Float64() * 2 * math.Pi,
		}
	}
	return sf
}

// brightness returns the star's alpha in [0.05, 1] at time t.
func (s star) brightness(t time.Duration) float64 {
	wave := (math.Sin(float64(t.Milliseconds())*0.015*s.speed+s.offset) + 1) / 2
	return 0.05 + wave*0.95
}

// Draw renders the stars at time t. Dim stars are skipped.
func (sf *Starfield) Draw(dst *core.Screen, t time.Duration) {
	w, h := dst.Width(), dst.Height()
	for _, s := range sf.stars {
		a := s.brightness(t)
		if a < 0.25 {
			continue
		}
		x, y := int(s.x*float64(w)), int(s.y*float64(h))
		switch {
		case a > 0.8 && s.size > 1:
			dst.SetColor(x, y, '*', core.ColorBrightWhite)
		case a > 0.5:
			dst.SetColor(x, y, '+', core.ColorWhite)
		default:
			dst.SetColor(x, y, '.', core.ColorGray)
		}
	}
}

// drawPlanet places the planet sprite in the corner for the state.
func drawPlanet(dst *core.Screen, s PlanetState, assets core.AssetSource) {
	if s == PlanetHidden {
		return
	}
	var sp *core.Sprite
	if assets != nil {
		sp = assets.Sprite(planetSprite)
	}
	if sp == nil {
		sp = &core.Sprite{Rows: [][]rune{[]rune(" ___ "), []rune("(   )"), []rune(" --- ")}, Color: core.ColorOrange}
	}
	w, h := sp.Width(), sp.Height()
	margin := 2
	x := dst.Width() - w - margin
	if s == PlanetLeft {
		x = margin
	}
	dst.DrawSprite(sp, core.NewRect(x, dst.Height()-h-1, w, h))
}

// MenuAssets lists the sprites the menu draws.
func MenuAssets() []core.AssetRef {
	return []core.AssetRef{{Name: planetSprite}}
}
