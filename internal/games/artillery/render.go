package artillery

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/siege-arcade/internal/core"
	"github.com/vovakirdan/siege-arcade/internal/multiplayer"
)

// Visual characters for rendering
const (
	GroundChar     = '▀'
	ProjectileChar = '●'
	EmpoweredChar  = '✹'
	PowerUpChar    = '◆'
	BoxChar        = '▒'
	FallbackChar   = '█'
	AimChar        = '·'
	MeterFull      = '█'
	MeterEmpty     = '░'
)

// hudRows is the number of rows above the field; one more row below it
// holds the power meter.
const hudRows = 2

// viewport maps world pixels to screen cells.
type viewport struct {
	top    int
	cols   int
	rows   int
	sx, sy float64
}

func newViewport(screenW, screenH int, worldW, worldH float64) viewport {
	rows := max(1, screenH-hudRows-1)
	return viewport{
		top:  hudRows,
		cols: screenW,
		rows: rows,
		sx:   float64(screenW) / worldW,
		sy:   float64(rows) / worldH,
	}
}

// cell converts a viewport-space point to a screen cell.
func (v viewport) cell(x, y float64) (int, int) {
	return int(math.Floor(x * v.sx)), v.top + int(math.Floor(y*v.sy))
}

// rect converts a viewport-space rectangle to cells, at least one cell big.
func (v viewport) rect(r core.RectF) core.Rect {
	x0, y0 := v.cell(r.X, r.Y)
	x1, y1 := v.cell(r.Right(), r.Bottom())
	return core.NewRect(x0, y0, max(1, x1-x0), max(1, y1-y0))
}

// point converts a cell back to the viewport-space point at its centre.
func (v viewport) point(cx, cy int) core.Vec {
	return core.Vec{
		X: (float64(cx) + 0.5) / v.sx,
		Y: (float64(cy-v.top) + 0.5) / v.sy,
	}
}

func (g *Game) viewport() viewport {
	return newViewport(g.runtime.ScreenW, g.runtime.ScreenH, g.cfg.World.Width, g.cfg.World.Height)
}

// screenToWorld converts a pointer cell into world coordinates.
func (g *Game) screenToWorld(x, y int) core.Vec {
	p := g.viewport().point(x, y)
	p.X = g.camera.ToWorld(p.X)
	return p
}

// view shifts a world rectangle by the camera.
func (g *Game) view(r core.RectF) core.RectF {
	r.X = g.camera.ToView(r.X)
	return r
}

func boxSprite(t BoxType) string        { return "boxes/" + t.String() }
func projectileSprite(t BoxType) string { return "projectiles/" + t.String() }

func boxColor(t BoxType) core.Color {
	switch t {
	case BoxFlame:
		return core.ColorBrightRed
	case BoxFrost:
		return core.ColorBrightCyan
	case BoxThunder:
		return core.ColorBrightYellow
	default:
		return core.ColorGray
	}
}

// hpColor follows the usual traffic-light thresholds.
func hpColor(hp, max int) core.Color {
	switch {
	case float64(hp) < float64(max)*0.3:
		return core.ColorRed
	case float64(hp) < float64(max)*0.6:
		return core.ColorYellow
	default:
		return core.ColorGreen
	}
}

func (g *Game) sprite(name string) *core.Sprite {
	if g.runtime.Assets == nil {
		return nil
	}
	return g.runtime.Assets.Sprite(name)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenTooSmall {
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("Window too small (need %dx%d)", minScreenW, minScreenH))
		return
	}
	if g.phase == PhaseSelect {
		g.renderSelect(dst)
		return
	}

	v := newViewport(dst.Width(), dst.Height(), g.cfg.World.Width, g.cfg.World.Height)

	_, gy := v.cell(0, g.groundY())
	for x := 0; x < dst.Width(); x++ {
		dst.SetColor(x, gy, GroundChar, core.ColorYellow)
	}

	for _, b := range g.boxes {
		if b.Active {
			g.drawBox(dst, v, b)
		}
	}
	if g.power.Active {
		r := v.rect(g.view(g.power.Rect))
		if sp := g.sprite("powerup"); sp != nil {
			dst.DrawSprite(sp, r)
		} else {
			dst.DrawRectColor(r, PowerUpChar, core.ColorBrightMagenta)
		}
	}

	g.drawCharacter(dst, v, g.player)
	g.drawCharacter(dst, v, g.opponent)

	for _, p := range g.projectiles {
		g.drawProjectile(dst, v, p)
	}
	if g.controlling() && g.phase == PhaseAim {
		g.drawAim(dst, v)
	}

	g.drawHUD(dst)
	g.drawMeter(dst)

	if g.banner {
		banner := fmt.Sprintf("★ POWER-UP! Damage x%.2f ★", g.cfg.PowerUp.Multiplier)
		dst.DrawTextCenteredColor(hudRows+1, banner, core.ColorBrightMagenta)
	}
	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.phase == PhaseOver && g.winner != nil {
		g.drawCenteredMessage(dst, g.winner.Name+" Wins!", "R rematch  |  Esc choose fighters")
	}
}

func (g *Game) drawCharacter(dst *core.Screen, v viewport, c *Character) {
	if c == nil {
		return
	}
	rect := g.view(c.Rect)
	rect.X += c.recoil(g.ticksFor(g.cfg.Character.BounceMS), g.cfg.Character.BounceOffset)
	r := v.rect(rect)

	flash := c.InHitState() && c.hitAge < g.ticksFor(g.cfg.Character.HitMS)/2
	if sp := g.characterSprite(c); sp != nil {
		if flash {
			lit := *sp
			lit.Color = core.ColorBrightWhite
			sp = &lit
		}
		dst.DrawSprite(sp, r)
	} else {
		color := core.ColorBlue
		if c.Side == SideOpponent {
			color = core.ColorRed
		}
		if flash {
			color = core.ColorBrightWhite
		}
		dst.DrawRectColor(r, FallbackChar, color)
	}

	// HP bar one row above, 80% of the sprite width
	maxHP := g.cfg.Character.HP
	barW := max(3, r.W*8/10)
	barX := r.X + (r.W-barW)/2
	filled := 0
	if maxHP > 0 {
		filled = int(math.Ceil(float64(barW) * float64(max(0, c.HP)) / float64(maxHP)))
	}
	color := hpColor(c.HP, maxHP)
	for i := 0; i < barW; i++ {
		if i < filled {
			dst.SetColor(barX+i, r.Y-1, MeterFull, color)
		} else {
			dst.SetColor(barX+i, r.Y-1, MeterEmpty, core.ColorGray)
		}
	}
}

// characterSprite returns the fighter's art, mirrored for the right side.
func (g *Game) characterSprite(c *Character) *core.Sprite {
	sp := g.sprite(SpriteName(c.ID))
	if sp == nil || c.Side == SidePlayer {
		return sp
	}
	if g.mirrored == nil {
		g.mirrored = make(map[string]*core.Sprite)
	}
	if m, ok := g.mirrored[sp.Name]; ok {
		return m
	}
	m := mirrorSprite(sp)
	g.mirrored[sp.Name] = m
	return m
}

var mirrorRunes = map[rune]rune{
	'/': '\\', '\\': '/',
	'(': ')', ')': '(',
	'[': ']', ']': '[',
	'{': '}', '}': '{',
	'<': '>', '>': '<',
}

// mirrorSprite flips a sprite horizontally.
func mirrorSprite(sp *core.Sprite) *core.Sprite {
	w := sp.Width()
	out := &core.Sprite{Name: sp.Name, Color: sp.Color, Rows: make([][]rune, len(sp.Rows))}
	for y, row := range sp.Rows {
		flipped := make([]rune, w)
		for x := range flipped {
			flipped[x] = ' '
		}
		for x, r := range row {
			if m, ok := mirrorRunes[r]; ok {
				r = m
			}
			flipped[w-1-x] = r
		}
		out.Rows[y] = flipped
	}
	return out
}

func (g *Game) drawBox(dst *core.Screen, v viewport, b *Box) {
	r := v.rect(g.view(b.Rect))
	if sp := g.sprite(boxSprite(b.Type)); sp != nil {
		dst.DrawSprite(sp, r)
		return
	}
	color := boxColor(b.Type)
	dst.DrawRectColor(r, BoxChar, color)
	label := "?"
	if b.Type != BoxMystery {
		label = strings.ToUpper(b.Type.String()[:1])
	}
	dst.SetColor(r.X+r.W/2, r.Y+r.H/2, []rune(label)[0], color)
}

func (g *Game) drawProjectile(dst *core.Screen, v viewport, p *Projectile) {
	x, y := v.cell(g.camera.ToView(p.Pos.X), p.Pos.Y)
	switch {
	case p.Empowered:
		dst.SetColor(x, y, EmpoweredChar, core.ColorBrightMagenta)
	case p.Skin != BoxMystery:
		if sp := g.sprite(projectileSprite(p.Skin)); sp != nil {
			dst.DrawSprite(sp, core.NewRect(x, y, 1, 1))
		} else {
			dst.SetColor(x, y, ProjectileChar, boxColor(p.Skin))
		}
	case p.Owner == SidePlayer:
		dst.SetColor(x, y, ProjectileChar, core.ColorCyan)
	default:
		dst.SetColor(x, y, ProjectileChar, core.ColorBrightRed)
	}
}

// drawAim draws a dotted arrow from the turn holder along the aim angle.
func (g *Game) drawAim(dst *core.Screen, v viewport) {
	c := g.character(g.turn)
	angle := g.aim[g.turn]
	length := math.Max(45, 4/v.sx)
	center := c.Center()
	center.X = g.camera.ToView(center.X)
	base := center.Add(core.FromAngle(angle, c.Rect.W/2+5))

	const dots = 6
	for i := 0; i <= dots; i++ {
		pt := base.Add(core.FromAngle(angle, length*float64(i)/dots))
		x, y := v.cell(pt.X, pt.Y)
		r := AimChar
		if i == dots {
			r = arrowGlyph(angle)
		}
		dst.SetColor(x, y, r, core.ColorBrightWhite)
	}
}

// arrowGlyph picks the arrow closest to angle (y grows downward).
func arrowGlyph(angle float64) rune {
	arrows := []rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}
	octant := int(math.Round(angle/(math.Pi/4))) % 8
	if octant < 0 {
		octant += 8
	}
	return arrows[octant]
}

func (g *Game) drawHUD(dst *core.Screen) {
	w := dst.Width()
	left := fmt.Sprintf(" %s  HP %d", g.player.Name, g.player.HP)
	right := fmt.Sprintf("%s  HP %d ", g.opponent.Name, g.opponent.HP)
	dst.DrawTextColor(0, 0, left, hpColor(g.player.HP, g.cfg.Character.HP))
	dst.DrawTextColor(w-utf8.RuneCountInString(right), 0, right, hpColor(g.opponent.HP, g.cfg.Character.HP))
	dst.DrawTextCenteredColor(0, g.turnLabel(), core.ColorBrightWhite)

	info := fmt.Sprintf(" %s  Shots %d", g.mode, g.shots)
	dst.DrawTextColor(0, 1, info, core.ColorGray)
	for _, side := range []multiplayer.PlayerID{SidePlayer, SideOpponent} {
		t, ok := g.bonus[side]
		if !ok {
			continue
		}
		label := fmt.Sprintf("%s next shot: %s x%.2f", g.character(side).Name, t, g.cfg.Towers.Multipliers[t.String()])
		x := utf8.RuneCountInString(info) + 2
		if side == SideOpponent {
			x = w - utf8.RuneCountInString(label) - 1
		}
		dst.DrawTextColor(x, 1, label, boxColor(t))
	}
}

func (g *Game) turnLabel() string {
	switch {
	case g.phase == PhaseOver:
		return "Game Over"
	case g.mode == multiplayer.MatchModeHotSeat:
		return fmt.Sprintf("%s's Turn", g.character(g.turn).Name)
	case g.turn == SidePlayer:
		return "Your Turn"
	default:
		return "Opponent's Turn"
	}
}

// drawMeter shows the charge on the bottom row while charging.
func (g *Game) drawMeter(dst *core.Screen) {
	if g.phase != PhaseCharging {
		if g.controlling() {
			dst.DrawTextColor(1, dst.Height()-1, "Hold click or press Space to charge, release to fire", core.ColorGray)
		}
		return
	}
	ratio := g.ChargeRatio()
	percent := int(math.Round(ratio * 100))
	barW := max(10, dst.Width()/3)
	filled := int(math.Round(ratio * float64(barW)))

	y := dst.Height() - 1
	dst.DrawTextColor(1, y, "Power [", core.ColorWhite)
	x := 8
	for i := 0; i < barW; i++ {
		if i < filled {
			dst.SetColor(x+i, y, MeterFull, core.ColorBrightYellow)
		} else {
			dst.SetColor(x+i, y, MeterEmpty, core.ColorGray)
		}
	}
	dst.DrawTextColor(x+barW, y, fmt.Sprintf("] %d%%", percent), core.ColorWhite)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	tw, sw := utf8.RuneCountInString(title), utf8.RuneCountInString(subtitle)
	boxW := max(tw, sw) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))
	dst.DrawTextColor(boxX+(boxW-tw)/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawText(boxX+(boxW-sw)/2, boxY+3, subtitle)
}

// cardRects lays the roster out as a row of cards. Shared by rendering and
// pointer hit-testing.
func cardRects(screenW, screenH int) []core.Rect {
	n := len(Roster)
	cardW := min(18, (screenW-2)/n-1)
	cardH := min(10, screenH-9)
	if cardW < 4 || cardH < 3 {
		return nil
	}
	total := n*cardW + (n-1)
	x := (screenW - total) / 2
	rects := make([]core.Rect, n)
	for i := range rects {
		rects[i] = core.NewRect(x+i*(cardW+1), 4, cardW, cardH)
	}
	return rects
}

// cardAt returns the roster index under a cell, or -1.
func cardAt(screenW, screenH, x, y int) int {
	for i, r := range cardRects(screenW, screenH) {
		if r.Contains(x, y) {
			return i
		}
	}
	return -1
}

func (g *Game) renderSelect(dst *core.Screen) {
	dst.DrawTextCenteredColor(1, "S I E G E   D U E L", core.ColorBrightYellow)
	prompt := "Choose your fighter"
	if g.selecting == SideOpponent {
		prompt = "Player 2: choose your fighter"
	}
	dst.DrawTextCentered(2, prompt)

	for i, r := range cardRects(dst.Width(), dst.Height()) {
		f := Roster[i]
		dst.DrawBox(r)
		inner := core.NewRect(r.X+1, r.Y+1, r.W-2, r.H-3)
		if sp := g.sprite(SpriteName(f.ID)); sp != nil {
			dst.DrawSprite(sp, inner)
		} else {
			dst.DrawRectColor(inner, FallbackChar, f.Color)
		}

		name := f.Name
		if utf8.RuneCountInString(name) > r.W-2 {
			name = string([]rune(name)[:r.W-2])
		}
		color := core.ColorDefault
		switch {
		case i == g.cursor:
			color = core.ColorBrightYellow
		case g.selecting == SideOpponent && i == g.picks[0]:
			color = core.ColorGray
		}
		dst.DrawTextColor(r.X+1+(r.W-2-utf8.RuneCountInString(name))/2, r.Bottom()-2, name, color)
		if i == g.cursor {
			dst.SetColor(r.X+r.W/2, r.Bottom(), '▲', core.ColorBrightYellow)
		}
	}

	dst.DrawTextCenteredColor(dst.Height()-2, "←/→ choose  Enter pick  click a card  Q quit", core.ColorGray)
	dst.DrawTextCenteredColor(dst.Height()-1, g.mode.String(), core.ColorGray)
}
