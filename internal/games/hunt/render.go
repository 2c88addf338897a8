package hunt

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/siege-arcade/internal/core"
	"github.com/vovakirdan/siege-arcade/internal/games/hunt/levels"
)

// Glyphs
const (
	BottleChar    = '*'
	StickyChar    = '▪'
	CollectedChar = 'O'
	CrossChar     = '+'
	SecretMark    = "★ "
)

func sceneSprite(background string) string {
	return "scenes/" + background
}

func (g *Game) sprite(name string) *core.Sprite {
	if g.runtime.Assets == nil || name == "" {
		return nil
	}
	return g.runtime.Assets.Sprite(name)
}

// sceneRect is the play area between the HUD row and the notice row.
func (g *Game) sceneRect() core.Rect {
	return core.NewRect(0, 1, g.runtime.ScreenW, max(1, g.runtime.ScreenH-2))
}

// menuCardRects lays out up to n level cards in two columns. Shared by
// rendering and pointer hit-testing.
func menuCardRects(screenW, screenH, n int) []core.Rect {
	cardH := 3
	if screenH < 20 {
		cardH = 1
	}
	cardW := min(36, (screenW-3)/2)
	x0 := (screenW - (2*cardW + 1)) / 2
	rects := make([]core.Rect, n)
	for i := range rects {
		col, row := i%2, i/2
		rects[i] = core.NewRect(x0+col*(cardW+1), 3+row*cardH, cardW, cardH)
	}
	return rects
}

// menuCardAt returns the card index under a cell, or -1.
func menuCardAt(screenW, screenH, n, x, y int) int {
	for i, r := range menuCardRects(screenW, screenH, n) {
		if r.Contains(x, y) {
			return i
		}
	}
	return -1
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenTooSmall {
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("Window too small (need %dx%d)", minScreenW, minScreenH))
		return
	}

	switch g.screen {
	case ScreenMenu:
		g.renderMenu(dst)
	case ScreenLevel:
		g.renderLevel(dst)
	case ScreenWon:
		g.renderLevel(dst)
		msg := "Level Complete!"
		if g.StickyFoundIn(g.level) {
			msg = "Level Complete! Sticky note found."
		}
		drawMessage(dst, msg, "Enter next level  |  Esc menu")
	case ScreenCutscene:
		g.renderCutscene(dst)
	}

	if g.paused {
		drawMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.notice != "" {
		dst.DrawTextCenteredColor(dst.Height()-1, g.notice, core.ColorBrightYellow)
	}
}

func (g *Game) renderMenu(dst *core.Screen) {
	title := strings.ToUpper(g.pack.Name)
	if title == "" {
		title = "HIDDEN OBJECT HUNT"
	}
	dst.DrawTextCenteredColor(0, title, core.ColorBrightYellow)
	pages := g.pack.Pages(g.cfg.PageSize)
	dst.DrawTextCenteredColor(1, fmt.Sprintf("Page %d/%d   Sticky notes: %d", g.page+1, pages, g.progress.StickyNotes), core.ColorGray)

	if len(g.pack.Levels) == 0 {
		dst.DrawTextCentered(dst.Height()/2, "No levels available")
		return
	}

	start := g.page * g.cfg.PageSize
	for i, r := range menuCardRects(dst.Width(), dst.Height(), g.pageCount()) {
		idx := start + i
		lvl := g.pack.Levels[idx]

		label := fmt.Sprintf("%d. %s", idx+1, lvl.Name)
		if lvl.Secret {
			label = SecretMark + lvl.Name
		}
		color := core.ColorDefault
		switch {
		case !g.Unlocked(idx):
			color = core.ColorGray
			label += " [locked]"
		case lvl.Secret:
			color = core.ColorBrightMagenta
		}
		if i == g.cursor {
			color = core.ColorBrightYellow
		}

		textY := r.Y
		if r.H >= 3 {
			dst.DrawBox(r)
			textY = r.Y + 1
		}
		maxW := r.W - 4
		if utf8.RuneCountInString(label) > maxW {
			label = string([]rune(label)[:maxW])
		}
		if i == g.cursor {
			dst.SetColor(r.X+1, textY, '▶', core.ColorBrightYellow)
		}
		dst.DrawTextColor(r.X+2, textY, label, color)
	}

	help := "←/→ page  ↑/↓ choose  Enter play  X reset  Q quit"
	if g.page > 0 {
		help = "◀ " + help
	}
	if g.page < pages-1 {
		help += " ▶"
	}
	dst.DrawTextCenteredColor(dst.Height()-2, help, core.ColorGray)
}

func (g *Game) renderLevel(dst *core.Screen) {
	lvl := g.pack.Levels[g.level]
	r := g.sceneRect()

	bg := g.sprite(sceneSprite(lvl.Background))
	if bg != nil {
		dst.DrawSprite(bg, r)
	} else {
		dst.DrawBox(r)
	}

	for i, it := range lvl.Items {
		x, y := g.itemCell(it)
		switch {
		case g.collected[i]:
			dst.SetColor(x, y, CollectedChar, core.ColorBrightRed)
		case bg != nil:
			// Hidden in the art
		case it.Type == levels.ItemSticky:
			dst.SetColor(x, y, StickyChar, core.ColorYellow)
		default:
			dst.SetColor(x, y, BottleChar, core.ColorGreen)
		}
	}
	if g.screen == ScreenLevel && !g.won {
		dst.SetColor(g.crossX, g.crossY, CrossChar, core.ColorBrightWhite)
	}

	// HUD
	dst.DrawTextColor(1, 0, lvl.Name, core.ColorBrightWhite)
	label := "Bottles"
	if g.goal == levels.ItemSticky {
		label = "Notes"
	}
	counter := fmt.Sprintf("%s %d/%d   ✎ %d ", label, g.found, g.target, g.progress.StickyNotes)
	dst.DrawTextColor(dst.Width()-utf8.RuneCountInString(counter), 0, counter, core.ColorBrightYellow)

	if g.sticky != nil {
		g.drawSticky(dst, *g.sticky)
	} else if g.notice == "" {
		dst.DrawTextCenteredColor(dst.Height()-1, "Click or move + and press Enter  |  Esc menu", core.ColorGray)
	}
}

// drawSticky shows a note panel with word-wrapped text.
func (g *Game) drawSticky(dst *core.Screen, n Note) {
	w := min(44, dst.Width()-4)
	lines := wrap(n.Text, w-4)
	h := min(len(lines)+5, dst.Height()-2)
	box := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextColor(box.X+2, box.Y+1, n.Title, core.ColorBrightYellow)
	for i, line := range lines {
		y := box.Y + 3 + i
		if y >= box.Bottom()-1 {
			break
		}
		dst.DrawText(box.X+2, y, line)
	}
	hint := "Enter close"
	dst.DrawTextColor(box.Right()-2-utf8.RuneCountInString(hint), box.Bottom()-1, hint, core.ColorGray)
}

// wrap breaks text into lines no wider than width.
func wrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	return strings.Split(ansi.Wordwrap(text, width, ""), "\n")
}

func (g *Game) renderCutscene(dst *core.Screen) {
	f := g.cut.frame()
	area := core.NewRect(0, 0, dst.Width(), dst.Height()-2)
	if sp := g.sprite(f.Image); sp != nil {
		dst.DrawSprite(sp, area)
	} else {
		dst.DrawBox(area)
		n, total := g.cut.position()
		dst.DrawTextCenteredColor(area.H/2, fmt.Sprintf("Cutscene %d/%d", n, total), core.ColorBrightCyan)
		dst.DrawTextCenteredColor(area.H/2+1, f.Image, core.ColorGray)
	}

	help := "Enter next  |  Esc skip"
	if g.cut.auto {
		help = "Enter next  |  Esc skip  |  auto"
	}
	dst.DrawTextCenteredColor(dst.Height()-2, help, core.ColorGray)
}

// drawMessage draws a boxed two-line message in the centre of the screen.
func drawMessage(dst *core.Screen, title, subtitle string) {
	tw := utf8.RuneCountInString(title)
	sw := utf8.RuneCountInString(subtitle)
	boxW := max(tw, sw) + 6
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2
	box := core.NewRect(boxX, boxY, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextColor(boxX+(boxW-tw)/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawText(boxX+(boxW-sw)/2, boxY+3, subtitle)
}
