// Package hunt implements a hidden-object game: find every item in a city
// scene to unlock the next one. Progress is kept in the platform key/value
// store and story cutscenes play after selected levels.
package hunt

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/siege-arcade/internal/config"
	"github.com/vovakirdan/siege-arcade/internal/core"
	"github.com/vovakirdan/siege-arcade/internal/games/hunt/levels"
	"github.com/vovakirdan/siege-arcade/internal/registry"
)

// Screen is the part of the game currently shown.
type Screen int

const (
	ScreenMenu     Screen = iota // Paged level picker
	ScreenLevel                  // Searching a scene
	ScreenWon                    // Level complete overlay
	ScreenCutscene               // Story frames
)

func (s Screen) String() string {
	switch s {
	case ScreenMenu:
		return "menu"
	case ScreenLevel:
		return "level"
	case ScreenWon:
		return "won"
	case ScreenCutscene:
		return "cutscene"
	default:
		return "unknown"
	}
}

const (
	minScreenW = 40
	minScreenH = 16
)

// configPath stores the custom config path set via CLI
var configPath string

// levelsDir overrides the configured level directory when set via CLI
var levelsDir string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetLevelsDir sets a directory of level files replacing the built-in pack.
func SetLevelsDir(dir string) {
	levelsDir = dir
}

// musicTracks is the background track per menu page of levels.
var musicTracks = []string{"summer3", "summer2", "summer1", "night"}

// Game implements the hidden-object hunt.
type Game struct {
	runtime core.RuntimeConfig
	cfg     config.HuntConfig
	pack    *levels.Pack
	store   *ProgressStore
	rng     *rand.Rand
	sched   *core.Scheduler
	tick    time.Duration

	progress Progress

	screen Screen
	page   int
	cursor int // Index within the page

	level     int
	goal      levels.ItemType
	target    int
	found     int
	collected []bool
	notes     []Note
	sticky    *Note // Open sticky note panel
	crossX    int   // Keyboard crosshair, scene cells
	crossY    int
	won       bool // Goal reached, cutscene pending

	cut     *cutscene
	cutTask core.TaskID

	notice     string
	noticeTask core.TaskID
	resetArmed bool

	paused         bool
	screenTooSmall bool
	sounds         []core.SoundCue
}

// New creates a new hidden-object game.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "hunt"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Bucharest Hunt"
}

// Assets lists scene backgrounds and cutscene frames. All are optional.
func (g *Game) Assets() []core.AssetRef {
	pack := g.pack
	if pack == nil {
		cfg, _ := config.LoadHunt(configPath)
		pack, _ = loadPack(cfg)
	}
	var refs []core.AssetRef
	seen := make(map[string]bool)
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		refs = append(refs, core.AssetRef{Name: name})
	}
	for _, lvl := range pack.Levels {
		if lvl.Background != "" {
			add(sceneSprite(lvl.Background))
		}
	}
	for _, f := range pack.Frames {
		add(f.Image)
	}
	return refs
}

// loadPack returns the configured level pack, falling back to the
// built-in one when the directory cannot be loaded.
func loadPack(cfg config.HuntConfig) (*levels.Pack, error) {
	dir := cfg.LevelsDir
	if levelsDir != "" {
		dir = levelsDir
	}
	if dir != "" {
		p, err := levels.NewLoader(dir).Load()
		if err == nil {
			return p, nil
		}
		if b, berr := levels.Builtin(); berr == nil {
			return b, err
		}
		return &levels.Pack{}, err
	}
	p, err := levels.Builtin()
	if err != nil {
		return &levels.Pack{}, err
	}
	return p, nil
}

// Reset loads config, levels and saved progress and opens the level menu.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadHunt(configPath)
	if err != nil {
		cfg = config.DefaultHuntConfig()
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 8
	}
	g.cfg = cfg

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	if g.sched == nil {
		g.sched = core.NewScheduler()
	} else {
		g.sched.Reset()
	}
	g.tick = core.TickDuration(runtime.TickRate)
	g.notice = ""
	g.paused = false
	g.Resize(runtime.ScreenW, runtime.ScreenH)

	pack, perr := loadPack(cfg)
	g.pack = pack
	g.store = NewProgressStore(runtime.Store, ProgressKey(cfg.ProgressKey, runtime.Profile))
	progress, lerr := g.store.Load(len(pack.Levels))
	g.progress = progress

	g.page = 0
	g.cursor = 0
	g.openMenu()

	switch {
	case perr != nil:
		g.notify("Level pack could not be loaded")
	case lerr != nil:
		g.notify("Saved progress was unreadable and has been reset")
	}
}

// Resize updates the screen size without touching the game.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.screenTooSmall = w < minScreenW || h < minScreenH
	if g.screen == ScreenLevel {
		r := g.sceneRect()
		g.crossX = core.Clamp(g.crossX, r.X, r.Right()-1)
		g.crossY = core.Clamp(g.crossY, r.Y, r.Bottom()-1)
	}
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall {
		return g.result()
	}
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result()
	}

	switch g.screen {
	case ScreenMenu:
		g.stepMenu(in)
	case ScreenLevel:
		g.stepLevel(in)
	case ScreenWon:
		if in.Has(core.ActionBack) {
			g.openMenu()
		} else if in.Has(core.ActionConfirm) || in.Has(core.ActionFire) || pressed(in) {
			g.nextLevelOrMenu()
		}
	case ScreenCutscene:
		if in.Has(core.ActionBack) {
			g.finishCutscene()
		} else if in.Has(core.ActionConfirm) || in.Has(core.ActionFire) || in.Has(core.ActionRight) || pressed(in) {
			g.advanceCutscene()
		}
	}

	g.sched.Advance(g.tick)
	return g.result()
}

// pressed reports whether the frame holds a pointer press.
func pressed(in core.InputFrame) bool {
	for _, ev := range in.Pointer {
		if ev.Kind == core.PointerPress {
			return true
		}
	}
	return false
}

func (g *Game) stepMenu(in core.InputFrame) {
	if in.Has(core.ActionReset) {
		g.requestReset()
		return
	}
	if in.Has(core.ActionConfirm) || in.Has(core.ActionFire) || in.Has(core.ActionLeft) ||
		in.Has(core.ActionRight) || pressed(in) {
		g.resetArmed = false
	}

	pages := g.pack.Pages(g.cfg.PageSize)
	if in.Has(core.ActionLeft) && g.page > 0 {
		g.page--
		g.cursor = 0
	}
	if in.Has(core.ActionRight) && g.page < pages-1 {
		g.page++
		g.cursor = 0
	}
	count := g.pageCount()
	if in.Has(core.ActionUp) {
		g.cursor = max(0, g.cursor-1)
	}
	if in.Has(core.ActionDown) {
		g.cursor = min(max(0, count-1), g.cursor+1)
	}

	for _, ev := range in.Pointer {
		idx := menuCardAt(g.runtime.ScreenW, g.runtime.ScreenH, count, ev.X, ev.Y)
		if idx < 0 {
			continue
		}
		g.cursor = idx
		if ev.Kind == core.PointerPress {
			g.startLevel(g.page*g.cfg.PageSize + idx)
			return
		}
	}
	if (in.Has(core.ActionConfirm) || in.Has(core.ActionFire)) && count > 0 {
		g.startLevel(g.page*g.cfg.PageSize + g.cursor)
	}
}

// pageCount returns the number of levels on the current page.
func (g *Game) pageCount() int {
	start := g.page * g.cfg.PageSize
	return max(0, min(g.cfg.PageSize, len(g.pack.Levels)-start))
}

// requestReset erases progress on the second press.
func (g *Game) requestReset() {
	if !g.resetArmed {
		g.resetArmed = true
		g.notify("Press X again to erase all progress")
		return
	}
	g.resetArmed = false
	if err := g.store.Reset(); err != nil {
		g.notify("Progress could not be reset")
		return
	}
	g.progress = Progress{}
	g.progress.fit(len(g.pack.Levels))
	g.page = 0
	g.cursor = 0
	g.notify("Progress reset")
}

func (g *Game) stepLevel(in core.InputFrame) {
	if g.won {
		return
	}
	if g.sticky != nil {
		if in.Has(core.ActionConfirm) || in.Has(core.ActionFire) || in.Has(core.ActionBack) || pressed(in) {
			g.sticky = nil
		}
		return
	}
	if in.Has(core.ActionBack) {
		g.openMenu()
		return
	}
	if in.Has(core.ActionRestart) {
		g.startLevel(g.level)
		return
	}

	r := g.sceneRect()
	switch {
	case in.Has(core.ActionLeft):
		g.crossX--
	case in.Has(core.ActionRight):
		g.crossX++
	}
	switch {
	case in.Has(core.ActionUp):
		g.crossY--
	case in.Has(core.ActionDown):
		g.crossY++
	}

	for _, ev := range in.Pointer {
		switch ev.Kind {
		case core.PointerMove:
			g.crossX, g.crossY = ev.X, ev.Y
		case core.PointerPress:
			g.crossX, g.crossY = ev.X, ev.Y
			g.clickAt(ev.X, ev.Y)
		}
		if g.screen != ScreenLevel || g.won || g.sticky != nil {
			return
		}
	}
	g.crossX = core.Clamp(g.crossX, r.X, r.Right()-1)
	g.crossY = core.Clamp(g.crossY, r.Y, r.Bottom()-1)

	if in.Has(core.ActionConfirm) || in.Has(core.ActionFire) {
		g.clickAt(g.crossX, g.crossY)
	}
}

// Unlocked reports whether a level can be started.
func (g *Game) Unlocked(index int) bool {
	if index < 0 || index >= len(g.pack.Levels) {
		return false
	}
	return index <= g.progress.MaxUnlockedLevel || index == g.cfg.SecretLevel || g.pack.Levels[index].Secret
}

func (g *Game) openMenu() {
	g.sched.Cancel(g.cutTask)
	g.screen = ScreenMenu
	g.sticky = nil
	g.cut = nil
	g.won = false
	g.resetArmed = false
	g.page = core.Clamp(g.page, 0, g.pack.Pages(g.cfg.PageSize)-1)
	g.cursor = core.Clamp(g.cursor, 0, max(0, g.pageCount()-1))
	g.emit(core.SoundCue{Kind: core.SoundMusic, Name: "menu"})
}

// startLevel opens a scene. Locked levels are ignored.
func (g *Game) startLevel(index int) {
	if !g.Unlocked(index) {
		return
	}
	lvl := g.pack.Levels[index]

	g.screen = ScreenLevel
	g.level = index
	g.goal, g.target = lvl.Goal()
	g.found = 0
	g.collected = make([]bool, len(lvl.Items))
	g.notes = levelNotes(lvl, index, g.pack.Notes)
	g.sticky = nil
	g.won = false

	r := g.sceneRect()
	g.crossX, g.crossY = r.Center()
	g.emit(core.SoundCue{Kind: core.SoundMusic, Name: g.levelTrack(index)})
}

func (g *Game) levelTrack(index int) string {
	page := index / g.cfg.PageSize
	return musicTracks[core.Clamp(page, 0, len(musicTracks)-1)]
}

// itemCell maps an item's percentage position to a screen cell.
func (g *Game) itemCell(it levels.Item) (int, int) {
	r := g.sceneRect()
	x := r.X + int(math.Round(it.X/100*float64(r.W-1)))
	y := r.Y + int(math.Round(it.Y/100*float64(r.H-1)))
	return x, y
}

// clickAt collects the nearest uncollected item within the hit radius.
func (g *Game) clickAt(x, y int) {
	best, bestDist := -1, math.MaxInt
	for i, it := range g.pack.Levels[g.level].Items {
		if g.collected[i] {
			continue
		}
		ix, iy := g.itemCell(it)
		dx, dy := core.Abs(ix-x), core.Abs(iy-y)
		if dx > g.cfg.HitRadius || dy > g.cfg.HitRadius {
			continue
		}
		if d := dx + dy; d < bestDist {
			best, bestDist = i, d
		}
	}
	if best >= 0 {
		g.collect(best)
	}
}

// collect marks an item found and applies its effects.
func (g *Game) collect(i int) {
	if i < 0 || i >= len(g.collected) || g.collected[i] || g.won {
		return
	}
	g.collected[i] = true
	it := g.pack.Levels[g.level].Items[i]

	switch it.Type {
	case levels.ItemBottle:
		if g.goal == levels.ItemBottle {
			g.found++
		}
		g.emit(core.Cue(core.SoundPop))
		g.emit(core.SoundCue{Kind: core.SoundClip, Name: fmt.Sprintf("bottle%d", g.rng.Intn(5)+1)})
	case levels.ItemSticky:
		if g.goal == levels.ItemSticky {
			g.found++
		}
		g.progress.fit(len(g.pack.Levels))
		g.progress.StickiesFoundInLevels[g.level] = min(g.progress.StickiesFoundInLevels[g.level]+1, g.target)
		g.progress.StickyNotes++
		g.save()

		note := g.notes[i]
		g.sticky = &note
		g.notify("Sticky note found!")
		g.emit(core.Cue(core.SoundPop))
		g.emit(core.SoundCue{Kind: core.SoundClip, Name: fmt.Sprintf("sticky%d", g.rng.Intn(4)+1)})
	}

	if g.target > 0 && g.found >= g.target {
		g.win()
	}
}

// win unlocks the next level and shows either the win overlay or, after a
// short delay, the level's cutscene.
func (g *Game) win() {
	g.won = true
	g.sticky = nil

	if g.level == g.progress.MaxUnlockedLevel && g.level < len(g.pack.Levels)-1 {
		g.progress.MaxUnlockedLevel++
		g.save()
	}

	if t, ok := g.pack.TriggerFor(g.level); ok {
		g.sched.After(time.Duration(g.cfg.WinDelayMS)*time.Millisecond, func(tok core.Token) {
			if tok.Cancelled() || g.screen != ScreenLevel {
				return
			}
			g.startCutscene(t)
		})
		return
	}
	g.screen = ScreenWon
	g.emit(core.Cue(core.SoundWin))
}

// StickyFoundIn reports whether any sticky note was found in a level.
func (g *Game) StickyFoundIn(index int) bool {
	return index >= 0 && index < len(g.progress.StickiesFoundInLevels) && g.progress.StickiesFoundInLevels[index] > 0
}

func (g *Game) nextLevelOrMenu() {
	if next := g.level + 1; next < len(g.pack.Levels) && g.Unlocked(next) {
		g.startLevel(next)
		return
	}
	g.openMenu()
}

func (g *Game) startCutscene(t levels.Trigger) {
	c, notice, err := newCutscene(g.pack.Frames, t)
	if err != nil {
		g.openMenu()
		g.notify(fmt.Sprintf("Cutscene %d is not available", t.Start))
		return
	}
	g.cut = c
	g.screen = ScreenCutscene
	g.won = false
	if notice != "" {
		g.notify(notice)
	}
	g.emit(core.Cue(core.SoundMusicStop))
	g.showFrame()
}

// showFrame plays the current frame's clip and, in auto mode, schedules
// the next frame.
func (g *Game) showFrame() {
	g.emit(core.SoundCue{Kind: core.SoundClip, Name: g.cut.frame().Clip})
	if !g.cut.auto {
		return
	}
	g.cutTask = g.sched.After(time.Duration(g.cfg.FrameMS)*time.Millisecond, func(tok core.Token) {
		if tok.Cancelled() || g.screen != ScreenCutscene {
			return
		}
		g.advanceCutscene()
	})
}

func (g *Game) advanceCutscene() {
	if g.cut == nil {
		return
	}
	g.sched.Cancel(g.cutTask)
	if g.cut.next() {
		g.finishCutscene()
		return
	}
	g.showFrame()
}

// finishCutscene applies the range's unlock and menu page and returns to
// the menu. The unlock never lowers progress.
func (g *Game) finishCutscene() {
	c := g.cut
	if c == nil {
		g.openMenu()
		return
	}
	if c.unlock != nil && g.progress.MaxUnlockedLevel < *c.unlock {
		g.progress.MaxUnlockedLevel = min(*c.unlock, max(0, len(g.pack.Levels)-1))
		g.save()
	}
	switch {
	case c.page != nil:
		g.page = *c.page
	case g.progress.MaxUnlockedLevel >= g.cfg.PageSize:
		g.page = 1
	}
	g.cursor = 0
	g.openMenu()
}

func (g *Game) save() {
	if err := g.store.Save(g.progress); err != nil {
		g.notify("Progress could not be saved")
	}
}

// notify shows a message for the configured time.
func (g *Game) notify(msg string) {
	g.notice = msg
	g.sched.Cancel(g.noticeTask)
	g.noticeTask = g.sched.After(time.Duration(g.cfg.NotificationMS)*time.Millisecond, func(tok core.Token) {
		if tok.Cancelled() {
			return
		}
		g.notice = ""
	})
}

func (g *Game) emit(cue core.SoundCue) {
	g.sounds = append(g.sounds, cue)
}

func (g *Game) result() core.StepResult {
	sounds := g.sounds
	g.sounds = nil
	return core.StepResult{State: g.State(), Sounds: sounds}
}

// Screen returns the part of the game currently shown.
func (g *Game) Screen() Screen {
	return g.screen
}

// Progress returns a copy of the player's progress.
func (g *Game) Progress() Progress {
	p := g.progress
	p.StickiesFoundInLevels = append([]int(nil), g.progress.StickiesFoundInLevels...)
	return p
}

// Found returns the goal count of the open level.
func (g *Game) Found() (int, int) {
	return g.found, g.target
}

// State returns the current game state. The score is the number of sticky
// notes collected so far.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:  g.progress.StickyNotes,
		Paused: g.paused,
	}
}

// Register the game with the registry
func init() {
	registry.Register("hunt", func() registry.Game {
		return New()
	})
}
