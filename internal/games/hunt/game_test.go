package hunt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/siege-arcade/internal/core"
	"github.com/vovakirdan/siege-arcade/internal/games/hunt/levels"
)

func newTestGame(t *testing.T, kv core.KV, profile string) *Game {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hunt.yaml")
	if err := os.WriteFile(path, []byte("levels_dir: \"\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	SetConfigPath(path)
	SetLevelsDir("")
	t.Cleanup(func() { SetConfigPath("") })

	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1, Store: kv, Profile: profile})
	return g
}

func intPtr(v int) *int { return &v }

// testPack is a small pack: two bottle levels, a sticky level with a
// cutscene and a final bottle level.
func testPack() *levels.Pack {
	return &levels.Pack{
		Name:  "test",
		Notes: levels.Notes{Sender: "Ana", Recipient: "Bo"},
		Levels: []levels.Level{
			{Index: 0, Name: "One", Items: []levels.Item{{Type: levels.ItemBottle, X: 10, Y: 10}, {Type: levels.ItemBottle, X: 90, Y: 90}}},
			{Index: 1, Name: "Two", Items: []levels.Item{{Type: levels.ItemBottle, X: 50, Y: 50}, {Type: levels.ItemSticky, X: 10, Y: 90}}},
			{Index: 2, Name: "Three", Items: []levels.Item{{Type: levels.ItemSticky, X: 20, Y: 20}, {Type: levels.ItemSticky, X: 80, Y: 20}}},
			{Index: 3, Name: "Four", Items: []levels.Item{{Type: levels.ItemBottle, X: 50, Y: 50}}},
		},
		Frames: []levels.Frame{
			{Image: "cutscenes/a", Clip: "a"},
			{Image: "cutscenes/b", Clip: "b"},
			{Image: "cutscenes/c", Clip: "c"},
		},
		Triggers: []levels.Trigger{
			{Level: 2, Start: 0, End: 5, Unlock: intPtr(3), Auto: true},
		},
	}
}

func withPack(g *Game, p *levels.Pack) {
	g.pack = p
	g.progress.fit(len(p.Levels))
	g.page, g.cursor = 0, 0
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func idle(g *Game, n int) {
	for i := 0; i < n; i++ {
		g.Step(core.NewInputFrame())
	}
}

func hasCue(sounds []core.SoundCue, kind core.Sound, name string) bool {
	for _, s := range sounds {
		if s.Kind == kind && (name == "" || s.Name == name) {
			return true
		}
	}
	return false
}

func TestBuiltinPackLoads(t *testing.T) {
	g := newTestGame(t, core.NewMemoryKV(), "")
	if got := len(g.pack.Levels); got != 32 {
		t.Fatalf("%d levels, expected 32", got)
	}
	if pages := g.pack.Pages(g.cfg.PageSize); pages != 4 {
		t.Errorf("%d pages, expected 4", pages)
	}
	if g.Screen() != ScreenMenu || g.notice != "" {
		t.Errorf("screen %v notice %q, expected a quiet menu", g.Screen(), g.notice)
	}
}

func TestUnlockedLevels(t *testing.T) {
	g := newTestGame(t, core.NewMemoryKV(), "")
	tests := []struct {
		index int
		want  bool
	}{
		{0, true},
		{1, false},
		{7, true}, // Secret level
		{8, false},
		{-1, false},
		{32, false},
	}
	for _, tc := range tests {
		if got := g.Unlocked(tc.index); got != tc.want {
			t.Errorf("Unlocked(%d) = %v, expected %v", tc.index, got, tc.want)
		}
	}

	g.Step(frame(core.ActionDown))
	g.Step(frame(core.ActionConfirm))
	if g.Screen() != ScreenMenu {
		t.Error("a locked level should not start")
	}
}

func TestMenuPaging(t *testing.T) {
	g := newTestGame(t, core.NewMemoryKV(), "")
	g.Step(frame(core.ActionLeft))
	if g.page != 0 {
		t.Errorf("page = %d, expected to stay on 0", g.page)
	}
	for i := 0; i < 5; i++ {
		g.Step(frame(core.ActionRight))
	}
	if g.page != 3 {
		t.Errorf("page = %d, expected to stop at the last page", g.page)
	}
	for i := 0; i < 10; i++ {
		g.Step(frame(core.ActionDown))
	}
	if g.cursor != 7 {
		t.Errorf("cursor = %d, expected 7", g.cursor)
	}
}

func TestMenuPointerStartsLevel(t *testing.T) {
	g := newTestGame(t, core.NewMemoryKV(), "")
	r := menuCardRects(80, 24, 8)[0]

	in := core.NewInputFrame()
	in.AddPointer(core.PointerEvent{Kind: core.PointerPress, X: r.X + 2, Y: r.Y + 1})
	res := g.Step(in)
	if g.Screen() != ScreenLevel || g.level != 0 {
		t.Fatalf("screen %v level %d, expected level 0", g.Screen(), g.level)
	}
	if !hasCue(res.Sounds, core.SoundMusic, "summer3") {
		t.Error("the first page plays the summer3 track")
	}
	if found, target := g.Found(); found != 0 || target != 12 {
		t.Errorf("found %d/%d, expected 0/12", found, target)
	}
}

func TestClickCollectsNearestItem(t *testing.T) {
	g := newTestGame(t, core.NewMemoryKV(), "")
	withPack(g, testPack())
	g.startLevel(0)

	x, y := g.itemCell(g.pack.Levels[0].Items[0])
	g.clickAt(x+5, y)
	if g.collected[0] {
		t.Fatal("a click outside the hit radius should miss")
	}

	in := core.NewInputFrame()
	in.AddPointer(core.PointerEvent{Kind: core.PointerPress, X: x + 1, Y: y - 1})
	res := g.Step(in)
	if !g.collected[0] || g.found != 1 {
		t.Fatalf("item should be collected, found = %d", g.found)
	}
	if !hasCue(res.Sounds, core.SoundPop, "") {
		t.Error("collecting plays the pop sound")
	}

	// Clicking the same spot again does nothing
	g.Step(in)
	if g.found != 1 {
		t.Errorf("found = %d after a second click", g.found)
	}
}

func TestKeyboardCrosshairCollects(t *testing.T) {
	g := newTestGame(t, core.NewMemoryKV(), "")
	withPack(g, testPack())
	g.startLevel(0)

	x, y := g.itemCell(g.pack.Levels[0].Items[1])
	g.crossX, g.crossY = x-1, y
	g.Step(frame(core.ActionRight))
	g.Step(frame(core.ActionConfirm))
	if !g.collected[1] {
		t.Error("Enter should click under the crosshair")
	}
}

func TestWinUnlocksNextLevel(t *testing.T) {
	kv := core.NewMemoryKV()
	g := newTestGame(t, kv, "")
	withPack(g, testPack())
	g.startLevel(0)

	g.collect(0)
	if g.Screen() != ScreenLevel {
		t.Fatal("one of two bottles should not win")
	}
	g.collect(1)
	if g.Screen() != ScreenWon {
		t.Fatalf("screen = %v, expected won", g.Screen())
	}
	if g.Progress().MaxUnlockedLevel != 1 {
		t.Errorf("max unlocked = %d, expected 1", g.Progress().MaxUnlockedLevel)
	}
	stored, err := g.store.Load(4)
	if err != nil || stored.MaxUnlockedLevel != 1 {
		t.Errorf("stored progress = %+v, %v", stored, err)
	}

	res := g.Step(frame(core.ActionConfirm))
	if g.Screen() != ScreenLevel || g.level != 1 {
		t.Errorf("Enter should start the next level, screen %v level %d", g.Screen(), g.level)
	}
	if !hasCue(res.Sounds, core.SoundMusic, "") {
		t.Error("starting a level sets its music")
	}
}

func TestReplayDoesNotUnlock(t *testing.T) {
	g := newTestGame(t, core.NewMemoryKV(), "")
	withPack(g, testPack())
	g.progress.MaxUnlockedLevel = 2
	g.startLevel(0)
	g.collect(0)
	g.collect(1)
	if g.Progress().MaxUnlockedLevel != 2 {
		t.Errorf("max unlocked = %d, replaying an old level should not change it", g.Progress().MaxUnlockedLevel)
	}
}

func TestBottleGoalIgnoresStickies(t *testing.T) {
	g := newTestGame(t, core.NewMemoryKV(), "")
	withPack(g, testPack())
	g.progress.MaxUnlockedLevel = 1
	g.startLevel(1)

	g.collect(1)
	if g.found != 0 {
		t.Errorf("found = %d, a sticky does not count toward a bottle goal", g.found)
	}
	p := g.Progress()
	if p.StickyNotes != 1 || p.StickiesFoundInLevels[1] != 1 {
		t.Errorf("progress = %+v, expected one sticky in level 1", p)
	}
	if g.sticky == nil {
		t.Fatal("sticky note panel should open")
	}

	// Input closes the panel before anything else
	g.Step(frame(core.ActionBack))
	if g.sticky != nil || g.Screen() != ScreenLevel {
		t.Error("Esc should close the note and stay in the level")
	}
}

func TestStickyLevelPlaysCutscene(t *testing.T) {
	kv := core.NewMemoryKV()
	g := newTestGame(t, kv, "")
	withPack(g, testPack())
	g.progress.MaxUnlockedLevel = 2
	g.startLevel(2)

	g.collect(0)
	if g.sticky == nil || g.notice == "" {
		t.Fatal("a sticky should open its note and notify")
	}
	if stored, _ := g.store.Load(4); stored.StickyNotes != 1 {
		t.Errorf("sticky count should be saved immediately, got %d", stored.StickyNotes)
	}
	g.Step(frame(core.ActionConfirm))

	g.collect(1)
	if !g.won || g.Screen() != ScreenLevel {
		t.Fatalf("won %v screen %v, expected a pending cutscene", g.won, g.Screen())
	}
	if got := g.Progress().StickiesFoundInLevels[2]; got != 2 {
		t.Errorf("stickies in level = %d, expected 2", got)
	}

	var sounds []core.SoundCue
	for i := 0; i < 40 && g.Screen() != ScreenCutscene; i++ {
		sounds = append(sounds, g.Step(core.NewInputFrame()).Sounds...)
	}
	if g.Screen() != ScreenCutscene {
		t.Fatal("cutscene should start after the win delay")
	}
	if !hasCue(sounds, core.SoundMusicStop, "") || !hasCue(sounds, core.SoundClip, "a") {
		t.Error("cutscene stops the music and plays the first clip")
	}
	if !strings.Contains(g.notice, "0-2") {
		t.Errorf("notice = %q, expected the shortened range", g.notice)
	}

	// Auto frames advance on their own
	idle(g, 241)
	if g.cut == nil || g.cut.index != 1 {
		t.Fatalf("auto cutscene should be on frame 1")
	}

	g.Step(frame(core.ActionConfirm))
	g.Step(frame(core.ActionConfirm))
	if g.Screen() != ScreenMenu {
		t.Fatalf("screen = %v, expected the menu after the last frame", g.Screen())
	}
	if g.Progress().MaxUnlockedLevel != 3 {
		t.Errorf("max unlocked = %d, expected 3", g.Progress().MaxUnlockedLevel)
	}
	if stored, _ := g.store.Load(4); stored.MaxUnlockedLevel != 3 {
		t.Errorf("stored max unlocked = %d, expected 3", stored.MaxUnlockedLevel)
	}
}

func TestCutsceneUnlockNeverLowers(t *testing.T) {
	g := newTestGame(t, core.NewMemoryKV(), "")
	withPack(g, testPack())
	g.progress.MaxUnlockedLevel = 3

	g.startCutscene(levels.Trigger{Level: 2, Start: 1, End: 1, Unlock: intPtr(1), Page: intPtr(0)})
	g.Step(frame(core.ActionBack))
	if g.Screen() != ScreenMenu || g.Progress().MaxUnlockedLevel != 3 {
		t.Errorf("screen %v max %d", g.Screen(), g.Progress().MaxUnlockedLevel)
	}
}

func TestCutsceneStartPastEnd(t *testing.T) {
	g := newTestGame(t, core.NewMemoryKV(), "")
	withPack(g, testPack())
	g.startCutscene(levels.Trigger{Level: 2, Start: 9, End: 12})
	if g.Screen() != ScreenMenu || !strings.Contains(g.notice, "9") {
		t.Errorf("screen %v notice %q, expected the menu with a notice", g.Screen(), g.notice)
	}
}

func TestManualCutsceneWaits(t *testing.T) {
	g := newTestGame(t, core.NewMemoryKV(), "")
	withPack(g, testPack())
	g.startCutscene(levels.Trigger{Level: 2, Start: 0, End: 2})
	idle(g, 600)
	if g.cut == nil || g.cut.index != 0 {
		t.Error("manual cutscene should wait for input")
	}
	in := core.NewInputFrame()
	in.AddPointer(core.PointerEvent{Kind: core.PointerPress, X: 3, Y: 3})
	g.Step(in)
	if g.cut.index != 1 {
		t.Error("a click should advance the cutscene")
	}
}

func TestNotificationExpires(t *testing.T) {
	g := newTestGame(t, core.NewMemoryKV(), "")
	g.notify("hello")
	idle(g, 170)
	if g.notice != "hello" {
		t.Error("notice should still be visible")
	}
	idle(g, 20)
	if g.notice != "" {
		t.Errorf("notice = %q, expected it to expire after 3s", g.notice)
	}
}

func TestResetProgressNeedsTwoPresses(t *testing.T) {
	kv := core.NewMemoryKV()
	kv.Set("hunt.progress", `{"maxUnlockedLevel":5,"stickyNotes":3,"stickiesFoundInLevels":[]}`)
	g := newTestGame(t, kv, "")
	if g.Progress().MaxUnlockedLevel != 5 {
		t.Fatalf("progress not loaded: %+v", g.Progress())
	}

	g.Step(frame(core.ActionReset))
	if g.Progress().MaxUnlockedLevel != 5 || g.notice == "" {
		t.Fatal("first press should only ask for confirmation")
	}
	g.Step(frame(core.ActionReset))
	if g.Progress().MaxUnlockedLevel != 0 || g.Progress().StickyNotes != 0 {
		t.Errorf("progress = %+v, expected zero", g.Progress())
	}
	if _, ok, _ := kv.Get("hunt.progress"); ok {
		t.Error("stored progress should be deleted")
	}
}

func TestResetDisarmedByOtherInput(t *testing.T) {
	kv := core.NewMemoryKV()
	kv.Set("hunt.progress", `{"maxUnlockedLevel":5}`)
	g := newTestGame(t, kv, "")

	g.Step(frame(core.ActionReset))
	g.Step(frame(core.ActionRight))
	g.Step(frame(core.ActionReset))
	if g.Progress().MaxUnlockedLevel != 5 {
		t.Error("a reset interrupted by other input should not erase progress")
	}
}

func TestLoadMigratesAndNamespaces(t *testing.T) {
	kv := core.NewMemoryKV()
	kv.Set("hunt.progress/alice", `{"maxUnlockedLevel":2,"easterEggs":4,"eggsFoundInLevels":[1]}`)

	g := newTestGame(t, kv, "alice")
	p := g.Progress()
	if p.MaxUnlockedLevel != 2 || p.StickyNotes != 4 || p.StickiesFoundInLevels[0] != 1 {
		t.Errorf("migrated progress = %+v", p)
	}
	if len(p.StickiesFoundInLevels) != 32 {
		t.Errorf("per-level counts sized %d, expected 32", len(p.StickiesFoundInLevels))
	}
	if g.State().Score != 4 {
		t.Errorf("score = %d, expected the sticky count", g.State().Score)
	}

	bob := newTestGame(t, kv, "bob")
	if bob.Progress().MaxUnlockedLevel != 0 {
		t.Error("profiles should not share progress")
	}
}

func TestCorruptProgressResets(t *testing.T) {
	kv := core.NewMemoryKV()
	kv.Set("hunt.progress", "garbage")
	g := newTestGame(t, kv, "")
	if g.Progress().MaxUnlockedLevel != 0 || g.notice == "" {
		t.Errorf("progress %+v notice %q", g.Progress(), g.notice)
	}
}

func TestLevelsDirOverride(t *testing.T) {
	dir := t.TempDir()
	pack := "name: mini\nlevels:\n  - name: Only\n    background: only\n    items:\n      - {type: sicknote, x: 10, y: 10}\n"
	if err := os.WriteFile(filepath.Join(dir, "mini.yaml"), []byte(pack), 0o644); err != nil {
		t.Fatal(err)
	}
	SetLevelsDir(dir)
	t.Cleanup(func() { SetLevelsDir("") })

	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Store: core.NewMemoryKV()})
	if len(g.pack.Levels) != 1 || g.pack.Levels[0].Name != "Only" {
		t.Fatalf("levels = %+v", g.pack.Levels)
	}
	g.startLevel(0)
	if goal, target := g.goal, g.target; goal != levels.ItemSticky || target != 1 {
		t.Errorf("goal %v/%d, expected one sticky", goal, target)
	}
}

func TestAssetsAreOptional(t *testing.T) {
	SetLevelsDir("")
	refs := New().Assets()
	names := make(map[string]bool)
	for _, r := range refs {
		if r.Required {
			t.Errorf("asset %q should be optional", r.Name)
		}
		names[r.Name] = true
	}
	for _, want := range []string{"scenes/romana", "cutscenes/frame00"} {
		if !names[want] {
			t.Errorf("missing asset ref %q", want)
		}
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, core.NewMemoryKV(), "")
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "BUCHAREST") || !strings.Contains(out, "Piața Romană") {
		t.Errorf("menu should show the pack and level names:\n%s", out)
	}

	withPack(g, testPack())
	g.startLevel(0)
	g.collect(0)
	g.Render(screen)
	x, y := g.itemCell(g.pack.Levels[0].Items[0])
	if got := screen.Get(x, y); got != CollectedChar {
		t.Errorf("collected item drawn as %q", got)
	}
	x, y = g.itemCell(g.pack.Levels[0].Items[1])
	if got := screen.Get(x, y); got != BottleChar {
		t.Errorf("item without scene art drawn as %q", got)
	}
	if !strings.Contains(screen.Row(0), "Bottles 1/2") {
		t.Errorf("HUD = %q", screen.Row(0))
	}

	g.Resize(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too small") {
		t.Error("tiny screens should show a warning")
	}
}

func TestWrap(t *testing.T) {
	lines := wrap("the quick brown fox jumps over the lazy dog", 10)
	if len(lines) < 4 {
		t.Fatalf("lines = %q", lines)
	}
	for _, l := range lines {
		if len([]rune(l)) > 10 {
			t.Errorf("line %q longer than 10", l)
		}
	}
}
