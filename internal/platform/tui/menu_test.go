package tui

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/siege-arcade/internal/core"
	"github.com/vovakirdan/siege-arcade/internal/multiplayer"
)

func TestNextPlanet(t *testing.T) {
	tests := []struct {
		name string
		from PlanetState
		roll float64
		want PlanetState
	}{
		{"hidden stays hidden", PlanetHidden, 0.5, PlanetHidden},
		{"hidden at the threshold", PlanetHidden, planetChance, PlanetHidden},
		{"lucky roll shows it", PlanetHidden, 0.01, PlanetRight},
		{"right moves left", PlanetRight, 0.9, PlanetLeft},
		{"left hides", PlanetLeft, 0.01, PlanetHidden},
	}
	for _, tc := range tests {
		if got := nextPlanet(tc.from, tc.roll); got != tc.want {
			t.Errorf("%s: nextPlanet(%d, %v) = %d, expected %d", tc.name, tc.from, tc.roll, got, tc.want)
		}
	}
}

func TestAdvancePlanetPersists(t *testing.T) {
	kv := core.NewMemoryKV()
	rng := rand.New(rand.NewSource(1))

	kv.Set("k", "1")
	got, err := advancePlanet(kv, "k", rng)
	if err != nil || got != PlanetLeft {
		t.Fatalf("advancePlanet = %d, %v; expected left", got, err)
	}
	if v, _, _ := kv.Get("k"); v != "2" {
		t.Errorf("stored %q, expected 2", v)
	}

	got, _ = advancePlanet(kv, "k", rng)
	if got != PlanetHidden {
		t.Errorf("after left expected hidden, got %d", got)
	}

	kv.Set("k", "garbage")
	if got, err := advancePlanet(kv, "k", rand.New(rand.NewSource(1))); err != nil || got == PlanetLeft {
		t.Errorf("unreadable state should count as hidden, got %d, %v", got, err)
	}
}

func TestProfileKey(t *testing.T) {
	if got := profileKey("menu.planet", ""); got != "menu.planet" {
		t.Errorf("profileKey = %q", got)
	}
	if got := profileKey("menu.planet", "bob"); got != "menu.planet/bob" {
		t.Errorf("profileKey = %q", got)
	}
}

func TestStarBrightnessRange(t *testing.T) {
	sf := NewStarfield(rand.New(rand.NewSource(3)), 50)
	for _, s := range sf.stars {
		for ms := 0; ms < 5000; ms += 97 {
			a := s.brightness(time.Duration(ms) * time.Millisecond)
			if a < 0.05-1e-9 || a > 1+1e-9 {
				t.Fatalf("brightness %v out of range", a)
			}
		}
	}
}

func TestDrawPlanetCorners(t *testing.T) {
	scr := core.NewScreen(40, 12)
	drawPlanet(scr, PlanetHidden, nil)
	if strings.TrimSpace(scr.String()) != "" {
		t.Fatal("hidden planet should draw nothing")
	}

	drawPlanet(scr, PlanetRight, nil)
	right := scr.Row(scr.Height() - 3)
	if strings.TrimSpace(right[:20]) != "" || strings.TrimSpace(right[20:]) == "" {
		t.Errorf("right planet row = %q", right)
	}

	scr.Clear()
	drawPlanet(scr, PlanetLeft, nil)
	left := scr.Row(scr.Height() - 3)
	if strings.TrimSpace(left[:20]) == "" || strings.TrimSpace(left[20:]) != "" {
		t.Errorf("left planet row = %q", left)
	}
}

func TestMenuModelNavigation(t *testing.T) {
	kv := core.NewMemoryKV()
	m := NewMenuModel(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1, Store: kv}, Options{})
	if len(m.items) == 0 {
		t.Fatal("menu should list registered games")
	}
	if _, ok, _ := kv.Get(planetKey); !ok {
		t.Error("menu launch should store the planet state")
	}

	next, _ := m.Update(keyMsg("enter"))
	m = next.(MenuModel)
	if m.Selected() == nil || m.Selected().GameID != m.items[0].GameID {
		t.Fatalf("selected = %+v", m.Selected())
	}
	if !strings.Contains(m.View(), "S I E G E") {
		t.Error("menu view should show the title")
	}
}

func TestMenuModelPointerSelects(t *testing.T) {
	m := NewMenuModel(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1}, Options{})
	next, _ := m.Update(tea.MouseMsg{X: 40, Y: menuListTop, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = next.(MenuModel)
	if m.Selected() == nil {
		t.Error("clicking a game row should select it")
	}

	m = NewMenuModel(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1}, Options{})
	next, _ = m.Update(tea.MouseMsg{X: 40, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if next.(MenuModel).Selected() != nil {
		t.Error("clicking the title should not select anything")
	}
}

func TestMenuModelScoreboardAndQuit(t *testing.T) {
	m := NewMenuModel(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1}, Options{})
	next, _ := m.Update(keyMsg("tab"))
	if !next.(MenuModel).WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}
	next, _ = m.Update(keyMsg("q"))
	if !next.(MenuModel).IsQuitting() {
		t.Error("q should quit")
	}
}

func TestDuelMenuFlow(t *testing.T) {
	m := NewDuelMenuModel(80, 24)
	step := func(key string) {
		next, _ := m.Update(keyMsg(key))
		m = next.(DuelMenuModel)
	}

	step("enter")
	if m.Selected() != nil || !m.inDifficulty {
		t.Fatal("vs CPU should ask for the difficulty")
	}
	step("down")
	step("down")
	step("enter")
	sel := m.Selected()
	if sel == nil || sel.Mode != multiplayer.MatchModeVsCPU || sel.Difficulty != difficultyOptions[2].preset {
		t.Fatalf("selection = %+v", sel)
	}

	m = NewDuelMenuModel(80, 24)
	step("down")
	step("enter")
	sel = m.Selected()
	if sel == nil || sel.Mode != multiplayer.MatchModeHotSeat {
		t.Fatalf("hot-seat selection = %+v", sel)
	}

	m = NewDuelMenuModel(80, 24)
	step("esc")
	if !m.WantsBack() || m.Selected() != nil {
		t.Error("esc should go back without a selection")
	}
}

func TestSessionModelStartsDuel(t *testing.T) {
	reg := multiplayer.NewSessionRegistry()
	id := multiplayer.NewSessionID("alice")
	reg.Register(multiplayer.SessionInfo{ID: id, Username: "alice"})

	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1, Profile: "alice"}
	var m tea.Model = NewSessionModel(cfg, Options{}, id, reg)
	send := func(msg tea.Msg) {
		m, _ = m.Update(msg)
	}
	pickDuel := func() {
		sm := m.(SessionModel)
		for i, item := range sm.menu.items {
			if item.GameID == "artillery" {
				sm.menu.cursor = i
			}
		}
		m = sm
		send(keyMsg("enter"))
	}

	pickDuel()
	if m.(SessionModel).view != viewDuelSetup {
		t.Fatalf("view = %d, expected duel setup", m.(SessionModel).view)
	}
	send(keyMsg("esc"))
	if m.(SessionModel).view != viewMenu {
		t.Fatalf("view = %d, expected menu after backing out", m.(SessionModel).view)
	}

	pickDuel()
	send(keyMsg("down"))
	send(keyMsg("enter"))
	if m.(SessionModel).view != viewGame {
		t.Fatalf("view = %d, expected game", m.(SessionModel).view)
	}
	if info, _ := reg.Get(id); info.Playing != "artillery" {
		t.Errorf("registry playing = %q", info.Playing)
	}
	send(TickMsg(time.Now()))
	if m.View() == "" {
		t.Error("game view should render")
	}

	send(keyMsg("q"))
	if !m.(SessionModel).quitting || m.View() != "" {
		t.Error("q in a game should end the session")
	}
}

func TestSessionModelScoreboard(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 100, ScreenH: 30, Seed: 1}
	var m tea.Model = NewSessionModel(cfg, Options{Store: openStore(t)}, "s", nil)
	m, _ = m.Update(keyMsg("tab"))
	if m.(SessionModel).view != viewScoreboard {
		t.Fatal("tab should open the scoreboard")
	}
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Error("scoreboard should render")
	}
	m, _ = m.Update(keyMsg("esc"))
	if m.(SessionModel).view != viewMenu {
		t.Error("esc should return to the menu")
	}
}
