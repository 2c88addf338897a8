package tui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/siege-arcade/internal/core"
	"github.com/vovakirdan/siege-arcade/internal/registry"
)

// menuTickRate drives the starfield animation.
const menuTickRate = 15

// menuListTop is the first row of the game list.
const menuListTop = 6

// MenuItem is one game in the picker.
type MenuItem struct{ GameID, Title string }

// MenuModel is the game picker drawn over an animated starfield.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	screen         *core.Screen
	config         core.RuntimeConfig
	painter        *Painter
	keyMapper      *KeyMapper
	stars          *Starfield
	planet         PlanetState
	elapsed        time.Duration
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates a new menu model. Each call counts as one menu
// launch for the planet easter egg.
func NewMenuModel(cfg core.RuntimeConfig, opts Options) MenuModel {
	opts = opts.withDefaults()
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		items = append(items, MenuItem{GameID: g.ID, Title: g.Title})
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	var kv core.KV = core.NewMemoryKV()
	if cfg.Store != nil {
		kv = cfg.Store
	}
	planet, err := advancePlanet(kv, profileKey(planetKey, cfg.Profile), rng)
	if err != nil {
		opts.Logger.Warn("could not persist menu state", "error", err)
	}

	return MenuModel{
		items:     items,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:    cfg,
		painter:   opts.Painter,
		keyMapper: NewKeyMapper(),
		stars:     NewStarfield(rng, starCount),
		planet:    planet,
	}
}

// profileKey namespaces a key/value key by player profile.
func profileKey(base, profile string) string {
	if profile == "" {
		return base
	}
	return base + "/" + profile
}

// menuTickMsg advances the menu animation.
type menuTickMsg time.Time

func menuTickCmd() tea.Cmd {
	return tea.Tick(time.Second/menuTickRate, func(t time.Time) tea.Msg {
		return menuTickMsg(t)
	})
}

func (m MenuModel) Init() tea.Cmd {
	return menuTickCmd()
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		ev, ok := m.keyMapper.MapMouse(msg)
		if !ok {
			return m, nil
		}
		idx := ev.Y - menuListTop
		if idx < 0 || idx >= len(m.items) {
			return m, nil
		}
		m.cursor = idx
		if ev.Kind == core.PointerPress {
			return m.choose()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case menuTickMsg:
		if m.selected != nil || m.quitting || m.openScoreboard {
			return m, nil
		}
		m.elapsed += time.Second / menuTickRate
		return m, menuTickCmd()
	}

	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		return m.choose()

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

func (m MenuModel) choose() (tea.Model, tea.Cmd) {
	if len(m.items) == 0 {
		return m, nil
	}
	selected := m.items[m.cursor]
	m.selected = &selected
	return m, tea.Quit
}

func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	dst := m.screen
	dst.Clear()
	m.stars.Draw(dst, m.elapsed)
	drawPlanet(dst, m.planet, m.config.Assets)

	dst.DrawTextCenteredColor(1, "S I E G E   A R C A D E", core.ColorBrightYellow)
	dst.DrawTextCenteredColor(3, "Select a game", core.ColorGray)

	for i, item := range m.items {
		line := fmt.Sprintf("  %s  ", item.Title)
		color := core.ColorWhite
		if i == m.cursor {
			line = fmt.Sprintf("> %s <", item.Title)
			color = core.ColorBrightYellow
		}
		dst.DrawTextCenteredColor(menuListTop+i, line, color)
	}

	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	dst.DrawTextCenteredColor(menuListTop+len(m.items)+2, controls, core.ColorGray)

	return m.painter.Render(dst)
}

// Selected is the chosen game, nil until Enter or a click.
func (m MenuModel) Selected() *MenuItem        { return m.selected }
func (m MenuModel) IsQuitting() bool           { return m.quitting }
func (m MenuModel) WantsScoreboard() bool      { return m.openScoreboard }
func (m MenuModel) Planet() PlanetState        { return m.planet }
func (m MenuModel) Config() core.RuntimeConfig { return m.config }

// centerText pads text on the left to center it in width cells.
func centerText(text string, width int) string {
	pad := (width - ansi.StringWidth(text)) / 2
	if pad <= 0 {
		return text
	}
	return strings.Repeat(" ", pad) + text
}

// MenuResult is what the local menu loop acts on. Config carries any
// terminal resize that happened while the menu was open.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the menu in the local terminal until the player decides.
func RunMenu(cfg core.RuntimeConfig, opts Options) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(cfg, opts), programOptions()...).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	res := MenuResult{Config: m.config, WantsScoreboard: m.openScoreboard}
	if m.selected != nil && !m.openScoreboard {
		res.GameID = m.selected.GameID
	}
	res.Quit = !res.WantsScoreboard && res.GameID == ""
	return res, nil
}
