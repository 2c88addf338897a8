package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/siege-arcade/internal/core"
	"github.com/vovakirdan/siege-arcade/internal/games/artillery"
	"github.com/vovakirdan/siege-arcade/internal/multiplayer"
	"github.com/vovakirdan/siege-arcade/internal/registry"
)

type sessionView int

const (
	viewMenu sessionView = iota
	viewDuelSetup
	viewGame
	viewScoreboard
)

// SessionModel is one SSH player's whole visit: menu, duel setup, game and
// scoreboard, switching between them without leaving the program.
type SessionModel struct {
	opts      Options
	config    core.RuntimeConfig
	sessionID multiplayer.SessionID
	registry  *multiplayer.SessionRegistry // may be nil

	view       sessionView
	menu       MenuModel
	duelMenu   DuelMenuModel
	scoreboard ScoreboardModel
	game       *GameModel
	quitting   bool
}

func NewSessionModel(cfg core.RuntimeConfig, opts Options, id multiplayer.SessionID, sessions *multiplayer.SessionRegistry) SessionModel {
	opts = opts.withDefaults()
	return SessionModel{
		opts:      opts,
		config:    cfg,
		sessionID: id,
		registry:  sessions,
		menu:      NewMenuModel(cfg, opts),
	}
}

func (m SessionModel) Init() tea.Cmd { return m.menu.Init() }

func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW, m.config.ScreenH = ws.Width, ws.Height
	}
	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewDuelSetup:
		return m.updateDuelSetup(msg)
	case viewScoreboard:
		return m.updateScoreboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	if m.menu.IsQuitting() {
		return m.quit()
	}
	if m.menu.WantsScoreboard() {
		m.scoreboard = NewScoreboardModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH)
		m.view = viewScoreboard
		return m, nil
	}
	sel := m.menu.Selected()
	if sel == nil {
		return m, cmd
	}
	if sel.GameID == "artillery" {
		m.duelMenu = NewDuelMenuModel(m.config.ScreenW, m.config.ScreenH)
		m.view = viewDuelSetup
		return m, nil
	}
	return m.startGame(sel.GameID, nil)
}

func (m SessionModel) updateDuelSetup(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, _ := m.duelMenu.Update(msg)
	m.duelMenu = next.(DuelMenuModel)
	switch {
	case m.duelMenu.IsQuitting():
		return m.quit()
	case m.duelMenu.WantsBack():
		return m.openMenu()
	case m.duelMenu.Selected() != nil:
		return m.startGame("artillery", m.duelMenu.Selected())
	}
	return m, nil
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	m.scoreboard = next.(ScoreboardModel)
	switch {
	case m.scoreboard.IsQuitting():
		return m.quit()
	case m.scoreboard.IsGoingBack():
		return m.openMenu()
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	gm := next.(GameModel)
	m.game = &gm
	switch {
	case gm.IsQuitting():
		return m.quit()
	case gm.BackToMenu():
		return m.openMenu()
	}
	return m, cmd
}

// startGame creates a game private to this session. Duels without a
// selection default to a fight against the computer.
func (m SessionModel) startGame(gameID string, duel *DuelSelection) (tea.Model, tea.Cmd) {
	game, err := registry.Create(gameID)
	if err != nil {
		m.opts.Logger.Error("cannot create game", "game", gameID, "error", err)
		return m.openMenu()
	}
	if a, ok := game.(*artillery.Game); ok {
		sel := DuelSelection{Mode: multiplayer.MatchModeVsCPU}
		if duel != nil {
			sel = *duel
		}
		a.Configure(sel.Mode, sel.Difficulty)
	}

	m.config.Seed = time.Now().UnixNano()
	gm := NewGameModel(game, m.config, m.opts)
	m.game = &gm
	m.view = viewGame
	m.registry.SetPlaying(m.sessionID, gameID)
	m.opts.Logger.Info("game started", "game", gameID, "session", m.sessionID)
	return m, gm.Init()
}

func (m SessionModel) openMenu() (tea.Model, tea.Cmd) {
	m.view = viewMenu
	m.game = nil
	m.menu = NewMenuModel(m.config, m.opts)
	m.registry.SetPlaying(m.sessionID, "")
	return m, m.menu.Init()
}

func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.view {
	case viewGame:
		return m.game.View()
	case viewDuelSetup:
		return m.duelMenu.View()
	case viewScoreboard:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}
