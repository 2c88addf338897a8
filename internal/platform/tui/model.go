package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/siege-arcade/internal/audio"
	"github.com/vovakirdan/siege-arcade/internal/core"
	"github.com/vovakirdan/siege-arcade/internal/games/artillery"
	"github.com/vovakirdan/siege-arcade/internal/logging"
	"github.com/vovakirdan/siege-arcade/internal/multiplayer"
	"github.com/vovakirdan/siege-arcade/internal/registry"
	"github.com/vovakirdan/siege-arcade/internal/storage"
)

// Resizer is implemented by games that can adapt to a new window size
// without losing their state.
type Resizer interface {
	Resize(w, h int)
}

// OutcomeTaker is implemented by games that report finished duels.
type OutcomeTaker interface {
	TakeOutcome() (artillery.Outcome, bool)
}

// Options carries the platform services a game session uses.
// Every field is optional.
type Options struct {
	Store         *storage.Store
	Audio         audio.Player
	Logger        *log.Logger
	Painter       *Painter
	ScreenshotDir string // Defaults to ~/.arcade/screenshots
}

func (o Options) withDefaults() Options {
	if o.Audio == nil {
		o.Audio = &audio.Nop{}
	}
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
	if o.Painter == nil {
		o.Painter = defaultPainter
	}
	return o
}

// GameModel is the Bubble Tea model for running one game.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	keys       *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	standalone bool // Own program; leaving the game quits it
	scoreSaved bool // Whether score has been saved for current game over
}

// NewGameModel creates a model for the given game.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts Options) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	opts = opts.withDefaults()
	if cfg.Store == nil && opts.Store != nil {
		cfg.Store = opts.Store
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		config:     cfg,
		keys:       NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		if ev, ok := m.keys.MapMouse(msg); ok {
			m.inputFrame.AddPointer(ev)
		}
		return m, nil
	case tea.BlurMsg:
		m.inputFrame.AddPointer(core.PointerEvent{Kind: core.PointerLeave, X: -1, Y: -1})
		return m, nil
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKeyToFrame(msg, &m.inputFrame) {
	case CommandQuit:
		m.quitting = true
		return m, tea.Quit
	case CommandMute:
		m.opts.Audio.SetMuted(!m.opts.Audio.Muted())
		return m, nil
	case CommandScreenshot:
		m.saveScreenshot()
		return m, nil
	}

	// Esc while paused leaves the game
	if m.gameState.Paused && m.keys.MapKeyToMenuAction(msg) == MenuActionBack {
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
	}
	return m, nil
}

// handleResize keeps the game running at the new size.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes one simulation step.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	wasOver := m.gameState.GameOver
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	for _, cue := range result.Sounds {
		m.opts.Audio.Play(cue)
	}

	if !m.gameState.GameOver {
		m.scoreSaved = false
	} else if !wasOver && !m.scoreSaved && m.gameState.Score > 0 {
		m.saveScore()
	}
	if taker, ok := m.game.(OutcomeTaker); ok {
		if o, ok := taker.TakeOutcome(); ok {
			m.saveDuel(o)
		}
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

func (m *GameModel) saveScore() {
	m.scoreSaved = true
	if m.opts.Store == nil {
		return
	}
	if _, err := m.opts.Store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
		m.opts.Logger.Warn("could not save score", "game", m.game.ID(), "error", err)
	}
}

func (m *GameModel) saveDuel(o artillery.Outcome) {
	if m.opts.Store == nil {
		return
	}
	d := duelResult(multiplayer.NewMatchID(), o)
	if _, err := m.opts.Store.SaveDuel(d); err != nil {
		m.opts.Logger.Warn("could not save duel", "match", d.MatchID, "error", err)
		return
	}
	m.opts.Logger.Debug("duel saved", "match", d.MatchID, "winner", d.Winner, "reason", d.EndReason)
}

// duelResult converts a game outcome into a database record.
func duelResult(id multiplayer.MatchID, o artillery.Outcome) storage.DuelResult {
	return storage.DuelResult{
		MatchID:    string(id),
		Mode:       o.Mode.Key(),
		Player:     o.Player,
		Opponent:   o.Opponent,
		Winner:     o.Winner,
		PlayerHP:   o.PlayerHP,
		OpponentHP: o.OpponentHP,
		Shots:      o.Shots,
		EndReason:  string(o.Reason),
		Duration:   int(o.Duration / time.Second),
	}
}

// saveScreenshot writes the current screen as plain text.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.opts.Logger.Warn("no home directory for screenshots", "error", err)
			return
		}
		dir = filepath.Join(home, ".arcade", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return m.opts.Painter.Render(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// programOptions are shared by local and SSH programs.
func programOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	}
}

// Run starts the Bubble Tea program for a single game.
// It returns true when the player left for the menu rather than quitting.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (bool, error) {
	model := NewGameModel(game, cfg, opts)
	model.standalone = true
	p := tea.NewProgram(model, programOptions()...)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(GameModel)
	return ok && m.BackToMenu() && !m.IsQuitting(), nil
}
