package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/siege-arcade/internal/config"
	"github.com/vovakirdan/siege-arcade/internal/core"
	"github.com/vovakirdan/siege-arcade/internal/multiplayer"
)

// DuelSelection holds the user's choices for an artillery duel.
type DuelSelection struct {
	Mode       multiplayer.MatchMode
	Difficulty config.DifficultyPreset // Empty keeps the config file's setting
}

type difficultyOption struct {
	label  string
	preset config.DifficultyPreset
}

var difficultyOptions = []difficultyOption{
	{"Default", ""},
	{"Easy", config.PresetEasy},
	{"Normal", config.PresetNormal},
	{"Hard", config.PresetHard},
	{"Fixed", config.PresetFixed},
}

var modeOptions = []multiplayer.MatchMode{
	multiplayer.MatchModeVsCPU,
	multiplayer.MatchModeHotSeat,
}

// DuelMenuModel lets users choose the opponent and the computer's skill.
type DuelMenuModel struct {
	cursor       int
	diffCursor   int
	inDifficulty bool
	width        int
	height       int
	keyMapper    *KeyMapper
	selection    DuelSelection
	choosing     bool
	quitting     bool
	back         bool
}

// NewDuelMenuModel creates a new duel setup model.
func NewDuelMenuModel(width, height int) DuelMenuModel {
	return DuelMenuModel{
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m DuelMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DuelMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inDifficulty {
			return m.handleDifficultyKey(action)
		}
		return m.handleModeKey(action)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m DuelMenuModel) handleModeKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(modeOptions)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.selection.Mode = modeOptions[m.cursor]
		if m.selection.Mode == multiplayer.MatchModeHotSeat {
			// No computer to tune
			m.choosing = false
			return m, tea.Quit
		}
		m.inDifficulty = true
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

func (m DuelMenuModel) handleDifficultyKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.diffCursor > 0 {
			m.diffCursor--
		}
	case MenuActionDown:
		if m.diffCursor < len(difficultyOptions)-1 {
			m.diffCursor++
		}
	case MenuActionSelect:
		m.selection.Difficulty = difficultyOptions[m.diffCursor].preset
		m.choosing = false
		return m, tea.Quit
	case MenuActionBack:
		m.inDifficulty = false
	}
	return m, nil
}

// View renders the current step.
func (m DuelMenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText("S I E G E   D U E L", m.width))
	b.WriteString("\n\n")

	if m.inDifficulty {
		b.WriteString(centerText("Computer skill:", m.width))
		b.WriteString("\n\n")
		for i, opt := range difficultyOptions {
			b.WriteString(centerText(cursorLine(i == m.diffCursor, opt.label), m.width))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(centerText("Select opponent:", m.width))
		b.WriteString("\n\n")
		for i, mode := range modeOptions {
			b.WriteString(centerText(cursorLine(i == m.cursor, mode.String()), m.width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))
	return b.String()
}

func cursorLine(active bool, label string) string {
	if active {
		return fmt.Sprintf("> %s", label)
	}
	return fmt.Sprintf("  %s", label)
}

// Selected returns the selection, or nil if still choosing.
func (m DuelMenuModel) Selected() *DuelSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m DuelMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m DuelMenuModel) WantsBack() bool {
	return m.back
}

// RunDuelSelector runs the duel setup and returns the selection, or nil when
// the user backed out.
func RunDuelSelector(cfg core.RuntimeConfig) (*DuelSelection, error) {
	p := tea.NewProgram(NewDuelMenuModel(cfg.ScreenW, cfg.ScreenH), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}
	m, ok := finalModel.(DuelMenuModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}
	return m.Selected(), nil
}
