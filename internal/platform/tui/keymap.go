package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/siege-arcade/internal/core"
)

// Command is a platform-level request that never reaches the game.
type Command int

const (
	CommandNone Command = iota
	CommandQuit
	CommandMute
	CommandScreenshot
)

// GameKeyMap defines the in-game key bindings.
type GameKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Fire       key.Binding
	Confirm    key.Binding
	Back       key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Reset      key.Binding
	Mute       key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Fire, k.Confirm, k.Back, k.Pause, k.Mute, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Fire, k.Confirm, k.Back, k.Restart},
		{k.Pause, k.Reset, k.Mute, k.Screenshot, k.Quit},
	}
}

// DefaultGameKeyMap returns the default in-game bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "w"), key.WithHelp("↑/w", "aim up")),
		Down:       key.NewBinding(key.WithKeys("down", "s"), key.WithHelp("↓/s", "aim down")),
		Left:       key.NewBinding(key.WithKeys("left", "a"), key.WithHelp("←/a", "left")),
		Right:      key.NewBinding(key.WithKeys("right", "d"), key.WithHelp("→/d", "right")),
		Fire:       key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "charge/fire")),
		Confirm:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Back:       key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Pause:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Restart:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Reset:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "reset progress")),
		Mute:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mute")),
		Screenshot: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "screenshot")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// KeyMapper translates Bubble Tea input messages to game actions.
type KeyMapper struct {
	keys    GameKeyMap
	actions []binding
}

type binding struct {
	key    *key.Binding
	action core.Action
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	km := &KeyMapper{keys: DefaultGameKeyMap()}
	km.actions = []binding{
		{&km.keys.Up, core.ActionUp},
		{&km.keys.Down, core.ActionDown},
		{&km.keys.Left, core.ActionLeft},
		{&km.keys.Right, core.ActionRight},
		{&km.keys.Fire, core.ActionFire},
		{&km.keys.Confirm, core.ActionConfirm},
		{&km.keys.Back, core.ActionBack},
		{&km.keys.Pause, core.ActionPause},
		{&km.keys.Restart, core.ActionRestart},
		{&km.keys.Reset, core.ActionReset},
	}
	return km
}

// Keys returns the bindings, e.g. for a help view.
func (km *KeyMapper) Keys() GameKeyMap {
	return km.keys
}

// MapKey translates a key message to a game action or a platform command.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (core.Action, Command) {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return core.ActionQuit, CommandQuit
	case key.Matches(msg, km.keys.Mute):
		return core.ActionNone, CommandMute
	case key.Matches(msg, km.keys.Screenshot):
		return core.ActionNone, CommandScreenshot
	}
	for _, b := range km.actions {
		if key.Matches(msg, *b.key) {
			return b.action, CommandNone
		}
	}
	return core.ActionNone, CommandNone
}

// MapKeyToFrame updates an input frame based on a key message and returns
// any platform command the key carried.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) Command {
	action, cmd := km.MapKey(msg)
	if cmd == CommandNone && action != core.ActionNone {
		frame.Set(action)
	}
	return cmd
}

// MapMouse converts a mouse message to a pointer event in screen cells.
// Only the primary button and plain motion are reported.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg) (core.PointerEvent, bool) {
	ev := core.PointerEvent{X: msg.X, Y: msg.Y}
	switch msg.Action {
	case tea.MouseActionMotion:
		ev.Kind = core.PointerMove
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return ev, false
		}
		ev.Kind = core.PointerPress
	case tea.MouseActionRelease:
		if msg.Button != tea.MouseButtonLeft && msg.Button != tea.MouseButtonNone {
			return ev, false
		}
		ev.Kind = core.PointerRelease
	default:
		return ev, false
	}
	return ev, true
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
