// Package tui runs games and menus in a terminal through Bubble Tea, either
// locally or per SSH session via Wish.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg drives one fixed simulation step.
type TickMsg time.Time

// tickInterval turns a tick rate into a period. Non-positive rates fall back
// to 60 Hz.
func tickInterval(rate int) time.Duration {
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

func tickCmd(rate int) tea.Cmd {
	return tea.Tick(tickInterval(rate), func(t time.Time) tea.Msg { return TickMsg(t) })
}
