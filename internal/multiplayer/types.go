// Package multiplayer provides the identifiers and match bookkeeping shared by
// the local hot-seat mode, the computer opponent and SSH sessions.
package multiplayer

import (
	"fmt"

	"github.com/segmentio/ksuid"
)

// PlayerID identifies a side of a duel.
// Player1 is always the left-hand, first-to-act side.
type PlayerID int

const (
	Player1 PlayerID = iota + 1
	Player2
)

// String returns a short label for the side.
func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "P1"
	case Player2:
		return "P2"
	default:
		return "P?"
	}
}

// Other returns the opposing side.
func (p PlayerID) Other() PlayerID {
	if p == Player1 {
		return Player2
	}
	return Player1
}

// SessionID uniquely identifies a player's session (e.g., SSH connection).
type SessionID string

// NewSessionID returns a sortable, collision-free session identifier.
func NewSessionID(username string) SessionID {
	if username == "" {
		username = "anon"
	}
	return SessionID(fmt.Sprintf("%s-%s", username, ksuid.New().String()))
}

// MatchID uniquely identifies a game match.
type MatchID string

// NewMatchID returns a new time-ordered match identifier.
func NewMatchID() MatchID {
	return MatchID(ksuid.New().String())
}

// MatchMode defines who controls the second side of a duel.
type MatchMode int

const (
	// MatchModeVsCPU pits the player against the computer opponent.
	MatchModeVsCPU MatchMode = iota

	// MatchModeHotSeat lets two people share one keyboard and mouse.
	MatchModeHotSeat
)

// String returns a human-readable name for the match mode.
func (m MatchMode) String() string {
	switch m {
	case MatchModeVsCPU:
		return "vs CPU"
	case MatchModeHotSeat:
		return "Hot Seat"
	default:
		return "Unknown"
	}
}

// Key returns the stable identifier stored in the database.
func (m MatchMode) Key() string {
	switch m {
	case MatchModeHotSeat:
		return "hotseat"
	default:
		return "cpu"
	}
}

// ParseMatchMode converts a CLI/database key into a MatchMode.
func ParseMatchMode(s string) (MatchMode, error) {
	switch s {
	case "", "cpu", "vs-cpu":
		return MatchModeVsCPU, nil
	case "hotseat", "hot-seat", "pvp":
		return MatchModeHotSeat, nil
	default:
		return MatchModeVsCPU, fmt.Errorf("multiplayer: unknown match mode %q", s)
	}
}

// EndReason describes why a match finished.
type EndReason string

const (
	EndCompleted EndReason = "completed" // One side reached zero HP
	EndAbandoned EndReason = "abandoned" // The player left before the end
)
