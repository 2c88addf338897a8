package multiplayer

import (
	"slices"
	"sync"
	"time"
)

// SessionInfo describes a connected player.
type SessionInfo struct {
	ID          SessionID
	Username    string
	ConnectedAt time.Time
	Playing     string // game ID, empty while in menus
}

// SessionRegistry tracks the players connected to an SSH server. It is safe
// for concurrent use. A nil registry accepts updates and reports nothing.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[SessionID]SessionInfo
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: map[SessionID]SessionInfo{}}
}

// Register adds or replaces a session. A zero ConnectedAt is set to now.
func (r *SessionRegistry) Register(info SessionInfo) {
	if r == nil {
		return
	}
	if info.ConnectedAt.IsZero() {
		info.ConnectedAt = time.Now()
	}
	r.mu.Lock()
	r.sessions[info.ID] = info
	r.mu.Unlock()
}

func (r *SessionRegistry) Unregister(id SessionID) {
	if r == nil {
		return
	}
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// SetPlaying records which game a session is in. Unknown IDs are ignored.
func (r *SessionRegistry) SetPlaying(id SessionID, gameID string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		s.Playing = gameID
		r.sessions[id] = s
	}
}

func (r *SessionRegistry) Get(id SessionID) (SessionInfo, bool) {
	if r == nil {
		return SessionInfo{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// List returns every session, oldest connection first.
func (r *SessionRegistry) List() []SessionInfo {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	out := make([]SessionInfo, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	r.mu.RUnlock()
	slices.SortFunc(out, func(a, b SessionInfo) int { return a.ConnectedAt.Compare(b.ConnectedAt) })
	return out
}

func (r *SessionRegistry) Count() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
