package hunt

import (
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/siege-arcade/internal/core"
)

// Progress is the persisted player state of the hidden-object game.
type Progress struct {
	MaxUnlockedLevel      int   `json:"maxUnlockedLevel"`
	StickyNotes           int   `json:"stickyNotes"`
	StickiesFoundInLevels []int `json:"stickiesFoundInLevels"`
}

// storedProgress accepts both the current and the legacy egg-based schema.
// Array slots may be null in old blobs.
type storedProgress struct {
	MaxUnlockedLevel      int    `json:"maxUnlockedLevel"`
	StickyNotes           *int   `json:"stickyNotes"`
	StickiesFoundInLevels []*int `json:"stickiesFoundInLevels"`
	EasterEggs            *int   `json:"easterEggs"`
	EggsFoundInLevels     []*int `json:"eggsFoundInLevels"`
}

// ProgressKey returns the store key for a profile. The empty profile uses
// the base key unchanged.
func ProgressKey(base, profile string) string {
	if profile == "" {
		return base
	}
	return base + "/" + profile
}

// ParseProgress decodes a stored blob, migrating the legacy schema.
func ParseProgress(data string) (Progress, error) {
	var raw storedProgress
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return Progress{}, fmt.Errorf("hunt: cannot parse progress: %w", err)
	}

	p := Progress{MaxUnlockedLevel: max(0, raw.MaxUnlockedLevel)}
	if raw.StickyNotes != nil && *raw.StickyNotes != 0 {
		p.StickyNotes = *raw.StickyNotes
	} else if raw.EasterEggs != nil {
		p.StickyNotes = *raw.EasterEggs
	}

	slots := raw.StickiesFoundInLevels
	if len(slots) == 0 {
		slots = raw.EggsFoundInLevels
	}
	p.StickiesFoundInLevels = make([]int, len(slots))
	for i, v := range slots {
		if v != nil {
			p.StickiesFoundInLevels[i] = *v
		}
	}
	return p, nil
}

// fit grows the per-level sticky counts to cover n levels.
func (p *Progress) fit(n int) {
	for len(p.StickiesFoundInLevels) < n {
		p.StickiesFoundInLevels = append(p.StickiesFoundInLevels, 0)
	}
}

// ProgressStore reads and writes Progress in a key/value store.
type ProgressStore struct {
	kv  core.KV
	key string
}

// NewProgressStore creates a store. A nil kv keeps progress in memory.
func NewProgressStore(kv core.KV, key string) *ProgressStore {
	if kv == nil {
		kv = core.NewMemoryKV()
	}
	return &ProgressStore{kv: kv, key: key}
}

// Key returns the key the progress is stored under.
func (s *ProgressStore) Key() string {
	return s.key
}

// Load returns the stored progress sized for levels entries. A missing key
// is the zero progress. An unreadable blob also yields the zero progress,
// together with the parse error for logging.
func (s *ProgressStore) Load(levels int) (Progress, error) {
	var p Progress
	data, ok, err := s.kv.Get(s.key)
	if err != nil {
		p.fit(levels)
		return p, fmt.Errorf("hunt: cannot read progress: %w", err)
	}
	if ok {
		parsed, perr := ParseProgress(data)
		if perr == nil {
			p = parsed
		}
		err = perr
	}
	p.fit(levels)
	return p, err
}

// Save writes the progress.
func (s *ProgressStore) Save(p Progress) error {
	if p.StickiesFoundInLevels == nil {
		p.StickiesFoundInLevels = []int{}
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("hunt: cannot encode progress: %w", err)
	}
	if err := s.kv.Set(s.key, string(data)); err != nil {
		return fmt.Errorf("hunt: cannot save progress: %w", err)
	}
	return nil
}

// Reset deletes the stored progress.
func (s *ProgressStore) Reset() error {
	if err := s.kv.Delete(s.key); err != nil {
		return fmt.Errorf("hunt: cannot reset progress: %w", err)
	}
	return nil
}
