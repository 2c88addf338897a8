// Package registry maps game IDs to factories. Game packages register in
// init(), so the platform only needs a blank import to offer a game.
package registry

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/vovakirdan/siege-arcade/internal/core"
)

// Game is what the platform drives. Implementations are pure simulation:
// they never touch the terminal, the clock or the network.
type Game interface {
	ID() string    // stable key for the CLI and score storage
	Title() string // display name

	// Reset starts a fresh round for the given screen size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances exactly one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a pre-cleared buffer.
	Render(dst *core.Screen)

	State() core.GameState
}

// AssetUser is implemented by games that draw named sprites. Listed assets
// are preloaded before the first Reset.
type AssetUser interface {
	Assets() []core.AssetRef
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory builds a fresh game instance.
type Factory func() Game

type entry struct {
	factory Factory
	title   string
	assets  []core.AssetRef
}

var (
	mu      sync.RWMutex
	entries = map[string]entry{}
)

// Register adds a factory under id. Registering an id twice panics.
func Register(id string, f Factory) {
	sample := f()
	e := entry{factory: f, title: sample.Title()}
	if u, ok := sample.(AssetUser); ok {
		e.assets = slices.Clone(u.Assets())
	}

	mu.Lock()
	defer mu.Unlock()
	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = e
}

func sortedIDs() []string {
	return slices.Sorted(maps.Keys(entries))
}

// List returns every registered game ordered by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]GameInfo, 0, len(entries))
	for _, id := range sortedIDs() {
		out = append(out, GameInfo{ID: id, Title: entries[id].title})
	}
	return out
}

// Create returns a new instance of the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := entries[id]
	return ok
}

// AllAssets merges the assets of every game by name. A merged asset is
// required when any game requires it.
func AllAssets() []core.AssetRef {
	mu.RLock()
	defer mu.RUnlock()

	var refs []core.AssetRef
	pos := map[string]int{}
	for _, id := range sortedIDs() {
		for _, ref := range entries[id].assets {
			if i, ok := pos[ref.Name]; ok {
				refs[i].Required = refs[i].Required || ref.Required
				continue
			}
			pos[ref.Name] = len(refs)
			refs = append(refs, ref)
		}
	}
	return refs
}
