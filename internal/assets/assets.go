// Package assets preloads the text-art sprites used by the games.
//
// Sprites are looked up by name ("characters/sputnik", "powerup",
// "scenes/beach"). An override directory is searched first, then the
// builtin set embedded in the binary. Missing assets resolve to nil so
// games can fall back to plain shapes.
package assets

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/siege-arcade/internal/core"
)

//go:embed builtin
var builtinFS embed.FS

// Ext is the file extension of sprite files.
const Ext = ".txt"

// ErrNotFound is returned when an asset exists in neither location.
var ErrNotFound = errors.New("assets: not found")

// Library holds preloaded sprites. Safe for concurrent reads.
type Library struct {
	mu      sync.RWMutex
	dir     string
	sprites map[string]*core.Sprite
	missing []core.AssetRef
}

var _ core.AssetSource = (*Library)(nil)

// NewLibrary returns an empty library reading overrides from dir.
// An empty dir uses only the builtin set.
func NewLibrary(dir string) *Library {
	return &Library{
		dir:     dir,
		sprites: make(map[string]*core.Sprite),
	}
}

// Dir returns the override directory, or "" when none is configured.
func (l *Library) Dir() string {
	return l.dir
}

// Sprite returns a preloaded sprite or nil.
func (l *Library) Sprite(name string) *core.Sprite {
	if l == nil {
		return nil
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sprites[name]
}

// Missing lists the references that failed to load, sorted by name.
func (l *Library) Missing() []core.AssetRef {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := append([]core.AssetRef(nil), l.missing...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Preload loads every reference concurrently and waits for all of them.
// Failures are logged (error level for required assets, warn otherwise) and
// recorded in Missing; they never abort the load. A cancelled context stops
// loads that have not started yet.
func (l *Library) Preload(ctx context.Context, refs []core.AssetRef, logger *log.Logger) {
	var wg sync.WaitGroup
	for _, ref := range refs {
		wg.Add(1)
		go func(ref core.AssetRef) {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				l.markMissing(ref)
				return
			}

			sp, err := l.load(ref.Name)
			if err != nil {
				l.markMissing(ref)
				if logger == nil {
					return
				}
				if ref.Required {
					logger.Error("critical asset failed to load", "name", ref.Name, "error", err)
				} else {
					logger.Warn("optional asset missing", "name", ref.Name, "error", err)
				}
				return
			}

			l.mu.Lock()
			l.sprites[ref.Name] = sp
			l.mu.Unlock()
		}(ref)
	}
	wg.Wait()

	if logger != nil {
		logger.Debug("assets preloaded", "requested", len(refs), "missing", len(l.Missing()))
	}
}

func (l *Library) markMissing(ref core.AssetRef) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.missing = append(l.missing, ref)
}

// load reads one sprite, override directory first.
func (l *Library) load(name string) (*core.Sprite, error) {
	if !validName(name) {
		return nil, fmt.Errorf("assets: invalid name %q", name)
	}

	if l.dir != "" {
		data, err := os.ReadFile(filepath.Join(l.dir, filepath.FromSlash(name)+Ext))
		if err == nil {
			return core.ParseSprite(name, data)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("assets: cannot read %s: %w", name, err)
		}
	}

	data, err := fs.ReadFile(builtinFS, path.Join("builtin", name+Ext))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("assets: cannot read builtin %s: %w", name, err)
	}
	return core.ParseSprite(name, data)
}

// validName rejects names that would escape the asset roots.
func validName(name string) bool {
	if name == "" || strings.HasPrefix(name, "/") {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == "" || part == "." || part == ".." {
			return false
		}
	}
	return true
}

// Builtin lists the names of all embedded sprites.
func Builtin() ([]string, error) {
	var names []string
	err := fs.WalkDir(builtinFS, "builtin", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, Ext) {
			return nil
		}
		names = append(names, strings.TrimSuffix(strings.TrimPrefix(p, "builtin/"), Ext))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("assets: cannot list builtin sprites: %w", err)
	}
	sort.Strings(names)
	return names, nil
}
