package levels

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed pack/bucharest.yaml
var builtinFS embed.FS

// Builtin returns the embedded Bucharest pack.
func Builtin() (*Pack, error) {
	data, err := builtinFS.ReadFile("pack/bucharest.yaml")
	if err != nil {
		return nil, fmt.Errorf("levels: cannot read builtin pack: %w", err)
	}
	p, err := Parse(data, ".yaml")
	if err != nil {
		return nil, fmt.Errorf("levels: builtin pack: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Loader handles loading level packs from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// Load recursively scans Root and merges every level file it finds, in
// lexical path order. Levels are appended; the last file that defines
// cutscenes or notes wins. The first file that fails to parse aborts the load.
func (l *Loader) Load() (*Pack, error) {
	var paths []string
	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
	}
	sort.Strings(paths)

	merged := &Pack{Name: filepath.Base(l.Root)}
	for _, path := range paths {
		p, err := l.LoadFile(path)
		if err != nil {
			return nil, err
		}
		merged.merge(p)
	}

	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("levels: %s: %w", l.Root, err)
	}
	return merged, nil
}

// LoadFile loads a single pack file.
func (l *Loader) LoadFile(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: reading file %s: %w", path, err)
	}
	p, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("levels: parsing file %s: %w", path, err)
	}
	return p, nil
}

func (p *Pack) merge(other *Pack) {
	if other.Name != "" {
		p.Name = other.Name
	}
	if other.Notes.Sender != "" || other.Notes.Recipient != "" {
		p.Notes = other.Notes
	}
	for _, lvl := range other.Levels {
		lvl.Index = len(p.Levels)
		p.Levels = append(p.Levels, lvl)
	}
	if len(other.Frames) > 0 {
		p.Frames = other.Frames
	}
	if len(other.Triggers) > 0 {
		p.Triggers = other.Triggers
	}
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
