package levels

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// packFile is the on-disk structure shared by YAML and TOML files.
type packFile struct {
	Name      string        `yaml:"name" toml:"name"`
	Notes     notesFile     `yaml:"notes" toml:"notes"`
	Levels    []levelFile   `yaml:"levels" toml:"levels"`
	Cutscenes cutscenesFile `yaml:"cutscenes" toml:"cutscenes"`
}

type notesFile struct {
	Sender    string `yaml:"sender" toml:"sender"`
	Recipient string `yaml:"recipient" toml:"recipient"`
}

type levelFile struct {
	Name       string     `yaml:"name" toml:"name"`
	Background string     `yaml:"background" toml:"background"`
	Secret     bool       `yaml:"secret,omitempty" toml:"secret"`
	Items      []itemFile `yaml:"items" toml:"items"`
}

type itemFile struct {
	Type  string  `yaml:"type" toml:"type"`
	X     float64 `yaml:"x" toml:"x"`
	Y     float64 `yaml:"y" toml:"y"`
	Title string  `yaml:"title,omitempty" toml:"title"`
	Note  string  `yaml:"note,omitempty" toml:"note"`
}

type cutscenesFile struct {
	Frames   []frameFile   `yaml:"frames" toml:"frames"`
	Triggers []triggerFile `yaml:"triggers" toml:"triggers"`
}

type frameFile struct {
	Image string `yaml:"image" toml:"image"`
	Clip  string `yaml:"clip" toml:"clip"`
}

type triggerFile struct {
	Level  int  `yaml:"level" toml:"level"`
	Start  int  `yaml:"start" toml:"start"`
	End    int  `yaml:"end" toml:"end"`
	Unlock *int `yaml:"unlock,omitempty" toml:"unlock"`
	Page   *int `yaml:"page,omitempty" toml:"page"`
	Auto   bool `yaml:"auto" toml:"auto"`
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".toml"}
}

// Parse decodes a pack file. ext selects the format (".yaml", ".yml" or
// ".toml").
func Parse(data []byte, ext string) (*Pack, error) {
	var pf packFile
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &pf); err != nil {
			return nil, fmt.Errorf("yaml unmarshal: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &pf); err != nil {
			return nil, fmt.Errorf("toml unmarshal: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported extension: %s", ext)
	}
	return pf.toPack()
}

func (pf packFile) toPack() (*Pack, error) {
	p := &Pack{
		Name:  pf.Name,
		Notes: Notes{Sender: pf.Notes.Sender, Recipient: pf.Notes.Recipient},
	}

	for i, lf := range pf.Levels {
		lvl := Level{
			Index:      i,
			Name:       strings.TrimSpace(lf.Name),
			Background: lf.Background,
			Secret:     lf.Secret,
		}
		for j, itf := range lf.Items {
			typ, err := ParseItemType(itf.Type)
			if err != nil {
				return nil, fmt.Errorf("level %q item %d: %w", lf.Name, j, err)
			}
			lvl.Items = append(lvl.Items, Item{
				Type:  typ,
				X:     itf.X,
				Y:     itf.Y,
				Title: itf.Title,
				Note:  itf.Note,
			})
		}
		p.Levels = append(p.Levels, lvl)
	}

	for _, ff := range pf.Cutscenes.Frames {
		p.Frames = append(p.Frames, Frame{Image: ff.Image, Clip: ff.Clip})
	}
	for _, tf := range pf.Cutscenes.Triggers {
		p.Triggers = append(p.Triggers, Trigger{
			Level:  tf.Level,
			Start:  tf.Start,
			End:    tf.End,
			Unlock: tf.Unlock,
			Page:   tf.Page,
			Auto:   tf.Auto,
		})
	}

	return p, nil
}
