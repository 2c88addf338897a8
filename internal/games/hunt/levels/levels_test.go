package levels

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinPack(t *testing.T) {
	p, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin() failed: %v", err)
	}

	if len(p.Levels) != 32 {
		t.Fatalf("expected 32 levels, got %d", len(p.Levels))
	}
	if p.Pages(8) != 4 {
		t.Errorf("Pages(8) = %d, expected 4", p.Pages(8))
	}
	if !p.Levels[7].Secret {
		t.Error("level 7 should be the secret level")
	}
	if len(p.Frames) != 23 {
		t.Errorf("expected 23 cutscene frames, got %d", len(p.Frames))
	}

	for i, lvl := range p.Levels {
		if lvl.Index != i {
			t.Errorf("level %d has index %d", i, lvl.Index)
		}
		typ, n := lvl.Goal()
		want := ItemBottle
		if i >= 24 {
			want = ItemSticky
		}
		if typ != want {
			t.Errorf("level %d (%s) goal type = %s, expected %s", i, lvl.Name, typ, want)
		}
		if n == 0 {
			t.Errorf("level %d (%s) has no items", i, lvl.Name)
		}
	}

	// Misspelled sticky notes are normalized.
	if _, stickies := p.Levels[26].Counts(); stickies != 12 {
		t.Errorf("level 26 sticky count = %d, expected 12", stickies)
	}
}

func TestBuiltinTriggers(t *testing.T) {
	p, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin() failed: %v", err)
	}

	tests := []struct {
		level      int
		start, end int
		unlock     int // -1 for none
		page       int // -1 for none
		auto       bool
	}{
		{7, 0, 3, 8, 1, true},
		{15, 5, 8, 16, 2, true},
		{23, 9, 13, 24, 3, false},
		{31, 14, 22, -1, -1, true},
	}
	for _, tc := range tests {
		tr, ok := p.TriggerFor(tc.level)
		if !ok {
			t.Errorf("no trigger for level %d", tc.level)
			continue
		}
		if tr.Start != tc.start || tr.End != tc.end || tr.Auto != tc.auto {
			t.Errorf("level %d trigger = %+v", tc.level, tr)
		}
		if got := derefOr(tr.Unlock, -1); got != tc.unlock {
			t.Errorf("level %d unlock = %d, expected %d", tc.level, got, tc.unlock)
		}
		if got := derefOr(tr.Page, -1); got != tc.page {
			t.Errorf("level %d page = %d, expected %d", tc.level, got, tc.page)
		}
	}

	if _, ok := p.TriggerFor(3); ok {
		t.Error("level 3 should have no cutscene")
	}
}

func derefOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func TestParseItemType(t *testing.T) {
	tests := []struct {
		in      string
		want    ItemType
		wantErr bool
	}{
		{"bottle", ItemBottle, false},
		{"sticky", ItemSticky, false},
		{"sticknote", ItemSticky, false},
		{"sicknote", ItemSticky, false},
		{"sitcknote", ItemSticky, false},
		{"egg", "", true},
	}
	for _, tc := range tests {
		got, err := ParseItemType(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseItemType(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Errorf("ParseItemType(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestLevelGoal(t *testing.T) {
	tests := []struct {
		name     string
		items    []Item
		wantType ItemType
		wantN    int
	}{
		{"bottles win over stickies", []Item{{Type: ItemBottle}, {Type: ItemSticky}, {Type: ItemBottle}}, ItemBottle, 2},
		{"stickies only", []Item{{Type: ItemSticky}, {Type: ItemSticky}}, ItemSticky, 2},
		{"empty", nil, ItemBottle, 0},
	}
	for _, tc := range tests {
		typ, n := Level{Items: tc.items}.Goal()
		if typ != tc.wantType || n != tc.wantN {
			t.Errorf("%s: Goal() = %s/%d, expected %s/%d", tc.name, typ, n, tc.wantType, tc.wantN)
		}
	}
}

func TestLoaderMergesYAMLAndTOML(t *testing.T) {
	dir := t.TempDir()

	yamlData := []byte(`name: custom
levels:
  - name: First
    background: first
    items:
      - {type: bottle, x: 10, y: 20}
`)
	tomlData := []byte(`
[notes]
sender = "Ana"
recipient = "Bo"

[[levels]]
name = "Second"
background = "second"
items = [
  { type = "sticknote", x = 50.0, y = 50.0 },
  { type = "sticky", x = 60.0, y = 40.0, title = "Hi", note = "Custom" },
]

[cutscenes]
frames = [ { image = "cutscenes/a", clip = "a" } ]
triggers = [ { level = 1, start = 0, end = 0, unlock = 2, auto = true } ]
`)
	if err := os.WriteFile(filepath.Join(dir, "01-first.yaml"), yamlData, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "02-second.toml"), tomlData, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0o600); err != nil {
		t.Fatal(err)
	}

	p, err := NewLoader(dir).Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(p.Levels) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(p.Levels))
	}
	if p.Levels[0].Name != "First" || p.Levels[1].Name != "Second" {
		t.Errorf("levels out of order: %q, %q", p.Levels[0].Name, p.Levels[1].Name)
	}
	if p.Levels[1].Index != 1 {
		t.Errorf("merged level index = %d, expected 1", p.Levels[1].Index)
	}
	if p.Levels[1].Items[1].Note != "Custom" {
		t.Errorf("custom note lost: %+v", p.Levels[1].Items[1])
	}
	if p.Notes.Sender != "Ana" {
		t.Errorf("notes = %+v", p.Notes)
	}
	tr, ok := p.TriggerFor(1)
	if !ok || derefOr(tr.Unlock, -1) != 2 || tr.Page != nil {
		t.Errorf("trigger = %+v, %v", tr, ok)
	}
}

func TestLoaderErrors(t *testing.T) {
	empty := t.TempDir()
	if _, err := NewLoader(empty).Load(); !errors.Is(err, ErrNoLevels) {
		t.Errorf("empty dir error = %v, expected ErrNoLevels", err)
	}

	bad := t.TempDir()
	data := []byte("levels:\n  - name: X\n    items:\n      - {type: egg, x: 1, y: 1}\n")
	if err := os.WriteFile(filepath.Join(bad, "bad.yml"), data, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewLoader(bad).Load(); err == nil {
		t.Error("unknown item type should fail to load")
	}

	outOfRange := &Pack{Levels: []Level{{Name: "X", Items: []Item{{Type: ItemBottle, X: 120}}}}}
	if err := outOfRange.Validate(); err == nil {
		t.Error("coordinates above 100 should fail validation")
	}
}
