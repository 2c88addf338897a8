package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestOpenCreatesNestedDirs(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "a", "b", "arcade.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("database file missing: %v", err)
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "arcade.db")
	for round := 0; round < 2; round++ {
		store, err := Open(dbPath)
		if err != nil {
			t.Fatalf("round %d: Open() failed: %v", round, err)
		}
		v, err := store.SchemaVersion()
		if err != nil {
			t.Fatalf("round %d: SchemaVersion() failed: %v", round, err)
		}
		if v != len(migrations) {
			t.Errorf("round %d: schema version = %d, expected %d", round, v, len(migrations))
		}
		if _, err := store.SaveScore("artillery", 10*(round+1)); err != nil {
			t.Fatalf("round %d: SaveScore() failed: %v", round, err)
		}
		store.Close()
	}

	store := openAt(t, dbPath)
	scores, _ := store.TopScores("artillery", 0)
	if len(scores) != 2 {
		t.Errorf("reopening lost rows: %v", scores)
	}
}

func TestCloseNil(t *testing.T) {
	var s *Store
	if err := s.Close(); err != nil {
		t.Errorf("Close on nil store = %v", err)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandPath("~/.arcade/scores.db")
	if err != nil {
		t.Fatalf("ExpandPath() failed: %v", err)
	}
	if want := filepath.Join(home, ".arcade", "scores.db"); got != want {
		t.Errorf("ExpandPath() = %q, expected %q", got, want)
	}
	if got, _ := ExpandPath("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("absolute paths should pass through, got %q", got)
	}
}

func TestParseTimestamp(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	tests := []struct {
		name string
		in   any
		want time.Time
	}{
		{"time value", ts, ts},
		{"sqlite string", "2024-03-01 12:30:00", ts},
		{"rfc3339 string", "2024-03-01T12:30:00Z", ts},
		{"garbage", "yesterday", time.Time{}},
		{"nil", nil, time.Time{}},
	}
	for _, tc := range tests {
		if got := parseTimestamp(tc.in); !got.Equal(tc.want) {
			t.Errorf("%s: parseTimestamp() = %v, expected %v", tc.name, got, tc.want)
		}
	}
}

func openAt(t *testing.T, path string) *Store {
	t.Helper()
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}
