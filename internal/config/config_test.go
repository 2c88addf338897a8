package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := LoadArtillery(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("LoadArtillery() with a missing explicit path should fail")
	}
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	def := DefaultArtilleryConfig()
	embedded, err := load("does-not-exist.yaml", "", defaultArtilleryYAML, DefaultArtilleryConfig)
	if err != nil {
		t.Fatalf("load() failed: %v", err)
	}

	checks := []struct {
		name      string
		got, want float64
	}{
		{"gravity", embedded.Physics.Gravity, def.Physics.Gravity},
		{"bounce damping", embedded.Physics.BounceDamping, def.Physics.BounceDamping},
		{"character width", embedded.Character.Width, def.Character.Width},
		{"smoothing", embedded.Camera.Smoothing, def.Camera.Smoothing},
		{"power-up multiplier", embedded.PowerUp.Multiplier, def.PowerUp.Multiplier},
		{"fall speed", embedded.Towers.FallSpeed, def.Towers.FallSpeed},
		{"inaccuracy", embedded.Opponent.Inaccuracy, def.Opponent.Inaccuracy},
		{"edge padding", embedded.World.EdgePadding, def.World.EdgePadding},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-9 {
			t.Errorf("%s: embedded %v, hardcoded %v", c.name, c.got, c.want)
		}
	}
	if embedded.Charge.MaxMS != 1500 || embedded.Physics.Bounces != 2 {
		t.Errorf("charge/bounce constants drifted: %+v %+v", embedded.Charge, embedded.Physics)
	}
	if embedded.Towers.Multipliers["thunder"] != 2.0 {
		t.Errorf("thunder multiplier = %v, expected 2.0", embedded.Towers.Multipliers["thunder"])
	}
}

func TestLoadCustomPathOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artillery.yaml")
	data := []byte("features:\n  power_ups: false\n  box_towers: false\nphysics:\n  gravity: 0.3\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := LoadArtillery(path)
	if err != nil {
		t.Fatalf("LoadArtillery() failed: %v", err)
	}
	if cfg.Features.PowerUps || cfg.Features.BoxTowers {
		t.Errorf("features should be disabled, got %+v", cfg.Features)
	}
	if cfg.Physics.Gravity != 0.3 {
		t.Errorf("gravity = %v, expected 0.3", cfg.Physics.Gravity)
	}
	// Keys absent from the file keep their defaults
	if cfg.Physics.Bounces != 2 || cfg.Charge.MaxMS != 1500 {
		t.Errorf("unset keys should keep defaults, got bounces=%d max=%d", cfg.Physics.Bounces, cfg.Charge.MaxMS)
	}
}

func TestLoadCustomPathParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hunt.yaml")
	if err := os.WriteFile(path, []byte("page_size: [oops"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	if _, err := LoadHunt(path); err == nil {
		t.Error("LoadHunt() should fail on malformed YAML")
	}
}

func TestApplyArtilleryPreset(t *testing.T) {
	tests := []struct {
		preset     DifficultyPreset
		enabled    bool
		initial    float64
		thinkMinMS int
		minCharge  float64
	}{
		{DifficultyEasy, true, 0.0, 1500, 0.4},
		{DifficultyNormal, true, 0.3, 1000, 0.4},
		{DifficultyHard, true, 0.7, 1000, 0.55},
		{DifficultyFixed, false, 0.0, 1000, 0.4},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultArtilleryConfig()
			ApplyArtilleryPreset(&cfg, tc.preset)
			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Difficulty.InitialLevel != tc.initial {
				t.Errorf("InitialLevel = %v, expected %v", cfg.Difficulty.InitialLevel, tc.initial)
			}
			if cfg.Opponent.ThinkMinMS != tc.thinkMinMS {
				t.Errorf("ThinkMinMS = %d, expected %d", cfg.Opponent.ThinkMinMS, tc.thinkMinMS)
			}
			if cfg.Opponent.MinCharge != tc.minCharge {
				t.Errorf("MinCharge = %v, expected %v", cfg.Opponent.MinCharge, tc.minCharge)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Error("ParsePreset(hard) should return DifficultyHard")
	}
	if ParsePreset("impossible") != "" {
		t.Error("unknown presets should parse to empty")
	}
}

func TestDifficultyManagerScaling(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "turns", MaxAt: 10},
		Scaling:     ScalingConfig{AimReduction: 0.5, ThinkReduction: 0.5, ChargeBoost: 0.2},
	})

	if got := dm.Level(0, 0); got != 0 {
		t.Errorf("Level at start = %v, expected 0", got)
	}
	if got := dm.Level(5, 0); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Level halfway = %v, expected 0.5", got)
	}
	if got := dm.Level(100, 0); got != 1 {
		t.Errorf("Level past max = %v, expected 1", got)
	}

	if got := dm.Inaccuracy(1.0, 10, 0); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Inaccuracy at max = %v, expected 0.5", got)
	}
	if got := dm.ThinkTime(2*time.Second, 10, 0); got != time.Second {
		t.Errorf("ThinkTime at max = %v, expected 1s", got)
	}
	if got := dm.MinCharge(0.9, 1.0, 10, 0); got != 1.0 {
		t.Errorf("MinCharge should cap at max charge, got %v", got)
	}

	dm.SetEnabled(false)
	dm.SetInitialLevel(0.25)
	if got := dm.Level(10, 0); got != 0.25 {
		t.Errorf("disabled progression should stay at initial level, got %v", got)
	}
}
