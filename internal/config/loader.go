package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadArtillery loads artillery duel configuration.
// Search order: customPath -> ~/.arcade/configs/artillery.yaml -> ./configs/artillery.yaml -> embedded default
func LoadArtillery(customPath string) (ArtilleryConfig, error) {
	return load("artillery.yaml", customPath, defaultArtilleryYAML, DefaultArtilleryConfig)
}

// LoadHunt loads hidden-object game configuration.
// Search order: customPath -> ~/.arcade/configs/hunt.yaml -> ./configs/hunt.yaml -> embedded default
func LoadHunt(customPath string) (HuntConfig, error) {
	return load("hunt.yaml", customPath, defaultHuntYAML, DefaultHuntConfig)
}

// load implements the shared search order. Files found on the search path
// are decoded over the embedded defaults, so a user file only needs the keys
// it changes. An explicit customPath that cannot be read or parsed is an error;
// broken files on the implicit search path are skipped.
func load[T any](filename, customPath string, embedded []byte, fallback func() T) (T, error) {
	base := fallback()
	if err := yaml.Unmarshal(embedded, &base); err != nil {
		base = fallback() // Fallback to hardcoded if embed fails
	}

	// Try custom path first
	if customPath != "" {
		cfg := base
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{filepath.Join("configs", filename)}
	// User config directory wins over the local one
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		candidates = append([]string{userCfgPath}, candidates...)
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg := base
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	return base, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyArtilleryPreset modifies the config based on a difficulty preset.
func ApplyArtilleryPreset(cfg *ArtilleryConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Easy opponents also think longer; hard ones never under-charge as much
	switch preset {
	case DifficultyEasy:
		cfg.Opponent.ThinkMinMS += 500
	case DifficultyHard:
		cfg.Opponent.MinCharge = 0.55
	}
}
