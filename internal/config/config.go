// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

// ArtilleryConfig contains all configuration for the artillery duel.
// One config drives every variant of the game; Features toggles the
// optional mechanics.
type ArtilleryConfig struct {
	World      ArtilleryWorld     `yaml:"world"`
	Physics    ArtilleryPhysics   `yaml:"physics"`
	Charge     ArtilleryCharge    `yaml:"charge"`
	Character  ArtilleryCharacter `yaml:"character"`
	Camera     ArtilleryCamera    `yaml:"camera"`
	PowerUp    ArtilleryPowerUp   `yaml:"power_up"`
	Towers     ArtilleryTowers    `yaml:"towers"`
	Opponent   ArtilleryOpponent  `yaml:"opponent"`
	Features   ArtilleryFeatures  `yaml:"features"`
	Difficulty DifficultyConfig   `yaml:"difficulty"`
}

// ArtilleryWorld defines the logical playfield in world pixels.
type ArtilleryWorld struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundOffset float64 `yaml:"ground_offset"` // Ground line sits this far above the bottom
	EdgePadding  float64 `yaml:"edge_padding"`  // Character inset from the viewport edges; negative overhangs
}

// ArtilleryPhysics defines projectile integration parameters.
type ArtilleryPhysics struct {
	Gravity        float64 `yaml:"gravity"`
	Bounces        int     `yaml:"bounces"`
	BounceDamping  float64 `yaml:"bounce_damping"`  // Vertical velocity kept on bounce
	BounceFriction float64 `yaml:"bounce_friction"` // Horizontal velocity kept on bounce
	RollFriction   float64 `yaml:"roll_friction"`   // Horizontal velocity kept per rolling frame
	SettleVY       float64 `yaml:"settle_vy"`
	SettleVX       float64 `yaml:"settle_vx"`
	RollStopVX     float64 `yaml:"roll_stop_vx"`
	Radius         float64 `yaml:"radius"`
}

// ArtilleryCharge maps hold duration to shot speed and damage.
type ArtilleryCharge struct {
	MaxMS      int     `yaml:"max_ms"`
	BaseSpeed  float64 `yaml:"base_speed"`
	AddedSpeed float64 `yaml:"added_speed"`
	MinDamage  int     `yaml:"min_damage"`
	MaxDamage  int     `yaml:"max_damage"`
	AimStep    float64 `yaml:"aim_step"` // Radians per keyboard aim step
}

// ArtilleryCharacter defines combatant size and hit feedback.
type ArtilleryCharacter struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	HP           int     `yaml:"hp"`
	HitMS        int     `yaml:"hit_ms"`
	BounceMS     int     `yaml:"bounce_ms"`
	BounceOffset float64 `yaml:"bounce_offset"`
}

// ArtilleryCamera defines camera follow smoothing.
type ArtilleryCamera struct {
	Smoothing float64 `yaml:"smoothing"`
}

// ArtilleryPowerUp defines the mid-field power-up.
type ArtilleryPowerUp struct {
	Size       float64 `yaml:"size"`
	Multiplier float64 `yaml:"multiplier"`
	BannerMS   int     `yaml:"banner_ms"`
}

// ArtilleryTowers defines the destructible box stacks.
type ArtilleryTowers struct {
	BoxSize          float64            `yaml:"box_size"`
	BoxesPerStack    int                `yaml:"boxes_per_stack"`
	StackPositions   []float64          `yaml:"stack_positions"` // Fractions of the distance between characters
	FallSpeed        float64            `yaml:"fall_speed"`
	SupportTolerance float64            `yaml:"support_tolerance"`
	PowerThreshold   float64            `yaml:"power_threshold"` // Minimum charge ratio for a box hit to grant a bonus
	Multipliers      map[string]float64 `yaml:"multipliers"`     // Box type -> next-shot damage multiplier
}

// ArtilleryOpponent defines the computer opponent's timing and aim.
type ArtilleryOpponent struct {
	ThinkMinMS    int     `yaml:"think_min_ms"`
	ThinkSpreadMS int     `yaml:"think_spread_ms"`
	TurnDelayMS   int     `yaml:"turn_delay_ms"`
	Inaccuracy    float64 `yaml:"inaccuracy"` // Total width of the aim jitter window in radians
	MinCharge     float64 `yaml:"min_charge"`
	MaxCharge     float64 `yaml:"max_charge"`
}

// ArtilleryFeatures toggles optional mechanics.
type ArtilleryFeatures struct {
	PowerUps  bool `yaml:"power_ups"`
	BoxTowers bool `yaml:"box_towers"`
}

// HuntConfig contains configuration for the hidden-object game.
type HuntConfig struct {
	LevelsDir      string `yaml:"levels_dir"` // Optional directory overriding the built-in level pack
	PageSize       int    `yaml:"page_size"`
	SecretLevel    int    `yaml:"secret_level"`
	HitRadius      int    `yaml:"hit_radius"` // Click tolerance in cells
	NotificationMS int    `yaml:"notification_ms"`
	WinDelayMS     int    `yaml:"win_delay_ms"`
	FrameMS        int    `yaml:"frame_ms"` // Auto-advance delay for cutscene frames
	ProgressKey    string `yaml:"progress_key"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "turns", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Turns/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	AimReduction   float64 `yaml:"aim_reduction"`   // Fraction of aim jitter removed at max difficulty
	ThinkReduction float64 `yaml:"think_reduction"` // Fraction of think time removed at max difficulty
	ChargeBoost    float64 `yaml:"charge_boost"`    // Raises the minimum charge at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
