package config

import (
	_ "embed"
	"math"
)

//go:embed defaults/artillery.yaml
var defaultArtilleryYAML []byte

//go:embed defaults/hunt.yaml
var defaultHuntYAML []byte

// DefaultArtilleryConfig returns the default artillery configuration.
// It mirrors defaults/artillery.yaml and is used when that fails to parse.
func DefaultArtilleryConfig() ArtilleryConfig {
	return ArtilleryConfig{
		World: ArtilleryWorld{
			Width:        1280,
			Height:       720,
			GroundOffset: 10,
			EdgePadding:  -75,
		},
		Physics: ArtilleryPhysics{
			Gravity:        0.15,
			Bounces:        2,
			BounceDamping:  0.6,
			BounceFriction: 0.8,
			RollFriction:   0.5,
			SettleVY:       1,
			SettleVX:       0.5,
			RollStopVX:     0.1,
			Radius:         12,
		},
		Charge: ArtilleryCharge{
			MaxMS:      1500,
			BaseSpeed:  6,
			AddedSpeed: 18,
			MinDamage:  5,
			MaxDamage:  15,
			AimStep:    0.05,
		},
		Character: ArtilleryCharacter{
			Width:        400 / 2.3,
			Height:       400 / 2.3,
			HP:           100,
			HitMS:        500,
			BounceMS:     300,
			BounceOffset: 5,
		},
		Camera: ArtilleryCamera{
			Smoothing: 0.08,
		},
		PowerUp: ArtilleryPowerUp{
			Size:       50,
			Multiplier: 2.69,
			BannerMS:   3000,
		},
		Towers: ArtilleryTowers{
			BoxSize:          60,
			BoxesPerStack:    4,
			StackPositions:   []float64{0.4, 0.6},
			FallSpeed:        6,
			SupportTolerance: 1,
			PowerThreshold:   0.9,
			Multipliers: map[string]float64{
				"flame":   1.5,
				"frost":   1.75,
				"thunder": 2.0,
			},
		},
		Opponent: ArtilleryOpponent{
			ThinkMinMS:    1000,
			ThinkSpreadMS: 1000,
			TurnDelayMS:   500,
			Inaccuracy:    math.Pi / 10,
			MinCharge:     0.4,
			MaxCharge:     1.0,
		},
		Features: ArtilleryFeatures{
			PowerUps:  true,
			BoxTowers: true,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "turns",
				MaxAt: 12,
			},
			Scaling: ScalingConfig{
				AimReduction:   0.6,
				ThinkReduction: 0.4,
				ChargeBoost:    0.2,
			},
		},
	}
}

// DefaultHuntConfig returns the default hidden-object configuration.
func DefaultHuntConfig() HuntConfig {
	return HuntConfig{
		PageSize:       8,
		SecretLevel:    7,
		HitRadius:      1,
		NotificationMS: 3000,
		WinDelayMS:     500,
		FrameMS:        4000,
		ProgressKey:    "hunt.progress",
	}
}
