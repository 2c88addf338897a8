package core

// RuntimeConfig is handed to Game.Reset.
type RuntimeConfig struct {
	ScreenW, ScreenH int   // play area in cells
	TickRate         int   // fixed steps per second
	Seed             int64 // 0 lets the platform pick one from the clock

	// Assets resolves sprites by name. Nil means games draw fallback shapes.
	Assets AssetSource

	// Store persists small blobs such as level progress. Nil keeps them in
	// memory for the life of the process.
	Store KV

	// Profile namespaces persisted data, e.g. per SSH user.
	Profile string
}

// DefaultConfig is an 80×24 screen at 60 Hz.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
}

// GameState is what the platform needs to know about a running game.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool
}

// StepResult reports the state after a tick plus the sounds it raised, in
// order.
type StepResult struct {
	State  GameState
	Sounds []SoundCue
}
