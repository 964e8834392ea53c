package core

// RuntimeConfig is passed to scenes on Reset.
type RuntimeConfig struct {
	ScreenW  int   // screen width in characters
	ScreenH  int   // screen height in characters
	TickRate int   // render frames per second
	Seed     int64 // RNG seed; 0 lets the platform pick one
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// SceneState is the externally visible status of a scene.
type SceneState struct {
	Score    int
	GameOver bool
	Paused   bool
}

// StepResult is returned by a scene after each fixed simulation step.
type StepResult struct {
	State      SceneState
	Pairs      int // broad-phase pairs tested this step
	Collisions int // impulses applied this step
}
