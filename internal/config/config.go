// Package config provides YAML-based simulation configuration and the café
// pacing manager.
package config

// Sim contains every tunable of the physics core and the scenes.
type Sim struct {
	Physics  Physics  `yaml:"physics"`
	World    World    `yaml:"world"`
	Grid     Grid     `yaml:"grid"`
	Quadtree Quadtree `yaml:"quadtree"`
	Interact Interact `yaml:"interact"`
	Balls    Balls    `yaml:"balls"`
	Pool     Pool     `yaml:"pool"`
	Cafe     Cafe     `yaml:"cafe"`
}

// Physics holds the integrator and resolver constants.
type Physics struct {
	Timestep    float64 `yaml:"timestep"`    // seconds per fixed step
	Restitution float64 `yaml:"restitution"` // e in [0,1]
	Friction    float64 `yaml:"friction"`
	MaxFrame    float64 `yaml:"max_frame"` // cap on wall time per frame, 0 = none
}

// World defines the simulation bounds in world units.
type World struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Grid configures the uniform grid broad phase.
type Grid struct {
	CellSize float64 `yaml:"cell_size"`
}

// Quadtree configures the quadtree broad phase.
type Quadtree struct {
	MinHalfSize float64 `yaml:"min_half_size"`
}

// Interact configures hot-item targeting.
type Interact struct {
	Range float64 `yaml:"range"`
}

// Balls configures the spawn-on-key ball toy.
type Balls struct {
	PerPress    int     `yaml:"per_press"`
	MinRadius   float64 `yaml:"min_radius"`
	MaxRadius   float64 `yaml:"max_radius"`
	MaxSpeed    float64 `yaml:"max_speed"`
	BigEvery    int     `yaml:"big_every"` // every Nth press spawns one big ball
	BigRadius   float64 `yaml:"big_radius"`
	BigMass     float64 `yaml:"big_mass"`
	MaxBalls    int     `yaml:"max_balls"`
	Friction    float64 `yaml:"friction"`
	Restitution float64 `yaml:"restitution"`
}

// Pool configures the pool table scene.
type Pool struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Balls     int     `yaml:"balls"`
	Radius    float64 `yaml:"radius"`
	Mass      float64 `yaml:"mass"`
	Friction  float64 `yaml:"friction"`
	RestSpeed float64 `yaml:"rest_speed"`
	ShotSpeed float64 `yaml:"shot_speed"`
	AimStep   float64 `yaml:"aim_step"` // radians per key press
}

// Cafe configures the restaurant scene.
type Cafe struct {
	GridSize    float64 `yaml:"grid_size"`
	Columns     int     `yaml:"columns"`
	Rows        int     `yaml:"rows"`
	Radius      float64 `yaml:"radius"`
	ItemRadius  float64 `yaml:"item_radius"`
	Mass        float64 `yaml:"mass"`
	MoveForce   float64 `yaml:"move_force"`
	Friction    float64 `yaml:"friction"`
	Restitution float64 `yaml:"restitution"`
	BrewTime    float64 `yaml:"brew_time"`
	EatTime     float64 `yaml:"eat_time"`
	ShiftLength float64 `yaml:"shift_length"`
	Pacing      Pacing  `yaml:"pacing"`
}

// Pacing controls how customer arrival speeds up over a shift.
type Pacing struct {
	Enabled       bool    `yaml:"enabled"`
	InitialLevel  float64 `yaml:"initial_level"` // 0.0 = calm, 1.0 = rush
	MaxAtServed   int     `yaml:"max_at_served"`
	SpawnInterval float64 `yaml:"spawn_interval"` // seconds between customers at level 0
	MinInterval   float64 `yaml:"min_interval"`
	Patience      float64 `yaml:"patience"` // seconds a customer waits at level 0
	MinPatience   float64 `yaml:"min_patience"`
}

// PacingPreset represents a named pacing level.
type PacingPreset string

const (
	PacingEasy   PacingPreset = "easy"
	PacingNormal PacingPreset = "normal"
	PacingHard   PacingPreset = "hard"
	PacingFixed  PacingPreset = "fixed"
)

// InitialLevelForPreset returns the initial level for a preset.
func InitialLevelForPreset(preset PacingPreset) float64 {
	switch preset {
	case PacingNormal:
		return 0.3
	case PacingHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset adjusts the café pacing for a preset.
func ApplyPreset(cfg *Sim, preset PacingPreset) {
	if preset == PacingFixed {
		cfg.Cafe.Pacing.Enabled = false
		return
	}
	cfg.Cafe.Pacing.Enabled = true
	cfg.Cafe.Pacing.InitialLevel = InitialLevelForPreset(preset)
}
