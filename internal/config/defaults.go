package config

import (
	_ "embed"
)

//go:embed defaults/sim.yaml
var defaultSimYAML []byte

// Default returns the hard-coded configuration. It matches the embedded
// defaults/sim.yaml.
func Default() Sim {
	return Sim{
		Physics: Physics{
			Timestep:    1.0 / 60.0,
			Restitution: 1.0,
			Friction:    0.0,
			MaxFrame:    0.25,
		},
		World: World{
			Width:  1280,
			Height: 720,
		},
		Grid: Grid{
			CellSize: 50,
		},
		Quadtree: Quadtree{
			MinHalfSize: 10,
		},
		Interact: Interact{
			Range: 75,
		},
		Balls: Balls{
			PerPress:    25,
			MinRadius:   5,
			MaxRadius:   10,
			MaxSpeed:    250,
			BigEvery:    11,
			BigRadius:   25,
			BigMass:     10,
			MaxBalls:    2000,
			Friction:    0,
			Restitution: 1,
		},
		Pool: Pool{
			Width:     800,
			Height:    600,
			Balls:     16,
			Radius:    25,
			Mass:      1,
			Friction:  0.5,
			RestSpeed: 5,
			ShotSpeed: 600,
			AimStep:   0.0872665, // 5 degrees
		},
		Cafe: Cafe{
			GridSize:    50,
			Columns:     16,
			Rows:        12,
			Radius:      16,
			ItemRadius:  12,
			Mass:        1,
			MoveForce:   300,
			Friction:    1.5,
			Restitution: 0.25,
			BrewTime:    15,
			EatTime:     15,
			ShiftLength: 300,
			Pacing: Pacing{
				Enabled:       true,
				InitialLevel:  0.0,
				MaxAtServed:   20,
				SpawnInterval: 30,
				MinInterval:   10,
				Patience:      60,
				MinPatience:   25,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultSimYAML
}
