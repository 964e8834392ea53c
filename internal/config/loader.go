package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate and Load for out-of-range values.
var ErrInvalidConfig = errors.New("config: invalid")

const fileName = "sim.yaml"

// Load reads the simulation configuration.
// Search order: customPath -> ~/.cafe/configs/sim.yaml -> ./configs/sim.yaml -> embedded default.
// Files are decoded over the defaults, so a partial file only overrides
// the keys it sets.
func Load(customPath string) (Sim, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Sim{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Sim{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if p := userConfigPath(fileName); p != "" {
		if data, err := os.ReadFile(p); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", fileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := Parse(defaultSimYAML); err == nil {
		return cfg, nil
	}
	return Default(), nil
}

// Parse decodes YAML over the hard-coded defaults and validates the result.
func Parse(data []byte) (Sim, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Sim{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Sim{}, err
	}
	return cfg, nil
}

// Validate rejects values the simulation cannot run with.
func (c Sim) Validate() error {
	checks := []struct {
		ok   bool
		what string
	}{
		{positive(c.Physics.Timestep), "physics.timestep must be positive"},
		{unit(c.Physics.Restitution), "physics.restitution must be in [0,1]"},
		{nonNegative(c.Physics.Friction), "physics.friction must not be negative"},
		{nonNegative(c.Physics.MaxFrame), "physics.max_frame must not be negative"},
		{positive(c.World.Width) && positive(c.World.Height), "world bounds must be positive"},
		{positive(c.Grid.CellSize), "grid.cell_size must be positive"},
		{positive(c.Quadtree.MinHalfSize), "quadtree.min_half_size must be positive"},
		{nonNegative(c.Interact.Range), "interact.range must not be negative"},
		{c.Balls.PerPress > 0, "balls.per_press must be positive"},
		{positive(c.Balls.MinRadius) && c.Balls.MaxRadius >= c.Balls.MinRadius, "balls radii must satisfy 0 < min_radius <= max_radius"},
		{positive(c.Balls.BigRadius) && positive(c.Balls.BigMass), "balls big ball radius and mass must be positive"},
		{c.Grid.CellSize >= 2*math.Max(c.Balls.MaxRadius, c.Balls.BigRadius), "grid.cell_size must fit the largest ball"},
		{unit(c.Balls.Restitution) && nonNegative(c.Balls.Friction), "balls restitution/friction out of range"},
		{positive(c.Pool.Width) && positive(c.Pool.Height), "pool bounds must be positive"},
		{c.Pool.Balls > 0 && positive(c.Pool.Radius) && positive(c.Pool.Mass), "pool balls, radius and mass must be positive"},
		{nonNegative(c.Pool.Friction) && nonNegative(c.Pool.RestSpeed), "pool friction/rest_speed must not be negative"},
		{positive(c.Cafe.GridSize) && c.Cafe.Columns > 2 && c.Cafe.Rows > 2, "cafe layout too small"},
		{positive(c.Cafe.Radius) && positive(c.Cafe.ItemRadius) && positive(c.Cafe.Mass), "cafe radii and mass must be positive"},
		{unit(c.Cafe.Restitution) && nonNegative(c.Cafe.Friction), "cafe restitution/friction out of range"},
		{positive(c.Cafe.BrewTime) && positive(c.Cafe.EatTime), "cafe timers must be positive"},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, chk.what)
		}
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

func unit(v float64) bool {
	return v >= 0 && v <= 1
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cafe", "configs", filename)
}
