package config

import "math"

// PacingManager derives customer arrival interval and patience from how
// many customers have been served.
type PacingManager struct {
	cfg          Pacing
	initialLevel float64
}

// NewPacingManager creates a new pacing manager.
func NewPacingManager(cfg Pacing) *PacingManager {
	return &PacingManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetEnabled enables or disables progression.
func (p *PacingManager) SetEnabled(enabled bool) {
	p.cfg.Enabled = enabled
}

// IsEnabled returns whether progression is active.
func (p *PacingManager) IsEnabled() bool {
	return p.cfg.Enabled
}

// Level returns the current pacing level (0.0 to 1.0).
func (p *PacingManager) Level(served int) float64 {
	if !p.cfg.Enabled {
		return p.initialLevel
	}

	maxAt := float64(p.cfg.MaxAtServed)
	if maxAt <= 0 {
		maxAt = 1
	}
	progress := clampF(float64(served)/maxAt, 0.0, 1.0)

	return p.initialLevel + progress*(1.0-p.initialLevel)
}

// SpawnInterval returns the seconds until the next customer arrives.
func (p *PacingManager) SpawnInterval(served int) float64 {
	return lerp(p.cfg.SpawnInterval, p.cfg.MinInterval, p.Level(served))
}

// Patience returns how long a new customer waits for their order.
func (p *PacingManager) Patience(served int) float64 {
	return lerp(p.cfg.Patience, p.cfg.MinPatience, p.Level(served))
}

func lerp(from, to, t float64) float64 {
	if to > from {
		to = from
	}
	return from + (to-from)*t
}

func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
