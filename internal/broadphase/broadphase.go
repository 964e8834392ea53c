// Package broadphase narrows the set of body pairs handed to the impulse
// resolver. Every phase is rebuilt from the live body list each step and
// never dereferences bodies from a previous step.
package broadphase

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-cafe/internal/physics"
)

// ErrUnknownPhase is returned by New for an unrecognized phase name.
var ErrUnknownPhase = errors.New("broadphase: unknown phase")

// Phase is a broad-phase collision filter.
type Phase interface {
	// Name returns the phase identifier ("brute", "grid", "quadtree").
	Name() string
	// Rebuild recomputes spatial membership for the given bodies.
	Rebuild(bodies []*physics.Body)
	// Pairs calls visit once for every candidate pair produced by the
	// last Rebuild. visit may change body velocities but not positions.
	Pairs(visit func(a, b *physics.Body))
}

// Stats summarizes a single resolution pass.
type Stats struct {
	PairsTested int
	Collisions  int
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.PairsTested += other.PairsTested
	s.Collisions += other.Collisions
}

// Resolve feeds every candidate pair of p into r.
func Resolve(p Phase, r physics.Resolver) Stats {
	var st Stats
	p.Pairs(func(a, b *physics.Body) {
		st.PairsTested++
		if r.Resolve(a, b) {
			st.Collisions++
		}
	})
	return st
}

// Step rebuilds p from bodies and resolves the resulting pairs.
func Step(p Phase, bodies []*physics.Body, r physics.Resolver) Stats {
	p.Rebuild(bodies)
	return Resolve(p, r)
}

// Options carries the sizing parameters needed by New.
type Options struct {
	Width, Height float64
	CellSize      float64
	MinHalfSize   float64
}

// Names lists the phase identifiers accepted by New.
func Names() []string {
	return []string{"brute", "grid", "quadtree"}
}

// New constructs a phase by name.
func New(name string, opts Options) (Phase, error) {
	switch name {
	case "brute":
		return NewBruteForce(), nil
	case "grid":
		return NewGrid(opts.Width, opts.Height, opts.CellSize)
	case "quadtree":
		return NewQuadtree(opts.Width, opts.Height, opts.MinHalfSize)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPhase, name)
	}
}
