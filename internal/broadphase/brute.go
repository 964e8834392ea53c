package broadphase

import "github.com/vovakirdan/tui-cafe/internal/physics"

// BruteForce tests every unordered pair. It is the reference the other
// phases are checked against.
type BruteForce struct {
	bodies []*physics.Body
}

// NewBruteForce creates an all-pairs phase.
func NewBruteForce() *BruteForce {
	return &BruteForce{}
}

func (p *BruteForce) Name() string { return "brute" }

func (p *BruteForce) Rebuild(bodies []*physics.Body) {
	p.bodies = append(p.bodies[:0], bodies...)
}

func (p *BruteForce) Pairs(visit func(a, b *physics.Body)) {
	for i := 0; i < len(p.bodies); i++ {
		for j := i + 1; j < len(p.bodies); j++ {
			visit(p.bodies[i], p.bodies[j])
		}
	}
}
