package broadphase

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-cafe/internal/physics"
)

type pairKey struct{ a, b physics.BodyID }

func key(a, b *physics.Body) pairKey {
	if a.ID > b.ID {
		a, b = b, a
	}
	return pairKey{a.ID, b.ID}
}

func overlaps(a, b *physics.Body) bool {
	return a.Position.Sub(b.Position).Len() <= a.Shape.Radius+b.Shape.Radius
}

func randomWorld(t *testing.T, seed uint64, n int, w, h, maxRadius float64) *physics.World {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	world := physics.NewWorld(w, h)
	for i := 0; i < n; i++ {
		r := 2 + rng.Float64()*(maxRadius-2)
		pos := mgl64.Vec2{r + rng.Float64()*(w-2*r), r + rng.Float64()*(h-2*r)}
		if _, err := world.Spawn(physics.NewBody(pos, physics.Circle(r), 1)); err != nil {
			t.Fatalf("Spawn() failed: %v", err)
		}
	}
	return world
}

func collectPairs(t *testing.T, p Phase) map[pairKey]int {
	t.Helper()
	seen := make(map[pairKey]int)
	p.Pairs(func(a, b *physics.Body) {
		if a == b {
			t.Fatalf("%s visited self-pair for body %d", p.Name(), a.ID)
		}
		seen[key(a, b)]++
	})
	return seen
}

// checkAgainstBrute asserts that p visits no pair twice and visits every
// overlapping pair.
func checkAgainstBrute(t *testing.T, p Phase, bodies []*physics.Body) {
	t.Helper()
	p.Rebuild(bodies)
	seen := collectPairs(t, p)

	for k, n := range seen {
		if n != 1 {
			t.Errorf("%s visited pair %v %d times", p.Name(), k, n)
		}
	}

	brute := NewBruteForce()
	brute.Rebuild(bodies)
	brute.Pairs(func(a, b *physics.Body) {
		if overlaps(a, b) && seen[key(a, b)] == 0 {
			t.Errorf("%s missed overlapping pair %d-%d", p.Name(), a.ID, b.ID)
		}
	})
}

func TestPhasesFindEveryOverlap(t *testing.T) {
	opts := Options{Width: 800, Height: 600, CellSize: 50, MinHalfSize: 10}

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			for seed := uint64(1); seed <= 5; seed++ {
				p, err := New(name, opts)
				if err != nil {
					t.Fatalf("New(%q) failed: %v", name, err)
				}
				world := randomWorld(t, seed, 300, opts.Width, opts.Height, 20)
				checkAgainstBrute(t, p, world.Bodies())
			}
		})
	}
}

func TestBruteForcePairCount(t *testing.T) {
	world := randomWorld(t, 7, 10, 100, 100, 5)
	p := NewBruteForce()
	p.Rebuild(world.Bodies())
	if got := len(collectPairs(t, p)); got != 45 {
		t.Errorf("brute force visited %d pairs, expected 45", got)
	}
}

func TestResolveCountsCollisions(t *testing.T) {
	world := physics.NewWorld(100, 100)
	a, _ := world.Spawn(physics.NewBody(mgl64.Vec2{20, 20}, physics.Circle(5), 1))
	b, _ := world.Spawn(physics.NewBody(mgl64.Vec2{28, 20}, physics.Circle(5), 1))
	world.Spawn(physics.NewBody(mgl64.Vec2{80, 80}, physics.Circle(5), 1))
	a.Velocity = mgl64.Vec2{10, 0}
	b.Velocity = mgl64.Vec2{-10, 0}

	st := Step(NewBruteForce(), world.Bodies(), physics.Resolver{Restitution: 1})
	if st.PairsTested != 3 {
		t.Errorf("PairsTested = %d, expected 3", st.PairsTested)
	}
	if st.Collisions != 1 {
		t.Errorf("Collisions = %d, expected 1", st.Collisions)
	}

	var total Stats
	total.Add(st)
	total.Add(st)
	if total.PairsTested != 6 || total.Collisions != 2 {
		t.Errorf("Add() = %+v", total)
	}
}

func TestNewUnknownPhase(t *testing.T) {
	_, err := New("octree", Options{Width: 10, Height: 10, CellSize: 1, MinHalfSize: 1})
	if !errors.Is(err, ErrUnknownPhase) {
		t.Errorf("expected ErrUnknownPhase, got %v", err)
	}
}

type bodyPair struct{ a, b *physics.Body }

func TestPhasesDoNotRelyOnBodyIDs(t *testing.T) {
	opts := Options{Width: 400, Height: 300, CellSize: 40, MinHalfSize: 10}
	tests := []struct {
		name string
		id   func(i int) physics.BodyID
	}{
		{"unset", func(int) physics.BodyID { return 0 }},
		{"repeated", func(i int) physics.BodyID { return physics.BodyID(i % 3) }},
	}

	for _, tc := range tests {
		for _, name := range Names() {
			t.Run(tc.name+"/"+name, func(t *testing.T) {
				world := randomWorld(t, 3, 120, opts.Width, opts.Height, 15)
				var bodies []*physics.Body
				for i, b := range world.Bodies() {
					c := *b
					c.ID = tc.id(i)
					bodies = append(bodies, &c)
				}

				p, err := New(name, opts)
				if err != nil {
					t.Fatalf("New(%q) failed: %v", name, err)
				}
				// The second pass starts from the previous step's membership.
				for pass := 0; pass < 2; pass++ {
					p.Rebuild(bodies)
					seen := make(map[bodyPair]int)
					p.Pairs(func(a, b *physics.Body) {
						if a == b {
							t.Fatal("visited self-pair")
						}
						if seen[bodyPair{b, a}] > 0 {
							a, b = b, a
						}
						seen[bodyPair{a, b}]++
					})

					for i := 0; i < len(bodies); i++ {
						for j := i + 1; j < len(bodies); j++ {
							a, b := bodies[i], bodies[j]
							n := seen[bodyPair{a, b}] + seen[bodyPair{b, a}]
							if n > 1 {
								t.Errorf("pass %d: pair %d-%d visited %d times", pass, i, j, n)
							}
							if n == 0 && overlaps(a, b) {
								t.Errorf("pass %d: missed overlapping pair %d-%d", pass, i, j)
							}
						}
					}
				}
			})
		}
	}
}
