package broadphase

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-cafe/internal/physics"
)

func TestNewQuadtreeShape(t *testing.T) {
	q, err := NewQuadtree(800, 600, 10)
	if err != nil {
		t.Fatalf("NewQuadtree() failed: %v", err)
	}

	root := q.Nodes()[q.Root()]
	if root.Center != (mgl64.Vec2{400, 300}) {
		t.Errorf("root center = %v, expected (400, 300)", root.Center)
	}
	if root.Half != 640 {
		t.Errorf("root half = %v, expected 640", root.Half)
	}
	if q.Depth() != 6 {
		t.Errorf("Depth() = %d, expected 6", q.Depth())
	}
	if want := (pow4(7) - 1) / 3; len(q.Nodes()) != want {
		t.Errorf("node count = %d, expected %d", len(q.Nodes()), want)
	}

	for i, n := range q.Nodes() {
		if n.Leaf() != (n.Half == q.MinHalf()) {
			t.Fatalf("node %d: leaf=%v half=%v", i, n.Leaf(), n.Half)
		}
		if n.Leaf() {
			continue
		}
		for _, c := range n.Children {
			if c == NoNode {
				t.Fatalf("node %d has a missing child", i)
			}
			if q.Nodes()[c].Parent != i {
				t.Fatalf("child %d of node %d has parent %d", c, i, q.Nodes()[c].Parent)
			}
		}
	}
}

func TestNewQuadtreeRejectsInvalid(t *testing.T) {
	tests := []struct {
		name          string
		w, h, minHalf float64
	}{
		{"zero leaf", 100, 100, 0},
		{"negative bounds", -1, 100, 10},
		{"too deep", 1e6, 1e6, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewQuadtree(tc.w, tc.h, tc.minHalf); err == nil {
				t.Error("expected error")
			}
		})
	}
}

// checkContainment asserts that every body sits in the smallest node that
// strictly contains it.
func checkContainment(t *testing.T, q *Quadtree, bodies []*physics.Body) {
	t.Helper()
	nodes := q.Nodes()
	for _, b := range bodies {
		idx, ok := q.NodeOf(b.ID)
		if !ok {
			t.Fatalf("body %d has no node", b.ID)
		}
		n := nodes[idx]
		if idx != q.Root() && !n.Contains(b) {
			t.Errorf("body %d not contained by its node %d", b.ID, idx)
		}
		if !n.Leaf() {
			for _, c := range n.Children {
				if nodes[c].Contains(b) {
					t.Errorf("body %d fits in child %d of its node %d", b.ID, c, idx)
				}
			}
		}

		count := 0
		for _, node := range nodes {
			for _, other := range node.Bodies {
				if other == b {
					count++
				}
			}
		}
		if count != 1 {
			t.Errorf("body %d listed in %d nodes", b.ID, count)
		}
	}
}

func TestQuadtreeContainmentInvariant(t *testing.T) {
	q, _ := NewQuadtree(800, 600, 10)
	world := randomWorld(t, 3, 400, 800, 600, 25)

	q.Rebuild(world.Bodies())
	checkContainment(t, q, world.Bodies())

	// Move everything and rebuild incrementally from the previous nodes.
	for step := 0; step < 20; step++ {
		for i, b := range world.Bodies() {
			d := float64((i*7+step*13)%41) - 20
			b.Position = b.Position.Add(mgl64.Vec2{d, -d / 2})
		}
		q.Rebuild(world.Bodies())
		checkContainment(t, q, world.Bodies())
		checkAgainstBrute(t, q, world.Bodies())
	}
}

func TestQuadtreeForgetsRemovedBodies(t *testing.T) {
	q, _ := NewQuadtree(200, 200, 10)
	w := physics.NewWorld(200, 200)
	a, _ := w.Spawn(physics.NewBody(mgl64.Vec2{30, 30}, physics.Circle(4), 1))
	b, _ := w.Spawn(physics.NewBody(mgl64.Vec2{33, 30}, physics.Circle(4), 1))

	q.Rebuild(w.Bodies())
	w.Remove(b.ID)
	q.Rebuild(w.Bodies())

	if _, ok := q.NodeOf(b.ID); ok {
		t.Error("removed body still assigned")
	}
	if _, ok := q.NodeOf(a.ID); !ok {
		t.Error("live body lost its node")
	}
	q.Pairs(func(x, y *physics.Body) {
		t.Errorf("unexpected pair %d-%d", x.ID, y.ID)
	})
}

func TestQuadtreeCoincidentBodiesCollide(t *testing.T) {
	q, _ := NewQuadtree(200, 200, 10)
	w := physics.NewWorld(200, 200)
	a, _ := w.Spawn(physics.NewBody(mgl64.Vec2{55, 55}, physics.Circle(3), 1))
	b, _ := w.Spawn(physics.NewBody(mgl64.Vec2{55, 55}, physics.Circle(3), 1))
	a.Velocity = mgl64.Vec2{5, 0}

	q.Rebuild(w.Bodies())
	seen := collectPairs(t, q)
	if seen[key(a, b)] != 1 {
		t.Errorf("identical bodies visited %d times, expected 1", seen[key(a, b)])
	}
}

func TestQuadtreeOversizedBodyStaysAtRoot(t *testing.T) {
	q, _ := NewQuadtree(100, 100, 10)
	w := physics.NewWorld(100, 100)
	big, _ := w.Spawn(physics.NewBody(mgl64.Vec2{50, 50}, physics.Circle(500), 1))
	small, _ := w.Spawn(physics.NewBody(mgl64.Vec2{12, 12}, physics.Circle(1), 1))

	q.Rebuild(w.Bodies())
	if idx, _ := q.NodeOf(big.ID); idx != q.Root() {
		t.Errorf("oversized body assigned to node %d", idx)
	}
	if idx, _ := q.NodeOf(small.ID); !q.Nodes()[idx].Leaf() {
		t.Errorf("small body should reach a leaf, got node %d", idx)
	}

	seen := collectPairs(t, q)
	if seen[key(big, small)] != 1 {
		t.Error("root body should be tested against descendants")
	}
}

func TestQuadtreeActiveNodes(t *testing.T) {
	q, _ := NewQuadtree(200, 200, 10)
	w := physics.NewWorld(200, 200)
	b, _ := w.Spawn(physics.NewBody(mgl64.Vec2{15, 15}, physics.Circle(2), 1))

	q.Rebuild(w.Bodies())
	first, _ := q.NodeOf(b.ID)
	if got := q.ActiveNodes(); len(got) != 1 || got[0] != first {
		t.Fatalf("ActiveNodes() = %v, expected [%d]", got, first)
	}

	// Jump to the opposite corner: the old leaf and its ancestors up to the
	// common one are touched on the way up.
	b.Position = mgl64.Vec2{185, 185}
	q.Rebuild(w.Bodies())
	second, _ := q.NodeOf(b.ID)
	if second == first {
		t.Fatal("body should move to a different node")
	}

	active := q.ActiveNodes()
	if len(active) < 3 {
		t.Errorf("ActiveNodes() = %v, expected ascended nodes and destination", active)
	}
	if active[0] != first || active[len(active)-1] != second {
		t.Errorf("ActiveNodes() = %v, expected to start at %d and end at %d", active, first, second)
	}
	if len(q.Nodes()[first].Bodies) != 0 {
		t.Error("old node should be cleared")
	}
}
