package broadphase

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-cafe/internal/physics"
)

// NoNode marks a missing parent or child index.
const NoNode = -1

// MaxQuadtreeDepth bounds the tree size; a depth of 8 is 87381 nodes.
const MaxQuadtreeDepth = 8

// Node is one square region of the quadtree. Nodes live in an arena and
// refer to each other by index.
type Node struct {
	Center   mgl64.Vec2
	Half     float64
	Parent   int
	Children [4]int // NW, NE, SW, SE; all NoNode for leaves
	Depth    int
	Bodies   []*physics.Body
}

// Leaf reports whether the node has no children.
func (n *Node) Leaf() bool {
	return n.Children[0] == NoNode
}

// Contains reports whether b's bounding box lies strictly inside the node.
func (n *Node) Contains(b *physics.Body) bool {
	tl, br := b.AABB()
	return tl.X() > n.Center.X()-n.Half &&
		tl.Y() > n.Center.Y()-n.Half &&
		br.X() < n.Center.X()+n.Half &&
		br.Y() < n.Center.Y()+n.Half
}

// Quadtree is a hierarchical broad phase. Each body is assigned to the
// smallest node that strictly contains its bounding box and is tested
// against the bodies of every node on its ancestor chain. Because
// containment is strict, two overlapping bodies always share a chain.
type Quadtree struct {
	nodes   []Node
	minHalf float64
	depth   int

	order    []*physics.Body
	slots    []int // node of order[i] in the current step
	assigned map[physics.BodyID]int
	spare    map[physics.BodyID]int

	active []int
	marked []bool
	chain  []int
}

// NewQuadtree builds a complete tree over width x height. The root is
// centered on the world and its half-size is minHalf doubled until it
// covers the larger dimension, so every leaf has exactly minHalf.
func NewQuadtree(width, height, minHalf float64) (*Quadtree, error) {
	if !(width > 0) || !(height > 0) {
		return nil, fmt.Errorf("broadphase: quadtree bounds %vx%v must be positive", width, height)
	}
	if !(minHalf > 0) || math.IsInf(minHalf, 0) {
		return nil, fmt.Errorf("broadphase: quadtree leaf half-size %v must be positive", minHalf)
	}

	half := minHalf
	depth := 0
	for half < math.Max(width, height)/2 {
		half *= 2
		depth++
		if depth > MaxQuadtreeDepth {
			return nil, fmt.Errorf("broadphase: quadtree over %vx%v with leaf half-size %v exceeds depth %d",
				width, height, minHalf, MaxQuadtreeDepth)
		}
	}

	q := &Quadtree{
		minHalf:  minHalf,
		depth:    depth,
		assigned: make(map[physics.BodyID]int),
		spare:    make(map[physics.BodyID]int),
	}
	q.nodes = make([]Node, 0, (pow4(depth+1)-1)/3)
	q.build(mgl64.Vec2{width / 2, height / 2}, half, NoNode, 0)
	q.marked = make([]bool, len(q.nodes))
	return q, nil
}

func pow4(n int) int {
	return 1 << (2 * n)
}

func (q *Quadtree) build(center mgl64.Vec2, half float64, parent, depth int) int {
	idx := len(q.nodes)
	q.nodes = append(q.nodes, Node{
		Center:   center,
		Half:     half,
		Parent:   parent,
		Children: [4]int{NoNode, NoNode, NoNode, NoNode},
		Depth:    depth,
	})
	if half <= q.minHalf {
		return idx
	}

	h := half / 2
	offsets := [4]mgl64.Vec2{{-h, -h}, {h, -h}, {-h, h}, {h, h}}
	for i, off := range offsets {
		child := q.build(center.Add(off), h, idx, depth+1)
		q.nodes[idx].Children[i] = child
	}
	return idx
}

func (q *Quadtree) Name() string { return "quadtree" }

// Root returns the index of the root node.
func (q *Quadtree) Root() int { return 0 }

// Depth returns the depth of the leaves.
func (q *Quadtree) Depth() int { return q.depth }

// MinHalf returns the leaf half-size.
func (q *Quadtree) MinHalf() float64 { return q.minHalf }

// Nodes exposes the node arena. It must not be modified.
func (q *Quadtree) Nodes() []Node { return q.nodes }

// NodeOf returns the node id is assigned to in the current step.
func (q *Quadtree) NodeOf(id physics.BodyID) (int, bool) {
	n, ok := q.assigned[id]
	return n, ok
}

// ActiveNodes returns the nodes touched during the last Rebuild.
func (q *Quadtree) ActiveNodes() []int { return q.active }

// Rebuild reassigns every body, starting from the node it occupied in the
// previous step. Bodies missing from the list are forgotten.
func (q *Quadtree) Rebuild(bodies []*physics.Body) {
	for _, idx := range q.active {
		clear(q.nodes[idx].Bodies)
		q.nodes[idx].Bodies = q.nodes[idx].Bodies[:0]
		q.marked[idx] = false
	}
	q.active = q.active[:0]

	next := q.spare
	clear(next)
	q.order = append(q.order[:0], bodies...)
	q.slots = q.slots[:0]

	// The previous node is only a starting hint; any start yields the same
	// placement.
	for _, b := range bodies {
		start, ok := q.assigned[b.ID]
		if !ok {
			start = q.Root()
		}
		idx := q.place(b, start)
		next[b.ID] = idx
		q.slots = append(q.slots, idx)
		q.nodes[idx].Bodies = append(q.nodes[idx].Bodies, b)
	}

	q.spare = q.assigned
	q.assigned = next
}

// place ascends from start to the first node containing b, then descends
// into containing children as far as possible.
func (q *Quadtree) place(b *physics.Body, start int) int {
	n := start
	for n != q.Root() && !q.nodes[n].Contains(b) {
		q.activate(n)
		n = q.nodes[n].Parent
	}

	extent := b.Shape.Extent()
	for !q.nodes[n].Leaf() {
		// A body at least as wide as a child cannot fit strictly inside one.
		if extent >= q.nodes[n].Half/2 {
			break
		}
		next := NoNode
		for _, c := range q.nodes[n].Children {
			if q.nodes[c].Contains(b) {
				next = c
				break
			}
		}
		if next == NoNode {
			break
		}
		n = next
	}

	q.activate(n)
	return n
}

func (q *Quadtree) activate(n int) {
	if !q.marked[n] {
		q.marked[n] = true
		q.active = append(q.active, n)
	}
}

// Pairs tests each body against the bodies of its ancestors, root first,
// and against the bodies listed after it in its own node.
func (q *Quadtree) Pairs(visit func(a, b *physics.Body)) {
	for i, b := range q.order {
		own := q.slots[i]

		q.chain = q.chain[:0]
		for n := q.nodes[own].Parent; n != NoNode; n = q.nodes[n].Parent {
			q.chain = append(q.chain, n)
		}
		for i := len(q.chain) - 1; i >= 0; i-- {
			for _, other := range q.nodes[q.chain[i]].Bodies {
				visit(b, other)
			}
		}

		after := false
		for _, other := range q.nodes[own].Bodies {
			if after {
				visit(b, other)
			} else if other == b {
				after = true
			}
		}
	}
}
