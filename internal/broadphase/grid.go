package broadphase

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-cafe/internal/physics"
)

// Cell is one square of a uniform grid.
type Cell struct {
	Col, Row int
	Min, Max mgl64.Vec2
	Bodies   []*physics.Body
}

// Grid is a uniform-grid broad phase. A body is registered into the cells
// under the corners of its bounding box: one, two or four cells, never
// three. Bodies wider than a cell are only registered at their corners, so
// the cell size should be at least the largest body diameter.
type Grid struct {
	cellSize   float64
	cols, rows int

	cells  []Cell
	active []int
	queued []bool

	// Partner sets are keyed by body, so callers that leave IDs unset or
	// reuse them still get every pair once.
	partners map[*physics.Body]map[*physics.Body]struct{}
}

// NewGrid creates a grid covering width x height with square cells.
func NewGrid(width, height, cellSize float64) (*Grid, error) {
	if !(width > 0) || !(height > 0) {
		return nil, fmt.Errorf("broadphase: grid bounds %vx%v must be positive", width, height)
	}
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		return nil, fmt.Errorf("broadphase: grid cell size %v must be positive", cellSize)
	}

	cols := int(math.Ceil(width / cellSize))
	rows := int(math.Ceil(height / cellSize))

	g := &Grid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    make([]Cell, cols*rows),
		queued:   make([]bool, cols*rows),
		partners: make(map[*physics.Body]map[*physics.Body]struct{}),
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			lo := mgl64.Vec2{float64(col) * cellSize, float64(row) * cellSize}
			g.cells[row*cols+col] = Cell{
				Col: col,
				Row: row,
				Min: lo,
				Max: lo.Add(mgl64.Vec2{cellSize, cellSize}),
			}
		}
	}
	return g, nil
}

func (g *Grid) Name() string { return "grid" }

// Dims returns the number of columns and rows.
func (g *Grid) Dims() (cols, rows int) { return g.cols, g.rows }

// CellSize returns the side length of a cell.
func (g *Grid) CellSize() float64 { return g.cellSize }

// CellAt returns the clamped column and row containing p.
func (g *Grid) CellAt(p mgl64.Vec2) (col, row int) {
	col = clampIndex(int(math.Floor(p.X()/g.cellSize)), g.cols)
	row = clampIndex(int(math.Floor(p.Y()/g.cellSize)), g.rows)
	return col, row
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Rebuild clears the previous step's cells and registers every body.
func (g *Grid) Rebuild(bodies []*physics.Body) {
	for _, idx := range g.active {
		clear(g.cells[idx].Bodies)
		g.cells[idx].Bodies = g.cells[idx].Bodies[:0]
		g.queued[idx] = false
	}
	g.active = g.active[:0]
	clear(g.partners)

	for _, b := range bodies {
		tl, br := b.AABB()
		c0, r0 := g.CellAt(tl)
		c1, r1 := g.CellAt(br)

		g.insert(c0, r0, b)
		if c1 != c0 || r1 != r0 {
			g.insert(c1, r1, b)
		}
		if c1 != c0 && r1 != r0 {
			g.insert(c1, r0, b)
			g.insert(c0, r1, b)
		}
	}
}

func (g *Grid) insert(col, row int, b *physics.Body) {
	idx := row*g.cols + col
	g.cells[idx].Bodies = append(g.cells[idx].Bodies, b)
	if !g.queued[idx] {
		g.queued[idx] = true
		g.active = append(g.active, idx)
	}
}

// Pairs visits every same-cell pair once per step, even when the pair
// shares more than one cell.
func (g *Grid) Pairs(visit func(a, b *physics.Body)) {
	for _, idx := range g.active {
		bodies := g.cells[idx].Bodies
		for i := 0; i < len(bodies); i++ {
			for j := i + 1; j < len(bodies); j++ {
				a, b := bodies[i], bodies[j]
				if g.tested(a, b) {
					continue
				}
				g.mark(a, b)
				visit(a, b)
			}
		}
	}
}

func (g *Grid) tested(a, b *physics.Body) bool {
	_, ok := g.partners[a][b]
	return ok
}

func (g *Grid) mark(a, b *physics.Body) {
	g.partnerSet(a)[b] = struct{}{}
	g.partnerSet(b)[a] = struct{}{}
}

func (g *Grid) partnerSet(b *physics.Body) map[*physics.Body]struct{} {
	set, ok := g.partners[b]
	if !ok {
		set = make(map[*physics.Body]struct{})
		g.partners[b] = set
	}
	return set
}

// Partners returns how many distinct bodies b was tested against in the
// current step.
func (g *Grid) Partners(b *physics.Body) int {
	return len(g.partners[b])
}

// Membership returns the number of cells b is registered in.
func (g *Grid) Membership(b *physics.Body) int {
	n := 0
	for _, idx := range g.active {
		for _, other := range g.cells[idx].Bodies {
			if other == b {
				n++
			}
		}
	}
	return n
}

// ActiveCells returns the non-empty cells in registration order.
func (g *Grid) ActiveCells() []Cell {
	out := make([]Cell, 0, len(g.active))
	for _, idx := range g.active {
		out = append(out, g.cells[idx])
	}
	return out
}
