// Package core provides the terminal-side types shared by every scene:
// cell geometry, the colored screen buffer, input actions and snapshots.
// It has no Bubble Tea dependency so scenes stay pure and testable.
package core

import "github.com/go-gl/mathgl/mgl64"

// Rect is an axis-aligned rectangle in terminal cells.
type Rect struct {
	X, Y int // top-left corner
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Viewport maps world coordinates onto a screen region. Terminal cells are
// roughly twice as tall as they are wide, so the vertical scale is halved
// when the region allows it.
type Viewport struct {
	Area   Rect
	scaleX float64
	scaleY float64
}

// NewViewport fits a worldW x worldH world into area, preserving aspect.
func NewViewport(area Rect, worldW, worldH float64) Viewport {
	if area.W <= 0 || area.H <= 0 || worldW <= 0 || worldH <= 0 {
		return Viewport{Area: area}
	}
	sx := float64(area.W) / worldW
	sy := float64(area.H) / worldH
	// One cell is ~2 world units tall for every unit wide.
	s := min(sx, 2*sy)
	return Viewport{Area: area, scaleX: s, scaleY: s / 2}
}

// ToScreen converts a world point to a cell position.
func (v Viewport) ToScreen(p mgl64.Vec2) (int, int) {
	return v.Area.X + int(p.X()*v.scaleX), v.Area.Y + int(p.Y()*v.scaleY)
}

// RectOf returns the cell rectangle covering the world box [lo, hi].
func (v Viewport) RectOf(lo, hi mgl64.Vec2) Rect {
	x0, y0 := v.ToScreen(lo)
	x1, y1 := v.ToScreen(hi)
	return NewRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1))
}

// Scale returns the horizontal cells per world unit.
func (v Viewport) Scale() float64 {
	return v.scaleX
}
