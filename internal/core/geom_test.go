package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent vertical (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(0, 10, 10, 10),
			expected: false,
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}
}

func TestViewport(t *testing.T) {
	// 800x600 world into 80x30 cells: horizontal scale 0.1, vertical 0.05.
	v := NewViewport(NewRect(0, 1, 80, 30), 800, 600)

	x, y := v.ToScreen(mgl64.Vec2{400, 300})
	if x != 40 || y != 16 {
		t.Errorf("ToScreen(center) = (%d, %d), expected (40, 16)", x, y)
	}

	r := v.RectOf(mgl64.Vec2{0, 0}, mgl64.Vec2{100, 100})
	if r.X != 0 || r.Y != 1 || r.W != 10 || r.H != 5 {
		t.Errorf("RectOf() = %+v", r)
	}

	if s := v.Scale(); s != 0.1 {
		t.Errorf("Scale() = %v, expected 0.1", s)
	}
}

func TestViewportDegenerate(t *testing.T) {
	v := NewViewport(NewRect(0, 0, 0, 0), 800, 600)
	if x, y := v.ToScreen(mgl64.Vec2{400, 300}); x != 0 || y != 0 {
		t.Errorf("empty viewport should map to origin, got (%d, %d)", x, y)
	}
}
