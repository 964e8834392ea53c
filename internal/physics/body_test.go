package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNewBodyValidation(t *testing.T) {
	tests := []struct {
		name    string
		shape   Shape
		mass    float64
		wantErr error
	}{
		{"valid circle", Circle(10), 1, nil},
		{"valid square", Square(25), 3, nil},
		{"zero mass", Circle(10), 0, ErrInvalidMass},
		{"negative mass", Circle(10), -2, ErrInvalidMass},
		{"NaN mass", Circle(10), math.NaN(), ErrInvalidMass},
		{"infinite mass", Circle(10), math.Inf(1), ErrInvalidMass},
		{"zero radius", Circle(0), 1, ErrInvalidShape},
		{"negative half size", Square(-1), 1, ErrInvalidShape},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := NewBody(mgl64.Vec2{}, tc.shape, tc.mass)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("NewBody() unexpected error: %v", err)
				}
				if b.InvMass != 1/tc.mass {
					t.Errorf("InvMass = %v, expected %v", b.InvMass, 1/tc.mass)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("NewBody() error = %v, expected %v", err, tc.wantErr)
			}
		})
	}
}

func TestNewStatic(t *testing.T) {
	b, err := NewStatic(mgl64.Vec2{5, 5}, Square(10))
	if err != nil {
		t.Fatalf("NewStatic() failed: %v", err)
	}
	if !b.Static() {
		t.Error("static body should report Static()")
	}
	if b.InvMass != 0 {
		t.Errorf("static body InvMass = %v, expected 0", b.InvMass)
	}

	if _, err := NewStatic(mgl64.Vec2{}, Circle(math.NaN())); !errors.Is(err, ErrInvalidShape) {
		t.Errorf("expected ErrInvalidShape, got %v", err)
	}
}

func TestBodyAABB(t *testing.T) {
	b, _ := NewBody(mgl64.Vec2{100, 50}, Circle(10), 1)
	tl, br := b.AABB()
	if tl != (mgl64.Vec2{90, 40}) || br != (mgl64.Vec2{110, 60}) {
		t.Errorf("AABB() = %v %v", tl, br)
	}

	sq, _ := NewStatic(mgl64.Vec2{0, 0}, Square(5))
	tl, br = sq.AABB()
	if tl != (mgl64.Vec2{-5, -5}) || br != (mgl64.Vec2{5, 5}) {
		t.Errorf("square AABB() = %v %v", tl, br)
	}
}

func TestWorldAddRemove(t *testing.T) {
	w := NewWorld(800, 600)

	a, _ := NewBody(mgl64.Vec2{10, 10}, Circle(5), 1)
	b, _ := NewBody(mgl64.Vec2{20, 20}, Circle(5), 1)
	c, _ := NewBody(mgl64.Vec2{30, 30}, Circle(5), 1)
	w.Add(a)
	w.Add(b)
	w.Add(c)

	if a.ID == b.ID || b.ID == c.ID {
		t.Fatal("IDs should be unique")
	}

	if !w.Remove(b.ID) {
		t.Fatal("Remove() returned false for live body")
	}
	if w.Remove(b.ID) {
		t.Error("Remove() of removed body should return false")
	}
	if w.Get(b.ID) != nil {
		t.Error("removed body still reachable")
	}

	bodies := w.Bodies()
	if len(bodies) != 2 || bodies[0] != a || bodies[1] != c {
		t.Error("Remove() should preserve order of remaining bodies")
	}

	d, _ := NewBody(mgl64.Vec2{}, Circle(5), 1)
	w.Add(d)
	if d.ID <= c.ID {
		t.Errorf("IDs must not be reused: got %d after %d", d.ID, c.ID)
	}
}

func TestWorldSpawnPropagatesErrors(t *testing.T) {
	w := NewWorld(100, 100)
	if _, err := w.Spawn(NewBody(mgl64.Vec2{}, Circle(1), -1)); !errors.Is(err, ErrInvalidMass) {
		t.Errorf("Spawn() error = %v, expected ErrInvalidMass", err)
	}
	if w.Len() != 0 {
		t.Error("invalid body should not be added")
	}
}
