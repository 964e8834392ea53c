package physics

import "fmt"

// World is the simulation context for a scene: the live body list and the
// world bounds. It is owned by the caller and passed explicitly to every
// system; there is no package-level state.
type World struct {
	Width  float64
	Height float64

	bodies []*Body
	nextID BodyID
}

// NewWorld creates an empty world with the given bounds.
func NewWorld(width, height float64) *World {
	return &World{
		Width:  width,
		Height: height,
		nextID: 1,
	}
}

// Add assigns a fresh ID to b and appends it to the body list.
func (w *World) Add(b *Body) BodyID {
	b.ID = w.nextID
	w.nextID++
	w.bodies = append(w.bodies, b)
	return b.ID
}

// Spawn validates and adds a dynamic body in one call.
func (w *World) Spawn(b *Body, err error) (*Body, error) {
	if err != nil {
		return nil, fmt.Errorf("physics: spawn: %w", err)
	}
	w.Add(b)
	return b, nil
}

// Remove deletes the body with the given ID, preserving the order of the
// remaining bodies. Returns false if no such body exists.
func (w *World) Remove(id BodyID) bool {
	for i, b := range w.bodies {
		if b.ID == id {
			copy(w.bodies[i:], w.bodies[i+1:])
			w.bodies[len(w.bodies)-1] = nil
			w.bodies = w.bodies[:len(w.bodies)-1]
			return true
		}
	}
	return false
}

// Get returns the body with the given ID, or nil.
func (w *World) Get(id BodyID) *Body {
	for _, b := range w.bodies {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// Bodies returns the live body list. The slice must not be retained across
// a call to Add or Remove.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// Len returns the number of live bodies.
func (w *World) Len() int {
	return len(w.bodies)
}

// Clear removes every body. IDs keep increasing.
func (w *World) Clear() {
	clear(w.bodies)
	w.bodies = w.bodies[:0]
}

// Integrate advances every body by dt.
func (w *World) Integrate(dt, friction float64) {
	for _, b := range w.bodies {
		Integrate(b, dt, friction)
	}
}

// BounceWalls reflects every body off the world edges.
func (w *World) BounceWalls() {
	for _, b := range w.bodies {
		BounceWalls(b, w.Width, w.Height)
	}
}

// Resting reports whether every dynamic body has zero velocity.
func (w *World) Resting() bool {
	for _, b := range w.bodies {
		if !b.Static() && b.Speed() > 0 {
			return false
		}
	}
	return true
}
