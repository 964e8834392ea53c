// Package interact selects the single object an actor is facing ("hot
// item") among enabled interactables within a forward cone and range.
package interact

import "github.com/go-gl/mathgl/mgl64"

// Flags is the interactable state of an object.
type Flags struct {
	Enabled bool // eligible for targeting
	Hot     bool // currently targeted
}

// Interactor holds the current target of an actor.
type Interactor[ID comparable] struct {
	Hot    ID
	HasHot bool
}

// Clear forgets the current target without touching its flags.
func (in *Interactor[ID]) Clear() {
	var zero ID
	in.Hot = zero
	in.HasHot = false
}

// Source enumerates interactables. Flags returns nil for objects that no
// longer exist.
type Source[ID comparable] interface {
	Flags(id ID) *Flags
	Each(visit func(id ID, pos mgl64.Vec2, flags *Flags))
}

// Targeter runs hot-item selection with a fixed range.
type Targeter[ID comparable] struct {
	Range float64
}

// Update retargets in for the actor self located at origin and facing
// forward. The previous hot item is reset to enabled and not hot. A
// candidate is selected when its alignment dot(forward, direction) is the
// highest seen and positive; equal alignment prefers the closer one.
// Returns the new target, if any.
func (t Targeter[ID]) Update(self ID, in *Interactor[ID], origin, forward mgl64.Vec2, src Source[ID]) (ID, bool) {
	if in.HasHot {
		if f := src.Flags(in.Hot); f != nil {
			f.Hot = false
			f.Enabled = true
		}
		in.Clear()
	}

	if forward.LenSqr() == 0 {
		return in.Hot, false
	}
	forward = forward.Normalize()

	bestDot := 0.0
	bestDist := -1.0
	var best ID
	found := false

	src.Each(func(id ID, pos mgl64.Vec2, flags *Flags) {
		if id == self || flags == nil || !flags.Enabled {
			return
		}
		toItem := pos.Sub(origin)
		dist := toItem.Len()
		if dist > t.Range || dist == 0 {
			return
		}

		dot := forward.Dot(toItem.Mul(1 / dist))
		switch {
		case dot > bestDot:
		case dot == bestDot && dot > 0 && dist < bestDist:
		default:
			return
		}
		bestDot = dot
		bestDist = dist
		best = id
		found = true
	})

	if !found {
		return in.Hot, false
	}
	in.Hot = best
	in.HasHot = true
	if f := src.Flags(best); f != nil {
		f.Hot = true
	}
	return best, true
}

// Item is a positioned interactable for slice-backed sources.
type Item[ID comparable] struct {
	ID       ID
	Position mgl64.Vec2
	Flags    Flags
}

// Items is a Source over a slice.
type Items[ID comparable] []*Item[ID]

func (s Items[ID]) Flags(id ID) *Flags {
	for _, it := range s {
		if it.ID == id {
			return &it.Flags
		}
	}
	return nil
}

func (s Items[ID]) Each(visit func(id ID, pos mgl64.Vec2, flags *Flags)) {
	for _, it := range s {
		visit(it.ID, it.Position, &it.Flags)
	}
}
