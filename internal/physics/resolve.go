package physics

import "github.com/go-gl/mathgl/mgl64"

// Resolver applies impulse-based collision response. It is the single
// narrow phase used by every broad phase.
type Resolver struct {
	// Restitution is the elasticity coefficient e: 0 is perfectly
	// inelastic, 1 is perfectly elastic.
	Restitution float64
}

// Resolve dispatches on the shapes of a and b and applies the impulse if
// the pair overlaps and is approaching. Square-square pairs are ignored.
// Returns true if an impulse was applied.
func (r Resolver) Resolve(a, b *Body) bool {
	if a.Static() && b.Static() {
		return false
	}
	switch {
	case a.Shape.Kind == ShapeCircle && b.Shape.Kind == ShapeCircle:
		return r.ResolveCircles(a, b)
	case a.Shape.Kind == ShapeCircle && b.Shape.Kind == ShapeSquare:
		return r.ResolveCircleRect(a, b)
	case a.Shape.Kind == ShapeSquare && b.Shape.Kind == ShapeCircle:
		return r.ResolveCircleRect(b, a)
	}
	return false
}

// ResolveCircles resolves a circle-circle pair. The collision normal is
// centerA - centerB.
func (r Resolver) ResolveCircles(a, b *Body) bool {
	normal := a.Position.Sub(b.Position)
	if normal.Len() > a.Shape.Radius+b.Shape.Radius {
		return false
	}
	return r.applyImpulse(a, b, normal)
}

// ResolveCircleRect resolves a circle against an axis-aligned square. The
// normal runs from the closest point on the square to the circle center.
func (r Resolver) ResolveCircleRect(circle, rect *Body) bool {
	normal := circle.Position.Sub(ClosestPoint(circle.Position, rect))
	if normal.Len() > circle.Shape.Radius {
		return false
	}
	return r.applyImpulse(circle, rect, normal)
}

// ClosestPoint clamps p to the extents of the square body rect.
func ClosestPoint(p mgl64.Vec2, rect *Body) mgl64.Vec2 {
	h := rect.Shape.HalfSize
	return mgl64.Vec2{
		mgl64.Clamp(p.X(), rect.Position.X()-h, rect.Position.X()+h),
		mgl64.Clamp(p.Y(), rect.Position.Y()-h, rect.Position.Y()+h),
	}
}

// applyImpulse computes j = -(1+e)(n.vrel) / (|n|^2 (invA+invB)) and applies
// +j*n/mA to a and -j*n/mB to b. Static bodies are left untouched.
func (r Resolver) applyImpulse(a, b *Body, normal mgl64.Vec2) bool {
	rel := velocityOf(a).Sub(velocityOf(b))
	dot := normal.Dot(rel)
	if dot >= 0 {
		return false
	}

	invSum := a.InvMass + b.InvMass
	lenSq := normal.LenSqr()
	if invSum == 0 || lenSq == 0 {
		return false
	}

	impulse := -(1 + r.Restitution) * dot / (lenSq * invSum)

	if !a.Static() {
		a.Velocity = a.Velocity.Add(normal.Mul(impulse * a.InvMass))
	}
	if !b.Static() {
		b.Velocity = b.Velocity.Sub(normal.Mul(impulse * b.InvMass))
	}
	return true
}

func velocityOf(b *Body) mgl64.Vec2 {
	if b.Static() {
		return mgl64.Vec2{}
	}
	return b.Velocity
}
