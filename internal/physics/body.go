// Package physics provides the rigid-body model shared by every scene:
// circle and square bodies, impulse-based collision response and a
// fixed-timestep integrator. It contains no rendering or terminal code.
package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrInvalidMass is returned when a body is created with a mass that
	// would produce an undefined or negative inverse mass.
	ErrInvalidMass = errors.New("physics: invalid mass")

	// ErrInvalidShape is returned for shapes with a non-positive or
	// non-finite extent.
	ErrInvalidShape = errors.New("physics: invalid shape")
)

// ShapeKind selects the collision geometry of a body.
type ShapeKind uint8

const (
	ShapeCircle ShapeKind = iota
	ShapeSquare           // axis-aligned square
)

// String returns a human-readable name for the shape kind.
func (k ShapeKind) String() string {
	switch k {
	case ShapeCircle:
		return "circle"
	case ShapeSquare:
		return "square"
	default:
		return "unknown"
	}
}

// Shape describes a body's geometry. Radius is used by circles and
// HalfSize by squares.
type Shape struct {
	Kind     ShapeKind
	Radius   float64
	HalfSize float64
}

// Circle returns a circle shape with the given radius.
func Circle(radius float64) Shape {
	return Shape{Kind: ShapeCircle, Radius: radius}
}

// Square returns an axis-aligned square shape with the given half side length.
func Square(halfSize float64) Shape {
	return Shape{Kind: ShapeSquare, HalfSize: halfSize}
}

// Extent returns the half-width of the shape's bounding box.
func (s Shape) Extent() float64 {
	if s.Kind == ShapeSquare {
		return s.HalfSize
	}
	return s.Radius
}

func (s Shape) validate() error {
	e := s.Extent()
	if s.Kind > ShapeSquare || math.IsNaN(e) || math.IsInf(e, 0) || e <= 0 {
		return fmt.Errorf("%w: %s extent %v", ErrInvalidShape, s.Kind, e)
	}
	return nil
}

// BodyID identifies a body for its whole lifetime inside a World.
// IDs are never reused, so stale references can be detected.
type BodyID uint64

// Body is a single rigid body. A body with InvMass == 0 is static: it never
// moves and collision response never changes its velocity.
type Body struct {
	ID           BodyID
	Position     mgl64.Vec2 // center
	Velocity     mgl64.Vec2
	Acceleration mgl64.Vec2
	Mass         float64
	InvMass      float64
	Shape        Shape
}

// NewBody creates a dynamic body. Mass must be positive and finite.
func NewBody(pos mgl64.Vec2, shape Shape, mass float64) (*Body, error) {
	if err := shape.validate(); err != nil {
		return nil, err
	}
	if math.IsNaN(mass) || math.IsInf(mass, 0) || mass <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMass, mass)
	}
	return &Body{
		Position: pos,
		Mass:     mass,
		InvMass:  1 / mass,
		Shape:    shape,
	}, nil
}

// NewStatic creates an immovable body (inverse mass 0).
func NewStatic(pos mgl64.Vec2, shape Shape) (*Body, error) {
	if err := shape.validate(); err != nil {
		return nil, err
	}
	return &Body{
		Position: pos,
		Shape:    shape,
	}, nil
}

// Static reports whether the body is immovable.
func (b *Body) Static() bool {
	return b.InvMass == 0
}

// AABB returns the top-left and bottom-right corners of the body's
// axis-aligned bounding box.
func (b *Body) AABB() (topLeft, bottomRight mgl64.Vec2) {
	e := b.Shape.Extent()
	return mgl64.Vec2{b.Position.X() - e, b.Position.Y() - e},
		mgl64.Vec2{b.Position.X() + e, b.Position.Y() + e}
}

// Speed returns the magnitude of the body's velocity.
func (b *Body) Speed() float64 {
	return b.Velocity.Len()
}

// KineticEnergy returns 1/2 m v^2, or 0 for static bodies.
func (b *Body) KineticEnergy() float64 {
	if b.Static() {
		return 0
	}
	return 0.5 * b.Mass * b.Velocity.LenSqr()
}

// Momentum returns m*v, or the zero vector for static bodies.
func (b *Body) Momentum() mgl64.Vec2 {
	if b.Static() {
		return mgl64.Vec2{}
	}
	return b.Velocity.Mul(b.Mass)
}
