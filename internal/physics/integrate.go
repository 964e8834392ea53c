package physics

import "github.com/go-gl/mathgl/mgl64"

// Integrate advances a body by dt using semi-implicit Euler:
//
//	v += a*dt
//	v -= v*friction*invMass*dt
//	x += v*dt
//
// Static bodies are skipped.
func Integrate(b *Body, dt, friction float64) {
	if b.Static() {
		return
	}
	b.Velocity = b.Velocity.Add(b.Acceleration.Mul(dt))
	b.Velocity = b.Velocity.Sub(b.Velocity.Mul(friction * b.InvMass * dt))
	b.Position = b.Position.Add(b.Velocity.Mul(dt))
}

// SettleBelow zeroes the velocity of a body moving slower than threshold.
// Returns true if the body was brought to rest.
func SettleBelow(b *Body, threshold float64) bool {
	if threshold <= 0 || b.Velocity.Len() > threshold {
		return false
	}
	if b.Velocity == (mgl64.Vec2{}) {
		return false
	}
	b.Velocity = mgl64.Vec2{}
	return true
}

// BounceWalls reflects the velocity component of a body whose bounding box
// touches an edge of the [0,width]x[0,height] world while moving into it.
// Returns true if any component was reflected.
func BounceWalls(b *Body, width, height float64) bool {
	if b.Static() {
		return false
	}
	e := b.Shape.Extent()
	bounced := false
	x, y := b.Position.X(), b.Position.Y()
	vx, vy := b.Velocity.X(), b.Velocity.Y()

	if (x+e >= width && vx > 0) || (x-e <= 0 && vx < 0) {
		vx = -vx
		bounced = true
	}
	if (y+e >= height && vy > 0) || (y-e <= 0 && vy < 0) {
		vy = -vy
		bounced = true
	}
	b.Velocity = mgl64.Vec2{vx, vy}
	return bounced
}
