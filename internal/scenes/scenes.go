// Package scenes holds drawing and snapshot helpers shared by the scene
// packages under it.
package scenes

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-cafe/internal/core"
	"github.com/vovakirdan/tui-cafe/internal/physics"
)

// Palette is the set of colors bodies are drawn with.
var Palette = []core.Color{
	core.ColorRed,
	core.ColorGreen,
	core.ColorYellow,
	core.ColorBlue,
	core.ColorMagenta,
	core.ColorCyan,
	core.ColorOrange,
	core.ColorBrightGreen,
	core.ColorBrightBlue,
	core.ColorBrightMagenta,
}

// NewRand returns a deterministic generator for seed.
func NewRand(seed int64) *rand.Rand {
	s := uint64(seed)
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

// RandRange returns a uniform value in [lo, hi).
func RandRange(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// BodyStates converts bodies to their serializable form.
func BodyStates(bodies []*physics.Body) []core.BodyState {
	out := make([]core.BodyState, len(bodies))
	for i, b := range bodies {
		out[i] = BodyState(b)
	}
	return out
}

// BodyState converts a single body.
func BodyState(b *physics.Body) core.BodyState {
	return core.BodyState{
		ID:     uint64(b.ID),
		Kind:   uint8(b.Shape.Kind),
		X:      b.Position.X(),
		Y:      b.Position.Y(),
		VX:     b.Velocity.X(),
		VY:     b.Velocity.Y(),
		Extent: b.Shape.Extent(),
		Mass:   b.Mass,
	}
}

// Glyph picks a rune for a body by its on-screen size.
func Glyph(b *physics.Body, vp core.Viewport) rune {
	if b.Shape.Kind == physics.ShapeSquare {
		return '■'
	}
	if b.Shape.Radius*vp.Scale() >= 1.5 {
		return '●'
	}
	return '•'
}

// DrawBody plots a body at its center. Bodies covering several cells are
// filled.
func DrawBody(dst *core.Screen, vp core.Viewport, b *physics.Body, c core.Color) {
	e := b.Shape.Extent()
	if e*vp.Scale() >= 2 {
		r := vp.RectOf(b.Position.Sub(mgl64.Vec2{e, e}), b.Position.Add(mgl64.Vec2{e, e}))
		fill := '█'
		if b.Shape.Kind == physics.ShapeCircle {
			fill = '▓'
		}
		dst.DrawRect(r, fill, c)
		return
	}
	x, y := vp.ToScreen(b.Position)
	dst.SetColor(x, y, Glyph(b, vp), c)
}

// DrawBounds outlines the world.
func DrawBounds(dst *core.Screen, vp core.Viewport, w, h float64) {
	r := vp.RectOf(mgl64.Vec2{0, 0}, mgl64.Vec2{w, h})
	r.W++
	r.H++
	dst.DrawBox(r, core.ColorGray)
}

// PlayArea returns the screen region below a one-line header and above a
// one-line footer.
func PlayArea(dst *core.Screen) core.Rect {
	return core.NewRect(0, 1, dst.Width()-1, max(dst.Height()-3, 1))
}
