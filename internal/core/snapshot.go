package core

import "math"

// KindPoint is the BodyState kind of an entry without a collision shape.
// Circles and squares carry their physics shape kind (0 and 1).
const KindPoint uint8 = 2

// BodyState is the serializable state of one body.
type BodyState struct {
	ID     uint64  `msgpack:"id"`
	Kind   uint8   `msgpack:"kind"`
	X      float64 `msgpack:"x"`
	Y      float64 `msgpack:"y"`
	VX     float64 `msgpack:"vx"`
	VY     float64 `msgpack:"vy"`
	Extent float64 `msgpack:"extent"`
	Mass   float64 `msgpack:"mass"`
}

// Snapshot captures a scene at a given step for replay checks and dumps.
type Snapshot struct {
	SceneID string      `msgpack:"scene"`
	Tick    uint64      `msgpack:"tick"`
	Score   int         `msgpack:"score"`
	Bodies  []BodyState `msgpack:"bodies"`
}

// Hash returns a rolling hash over every field, for comparing runs.
func (s Snapshot) Hash() uint64 {
	var h uint64 = 17
	for _, r := range s.SceneID {
		h = h*31 + uint64(r)
	}
	h = h*31 + s.Tick
	h = h*31 + uint64(int64(s.Score))
	for _, b := range s.Bodies {
		h = h*31 + b.ID
		h = h*31 + uint64(b.Kind)
		for _, f := range [...]float64{b.X, b.Y, b.VX, b.VY, b.Extent, b.Mass} {
			h = h*31 + math.Float64bits(f)
		}
	}
	return h
}
