package interact

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func item(id string, x, y float64) *Item[string] {
	return &Item[string]{ID: id, Position: mgl64.Vec2{x, y}, Flags: Flags{Enabled: true}}
}

func TestTargetingScenario(t *testing.T) {
	items := Items[string]{
		item("A", 0, 50),
		item("B", 0, 30),
		item("C", 50, 0),
	}
	tg := Targeter[string]{Range: 75}
	var in Interactor[string]

	got, ok := tg.Update("player", &in, mgl64.Vec2{}, mgl64.Vec2{0, 1}, items)
	if !ok || got != "B" {
		t.Fatalf("Update() = %q, %v; expected B", got, ok)
	}
	if !items.Flags("B").Hot {
		t.Error("B should be hot")
	}
	if items.Flags("A").Hot || items.Flags("C").Hot {
		t.Error("only the target should be hot")
	}
}

func TestTargetingIgnoresBehindAndSide(t *testing.T) {
	tests := []struct {
		name string
		pos  mgl64.Vec2
	}{
		{"perpendicular", mgl64.Vec2{50, 0}},
		{"behind", mgl64.Vec2{0, -10}},
		{"out of range", mgl64.Vec2{0, 76}},
		{"on top of actor", mgl64.Vec2{0, 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			items := Items[string]{item("X", tc.pos.X(), tc.pos.Y())}
			var in Interactor[string]
			if _, ok := (Targeter[string]{Range: 75}).Update("p", &in, mgl64.Vec2{}, mgl64.Vec2{0, 1}, items); ok {
				t.Error("candidate should not be selected")
			}
			if in.HasHot {
				t.Error("interactor should have no target")
			}
		})
	}
}

func TestTargetingPrefersAlignment(t *testing.T) {
	// The farther item is straight ahead; the closer one is off-axis.
	items := Items[string]{
		item("near", 20, 20),
		item("ahead", 0, 60),
	}
	var in Interactor[string]
	got, _ := (Targeter[string]{Range: 75}).Update("p", &in, mgl64.Vec2{}, mgl64.Vec2{0, 5}, items)
	if got != "ahead" {
		t.Errorf("Update() = %q, expected ahead", got)
	}
}

func TestTargetingDeterministicAndDistanceTieBreak(t *testing.T) {
	items := Items[string]{
		item("far", 0, 60),
		item("mid", 0, 40),
	}
	tg := Targeter[string]{Range: 75}
	var in Interactor[string]

	for i := 0; i < 5; i++ {
		got, _ := tg.Update("p", &in, mgl64.Vec2{}, mgl64.Vec2{0, 1}, items)
		if got != "mid" {
			t.Fatalf("iteration %d: Update() = %q, expected mid", i, got)
		}
	}

	items[0].Position = mgl64.Vec2{0, 10}
	got, _ := tg.Update("p", &in, mgl64.Vec2{}, mgl64.Vec2{0, 1}, items)
	if got != "far" {
		t.Errorf("after moving closer: Update() = %q, expected far", got)
	}
	if items[1].Flags.Hot {
		t.Error("previous target should no longer be hot")
	}
}

func TestTargetingSkipsSelfAndDisabled(t *testing.T) {
	items := Items[string]{
		item("p", 0, 10),
		item("off", 0, 20),
		item("on", 0, 40),
	}
	items[1].Flags.Enabled = false

	var in Interactor[string]
	got, _ := (Targeter[string]{Range: 75}).Update("p", &in, mgl64.Vec2{}, mgl64.Vec2{0, 1}, items)
	if got != "on" {
		t.Errorf("Update() = %q, expected on", got)
	}
}

func TestTargetingResetsPreviousHot(t *testing.T) {
	items := Items[string]{item("A", 0, 30)}
	tg := Targeter[string]{Range: 75}
	var in Interactor[string]

	tg.Update("p", &in, mgl64.Vec2{}, mgl64.Vec2{0, 1}, items)

	// A caller disables the hot item (e.g. it was picked up), then the
	// actor turns away.
	items[0].Flags.Enabled = false
	if _, ok := tg.Update("p", &in, mgl64.Vec2{}, mgl64.Vec2{0, -1}, items); ok {
		t.Error("nothing should be targeted facing away")
	}
	if items[0].Flags.Hot || !items[0].Flags.Enabled {
		t.Errorf("previous hot item flags = %+v, expected enabled and not hot", items[0].Flags)
	}
}

func TestTargetingToleratesRemovedHot(t *testing.T) {
	items := Items[string]{item("A", 0, 30)}
	tg := Targeter[string]{Range: 75}
	var in Interactor[string]
	tg.Update("p", &in, mgl64.Vec2{}, mgl64.Vec2{0, 1}, items)

	if _, ok := tg.Update("p", &in, mgl64.Vec2{}, mgl64.Vec2{0, 1}, Items[string]{}); ok {
		t.Error("empty source should yield no target")
	}
	if in.HasHot {
		t.Error("interactor should be cleared")
	}
}

func TestTargetingZeroForward(t *testing.T) {
	items := Items[string]{item("A", 0, 30)}
	var in Interactor[string]
	if _, ok := (Targeter[string]{Range: 75}).Update("p", &in, mgl64.Vec2{}, mgl64.Vec2{}, items); ok {
		t.Error("zero facing should select nothing")
	}
}
