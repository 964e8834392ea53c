// Package balls is the spawn-on-key ball toy used to compare broad phases.
// Every press of the spawn key drops a batch of small balls into a walled
// box; every Nth press drops one heavy ball instead.
package balls

import (
	"fmt"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-cafe/internal/broadphase"
	"github.com/vovakirdan/tui-cafe/internal/config"
	"github.com/vovakirdan/tui-cafe/internal/core"
	"github.com/vovakirdan/tui-cafe/internal/physics"
	"github.com/vovakirdan/tui-cafe/internal/registry"
	"github.com/vovakirdan/tui-cafe/internal/scenes"
)

// Mode selects the broad phase.
type Mode int

const (
	ModeBrute    Mode = iota // all pairs
	ModeGrid                 // uniform grid
	ModeQuadtree             // quadtree
)

func (m Mode) phaseName() string {
	switch m {
	case ModeGrid:
		return "grid"
	case ModeQuadtree:
		return "quadtree"
	default:
		return "brute"
	}
}

// Scene implements registry.Scene.
type Scene struct {
	mode     Mode
	cfg      config.Sim
	runtime  core.RuntimeConfig
	rng      *rand.Rand
	world    *physics.World
	phase    broadphase.Phase
	resolver physics.Resolver
	colors   map[physics.BodyID]core.Color

	presses  int
	tick     uint64
	paused   bool
	overlay  bool
	last     broadphase.Stats
	phaseErr error
}

// New creates a ball scene using the given broad phase.
func New(cfg config.Sim, mode Mode) *Scene {
	s := &Scene{mode: mode, cfg: cfg}
	s.Reset(core.DefaultConfig())
	return s
}

// ID returns the unique identifier for this scene.
func (s *Scene) ID() string {
	switch s.mode {
	case ModeGrid:
		return "balls_grid"
	case ModeQuadtree:
		return "balls_quadtree"
	default:
		return "balls"
	}
}

// Title returns the display name for this scene.
func (s *Scene) Title() string {
	switch s.mode {
	case ModeGrid:
		return "Balls (Uniform Grid)"
	case ModeQuadtree:
		return "Balls (Quadtree)"
	default:
		return "Balls (Brute Force)"
	}
}

// Reset clears every ball and rebuilds the broad phase.
func (s *Scene) Reset(rc core.RuntimeConfig) {
	s.runtime = rc
	s.rng = scenes.NewRand(rc.Seed)
	s.world = physics.NewWorld(s.cfg.World.Width, s.cfg.World.Height)
	s.resolver = physics.Resolver{Restitution: s.cfg.Balls.Restitution}
	s.colors = make(map[physics.BodyID]core.Color)
	s.presses = 0
	s.tick = 0
	s.paused = false
	s.last = broadphase.Stats{}

	s.phase, s.phaseErr = broadphase.New(s.mode.phaseName(), broadphase.Options{
		Width:       s.cfg.World.Width,
		Height:      s.cfg.World.Height,
		CellSize:    s.cfg.Grid.CellSize,
		MinHalfSize: s.cfg.Quadtree.MinHalfSize,
	})
	if s.phaseErr != nil {
		s.phase = broadphase.NewBruteForce()
	}
}

// World exposes the simulation context.
func (s *Scene) World() *physics.World { return s.world }

// Phase exposes the active broad phase.
func (s *Scene) Phase() broadphase.Phase { return s.phase }

// Spawn adds one press worth of balls. Returns how many were added.
func (s *Scene) Spawn() int {
	b := s.cfg.Balls
	s.presses++

	if b.BigEvery > 0 && s.presses%b.BigEvery == 0 {
		if s.spawnBall(b.BigRadius, b.BigMass) {
			return 1
		}
		return 0
	}

	n := 0
	for i := 0; i < b.PerPress; i++ {
		if s.spawnBall(scenes.RandRange(s.rng, b.MinRadius, b.MaxRadius), 1) {
			n++
		}
	}
	return n
}

func (s *Scene) spawnBall(radius, mass float64) bool {
	if s.cfg.Balls.MaxBalls > 0 && s.world.Len() >= s.cfg.Balls.MaxBalls {
		return false
	}
	w, h := s.world.Width, s.world.Height
	pos := mgl64.Vec2{
		scenes.RandRange(s.rng, radius, w-radius),
		scenes.RandRange(s.rng, radius, h-radius),
	}
	v := s.cfg.Balls.MaxSpeed
	body, err := s.world.Spawn(physics.NewBody(pos, physics.Circle(radius), mass))
	if err != nil {
		return false
	}
	body.Velocity = mgl64.Vec2{
		scenes.RandRange(s.rng, -v, v),
		scenes.RandRange(s.rng, -v, v),
	}
	s.colors[body.ID] = scenes.Palette[s.rng.IntN(len(scenes.Palette))]
	return true
}

// Step advances the simulation by one fixed timestep.
func (s *Scene) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) {
		s.Reset(s.runtime)
		return core.StepResult{State: s.State()}
	}
	if in.Has(core.ActionPause) {
		s.paused = !s.paused
	}
	if in.Has(core.ActionToggle) {
		s.overlay = !s.overlay
	}
	if s.paused {
		return core.StepResult{State: s.State()}
	}
	if in.Has(core.ActionSpawn) {
		s.Spawn()
	}

	s.world.Integrate(s.cfg.Physics.Timestep, s.cfg.Balls.Friction)
	s.world.BounceWalls()
	s.last = broadphase.Step(s.phase, s.world.Bodies(), s.resolver)
	s.tick++

	return core.StepResult{
		State:      s.State(),
		Pairs:      s.last.PairsTested,
		Collisions: s.last.Collisions,
	}
}

// State returns the current scene state. The score is the ball count.
func (s *Scene) State() core.SceneState {
	return core.SceneState{
		Score:  s.world.Len(),
		Paused: s.paused,
	}
}

// Snapshot captures every ball.
func (s *Scene) Snapshot() core.Snapshot {
	return core.Snapshot{
		SceneID: s.ID(),
		Tick:    s.tick,
		Score:   s.world.Len(),
		Bodies:  scenes.BodyStates(s.world.Bodies()),
	}
}

// Render draws the box, the optional broad-phase overlay and the balls.
func (s *Scene) Render(dst *core.Screen) {
	vp := core.NewViewport(scenes.PlayArea(dst), s.world.Width, s.world.Height)

	if s.overlay {
		s.renderOverlay(dst, vp)
	}
	scenes.DrawBounds(dst, vp, s.world.Width, s.world.Height)

	for _, b := range s.world.Bodies() {
		scenes.DrawBody(dst, vp, b, s.colors[b.ID])
	}

	header := fmt.Sprintf(" %s  balls:%d  pairs:%d  hits:%d", s.Title(), s.world.Len(),
		s.last.PairsTested, s.last.Collisions)
	if s.paused {
		header += "  [PAUSED]"
	}
	if s.phaseErr != nil {
		header += "  " + s.phaseErr.Error()
	}
	dst.DrawTextColor(0, 0, header, core.ColorBrightWhite)
	dst.DrawTextColor(0, dst.Height()-1, " [space] spawn  [t] overlay  [p] pause  [r] reset  [b] menu  [q] quit", core.ColorGray)
}

func (s *Scene) renderOverlay(dst *core.Screen, vp core.Viewport) {
	switch p := s.phase.(type) {
	case *broadphase.Grid:
		for _, c := range p.ActiveCells() {
			dst.DrawBox(vp.RectOf(c.Min, c.Max), core.ColorGray)
		}
	case *broadphase.Quadtree:
		nodes := p.Nodes()
		for _, idx := range p.ActiveNodes() {
			n := nodes[idx]
			h := mgl64.Vec2{n.Half, n.Half}
			dst.DrawBox(vp.RectOf(n.Center.Sub(h), n.Center.Add(h)), core.ColorGray)
		}
	}
}

func init() {
	registry.Register("balls", func(cfg config.Sim) registry.Scene {
		return New(cfg, ModeBrute)
	})
	registry.Register("balls_grid", func(cfg config.Sim) registry.Scene {
		return New(cfg, ModeGrid)
	})
	registry.Register("balls_quadtree", func(cfg config.Sim) registry.Scene {
		return New(cfg, ModeQuadtree)
	})
}
