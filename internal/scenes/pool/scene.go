// Package pool is a frictional pool table: one cue ball and a triangular
// rack. The cue can only be shot once every ball has come to rest.
package pool

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-cafe/internal/broadphase"
	"github.com/vovakirdan/tui-cafe/internal/config"
	"github.com/vovakirdan/tui-cafe/internal/core"
	"github.com/vovakirdan/tui-cafe/internal/physics"
	"github.com/vovakirdan/tui-cafe/internal/registry"
	"github.com/vovakirdan/tui-cafe/internal/scenes"
)

const (
	powerStep = 0.1
	minPower  = 0.1
)

// Scene implements registry.Scene.
type Scene struct {
	cfg      config.Sim
	runtime  core.RuntimeConfig
	world    *physics.World
	phase    broadphase.Phase
	resolver physics.Resolver
	colors   map[physics.BodyID]core.Color
	cue      physics.BodyID

	aim     float64 // radians, 0 points along +x
	power   float64 // fraction of shot_speed
	shots   int
	tick    uint64
	paused  bool
	last    broadphase.Stats
	initErr error
}

// New creates a racked table.
func New(cfg config.Sim) *Scene {
	s := &Scene{cfg: cfg}
	s.Reset(core.DefaultConfig())
	return s
}

// ID returns the unique identifier for this scene.
func (s *Scene) ID() string {
	return "pool"
}

// Title returns the display name for this scene.
func (s *Scene) Title() string {
	return "311 Sports Lounge"
}

// Reset re-racks the table. Elasticity goes back to fully elastic.
func (s *Scene) Reset(rc core.RuntimeConfig) {
	p := s.cfg.Pool
	s.runtime = rc
	s.world = physics.NewWorld(p.Width, p.Height)
	s.resolver = physics.Resolver{Restitution: 1}
	s.colors = make(map[physics.BodyID]core.Color)
	s.aim = 0
	s.power = 1
	s.shots = 0
	s.tick = 0
	s.paused = false
	s.last = broadphase.Stats{}
	s.initErr = nil

	var err error
	s.phase, err = broadphase.NewGrid(p.Width, p.Height, max(s.cfg.Grid.CellSize, 2*p.Radius))
	if err != nil {
		s.phase = broadphase.NewBruteForce()
	}

	if err := s.rack(scenes.NewRand(rc.Seed).IntN); err != nil {
		s.initErr = err
	}
}

// rack places the cue ball a quarter of the way along the table and the
// remaining balls in a triangle whose apex sits at the center.
func (s *Scene) rack(pick func(int) int) error {
	p := s.cfg.Pool
	center := mgl64.Vec2{p.Width / 2, p.Height / 2}

	cue, err := s.world.Spawn(physics.NewBody(mgl64.Vec2{p.Width / 4, center.Y()}, physics.Circle(p.Radius), p.Mass))
	if err != nil {
		return fmt.Errorf("pool: cue ball: %w", err)
	}
	s.cue = cue.ID
	s.colors[cue.ID] = core.ColorBrightWhite

	// Horizontal distance between touching rows.
	dx := math.Sqrt(3) * p.Radius
	placed := 1
	for row := 0; placed < p.Balls; row++ {
		for j := 0; j <= row && placed < p.Balls; j++ {
			pos := mgl64.Vec2{
				center.X() + float64(row)*dx,
				center.Y() + (float64(j)-float64(row)/2)*2*p.Radius,
			}
			b, err := s.world.Spawn(physics.NewBody(pos, physics.Circle(p.Radius), p.Mass))
			if err != nil {
				return fmt.Errorf("pool: ball %d: %w", placed, err)
			}
			s.colors[b.ID] = scenes.Palette[pick(len(scenes.Palette))]
			placed++
		}
	}
	return nil
}

// World exposes the simulation context.
func (s *Scene) World() *physics.World { return s.world }

// Cue returns the cue ball.
func (s *Scene) Cue() *physics.Body { return s.world.Get(s.cue) }

// Elastic reports whether collisions are fully elastic.
func (s *Scene) Elastic() bool { return s.resolver.Restitution == 1 }

// Aim returns the unit vector the next shot will travel along.
func (s *Scene) Aim() mgl64.Vec2 {
	return mgl64.Vec2{math.Cos(s.aim), math.Sin(s.aim)}
}

// Shoot launches the cue ball along the aim. Nothing happens while any ball
// is still moving.
func (s *Scene) Shoot() bool {
	cue := s.Cue()
	if cue == nil || !s.world.Resting() {
		return false
	}
	cue.Velocity = s.Aim().Mul(s.cfg.Pool.ShotSpeed * s.power)
	s.shots++
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
	if s.paused {
		return core.StepResult{State: s.State()}
	}

	if in.Has(core.ActionToggle) {
		s.resolver.Restitution = 1 - s.resolver.Restitution
	}
	if in.Has(core.ActionLeft) {
		s.aim -= s.cfg.Pool.AimStep
	}
	if in.Has(core.ActionRight) {
		s.aim += s.cfg.Pool.AimStep
	}
	if in.Has(core.ActionUp) {
		s.power = min(s.power+powerStep, 1)
	}
	if in.Has(core.ActionDown) {
		s.power = max(s.power-powerStep, minPower)
	}
	if in.Has(core.ActionSpawn) {
		s.Shoot()
	}

	dt := s.cfg.Physics.Timestep
	for _, b := range s.world.Bodies() {
		physics.Integrate(b, dt, s.cfg.Pool.Friction)
		physics.SettleBelow(b, s.cfg.Pool.RestSpeed)
	}
	s.world.BounceWalls()
	s.last = broadphase.Step(s.phase, s.world.Bodies(), s.resolver)
	s.tick++

	return core.StepResult{
		State:      s.State(),
		Pairs:      s.last.PairsTested,
		Collisions: s.last.Collisions,
	}
}

// State returns the current scene state. The score is the number of shots
// taken, so lower is better.
func (s *Scene) State() core.SceneState {
	return core.SceneState{
		Score:  s.shots,
		Paused: s.paused,
	}
}

// Snapshot captures every ball.
func (s *Scene) Snapshot() core.Snapshot {
	return core.Snapshot{
		SceneID: s.ID(),
		Tick:    s.tick,
		Score:   s.shots,
		Bodies:  scenes.BodyStates(s.world.Bodies()),
	}
}

// Render draws the table, the aiming line and the balls.
func (s *Scene) Render(dst *core.Screen) {
	vp := core.NewViewport(scenes.PlayArea(dst), s.world.Width, s.world.Height)
	scenes.DrawBounds(dst, vp, s.world.Width, s.world.Height)

	resting := s.world.Resting()
	if cue := s.Cue(); cue != nil && resting {
		dir := s.Aim()
		r := cue.Shape.Radius
		for k := 1; k <= 8; k++ {
			d := r + float64(k)*s.power*s.cfg.Pool.ShotSpeed/20
			x, y := vp.ToScreen(cue.Position.Add(dir.Mul(d)))
			dst.SetColor(x, y, '·', core.ColorWhite)
		}
	}
	for _, b := range s.world.Bodies() {
		scenes.DrawBody(dst, vp, b, s.colors[b.ID])
	}

	e := 0
	if s.Elastic() {
		e = 1
	}
	header := fmt.Sprintf(" %s  shots:%d  power:%3.0f%%  elasticity:%d", s.Title(), s.shots, s.power*100, e)
	if resting {
		header += "  ready"
	}
	if s.paused {
		header += "  [PAUSED]"
	}
	if s.initErr != nil {
		header += "  " + s.initErr.Error()
	}
	dst.DrawTextColor(0, 0, header, core.ColorBrightWhite)
	dst.DrawTextColor(0, dst.Height()-1, " [←/→] aim  [↑/↓] power  [space] shoot  [t] elasticity  [r] rack  [b] menu", core.ColorGray)
}

func init() {
	registry.Register("pool", func(cfg config.Sim) registry.Scene {
		return New(cfg)
	})
}
