// Package cafe is the "Random Cafe" restaurant scene. The player walks a
// barista around the counter, brews espresso, mixes drinks and serves
// seated customers before they lose patience. State lives in an ECS world;
// movement and collision go through the shared physics and broad-phase
// packages, and the interact key acts on the hot item picked by
// interact.Targeter.
package cafe

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/vovakirdan/tui-cafe/internal/broadphase"
	"github.com/vovakirdan/tui-cafe/internal/config"
	"github.com/vovakirdan/tui-cafe/internal/core"
	"github.com/vovakirdan/tui-cafe/internal/interact"
	"github.com/vovakirdan/tui-cafe/internal/physics"
	"github.com/vovakirdan/tui-cafe/internal/registry"
	"github.com/vovakirdan/tui-cafe/internal/scenes"
)

// holdWindow keeps a movement key "down" for this long after its last
// press. Terminals report key repeats, not key state.
const holdWindow = 0.25

type maps struct {
	position     *ecs.Map[Position]
	velocity     *ecs.Map[Velocity]
	acceleration *ecs.Map[Acceleration]
	mass         *ecs.Map[Mass]
	circle       *ecs.Map[Circle]
	square       *ecs.Map[Square]
	direction    *ecs.Map[Direction]
	interactable *ecs.Map[Interactable]
	interactor   *ecs.Map[Interactor]
	player       *ecs.Map[Player]
	holder       *ecs.Map[Holder]
	holdable     *ecs.Map[Holdable]
	placeable    *ecs.Map[Placeable]
	surface      *ecs.Map[Surface]
	dining       *ecs.Map[DiningTable]
	chair        *ecs.Map[Chair]
	drink        *ecs.Map[Drink]
	ingredient   *ecs.Map[Ingredient]
	stack        *ecs.Map[Stack]
	machine      *ecs.Map[Machine]
	timer        *ecs.Map[Timer]
	customer     *ecs.Map[Customer]
	payment      *ecs.Map[Payment]
}

func newMaps(w *ecs.World) maps {
	return maps{
		position:     ecs.NewMap[Position](w),
		velocity:     ecs.NewMap[Velocity](w),
		acceleration: ecs.NewMap[Acceleration](w),
		mass:         ecs.NewMap[Mass](w),
		circle:       ecs.NewMap[Circle](w),
		square:       ecs.NewMap[Square](w),
		direction:    ecs.NewMap[Direction](w),
		interactable: ecs.NewMap[Interactable](w),
		interactor:   ecs.NewMap[Interactor](w),
		player:       ecs.NewMap[Player](w),
		holder:       ecs.NewMap[Holder](w),
		holdable:     ecs.NewMap[Holdable](w),
		placeable:    ecs.NewMap[Placeable](w),
		surface:      ecs.NewMap[Surface](w),
		dining:       ecs.NewMap[DiningTable](w),
		chair:        ecs.NewMap[Chair](w),
		drink:        ecs.NewMap[Drink](w),
		ingredient:   ecs.NewMap[Ingredient](w),
		stack:        ecs.NewMap[Stack](w),
		machine:      ecs.NewMap[Machine](w),
		timer:        ecs.NewMap[Timer](w),
		customer:     ecs.NewMap[Customer](w),
		payment:      ecs.NewMap[Payment](w),
	}
}

type filters struct {
	interactables *ecs.Filter2[Position, Interactable]
	movers        *ecs.Filter4[Position, Velocity, Acceleration, Mass]
	colliders     *ecs.Filter4[Position, Velocity, Mass, Circle]
	fixtures      *ecs.Filter3[Position, Mass, Square]
	timers        *ecs.Filter1[Timer]
	customers     *ecs.Filter1[Customer]
	chairs        *ecs.Filter1[Chair]
	positions     *ecs.Filter1[Position]
}

func newFilters(w *ecs.World) filters {
	return filters{
		interactables: ecs.NewFilter2[Position, Interactable](w),
		movers:        ecs.NewFilter4[Position, Velocity, Acceleration, Mass](w),
		colliders:     ecs.NewFilter4[Position, Velocity, Mass, Circle](w),
		fixtures:      ecs.NewFilter3[Position, Mass, Square](w),
		timers:        ecs.NewFilter1[Timer](w),
		customers:     ecs.NewFilter1[Customer](w),
		chairs:        ecs.NewFilter1[Chair](w),
		positions:     ecs.NewFilter1[Position](w),
	}
}

// Scene implements registry.Scene.
type Scene struct {
	cfg      config.Sim
	runtime  core.RuntimeConfig
	rng      *rand.Rand
	world    *ecs.World
	m        maps
	f        filters
	player   ecs.Entity
	targeter interact.Targeter[ecs.Entity]
	pacing   *config.PacingManager

	phase    broadphase.Phase
	resolver physics.Resolver
	fixtures []*physics.Body
	bodies   []*physics.Body
	owners   []ecs.Entity
	last     broadphase.Stats

	thrust   mgl64.Vec2
	holdLeft float64

	tick      uint64
	elapsed   float64
	spawnIn   float64
	served    int
	missed    int
	collected int
	paused    bool
	gameOver  bool
	message   string
}

// New creates a cafe at the start of a shift.
func New(cfg config.Sim) *Scene {
	s := &Scene{cfg: cfg}
	s.Reset(core.DefaultConfig())
	return s
}

// ID returns the unique identifier for this scene.
func (s *Scene) ID() string {
	return "cafe"
}

// Title returns the display name for this scene.
func (s *Scene) Title() string {
	return "Random Cafe"
}

// Width returns the floor width in world units.
func (s *Scene) Width() float64 {
	return float64(s.cfg.Cafe.Columns) * s.cfg.Cafe.GridSize
}

// Height returns the floor height in world units.
func (s *Scene) Height() float64 {
	return float64(s.cfg.Cafe.Rows) * s.cfg.Cafe.GridSize
}

// Reset starts a fresh shift with one customer already seated.
func (s *Scene) Reset(rc core.RuntimeConfig) {
	c := s.cfg.Cafe
	s.runtime = rc
	s.rng = scenes.NewRand(rc.Seed)

	w := ecs.NewWorld()
	s.world = &w
	s.m = newMaps(s.world)
	s.f = newFilters(s.world)
	s.targeter = interact.Targeter[ecs.Entity]{Range: s.cfg.Interact.Range}
	s.pacing = config.NewPacingManager(c.Pacing)
	s.resolver = physics.Resolver{Restitution: c.Restitution}
	s.last = broadphase.Stats{}

	s.thrust = mgl64.Vec2{}
	s.holdLeft = 0
	s.tick = 0
	s.elapsed = 0
	s.served = 0
	s.missed = 0
	s.collected = 0
	s.paused = false
	s.gameOver = false
	s.message = ""

	var err error
	s.phase, err = broadphase.NewGrid(s.Width(), s.Height(), c.GridSize)
	if err != nil {
		s.phase = broadphase.NewBruteForce()
	}

	s.layout()
	s.buildFixtures()
	s.spawnCustomer()
	s.spawnIn = s.pacing.SpawnInterval(s.served)
	s.target()
}

// Player returns the player entity.
func (s *Scene) Player() ecs.Entity { return s.player }

// World exposes the ECS world.
func (s *Scene) World() *ecs.World { return s.world }

// Served returns how many customers got their order this shift.
func (s *Scene) Served() int { return s.served }

// Missed returns how many customers left without being served.
func (s *Scene) Missed() int { return s.missed }

// Step advances the shift by one fixed timestep.
func (s *Scene) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) {
		s.Reset(s.runtime)
		return core.StepResult{State: s.State()}
	}
	if in.Has(core.ActionPause) && !s.gameOver {
		s.paused = !s.paused
	}
	if s.paused || s.gameOver {
		return core.StepResult{State: s.State()}
	}

	dt := s.cfg.Physics.Timestep
	s.applyInput(in, dt)
	if in.Has(core.ActionInteract) {
		s.interact()
	}
	s.updateTimers(dt)
	s.updateCustomers(dt)
	s.spawnCustomers(dt)
	s.integrate(dt)
	s.collide()
	s.target()

	s.elapsed += dt
	s.tick++
	if s.cfg.Cafe.ShiftLength > 0 && s.elapsed >= s.cfg.Cafe.ShiftLength {
		s.gameOver = true
	}

	return core.StepResult{
		State:      s.State(),
		Pairs:      s.last.PairsTested,
		Collisions: s.last.Collisions,
	}
}

// State returns the current scene state. The score is the number of
// customers served.
func (s *Scene) State() core.SceneState {
	return core.SceneState{
		Score:    s.served,
		GameOver: s.gameOver,
		Paused:   s.paused,
	}
}

// Snapshot captures every positioned entity in query order.
func (s *Scene) Snapshot() core.Snapshot {
	snap := core.Snapshot{
		SceneID: s.ID(),
		Tick:    s.tick,
		Score:   s.served,
	}
	id := uint64(0)
	q := s.f.positions.Query()
	for q.Next() {
		e := q.Entity()
		pos := q.Get()
		id++
		st := core.BodyState{ID: id, Kind: core.KindPoint, X: pos.At.X(), Y: pos.At.Y()}
		switch {
		case s.m.circle.Has(e):
			st.Kind = uint8(physics.ShapeCircle)
			st.Extent = s.m.circle.Get(e).Radius
		case s.m.square.Has(e):
			st.Kind = uint8(physics.ShapeSquare)
			st.Extent = s.m.square.Get(e).HalfSize
		}
		if s.m.velocity.Has(e) {
			v := s.m.velocity.Get(e).V
			st.VX, st.VY = v.X(), v.Y()
		}
		if s.m.mass.Has(e) {
			st.Mass = s.m.mass.Get(e).Mass
		}
		snap.Bodies = append(snap.Bodies, st)
	}
	return snap
}

func init() {
	registry.Register("cafe", func(cfg config.Sim) registry.Scene {
		return New(cfg)
	})
}
