package cafe

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/vovakirdan/tui-cafe/internal/broadphase"
	"github.com/vovakirdan/tui-cafe/internal/core"
	"github.com/vovakirdan/tui-cafe/internal/interact"
	"github.com/vovakirdan/tui-cafe/internal/physics"
)

func flags(enabled bool) interact.Flags {
	return interact.Flags{Enabled: enabled}
}

// applyInput turns the movement keys into a force on the player. The
// player faces along the force while one is applied.
func (s *Scene) applyInput(in core.InputFrame, dt float64) {
	dx, dy := in.Direction()
	if dx != 0 || dy != 0 {
		s.thrust = mgl64.Vec2{dx, dy}
		s.holdLeft = holdWindow
	} else if s.holdLeft > 0 {
		s.holdLeft -= dt
		if s.holdLeft <= 0 {
			s.thrust = mgl64.Vec2{}
		}
	}

	force := s.thrust.Mul(s.cfg.Cafe.MoveForce)
	s.m.acceleration.Get(s.player).A = force.Mul(s.m.mass.Get(s.player).InvMass)
	if force.LenSqr() > 0 {
		s.m.direction.Get(s.player).Forward = force.Normalize()
	}
}

// integrate advances every moving entity with friction.
func (s *Scene) integrate(dt float64) {
	q := s.f.movers.Query()
	for q.Next() {
		pos, vel, acc, m := q.Get()
		b := physics.Body{
			Position:     pos.At,
			Velocity:     vel.V,
			Acceleration: acc.A,
			Mass:         m.Mass,
			InvMass:      m.InvMass,
		}
		physics.Integrate(&b, dt, s.cfg.Cafe.Friction)
		pos.At = b.Position
		vel.V = b.Velocity
	}
}

// collide resolves moving circles against the fixtures and each other,
// then keeps them on the floor.
func (s *Scene) collide() {
	s.bodies = append(s.bodies[:0], s.fixtures...)
	s.owners = s.owners[:0]
	start := len(s.bodies)

	q := s.f.colliders.Query()
	for q.Next() {
		pos, vel, m, c := q.Get()
		b, err := physics.NewBody(pos.At, physics.Circle(c.Radius), m.Mass)
		if err != nil {
			continue
		}
		b.ID = physics.BodyID(len(s.bodies) + 1)
		b.Velocity = vel.V
		s.bodies = append(s.bodies, b)
		s.owners = append(s.owners, q.Entity())
	}

	s.last = broadphase.Step(s.phase, s.bodies, s.resolver)

	w, h := s.Width(), s.Height()
	for i, e := range s.owners {
		b := s.bodies[start+i]
		physics.BounceWalls(b, w, h)
		s.m.velocity.Get(e).V = b.Velocity
	}
}

// source exposes the interactables of the world to the targeter.
type source struct {
	s *Scene
}

func (src source) Flags(e ecs.Entity) *interact.Flags {
	if !src.s.world.Alive(e) || !src.s.m.interactable.Has(e) {
		return nil
	}
	return &src.s.m.interactable.Get(e).Flags
}

func (src source) Each(visit func(e ecs.Entity, pos mgl64.Vec2, f *interact.Flags)) {
	q := src.s.f.interactables.Query()
	for q.Next() {
		pos, it := q.Get()
		visit(q.Entity(), pos.At, &it.Flags)
	}
}

// target picks the player's hot item.
func (s *Scene) target() {
	pos := s.m.position.Get(s.player).At
	fwd := s.m.direction.Get(s.player).Forward
	in := &s.m.interactor.Get(s.player).Interactor
	s.targeter.Update(s.player, in, pos, fwd, source{s})
}

// Hot returns the player's current hot item.
func (s *Scene) Hot() (ecs.Entity, bool) {
	in := s.m.interactor.Get(s.player)
	return in.Hot, in.HasHot
}

// updateTimers counts every running timer down and fires the ones that
// reach zero.
func (s *Scene) updateTimers(dt float64) {
	var fired []ecs.Entity
	q := s.f.timers.Query()
	for q.Next() {
		t := q.Get()
		if t.Left == 0 {
			continue
		}
		t.Left -= dt
		if t.Left <= 0 {
			t.Left = 0
			fired = append(fired, q.Entity())
		}
	}

	for _, e := range fired {
		switch {
		case s.m.machine.Has(e):
			s.finishBrew(e)
		case s.m.customer.Has(e):
			s.finishMeal(e)
		}
	}
}

// finishBrew turns the cup in the machine into espresso. The machine stays
// disabled until the cup is taken.
func (s *Scene) finishBrew(machine ecs.Entity) {
	mc := s.m.machine.Get(machine)
	cup := mc.Cup
	mc.Cup = noEntity
	if isNone(cup) || !s.world.Alive(cup) {
		s.m.interactable.Get(machine).Enabled = true
		return
	}
	s.m.drink.Get(cup).Name = DrinkEspresso
	s.m.interactable.Get(cup).Enabled = true
	s.message = "Espresso ready!"
}

// finishMeal leaves a payment on the customer's table and frees the chair.
func (s *Scene) finishMeal(e ecs.Entity) {
	c := *s.m.customer.Get(e)

	tablePos := s.m.position.Get(c.Table).At
	s.release(c.Table)
	s.m.surface.Get(c.Table).Occupied = true
	s.m.interactable.Get(c.Table).Flags = flags(false)

	s.removeCustomer(e, c)

	p := s.spawnAt(tablePos)
	s.m.interactable.Add(p, &Interactable{Flags: flags(true)})
	s.m.placeable.Add(p, &Placeable{On: c.Table})
	s.m.payment.Add(p, &Payment{})
}

func (s *Scene) removeCustomer(e ecs.Entity, c Customer) {
	if s.world.Alive(c.Chair) {
		s.m.chair.Get(c.Chair).Customer = noEntity
	}
	if !isNone(c.Drink) && s.world.Alive(c.Drink) {
		s.release(c.Drink)
		s.world.RemoveEntity(c.Drink)
	}
	s.release(e)
	s.world.RemoveEntity(e)
}

// updateCustomers drains the patience of waiting customers. Customers
// whose patience runs out leave.
func (s *Scene) updateCustomers(dt float64) {
	var leaving []ecs.Entity
	q := s.f.customers.Query()
	for q.Next() {
		c := q.Get()
		if c.State != Ordering {
			continue
		}
		c.Patience -= dt
		if c.Patience <= 0 {
			leaving = append(leaving, q.Entity())
		}
	}

	for _, e := range leaving {
		s.removeCustomer(e, *s.m.customer.Get(e))
		s.missed++
		s.message = "A customer left without their drink."
	}
}

// spawnCustomers seats a new customer whenever the arrival timer runs out.
// With every chair taken the next free one is filled as soon as it opens.
func (s *Scene) spawnCustomers(dt float64) {
	s.spawnIn -= dt
	if s.spawnIn > 0 {
		return
	}
	if s.spawnCustomer() {
		s.spawnIn = s.pacing.SpawnInterval(s.served)
	} else {
		s.spawnIn = 0
	}
}

// spawnCustomer seats a customer at a random free chair whose table is
// clear. Returns false if there is none.
func (s *Scene) spawnCustomer() bool {
	var free []ecs.Entity
	q := s.f.chairs.Query()
	for q.Next() {
		ch := q.Get()
		if isNone(ch.Customer) && !s.m.surface.Get(ch.Table).Occupied {
			free = append(free, q.Entity())
		}
	}
	if len(free) == 0 {
		return false
	}

	chair := free[s.rng.IntN(len(free))]
	table := s.m.chair.Get(chair).Table
	at := s.m.position.Get(chair).At

	e := s.spawnAt(at)
	s.m.circle.Add(e, &Circle{Radius: s.cfg.Cafe.Radius})
	s.m.direction.Add(e, &Direction{Forward: mgl64.Vec2{0, 1}})
	s.m.interactable.Add(e, &Interactable{Flags: flags(true)})
	s.m.timer.Add(e, &Timer{})
	s.m.customer.Add(e, &Customer{
		State:    Ordering,
		Patience: s.pacing.Patience(s.served),
		Order:    Orders[s.rng.IntN(len(Orders))],
		Table:    table,
		Chair:    chair,
	})
	s.m.chair.Get(chair).Customer = e
	return true
}
