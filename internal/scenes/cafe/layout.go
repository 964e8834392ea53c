package cafe

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/vovakirdan/tui-cafe/internal/physics"
)

// counterRow is the grid row of the service counter.
const counterRow = 6.5

// diningRow is the grid row of the dining tables.
const diningRow = 2.5

// tableColumns are the grid columns of the dining tables. Each table has
// a chair one column to its left.
var tableColumns = []float64{3.5, 8.5, 13.5}

func (s *Scene) at(col, row float64) mgl64.Vec2 {
	g := s.cfg.Cafe.GridSize
	return mgl64.Vec2{col * g, row * g}
}

func (s *Scene) layout() {
	c := s.cfg.Cafe

	s.player = s.spawnAt(s.at(8.5, 7.5))
	s.m.circle.Add(s.player, &Circle{Radius: c.Radius})
	s.m.velocity.Add(s.player, &Velocity{})
	s.m.acceleration.Add(s.player, &Acceleration{})
	s.m.mass.Add(s.player, &Mass{Mass: c.Mass, InvMass: 1 / c.Mass})
	s.m.direction.Add(s.player, &Direction{Forward: mgl64.Vec2{0, 1}})
	s.m.interactor.Add(s.player, &Interactor{})
	s.m.holder.Add(s.player, &Holder{})
	s.m.player.Add(s.player, &Player{})

	s.newCounter(4.5, true)
	s.newStack(s.at(4.5, counterRow), StackCups, "")

	s.newCounter(5.5, true)
	s.newMachine(s.at(5.5, counterRow))

	s.newCounter(6.5, true)
	s.newStack(s.at(6.5, counterRow), StackIngredient, IngredientBeans)

	s.newPitcher(s.newCounter(7.5, true), IngredientWater)
	s.newCounter(9.5, false)
	s.newPitcher(s.newCounter(10.5, true), IngredientHotWater)
	s.newPitcher(s.newCounter(11.5, true), IngredientMilk)

	for _, col := range tableColumns {
		s.newDiningTable(col)
	}
}

func (s *Scene) spawnAt(p mgl64.Vec2) ecs.Entity {
	return s.m.position.NewEntity(&Position{At: p})
}

func (s *Scene) newFixture(p mgl64.Vec2, half float64) ecs.Entity {
	e := s.spawnAt(p)
	s.m.square.Add(e, &Square{HalfSize: half})
	s.m.mass.Add(e, &Mass{Mass: 1})
	return e
}

func (s *Scene) newCounter(col float64, occupied bool) ecs.Entity {
	e := s.newFixture(s.at(col, counterRow), s.cfg.Cafe.GridSize/2)
	s.m.surface.Add(e, &Surface{Occupied: occupied})
	s.m.interactable.Add(e, &Interactable{Flags: flags(!occupied)})
	return e
}

func (s *Scene) newDiningTable(col float64) ecs.Entity {
	g := s.cfg.Cafe.GridSize
	table := s.newFixture(s.at(col, diningRow), g/2)
	chair := s.newFixture(s.at(col-1, diningRow), g/4)

	s.m.surface.Add(table, &Surface{})
	s.m.interactable.Add(table, &Interactable{Flags: flags(true)})
	s.m.dining.Add(table, &DiningTable{Chair: chair})
	s.m.chair.Add(chair, &Chair{Table: table})
	return table
}

func (s *Scene) newStack(p mgl64.Vec2, kind StackKind, ingredient string) ecs.Entity {
	e := s.spawnAt(p)
	s.m.interactable.Add(e, &Interactable{Flags: flags(true)})
	s.m.stack.Add(e, &Stack{Kind: kind})
	if kind == StackIngredient {
		s.m.ingredient.Add(e, &Ingredient{Name: ingredient})
	}
	return e
}

func (s *Scene) newMachine(p mgl64.Vec2) ecs.Entity {
	e := s.spawnAt(p)
	s.m.interactable.Add(e, &Interactable{Flags: flags(true)})
	s.m.machine.Add(e, &Machine{})
	s.m.timer.Add(e, &Timer{})
	return e
}

func (s *Scene) newPitcher(counter ecs.Entity, name string) ecs.Entity {
	e := s.spawnAt(s.m.position.Get(counter).At)
	s.m.interactable.Add(e, &Interactable{Flags: flags(true)})
	s.m.holdable.Add(e, &Holdable{})
	s.m.placeable.Add(e, &Placeable{On: counter})
	s.m.ingredient.Add(e, &Ingredient{Name: name, Pitcher: true})
	return e
}

// newHeldItem creates an item straight into the player's hands.
func (s *Scene) newHeldItem() ecs.Entity {
	e := s.spawnAt(s.m.position.Get(s.player).At)
	s.m.interactable.Add(e, &Interactable{})
	s.m.holdable.Add(e, &Holdable{Held: true})
	s.m.placeable.Add(e, &Placeable{})
	return e
}

// buildFixtures creates one static body per square fixture. Fixtures never
// move, so these are reused every step. They take IDs 1..n; colliders are
// numbered after them in collide.
func (s *Scene) buildFixtures() {
	s.fixtures = s.fixtures[:0]
	q := s.f.fixtures.Query()
	for q.Next() {
		pos, _, sq := q.Get()
		b, err := physics.NewStatic(pos.At, physics.Square(sq.HalfSize))
		if err != nil {
			continue
		}
		b.ID = physics.BodyID(len(s.fixtures) + 1)
		s.fixtures = append(s.fixtures, b)
	}
}
