package cafe

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"
)

// interact performs the player's action on the hot item. What happens
// depends on the hot item and on what the player is holding. Returns true
// if anything changed; the hot item is then released so it is not
// re-enabled by the next targeting pass.
func (s *Scene) interact() bool {
	hot, ok := s.Hot()
	if !ok {
		return false
	}
	if !s.world.Alive(hot) {
		s.m.interactor.Get(s.player).Clear()
		return false
	}

	held := s.m.holder.Get(s.player).Item
	var done bool
	switch {
	case s.m.payment.Has(hot):
		done = s.collect(hot)
	case isNone(held):
		done = s.pickUp(hot)
	default:
		done = s.useHeld(held, hot)
	}

	if done {
		s.release(hot)
	}
	return done
}

// release drops e as the player's hot item. Targeting re-enables the
// previous hot item, so anything disabled while hot must be released
// first.
func (s *Scene) release(e ecs.Entity) {
	in := s.m.interactor.Get(s.player)
	if !in.HasHot || in.Hot != e {
		return
	}
	if f := (source{s}).Flags(e); f != nil {
		f.Hot = false
	}
	in.Clear()
}

// Holding returns the item in the player's hands.
func (s *Scene) Holding() (ecs.Entity, bool) {
	e := s.m.holder.Get(s.player).Item
	return e, !isNone(e)
}

func (s *Scene) setHeld(e ecs.Entity) {
	s.m.holder.Get(s.player).Item = e
}

// collect picks up the payment a customer left and clears the table.
func (s *Scene) collect(payment ecs.Entity) bool {
	s.detach(payment)
	s.world.RemoveEntity(payment)
	s.collected++
	s.message = "Collected payment."
	return true
}

// pickUp takes a holdable item, or a fresh cup or ingredient from a stack.
func (s *Scene) pickUp(hot ecs.Entity) bool {
	if s.m.holdable.Has(hot) {
		s.m.holdable.Get(hot).Held = true
		s.m.interactable.Get(hot).Flags = flags(false)
		s.detach(hot)
		s.setHeld(hot)
		s.message = "Got " + s.Describe(hot) + "."
		return true
	}

	if !s.m.stack.Has(hot) {
		return false
	}
	kind := s.m.stack.Get(hot).Kind
	var name string
	if kind == StackIngredient {
		name = s.m.ingredient.Get(hot).Name
	}

	item := s.newHeldItem()
	if kind == StackCups {
		s.m.drink.Add(item, &Drink{Name: DrinkEmpty})
	} else {
		s.m.ingredient.Add(item, &Ingredient{Name: name})
	}
	s.setHeld(item)
	s.message = "Got " + s.Describe(item) + "."
	return true
}

// detach lifts an item off whatever surface it sits on and re-enables that
// surface.
func (s *Scene) detach(item ecs.Entity) {
	if !s.m.placeable.Has(item) {
		return
	}
	p := s.m.placeable.Get(item)
	on := p.On
	p.On = noEntity
	if isNone(on) || !s.world.Alive(on) {
		return
	}
	if s.m.surface.Has(on) {
		s.m.surface.Get(on).Occupied = false
	}
	if s.m.interactable.Has(on) {
		s.m.interactable.Get(on).Enabled = true
	}
}

// useHeld applies the held item to the hot item. Machines are tried
// first, then customers, then surfaces, then drinks.
func (s *Scene) useHeld(held, hot ecs.Entity) bool {
	if s.m.machine.Has(hot) {
		return s.loadMachine(held, hot)
	}
	if s.m.customer.Has(hot) && s.serve(held, hot) {
		return true
	}
	if s.m.surface.Has(hot) {
		return s.place(held, hot)
	}
	if s.m.drink.Has(hot) {
		return s.pour(held, hot)
	}
	return false
}

// loadMachine fills the machine with beans, water or an empty cup, and
// starts brewing once it has all three.
func (s *Scene) loadMachine(held, machine ecs.Entity) bool {
	changed := false
	mc := s.m.machine.Get(machine)

	switch {
	case s.m.ingredient.Has(held):
		ing := s.m.ingredient.Get(held)
		switch {
		case ing.Name == IngredientBeans && !mc.Grounds:
			mc.Grounds = true
			s.setHeld(noEntity)
			s.world.RemoveEntity(held)
			s.message = "Filled the machine with coffee grounds."
			changed = true
		case ing.Name == IngredientWater && !mc.Water:
			mc.Water = true
			s.message = "Filled the machine with water."
			changed = true
		}
	case s.m.drink.Has(held):
		if s.m.drink.Get(held).Name != DrinkEmpty || !isNone(mc.Cup) {
			break
		}
		mc.Cup = held
		g := s.cfg.Cafe.GridSize
		s.m.position.Get(held).At = s.m.position.Get(machine).At.Add(mgl64.Vec2{0, g * 0.15})
		s.m.placeable.Get(held).On = machine
		s.m.holdable.Get(held).Held = false
		s.setHeld(noEntity)
		s.message = "Placed a cup in the machine."
		changed = true
	}

	mc = s.m.machine.Get(machine)
	timer := s.m.timer.Get(machine)
	if timer.Left == 0 && mc.Grounds && mc.Water && !isNone(mc.Cup) {
		s.m.interactable.Get(machine).Flags = flags(false)
		mc.Grounds = false
		mc.Water = false
		timer.Left = s.cfg.Cafe.BrewTime
		s.message = fmt.Sprintf("Brewing for %.0f seconds.", s.cfg.Cafe.BrewTime)
		changed = true
	}
	return changed
}

// serve hands a drink to a waiting customer if it matches the order.
func (s *Scene) serve(held, customer ecs.Entity) bool {
	if !s.m.drink.Has(held) {
		return false
	}
	c := s.m.customer.Get(customer)
	if c.State != Ordering || s.m.drink.Get(held).Name != c.Order {
		return false
	}

	c.State = Eating
	c.Drink = held
	s.m.timer.Get(customer).Left = s.cfg.Cafe.EatTime
	s.m.interactable.Get(customer).Flags = flags(false)

	r := s.cfg.Cafe.Radius / 1.5
	s.m.position.Get(held).At = s.m.position.Get(customer).At.Add(mgl64.Vec2{r, r})
	s.m.holdable.Get(held).Held = false
	s.setHeld(noEntity)

	s.served++
	s.message = "Served " + c.Order + "!"
	return true
}

// place puts the held item on an empty surface.
func (s *Scene) place(held, surface ecs.Entity) bool {
	sf := s.m.surface.Get(surface)
	if sf.Occupied || !s.m.placeable.Has(held) {
		return false
	}
	sf.Occupied = true
	s.m.interactable.Get(surface).Flags = flags(false)

	s.m.position.Get(held).At = s.m.position.Get(surface).At
	s.m.placeable.Get(held).On = surface
	s.m.interactable.Get(held).Enabled = true
	s.m.holdable.Get(held).Held = false
	s.setHeld(noEntity)
	s.message = "Put down " + s.Describe(held) + "."
	return true
}

// pour mixes the held pitcher into the hot drink if a recipe exists.
func (s *Scene) pour(held, drink ecs.Entity) bool {
	if !s.m.ingredient.Has(held) {
		return false
	}
	ing := s.m.ingredient.Get(held)
	if !ing.Pitcher {
		return false
	}
	d := s.m.drink.Get(drink)
	out, ok := Combine(d.Name, ing.Name)
	if !ok {
		return false
	}
	s.message = fmt.Sprintf("Mixed %s and %s into %s.", d.Name, ing.Name, out)
	d.Name = out
	return true
}

// Describe names an entity for the status line.
func (s *Scene) Describe(e ecs.Entity) string {
	if isNone(e) || !s.world.Alive(e) {
		return "nothing"
	}
	switch {
	case s.m.payment.Has(e):
		return "payment"
	case s.m.customer.Has(e):
		c := s.m.customer.Get(e)
		if c.State == Eating {
			return "customer (eating)"
		}
		return fmt.Sprintf("customer wants %s (%.0fs)", c.Order, c.Patience)
	case s.m.machine.Has(e):
		t := s.m.timer.Get(e)
		if t.Left > 0 {
			return fmt.Sprintf("coffee machine (brewing %.0fs)", t.Left)
		}
		mc := s.m.machine.Get(e)
		return fmt.Sprintf("coffee machine (grounds:%s water:%s cup:%s)",
			yesNo(mc.Grounds), yesNo(mc.Water), yesNo(!isNone(mc.Cup)))
	case s.m.stack.Has(e):
		if s.m.stack.Get(e).Kind == StackCups {
			return "stack of cups"
		}
		return s.m.ingredient.Get(e).Name + " container"
	case s.m.drink.Has(e):
		name := s.m.drink.Get(e).Name
		if name == DrinkEmpty {
			return "empty cup"
		}
		return "cup of " + name
	case s.m.ingredient.Has(e):
		ing := s.m.ingredient.Get(e)
		if ing.Pitcher {
			return ing.Name + " pitcher"
		}
		return ing.Name
	case s.m.dining.Has(e):
		return "dining table"
	case s.m.surface.Has(e):
		return "counter"
	}
	return "something"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
