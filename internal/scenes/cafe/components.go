package cafe

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/vovakirdan/tui-cafe/internal/interact"
)

// Position is the center of an entity in world units.
type Position struct {
	At mgl64.Vec2
}

// Velocity is the linear velocity of a moving entity.
type Velocity struct {
	V mgl64.Vec2
}

// Acceleration is the per-step acceleration from applied forces.
type Acceleration struct {
	A mgl64.Vec2
}

// Mass holds mass and its inverse. InvMass 0 marks an immovable fixture.
type Mass struct {
	Mass    float64
	InvMass float64
}

// Circle is a round collider.
type Circle struct {
	Radius float64
}

// Square is an axis-aligned square collider.
type Square struct {
	HalfSize float64
}

// Direction is the unit facing of an actor.
type Direction struct {
	Forward mgl64.Vec2
}

// Interactable marks an entity the player can target.
type Interactable struct {
	interact.Flags
}

// Interactor is an actor that targets interactables.
type Interactor struct {
	interact.Interactor[ecs.Entity]
}

// Player tags the controlled entity.
type Player struct{}

// Holder carries at most one item.
type Holder struct {
	Item ecs.Entity
}

// Holdable can be picked up.
type Holdable struct {
	Held bool
}

// Placeable records the surface an item sits on.
type Placeable struct {
	On ecs.Entity
}

// Surface is a counter or table that holds at most one item.
type Surface struct {
	Occupied bool
}

// DiningTable links a table to the chair customers sit on.
type DiningTable struct {
	Chair ecs.Entity
}

// Chair holds the seated customer, if any.
type Chair struct {
	Customer ecs.Entity
	Table    ecs.Entity
}

// Drink is a cup and what is in it.
type Drink struct {
	Name string
}

// Ingredient is something that goes into a drink or the machine. Pitchers
// are reusable; other ingredients are consumed.
type Ingredient struct {
	Name    string
	Pitcher bool
}

// StackKind is what a stack hands out.
type StackKind int

const (
	StackCups StackKind = iota
	StackIngredient
)

// Stack is an endless supply of cups or ingredients.
type Stack struct {
	Kind StackKind
}

// Machine brews espresso once it has grounds, water and an empty cup.
type Machine struct {
	Grounds bool
	Water   bool
	Cup     ecs.Entity
}

// Timer counts down to zero. Zero means idle.
type Timer struct {
	Left float64
}

// CustomerState is the phase of a visit.
type CustomerState int

const (
	Ordering CustomerState = iota
	Eating
)

func (s CustomerState) String() string {
	if s == Eating {
		return "eating"
	}
	return "ordering"
}

// Customer is a seated guest.
type Customer struct {
	State    CustomerState
	Patience float64
	Order    string
	Table    ecs.Entity
	Chair    ecs.Entity
	Drink    ecs.Entity
}

// Payment is left on the table after a customer finishes.
type Payment struct{}

// Drink and ingredient names.
const (
	DrinkEmpty      = "empty"
	DrinkWater      = "water"
	DrinkEspresso   = "espresso"
	DrinkAmericano  = "americano"
	DrinkCappuccino = "cappuccino"

	IngredientBeans    = "coffee beans"
	IngredientWater    = "water"
	IngredientHotWater = "hot water"
	IngredientMilk     = "milk"
)

// Orders is the menu customers pick from.
var Orders = []string{DrinkWater, DrinkEspresso, DrinkAmericano, DrinkCappuccino}

type recipeKey struct {
	drink      string
	ingredient string
}

// recipes maps a drink plus a poured ingredient to the result.
var recipes = map[recipeKey]string{
	{DrinkEmpty, IngredientWater}:       DrinkWater,
	{DrinkEspresso, IngredientHotWater}: DrinkAmericano,
	{DrinkEspresso, IngredientMilk}:     DrinkCappuccino,
}

// Combine returns what pouring ingredient into drink makes.
func Combine(drink, ingredient string) (string, bool) {
	out, ok := recipes[recipeKey{drink, ingredient}]
	return out, ok
}

var noEntity ecs.Entity

func isNone(e ecs.Entity) bool {
	return e == noEntity
}
