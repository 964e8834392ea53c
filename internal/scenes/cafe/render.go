package cafe

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/vovakirdan/tui-cafe/internal/core"
	"github.com/vovakirdan/tui-cafe/internal/scenes"
)

// Render draws the floor, fixtures, items, customers and the player.
func (s *Scene) Render(dst *core.Screen) {
	vp := core.NewViewport(scenes.PlayArea(dst), s.Width(), s.Height())
	scenes.DrawBounds(dst, vp, s.Width(), s.Height())

	s.renderFixtures(dst, vp)
	s.renderItems(dst, vp)
	s.renderCustomers(dst, vp)

	pos := s.m.position.Get(s.player).At
	x, y := vp.ToScreen(pos)
	dst.SetColor(x, y, '@', core.ColorBrightBlue)
	fwd := s.m.direction.Get(s.player).Forward
	if fx, fy := vp.ToScreen(pos.Add(fwd.Mul(s.cfg.Cafe.Radius * 2))); fx != x || fy != y {
		dst.SetColor(fx, fy, '·', core.ColorBlue)
	}

	s.renderStatus(dst)
}

func (s *Scene) renderFixtures(dst *core.Screen, vp core.Viewport) {
	q := s.f.fixtures.Query()
	for q.Next() {
		pos, _, sq := q.Get()
		e := q.Entity()
		h := mgl64.Vec2{sq.HalfSize, sq.HalfSize}
		r := vp.RectOf(pos.At.Sub(h), pos.At.Add(h))

		fill, c := '▒', core.ColorBrown
		if s.m.chair.Has(e) {
			fill, c = '░', core.ColorYellow
		}
		if s.m.interactable.Has(e) && s.m.interactable.Get(e).Hot {
			c = core.ColorBrightYellow
		}
		dst.DrawRect(r, fill, c)
	}
}

func (s *Scene) renderItems(dst *core.Screen, vp core.Viewport) {
	q := s.f.interactables.Query()
	for q.Next() {
		pos, it := q.Get()
		e := q.Entity()
		if s.m.square.Has(e) || s.m.customer.Has(e) {
			continue
		}
		if s.m.holdable.Has(e) && s.m.holdable.Get(e).Held {
			continue
		}
		c := core.ColorBrightWhite
		if it.Hot {
			c = core.ColorBrightYellow
		}
		x, y := vp.ToScreen(pos.At)
		dst.SetColor(x, y, s.glyph(e), c)
	}
}

func (s *Scene) renderCustomers(dst *core.Screen, vp core.Viewport) {
	q := s.f.customers.Query()
	for q.Next() {
		c := q.Get()
		e := q.Entity()
		x, y := vp.ToScreen(s.m.position.Get(e).At)

		color := core.ColorMagenta
		if s.m.interactable.Get(e).Hot {
			color = core.ColorBrightMagenta
		}
		dst.SetColor(x, y, '&', color)
		if c.State == Ordering {
			dst.DrawTextColor(x-2, y-1, fmt.Sprintf("%s%2.0f", strings.ToUpper(c.Order[:1]), c.Patience), core.ColorWhite)
		}
	}
}

func (s *Scene) renderStatus(dst *core.Screen) {
	remaining := s.cfg.Cafe.ShiftLength - s.elapsed
	header := fmt.Sprintf(" %s  served:%d  missed:%d  paid:%d  shift:%3.0fs  holding: %s",
		s.Title(), s.served, s.missed, s.collected, max(remaining, 0), s.describeHeld())
	if s.paused {
		header += "  [PAUSED]"
	}
	dst.DrawTextColor(0, 0, header, core.ColorBrightWhite)

	status := " facing: nothing"
	if hot, ok := s.Hot(); ok {
		status = " facing: " + s.Describe(hot)
	}
	if s.message != "" {
		status += "  | " + s.message
	}
	dst.DrawTextColor(0, dst.Height()-2, status, core.ColorWhite)
	dst.DrawTextColor(0, dst.Height()-1, " [wasd] move  [x] interact  [p] pause  [r] restart  [b] menu  [q] quit", core.ColorGray)

	if s.gameOver {
		mid := dst.Height() / 2
		dst.DrawTextCentered(mid-1, "  SHIFT OVER  ", core.ColorBrightYellow)
		dst.DrawTextCentered(mid, fmt.Sprintf("  Served %d customers  ", s.served), core.ColorBrightWhite)
		dst.DrawTextCentered(mid+1, "  [r] new shift  ", core.ColorGray)
	}
}

func (s *Scene) describeHeld() string {
	if e, ok := s.Holding(); ok {
		return s.Describe(e)
	}
	return "nothing"
}

func (s *Scene) glyph(e ecs.Entity) rune {
	switch {
	case s.m.payment.Has(e):
		return '$'
	case s.m.machine.Has(e):
		return 'M'
	case s.m.stack.Has(e):
		if s.m.stack.Get(e).Kind == StackCups {
			return 'U'
		}
		return '%'
	case s.m.drink.Has(e):
		switch s.m.drink.Get(e).Name {
		case DrinkEmpty:
			return 'u'
		case DrinkWater:
			return 'W'
		case DrinkEspresso:
			return 'E'
		case DrinkAmericano:
			return 'A'
		case DrinkCappuccino:
			return 'C'
		}
	case s.m.ingredient.Has(e):
		switch s.m.ingredient.Get(e).Name {
		case IngredientWater:
			return 'w'
		case IngredientHotWater:
			return 'h'
		case IngredientMilk:
			return 'm'
		case IngredientBeans:
			return '%'
		}
	}
	return '?'
}
