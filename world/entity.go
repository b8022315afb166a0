package world

import (
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/blockworld/common"
)

// Kind classifies an entity for gameplay logic outside the core.
type Kind int

const (
	KindNone Kind = iota
	KindSolid
	KindBackground
)

func (k Kind) String() string {
	switch k {
	case KindSolid:
		return "solid"
	case KindBackground:
		return "background"
	default:
		return "none"
	}
}

// DrawKind selects the rendering path. DrawUnset never belongs to a fully
// constructed entity.
type DrawKind int

const (
	DrawUnset DrawKind = iota
	DrawRect
	DrawSprite
)

func (d DrawKind) String() string {
	switch d {
	case DrawRect:
		return "rect"
	case DrawSprite:
		return "sprite"
	default:
		return "unset"
	}
}

// Entity is an axis-aligned box with physics state.
type Entity struct {
	Name string

	// Position is the top-left corner of the box.
	Position common.Vector2
	Width    float64
	Height   float64
	Velocity common.Vector2
	// Center is recomputed by Update and must not be set directly.
	Center common.Vector2

	Fixed       bool
	DrawEnabled bool

	Kind     Kind
	DrawKind DrawKind
	Variant  Variant

	Color   color.Color
	Sprite  SpriteFrame
	Overlay bool

	// Colliding is cleared by Update and set by a resolved collision.
	Colliding bool
	// TouchingGround is set when the entity lands on top of another box.
	// Nothing in this package clears it; the owner of the frame loop does.
	TouchingGround bool
}

// NewEntity returns a fixed, visible entity with no appearance.
func NewEntity(pos common.Vector2, w, h float64) *Entity {
	e := &Entity{
		Position:    pos,
		Width:       w,
		Height:      h,
		Fixed:       true,
		DrawEnabled: true,
	}
	e.Center = e.centerOf()
	return e
}

func (e *Entity) centerOf() common.Vector2 {
	return common.Vector2{X: e.Position.X + e.Width/2, Y: e.Position.Y + e.Height/2}
}

// Update runs once per entity per frame before collisions.
func (e *Entity) Update(gravity float64) {
	e.Colliding = false
	if !e.Fixed {
		e.Velocity.Y += gravity
	}
	e.Center = e.centerOf()
}

// Integrate moves a dynamic entity by its velocity.
func (e *Entity) Integrate() {
	if e.Fixed {
		return
	}
	e.Position = e.Position.Add(e.Velocity)
}

// Bounds returns the box in chipmunk form. B is the top edge since y grows
// downward on screen.
func (e *Entity) Bounds() cp.BB {
	return cp.BB{
		L: e.Position.X,
		B: e.Position.Y,
		R: e.Position.X + e.Width,
		T: e.Position.Y + e.Height,
	}
}
