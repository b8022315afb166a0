package world

import (
	"math"

	"github.com/milk9111/blockworld/common"
)

// Side reports which face of the receiver a resolved collision pushed the
// other entity out of.
type Side int

const (
	SideNone Side = iota
	SideTop
	SideBottom
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "none"
	}
}

// Contact describes one resolved collision.
type Contact struct {
	Receiver *Entity
	Other    *Entity
	Side     Side
}

// ResolveCollision tests e against other and, if they overlap, pushes other
// out of e. It reports whether a collision was resolved.
func (e *Entity) ResolveCollision(other *Entity) bool {
	_, ok := e.Collide(other)
	return ok
}

// Collide is ResolveCollision returning the contact side.
//
// The resolution axis is picked by normalizing the center offset with e's own
// size, not the averaged size used by the overlap test. Level geometry is tuned
// against that asymmetry so it stays.
//
// A contact whose other entity is already moving away on the resolution axis
// is ignored, which lets a body leave a surface in the same frame it still
// overlaps it.
func (e *Entity) Collide(other *Entity) (Contact, bool) {
	dx := other.Center.X - e.Center.X
	dy := other.Center.Y - e.Center.Y
	averageWidth := (other.Width + e.Width) / 2
	averageHeight := (other.Height + e.Height) / 2

	if math.Abs(dx) > averageWidth || math.Abs(dy) > averageHeight {
		return Contact{}, false
	}

	side := SideNone
	if math.Abs(dx/e.Width) > math.Abs(dy/e.Height) {
		if dx < 0 {
			if other.Velocity.X < 0 {
				return Contact{}, false
			}
			other.Position = common.Vector2{X: e.Position.X - other.Width, Y: other.Position.Y}
			other.Velocity = common.Vector2{X: 0, Y: other.Velocity.Y}
			side = SideLeft
		} else {
			if other.Velocity.X > 0 {
				return Contact{}, false
			}
			other.Position = common.Vector2{X: e.Position.X + e.Width, Y: other.Position.Y}
			other.Velocity = common.Vector2{X: 0, Y: other.Velocity.Y}
			side = SideRight
		}
	} else {
		if dy < 0 {
			if other.Velocity.Y < 0 {
				return Contact{}, false
			}
			other.Position = common.Vector2{X: other.Position.X, Y: e.Position.Y - other.Height}
			other.Velocity = common.Vector2{X: other.Velocity.X, Y: 0}
			other.TouchingGround = true
			side = SideTop
		} else {
			if other.Velocity.Y > 0 {
				return Contact{}, false
			}
			other.Position = common.Vector2{X: other.Position.X, Y: e.Position.Y + e.Height}
			other.Velocity = common.Vector2{X: other.Velocity.X, Y: 0}
			side = SideBottom
		}
	}

	e.Colliding = true
	other.Colliding = true
	return Contact{Receiver: e, Other: other, Side: side}, true
}
