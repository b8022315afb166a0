package world

import (
	"image"
	"image/color"

	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

// Canvas is the raster surface entities draw onto.
type Canvas interface {
	FillRect(x, y, w, h float64, clr color.Color)
	// DrawImageRegion draws src of the named image scaled into the box.
	DrawImageRegion(img string, src image.Rectangle, x, y, w, h float64)
}

var (
	// CollisionColor replaces a rect's color on frames it collided.
	CollisionColor color.Color = colornames.Pink
	// OverlayColor tints background layers.
	OverlayColor color.Color = color.NRGBA{R: 0, G: 0, B: 0, A: 153}
)

// Render draws the entity. An entity without a draw kind is logged and
// skipped.
func (e *Entity) Render(canvas Canvas, log *zap.Logger) {
	if !e.DrawEnabled || canvas == nil {
		return
	}

	switch e.DrawKind {
	case DrawRect:
		clr := e.Color
		if e.Colliding {
			clr = CollisionColor
		}
		canvas.FillRect(e.Position.X, e.Position.Y, e.Width, e.Height, clr)
	case DrawSprite:
		canvas.DrawImageRegion(e.Sprite.Image, e.Sprite.Src, e.Position.X, e.Position.Y, e.Width, e.Height)
	default:
		if log != nil {
			log.Error("entity draw kind not set or invalid",
				zap.String("entity", e.Name),
				zap.Stringer("draw_kind", e.DrawKind),
			)
		}
		return
	}

	if e.Overlay {
		canvas.FillRect(e.Position.X, e.Position.Y, e.Width, e.Height, OverlayColor)
	}
}
