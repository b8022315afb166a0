package render

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/blockworld/common"
	"github.com/milk9111/blockworld/world"
	"golang.org/x/image/colornames"
)

// DrawDebug outlines every entity box, colliding ones in red, and prints
// DebugLines in the top-left corner of dst.
func DrawDebug(s *Screen, w *world.World, cursor common.Vector2) {
	if s == nil || s.dst == nil || w == nil {
		return
	}
	w.Each(func(_ world.ID, e *world.Entity) {
		clr := colornames.Lime
		switch {
		case e.Colliding:
			clr = colornames.Red
		case e.Kind == world.KindBackground:
			clr = colornames.Slategray
		}
		s.StrokeRect(e.Position.X, e.Position.Y, e.Width, e.Height, 1, clr)
	})
	ebitenutil.DebugPrintAt(s.dst, strings.Join(DebugLines(w, cursor, ebiten.ActualTPS()), "\n"), 10, 10)
}

// DebugLines summarises the world state for the overlay. cursor is in world
// coordinates.
func DebugLines(w *world.World, cursor common.Vector2, tps float64) []string {
	lines := []string{
		fmt.Sprintf("TPS: %0.1f  frame: %d", tps, w.Frame()),
		fmt.Sprintf("entities: %d  contacts: %d", w.Len(), len(w.Contacts())),
		fmt.Sprintf("checksum: %016x", w.Checksum()),
	}

	var under []string
	for _, id := range w.At(cursor) {
		e := w.Entity(id)
		name := e.Name
		if name == "" {
			name = fmt.Sprintf("#%d", id)
		}
		under = append(under, fmt.Sprintf("%s (%s)", name, e.Variant))
	}
	if len(under) == 0 {
		under = append(under, "-")
	}
	lines = append(lines, fmt.Sprintf("cursor %0.0f,%0.0f: %s", cursor.X, cursor.Y, strings.Join(under, ", ")))
	return lines
}
