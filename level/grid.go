package level

import (
	"fmt"

	"github.com/milk9111/blockworld/common"
	"github.com/milk9111/blockworld/prefabs"
	"github.com/milk9111/blockworld/world"
)

type cell struct {
	x, y, w, h int
	key        string
}

func buildGrid(w *world.World, lvl *Level, g *prefabs.GridSpec) error {
	size := g.TileSize
	if size <= 0 {
		size = common.TileSize
	}

	for _, c := range gridCells(g) {
		es := g.Legend[c.key]
		es.X = g.OriginX + float64(c.x)*size
		es.Y = g.OriginY + float64(c.y)*size
		es.Width = float64(c.w) * size
		es.Height = float64(c.h) * size
		if es.Name != "" {
			es.Name = fmt.Sprintf("%s@%d,%d", es.Name, c.x, c.y)
		}
		if err := lvl.spawn(w, es); err != nil {
			return fmt.Errorf("level %s: grid cell %d,%d: %w", lvl.Name, c.x, c.y, err)
		}
	}
	return nil
}

// gridCells lists the occupied cells of g in row-major order. Runs of the same
// legend entry marked merge are joined greedily, widest first then tallest,
// into single rectangles.
func gridCells(g *prefabs.GridSpec) []cell {
	rows := make([][]rune, len(g.Rows))
	width := 0
	for i, r := range g.Rows {
		rows[i] = []rune(r)
		width = max(width, len(rows[i]))
	}
	height := len(rows)

	keyAt := func(x, y int) string {
		if y >= height || x >= len(rows[y]) {
			return ""
		}
		k := string(rows[y][x])
		if _, ok := g.Legend[k]; !ok {
			return ""
		}
		return k
	}

	processed := make([]bool, width*height)
	var cells []cell
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			if processed[idx] {
				continue
			}
			processed[idx] = true
			key := keyAt(x, y)
			if key == "" {
				continue
			}
			if !g.Legend[key].Merge {
				cells = append(cells, cell{x: x, y: y, w: 1, h: 1, key: key})
				continue
			}

			w := 1
			for x+w < width && !processed[y*width+x+w] && keyAt(x+w, y) == key {
				w++
			}

			h := 1
		heightLoop:
			for y+h < height {
				for xi := x; xi < x+w; xi++ {
					if processed[(y+h)*width+xi] || keyAt(xi, y+h) != key {
						break heightLoop
					}
				}
				h++
			}

			for yi := y; yi < y+h; yi++ {
				for xi := x; xi < x+w; xi++ {
					processed[yi*width+xi] = true
				}
			}
			cells = append(cells, cell{x: x, y: y, w: w, h: h, key: key})
		}
	}
	return cells
}
