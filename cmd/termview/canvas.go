package main

import (
	"image"
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/blockworld/assets"
	"github.com/milk9111/blockworld/common"
	"go.uber.org/zap"
)

// Canvas rasterises the world into terminal cells. Each cell is one flat
// color; sprites are drawn as the average color of their frame.
type Canvas struct {
	screen tcell.Screen
	log    *zap.Logger

	// world pixels covered by one cell; terminal cells are twice as tall as wide
	cellW, cellH float64
	offset       common.Vector2

	cols, rows int
	buf        []color.NRGBA

	images  map[string]image.Image
	failed  map[string]bool
	average map[spriteKey]color.NRGBA
}

type spriteKey struct {
	img string
	src image.Rectangle
}

func NewCanvas(screen tcell.Screen, cell float64, log *zap.Logger) *Canvas {
	if log == nil {
		log = zap.NewNop()
	}
	if cell <= 0 {
		cell = 8
	}
	return &Canvas{
		screen:  screen,
		log:     log,
		cellW:   cell,
		cellH:   cell * 2,
		images:  make(map[string]image.Image),
		failed:  make(map[string]bool),
		average: make(map[spriteKey]color.NRGBA),
	}
}

// ViewSize returns the world-space size of the visible area.
func (c *Canvas) ViewSize() (float64, float64) {
	cols, rows := c.screen.Size()
	return float64(cols) * c.cellW, float64(rows-1) * c.cellH
}

// Begin starts a frame. offset is the world point at the top-left cell.
// The last terminal row is kept for the status line.
func (c *Canvas) Begin(offset common.Vector2, bg color.Color) {
	c.offset = offset
	cols, rows := c.screen.Size()
	c.cols, c.rows = cols, max(rows-1, 0)
	if n := c.cols * c.rows; cap(c.buf) < n {
		c.buf = make([]color.NRGBA, n)
	} else {
		c.buf = c.buf[:n]
	}
	fill := toNRGBA(bg)
	fill.A = 0xff
	for i := range c.buf {
		c.buf[i] = fill
	}
}

func (c *Canvas) FillRect(x, y, w, h float64, clr color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	src := toNRGBA(clr)
	if src.A == 0 {
		return
	}
	x0, x1 := c.span(x-c.offset.X, w, c.cellW, c.cols)
	y0, y1 := c.span(y-c.offset.Y, h, c.cellH, c.rows)
	for row := y0; row < y1; row++ {
		for col := x0; col < x1; col++ {
			i := row*c.cols + col
			c.buf[i] = blend(c.buf[i], src)
		}
	}
}

func (c *Canvas) DrawImageRegion(img string, src image.Rectangle, x, y, w, h float64) {
	key := spriteKey{img: img, src: src}
	avg, ok := c.average[key]
	if !ok {
		decoded := c.image(img)
		if decoded == nil {
			return
		}
		avg = averageColor(decoded, src)
		c.average[key] = avg
	}
	c.FillRect(x, y, w, h, avg)
}

// At returns the color of a cell from the current frame.
func (c *Canvas) At(col, row int) color.NRGBA {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return color.NRGBA{}
	}
	return c.buf[row*c.cols+col]
}

// End flushes the frame and the status line to the terminal.
func (c *Canvas) End(status string) {
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			p := c.buf[row*c.cols+col]
			style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(p.R), int32(p.G), int32(p.B)))
			c.screen.SetContent(col, row, ' ', nil, style)
		}
	}

	statusStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	runes := []rune(status)
	for col := 0; col < c.cols; col++ {
		r := ' '
		if col < len(runes) {
			r = runes[col]
		}
		c.screen.SetContent(col, c.rows, r, nil, statusStyle)
	}
	c.screen.Show()
}

// Forget drops decoded images so edited assets are read again.
func (c *Canvas) Forget() {
	clear(c.images)
	clear(c.failed)
	clear(c.average)
}

func (c *Canvas) image(path string) image.Image {
	if img, ok := c.images[path]; ok {
		return img
	}
	if c.failed[path] {
		return nil
	}
	img, err := assets.Decode(path)
	if err != nil {
		c.failed[path] = true
		c.log.Warn("sprite image missing", zap.String("image", path), zap.Error(err))
		return nil
	}
	c.images[path] = img
	return img
}

// span maps a world interval onto the cells it touches, clipped to [0, n).
func (c *Canvas) span(start, size, cell float64, n int) (int, int) {
	lo := int(math.Floor(start / cell))
	hi := int(math.Ceil((start + size) / cell))
	return max(lo, 0), min(hi, n)
}

func toNRGBA(clr color.Color) color.NRGBA {
	if clr == nil {
		return color.NRGBA{}
	}
	return color.NRGBAModel.Convert(clr).(color.NRGBA)
}

// blend draws src over dst. dst is always opaque.
func blend(dst, src color.NRGBA) color.NRGBA {
	if src.A == 0xff {
		return src
	}
	a := uint32(src.A)
	mix := func(d, s uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*(0xff-a) + 0x7f) / 0xff)
	}
	return color.NRGBA{R: mix(dst.R, src.R), G: mix(dst.G, src.G), B: mix(dst.B, src.B), A: 0xff}
}

// averageColor averages the visible pixels of src, weighted by alpha.
func averageColor(img image.Image, src image.Rectangle) color.NRGBA {
	src = src.Intersect(img.Bounds())
	var r, g, b, a uint64
	for y := src.Min.Y; y < src.Max.Y; y++ {
		for x := src.Min.X; x < src.Max.X; x++ {
			p := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			w := uint64(p.A)
			r += uint64(p.R) * w
			g += uint64(p.G) * w
			b += uint64(p.B) * w
			a += w
		}
	}
	if a == 0 {
		return color.NRGBA{}
	}
	n := uint64(src.Dx() * src.Dy())
	return color.NRGBA{
		R: uint8(r / a),
		G: uint8(g / a),
		B: uint8(b / a),
		A: uint8(a / n),
	}
}
