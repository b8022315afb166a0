package world

import (
	"fmt"
	"image"
	"image/color"
)

type fakeSheets map[string]map[string]image.Rectangle

func (f fakeSheets) Frame(sheet, animation string) (SpriteFrame, error) {
	anims, ok := f[sheet]
	if !ok {
		return SpriteFrame{}, fmt.Errorf("sheet %q: %w", sheet, ErrUnknownSprite)
	}
	src, ok := anims[animation]
	if !ok {
		return SpriteFrame{}, fmt.Errorf("animation %q: %w", animation, ErrUnknownSprite)
	}
	return SpriteFrame{Sheet: sheet, Animation: animation, Image: "assets/" + sheet + ".png", Src: src}, nil
}

func testSheets() fakeSheets {
	return fakeSheets{
		"stone": {
			"idle": image.Rect(0, 0, 16, 16),
		},
		"player": {
			"idle":  image.Rect(0, 0, 16, 24),
			"idleL": image.Rect(16, 0, 32, 24),
			"idleR": image.Rect(32, 0, 48, 24),
		},
	}
}

type drawCall struct {
	op    string
	img   string
	src   image.Rectangle
	x, y  float64
	w, h  float64
	color color.Color
}

type recordingCanvas struct {
	calls []drawCall
}

func (c *recordingCanvas) FillRect(x, y, w, h float64, clr color.Color) {
	c.calls = append(c.calls, drawCall{op: "fill", x: x, y: y, w: w, h: h, color: clr})
}

func (c *recordingCanvas) DrawImageRegion(img string, src image.Rectangle, x, y, w, h float64) {
	c.calls = append(c.calls, drawCall{op: "image", img: img, src: src, x: x, y: y, w: w, h: h})
}
