package world

import (
	"errors"
	"fmt"
	"image"
)

// IdleAnimation is the frame every sprite entity starts on.
const IdleAnimation = "idle"

// ErrUnknownSprite is returned when a sheet or animation is not configured.
var ErrUnknownSprite = errors.New("unknown sprite")

// SpriteFrame is the source region of a sprite sheet an entity draws.
type SpriteFrame struct {
	Sheet     string
	Animation string
	// Image is the asset key of the sheet image, root path included.
	Image string
	Src   image.Rectangle
}

// SpriteSheets looks up animation frames by sheet and animation name.
type SpriteSheets interface {
	Frame(sheet, animation string) (SpriteFrame, error)
}

// SetupSprite points the entity at the given animation of its sheet. An empty
// animation selects IdleAnimation.
func (e *Entity) SetupSprite(sheets SpriteSheets, animation string) error {
	if sheets == nil {
		return fmt.Errorf("world: setup sprite %q: no sprite sheets", e.Sprite.Sheet)
	}
	if animation == "" {
		animation = IdleAnimation
	}
	frame, err := sheets.Frame(e.Sprite.Sheet, animation)
	if err != nil {
		return fmt.Errorf("world: setup sprite %s/%s: %w", e.Sprite.Sheet, animation, err)
	}
	e.Sprite = frame
	return nil
}
