package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/blockworld/common"
	"github.com/milk9111/blockworld/world"
	"go.uber.org/zap"
)

var _ world.Canvas = (*Screen)(nil)

// Screen draws world entities onto an ebiten image, offset by a camera.
type Screen struct {
	dst    *ebiten.Image
	images *Images
	offset common.Vector2
	log    *zap.Logger
	// missing remembers images already reported as unloadable.
	missing map[string]bool
}

func NewScreen(images *Images, log *zap.Logger) *Screen {
	if images == nil {
		images = NewImages()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Screen{images: images, log: log, missing: map[string]bool{}}
}

// Begin targets dst for this frame, with offset as the world point drawn at
// the top-left corner.
func (s *Screen) Begin(dst *ebiten.Image, offset common.Vector2) {
	s.dst = dst
	s.offset = offset
}

func (s *Screen) Images() *Images {
	return s.images
}

// Reload forgets cached sheets and re-arms missing-image warnings.
func (s *Screen) Reload() {
	s.images.Forget()
	clear(s.missing)
}

func (s *Screen) FillRect(x, y, w, h float64, clr color.Color) {
	if s.dst == nil {
		return
	}
	vector.FillRect(s.dst, float32(x-s.offset.X), float32(y-s.offset.Y), float32(w), float32(h), clr, false)
}

// StrokeRect outlines a box in world coordinates.
func (s *Screen) StrokeRect(x, y, w, h float64, width float32, clr color.Color) {
	if s.dst == nil {
		return
	}
	vector.StrokeRect(s.dst, float32(x-s.offset.X), float32(y-s.offset.Y), float32(w), float32(h), width, clr, false)
}

func (s *Screen) DrawImageRegion(img string, src image.Rectangle, x, y, w, h float64) {
	if s.dst == nil || src.Empty() {
		return
	}
	sheet, err := s.images.Load(img)
	if err != nil {
		if !s.missing[img] {
			s.missing[img] = true
			s.log.Warn("sprite sheet unavailable", zap.String("image", img), zap.Error(err))
		}
		return
	}
	sub, ok := sheet.SubImage(src).(*ebiten.Image)
	if !ok {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(src.Dx()), h/float64(src.Dy()))
	op.GeoM.Translate(x-s.offset.X, y-s.offset.Y)
	s.dst.DrawImage(sub, op)
}
