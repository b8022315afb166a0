package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/blockworld/assets"
)

// Images caches decoded sprite sheets by asset key.
type Images struct {
	images map[string]*ebiten.Image
	failed map[string]error
}

func NewImages() *Images {
	return &Images{
		images: map[string]*ebiten.Image{},
		failed: map[string]error{},
	}
}

// Register stores an image by key.
func (c *Images) Register(key string, img *ebiten.Image) {
	if key == "" || img == nil {
		return
	}
	c.images[key] = img
	delete(c.failed, key)
}

// Load returns the cached image for key, loading it from assets or the
// filesystem on first use. A key that failed once keeps failing until
// Forget is called.
func (c *Images) Load(key string) (*ebiten.Image, error) {
	if key == "" {
		return nil, fmt.Errorf("render: empty image key")
	}
	if img, ok := c.images[key]; ok {
		return img, nil
	}
	if err, ok := c.failed[key]; ok {
		return nil, err
	}
	img, err := loadImageFromAssetsOrFS(key)
	if err != nil {
		c.failed[key] = err
		return nil, err
	}
	c.Register(key, img)
	return img, nil
}

// Forget drops every cached image, so edited sheets are read again.
func (c *Images) Forget() {
	clear(c.images)
	clear(c.failed)
}

func loadImageFromAssetsOrFS(path string) (*ebiten.Image, error) {
	if img, err := assets.Decode(path); err == nil {
		return ebiten.NewImageFromImage(img), nil
	}
	tried := []string{path, filepath.Join("assets", path), filepath.Base(path)}
	for _, p := range tried {
		if b, err := os.ReadFile(p); err == nil {
			if im, _, err := image.Decode(bytes.NewReader(b)); err == nil {
				return ebiten.NewImageFromImage(im), nil
			}
		}
	}
	return nil, fmt.Errorf("render: load image %s: not found", path)
}
