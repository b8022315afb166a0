package camera

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/blockworld/common"
)

// Camera centres the view on a world point, eased and clamped to the level.
type Camera struct {
	Pos common.Vector2

	screenW float64
	screenH float64
	// smoothing factor (0..1). higher -> faster follow
	smooth float64
	bounds cp.BB
	// bounded is false until SetBounds; the view is then unclamped.
	bounded bool
}

func New(screenW, screenH int) *Camera {
	return &Camera{
		Pos:     common.V(float64(screenW)/2, float64(screenH)/2),
		screenW: float64(screenW),
		screenH: float64(screenH),
		smooth:  0.15,
	}
}

func (c *Camera) SetSmooth(f float64) {
	c.smooth = common.Clamp01(f)
}

func (c *Camera) SetBounds(bb cp.BB) {
	c.bounds = bb
	c.bounded = true
}

// ViewTopLeft returns the world-space top-left of the current view.
func (c *Camera) ViewTopLeft() common.Vector2 {
	return common.V(c.Pos.X-c.screenW/2, c.Pos.Y-c.screenH/2)
}

// Update eases the camera toward target. Call once per Update tick.
func (c *Camera) Update(target common.Vector2) {
	if c.smooth <= 0 {
		c.Pos = target
	} else {
		c.Pos = common.V(
			common.Lerp(c.Pos.X, target.X, c.smooth),
			common.Lerp(c.Pos.Y, target.Y, c.smooth),
		)
	}
	c.settle()
}

// SnapTo places the camera without easing, e.g. after a level load.
func (c *Camera) SnapTo(target common.Vector2) {
	c.Pos = target
	c.settle()
}

func (c *Camera) settle() {
	// whole pixels keep sprite texels aligned
	c.Pos = common.V(math.Round(c.Pos.X), math.Round(c.Pos.Y))
	if !c.bounded {
		return
	}
	c.Pos.X = clampAxis(c.Pos.X, c.bounds.L, c.bounds.R, c.screenW/2)
	c.Pos.Y = clampAxis(c.Pos.Y, c.bounds.B, c.bounds.T, c.screenH/2)
}

func clampAxis(v, lo, hi, half float64) float64 {
	minV, maxV := lo+half, hi-half
	if maxV < minV {
		// level smaller than the view: centre on it
		return (lo + hi) / 2
	}
	return max(minV, min(v, maxV))
}
