package editor

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Camera is the top-left corner of the view in world pixels. It scrolls
// toward a target with a tween instead of jumping.
type Camera struct {
	X, Y float64

	duration float32
	tweenX   *gween.Tween
	tweenY   *gween.Tween
	targetX  float64
	targetY  float64
}

// NewCamera creates a camera that takes duration seconds to reach a new
// target. Zero or less jumps immediately.
func NewCamera(duration float64) *Camera {
	return &Camera{duration: float32(duration)}
}

// ScrollTo starts moving toward a target, restarting from where the camera
// is now.
func (c *Camera) ScrollTo(x, y float64) {
	c.targetX, c.targetY = x, y
	if c.duration <= 0 {
		c.X, c.Y = x, y
		c.tweenX, c.tweenY = nil, nil
		return
	}
	c.tweenX = gween.New(float32(c.X), float32(x), c.duration, ease.OutQuad)
	c.tweenY = gween.New(float32(c.Y), float32(y), c.duration, ease.OutQuad)
}

// Follow retargets only once the current scroll has finished and the target
// has moved by at least a pixel, so a walking character does not restart
// the tween every tick.
func (c *Camera) Follow(x, y float64) {
	if c.Scrolling() {
		return
	}
	if math.Abs(x-c.X) < 1 && math.Abs(y-c.Y) < 1 {
		return
	}
	c.ScrollTo(x, y)
}

// Scrolling reports whether a tween is in progress
func (c *Camera) Scrolling() bool {
	return c.tweenX != nil
}

// Target returns where the camera is heading
func (c *Camera) Target() (float64, float64) {
	return c.targetX, c.targetY
}

// Update advances the scroll
func (c *Camera) Update(dt float64) {
	if c.tweenX == nil {
		return
	}
	x, doneX := c.tweenX.Update(float32(dt))
	y, doneY := c.tweenY.Update(float32(dt))
	c.X, c.Y = float64(x), float64(y)
	if doneX && doneY {
		c.X, c.Y = c.targetX, c.targetY
		c.tweenX, c.tweenY = nil, nil
	}
}

// View returns the integer camera offset clamped so the view stays inside a
// world of worldW x worldH pixels. A world smaller than the view pins to 0.
func (c *Camera) View(viewW, viewH, worldW, worldH int) (int, int) {
	return clampView(int(math.Round(c.X)), viewW, worldW), clampView(int(math.Round(c.Y)), viewH, worldH)
}

func clampView(v, view, world int) int {
	if v > world-view {
		v = world - view
	}
	if v < 0 {
		v = 0
	}
	return v
}
