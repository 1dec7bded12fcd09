package entity

import "github.com/go-gl/mathgl/mgl64"

// PositionScale is the internal position scale factor.
// 1 pixel = 100 internal units. This provides 0.01 pixel precision.
const PositionScale = 100

// Body is the rigid body a character stands on.
// Position is stored at 100x scale for sub-pixel precision without floats.
// Velocity is stored as float in 100x scale units per second.
type Body struct {
	X, Y   int     // 100x scaled position (divide by PositionScale for pixels)
	VX, VY float64 // 100x scaled velocity (units per second)

	Rotation        float64 // radians
	AngularVelocity float64 // radians per second

	Hitbox HitboxRect

	OnGround    bool
	OnCeiling   bool
	OnWallLeft  bool
	OnWallRight bool
	FacingRight bool
}

// PixelX returns the pixel X position (internal X / PositionScale)
func (b *Body) PixelX() int {
	return b.X / PositionScale
}

// PixelY returns the pixel Y position (internal Y / PositionScale)
func (b *Body) PixelY() int {
	return b.Y / PositionScale
}

// SetPixelPos sets the position from pixel coordinates (converts to 100x scale)
func (b *Body) SetPixelPos(x, y int) {
	b.X = x * PositionScale
	b.Y = y * PositionScale
}

// Position returns the body's position in pixels with sub-pixel precision.
func (b *Body) Position() mgl64.Vec2 {
	return mgl64.Vec2{float64(b.X) / PositionScale, float64(b.Y) / PositionScale}
}

// Angle returns the body's rotation in radians.
func (b *Body) Angle() float64 {
	return b.Rotation
}

// ApplyVelocity returns the internal units to move this step.
// With 100x scale, no remainder accumulation is needed as precision is built-in.
func (b *Body) ApplyVelocity(dt float64) (dx, dy int) {
	dx = int(b.VX * dt)
	dy = int(b.VY * dt)
	return dx, dy
}

// HitboxRect represents a collision rectangle relative to the body origin,
// in pixels
type HitboxRect struct {
	OffsetX int
	OffsetY int
	Width   int
	Height  int
}

// GetWorldRect returns the hitbox rect in world pixel coordinates
func (hr HitboxRect) GetWorldRect(bodyX, bodyY int, facingRight bool, spriteWidth int) (x, y, w, h int) {
	offsetX := hr.OffsetX
	if !facingRight {
		// Mirror the offset for left-facing
		offsetX = spriteWidth - hr.OffsetX - hr.Width
	}
	return bodyX + offsetX, bodyY + hr.OffsetY, hr.Width, hr.Height
}
