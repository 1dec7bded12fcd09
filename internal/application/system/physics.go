package system

import (
	"github.com/younwookim/rigdemo/internal/domain/entity"
	"github.com/younwookim/rigdemo/internal/infrastructure/config"
)

// PhysicsSystem moves a body under gravity and resolves tile collisions.
// It is the pose source for a character's skeleton root.
type PhysicsSystem struct {
	config *config.PhysicsSettings
	level  *entity.Level
}

// NewPhysicsSystem creates a new physics system
func NewPhysicsSystem(cfg *config.PhysicsSettings, level *entity.Level) *PhysicsSystem {
	return &PhysicsSystem{
		config: cfg,
		level:  level,
	}
}

// Update applies gravity, integrates velocity and rotation, and collides
// with the level.
func (s *PhysicsSystem) Update(body *entity.Body, dt float64) {
	s.applyGravity(body, dt)

	dx, dy := body.ApplyVelocity(dt)
	s.applyMovement(body, dx, dy)

	body.Rotation += body.AngularVelocity * dt

	if body.VX > 0 {
		body.FacingRight = true
	} else if body.VX < 0 {
		body.FacingRight = false
	}
}

// applyGravity applies gravity acceleration to the body
func (s *PhysicsSystem) applyGravity(body *entity.Body, dt float64) {
	body.VY += s.config.Gravity * entity.PositionScale * dt

	maxFall := s.config.MaxFallSpeed * entity.PositionScale
	if body.VY > maxFall {
		body.VY = maxFall
	}
}

// applyMovement moves the body axis by axis in pixel substeps
func (s *PhysicsSystem) applyMovement(body *entity.Body, dx, dy int) {
	body.OnGround = false
	body.OnCeiling = false
	body.OnWallLeft = false
	body.OnWallRight = false

	s.resolveOverlap(body)
	s.moveX(body, dx)
	s.moveY(body, dy)
	s.resolveOverlap(body)
}

// moveX moves the body horizontally by dx internal units
func (s *PhysicsSystem) moveX(body *entity.Body, dx int) {
	for dx != 0 {
		step := clampStep(dx)
		if s.collidesAt(body, body.X+step, body.Y) {
			body.VX = 0
			if step > 0 {
				body.OnWallRight = true
			} else {
				body.OnWallLeft = true
			}
			return
		}
		body.X += step
		dx -= step
	}
}

// moveY moves the body vertically by dy internal units
func (s *PhysicsSystem) moveY(body *entity.Body, dy int) {
	for dy != 0 {
		step := clampStep(dy)
		if s.collidesAt(body, body.X, body.Y+step) {
			body.VY = 0
			if step > 0 {
				body.OnGround = true
			} else {
				body.OnCeiling = true
			}
			return
		}
		body.Y += step
		dy -= step
	}
}

// clampStep limits a move to one pixel so thin tiles are not skipped
func clampStep(d int) int {
	if d > entity.PositionScale {
		return entity.PositionScale
	}
	if d < -entity.PositionScale {
		return -entity.PositionScale
	}
	return d
}

// collidesAt checks the hitbox at an internal position
func (s *PhysicsSystem) collidesAt(body *entity.Body, x, y int) bool {
	hb := body.Hitbox
	px, py, w, h := hb.GetWorldRect(floorDiv(x, entity.PositionScale), floorDiv(y, entity.PositionScale), body.FacingRight, hitboxSpan(hb))
	return s.isSolidRect(px, py, w, h)
}

// hitboxSpan is the sprite width the hitbox mirrors within
func hitboxSpan(hb entity.HitboxRect) int {
	return 2*hb.OffsetX + hb.Width
}

// resolveOverlap pushes the body out of any solid tiles it overlaps.
// Returns false when no push within range clears it and the body was reset
// to the level spawn.
func (s *PhysicsSystem) resolveOverlap(body *entity.Body) bool {
	const maxPushOut = 8 // pixels per axis

	if !s.collidesAt(body, body.X, body.Y) {
		return true
	}

	type pushOption struct {
		dx, dy   int
		distance int
	}
	var options []pushOption

	directions := []struct{ dx, dy int }{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	for _, d := range directions {
		for i := 1; i <= maxPushOut; i++ {
			tx := body.X + d.dx*i*entity.PositionScale
			ty := body.Y + d.dy*i*entity.PositionScale
			if !s.collidesAt(body, tx, ty) {
				options = append(options, pushOption{d.dx * i, d.dy * i, i})
				break
			}
		}
	}

	if len(options) == 0 {
		body.SetPixelPos(s.level.SpawnX, s.level.SpawnY)
		body.VX = 0
		body.VY = 0
		return false
	}

	best := options[0]
	for _, opt := range options[1:] {
		if opt.distance < best.distance {
			best = opt
		}
	}

	body.X += best.dx * entity.PositionScale
	body.Y += best.dy * entity.PositionScale

	if best.dx > 0 {
		body.OnWallLeft = true
		body.VX = 0
	} else if best.dx < 0 {
		body.OnWallRight = true
		body.VX = 0
	}
	if best.dy > 0 {
		body.OnCeiling = true
		body.VY = 0
	} else if best.dy < 0 {
		body.OnGround = true
		body.VY = 0
	}
	return true
}

// isSolidRect checks if any tile in the pixel rect is solid
func (s *PhysicsSystem) isSolidRect(x, y, w, h int) bool {
	tileSize := s.level.TileSize
	if tileSize <= 0 {
		tileSize = 16
	}

	startTX := floorDiv(x, tileSize)
	endTX := floorDiv(x+w-1, tileSize)
	startTY := floorDiv(y, tileSize)
	endTY := floorDiv(y+h-1, tileSize)

	for ty := startTY; ty <= endTY; ty++ {
		for tx := startTX; tx <= endTX; tx++ {
			if s.level.GetTile(tx, ty).Solid {
				return true
			}
		}
	}
	return false
}

// floorDiv rounds toward negative infinity so -1px maps to tile -1
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
