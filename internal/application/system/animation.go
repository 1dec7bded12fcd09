package system

import (
	"github.com/younwookim/rigdemo/internal/ecs"
)

// AnimationSystem steps every character's rig once per tick, after physics
// has moved the bodies.
type AnimationSystem struct {
	world  *ecs.World
	paused bool
}

// NewAnimationSystem creates an animation system over a world
func NewAnimationSystem(world *ecs.World) *AnimationSystem {
	return &AnimationSystem{world: world}
}

// SetPaused freezes playback. Rigs still follow their bodies and show
// edits while paused.
func (s *AnimationSystem) SetPaused(paused bool) {
	s.paused = paused
}

// Paused reports whether playback is frozen
func (s *AnimationSystem) Paused() bool {
	return s.paused
}

// Update advances all characters in creation order
func (s *AnimationSystem) Update(dt float64) {
	for _, id := range s.world.Characters() {
		c := s.world.Character[id]
		if s.paused {
			c.Pose()
			continue
		}
		c.Update(dt)
	}
}
