package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/rigdemo/internal/domain/anim"
)

// PoseSource is the read-back side of a physics body: the only thing the
// animation side needs from the simulation.
type PoseSource interface {
	Position() mgl64.Vec2
	Angle() float64
}

// Visual is a drawable placed at a bone's pose each tick.
type Visual interface {
	SetPose(position mgl64.Vec2, rotation float64)
}

// Character owns a skeleton and drives its root from a physics body.
type Character struct {
	ID       EntityID
	Name     string
	Source   PoseSource
	Skeleton *anim.Skeleton

	// RootOffset is added to the source position, e.g. to put the hip above
	// the body's feet.
	RootOffset mgl64.Vec2

	visuals map[int]Visual
}

// NewCharacter creates a character. A nil source leaves the skeleton's root
// where it is, which is what the editor wants while posing.
func NewCharacter(id EntityID, name string, source PoseSource, skel *anim.Skeleton) *Character {
	return &Character{
		ID:       id,
		Name:     name,
		Source:   source,
		Skeleton: skel,
		visuals:  make(map[int]Visual),
	}
}

// Attach places a visual on a bone.
func (c *Character) Attach(bone int, v Visual) error {
	if c.Skeleton.Bone(bone) == nil {
		return fmt.Errorf("attach visual to %s: bone %d: %w", c.Name, bone, anim.ErrBoneIndex)
	}
	c.visuals[bone] = v
	return nil
}

// Detach removes the visual from a bone.
func (c *Character) Detach(bone int) {
	delete(c.visuals, bone)
}

// Update feeds the body pose into the skeleton root, steps the animations
// and moves attached visuals.
func (c *Character) Update(dt float64) {
	c.followSource()
	c.Skeleton.Update(dt)
	c.SyncVisuals()
}

// Pose is Update without advancing playback: the rig follows its body and
// shows the animations at their current frames.
func (c *Character) Pose() {
	c.followSource()
	c.Skeleton.TransformSkeleton()
	c.SyncVisuals()
}

func (c *Character) followSource() {
	if c.Source == nil {
		return
	}
	c.Skeleton.Position = c.Source.Position().Add(c.RootOffset)
	c.Skeleton.Rotation = c.Source.Angle()
}

// SyncVisuals copies each bone's world pose to its visual.
func (c *Character) SyncVisuals() {
	for idx, v := range c.visuals {
		b := c.Skeleton.Bone(idx)
		if b == nil {
			continue
		}
		v.SetPose(b.Position, b.Rotation)
	}
}
