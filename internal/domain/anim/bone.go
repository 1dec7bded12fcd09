// Package anim implements the skeletal animation core: bones arranged in a
// parent hierarchy, sparse keyframes, animations with playback state, and a
// skeleton that blends every active animation per bone each tick.
package anim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// NoIndex marks an unassigned bone index or the missing parent of a root bone.
const NoIndex = -1

// Bone is a rigid segment of a skeleton.
//
// Absolute pose is world-space. Relative pose is the offset from the parent:
// RelativePosition is the unrotated offset between the two positions,
// RelativeRotation the difference of rotations. RelativeDirection is the
// angle, measured in the parent's frame, at which the bone sits around its
// parent; it is fixed rig geometry and is not animated.
type Bone struct {
	Name        string
	Index       int
	ParentIndex int

	Position mgl64.Vec2
	Rotation float64

	RelativePosition  mgl64.Vec2
	RelativeRotation  float64
	RelativeDirection float64

	Scale  float64
	Length float64
}

// NewBone creates an unassigned bone with unit scale.
func NewBone(name string, parent int, length float64) Bone {
	return Bone{
		Name:        name,
		Index:       NoIndex,
		ParentIndex: parent,
		Scale:       1,
		Length:      length,
	}
}

// IsRoot reports whether the bone has no parent.
func (b *Bone) IsRoot() bool {
	return b.ParentIndex == NoIndex
}

// DeepClone returns a value copy of the bone, used as a keyframe target pose.
func (b *Bone) DeepClone() Bone {
	return *b
}

// End returns the world-space tip of the bone.
func (b *Bone) End() mgl64.Vec2 {
	sin, cos := math.Sincos(b.Rotation)
	return b.Position.Add(mgl64.Vec2{cos, sin}.Mul(b.Length * b.Scale))
}

// syncRelativePosition recomputes the relative offset from the parent's pose.
func (b *Bone) syncRelativePosition(parent *Bone) {
	if b.IsRoot() || parent == nil {
		return
	}
	b.RelativePosition = b.Position.Sub(parent.Position)
}

// syncAbsolutePosition recomputes the world position from the relative offset.
func (b *Bone) syncAbsolutePosition(parent *Bone) {
	if b.IsRoot() || parent == nil {
		return
	}
	b.Position = parent.Position.Add(b.RelativePosition)
}

func (b *Bone) syncRelativeRotation(parent *Bone) {
	if b.IsRoot() || parent == nil {
		return
	}
	b.RelativeRotation = b.Rotation - parent.Rotation
}

func (b *Bone) syncAbsoluteRotation(parent *Bone) {
	if b.IsRoot() || parent == nil {
		return
	}
	b.Rotation = parent.Rotation + b.RelativeRotation
}

// updateRelativeDirection captures where around the parent this bone sits.
func (b *Bone) updateRelativeDirection(parent *Bone) {
	if b.IsRoot() || parent == nil {
		return
	}
	d := b.Position.Sub(parent.Position)
	if d.X() == 0 && d.Y() == 0 {
		return // co-located with parent, direction is undefined
	}
	b.RelativeDirection = math.Atan2(d.Y(), d.X()) - parent.Rotation
}

// orbit places the bone around its parent at the rig's fixed direction,
// turned by the parent's current rotation.
func (b *Bone) orbit(parent *Bone) {
	radius := b.RelativePosition.Len()
	sin, cos := math.Sincos(b.RelativeDirection + parent.Rotation)
	b.Position = parent.Position.Add(mgl64.Vec2{cos, sin}.Mul(radius))
	b.RelativePosition = b.Position.Sub(parent.Position)
	b.syncAbsoluteRotation(parent)
	b.updateRelativeDirection(parent)
}
