package anim

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// Skeleton owns a bone arena and the animations that drive it.
//
// Bones refer to their parent by index into the arena. A parent must be
// added before its children, so sorting by parent index yields an update
// order in which every parent precedes its children.
type Skeleton struct {
	// Position and Rotation are the root transform, driven externally
	// (usually by a physics body).
	Position mgl64.Vec2
	Rotation float64

	bones       []Bone
	updateOrder []int
	animations  []*Animation

	observers observers
}

// NewSkeleton creates an empty skeleton.
func NewSkeleton() *Skeleton {
	return &Skeleton{}
}

// Subscribe registers a listener for skeleton and animation changes. The
// returned function removes it.
func (s *Skeleton) Subscribe(fn Listener) func() {
	return s.observers.subscribe(fn)
}

func (s *Skeleton) emit(e Event) {
	s.observers.emit(e)
}

// AddBone appends a bone and returns its index. An unassigned index is set
// to the bone's slot; a preset index must match it.
func (s *Skeleton) AddBone(b Bone) (int, error) {
	slot := len(s.bones)
	if b.Index == NoIndex {
		b.Index = slot
	} else if b.Index != slot {
		return NoIndex, fmt.Errorf("bone %q index %d, expected %d: %w", b.Name, b.Index, slot, ErrBoneIndex)
	}
	if b.ParentIndex != NoIndex && (b.ParentIndex < 0 || b.ParentIndex >= slot) {
		return NoIndex, fmt.Errorf("bone %q parent %d: %w", b.Name, b.ParentIndex, ErrParentIndex)
	}
	if b.Scale == 0 {
		b.Scale = 1
	}
	s.bones = append(s.bones, b)
	s.rebuildUpdateOrder()
	s.emit(Event{Kind: EventBoneAdded, Frame: NoIndex, Bone: slot})
	return slot, nil
}

// Len returns the number of bones.
func (s *Skeleton) Len() int {
	return len(s.bones)
}

// Bone returns the bone at index, nil when out of range. Pose fields should
// be changed through the Set* methods so both representations stay in sync.
func (s *Skeleton) Bone(index int) *Bone {
	if index < 0 || index >= len(s.bones) {
		return nil
	}
	return &s.bones[index]
}

// Bones returns the bone arena in definition order.
func (s *Skeleton) Bones() []Bone {
	return s.bones
}

// BoneByName returns the first bone with the given name.
func (s *Skeleton) BoneByName(name string) *Bone {
	for i := range s.bones {
		if s.bones[i].Name == name {
			return &s.bones[i]
		}
	}
	return nil
}

// UpdateOrder returns bone indices with parents before children.
func (s *Skeleton) UpdateOrder() []int {
	return s.updateOrder
}

// Parent returns the parent of a bone, nil for roots.
func (s *Skeleton) Parent(index int) *Bone {
	b := s.Bone(index)
	if b == nil || b.IsRoot() {
		return nil
	}
	return s.Bone(b.ParentIndex)
}

// SetAbsolutePosition moves a bone in world space and recomputes its offset
// from the parent.
func (s *Skeleton) SetAbsolutePosition(index int, p mgl64.Vec2) {
	b := s.Bone(index)
	if b == nil {
		return
	}
	b.Position = p
	b.syncRelativePosition(s.Parent(index))
	s.changed(index)
}

// SetAbsoluteRotation sets a bone's world rotation and recomputes its
// rotation relative to the parent.
func (s *Skeleton) SetAbsoluteRotation(index int, r float64) {
	b := s.Bone(index)
	if b == nil {
		return
	}
	b.Rotation = r
	b.syncRelativeRotation(s.Parent(index))
	s.changed(index)
}

// SetRelativePosition sets a bone's offset from its parent and recomputes
// its world position.
func (s *Skeleton) SetRelativePosition(index int, p mgl64.Vec2) {
	b := s.Bone(index)
	if b == nil {
		return
	}
	b.RelativePosition = p
	b.syncAbsolutePosition(s.Parent(index))
	s.changed(index)
}

// SetRelativeRotation sets a bone's rotation relative to its parent and
// recomputes its world rotation.
func (s *Skeleton) SetRelativeRotation(index int, r float64) {
	b := s.Bone(index)
	if b == nil {
		return
	}
	b.RelativeRotation = r
	b.syncAbsoluteRotation(s.Parent(index))
	s.changed(index)
}

// UpdateRelativeDirection recaptures the orbit angle of a bone around its
// parent. Call it after building the rig or moving a bone by hand.
func (s *Skeleton) UpdateRelativeDirection(index int) {
	b := s.Bone(index)
	if b == nil {
		return
	}
	b.updateRelativeDirection(s.Parent(index))
}

func (s *Skeleton) changed(index int) {
	s.emit(Event{Kind: EventBoneChanged, Frame: NoIndex, Bone: index})
}

// Animations returns the skeleton's animations in insertion order.
func (s *Skeleton) Animations() []*Animation {
	return s.animations
}

// Animation returns the first animation with the given name.
func (s *Skeleton) Animation(name string) *Animation {
	for _, a := range s.animations {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// AddAnimation creates an animation whose keyframe 0 holds the current pose.
func (s *Skeleton) AddAnimation(name string) *Animation {
	a := NewAnimation(name, s)
	s.attach(a)
	return a
}

// AttachAnimation adopts an animation built elsewhere, e.g. by a decoder.
func (s *Skeleton) AttachAnimation(a *Animation) {
	s.attach(a)
}

func (s *Skeleton) attach(a *Animation) {
	a.emit = s.emit
	s.animations = append(s.animations, a)
	s.emit(Event{Kind: EventAnimationAdded, Animation: a, Frame: NoIndex, Bone: NoIndex})
}

// RemoveAnimation detaches an animation from the skeleton.
func (s *Skeleton) RemoveAnimation(a *Animation) error {
	i := slices.Index(s.animations, a)
	if i < 0 {
		return ErrUnknownAnimation
	}
	s.animations = slices.Delete(s.animations, i, i+1)
	a.emit = nil
	s.emit(Event{Kind: EventAnimationRemoved, Animation: a, Frame: NoIndex, Bone: NoIndex})
	return nil
}

// Update advances every active animation and recomputes the pose.
func (s *Skeleton) Update(dt float64) {
	for _, a := range s.animations {
		a.Update(dt)
	}
	s.TransformSkeleton()
}

// TransformSkeleton blends every active animation into each bone's relative
// rotation and propagates world poses from the root down.
func (s *Skeleton) TransformSkeleton() {
	active := s.activeAnimations()
	for _, i := range s.updateOrder {
		b := &s.bones[i]
		if len(active) > 0 {
			s.composeBone(b, active)
		}
		s.propagateBone(b)
	}
}

// composeBone writes the weighted sum of every keying animation's rotation
// into the bone. A share that comes out NaN (all weights zero) or exactly
// zero counts as 1.
func (s *Skeleton) composeBone(b *Bone, active []*Animation) {
	blendSum := 0.0
	for _, a := range active {
		blendSum += a.GetBlendFactor(b.Index)
	}

	rotation := 0.0
	contributors := 0
	for _, a := range active {
		if !a.HasBone(b.Index) {
			continue
		}
		share := a.GetBlendFactor(b.Index) / blendSum
		if math.IsNaN(share) || share == 0 {
			share = 1
		}
		rotation += a.TransformBone(b) * share
		contributors++
	}
	if contributors == 0 {
		return
	}
	b.RelativeRotation = rotation
}

func (s *Skeleton) propagateBone(b *Bone) {
	if b.IsRoot() {
		b.Position = s.Position
		b.Rotation = s.Rotation + b.RelativeRotation
		return
	}
	b.orbit(&s.bones[b.ParentIndex])
}

func (s *Skeleton) activeAnimations() []*Animation {
	var active []*Animation
	for _, a := range s.animations {
		if a.IsActive() {
			active = append(active, a)
		}
	}
	return active
}

func (s *Skeleton) rebuildUpdateOrder() {
	order := make([]int, len(s.bones))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(x, y int) int {
		return cmp.Compare(s.bones[x].ParentIndex, s.bones[y].ParentIndex)
	})
	s.updateOrder = order
}
