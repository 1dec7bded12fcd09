package anim

import "math"

// Keyframe is a sparse snapshot of target bone poses at one frame number.
// Bones and blend factors are parallel lists in insertion order; lookups go
// through the stored bone's Index, never through list position.
type Keyframe struct {
	Frame int

	bones []Bone
	blend []float64
}

// NewKeyframe creates an empty keyframe at the given frame number.
func NewKeyframe(frame int) *Keyframe {
	return &Keyframe{Frame: frame}
}

// AddBone stores a target pose. A bone whose index is already present is
// swapped in place, keeping its list position and blend factor.
func (k *Keyframe) AddBone(b Bone) {
	if i := k.find(b.Index); i >= 0 {
		k.bones[i] = b
		return
	}
	k.bones = append(k.bones, b)
	k.blend = append(k.blend, 1)
}

// RemoveBone drops the target pose for a bone index. Missing bones are ignored.
func (k *Keyframe) RemoveBone(index int) {
	i := k.find(index)
	if i < 0 {
		return
	}
	k.bones = append(k.bones[:i], k.bones[i+1:]...)
	k.blend = append(k.blend[:i], k.blend[i+1:]...)
}

// ExistsBone reports whether the keyframe holds a pose for the bone index.
func (k *Keyframe) ExistsBone(index int) bool {
	return k.find(index) >= 0
}

// GetBone returns the stored target pose for a bone index.
func (k *Keyframe) GetBone(index int) (Bone, bool) {
	i := k.find(index)
	if i < 0 {
		return Bone{}, false
	}
	return k.bones[i], true
}

// Bones returns the stored poses in insertion order. The slice must not be
// modified.
func (k *Keyframe) Bones() []Bone {
	return k.bones
}

// Len returns the number of stored bone poses.
func (k *Keyframe) Len() int {
	return len(k.bones)
}

// SetBones clears the keyframe and captures every bone of the skeleton.
func (k *Keyframe) SetBones(s *Skeleton) {
	k.bones = k.bones[:0]
	k.blend = k.blend[:0]
	for i := range s.bones {
		k.AddBone(s.bones[i].DeepClone())
	}
}

// SetBlendFactor sets the weight of a stored bone, clamped to [0,1].
func (k *Keyframe) SetBlendFactor(index int, factor float64) {
	i := k.find(index)
	if i < 0 {
		return
	}
	k.blend[i] = clamp01(factor)
}

// GetBlendFactor returns the weight of a bone, 0 when the keyframe does not
// touch it.
func (k *Keyframe) GetBlendFactor(index int) float64 {
	i := k.find(index)
	if i < 0 {
		return 0
	}
	return k.blend[i]
}

func (k *Keyframe) find(index int) int {
	for i := range k.bones {
		if k.bones[i].Index == index {
			return i
		}
	}
	return -1
}

// clamp01 bounds a weight to [0,1]. NaN reads as 0.
func clamp01(f float64) float64 {
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
