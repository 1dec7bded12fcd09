package anim

import "errors"

var (
	// ErrBoneNotKeyed is returned when a keyframe search is run for a bone
	// that no keyframe of the animation touches.
	ErrBoneNotKeyed = errors.New("bone is not keyed in animation")

	// ErrBoneIndex is returned when a bone's preset index does not match its
	// slot in the skeleton, or an index is out of range.
	ErrBoneIndex = errors.New("invalid bone index")

	// ErrParentIndex is returned when a bone names a parent that has not
	// been added to the skeleton yet.
	ErrParentIndex = errors.New("invalid parent index")

	// ErrUnknownAnimation is returned when an animation is not owned by the
	// skeleton it is used with.
	ErrUnknownAnimation = errors.New("animation not in skeleton")
)
