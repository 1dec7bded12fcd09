package system

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/rigdemo/internal/domain/anim"
)

// ErrRejected is returned when a command is well formed but the skeleton
// declines it, e.g. adding a keyframe that already exists.
var ErrRejected = errors.New("command rejected")

// Command is one editing operation on a skeleton
type Command interface {
	Name() string
	isCommand()
}

// AddAnimation creates an animation from the current pose
type AddAnimation struct {
	Animation string `json:"animation"`
}

// RemoveAnimation detaches an animation
type RemoveAnimation struct {
	Animation string `json:"animation"`
}

// AddKeyframe inserts an empty keyframe
type AddKeyframe struct {
	Animation string `json:"animation"`
	Frame     int    `json:"frame"`
}

// RemoveKeyframe deletes the keyframe at a frame number
type RemoveKeyframe struct {
	Animation string `json:"animation"`
	Frame     int    `json:"frame"`
}

// ResetKeyframe snapshots the whole pose into a keyframe
type ResetKeyframe struct {
	Animation string `json:"animation"`
	Frame     int    `json:"frame"`
}

// KeyBone stores one bone's current pose in a keyframe
type KeyBone struct {
	Animation string `json:"animation"`
	Frame     int    `json:"frame"`
	Bone      int    `json:"bone"`
}

// SetBlend sets a bone's blend factor in a keyframe
type SetBlend struct {
	Animation string  `json:"animation"`
	Frame     int     `json:"frame"`
	Bone      int     `json:"bone"`
	Factor    float64 `json:"factor"`
}

// RotateBone turns a bone relative to its parent, in radians
type RotateBone struct {
	Bone  int     `json:"bone"`
	Delta float64 `json:"delta"`
}

// MoveBone shifts a bone in world space. Moving a root moves the skeleton.
type MoveBone struct {
	Bone int     `json:"bone"`
	DX   float64 `json:"dx"`
	DY   float64 `json:"dy"`
}

// TogglePlay flips an animation between playing and stopped
type TogglePlay struct {
	Animation string `json:"animation"`
}

// SeekFrame jumps an animation's playhead
type SeekFrame struct {
	Animation string `json:"animation"`
	Frame     int    `json:"frame"`
}

func (*AddAnimation) Name() string    { return "addAnimation" }
func (*RemoveAnimation) Name() string { return "removeAnimation" }
func (*AddKeyframe) Name() string     { return "addKeyframe" }
func (*RemoveKeyframe) Name() string  { return "removeKeyframe" }
func (*ResetKeyframe) Name() string   { return "resetKeyframe" }
func (*KeyBone) Name() string         { return "keyBone" }
func (*SetBlend) Name() string        { return "setBlend" }
func (*RotateBone) Name() string      { return "rotateBone" }
func (*MoveBone) Name() string        { return "moveBone" }
func (*TogglePlay) Name() string      { return "togglePlay" }
func (*SeekFrame) Name() string       { return "seekFrame" }

func (*AddAnimation) isCommand()    {}
func (*RemoveAnimation) isCommand() {}
func (*AddKeyframe) isCommand()     {}
func (*RemoveKeyframe) isCommand()  {}
func (*ResetKeyframe) isCommand()   {}
func (*KeyBone) isCommand()         {}
func (*SetBlend) isCommand()        {}
func (*RotateBone) isCommand()      {}
func (*MoveBone) isCommand()        {}
func (*TogglePlay) isCommand()      {}
func (*SeekFrame) isCommand()       {}

// NewCommand returns an empty command for a name, ready to be decoded into
func NewCommand(name string) (Command, error) {
	switch name {
	case "addAnimation":
		return &AddAnimation{}, nil
	case "removeAnimation":
		return &RemoveAnimation{}, nil
	case "addKeyframe":
		return &AddKeyframe{}, nil
	case "removeKeyframe":
		return &RemoveKeyframe{}, nil
	case "resetKeyframe":
		return &ResetKeyframe{}, nil
	case "keyBone":
		return &KeyBone{}, nil
	case "setBlend":
		return &SetBlend{}, nil
	case "rotateBone":
		return &RotateBone{}, nil
	case "moveBone":
		return &MoveBone{}, nil
	case "togglePlay":
		return &TogglePlay{}, nil
	case "seekFrame":
		return &SeekFrame{}, nil
	}
	return nil, fmt.Errorf("unknown command %q", name)
}

// Apply runs a command against a skeleton. Pose edits are propagated
// immediately so the result shows while playback is stopped.
func Apply(s *anim.Skeleton, cmd Command) error {
	switch c := cmd.(type) {
	case *AddAnimation:
		if s.Animation(c.Animation) != nil {
			return fmt.Errorf("%s %s: %w", c.Name(), c.Animation, ErrRejected)
		}
		s.AddAnimation(c.Animation)
		return nil

	case *RemoveAnimation:
		a, err := animation(s, c.Animation)
		if err != nil {
			return err
		}
		return s.RemoveAnimation(a)

	case *AddKeyframe:
		a, err := animation(s, c.Animation)
		if err != nil {
			return err
		}
		if _, ok := a.AddKeyframe(c.Frame); !ok {
			return rejected(c, c.Frame)
		}
		return nil

	case *RemoveKeyframe:
		a, err := animation(s, c.Animation)
		if err != nil {
			return err
		}
		for i, kf := range a.Keyframes() {
			if kf.Frame == c.Frame && a.RemoveKeyframe(i) {
				return nil
			}
		}
		return rejected(c, c.Frame)

	case *ResetKeyframe:
		a, err := animation(s, c.Animation)
		if err != nil {
			return err
		}
		if !a.ResetKeyframe(c.Frame, s) {
			return rejected(c, c.Frame)
		}
		return nil

	case *KeyBone:
		a, err := animation(s, c.Animation)
		if err != nil {
			return err
		}
		b, err := bone(s, c.Bone)
		if err != nil {
			return err
		}
		if !a.KeyBone(c.Frame, *b) {
			return rejected(c, c.Frame)
		}
		return nil

	case *SetBlend:
		a, err := animation(s, c.Animation)
		if err != nil {
			return err
		}
		if !a.SetBlendFactor(c.Frame, c.Bone, c.Factor) {
			return rejected(c, c.Frame)
		}
		return nil

	case *RotateBone:
		b, err := bone(s, c.Bone)
		if err != nil {
			return err
		}
		s.SetRelativeRotation(c.Bone, b.RelativeRotation+c.Delta)
		s.TransformSkeleton()
		return nil

	case *MoveBone:
		b, err := bone(s, c.Bone)
		if err != nil {
			return err
		}
		delta := mgl64.Vec2{c.DX, c.DY}
		if b.IsRoot() {
			s.Position = s.Position.Add(delta)
		} else {
			s.SetAbsolutePosition(c.Bone, b.Position.Add(delta))
			s.UpdateRelativeDirection(c.Bone)
		}
		s.TransformSkeleton()
		return nil

	case *TogglePlay:
		a, err := animation(s, c.Animation)
		if err != nil {
			return err
		}
		a.SetActive(!a.IsActive())
		return nil

	case *SeekFrame:
		a, err := animation(s, c.Animation)
		if err != nil {
			return err
		}
		if c.Frame < 0 || c.Frame >= a.NumberOfFrames() {
			return rejected(c, c.Frame)
		}
		a.Seek(c.Frame)
		s.TransformSkeleton()
		return nil
	}
	return fmt.Errorf("unsupported command %T", cmd)
}

func animation(s *anim.Skeleton, name string) (*anim.Animation, error) {
	a := s.Animation(name)
	if a == nil {
		return nil, fmt.Errorf("animation %s: %w", name, anim.ErrUnknownAnimation)
	}
	return a, nil
}

func bone(s *anim.Skeleton, index int) (*anim.Bone, error) {
	b := s.Bone(index)
	if b == nil {
		return nil, fmt.Errorf("bone %d: %w", index, anim.ErrBoneIndex)
	}
	return b, nil
}

func rejected(cmd Command, frame int) error {
	return fmt.Errorf("%s at frame %d: %w", cmd.Name(), frame, ErrRejected)
}
