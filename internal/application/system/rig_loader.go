package system

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/rigdemo/internal/domain/anim"
	"github.com/younwookim/rigdemo/internal/infrastructure/config"
)

// LoadRig builds a skeleton and its animations from a RigConfig. Playback
// values fill in what an animation leaves unset.
func LoadRig(cfg *config.RigConfig, playback config.PlaybackConfig) (*anim.Skeleton, error) {
	s := anim.NewSkeleton()
	indices := make(map[string]int, len(cfg.Bones))

	for _, bc := range cfg.Bones {
		if _, dup := indices[bc.Name]; dup {
			return nil, fmt.Errorf("rig %s: duplicate bone %s", cfg.Name, bc.Name)
		}
		parent := anim.NoIndex
		if bc.Parent != "" {
			p, ok := indices[bc.Parent]
			if !ok {
				return nil, fmt.Errorf("rig %s: bone %s: parent %s: %w", cfg.Name, bc.Name, bc.Parent, anim.ErrParentIndex)
			}
			parent = p
		}

		b := anim.NewBone(bc.Name, parent, bc.Length)
		if bc.Scale != 0 {
			b.Scale = bc.Scale
		}
		idx, err := s.AddBone(b)
		if err != nil {
			return nil, fmt.Errorf("rig %s: %w", cfg.Name, err)
		}
		indices[bc.Name] = idx

		pos := mgl64.Vec2{bc.X, bc.Y}
		rot := mgl64.DegToRad(bc.Rotation)
		if parent == anim.NoIndex {
			s.Position = pos
			s.SetAbsolutePosition(idx, pos)
			s.SetRelativeRotation(idx, rot)
			s.SetAbsoluteRotation(idx, rot)
			continue
		}
		s.SetAbsolutePosition(idx, pos)
		s.SetAbsoluteRotation(idx, rot)
		s.UpdateRelativeDirection(idx)
	}

	for _, ac := range cfg.Animations {
		if err := loadAnimation(s, indices, ac, playback); err != nil {
			return nil, fmt.Errorf("rig %s: %w", cfg.Name, err)
		}
	}

	s.TransformSkeleton()
	return s, nil
}

func loadAnimation(s *anim.Skeleton, indices map[string]int, ac config.AnimationConfig, playback config.PlaybackConfig) error {
	if s.Animation(ac.Name) != nil {
		return fmt.Errorf("duplicate animation %s", ac.Name)
	}
	a := s.AddAnimation(ac.Name)

	frameTime := firstPositive(ac.FrameTime, playback.FrameTime)
	if frameTime > 0 {
		a.SetFrameTime(frameTime)
	}
	if n := ac.NumberOfFrames; n > 0 || playback.NumberOfFrames > 0 {
		if n <= 0 {
			n = playback.NumberOfFrames
		}
		if !a.SetNumberOfFrames(n) {
			return fmt.Errorf("animation %s: invalid frame count %d", ac.Name, n)
		}
	}
	switch {
	case ac.Strength != nil:
		a.SetStrength(*ac.Strength)
	case playback.Strength > 0:
		a.SetStrength(playback.Strength)
	}

	for _, kc := range ac.Keyframes {
		if !a.IsKeyframe(kc.Frame) {
			if _, ok := a.AddKeyframe(kc.Frame); !ok {
				return fmt.Errorf("animation %s: keyframe %d outside 0..%d", ac.Name, kc.Frame, a.NumberOfFrames()-1)
			}
		}
		for _, kb := range kc.Bones {
			idx, ok := indices[kb.Bone]
			if !ok {
				return fmt.Errorf("animation %s: keyframe %d: unknown bone %s: %w", ac.Name, kc.Frame, kb.Bone, anim.ErrBoneIndex)
			}
			target := s.Bone(idx).DeepClone()
			target.RelativeRotation += mgl64.DegToRad(kb.Turn)
			a.KeyBone(kc.Frame, target)
			if kb.Blend != nil {
				a.SetBlendFactor(kc.Frame, idx, *kb.Blend)
			}
		}
	}

	a.SetActive(ac.Active)
	return nil
}

func firstPositive(values ...float64) float64 {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
