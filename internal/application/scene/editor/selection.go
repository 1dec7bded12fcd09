package editor

import (
	"fmt"

	"github.com/younwookim/rigdemo/internal/application/system"
	"github.com/younwookim/rigdemo/internal/domain/anim"
)

// cycle moves i by d and wraps it into [0, n). Zero n gives 0.
func cycle(i, d, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i+d)%n + n) % n
}

func delta(next, prev bool) int {
	switch {
	case next && !prev:
		return 1
	case prev && !next:
		return -1
	}
	return 0
}

func currentAnimation(s *anim.Skeleton, index int) *anim.Animation {
	anims := s.Animations()
	if index < 0 || index >= len(anims) {
		return nil
	}
	return anims[index]
}

// selection describes what the editor points at for the input system
func selection(s *anim.Skeleton, animIndex, boneIndex int) system.Selection {
	sel := system.Selection{
		Bone:    boneIndex,
		NewName: nextAnimationName(s),
	}
	if s.Bone(boneIndex) == nil {
		sel.Bone = -1
	}

	a := currentAnimation(s, animIndex)
	if a == nil {
		return sel
	}
	sel.Animation = a.Name
	sel.Frame = a.CurrentFrame()
	sel.NumberOfFrames = a.NumberOfFrames()
	sel.IsKeyframe = a.IsKeyframe(sel.Frame)
	if kf := a.GetKeyframe(sel.Frame); kf != nil && sel.Bone >= 0 {
		sel.Blend = kf.GetBlendFactor(sel.Bone)
	}
	return sel
}

// nextAnimationName returns the first unused name of the form animN
func nextAnimationName(s *anim.Skeleton) string {
	for i := len(s.Animations()) + 1; ; i++ {
		name := fmt.Sprintf("anim%d", i)
		if s.Animation(name) == nil {
			return name
		}
	}
}

// frameCell returns the left edge and width of a frame's cell on a
// timeline starting at x and w pixels wide.
func frameCell(frame, n int, x, w float64) (float64, float64) {
	if n <= 0 {
		return x, w
	}
	cell := w / float64(n)
	return x + float64(frame)*cell, cell
}
