package anim

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkeleton_AddBone(t *testing.T) {
	s := NewSkeleton()

	idx, err := s.AddBone(NewBone("root", NoIndex, 0))
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	preset := NewBone("arm", 0, 10)
	preset.Index = 1
	idx, err = s.AddBone(preset)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	wrong := NewBone("leg", 0, 10)
	wrong.Index = 7
	_, err = s.AddBone(wrong)
	assert.ErrorIs(t, err, ErrBoneIndex)

	_, err = s.AddBone(NewBone("orphan", 5, 10))
	assert.ErrorIs(t, err, ErrParentIndex)

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, "arm", s.BoneByName("arm").Name)
	assert.Nil(t, s.BoneByName("leg"))
	assert.Nil(t, s.Bone(9))
}

func TestSkeleton_UpdateOrder_ParentsFirst(t *testing.T) {
	s := NewSkeleton()
	names := []struct {
		name   string
		parent int
	}{
		{"hip", NoIndex},
		{"spine", 0},
		{"thigh", 0},
		{"head", 1},
		{"shin", 2},
		{"foot", 4},
	}
	for _, n := range names {
		_, err := s.AddBone(NewBone(n.name, n.parent, 10))
		require.NoError(t, err)
	}

	order := s.UpdateOrder()
	require.Len(t, order, len(names))

	seen := make(map[int]bool)
	for _, i := range order {
		b := s.Bone(i)
		if !b.IsRoot() {
			assert.True(t, seen[b.ParentIndex], "%s processed before its parent", b.Name)
		}
		seen[i] = true
	}
	// stable for ties: spine and thigh share parent 0 and keep definition order
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, order)
}

// newChainSkeleton builds A(root) -> B -> C laid out along +X, 10 apart.
func newChainSkeleton(t *testing.T) *Skeleton {
	t.Helper()
	s := NewSkeleton()
	for i, parent := range []int{NoIndex, 0, 1} {
		_, err := s.AddBone(NewBone(string(rune('A'+i)), parent, 10))
		require.NoError(t, err)
		s.SetAbsolutePosition(i, mgl64.Vec2{float64(i) * 10, 0})
		s.UpdateRelativeDirection(i)
	}
	return s
}

func TestSkeleton_TransformSkeleton_SameTickPropagation(t *testing.T) {
	s := newChainSkeleton(t)

	s.Position = mgl64.Vec2{100, 50}
	s.Rotation = math.Pi / 2
	s.TransformSkeleton()

	a, b, c := s.Bone(0), s.Bone(1), s.Bone(2)
	assertVec(t, mgl64.Vec2{100, 50}, a.Position, "root follows skeleton pose")
	assertVec(t, mgl64.Vec2{100, 60}, b.Position, "B orbits the moved root")
	assertVec(t, mgl64.Vec2{100, 70}, c.Position, "C uses B's position from this tick")
	assert.InDelta(t, math.Pi/2, c.Rotation, eps)
}

func TestSkeleton_TransformSkeleton_ChildRotationTurnsGrandchild(t *testing.T) {
	s := newChainSkeleton(t)
	s.Position = mgl64.Vec2{0, 0}
	s.SetRelativeRotation(1, math.Pi/2)

	s.TransformSkeleton()

	assertVec(t, mgl64.Vec2{10, 0}, s.Bone(1).Position, "a bone's own rotation does not move it")
	assertVec(t, mgl64.Vec2{10, 10}, s.Bone(2).Position, "child orbits the rotated parent")
}

func TestSkeleton_Scenario_HalfwayRotation(t *testing.T) {
	s := newArmSkeleton(t)
	a := s.AddAnimation("raise")
	a.SetFrameTime(0.1)
	require.Equal(t, 20, a.NumberOfFrames())

	_, ok := a.AddKeyframe(10)
	require.True(t, ok)
	target := s.Bone(1).DeepClone()
	target.RelativeRotation = math.Pi / 2
	require.True(t, a.KeyBone(10, target))
	a.SetActive(true)

	for i := 0; i < 5; i++ {
		s.Update(0.1)
	}

	assert.Equal(t, 5, a.CurrentFrame())
	assert.InDelta(t, math.Pi/4, s.Bone(1).RelativeRotation, 1e-9)
	assert.InDelta(t, math.Pi/4, s.Bone(1).Rotation, 1e-9)
	assertVec(t, mgl64.Vec2{50, 0}, s.Bone(1).Position, "arm joint stays on the root")
}

// keyOnly keys bone 1 at keyframe 0 with a fixed rotation and factor, and
// drops every other bone from the snapshot.
func keyOnly(t *testing.T, s *Skeleton, name string, rotation, factor float64) *Animation {
	t.Helper()
	a := s.AddAnimation(name)
	kf := a.GetKeyframe(0)
	for _, b := range s.Bones() {
		kf.RemoveBone(b.Index)
	}
	target := s.Bone(1).DeepClone()
	target.RelativeRotation = rotation
	require.True(t, a.KeyBone(0, target))
	require.True(t, a.SetBlendFactor(0, 1, factor))
	a.SetActive(true)
	return a
}

func TestSkeleton_Blend_Normalized(t *testing.T) {
	s := newArmSkeleton(t)
	keyOnly(t, s, "a", 1.0, 0.3)
	keyOnly(t, s, "b", 2.0, 0.7)

	s.TransformSkeleton()

	assert.InDelta(t, 0.3*1.0+0.7*2.0, s.Bone(1).RelativeRotation, 1e-9)
}

func TestSkeleton_Blend_ZeroWeightFallback(t *testing.T) {
	s := newArmSkeleton(t)
	keyOnly(t, s, "a", 1.5, 0)
	other := s.AddAnimation("b")
	other.GetKeyframe(0).RemoveBone(1)
	other.SetActive(true)

	s.TransformSkeleton()

	assert.InDelta(t, 1.5, s.Bone(1).RelativeRotation, 1e-9, "sole contributor drives the bone unweighted")
}

func TestSkeleton_Blend_NaNFactorCountsAsZero(t *testing.T) {
	s := newArmSkeleton(t)
	keyOnly(t, s, "a", 1.0, 0.5)
	keyOnly(t, s, "b", 2.0, math.NaN())

	s.TransformSkeleton()

	assert.InDelta(t, 1.0, s.Bone(1).RelativeRotation, 1e-9)
}

func TestSkeleton_Blend_InactiveIgnored(t *testing.T) {
	s := newArmSkeleton(t)
	keyOnly(t, s, "a", 1.0, 1)
	b := keyOnly(t, s, "b", 3.0, 1)
	b.SetActive(false)

	s.TransformSkeleton()

	assert.InDelta(t, 1.0, s.Bone(1).RelativeRotation, 1e-9)
}

func TestSkeleton_NoActiveAnimation_KeepsManualPose(t *testing.T) {
	s := newArmSkeleton(t)
	a := s.AddAnimation("idle")
	require.False(t, a.IsActive())

	s.SetRelativeRotation(1, 0.8)
	s.Update(1)

	assert.InDelta(t, 0.8, s.Bone(1).RelativeRotation, eps)
	assert.InDelta(t, 0.8, s.Bone(1).Rotation, eps)
}

func TestSkeleton_RemoveAnimation(t *testing.T) {
	s := newArmSkeleton(t)
	a := s.AddAnimation("one")
	s.AddAnimation("two")

	require.NoError(t, s.RemoveAnimation(a))
	assert.Len(t, s.Animations(), 1)
	assert.Nil(t, s.Animation("one"))
	assert.ErrorIs(t, s.RemoveAnimation(a), ErrUnknownAnimation)
}

func TestSkeleton_Events(t *testing.T) {
	s := newArmSkeleton(t)
	var kinds []EventKind
	unsubscribe := s.Subscribe(func(e Event) { kinds = append(kinds, e.Kind) })

	a := s.AddAnimation("walk")
	_, _ = a.AddKeyframe(3)
	a.ResetKeyframe(3, s)
	a.SetActive(true)
	a.SetActive(true) // no change, no event
	_ = a.RemoveKeyframe(1)
	s.SetAbsoluteRotation(1, 0.1)
	require.NoError(t, s.RemoveAnimation(a))

	assert.Equal(t, []EventKind{
		EventAnimationAdded,
		EventKeyframeAdded,
		EventKeyframeReset,
		EventPlayStateChanged,
		EventKeyframeRemoved,
		EventBoneChanged,
		EventAnimationRemoved,
	}, kinds)

	unsubscribe()
	s.AddAnimation("run")
	assert.Len(t, kinds, 7, "no events after unsubscribe")

	// a detached animation no longer reports
	a.SetActive(false)
	assert.Len(t, kinds, 7)
}

func TestEventKind_String(t *testing.T) {
	assert.Equal(t, "KeyframeAdded", EventKeyframeAdded.String())
	assert.Equal(t, "Unknown", EventKind(99).String())
}
