package anim

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

// newArmSkeleton builds root(0) at the origin with a child arm(1) at (50,0).
func newArmSkeleton(t *testing.T) *Skeleton {
	t.Helper()
	s := NewSkeleton()
	_, err := s.AddBone(NewBone("root", NoIndex, 0))
	require.NoError(t, err)
	_, err = s.AddBone(NewBone("arm", 0, 50))
	require.NoError(t, err)
	s.SetAbsolutePosition(1, mgl64.Vec2{50, 0})
	s.UpdateRelativeDirection(1)
	return s
}

func assertVec(t *testing.T, want, got mgl64.Vec2, msg string) {
	t.Helper()
	assert.InDelta(t, want.X(), got.X(), 1e-6, msg+" (x)")
	assert.InDelta(t, want.Y(), got.Y(), 1e-6, msg+" (y)")
}

func TestNewBone(t *testing.T) {
	b := NewBone("hip", NoIndex, 12)

	assert.Equal(t, "hip", b.Name)
	assert.Equal(t, NoIndex, b.Index)
	assert.True(t, b.IsRoot())
	assert.Equal(t, 1.0, b.Scale)
	assert.Equal(t, 12.0, b.Length)
}

func TestBone_DeepClone(t *testing.T) {
	b := Bone{
		Name:              "shin",
		Index:             3,
		ParentIndex:       2,
		Position:          mgl64.Vec2{1, 2},
		Rotation:          0.5,
		RelativePosition:  mgl64.Vec2{3, 4},
		RelativeRotation:  0.25,
		RelativeDirection: 1.5,
		Scale:             2,
		Length:            30,
	}

	c := b.DeepClone()
	assert.Equal(t, b, c)

	c.Rotation = 9
	assert.Equal(t, 0.5, b.Rotation, "clone must not alias the original")
}

func TestBone_End(t *testing.T) {
	b := Bone{Position: mgl64.Vec2{10, 10}, Rotation: math.Pi / 2, Length: 20, Scale: 1}
	assertVec(t, mgl64.Vec2{10, 30}, b.End(), "end of vertical bone")
}

func TestSkeleton_PoseSyncRoundTrip(t *testing.T) {
	s := newArmSkeleton(t)
	s.SetAbsolutePosition(0, mgl64.Vec2{7, -3})
	s.SetAbsoluteRotation(0, 0.3)

	tests := []mgl64.Vec2{
		{0, 0},
		{42, 17},
		{-5.5, 100},
	}
	for _, p := range tests {
		s.SetAbsolutePosition(1, p)
		rel := s.Bone(1).RelativePosition

		s.SetAbsolutePosition(1, mgl64.Vec2{999, 999})
		s.SetRelativePosition(1, rel)

		assertVec(t, p, s.Bone(1).Position, "round trip")
	}
}

func TestSkeleton_RotationSync(t *testing.T) {
	s := newArmSkeleton(t)
	s.SetAbsoluteRotation(0, 0.4)

	s.SetAbsoluteRotation(1, 1.0)
	assert.InDelta(t, 0.6, s.Bone(1).RelativeRotation, eps)

	s.SetRelativeRotation(1, 0.1)
	assert.InDelta(t, 0.5, s.Bone(1).Rotation, eps)
}

func TestSkeleton_RootSyncIsNoop(t *testing.T) {
	s := newArmSkeleton(t)

	s.SetAbsolutePosition(0, mgl64.Vec2{10, 20})
	assert.Equal(t, mgl64.Vec2{}, s.Bone(0).RelativePosition)

	s.SetAbsoluteRotation(0, 1.2)
	assert.Equal(t, 0.0, s.Bone(0).RelativeRotation)

	s.UpdateRelativeDirection(0)
	assert.Equal(t, 0.0, s.Bone(0).RelativeDirection)
}

func TestSkeleton_UpdateRelativeDirection(t *testing.T) {
	s := newArmSkeleton(t)
	s.SetAbsoluteRotation(0, math.Pi/4)

	s.SetAbsolutePosition(1, mgl64.Vec2{0, 50})
	s.UpdateRelativeDirection(1)

	// Straight up in world space is a quarter turn minus the parent's eighth.
	assert.InDelta(t, math.Pi/4, s.Bone(1).RelativeDirection, eps)
}

func TestSkeleton_UpdateRelativeDirection_CoLocated(t *testing.T) {
	s := newArmSkeleton(t)
	require.InDelta(t, 0, s.Bone(1).RelativeDirection, eps)

	s.SetAbsoluteRotation(0, 1)
	s.SetAbsolutePosition(1, mgl64.Vec2{0, 0})
	s.UpdateRelativeDirection(1)

	assert.InDelta(t, 0, s.Bone(1).RelativeDirection, eps, "direction kept when bone sits on its parent")
}
