package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCycle(t *testing.T) {
	tests := []struct {
		i, d, n, want int
	}{
		{0, 1, 3, 1},
		{2, 1, 3, 0},
		{0, -1, 3, 2},
		{5, 0, 3, 2},
		{1, 1, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cycle(tt.i, tt.d, tt.n), "cycle(%d, %d, %d)", tt.i, tt.d, tt.n)
	}
}

func TestDelta(t *testing.T) {
	assert.Equal(t, 1, delta(true, false))
	assert.Equal(t, -1, delta(false, true))
	assert.Equal(t, 0, delta(true, true))
	assert.Equal(t, 0, delta(false, false))
}

func TestSelection(t *testing.T) {
	s := createTestSkeleton(t)

	sel := selection(s, 0, 1)
	assert.Equal(t, "", sel.Animation)
	assert.Equal(t, 1, sel.Bone)
	assert.Equal(t, "anim1", sel.NewName)

	a := s.AddAnimation("anim2")
	_, ok := a.AddKeyframe(3)
	require.True(t, ok)
	require.True(t, a.KeyBone(3, *s.Bone(1)))
	require.True(t, a.SetBlendFactor(3, 1, 0.4))
	a.Seek(3)

	sel = selection(s, 0, 1)
	assert.Equal(t, "anim2", sel.Animation)
	assert.Equal(t, 3, sel.Frame)
	assert.Equal(t, a.NumberOfFrames(), sel.NumberOfFrames)
	assert.True(t, sel.IsKeyframe)
	assert.InDelta(t, 0.4, sel.Blend, 1e-9)
	assert.Equal(t, "anim3", sel.NewName, "anim2 is taken")

	sel = selection(s, 0, 9)
	assert.Equal(t, -1, sel.Bone)
	assert.Zero(t, sel.Blend)
}

func TestNextAnimationName_SkipsTaken(t *testing.T) {
	s := createTestSkeleton(t)
	s.AddAnimation("anim2")

	assert.Equal(t, "anim3", nextAnimationName(s))
}

func TestFrameCell(t *testing.T) {
	x, w := frameCell(0, 10, 4, 100)
	assert.Equal(t, 4.0, x)
	assert.Equal(t, 10.0, w)

	x, _ = frameCell(9, 10, 4, 100)
	assert.Equal(t, 94.0, x)

	x, w = frameCell(3, 0, 4, 100)
	assert.Equal(t, 4.0, x)
	assert.Equal(t, 100.0, w)
}
