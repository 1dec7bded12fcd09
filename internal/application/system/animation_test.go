package system

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/rigdemo/internal/domain/entity"
	"github.com/younwookim/rigdemo/internal/ecs"
	"github.com/younwookim/rigdemo/internal/infrastructure/config"
)

func TestAnimationSystem_Update(t *testing.T) {
	world := ecs.NewWorld()
	s, err := LoadRig(createTestRigConfig(), config.PlaybackConfig{FrameTime: 0.1, NumberOfFrames: 8})
	require.NoError(t, err)
	body := &entity.Body{}
	body.SetPixelPos(50, 60)
	id := world.CreateCharacter("hero", s, body)

	sys := NewAnimationSystem(world)
	for i := 0; i < 2; i++ {
		sys.Update(0.1)
	}

	nod := s.Animation("nod")
	assert.Equal(t, 2, nod.CurrentFrame())
	assert.InDelta(t, math.Pi/4, s.Bone(2).RelativeRotation, 1e-9)
	assert.InDelta(t, 50, world.Character[id].Skeleton.Bone(0).Position.X(), 1e-9)
	assert.InDelta(t, 60, s.Bone(0).Position.Y(), 1e-9)
}

func TestAnimationSystem_Paused(t *testing.T) {
	world := ecs.NewWorld()
	s, err := LoadRig(createTestRigConfig(), config.PlaybackConfig{FrameTime: 0.1})
	require.NoError(t, err)
	body := &entity.Body{}
	world.CreateCharacter("hero", s, body)

	sys := NewAnimationSystem(world)
	sys.SetPaused(true)
	require.True(t, sys.Paused())

	body.SetPixelPos(20, 0)
	sys.Update(0.5)

	assert.Equal(t, 0, s.Animation("nod").CurrentFrame())
	assert.InDelta(t, 20, s.Bone(0).Position.X(), 1e-9, "paused rig still follows the body")
}
