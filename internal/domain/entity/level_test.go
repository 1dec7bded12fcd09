package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestLevel() *Level {
	// 3x3 collision layer: walls in the corners, a platform bottom-center
	tiles := [][]Tile{
		{{Type: TileWall, Solid: true}, {Type: TileEmpty}, {Type: TileWall, Solid: true}},
		{{Type: TileEmpty}, {Type: TileEmpty}, {Type: TileEmpty}},
		{{Type: TileWall, Solid: true}, {Type: TilePlatform, Solid: true}, {Type: TileWall, Solid: true}},
	}

	return &Level{
		Name:     "test",
		Width:    3,
		Height:   3,
		TileSize: 16,
		Layers: []Layer{
			{Name: "background", Tiles: [][]Tile{{{Type: TileWall, Solid: true}}}},
			{Name: "collision", Collision: true, Tiles: tiles},
		},
		SpawnX: 24,
		SpawnY: 24,
	}
}

func TestLevel_CollisionLayer(t *testing.T) {
	level := createTestLevel()

	layer := level.CollisionLayer()
	require.NotNil(t, layer)
	assert.Equal(t, "collision", layer.Name)

	empty := &Level{Width: 1, Height: 1, TileSize: 16}
	assert.Nil(t, empty.CollisionLayer())
	assert.False(t, empty.GetTile(0, 0).Solid, "no collision layer means nothing is solid")
}

func TestLevel_GetTile(t *testing.T) {
	level := createTestLevel()

	tests := []struct {
		name      string
		tx, ty    int
		wantType  TileType
		wantSolid bool
	}{
		{"top-left wall", 0, 0, TileWall, true},
		{"top-center empty", 1, 0, TileEmpty, false},
		{"bottom-center platform", 1, 2, TilePlatform, true},
		{"negative x", -1, 0, TileWall, true},
		{"y too large", 0, 10, TileWall, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tile := level.GetTile(tt.tx, tt.ty)
			assert.Equal(t, tt.wantType, tile.Type)
			assert.Equal(t, tt.wantSolid, tile.Solid)
		})
	}
}

func TestLevel_IsSolidAt(t *testing.T) {
	level := createTestLevel()

	tests := []struct {
		name   string
		px, py int
		want   bool
	}{
		{"solid wall", 0, 0, true},
		{"empty space", 24, 24, false},
		{"platform", 24, 40, true},
		{"out of bounds", -5, -5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, level.IsSolidAt(tt.px, tt.py))
		})
	}
}

func TestLevel_PixelSize(t *testing.T) {
	level := createTestLevel()

	assert.Equal(t, 48, level.PixelWidth())
	assert.Equal(t, 48, level.PixelHeight())
}
