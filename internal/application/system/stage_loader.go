package system

import (
	"github.com/younwookim/rigdemo/internal/domain/entity"
	"github.com/younwookim/rigdemo/internal/infrastructure/config"
)

// LoadStage converts a StageConfig into a Level entity
func LoadStage(cfg *config.StageConfig) *entity.Level {
	tileWidth := cfg.Size.Width / cfg.Size.TileSize
	tileHeight := cfg.Size.Height / cfg.Size.TileSize
	for _, lc := range cfg.Layers {
		if len(lc.Rows) > tileHeight {
			tileHeight = len(lc.Rows)
		}
	}

	layers := make([]entity.Layer, 0, len(cfg.Layers))
	for _, lc := range cfg.Layers {
		layers = append(layers, entity.Layer{
			Name:      lc.Name,
			Collision: lc.Collision,
			Tiles:     loadTiles(lc.Rows, cfg.TileMapping, tileWidth, tileHeight),
		})
	}

	return &entity.Level{
		Name:     cfg.Name,
		Width:    tileWidth,
		Height:   tileHeight,
		TileSize: cfg.Size.TileSize,
		Layers:   layers,
		SpawnX:   cfg.PlayerSpawn.X,
		SpawnY:   cfg.PlayerSpawn.Y,
	}
}

// loadTiles maps row characters through the tile mapping. Missing rows and
// unmapped characters are empty.
func loadTiles(rows []string, mapping map[string]config.TileMappingConfig, width, height int) [][]entity.Tile {
	tiles := make([][]entity.Tile, height)
	for y := range tiles {
		tiles[y] = make([]entity.Tile, width)
		if y >= len(rows) {
			continue
		}
		for x, char := range []rune(rows[y]) {
			if x >= width {
				break
			}
			m, ok := mapping[string(char)]
			if !ok {
				continue
			}
			tiles[y][x] = entity.Tile{
				Type:  tileType(m.Type),
				Solid: m.Solid,
			}
		}
	}
	return tiles
}

func tileType(name string) entity.TileType {
	switch name {
	case "wall":
		return entity.TileWall
	case "platform":
		return entity.TilePlatform
	default:
		return entity.TileEmpty
	}
}
