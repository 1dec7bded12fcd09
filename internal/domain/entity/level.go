package entity

// EntityID is a unique identifier for an entity
type EntityID uint32

// TileType represents the type of a tile
type TileType int

const (
	TileEmpty TileType = iota
	TileWall
	TilePlatform
)

// Tile represents a single tile in a level layer
type Tile struct {
	Type  TileType
	Solid bool
}

// Layer is one named grid of tiles. Only the collision layer is solid;
// other layers are decoration drawn behind or in front of characters.
type Layer struct {
	Name      string
	Collision bool
	Tiles     [][]Tile
}

// Level represents the loaded level's tile data and spawn point
type Level struct {
	Name     string
	Width    int // tiles
	Height   int // tiles
	TileSize int
	Layers   []Layer
	SpawnX   int // pixels
	SpawnY   int // pixels
}

// CollisionLayer returns the first layer marked for collision, nil if none.
func (l *Level) CollisionLayer() *Layer {
	for i := range l.Layers {
		if l.Layers[i].Collision {
			return &l.Layers[i]
		}
	}
	return nil
}

// GetTile returns the collision tile at the given tile coordinates.
// Outside the level counts as wall.
func (l *Level) GetTile(tx, ty int) Tile {
	if tx < 0 || tx >= l.Width || ty < 0 || ty >= l.Height {
		return Tile{Type: TileWall, Solid: true}
	}
	layer := l.CollisionLayer()
	if layer == nil || ty >= len(layer.Tiles) || tx >= len(layer.Tiles[ty]) {
		return Tile{}
	}
	return layer.Tiles[ty][tx]
}

// IsSolidAt checks if the collision tile at pixel coordinates is solid
func (l *Level) IsSolidAt(px, py int) bool {
	if px < 0 || py < 0 {
		return true
	}
	return l.GetTile(px/l.TileSize, py/l.TileSize).Solid
}

// PixelWidth returns the level width in pixels
func (l *Level) PixelWidth() int {
	return l.Width * l.TileSize
}

// PixelHeight returns the level height in pixels
func (l *Level) PixelHeight() int {
	return l.Height * l.TileSize
}
