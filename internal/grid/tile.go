package grid

// Tile is the terrain classification of a single grid cell
type Tile int

const (
	TileWall       Tile = iota // Impassable rock
	TileFloor                  // Open floor
	TileDownStairs             // Exit to the next depth
)

// String returns the string representation of a Tile
func (t Tile) String() string {
	switch t {
	case TileWall:
		return "wall"
	case TileFloor:
		return "floor"
	case TileDownStairs:
		return "down_stairs"
	default:
		return "unknown"
	}
}

// Walkable returns true if a creature can stand on the tile
func (t Tile) Walkable() bool {
	return t == TileFloor || t == TileDownStairs
}

// Glyph returns the ASCII character used when rendering or exporting the tile
func (t Tile) Glyph() byte {
	switch t {
	case TileFloor:
		return '.'
	case TileDownStairs:
		return '>'
	default:
		return '#'
	}
}

// TileFromGlyph is the inverse of Glyph. Unknown glyphs read as walls.
func TileFromGlyph(g byte) Tile {
	switch g {
	case '.':
		return TileFloor
	case '>':
		return TileDownStairs
	default:
		return TileWall
	}
}
