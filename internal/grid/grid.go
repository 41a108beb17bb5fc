// Package grid models the tile map produced by level generation: cells,
// coordinates, rooms and the reachability sweep used to validate them.
package grid

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidSize = errors.New("grid: invalid size")
	ErrRowWidth    = errors.New("grid: row width mismatch")
)

// Position is an (x, y) cell coordinate
type Position struct {
	X, Y int
}

// String returns "x,y"
func (p Position) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// Grid is a row-major width x height tile map for a single depth.
// The blocked bitmap is derived from Tiles and only valid after PopulateBlocked.
type Grid struct {
	Width, Height int
	Tiles         []Tile
	Revealed      []bool

	depth   int
	blocked []bool
}

// New creates an all-wall grid
func New(depth, width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	count := width * height
	return &Grid{
		Width:    width,
		Height:   height,
		Tiles:    make([]Tile, count), // TileWall is the zero value
		Revealed: make([]bool, count),
		depth:    depth,
		blocked:  make([]bool, count),
	}
}

// Depth returns the depth identifier the grid was created for
func (g *Grid) Depth() int {
	return g.depth
}

// Index converts a coordinate to a cell index
func (g *Grid) Index(x, y int) int {
	return y*g.Width + x
}

// XY converts a cell index to a coordinate
func (g *Grid) XY(idx int) (int, int) {
	return idx % g.Width, idx / g.Width
}

// PositionOf converts a cell index to a Position
func (g *Grid) PositionOf(idx int) Position {
	x, y := g.XY(idx)
	return Position{X: x, Y: y}
}

// InBounds returns true if the coordinate lies inside the grid
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// ValidIndex returns true if idx addresses a cell
func (g *Grid) ValidIndex(idx int) bool {
	return idx >= 0 && idx < len(g.Tiles)
}

// TileAt returns the tile at a coordinate, or TileWall when out of bounds
func (g *Grid) TileAt(x, y int) Tile {
	if !g.InBounds(x, y) {
		return TileWall
	}
	return g.Tiles[g.Index(x, y)]
}

// SetTile sets the tile at a coordinate, ignoring out-of-bounds writes
func (g *Grid) SetTile(x, y int, t Tile) {
	if g.InBounds(x, y) {
		g.Tiles[g.Index(x, y)] = t
	}
}

// Fill sets every cell to t
func (g *Grid) Fill(t Tile) {
	for i := range g.Tiles {
		g.Tiles[i] = t
	}
}

// CountTiles returns the number of cells holding t
func (g *Grid) CountTiles(t Tile) int {
	count := 0
	for _, tile := range g.Tiles {
		if tile == t {
			count++
		}
	}
	return count
}

// PopulateBlocked recomputes the blocked bitmap: every non-floor cell is blocked
func (g *Grid) PopulateBlocked() {
	if len(g.blocked) != len(g.Tiles) {
		g.blocked = make([]bool, len(g.Tiles))
	}
	for i, tile := range g.Tiles {
		g.blocked[i] = tile != TileFloor
	}
}

// IsBlocked reports the last computed blocked state of a cell
func (g *Grid) IsBlocked(idx int) bool {
	if !g.ValidIndex(idx) || idx >= len(g.blocked) {
		return true
	}
	return g.blocked[idx]
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	c := &Grid{
		Width:    g.Width,
		Height:   g.Height,
		Tiles:    make([]Tile, len(g.Tiles)),
		Revealed: make([]bool, len(g.Revealed)),
		depth:    g.depth,
		blocked:  make([]bool, len(g.blocked)),
	}
	copy(c.Tiles, g.Tiles)
	copy(c.Revealed, g.Revealed)
	copy(c.blocked, g.blocked)
	return c
}

// Snapshot returns a copy of the grid with every cell revealed, for history playback
func (g *Grid) Snapshot() *Grid {
	s := g.Clone()
	for i := range s.Revealed {
		s.Revealed[i] = true
	}
	return s
}

// Rows renders the grid as one ASCII string per row
func (g *Grid) Rows() []string {
	rows := make([]string, g.Height)
	buf := make([]byte, g.Width)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			buf[x] = g.Tiles[g.Index(x, y)].Glyph()
		}
		rows[y] = string(buf)
	}
	return rows
}

// String renders the grid as newline separated rows
func (g *Grid) String() string {
	return strings.Join(g.Rows(), "\n")
}

// FromRows rebuilds a grid from rows produced by Rows
func FromRows(depth int, rows []string) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidSize
	}
	g := New(depth, len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != g.Width {
			return nil, fmt.Errorf("row %d has width %d, want %d: %w", y, len(row), g.Width, ErrRowWidth)
		}
		for x := 0; x < g.Width; x++ {
			g.Tiles[g.Index(x, y)] = TileFromGlyph(row[x])
		}
	}
	return g, nil
}
