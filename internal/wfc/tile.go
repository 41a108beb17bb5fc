// Package wfc rebuilds tile maps with wave function collapse: it cuts a
// source map into square chunks, works out which chunks can sit next to each
// other and lays out a new map chunk by chunk.
package wfc

import (
	"github.com/lawnchairsociety/towergen/internal/grid"
)

// Direction represents a cardinal direction in the chunk grid
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// String returns the string representation of a Direction
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case East:
		return West
	case South:
		return North
	case West:
		return East
	default:
		return d
	}
}

// AllDirections returns all four cardinal directions
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

// Pattern is a square block of tiles in row-major order
type Pattern []grid.Tile

// key packs the pattern into a comparable value for deduplication
func (p Pattern) key() string {
	b := make([]byte, len(p))
	for i, t := range p {
		b[i] = byte(t)
	}
	return string(b)
}

// At returns the tile at (x, y) of a pattern with the given side length
func (p Pattern) At(size, x, y int) grid.Tile {
	return p[y*size+x]
}

// Walkable returns true if any tile in the pattern can be walked on
func (p Pattern) Walkable() bool {
	for _, t := range p {
		if t.Walkable() {
			return true
		}
	}
	return false
}
