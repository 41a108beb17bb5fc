package wfc

import (
	"github.com/lawnchairsociety/towergen/internal/grid"
)

// Chunk is a pattern together with its edge exits and the patterns that may
// border it on each side.
type Chunk struct {
	Pattern Pattern
	// Exits[d][i] is true if slot i on edge d is walkable
	Exits    [4][]bool
	HasExits bool
	// Compatible[d] lists the chunk indices allowed on side d
	Compatible [4][]int
}

// Rules defines adjacency constraints between chunks
type Rules struct {
	ChunkSize int
	Chunks    []Chunk
}

// NewRules computes edge exits and adjacency lists for a pattern set.
// Two chunks fit across an edge if they share at least one walkable slot on
// it, or if neither has any walkable slot there. A chunk with no exits at all
// fits anywhere.
func NewRules(patterns []Pattern, chunkSize int) *Rules {
	r := &Rules{
		ChunkSize: chunkSize,
		Chunks:    make([]Chunk, len(patterns)),
	}

	for i, p := range patterns {
		c := Chunk{Pattern: p}
		for _, d := range AllDirections() {
			c.Exits[d] = make([]bool, chunkSize)
		}
		for s := 0; s < chunkSize; s++ {
			c.Exits[North][s] = p.At(chunkSize, s, 0).Walkable()
			c.Exits[South][s] = p.At(chunkSize, s, chunkSize-1).Walkable()
			c.Exits[West][s] = p.At(chunkSize, 0, s).Walkable()
			c.Exits[East][s] = p.At(chunkSize, chunkSize-1, s).Walkable()
		}
		for _, d := range AllDirections() {
			if anyTrue(c.Exits[d]) {
				c.HasExits = true
			}
		}
		r.Chunks[i] = c
	}

	for i := range r.Chunks {
		c := &r.Chunks[i]
		for j, other := range r.Chunks {
			if !c.HasExits || !other.HasExits {
				for _, d := range AllDirections() {
					c.Compatible[d] = append(c.Compatible[d], j)
				}
				continue
			}
			for _, d := range AllDirections() {
				if edgesFit(c.Exits[d], other.Exits[d.Opposite()]) {
					c.Compatible[d] = append(c.Compatible[d], j)
				}
			}
		}
	}
	return r
}

// CanBorder reports whether chunk b may sit on side d of chunk a
func (r *Rules) CanBorder(a, b int, d Direction) bool {
	for _, idx := range r.Chunks[a].Compatible[d] {
		if idx == b {
			return true
		}
	}
	return false
}

// Len returns the number of chunks
func (r *Rules) Len() int {
	return len(r.Chunks)
}

// Stamp writes chunk idx into g with its top-left corner at (x, y)
func (r *Rules) Stamp(g *grid.Grid, idx, x, y int) {
	p := r.Chunks[idx].Pattern
	for py := 0; py < r.ChunkSize; py++ {
		for px := 0; px < r.ChunkSize; px++ {
			g.SetTile(x+px, y+py, p.At(r.ChunkSize, px, py))
		}
	}
}

func edgesFit(a, b []bool) bool {
	if !anyTrue(a) {
		return !anyTrue(b)
	}
	for i := range a {
		if a[i] && i < len(b) && b[i] {
			return true
		}
	}
	return false
}

func anyTrue(v []bool) bool {
	for _, b := range v {
		if b {
			return true
		}
	}
	return false
}
