package wfc

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/lawnchairsociety/towergen/internal/grid"
)

// BuildPatterns cuts g into chunkSize x chunkSize patterns. With flip set the
// horizontal, vertical and double mirror of every chunk are added too. With
// dedupe set repeated patterns are kept once, in first-seen order.
// Stairs in the source are read as floor.
func BuildPatterns(g *grid.Grid, chunkSize int, flip, dedupe bool) []Pattern {
	if chunkSize < 1 {
		return nil
	}
	chunksX := g.Width / chunkSize
	chunksY := g.Height / chunkSize

	var patterns []Pattern
	for cy := 0; cy < chunksY; cy++ {
		for cx := 0; cx < chunksX; cx++ {
			startX := cx * chunkSize
			startY := cy * chunkSize

			read := func(fx, fy bool) Pattern {
				p := make(Pattern, 0, chunkSize*chunkSize)
				for y := 0; y < chunkSize; y++ {
					for x := 0; x < chunkSize; x++ {
						sx, sy := x, y
						if fx {
							sx = chunkSize - 1 - x
						}
						if fy {
							sy = chunkSize - 1 - y
						}
						t := g.TileAt(startX+sx, startY+sy)
						if t == grid.TileDownStairs {
							t = grid.TileFloor
						}
						p = append(p, t)
					}
				}
				return p
			}

			patterns = append(patterns, read(false, false))
			if flip {
				patterns = append(patterns, read(true, false), read(false, true), read(true, true))
			}
		}
	}

	if !dedupe {
		return patterns
	}

	seen := mapset.New[string]()
	unique := patterns[:0]
	for _, p := range patterns {
		k := p.key()
		if seen.Has(k) {
			continue
		}
		seen.Put(k)
		unique = append(unique, p)
	}
	return unique
}
