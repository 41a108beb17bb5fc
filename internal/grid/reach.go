package grid

import (
	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
)

// Movement costs for the Dijkstra sweep. Diagonals cost ~1.4 cardinal steps.
const (
	CostCardinal = 10
	CostDiagonal = 14
)

// DefaultMaxCost bounds the sweep; anything further is treated as unreachable
const DefaultMaxCost = 1 << 20

// DistanceMap holds the result of a single-source Dijkstra sweep over a grid
type DistanceMap struct {
	Width   int
	MaxCost int
	Costs   []int
}

// Reachable returns true if the sweep reached idx
func (d *DistanceMap) Reachable(idx int) bool {
	if idx < 0 || idx >= len(d.Costs) {
		return false
	}
	return d.Costs[idx] <= d.MaxCost
}

// Cost returns the distance to idx, or MaxCost+1 if unreachable
func (d *DistanceMap) Cost(idx int) int {
	if idx < 0 || idx >= len(d.Costs) {
		return d.MaxCost + 1
	}
	return d.Costs[idx]
}

// floorNavigator adapts a grid to gruid's Dijkstra interface. By default only
// unblocked cells are passable; with walkable set any Walkable tile is.
type floorNavigator struct {
	grid     *Grid
	walkable bool
	nb       paths.Neighbors
}

func (n *floorNavigator) passable(q gruid.Point) bool {
	if !n.grid.InBounds(q.X, q.Y) {
		return false
	}
	idx := n.grid.Index(q.X, q.Y)
	if n.walkable {
		return n.grid.Tiles[idx].Walkable()
	}
	return !n.grid.IsBlocked(idx)
}

func (n *floorNavigator) Neighbors(p gruid.Point) []gruid.Point {
	return n.nb.All(p, n.passable)
}

func (n *floorNavigator) Cost(p, q gruid.Point) int {
	if p.X != q.X && p.Y != q.Y {
		return CostDiagonal
	}
	return CostCardinal
}

// DijkstraFrom recomputes the blocked bitmap and sweeps outward from start over
// orthogonally and diagonally adjacent floor cells. The start cell always has cost 0.
func (g *Grid) DijkstraFrom(start Position, maxCost int) *DistanceMap {
	g.PopulateBlocked()
	return g.sweep(&floorNavigator{grid: g}, start, maxCost)
}

// WalkableFrom sweeps like DijkstraFrom but also passes through stairs
func (g *Grid) WalkableFrom(start Position, maxCost int) *DistanceMap {
	return g.sweep(&floorNavigator{grid: g, walkable: true}, start, maxCost)
}

func (g *Grid) sweep(nav *floorNavigator, start Position, maxCost int) *DistanceMap {
	dm := &DistanceMap{
		Width:   g.Width,
		MaxCost: maxCost,
		Costs:   make([]int, len(g.Tiles)),
	}
	if !g.InBounds(start.X, start.Y) {
		for i := range dm.Costs {
			dm.Costs[i] = maxCost + 1
		}
		return dm
	}

	pr := paths.NewPathRange(gruid.NewRange(0, 0, g.Width, g.Height))
	pr.DijkstraMap(nav, []gruid.Point{start.Point()}, maxCost)

	for i := range g.Tiles {
		x, y := g.XY(i)
		dm.Costs[i] = pr.DijkstraMapAt(gruid.Point{X: x, Y: y})
	}
	// The source is reported at cost 0 even if its own tile is blocked
	dm.Costs[g.Index(start.X, start.Y)] = 0
	return dm
}
