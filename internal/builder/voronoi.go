package builder

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/lawnchairsociety/towergen/internal/dice"
	"github.com/lawnchairsociety/towergen/internal/grid"
)

// DistanceMetric picks how Voronoi membership is measured
type DistanceMetric int

const (
	MetricPythagoras DistanceMetric = iota
	MetricManhattan
	MetricChebyshev
)

func (m DistanceMetric) distance(a, b grid.Position) int {
	switch m {
	case MetricManhattan:
		return grid.Manhattan(a, b)
	case MetricChebyshev:
		return grid.Chebyshev(a, b)
	default:
		return grid.PythagorasSquared(a, b)
	}
}

const voronoiSeeds = 64

// VoronoiCells partitions the map around random seeds and carves everything
// except the borders between regions.
type VoronoiCells struct {
	name   string
	Seeds  int
	Metric DistanceMetric
}

func VoronoiPythagoras() *VoronoiCells {
	return &VoronoiCells{name: "voronoi_pythagoras", Seeds: voronoiSeeds, Metric: MetricPythagoras}
}

func VoronoiManhattan() *VoronoiCells {
	return &VoronoiCells{name: "voronoi_manhattan", Seeds: voronoiSeeds, Metric: MetricManhattan}
}

func VoronoiChebyshev() *VoronoiCells {
	return &VoronoiCells{name: "voronoi_chebyshev", Seeds: voronoiSeeds, Metric: MetricChebyshev}
}

func (v *VoronoiCells) Name() string {
	return v.name
}

func (v *VoronoiCells) BuildInitial(rng dice.Roller, ctx *BuildContext) error {
	g := ctx.Grid

	n := min(v.Seeds, (g.Width-1)*(g.Height-1))
	seen := mapset.New[grid.Position]()
	seeds := make([]grid.Position, 0, n)
	for len(seeds) < n {
		p := grid.Position{X: rng.Roll(1, g.Width-1), Y: rng.Roll(1, g.Height-1)}
		if !seen.Has(p) {
			seen.Put(p)
			seeds = append(seeds, p)
		}
	}
	if len(seeds) == 0 {
		return grid.ErrInvalidSize
	}

	membership := make([]int, len(g.Tiles))
	for i := range membership {
		p := g.PositionOf(i)
		nearest, best := 0, v.Metric.distance(p, seeds[0])
		for s := 1; s < len(seeds); s++ {
			if d := v.Metric.distance(p, seeds[s]); d < best {
				nearest, best = s, d
			}
		}
		membership[i] = nearest
	}

	for y := 1; y < g.Height-1; y++ {
		for x := 1; x < g.Width-1; x++ {
			mine := membership[g.Index(x, y)]
			borders := 0
			if membership[g.Index(x-1, y)] != mine {
				borders++
			}
			if membership[g.Index(x+1, y)] != mine {
				borders++
			}
			if membership[g.Index(x, y-1)] != mine {
				borders++
			}
			if membership[g.Index(x, y+1)] != mine {
				borders++
			}
			if borders < 2 {
				g.SetTile(x, y, grid.TileFloor)
			}
		}
	}
	ctx.TakeSnapshot()
	return nil
}
