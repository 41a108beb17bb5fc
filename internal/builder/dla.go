package builder

import (
	"github.com/lawnchairsociety/towergen/internal/dice"
	"github.com/lawnchairsociety/towergen/internal/grid"
)

// DLAAlgorithm selects how diffusion-limited aggregation particles move
type DLAAlgorithm int

const (
	DLAWalkInwards DLAAlgorithm = iota
	DLAWalkOutwards
	DLACentralAttractor
)

// DLA grows a cave by sticking wandering particles onto a central seed
type DLA struct {
	name         string
	Algorithm    DLAAlgorithm
	BrushSize    int
	Symmetry     Symmetry
	FloorPercent float64
}

func DLAWalkInwardsBuilder() *DLA {
	return &DLA{name: "dla_walk_inwards", Algorithm: DLAWalkInwards, BrushSize: 1, FloorPercent: 0.25}
}

func DLAWalkOutwardsBuilder() *DLA {
	return &DLA{name: "dla_walk_outwards", Algorithm: DLAWalkOutwards, BrushSize: 2, FloorPercent: 0.25}
}

func DLACentralAttractorBuilder() *DLA {
	return &DLA{name: "dla_central_attractor", Algorithm: DLACentralAttractor, BrushSize: 2, FloorPercent: 0.25}
}

func DLAInsectoidBuilder() *DLA {
	return &DLA{name: "dla_insectoid", Algorithm: DLACentralAttractor, BrushSize: 2, Symmetry: SymmetryHorizontal, FloorPercent: 0.25}
}

func DLAHeavyErosionBuilder() *DLA {
	return &DLA{name: "dla_heavy_erosion", Algorithm: DLAWalkInwards, BrushSize: 2, FloorPercent: 0.35}
}

func (d *DLA) Name() string {
	return d.name
}

func (d *DLA) BuildInitial(rng dice.Roller, ctx *BuildContext) error {
	g := ctx.Grid
	start := grid.Position{X: g.Width / 2, Y: g.Height / 2}

	ctx.TakeSnapshot()
	g.SetTile(start.X, start.Y, grid.TileFloor)
	g.SetTile(start.X-1, start.Y, grid.TileFloor)
	g.SetTile(start.X+1, start.Y, grid.TileFloor)
	g.SetTile(start.X, start.Y-1, grid.TileFloor)
	g.SetTile(start.X, start.Y+1, grid.TileFloor)

	desired := int(d.FloorPercent * float64(len(g.Tiles)))
	for g.CountTiles(grid.TileFloor) < desired {
		switch d.Algorithm {
		case DLAWalkInwards:
			x := rng.Roll(1, g.Width-3) + 1
			y := rng.Roll(1, g.Height-3) + 1
			px, py := x, y
			for g.TileAt(x, y) == grid.TileWall {
				px, py = x, y
				x, y = stagger(rng, g, x, y)
			}
			paint(g, d.Symmetry, d.BrushSize, px, py)

		case DLAWalkOutwards:
			x, y := start.X, start.Y
			for g.TileAt(x, y) == grid.TileFloor {
				x, y = stagger(rng, g, x, y)
			}
			paint(g, d.Symmetry, d.BrushSize, x, y)

		case DLACentralAttractor:
			x := rng.Roll(1, g.Width-3) + 1
			y := rng.Roll(1, g.Height-3) + 1
			px, py := x, y
			path := grid.Line(x, y, start.X, start.Y)[1:]
			for g.TileAt(x, y) == grid.TileWall && len(path) > 0 {
				px, py = x, y
				x, y = path[0].X, path[0].Y
				path = path[1:]
			}
			paint(g, d.Symmetry, d.BrushSize, px, py)
		}
		ctx.TakeSnapshot()
	}
	return nil
}
