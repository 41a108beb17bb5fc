package builder

import (
	"github.com/lawnchairsociety/towergen/internal/dice"
	"github.com/lawnchairsociety/towergen/internal/grid"
)

const (
	cellularFloorChance = 55 // d100 rolls above this start as floor
	cellularIterations  = 15
)

// CellularAutomata grows caves from noise by repeatedly smoothing each cell
// toward its neighbourhood.
type CellularAutomata struct{}

func NewCellularAutomata() *CellularAutomata {
	return &CellularAutomata{}
}

func (CellularAutomata) Name() string {
	return "cellular_automata"
}

func (CellularAutomata) BuildInitial(rng dice.Roller, ctx *BuildContext) error {
	g := ctx.Grid

	for y := 1; y < g.Height-1; y++ {
		for x := 1; x < g.Width-1; x++ {
			if dice.D100(rng) > cellularFloorChance {
				g.SetTile(x, y, grid.TileFloor)
			} else {
				g.SetTile(x, y, grid.TileWall)
			}
		}
	}
	ctx.TakeSnapshot()

	next := make([]grid.Tile, len(g.Tiles))
	for i := 0; i < cellularIterations; i++ {
		copy(next, g.Tiles)
		for y := 1; y < g.Height-1; y++ {
			for x := 1; x < g.Width-1; x++ {
				walls := 0
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if (dx != 0 || dy != 0) && g.TileAt(x+dx, y+dy) == grid.TileWall {
							walls++
						}
					}
				}

				if walls > 4 || walls == 0 {
					next[g.Index(x, y)] = grid.TileWall
				} else {
					next[g.Index(x, y)] = grid.TileFloor
				}
			}
		}
		copy(g.Tiles, next)
		ctx.TakeSnapshot()
	}
	return nil
}
