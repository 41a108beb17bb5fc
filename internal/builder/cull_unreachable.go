package builder

import (
	"github.com/lawnchairsociety/towergen/internal/dice"
	"github.com/lawnchairsociety/towergen/internal/grid"
	"github.com/lawnchairsociety/towergen/internal/logger"
)

// CullUnreachable walls off every floor tile the starting position cannot reach
// and forgets any spawn that was queued on one.
type CullUnreachable struct{}

func NewCullUnreachable() *CullUnreachable {
	return &CullUnreachable{}
}

func (CullUnreachable) Name() string {
	return "cull_unreachable"
}

func (CullUnreachable) BuildMeta(_ dice.Roller, ctx *BuildContext) error {
	if ctx.StartingPosition == nil {
		return ErrNoStartingPosition
	}

	g := ctx.Grid
	dm := g.DijkstraFrom(*ctx.StartingPosition, grid.DefaultMaxCost)

	culled := 0
	for i, t := range g.Tiles {
		if t == grid.TileFloor && !dm.Reachable(i) {
			g.Tiles[i] = grid.TileWall
			culled++
		}
	}
	if culled > 0 {
		ctx.dropSpawns(func(i int) bool { return g.Tiles[i] != grid.TileFloor })
		logger.Debug("Culled unreachable floor", "tiles", culled)
	}
	return nil
}
