package builder

import (
	"github.com/lawnchairsociety/towergen/internal/dice"
	"github.com/lawnchairsociety/towergen/internal/grid"
)

// placeExit turns idx into the level's only DownStairs tile and removes any
// spawn that was queued on it.
func placeExit(ctx *BuildContext, idx int) {
	g := ctx.Grid
	for i, t := range g.Tiles {
		if t == grid.TileDownStairs {
			g.Tiles[i] = grid.TileFloor
		}
	}
	g.Tiles[idx] = grid.TileDownStairs
	ctx.dropSpawns(func(i int) bool { return i == idx })
	ctx.TakeSnapshot()
}

// RoomBasedStairs puts the exit in the centre of the last room
type RoomBasedStairs struct{}

func NewRoomBasedStairs() *RoomBasedStairs {
	return &RoomBasedStairs{}
}

func (RoomBasedStairs) Name() string {
	return "room_based_stairs"
}

func (RoomBasedStairs) BuildMeta(_ dice.Roller, ctx *BuildContext) error {
	if len(ctx.Rooms) == 0 {
		return ErrNoRooms
	}
	c := ctx.Rooms[len(ctx.Rooms)-1].Center()
	placeExit(ctx, ctx.Grid.Index(c.X, c.Y))
	return nil
}

// DistantExit puts the exit on the reachable floor tile furthest from the start
type DistantExit struct{}

func NewDistantExit() *DistantExit {
	return &DistantExit{}
}

func (DistantExit) Name() string {
	return "distant_exit"
}

func (DistantExit) BuildMeta(_ dice.Roller, ctx *BuildContext) error {
	if ctx.StartingPosition == nil {
		return ErrNoStartingPosition
	}

	g := ctx.Grid
	dm := g.DijkstraFrom(*ctx.StartingPosition, grid.DefaultMaxCost)

	exit, best := -1, 0
	for i, t := range g.Tiles {
		if t != grid.TileFloor || !dm.Reachable(i) {
			continue
		}
		if d := dm.Cost(i); d > best {
			exit, best = i, d
		}
	}
	if exit < 0 {
		return ErrNoExit
	}

	placeExit(ctx, exit)
	return nil
}
