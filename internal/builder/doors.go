package builder

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/lawnchairsociety/towergen/internal/dice"
	"github.com/lawnchairsociety/towergen/internal/grid"
	"github.com/lawnchairsociety/towergen/internal/spawner"
)

// DoorPlacement queues doors where a corridor meets open space. Without
// corridors it scans the whole map and keeps one candidate in three.
type DoorPlacement struct{}

func NewDoorPlacement() *DoorPlacement {
	return &DoorPlacement{}
}

func (DoorPlacement) Name() string {
	return "door_placement"
}

func (DoorPlacement) BuildMeta(rng dice.Roller, ctx *BuildContext) error {
	occupied := mapset.New[int]()
	for _, e := range ctx.SpawnList {
		occupied.Put(e.Index)
	}

	add := func(idx int) {
		ctx.SpawnList = append(ctx.SpawnList, spawner.Entry{Index: idx, Name: spawner.Door})
		occupied.Put(idx)
	}

	g := ctx.Grid
	if ctx.Corridors != nil {
		for _, hall := range ctx.Corridors {
			// short halls are not worth a door
			if len(hall) > 2 && doorPossible(g, hall[0], occupied) {
				add(hall[0])
			}
		}
		return nil
	}

	for i, t := range g.Tiles {
		if t == grid.TileFloor && doorPossible(g, i, occupied) && rng.Roll(1, 3) == 1 {
			add(i)
		}
	}
	return nil
}

// doorPossible reports whether idx is an unoccupied floor cell in a one tile
// wide east-west or north-south passage.
func doorPossible(g *grid.Grid, idx int, occupied mapset.Set[int]) bool {
	if occupied.Has(idx) || g.Tiles[idx] != grid.TileFloor {
		return false
	}

	x, y := g.XY(idx)
	if x <= 1 || x >= g.Width-2 || y <= 1 || y >= g.Height-2 {
		return false
	}

	west, east := g.TileAt(x-1, y), g.TileAt(x+1, y)
	north, south := g.TileAt(x, y-1), g.TileAt(x, y+1)

	if west == grid.TileFloor && east == grid.TileFloor && north == grid.TileWall && south == grid.TileWall {
		return true
	}
	if west == grid.TileWall && east == grid.TileWall && north == grid.TileFloor && south == grid.TileFloor {
		return true
	}
	return false
}
