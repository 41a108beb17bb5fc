package builder

import (
	"github.com/lawnchairsociety/towergen/internal/dice"
	"github.com/lawnchairsociety/towergen/internal/grid"
	"github.com/lawnchairsociety/towergen/internal/spawner"
)

// RoomBasedSpawner fills every room except the first, where the player usually starts
type RoomBasedSpawner struct{}

func NewRoomBasedSpawner() *RoomBasedSpawner {
	return &RoomBasedSpawner{}
}

func (RoomBasedSpawner) Name() string {
	return "room_based_spawner"
}

func (RoomBasedSpawner) BuildMeta(rng dice.Roller, ctx *BuildContext) error {
	if ctx.Rooms == nil {
		return ErrNoRooms
	}
	for _, room := range ctx.Rooms[min(1, len(ctx.Rooms)):] {
		spawner.SpawnRoom(ctx.Grid, rng, room, ctx.Depth(), &ctx.SpawnList)
	}
	return nil
}

// CorridorSpawner treats each corridor as a spawn region
type CorridorSpawner struct{}

func NewCorridorSpawner() *CorridorSpawner {
	return &CorridorSpawner{}
}

func (CorridorSpawner) Name() string {
	return "corridor_spawner"
}

func (CorridorSpawner) BuildMeta(rng dice.Roller, ctx *BuildContext) error {
	if ctx.Corridors == nil {
		return ErrNoCorridors
	}
	for _, c := range ctx.Corridors {
		spawner.SpawnRegion(rng, c, ctx.Depth(), &ctx.SpawnList)
	}
	return nil
}

// voronoiCellSize is the spacing between region seeds
const voronoiCellSize = 12

// VoronoiSpawning splits the floor into cellular regions around jittered
// seeds and spawns into each region.
type VoronoiSpawning struct{}

func NewVoronoiSpawning() *VoronoiSpawning {
	return &VoronoiSpawning{}
}

func (VoronoiSpawning) Name() string {
	return "voronoi_spawning"
}

func (VoronoiSpawning) BuildMeta(rng dice.Roller, ctx *BuildContext) error {
	g := ctx.Grid

	// One seed per block, placed anywhere inside it
	var seeds []grid.Position
	for by := 0; by < g.Height; by += voronoiCellSize {
		for bx := 0; bx < g.Width; bx += voronoiCellSize {
			w := min(voronoiCellSize, g.Width-bx)
			h := min(voronoiCellSize, g.Height-by)
			seeds = append(seeds, grid.Position{
				X: bx + rng.Roll(1, w) - 1,
				Y: by + rng.Roll(1, h) - 1,
			})
		}
	}
	if len(seeds) == 0 {
		return nil
	}

	regions := make([][]int, len(seeds))
	for y := 1; y < g.Height-1; y++ {
		for x := 1; x < g.Width-1; x++ {
			if g.TileAt(x, y) != grid.TileFloor {
				continue
			}
			p := grid.Position{X: x, Y: y}
			nearest, best := 0, grid.Manhattan(p, seeds[0])
			for i := 1; i < len(seeds); i++ {
				if d := grid.Manhattan(p, seeds[i]); d < best {
					nearest, best = i, d
				}
			}
			regions[nearest] = append(regions[nearest], g.Index(x, y))
		}
	}

	for _, area := range regions {
		spawner.SpawnRegion(rng, area, ctx.Depth(), &ctx.SpawnList)
	}
	return nil
}
