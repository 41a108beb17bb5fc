package spawner

import (
	"fmt"

	"github.com/lawnchairsociety/towergen/internal/dice"
	"github.com/lawnchairsociety/towergen/internal/grid"
)

// MaxMonsters is the base number of spawns a region may receive
const MaxMonsters = 4

// Entry is a placement request: an entity name at a grid cell index
type Entry struct {
	Index int    `json:"index" yaml:"index"`
	Name  string `json:"name" yaml:"name"`
}

// String returns "name@index"
func (e Entry) String() string {
	return fmt.Sprintf("%s@%d", e.Name, e.Index)
}

// SpawnCount returns how many placements a region of areaSize cells receives
// at depth. The count never exceeds the area and is never negative.
func SpawnCount(rng dice.Roller, areaSize, depth int) int {
	n := rng.Roll(1, MaxMonsters+3) + (depth - 1) - 3
	if n > areaSize {
		n = areaSize
	}
	if n < 0 {
		n = 0
	}
	return n
}

// SpawnRegion picks distinct cells from area and appends one weighted
// placement per cell to list. Cells are drawn without replacement.
func SpawnRegion(rng dice.Roller, area []int, depth int, list *[]Entry) {
	if len(area) == 0 {
		return
	}

	table := RoomTable(depth)
	num := SpawnCount(rng, len(area), depth)
	if num == 0 {
		return
	}

	remaining := make([]int, len(area))
	copy(remaining, area)

	for i := 0; i < num; i++ {
		pick := 0
		if len(remaining) > 1 {
			pick = rng.Roll(1, len(remaining)) - 1
		}
		idx := remaining[pick]
		remaining = append(remaining[:pick], remaining[pick+1:]...)

		name := table.Roll(rng)
		if name == "" {
			continue
		}
		*list = append(*list, Entry{Index: idx, Name: name})
	}
}

// SpawnRoom spawns into the floor cells strictly inside room's wall ring
func SpawnRoom(g *grid.Grid, rng dice.Roller, room grid.Rect, depth int, list *[]Entry) {
	var area []int
	for y := room.Y1 + 1; y < room.Y2; y++ {
		for x := room.X1 + 1; x < room.X2; x++ {
			if g.TileAt(x, y) == grid.TileFloor {
				area = append(area, g.Index(x, y))
			}
		}
	}
	SpawnRegion(rng, area, depth, list)
}
