package builder

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/lawnchairsociety/towergen/internal/dice"
	"github.com/lawnchairsociety/towergen/internal/grid"
)

// DoglegCorridors joins each room to the previous one with an L-shaped tunnel
type DoglegCorridors struct{}

func NewDoglegCorridors() *DoglegCorridors {
	return &DoglegCorridors{}
}

func (DoglegCorridors) Name() string {
	return "dogleg_corridors"
}

func (DoglegCorridors) BuildMeta(rng dice.Roller, ctx *BuildContext) error {
	if ctx.Rooms == nil {
		return ErrNoRooms
	}

	g := ctx.Grid
	corridors := make([][]int, 0, len(ctx.Rooms))
	for i := 1; i < len(ctx.Rooms); i++ {
		next := ctx.Rooms[i].Center()
		prev := ctx.Rooms[i-1].Center()

		var c []int
		if rng.Roll(1, 2) == 1 {
			c = horizontalTunnel(g, prev.X, next.X, prev.Y)
			c = append(c, verticalTunnel(g, prev.Y, next.Y, next.X)...)
		} else {
			c = verticalTunnel(g, prev.Y, next.Y, prev.X)
			c = append(c, horizontalTunnel(g, prev.X, next.X, next.Y)...)
		}
		corridors = append(corridors, c)
		ctx.TakeSnapshot()
	}

	ctx.Corridors = corridors
	return nil
}

// BspCorridors joins consecutive rooms between random interior points
type BspCorridors struct{}

func NewBspCorridors() *BspCorridors {
	return &BspCorridors{}
}

func (BspCorridors) Name() string {
	return "bsp_corridors"
}

func (BspCorridors) BuildMeta(rng dice.Roller, ctx *BuildContext) error {
	if ctx.Rooms == nil {
		return ErrNoRooms
	}

	g := ctx.Grid
	corridors := make([][]int, 0, len(ctx.Rooms))
	for i := 0; i+1 < len(ctx.Rooms); i++ {
		room, next := ctx.Rooms[i], ctx.Rooms[i+1]
		// Endpoints fall inside the area RoomDrawer will carve
		startX := room.X1 + rng.Roll(1, room.Width())
		startY := room.Y1 + rng.Roll(1, room.Height())
		endX := next.X1 + rng.Roll(1, next.Width())
		endY := next.Y1 + rng.Roll(1, next.Height())

		corridors = append(corridors, drawCorridor(g, startX, startY, endX, endY))
		ctx.TakeSnapshot()
	}

	ctx.Corridors = corridors
	return nil
}

// nearestUnconnected returns the room closest to rooms[i] that has not yet
// been used as a corridor source, or -1. Ties keep the lower index.
func nearestUnconnected(rooms []grid.Rect, i int, connected mapset.Set[int]) int {
	center := rooms[i].Center()
	best, bestDist := -1, 0
	for j, other := range rooms {
		if j == i || connected.Has(j) {
			continue
		}
		d := grid.PythagorasSquared(center, other.Center())
		if best < 0 || d < bestDist {
			best, bestDist = j, d
		}
	}
	return best
}

// NearestCorridors joins each room to its closest unconnected neighbour
type NearestCorridors struct{}

func NewNearestCorridors() *NearestCorridors {
	return &NearestCorridors{}
}

func (NearestCorridors) Name() string {
	return "nearest_corridors"
}

func (NearestCorridors) BuildMeta(_ dice.Roller, ctx *BuildContext) error {
	if ctx.Rooms == nil {
		return ErrNoRooms
	}

	g := ctx.Grid
	connected := mapset.New[int]()
	corridors := make([][]int, 0, len(ctx.Rooms))
	for i, room := range ctx.Rooms {
		dest := nearestUnconnected(ctx.Rooms, i, connected)
		if dest < 0 {
			continue
		}
		from, to := room.Center(), ctx.Rooms[dest].Center()
		corridors = append(corridors, drawCorridor(g, from.X, from.Y, to.X, to.Y))
		connected.Put(i)
		ctx.TakeSnapshot()
	}

	ctx.Corridors = corridors
	return nil
}

// StraightLineCorridors is NearestCorridors with Bresenham lines
type StraightLineCorridors struct{}

func NewStraightLineCorridors() *StraightLineCorridors {
	return &StraightLineCorridors{}
}

func (StraightLineCorridors) Name() string {
	return "straight_line_corridors"
}

func (StraightLineCorridors) BuildMeta(_ dice.Roller, ctx *BuildContext) error {
	if ctx.Rooms == nil {
		return ErrNoRooms
	}

	g := ctx.Grid
	connected := mapset.New[int]()
	corridors := make([][]int, 0, len(ctx.Rooms))
	for i, room := range ctx.Rooms {
		dest := nearestUnconnected(ctx.Rooms, i, connected)
		if dest < 0 {
			continue
		}
		from, to := room.Center(), ctx.Rooms[dest].Center()

		var c []int
		for _, p := range grid.Line(from.X, from.Y, to.X, to.Y) {
			if g.InBounds(p.X, p.Y) && g.TileAt(p.X, p.Y) != grid.TileFloor {
				g.SetTile(p.X, p.Y, grid.TileFloor)
				c = append(c, g.Index(p.X, p.Y))
			}
		}
		corridors = append(corridors, c)
		connected.Put(i)
		ctx.TakeSnapshot()
	}

	ctx.Corridors = corridors
	return nil
}
