package builder

import (
	"github.com/lawnchairsociety/towergen/internal/dice"
	"github.com/lawnchairsociety/towergen/internal/grid"
)

const explorerLifetime = 20

// RoomExploder sends a handful of short-lived diggers out of every room
type RoomExploder struct{}

func NewRoomExploder() *RoomExploder {
	return &RoomExploder{}
}

func (RoomExploder) Name() string {
	return "room_exploder"
}

func (RoomExploder) BuildMeta(rng dice.Roller, ctx *BuildContext) error {
	if ctx.Rooms == nil {
		return ErrNoRooms
	}

	g := ctx.Grid
	for _, room := range ctx.Rooms {
		start := room.Center()
		diggers := rng.Roll(1, 20) - 5
		for d := 0; d < diggers; d++ {
			x, y := start.X, start.Y
			carved := false

			for life := explorerLifetime; life > 0; life-- {
				if g.TileAt(x, y) == grid.TileWall {
					carved = true
				}
				paint(g, SymmetryNone, 1, x, y)

				x, y = stagger(rng, g, x, y)
			}
			if carved {
				ctx.TakeSnapshot()
			}
		}
	}
	return nil
}

// RoomCornerRounder fills in room corners that have exactly two wall neighbours
type RoomCornerRounder struct{}

func NewRoomCornerRounder() *RoomCornerRounder {
	return &RoomCornerRounder{}
}

func (RoomCornerRounder) Name() string {
	return "room_corner_rounder"
}

func (RoomCornerRounder) BuildMeta(_ dice.Roller, ctx *BuildContext) error {
	if ctx.Rooms == nil {
		return ErrNoRooms
	}

	for _, room := range ctx.Rooms {
		fillIfCorner(ctx, room.X1+1, room.Y1+1)
		fillIfCorner(ctx, room.X2, room.Y1+1)
		fillIfCorner(ctx, room.X1+1, room.Y2)
		fillIfCorner(ctx, room.X2, room.Y2)
		ctx.TakeSnapshot()
	}
	return nil
}

func fillIfCorner(ctx *BuildContext, x, y int) {
	g := ctx.Grid
	if !g.InBounds(x, y) {
		return
	}

	walls := 0
	if x > 0 && g.TileAt(x-1, y) == grid.TileWall {
		walls++
	}
	if y > 0 && g.TileAt(x, y-1) == grid.TileWall {
		walls++
	}
	if x < g.Width-2 && g.TileAt(x+1, y) == grid.TileWall {
		walls++
	}
	if y < g.Height-2 && g.TileAt(x, y+1) == grid.TileWall {
		walls++
	}

	if walls == 2 {
		idx := g.Index(x, y)
		g.Tiles[idx] = grid.TileWall
		ctx.dropSpawns(func(i int) bool { return i == idx })
	}
}

// RoomDrawer carves every room as a rectangle, or one time in four as a circle
type RoomDrawer struct{}

func NewRoomDrawer() *RoomDrawer {
	return &RoomDrawer{}
}

func (RoomDrawer) Name() string {
	return "room_drawer"
}

func (RoomDrawer) BuildMeta(rng dice.Roller, ctx *BuildContext) error {
	if ctx.Rooms == nil {
		return ErrNoRooms
	}

	g := ctx.Grid
	for _, room := range ctx.Rooms {
		if rng.Roll(1, 4) == 1 {
			drawCircle(g, room)
		} else {
			applyRoom(g, room)
		}
		ctx.TakeSnapshot()
	}
	return nil
}

func drawCircle(g *grid.Grid, room grid.Rect) {
	radius := float64(min(room.X2-room.X1, room.Y2-room.Y1)) / 2
	center := room.Center()
	for y := room.Y1; y <= room.Y2; y++ {
		for x := room.X1; x <= room.X2; x++ {
			if interior(g, x, y) && grid.Pythagoras(center, grid.Position{X: x, Y: y}) <= radius {
				g.SetTile(x, y, grid.TileFloor)
			}
		}
	}
}
