package builder

import (
	"github.com/lawnchairsociety/towergen/internal/dice"
	"github.com/lawnchairsociety/towergen/internal/grid"
)

const (
	simpleMaxRooms    = 30
	simpleMinRoomSize = 6
	simpleMaxRoomSize = 10
)

// SimpleMap scatters non-overlapping rectangular rooms. It only records the
// rooms; RoomDrawer carves them.
type SimpleMap struct{}

func NewSimpleMap() *SimpleMap {
	return &SimpleMap{}
}

func (SimpleMap) Name() string {
	return "simple_map"
}

func (SimpleMap) BuildInitial(rng dice.Roller, ctx *BuildContext) error {
	g := ctx.Grid
	rooms := make([]grid.Rect, 0, simpleMaxRooms)

	for i := 0; i < simpleMaxRooms; i++ {
		w := rng.Range(simpleMinRoomSize, simpleMaxRoomSize)
		h := rng.Range(simpleMinRoomSize, simpleMaxRoomSize)
		x := rng.Roll(1, g.Width-w-1) - 1
		y := rng.Roll(1, g.Height-h-1) - 1
		candidate := grid.NewRect(x, y, w, h)

		ok := true
		for _, other := range rooms {
			if candidate.Intersect(other) {
				ok = false
				break
			}
		}
		if ok {
			rooms = append(rooms, candidate)
		}
	}

	ctx.Rooms = rooms
	return nil
}

// bspDungeonTries is how many candidate rooms BspDungeon attempts
const bspDungeonTries = 240

// BspDungeon places rooms by repeatedly subdividing the map into quarters
// and fitting a room into a random partition.
type BspDungeon struct {
	rects []grid.Rect
}

func NewBspDungeon() *BspDungeon {
	return &BspDungeon{}
}

func (*BspDungeon) Name() string {
	return "bsp_dungeon"
}

func (b *BspDungeon) BuildInitial(rng dice.Roller, ctx *BuildContext) error {
	g := ctx.Grid
	var rooms []grid.Rect

	b.rects = b.rects[:0]
	b.rects = append(b.rects, grid.NewRect(2, 2, g.Width-5, g.Height-5))
	b.addSubrects(b.rects[0])

	for i := 0; i < bspDungeonTries; i++ {
		rect := b.randomRect(rng)
		candidate := randomSubRect(rect, rng)
		if b.isPossible(g, candidate, rooms) {
			rooms = append(rooms, candidate)
			b.addSubrects(rect)
		}
	}

	if rooms == nil {
		rooms = []grid.Rect{}
	}
	ctx.Rooms = rooms
	return nil
}

func (b *BspDungeon) addSubrects(r grid.Rect) {
	halfW := max(r.Width()/2, 1)
	halfH := max(r.Height()/2, 1)

	b.rects = append(b.rects,
		grid.NewRect(r.X1, r.Y1, halfW, halfH),
		grid.NewRect(r.X1, r.Y1+halfH, halfW, halfH),
		grid.NewRect(r.X1+halfW, r.Y1, halfW, halfH),
		grid.NewRect(r.X1+halfW, r.Y1+halfH, halfW, halfH),
	)
}

func (b *BspDungeon) randomRect(rng dice.Roller) grid.Rect {
	if len(b.rects) == 1 {
		return b.rects[0]
	}
	return b.rects[rng.Roll(1, len(b.rects))-1]
}

func randomSubRect(r grid.Rect, rng dice.Roller) grid.Rect {
	w := max(3, rng.Roll(1, min(r.Width(), 10))-1) + 1
	h := max(3, rng.Roll(1, min(r.Height(), 10))-1) + 1

	result := r
	result.X1 += rng.Roll(1, 6) - 1
	result.Y1 += rng.Roll(1, 6) - 1
	result.X2 = result.X1 + w
	result.Y2 = result.Y1 + h
	return result
}

// isPossible requires a two cell margin of untouched wall around the room
func (b *BspDungeon) isPossible(g *grid.Grid, r grid.Rect, rooms []grid.Rect) bool {
	for _, other := range rooms {
		if other.Intersect(r) {
			return false
		}
	}

	for y := r.Y1 - 2; y <= r.Y2+2; y++ {
		for x := r.X1 - 2; x <= r.X2+2; x++ {
			if x < 1 || y < 1 || x > g.Width-2 || y > g.Height-2 {
				return false
			}
			if g.TileAt(x, y) != grid.TileWall {
				return false
			}
		}
	}
	return true
}

// bspInteriorMinRoomSize stops subdivision once a partition is this small
const bspInteriorMinRoomSize = 8

// BspInterior splits the whole map into adjoining rooms, carves them and
// links consecutive rooms with corridors.
type BspInterior struct {
	rects []grid.Rect
}

func NewBspInterior() *BspInterior {
	return &BspInterior{}
}

func (*BspInterior) Name() string {
	return "bsp_interior"
}

func (b *BspInterior) BuildInitial(rng dice.Roller, ctx *BuildContext) error {
	g := ctx.Grid

	b.rects = b.rects[:0]
	b.rects = append(b.rects, grid.NewRect(1, 1, g.Width-2, g.Height-2))
	b.addSubrects(b.rects[0], rng)

	rooms := make([]grid.Rect, 0, len(b.rects))
	for _, room := range b.rects {
		rooms = append(rooms, room)
		for y := room.Y1; y < room.Y2; y++ {
			for x := room.X1; x < room.X2; x++ {
				if interior(g, x, y) {
					g.SetTile(x, y, grid.TileFloor)
				}
			}
		}
		ctx.TakeSnapshot()
	}

	for i := 0; i+1 < len(rooms); i++ {
		room, next := rooms[i], rooms[i+1]
		startX := room.X1 + rng.Roll(1, room.Width()) - 1
		startY := room.Y1 + rng.Roll(1, room.Height()) - 1
		endX := next.X1 + rng.Roll(1, next.Width()) - 1
		endY := next.Y1 + rng.Roll(1, next.Height()) - 1
		drawCorridor(g, startX, startY, endX, endY)
		ctx.TakeSnapshot()
	}

	ctx.Rooms = rooms
	return nil
}

// addSubrects replaces the most recent partition with its two halves and
// recurses while the halves are still large enough.
func (b *BspInterior) addSubrects(r grid.Rect, rng dice.Roller) {
	if len(b.rects) > 0 {
		b.rects = b.rects[:len(b.rects)-1]
	}

	width := r.X2 - r.X1
	height := r.Y2 - r.Y1
	halfW := width / 2
	halfH := height / 2

	if rng.Roll(1, 4) <= 2 {
		left := grid.NewRect(r.X1, r.Y1, halfW-1, height)
		b.rects = append(b.rects, left)
		if halfW > bspInteriorMinRoomSize {
			b.addSubrects(left, rng)
		}
		right := grid.NewRect(r.X1+halfW, r.Y1, halfW, height)
		b.rects = append(b.rects, right)
		if halfW > bspInteriorMinRoomSize {
			b.addSubrects(right, rng)
		}
	} else {
		top := grid.NewRect(r.X1, r.Y1, width, halfH-1)
		b.rects = append(b.rects, top)
		if halfH > bspInteriorMinRoomSize {
			b.addSubrects(top, rng)
		}
		bottom := grid.NewRect(r.X1, r.Y1+halfH, width, halfH)
		b.rects = append(b.rects, bottom)
		if halfH > bspInteriorMinRoomSize {
			b.addSubrects(bottom, rng)
		}
	}
}
