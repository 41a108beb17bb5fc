package builder

import (
	"fmt"

	"github.com/lawnchairsociety/towergen/internal/dice"
	"github.com/lawnchairsociety/towergen/internal/grid"
)

// XStart is the horizontal anchor for AreaStartingPosition
type XStart int

const (
	XLeft XStart = iota
	XCenter
	XRight
)

func (x XStart) String() string {
	switch x {
	case XLeft:
		return "left"
	case XCenter:
		return "center"
	default:
		return "right"
	}
}

// YStart is the vertical anchor for AreaStartingPosition
type YStart int

const (
	YTop YStart = iota
	YCenter
	YBottom
)

func (y YStart) String() string {
	switch y {
	case YTop:
		return "top"
	case YCenter:
		return "center"
	default:
		return "bottom"
	}
}

// AreaStartingPosition starts the player on the floor tile nearest an anchor
type AreaStartingPosition struct {
	X XStart
	Y YStart
}

// NewAreaStartingPosition creates a start placer for the given anchor
func NewAreaStartingPosition(x XStart, y YStart) *AreaStartingPosition {
	return &AreaStartingPosition{X: x, Y: y}
}

// RandomStartAnchor rolls one of the nine anchors
func RandomStartAnchor(rng dice.Roller) (XStart, YStart) {
	var x XStart
	switch rng.Roll(1, 3) {
	case 1:
		x = XLeft
	case 2:
		x = XCenter
	default:
		x = XRight
	}

	var y YStart
	switch rng.Roll(1, 3) {
	case 1:
		y = YTop
	case 2:
		y = YCenter
	default:
		y = YBottom
	}
	return x, y
}

func (a *AreaStartingPosition) Name() string {
	return fmt.Sprintf("area_starting_position(%s,%s)", a.X, a.Y)
}

// Anchor returns the anchor cell for a grid of the given size
func (a *AreaStartingPosition) Anchor(width, height int) grid.Position {
	var p grid.Position
	switch a.X {
	case XLeft:
		p.X = 1
	case XCenter:
		p.X = width / 2
	case XRight:
		p.X = width - 2
	}
	switch a.Y {
	case YTop:
		p.Y = 1
	case YCenter:
		p.Y = height / 2
	case YBottom:
		p.Y = height - 2
	}
	return p
}

func (a *AreaStartingPosition) BuildMeta(_ dice.Roller, ctx *BuildContext) error {
	g := ctx.Grid
	anchor := a.Anchor(g.Width, g.Height)

	best := -1
	bestDist := 0
	for i, t := range g.Tiles {
		if t != grid.TileFloor {
			continue
		}
		d := grid.PythagorasSquared(g.PositionOf(i), anchor)
		// strict comparison keeps the first cell in scan order on ties
		if best < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	if best < 0 {
		return fmt.Errorf("seeding start near %v: %w", anchor, ErrNoFloor)
	}

	ctx.SetStart(g.PositionOf(best))
	return nil
}

// RoomBasedStartingPosition starts the player at the centre of the first room
type RoomBasedStartingPosition struct{}

func NewRoomBasedStartingPosition() *RoomBasedStartingPosition {
	return &RoomBasedStartingPosition{}
}

func (RoomBasedStartingPosition) Name() string {
	return "room_based_starting_position"
}

func (RoomBasedStartingPosition) BuildMeta(_ dice.Roller, ctx *BuildContext) error {
	if len(ctx.Rooms) == 0 {
		return ErrNoRooms
	}
	ctx.SetStart(ctx.Rooms[0].Center())
	return nil
}
