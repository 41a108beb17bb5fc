package builder

import (
	"sort"

	"github.com/lawnchairsociety/towergen/internal/dice"
	"github.com/lawnchairsociety/towergen/internal/grid"
)

// RoomSort is the criterion RoomSorter orders rooms by
type RoomSort int

const (
	SortLeftmost RoomSort = iota
	SortRightmost
	SortTopmost
	SortBottommost
	SortCentral
)

func (s RoomSort) String() string {
	switch s {
	case SortLeftmost:
		return "leftmost"
	case SortRightmost:
		return "rightmost"
	case SortTopmost:
		return "topmost"
	case SortBottommost:
		return "bottommost"
	case SortCentral:
		return "central"
	default:
		return "unknown"
	}
}

// RoomSorter reorders the room list. Later stages that care about the first
// or last room (start, stairs, corridor order) inherit this order.
type RoomSorter struct {
	Sort RoomSort
}

func NewRoomSorter(s RoomSort) *RoomSorter {
	return &RoomSorter{Sort: s}
}

func (r *RoomSorter) Name() string {
	return "room_sorter(" + r.Sort.String() + ")"
}

func (r *RoomSorter) BuildMeta(_ dice.Roller, ctx *BuildContext) error {
	if ctx.Rooms == nil {
		return ErrNoRooms
	}

	rooms := ctx.Rooms
	switch r.Sort {
	case SortLeftmost:
		sort.SliceStable(rooms, func(i, j int) bool { return rooms[i].X1 < rooms[j].X1 })
	case SortRightmost:
		sort.SliceStable(rooms, func(i, j int) bool { return rooms[i].X2 > rooms[j].X2 })
	case SortTopmost:
		sort.SliceStable(rooms, func(i, j int) bool { return rooms[i].Y1 < rooms[j].Y1 })
	case SortBottommost:
		sort.SliceStable(rooms, func(i, j int) bool { return rooms[i].Y2 > rooms[j].Y2 })
	case SortCentral:
		center := grid.Position{X: ctx.Width() / 2, Y: ctx.Height() / 2}
		sort.SliceStable(rooms, func(i, j int) bool {
			return grid.PythagorasSquared(rooms[i].Center(), center) <
				grid.PythagorasSquared(rooms[j].Center(), center)
		})
	}
	return nil
}
