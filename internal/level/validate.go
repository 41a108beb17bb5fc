package level

import (
	"errors"
	"fmt"

	"github.com/lawnchairsociety/towergen/internal/grid"
)

var (
	ErrStartBlocked     = errors.New("level: start is not walkable")
	ErrExitCount        = errors.New("level: map must have exactly one exit")
	ErrExitMismatch     = errors.New("level: recorded exit is not the stairs tile")
	ErrStartIsExit      = errors.New("level: start and exit share a cell")
	ErrUnreachableFloor = errors.New("level: floor not reachable from start")
	ErrSpawnOffFloor    = errors.New("level: spawn placed off the floor")
	ErrNoSpawns         = errors.New("level: spawn list is empty")
)

// Validate checks the structural guarantees every generated level must meet:
// a walkable start, exactly one distinct exit, every floor tile and the exit
// reachable from the start, and at least one spawn, all of them on floor.
func Validate(l *Level) error {
	g := l.Grid

	if !g.InBounds(l.Start.X, l.Start.Y) || !g.TileAt(l.Start.X, l.Start.Y).Walkable() {
		return fmt.Errorf("%w: %v", ErrStartBlocked, l.Start)
	}

	if n := g.CountTiles(grid.TileDownStairs); n != 1 {
		return fmt.Errorf("%w: found %d", ErrExitCount, n)
	}
	if g.TileAt(l.Exit.X, l.Exit.Y) != grid.TileDownStairs {
		return fmt.Errorf("%w: %v", ErrExitMismatch, l.Exit)
	}
	if l.Start == l.Exit {
		return fmt.Errorf("%w: %v", ErrStartIsExit, l.Start)
	}

	dm := g.WalkableFrom(l.Start, grid.DefaultMaxCost)
	if !dm.Reachable(g.Index(l.Exit.X, l.Exit.Y)) {
		return fmt.Errorf("%w: exit %v", ErrUnreachableFloor, l.Exit)
	}
	for i, t := range g.Tiles {
		if t == grid.TileFloor && !dm.Reachable(i) {
			return fmt.Errorf("%w: %v", ErrUnreachableFloor, g.PositionOf(i))
		}
	}

	if len(l.Spawns) == 0 {
		return ErrNoSpawns
	}
	for _, e := range l.Spawns {
		if !g.ValidIndex(e.Index) || g.Tiles[e.Index] != grid.TileFloor {
			return fmt.Errorf("%w: %v", ErrSpawnOffFloor, e)
		}
	}
	return nil
}
