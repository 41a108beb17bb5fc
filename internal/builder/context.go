// Package builder assembles levels from a chain of generation stages that
// share and mutate a single BuildContext.
package builder

import (
	"sync/atomic"

	"github.com/lawnchairsociety/towergen/internal/grid"
	"github.com/lawnchairsociety/towergen/internal/spawner"
)

var historyEnabled atomic.Bool

// SetHistoryEnabled turns snapshot recording on or off for every chain in the process
func SetHistoryEnabled(enabled bool) {
	historyEnabled.Store(enabled)
}

// HistoryEnabled reports whether snapshots are being recorded
func HistoryEnabled() bool {
	return historyEnabled.Load()
}

// BuildContext is the state threaded through every stage of a chain.
// Rooms and Corridors are nil until a stage produces them.
type BuildContext struct {
	Grid             *grid.Grid
	StartingPosition *grid.Position
	Rooms            []grid.Rect
	Corridors        [][]int
	SpawnList        []spawner.Entry
	History          []*grid.Grid
}

// NewBuildContext creates a context around a fresh all-wall grid
func NewBuildContext(depth, width, height int) *BuildContext {
	return &BuildContext{
		Grid: grid.New(depth, width, height),
	}
}

// Width returns the grid width
func (c *BuildContext) Width() int {
	return c.Grid.Width
}

// Height returns the grid height
func (c *BuildContext) Height() int {
	return c.Grid.Height
}

// Depth returns the grid depth
func (c *BuildContext) Depth() int {
	return c.Grid.Depth()
}

// SetStart overwrites the starting position
func (c *BuildContext) SetStart(p grid.Position) {
	c.StartingPosition = &p
}

// TakeSnapshot appends a fully revealed copy of the grid to History when
// recording is enabled.
func (c *BuildContext) TakeSnapshot() {
	if !historyEnabled.Load() {
		return
	}
	c.History = append(c.History, c.Grid.Snapshot())
}

// ExitIndex returns the index of the first DownStairs tile, or -1
func (c *BuildContext) ExitIndex() int {
	for i, t := range c.Grid.Tiles {
		if t == grid.TileDownStairs {
			return i
		}
	}
	return -1
}

// dropSpawns removes every spawn entry for which drop returns true
func (c *BuildContext) dropSpawns(drop func(idx int) bool) {
	kept := c.SpawnList[:0]
	for _, e := range c.SpawnList {
		if !drop(e.Index) {
			kept = append(kept, e)
		}
	}
	c.SpawnList = kept
}
