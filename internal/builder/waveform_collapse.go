package builder

import (
	"fmt"

	"github.com/lawnchairsociety/towergen/internal/dice"
	"github.com/lawnchairsociety/towergen/internal/grid"
	"github.com/lawnchairsociety/towergen/internal/logger"
	"github.com/lawnchairsociety/towergen/internal/wfc"
)

// WaveformCollapse cuts the current map into chunks and lays out a new map of
// the same size from them. Rooms, corridors, spawns and the start are dropped
// because none of them survive the rebuild.
type WaveformCollapse struct {
	ChunkSize int
}

func NewWaveformCollapse() *WaveformCollapse {
	return &WaveformCollapse{ChunkSize: wfc.DefaultChunkSize}
}

func (w *WaveformCollapse) Name() string {
	return fmt.Sprintf("waveform_collapse(%d)", w.ChunkSize)
}

func (w *WaveformCollapse) BuildMeta(rng dice.Roller, ctx *BuildContext) error {
	ctx.TakeSnapshot()

	gen := wfc.FromGrid(ctx.Grid, w.ChunkSize)
	if gen.Rules().Len() == 0 {
		return fmt.Errorf("%w: source map smaller than one chunk", ErrPatternExhausted)
	}

	dst := grid.New(ctx.Depth(), ctx.Width(), ctx.Height())
	if HistoryEnabled() {
		gen.OnStep = func(g *grid.Grid) {
			ctx.History = append(ctx.History, g.Snapshot())
		}
	}
	if err := gen.Generate(rng, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrPatternExhausted, err)
	}

	for x := 0; x < dst.Width; x++ {
		dst.SetTile(x, 0, grid.TileWall)
		dst.SetTile(x, dst.Height-1, grid.TileWall)
	}
	for y := 0; y < dst.Height; y++ {
		dst.SetTile(0, y, grid.TileWall)
		dst.SetTile(dst.Width-1, y, grid.TileWall)
	}

	ctx.Grid = dst
	ctx.Rooms = nil
	ctx.Corridors = nil
	ctx.SpawnList = nil
	ctx.StartingPosition = nil
	ctx.TakeSnapshot()

	logger.Debug("Rebuilt map from chunks", "chunks", gen.Rules().Len(), "floor", dst.CountTiles(grid.TileFloor))
	return nil
}
