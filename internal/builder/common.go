package builder

import (
	"github.com/lawnchairsociety/towergen/internal/dice"
	"github.com/lawnchairsociety/towergen/internal/grid"
)

// Symmetry controls how a painted cell is mirrored about the grid centre
type Symmetry int

const (
	SymmetryNone Symmetry = iota
	SymmetryHorizontal
	SymmetryVertical
	SymmetryBoth
)

func (s Symmetry) String() string {
	switch s {
	case SymmetryNone:
		return "none"
	case SymmetryHorizontal:
		return "horizontal"
	case SymmetryVertical:
		return "vertical"
	case SymmetryBoth:
		return "both"
	default:
		return "unknown"
	}
}

// paint carves a brush-sized square at (x, y), mirrored according to mode
func paint(g *grid.Grid, mode Symmetry, brushSize, x, y int) {
	centerX := g.Width / 2
	centerY := g.Height / 2

	switch mode {
	case SymmetryNone:
		applyPaint(g, brushSize, x, y)
	case SymmetryHorizontal:
		if x == centerX {
			applyPaint(g, brushSize, x, y)
		} else {
			dx := abs(centerX - x)
			applyPaint(g, brushSize, centerX+dx, y)
			applyPaint(g, brushSize, centerX-dx, y)
		}
	case SymmetryVertical:
		if y == centerY {
			applyPaint(g, brushSize, x, y)
		} else {
			dy := abs(centerY - y)
			applyPaint(g, brushSize, x, centerY+dy)
			applyPaint(g, brushSize, x, centerY-dy)
		}
	case SymmetryBoth:
		if x == centerX && y == centerY {
			applyPaint(g, brushSize, x, y)
		} else {
			dx := abs(centerX - x)
			dy := abs(centerY - y)
			applyPaint(g, brushSize, centerX+dx, y)
			applyPaint(g, brushSize, centerX-dx, y)
			applyPaint(g, brushSize, x, centerY+dy)
			applyPaint(g, brushSize, x, centerY-dy)
		}
	}
}

// applyPaint carves one cell for a brush of 1 or less, otherwise a square
// of side brushSize that keeps a two cell margin from the border.
func applyPaint(g *grid.Grid, brushSize, x, y int) {
	if brushSize <= 1 {
		g.SetTile(x, y, grid.TileFloor)
		return
	}

	half := brushSize / 2
	for by := y - half; by < y+half; by++ {
		for bx := x - half; bx < x+half; bx++ {
			if bx > 1 && bx < g.Width-1 && by > 1 && by < g.Height-1 {
				g.SetTile(bx, by, grid.TileFloor)
			}
		}
	}
}

// applyRoom carves the interior of a room rectangle. The outer ring of the
// grid is never carved.
func applyRoom(g *grid.Grid, room grid.Rect) {
	for y := room.Y1 + 1; y <= room.Y2; y++ {
		for x := room.X1 + 1; x <= room.X2; x++ {
			if interior(g, x, y) {
				g.SetTile(x, y, grid.TileFloor)
			}
		}
	}
}

// interior reports whether (x, y) lies inside the border ring
func interior(g *grid.Grid, x, y int) bool {
	return x > 0 && x < g.Width-1 && y > 0 && y < g.Height-1
}

// horizontalTunnel carves a row segment and returns the cells it converted
func horizontalTunnel(g *grid.Grid, x1, x2, y int) []int {
	var corridor []int
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		if g.InBounds(x, y) && g.TileAt(x, y) != grid.TileFloor {
			corridor = append(corridor, g.Index(x, y))
			g.SetTile(x, y, grid.TileFloor)
		}
	}
	return corridor
}

// verticalTunnel carves a column segment and returns the cells it converted
func verticalTunnel(g *grid.Grid, y1, y2, x int) []int {
	var corridor []int
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		if g.InBounds(x, y) && g.TileAt(x, y) != grid.TileFloor {
			corridor = append(corridor, g.Index(x, y))
			g.SetTile(x, y, grid.TileFloor)
		}
	}
	return corridor
}

// drawCorridor walks from (x1, y1) to (x2, y2), closing the x gap before the
// y gap, and returns the cells it converted to floor.
func drawCorridor(g *grid.Grid, x1, y1, x2, y2 int) []int {
	var corridor []int
	x, y := x1, y1

	for x != x2 || y != y2 {
		switch {
		case x < x2:
			x++
		case x > x2:
			x--
		case y < y2:
			y++
		case y > y2:
			y--
		}

		if g.InBounds(x, y) && g.TileAt(x, y) != grid.TileFloor {
			corridor = append(corridor, g.Index(x, y))
			g.SetTile(x, y, grid.TileFloor)
		}
	}
	return corridor
}

// stagger moves (x, y) one random cardinal step, keeping clear of the border
func stagger(rng dice.Roller, g *grid.Grid, x, y int) (int, int) {
	switch rng.Roll(1, 4) {
	case 1:
		if x > 2 {
			x--
		}
	case 2:
		if x < g.Width-2 {
			x++
		}
	case 3:
		if y > 2 {
			y--
		}
	default:
		if y < g.Height-2 {
			y++
		}
	}
	return x, y
}

// floorCells returns the indices of every floor tile in scan order
func floorCells(g *grid.Grid) []int {
	var cells []int
	for i, t := range g.Tiles {
		if t == grid.TileFloor {
			cells = append(cells, i)
		}
	}
	return cells
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
