package builder

import (
	"github.com/lawnchairsociety/towergen/internal/dice"
	"github.com/lawnchairsociety/towergen/internal/grid"
)

// Direction is a cardinal side of a maze cell
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// mazeCell is one carved room of the maze; each cell maps to a 2x2 block of the grid
type mazeCell struct {
	row, column int
	walls       [4]bool
	visited     bool
}

// mazeGrid runs a backtracking carver over a lattice of cells
type mazeGrid struct {
	width, height int
	cells         []mazeCell
	backtrace     []int
	current       int
	rng           dice.Roller
}

func newMazeGrid(width, height int, rng dice.Roller) *mazeGrid {
	m := &mazeGrid{
		width:  width,
		height: height,
		cells:  make([]mazeCell, 0, width*height),
		rng:    rng,
	}
	for row := 0; row < height; row++ {
		for column := 0; column < width; column++ {
			m.cells = append(m.cells, mazeCell{
				row:    row,
				column: column,
				walls:  [4]bool{true, true, true, true},
			})
		}
	}
	return m
}

func (m *mazeGrid) index(row, column int) int {
	if row < 0 || column < 0 || row >= m.height || column >= m.width {
		return -1
	}
	return column + row*m.width
}

// availableNeighbors returns unvisited neighbours in north, east, south, west order
func (m *mazeGrid) availableNeighbors() []int {
	c := m.cells[m.current]
	candidates := [4]int{
		m.index(c.row-1, c.column),
		m.index(c.row, c.column+1),
		m.index(c.row+1, c.column),
		m.index(c.row, c.column-1),
	}

	var out []int
	for _, idx := range candidates {
		if idx >= 0 && !m.cells[idx].visited {
			out = append(out, idx)
		}
	}
	return out
}

func (m *mazeGrid) nextCell() int {
	neighbors := m.availableNeighbors()
	switch len(neighbors) {
	case 0:
		return -1
	case 1:
		return neighbors[0]
	default:
		return neighbors[m.rng.Roll(1, len(neighbors))-1]
	}
}

func (m *mazeGrid) removeWalls(a, b int) {
	ca, cb := &m.cells[a], &m.cells[b]
	var d Direction
	switch {
	case cb.row < ca.row:
		d = North
	case cb.column > ca.column:
		d = East
	case cb.row > ca.row:
		d = South
	default:
		d = West
	}
	ca.walls[d] = false
	cb.walls[d.Opposite()] = false
}

// generate carves passages. Dead ends resume from the oldest cell on the
// backtrace, which gives long winding corridors.
func (m *mazeGrid) generate(ctx *BuildContext) {
	i := 0
	for {
		m.cells[m.current].visited = true
		next := m.nextCell()

		if next >= 0 {
			m.cells[next].visited = true
			m.backtrace = append(m.backtrace, m.current)
			m.removeWalls(m.current, next)
			m.current = next
		} else if len(m.backtrace) > 0 {
			m.current = m.backtrace[0]
			m.backtrace = m.backtrace[1:]
		} else {
			break
		}

		if i%50 == 0 && HistoryEnabled() {
			m.copyTo(ctx.Grid)
			ctx.TakeSnapshot()
		}
		i++
	}
}

func (m *mazeGrid) copyTo(g *grid.Grid) {
	g.Fill(grid.TileWall)
	for _, c := range m.cells {
		x := (c.column + 1) * 2
		y := (c.row + 1) * 2

		g.SetTile(x, y, grid.TileFloor)
		if !c.walls[North] {
			g.SetTile(x, y-1, grid.TileFloor)
		}
		if !c.walls[East] {
			g.SetTile(x+1, y, grid.TileFloor)
		}
		if !c.walls[South] {
			g.SetTile(x, y+1, grid.TileFloor)
		}
		if !c.walls[West] {
			g.SetTile(x-1, y, grid.TileFloor)
		}
	}
}

// Maze carves a perfect maze on a lattice of every other grid cell
type Maze struct{}

func NewMaze() *Maze {
	return &Maze{}
}

func (Maze) Name() string {
	return "maze"
}

func (Maze) BuildInitial(rng dice.Roller, ctx *BuildContext) error {
	w := ctx.Width()/2 - 2
	h := ctx.Height()/2 - 2
	if w < 1 || h < 1 {
		return grid.ErrInvalidSize
	}

	m := newMazeGrid(w, h, rng)
	m.generate(ctx)
	m.copyTo(ctx.Grid)
	ctx.TakeSnapshot()
	return nil
}
