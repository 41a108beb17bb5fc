package wfc

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/lawnchairsociety/towergen/internal/dice"
	"github.com/lawnchairsociety/towergen/internal/grid"
)

var (
	ErrContradiction = errors.New("wfc: contradiction - no valid chunks for cell")
	ErrInvalidSize   = errors.New("wfc: invalid grid size")
	ErrNoPatterns    = errors.New("wfc: no patterns to build from")
	ErrNoSolution    = errors.New("wfc: failed to find valid solution")
)

// Cell represents a single chunk slot during solving
type Cell struct {
	X, Y      int
	Possible  []int // chunk indices still allowed, refreshed every iteration
	Collapsed bool
	Chunk     int // the assigned chunk (if collapsed)
}

// Entropy returns the number of possible chunks
func (c *Cell) Entropy() int {
	return len(c.Possible)
}

// Solver lays chunks out on a Width x Height chunk grid. Each iteration
// collapses the constrained cell with the fewest options; if nothing is
// constrained yet a random cell gets a random chunk.
type Solver struct {
	Width, Height int
	Grid          [][]*Cell
	Rules         *Rules
	rng           dice.Roller

	remaining int
}

// NewSolver creates a solver for a chunk grid of the given size
func NewSolver(rules *Rules, width, height int, rng dice.Roller) (*Solver, error) {
	if width < 1 || height < 1 {
		return nil, ErrInvalidSize
	}
	if rules == nil || rules.Len() == 0 {
		return nil, ErrNoPatterns
	}

	s := &Solver{
		Width:     width,
		Height:    height,
		Rules:     rules,
		rng:       rng,
		remaining: width * height,
	}
	s.Grid = make([][]*Cell, height)
	for y := 0; y < height; y++ {
		s.Grid[y] = make([]*Cell, width)
		for x := 0; x < width; x++ {
			s.Grid[y][x] = &Cell{X: x, Y: y, Chunk: -1}
		}
	}
	return s, nil
}

// Remaining returns the number of cells not yet collapsed
func (s *Solver) Remaining() int {
	return s.remaining
}

// Solve iterates until every cell is collapsed or a contradiction occurs
func (s *Solver) Solve() error {
	for {
		done, err := s.Iterate()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// Iterate collapses one cell. It returns true once the grid is complete.
func (s *Solver) Iterate() (bool, error) {
	if s.remaining == 0 {
		return true, nil
	}

	var best *Cell
	var open []*Cell
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			cell := s.Grid[y][x]
			if cell.Collapsed {
				continue
			}
			open = append(open, cell)

			options, neighbors := s.candidates(x, y)
			cell.Possible = options
			if neighbors == 0 {
				continue
			}
			if len(options) == 0 {
				return false, fmt.Errorf("cell %d,%d: %w", x, y, ErrContradiction)
			}
			if best == nil || cell.Entropy() < best.Entropy() {
				best = cell
			}
		}
	}

	if best == nil {
		best = open[s.rng.Roll(1, len(open))-1]
	}

	pick := 0
	if len(best.Possible) > 1 {
		pick = s.rng.Roll(1, len(best.Possible)) - 1
	}
	best.Chunk = best.Possible[pick]
	best.Collapsed = true
	best.Possible = nil
	s.remaining--

	return s.remaining == 0, nil
}

// candidates returns the chunks allowed at (x, y) by its collapsed neighbours,
// in ascending order, and how many collapsed neighbours there are.
func (s *Solver) candidates(x, y int) ([]int, int) {
	var lists [][]int
	for _, d := range AllDirections() {
		n := s.getNeighbor(x, y, d)
		if n == nil || !n.Collapsed {
			continue
		}
		// the neighbour sees this cell on its opposite side
		lists = append(lists, s.Rules.Chunks[n.Chunk].Compatible[d.Opposite()])
	}

	if len(lists) == 0 {
		all := make([]int, s.Rules.Len())
		for i := range all {
			all[i] = i
		}
		return all, 0
	}

	sets := make([]mapset.Set[int], len(lists)-1)
	for i, l := range lists[1:] {
		sets[i] = mapset.New[int]()
		for _, idx := range l {
			sets[i].Put(idx)
		}
	}

	var out []int
	for _, idx := range lists[0] {
		ok := true
		for _, set := range sets {
			if !set.Has(idx) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, idx)
		}
	}
	return out, len(lists)
}

// neighborCoords returns the coordinates of a neighbor in the given direction
func (s *Solver) neighborCoords(x, y int, dir Direction) (int, int) {
	switch dir {
	case North:
		return x, y - 1
	case South:
		return x, y + 1
	case East:
		return x + 1, y
	case West:
		return x - 1, y
	}
	return x, y
}

// getNeighbor returns the neighbor cell in the given direction
func (s *Solver) getNeighbor(x, y int, dir Direction) *Cell {
	nx, ny := s.neighborCoords(x, y, dir)
	if nx < 0 || nx >= s.Width || ny < 0 || ny >= s.Height {
		return nil
	}
	return s.Grid[ny][nx]
}

// Render stamps every collapsed cell into g
func (s *Solver) Render(g *grid.Grid) {
	size := s.Rules.ChunkSize
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			if cell := s.Grid[y][x]; cell.Collapsed {
				s.Rules.Stamp(g, cell.Chunk, x*size, y*size)
			}
		}
	}
}
