package wfc

import (
	"errors"
	"testing"

	"github.com/lawnchairsociety/towergen/internal/dice"
	"github.com/lawnchairsociety/towergen/internal/grid"
)

func TestNewSolver(t *testing.T) {
	rules := NewRules(corridorPatterns(t), 3)
	solver, err := NewSolver(rules, 4, 3, dice.New(42))
	if err != nil {
		t.Fatalf("NewSolver() failed: %v", err)
	}

	if solver.Width != 4 || solver.Height != 3 {
		t.Errorf("size = %dx%d, want 4x3", solver.Width, solver.Height)
	}
	if len(solver.Grid) != 3 || len(solver.Grid[0]) != 4 {
		t.Errorf("grid = %dx%d, want 4x3", len(solver.Grid[0]), len(solver.Grid))
	}
	if solver.Remaining() != 12 {
		t.Errorf("Remaining() = %d, want 12", solver.Remaining())
	}
}

func TestNewSolverInvalid(t *testing.T) {
	rules := NewRules(corridorPatterns(t), 3)
	if _, err := NewSolver(rules, 0, 3, dice.New(1)); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("zero width: err = %v, want ErrInvalidSize", err)
	}
	if _, err := NewSolver(NewRules(nil, 3), 2, 2, dice.New(1)); !errors.Is(err, ErrNoPatterns) {
		t.Errorf("empty rules: err = %v, want ErrNoPatterns", err)
	}
}

func TestCellEntropy(t *testing.T) {
	cell := &Cell{Possible: []int{0, 2, 5}}
	if got := cell.Entropy(); got != 3 {
		t.Errorf("Entropy() = %d, want 3", got)
	}
	cell.Possible = nil
	if got := cell.Entropy(); got != 0 {
		t.Errorf("Entropy() = %d, want 0", got)
	}
}

func TestSolverRespectsAdjacency(t *testing.T) {
	rules := NewRules(corridorPatterns(t), 3)

	for seed := int64(1); seed <= 20; seed++ {
		solver, err := NewSolver(rules, 5, 4, dice.New(seed))
		if err != nil {
			t.Fatalf("NewSolver() failed: %v", err)
		}
		// the solid chunk fits anywhere, so this rule set never contradicts
		if err := solver.Solve(); err != nil {
			t.Fatalf("seed %d: Solve() failed: %v", seed, err)
		}

		for y := 0; y < solver.Height; y++ {
			for x := 0; x < solver.Width; x++ {
				cell := solver.Grid[y][x]
				if !cell.Collapsed {
					t.Fatalf("seed %d: cell %d,%d not collapsed", seed, x, y)
				}
				for _, d := range []Direction{East, South} {
					n := solver.getNeighbor(x, y, d)
					if n == nil {
						continue
					}
					if !rules.CanBorder(cell.Chunk, n.Chunk, d) {
						t.Errorf("seed %d: chunk %d cannot have %d to the %v", seed, cell.Chunk, n.Chunk, d)
					}
				}
			}
		}
	}
}

func TestSolverDeterministic(t *testing.T) {
	rules := NewRules(corridorPatterns(t), 3)

	run := func() []int {
		solver, err := NewSolver(rules, 4, 4, dice.New(99))
		if err != nil {
			t.Fatalf("NewSolver() failed: %v", err)
		}
		if err := solver.Solve(); err != nil {
			t.Fatalf("Solve() failed: %v", err)
		}
		var chunks []int
		for _, row := range solver.Grid {
			for _, cell := range row {
				chunks = append(chunks, cell.Chunk)
			}
		}
		return chunks
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("cell %d differs between runs: %d vs %d", i, a[i], b[i])
		}
	}
}

func TestSolverContradiction(t *testing.T) {
	// a single chunk that allows nothing next to it
	rules := &Rules{
		ChunkSize: 1,
		Chunks:    []Chunk{{Pattern: Pattern{grid.TileFloor}, HasExits: true}},
	}
	solver, err := NewSolver(rules, 2, 1, dice.New(5))
	if err != nil {
		t.Fatalf("NewSolver() failed: %v", err)
	}

	done, err := solver.Iterate()
	if err != nil || done {
		t.Fatalf("first Iterate() = %v, %v; want false, nil", done, err)
	}
	if _, err := solver.Iterate(); !errors.Is(err, ErrContradiction) {
		t.Errorf("second Iterate() err = %v, want ErrContradiction", err)
	}
}

func TestSolverRender(t *testing.T) {
	rules := NewRules(corridorPatterns(t), 3)
	solver, err := NewSolver(rules, 2, 1, dice.New(3))
	if err != nil {
		t.Fatalf("NewSolver() failed: %v", err)
	}
	solver.Grid[0][0].Collapsed, solver.Grid[0][0].Chunk = true, 0
	solver.Grid[0][1].Collapsed, solver.Grid[0][1].Chunk = true, 0

	g := grid.New(1, 6, 3)
	solver.Render(g)
	if got := g.Rows()[1]; got != "......" {
		t.Errorf("middle row = %q, want a through corridor", got)
	}
}
