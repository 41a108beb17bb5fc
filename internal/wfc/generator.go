package wfc

import (
	"fmt"

	"github.com/lawnchairsociety/towergen/internal/dice"
	"github.com/lawnchairsociety/towergen/internal/grid"
)

// DefaultChunkSize is the side length of the patterns cut from a source map
const DefaultChunkSize = 8

// Generator rebuilds maps from a rule set, restarting the solver on contradiction
type Generator struct {
	rules      *Rules
	maxRetries int

	// OnStep, if set, is called with the partial map after every collapsed cell
	OnStep func(*grid.Grid)
}

// NewGenerator creates a generator for a rule set
func NewGenerator(rules *Rules) *Generator {
	return &Generator{
		rules:      rules,
		maxRetries: 50,
	}
}

// FromGrid builds deduplicated, flipped patterns from src and wraps them in a generator
func FromGrid(src *grid.Grid, chunkSize int) *Generator {
	patterns := BuildPatterns(src, chunkSize, true, true)
	return NewGenerator(NewRules(patterns, chunkSize))
}

// Rules returns the generator's rule set
func (g *Generator) Rules() *Rules {
	return g.rules
}

// Generate fills dst with a new layout. Areas not covered by a whole chunk
// are left as wall.
func (g *Generator) Generate(rng dice.Roller, dst *grid.Grid) error {
	if g.rules == nil || g.rules.Len() == 0 {
		return ErrNoPatterns
	}
	size := g.rules.ChunkSize
	chunksX := dst.Width / size
	chunksY := dst.Height / size

	var lastErr error
	for attempt := 0; attempt < g.maxRetries; attempt++ {
		solver, err := NewSolver(g.rules, chunksX, chunksY, rng)
		if err != nil {
			return err
		}

		if lastErr = g.run(solver, dst); lastErr == nil {
			dst.Fill(grid.TileWall)
			solver.Render(dst)
			return nil
		}
	}

	return fmt.Errorf("%w after %d attempts: %v", ErrNoSolution, g.maxRetries, lastErr)
}

func (g *Generator) run(solver *Solver, dst *grid.Grid) error {
	for {
		done, err := solver.Iterate()
		if err != nil {
			return err
		}
		if g.OnStep != nil {
			dst.Fill(grid.TileWall)
			solver.Render(dst)
			g.OnStep(dst)
		}
		if done {
			return nil
		}
	}
}
