package level

import (
	"errors"
	"fmt"

	"github.com/lawnchairsociety/towergen/internal/builder"
	"github.com/lawnchairsociety/towergen/internal/config"
	"github.com/lawnchairsociety/towergen/internal/dice"
	"github.com/lawnchairsociety/towergen/internal/grid"
	"github.com/lawnchairsociety/towergen/internal/logger"
)

// ErrGenerationFailed is returned when every attempt for a level failed
var ErrGenerationFailed = errors.New("level: generation failed")

// seedStride separates the seeds of consecutive attempts
const seedStride = 1000

// Generator produces validated levels. Each attempt rolls a fresh chain from
// a seed derived from the requested one, so a (depth, seed) pair always
// yields the same level.
type Generator struct {
	cfg config.GeneratorConfig

	// compose rolls the builder chain for one attempt
	compose func(depth int, rng dice.Roller, width, height int) (*builder.Chain, error)
}

// NewGenerator creates a generator. Missing attempt counts default to one.
func NewGenerator(cfg config.GeneratorConfig) *Generator {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Generator{cfg: cfg, compose: builder.RandomBuilder}
}

// Config returns the generator settings
func (g *Generator) Config() config.GeneratorConfig {
	return g.cfg
}

// Generate builds the level for depth from seed, retrying with derived seeds
// until one validates or the attempts run out.
func (g *Generator) Generate(depth int, seed int64) (*Level, error) {
	builder.SetHistoryEnabled(g.cfg.History)

	var lastErr error
	for attempt := 0; attempt < g.cfg.MaxAttempts; attempt++ {
		attemptSeed := seed + int64(attempt)*seedStride

		lvl, err := g.attempt(depth, attemptSeed)
		if err == nil {
			lvl.Attempt = attempt
			logger.Info("Generated level",
				"depth", depth,
				"seed", attemptSeed,
				"attempt", attempt,
				"stages", len(lvl.Stages),
				"spawns", len(lvl.Spawns))
			return lvl, nil
		}

		lastErr = err
		logger.Warning("Level attempt rejected",
			"depth", depth,
			"seed", attemptSeed,
			"attempt", attempt,
			"error", err)
	}

	return nil, fmt.Errorf("%w: depth %d seed %d after %d attempts: %w",
		ErrGenerationFailed, depth, seed, g.cfg.MaxAttempts, lastErr)
}

func (g *Generator) attempt(depth int, seed int64) (*Level, error) {
	rng := dice.New(seed)

	chain, err := g.compose(depth, rng, g.cfg.Width, g.cfg.Height)
	if err != nil {
		return nil, err
	}
	if err := chain.Build(rng); err != nil {
		return nil, err
	}

	ctx := chain.Context()
	if ctx.StartingPosition == nil {
		return nil, fmt.Errorf("%w: no starting position", ErrStartBlocked)
	}
	exit := ctx.ExitIndex()
	if exit < 0 {
		return nil, fmt.Errorf("%w: found 0", ErrExitCount)
	}

	lvl := &Level{
		Depth:   depth,
		Seed:    seed,
		Grid:    ctx.Grid,
		Start:   *ctx.StartingPosition,
		Exit:    ctx.Grid.PositionOf(exit),
		Spawns:  ctx.SpawnList,
		Stages:  chain.Stages(),
		History: ctx.History,
	}
	if err := Validate(lvl); err != nil {
		return nil, err
	}
	return lvl, nil
}

// Frames returns the history snapshots followed by the finished map, so a
// viewer always ends on the final layout.
func (l *Level) Frames() []*grid.Grid {
	frames := make([]*grid.Grid, 0, len(l.History)+1)
	frames = append(frames, l.History...)
	return append(frames, l.Grid.Snapshot())
}
