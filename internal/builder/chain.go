package builder

import (
	"github.com/lawnchairsociety/towergen/internal/dice"
	"github.com/lawnchairsociety/towergen/internal/logger"
	"github.com/lawnchairsociety/towergen/internal/spawner"
)

// InitialBuilder lays down the first content of an all-wall grid
type InitialBuilder interface {
	Name() string
	BuildInitial(rng dice.Roller, ctx *BuildContext) error
}

// MetaBuilder refines a context produced by earlier stages
type MetaBuilder interface {
	Name() string
	BuildMeta(rng dice.Roller, ctx *BuildContext) error
}

// EntitySpawner turns placement requests into live entities
type EntitySpawner interface {
	SpawnEntities(depth int, entries []spawner.Entry) error
}

// Chain runs one InitialBuilder followed by any number of MetaBuilders.
// A chain can only be built once.
type Chain struct {
	starter  InitialBuilder
	builders []MetaBuilder
	ctx      *BuildContext
	built    bool
}

// NewChain creates an empty chain for a depth and map size
func NewChain(depth, width, height int) *Chain {
	return &Chain{
		ctx: NewBuildContext(depth, width, height),
	}
}

// StartWith sets the initial stage. It may only be called once.
func (c *Chain) StartWith(b InitialBuilder) error {
	if c.starter != nil {
		return ErrStarterAlreadySet
	}
	c.starter = b
	return nil
}

// With appends a meta stage
func (c *Chain) With(b MetaBuilder) *Chain {
	c.builders = append(c.builders, b)
	return c
}

// Context returns the shared build context
func (c *Chain) Context() *BuildContext {
	return c.ctx
}

// Stages returns the stage names in execution order
func (c *Chain) Stages() []string {
	names := make([]string, 0, len(c.builders)+1)
	if c.starter != nil {
		names = append(names, c.starter.Name())
	}
	for _, b := range c.builders {
		names = append(names, b.Name())
	}
	return names
}

// Build runs the initial stage and then each meta stage in order. The first
// failing stage aborts the run and is reported as a *BuildError.
func (c *Chain) Build(rng dice.Roller) error {
	if c.built {
		return ErrAlreadyBuilt
	}
	c.built = true

	if c.starter == nil {
		return &BuildError{Stage: "chain", Err: ErrNoStarter}
	}

	logger.Debug("Running initial builder", "stage", c.starter.Name(), "depth", c.ctx.Depth())
	if err := c.starter.BuildInitial(rng, c.ctx); err != nil {
		return &BuildError{Stage: c.starter.Name(), Err: err}
	}

	for _, b := range c.builders {
		logger.Debug("Running meta builder", "stage", b.Name(), "depth", c.ctx.Depth())
		if err := b.BuildMeta(rng, c.ctx); err != nil {
			return &BuildError{Stage: b.Name(), Err: err}
		}
	}
	return nil
}

// SpawnEntities hands the final spawn list to the instantiation collaborator
func (c *Chain) SpawnEntities(s EntitySpawner) error {
	return s.SpawnEntities(c.ctx.Depth(), c.ctx.SpawnList)
}
