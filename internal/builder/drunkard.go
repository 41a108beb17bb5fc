package builder

import (
	"fmt"

	"github.com/lawnchairsociety/towergen/internal/dice"
	"github.com/lawnchairsociety/towergen/internal/grid"
	"github.com/lawnchairsociety/towergen/internal/logger"
)

// SpawnMode selects where each new walker begins
type SpawnMode int

const (
	SpawnStartingPoint SpawnMode = iota // every walker starts at the centre
	SpawnRandom                         // walkers after the first start anywhere
)

// DrunkardSettings configures a random-walk excavator
type DrunkardSettings struct {
	SpawnMode    SpawnMode
	Lifetime     int
	FloorPercent float64
	BrushSize    int
	Symmetry     Symmetry

	// MaxWalkers bounds the number of walkers; 0 means unbounded
	MaxWalkers int
}

// PresetMaxWalkers caps the preset excavators. A walk that has not reached
// its floor target by then fails with ErrNotConverged.
const PresetMaxWalkers = 4000

// DrunkardsWalk carves caves by letting walkers stagger around the map until
// enough of it is floor.
type DrunkardsWalk struct {
	name     string
	settings DrunkardSettings
}

// NewDrunkardsWalk creates an excavator with custom settings
func NewDrunkardsWalk(name string, settings DrunkardSettings) *DrunkardsWalk {
	return &DrunkardsWalk{name: name, settings: settings}
}

// DrunkardOpenArea keeps every walker anchored at the centre
func DrunkardOpenArea() *DrunkardsWalk {
	return NewDrunkardsWalk("drunkard_open_area", DrunkardSettings{
		SpawnMode: SpawnStartingPoint, Lifetime: 400, FloorPercent: 0.5, BrushSize: 1,
		MaxWalkers: PresetMaxWalkers,
	})
}

// DrunkardOpenHalls uses long-lived walkers spawned anywhere
func DrunkardOpenHalls() *DrunkardsWalk {
	return NewDrunkardsWalk("drunkard_open_halls", DrunkardSettings{
		SpawnMode: SpawnRandom, Lifetime: 400, FloorPercent: 0.5, BrushSize: 1,
		MaxWalkers: PresetMaxWalkers,
	})
}

// DrunkardWindingPassages uses short-lived walkers for narrow tunnels
func DrunkardWindingPassages() *DrunkardsWalk {
	return NewDrunkardsWalk("drunkard_winding_passages", DrunkardSettings{
		SpawnMode: SpawnRandom, Lifetime: 100, FloorPercent: 0.4, BrushSize: 1,
		MaxWalkers: PresetMaxWalkers,
	})
}

// DrunkardFatPassages is WindingPassages with a wider brush
func DrunkardFatPassages() *DrunkardsWalk {
	return NewDrunkardsWalk("drunkard_fat_passages", DrunkardSettings{
		SpawnMode: SpawnRandom, Lifetime: 100, FloorPercent: 0.4, BrushSize: 2,
		MaxWalkers: PresetMaxWalkers,
	})
}

// DrunkardFearfulSymmetry mirrors every step on both axes
func DrunkardFearfulSymmetry() *DrunkardsWalk {
	return NewDrunkardsWalk("drunkard_fearful_symmetry", DrunkardSettings{
		SpawnMode: SpawnRandom, Lifetime: 100, FloorPercent: 0.4, BrushSize: 1, Symmetry: SymmetryBoth,
		MaxWalkers: PresetMaxWalkers,
	})
}

func (d *DrunkardsWalk) Name() string {
	return d.name
}

func (d *DrunkardsWalk) Settings() DrunkardSettings {
	return d.settings
}

func (d *DrunkardsWalk) BuildInitial(rng dice.Roller, ctx *BuildContext) error {
	g := ctx.Grid
	s := d.settings

	start := grid.Position{X: g.Width / 2, Y: g.Height / 2}
	g.SetTile(start.X, start.Y, grid.TileFloor)

	desired := int(s.FloorPercent * float64(len(g.Tiles)))
	floorCount := g.CountTiles(grid.TileFloor)
	walkers := 0

	for floorCount < desired {
		if s.MaxWalkers > 0 && walkers >= s.MaxWalkers {
			return fmt.Errorf("%d walkers carved %d of %d floor tiles: %w",
				walkers, floorCount, desired, ErrNotConverged)
		}

		x, y := start.X, start.Y
		if s.SpawnMode == SpawnRandom && walkers > 0 {
			x = rng.Roll(1, g.Width-3) + 1
			y = rng.Roll(1, g.Height-3) + 1
		}

		carved := false
		for life := s.Lifetime; life > 0; life-- {
			if g.TileAt(x, y) == grid.TileWall {
				carved = true
			}
			paint(g, s.Symmetry, s.BrushSize, x, y)
			// DownStairs marks this walker's trail until it dies
			g.SetTile(x, y, grid.TileDownStairs)

			x, y = stagger(rng, g, x, y)
		}
		if carved {
			ctx.TakeSnapshot()
		}

		walkers++
		for i, t := range g.Tiles {
			if t == grid.TileDownStairs {
				g.Tiles[i] = grid.TileFloor
			}
		}
		floorCount = g.CountTiles(grid.TileFloor)
	}

	logger.Debug("Drunkard's walk finished", "walkers", walkers, "floor", floorCount, "target", desired)
	return nil
}
