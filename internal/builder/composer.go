package builder

import (
	"github.com/lawnchairsociety/towergen/internal/dice"
	"github.com/lawnchairsociety/towergen/internal/logger"
)

type (
	starterFactory func() InitialBuilder
	metaFactory    func() MetaBuilder
)

func one[T any](v T) dice.Option[T] {
	return dice.Option[T]{Value: v, Weight: 1}
}

var roomStarters = []dice.Option[starterFactory]{
	one[starterFactory](func() InitialBuilder { return NewSimpleMap() }),
	one[starterFactory](func() InitialBuilder { return NewBspDungeon() }),
	one[starterFactory](func() InitialBuilder { return NewBspInterior() }),
}

var roomSorts = []dice.Option[RoomSort]{
	one(SortLeftmost),
	one(SortRightmost),
	one(SortTopmost),
	one(SortBottommost),
	one(SortCentral),
}

var corridorStages = []dice.Option[metaFactory]{
	one[metaFactory](func() MetaBuilder { return NewDoglegCorridors() }),
	one[metaFactory](func() MetaBuilder { return NewNearestCorridors() }),
	one[metaFactory](func() MetaBuilder { return NewStraightLineCorridors() }),
	one[metaFactory](func() MetaBuilder { return NewBspCorridors() }),
}

// nil means leave the rooms alone
var roomModifiers = []dice.Option[metaFactory]{
	one[metaFactory](func() MetaBuilder { return NewRoomExploder() }),
	one[metaFactory](func() MetaBuilder { return NewRoomCornerRounder() }),
	{Value: nil, Weight: 4},
}

var roomStarts = []dice.Option[bool]{
	one(true), // room based
	one(false),
}

var roomExits = []dice.Option[metaFactory]{
	one[metaFactory](func() MetaBuilder { return NewRoomBasedStairs() }),
	one[metaFactory](func() MetaBuilder { return NewDistantExit() }),
}

var roomSpawners = []dice.Option[metaFactory]{
	one[metaFactory](func() MetaBuilder { return NewRoomBasedSpawner() }),
	one[metaFactory](func() MetaBuilder { return NewVoronoiSpawning() }),
}

var shapeStarters = []dice.Option[starterFactory]{
	one[starterFactory](func() InitialBuilder { return NewCellularAutomata() }),
	one[starterFactory](func() InitialBuilder { return DrunkardOpenArea() }),
	one[starterFactory](func() InitialBuilder { return DrunkardOpenHalls() }),
	one[starterFactory](func() InitialBuilder { return DrunkardWindingPassages() }),
	one[starterFactory](func() InitialBuilder { return DrunkardFatPassages() }),
	one[starterFactory](func() InitialBuilder { return DrunkardFearfulSymmetry() }),
	one[starterFactory](func() InitialBuilder { return NewMaze() }),
	one[starterFactory](func() InitialBuilder { return DLAWalkInwardsBuilder() }),
	one[starterFactory](func() InitialBuilder { return DLAWalkOutwardsBuilder() }),
	one[starterFactory](func() InitialBuilder { return DLACentralAttractorBuilder() }),
	one[starterFactory](func() InitialBuilder { return DLAInsectoidBuilder() }),
	one[starterFactory](func() InitialBuilder { return DLAHeavyErosionBuilder() }),
	one[starterFactory](func() InitialBuilder { return VoronoiPythagoras() }),
	one[starterFactory](func() InitialBuilder { return VoronoiManhattan() }),
	one[starterFactory](func() InitialBuilder { return NewPrefabConstant(OvergrownKeep) }),
	one[starterFactory](func() InitialBuilder { return VoronoiChebyshev() }),
}

// RandomBuilder rolls a complete chain for a depth: either a room layout or
// a free-form shape, optionally rebuilt with waveform collapse, optionally
// given a fort section, and always finished with doors and vaults.
func RandomBuilder(depth int, rng dice.Roller, width, height int) (*Chain, error) {
	chain := NewChain(depth, width, height)

	var err error
	if rng.Roll(1, 2) == 1 {
		err = randomRoomBuilder(rng, chain)
	} else {
		err = randomShapeBuilder(rng, chain)
	}
	if err != nil {
		return nil, err
	}

	if rng.Roll(1, 3) == 1 {
		chain.With(NewWaveformCollapse())
		chain.With(NewAreaStartingPosition(RandomStartAnchor(rng)))
		// the rebuilt map is not guaranteed to be connected
		chain.With(NewCullUnreachable())
		chain.With(NewVoronoiSpawning())
		chain.With(NewDistantExit())
	}

	if rng.Roll(1, 20) == 1 {
		chain.With(NewPrefabSectional(SunkenFort))
		chain.With(NewCullUnreachable())
	}

	chain.With(NewDoorPlacement())
	chain.With(NewRoomVaults())

	logger.Debug("Composed builder chain", "depth", depth, "stages", chain.Stages())
	return chain, nil
}

func randomRoomBuilder(rng dice.Roller, chain *Chain) error {
	starter := pick(rng, roomStarters)()
	if err := chain.StartWith(starter); err != nil {
		return err
	}

	// BspInterior carves its own doorways
	if _, interior := starter.(*BspInterior); !interior {
		chain.With(NewRoomSorter(pick(rng, roomSorts)))
		chain.With(pick(rng, corridorStages)())

		if rng.Roll(1, 2) == 1 {
			chain.With(NewCorridorSpawner())
		}

		if modifier := pick(rng, roomModifiers); modifier != nil {
			chain.With(modifier())
		}
	}

	if pick(rng, roomStarts) {
		chain.With(NewRoomBasedStartingPosition())
	} else {
		chain.With(NewAreaStartingPosition(RandomStartAnchor(rng)))
	}

	chain.With(NewRoomDrawer())
	chain.With(pick(rng, roomExits)())
	chain.With(pick(rng, roomSpawners)())
	return nil
}

func randomShapeBuilder(rng dice.Roller, chain *Chain) error {
	if err := chain.StartWith(pick(rng, shapeStarters)()); err != nil {
		return err
	}

	chain.With(NewAreaStartingPosition(XCenter, YCenter))
	chain.With(NewCullUnreachable())

	chain.With(NewAreaStartingPosition(RandomStartAnchor(rng)))
	chain.With(NewVoronoiSpawning())
	chain.With(NewDistantExit())
	return nil
}

// pick wraps dice.Pick for the composer tables, which always carry weight
func pick[T any](rng dice.Roller, options []dice.Option[T]) T {
	v, _ := dice.Pick(rng, options)
	return v
}
