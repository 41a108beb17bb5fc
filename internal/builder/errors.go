package builder

import (
	"errors"
	"fmt"
)

// Precondition and generation errors returned by stages and the chain
var (
	ErrNoStarter          = errors.New("builder: no starting builder set")
	ErrStarterAlreadySet  = errors.New("builder: starting builder already set")
	ErrAlreadyBuilt       = errors.New("builder: chain already built")
	ErrNoRooms            = errors.New("builder: stage requires rooms")
	ErrNoCorridors        = errors.New("builder: stage requires corridors")
	ErrNoStartingPosition = errors.New("builder: stage requires a starting position")
	ErrNoFloor            = errors.New("builder: no floor tile available")
	ErrNoExit             = errors.New("builder: no reachable exit tile")
	ErrNotConverged       = errors.New("builder: carving did not reach target floor fraction")
	ErrPatternExhausted   = errors.New("builder: constraint solver could not rebuild the map")
)

// BuildError identifies the stage that aborted a chain
type BuildError struct {
	Stage string
	Err   error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}
