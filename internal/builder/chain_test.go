package builder

import (
	"errors"
	"testing"

	"github.com/lawnchairsociety/towergen/internal/dice"
	"github.com/lawnchairsociety/towergen/internal/grid"
	"github.com/lawnchairsociety/towergen/internal/spawner"
)

// contextFromRows builds a context whose grid is parsed from ASCII rows
func contextFromRows(t *testing.T, depth int, rows ...string) *BuildContext {
	t.Helper()
	g, err := grid.FromRows(depth, rows)
	if err != nil {
		t.Fatalf("FromRows() failed: %v", err)
	}
	return &BuildContext{Grid: g}
}

type stubInitial struct {
	name string
	runs int
}

func (s *stubInitial) Name() string { return s.name }

func (s *stubInitial) BuildInitial(_ dice.Roller, ctx *BuildContext) error {
	s.runs++
	ctx.Grid.SetTile(1, 1, grid.TileFloor)
	ctx.TakeSnapshot()
	return nil
}

type stubMeta struct {
	name string
	err  error
	runs int
}

func (s *stubMeta) Name() string { return s.name }

func (s *stubMeta) BuildMeta(_ dice.Roller, _ *BuildContext) error {
	s.runs++
	return s.err
}

type recordingSpawner struct {
	depth   int
	entries []spawner.Entry
}

func (r *recordingSpawner) SpawnEntities(depth int, entries []spawner.Entry) error {
	r.depth = depth
	r.entries = entries
	return nil
}

func TestChainWithoutStarter(t *testing.T) {
	chain := NewChain(1, 10, 10)
	err := chain.Build(dice.New(1))

	var be *BuildError
	if !errors.As(err, &be) {
		t.Fatalf("Build() err = %v, want *BuildError", err)
	}
	if !errors.Is(err, ErrNoStarter) {
		t.Errorf("Build() err = %v, want ErrNoStarter", err)
	}
}

func TestChainStartWithTwice(t *testing.T) {
	chain := NewChain(1, 10, 10)
	if err := chain.StartWith(&stubInitial{name: "a"}); err != nil {
		t.Fatalf("first StartWith() failed: %v", err)
	}
	if err := chain.StartWith(&stubInitial{name: "b"}); !errors.Is(err, ErrStarterAlreadySet) {
		t.Errorf("second StartWith() err = %v, want ErrStarterAlreadySet", err)
	}
	if got := chain.Stages(); len(got) != 1 || got[0] != "a" {
		t.Errorf("Stages() = %v, want [a]", got)
	}
}

func TestChainBuildsOnce(t *testing.T) {
	starter := &stubInitial{name: "start"}
	meta := &stubMeta{name: "meta"}

	chain := NewChain(1, 10, 10)
	if err := chain.StartWith(starter); err != nil {
		t.Fatalf("StartWith() failed: %v", err)
	}
	chain.With(meta)

	if err := chain.Build(dice.New(1)); err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if err := chain.Build(dice.New(1)); !errors.Is(err, ErrAlreadyBuilt) {
		t.Errorf("second Build() err = %v, want ErrAlreadyBuilt", err)
	}
	if starter.runs != 1 || meta.runs != 1 {
		t.Errorf("stages ran %d/%d times, want 1/1", starter.runs, meta.runs)
	}
	if got := chain.Context().Grid.TileAt(1, 1); got != grid.TileFloor {
		t.Errorf("starter output missing: tile = %v", got)
	}
}

func TestChainStopsAtFailingStage(t *testing.T) {
	first := &stubMeta{name: "first"}
	failing := &stubMeta{name: "failing", err: ErrNoRooms}
	after := &stubMeta{name: "after"}

	chain := NewChain(1, 10, 10)
	if err := chain.StartWith(&stubInitial{name: "start"}); err != nil {
		t.Fatalf("StartWith() failed: %v", err)
	}
	chain.With(first).With(failing).With(after)

	err := chain.Build(dice.New(1))
	var be *BuildError
	if !errors.As(err, &be) {
		t.Fatalf("Build() err = %v, want *BuildError", err)
	}
	if be.Stage != "failing" {
		t.Errorf("Stage = %q, want failing", be.Stage)
	}
	if !errors.Is(err, ErrNoRooms) {
		t.Errorf("Build() err = %v, want ErrNoRooms", err)
	}
	if after.runs != 0 {
		t.Error("stage after the failure should not run")
	}

	want := []string{"start", "first", "failing", "after"}
	got := chain.Stages()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Stages()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestChainSpawnEntities(t *testing.T) {
	chain := NewChain(4, 10, 10)
	chain.Context().SpawnList = []spawner.Entry{{Index: 11, Name: spawner.Goblin}}

	rec := &recordingSpawner{}
	if err := chain.SpawnEntities(rec); err != nil {
		t.Fatalf("SpawnEntities() failed: %v", err)
	}
	if rec.depth != 4 {
		t.Errorf("depth = %d, want 4", rec.depth)
	}
	if len(rec.entries) != 1 || rec.entries[0].Index != 11 {
		t.Errorf("entries = %v, want [Goblin@11]", rec.entries)
	}
}

func TestHistoryToggle(t *testing.T) {
	t.Cleanup(func() { SetHistoryEnabled(false) })

	SetHistoryEnabled(false)
	off := NewChain(1, 10, 10)
	_ = off.StartWith(&stubInitial{name: "start"})
	if err := off.Build(dice.New(1)); err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if len(off.Context().History) != 0 {
		t.Errorf("history recorded %d frames while disabled", len(off.Context().History))
	}

	SetHistoryEnabled(true)
	on := NewChain(1, 10, 10)
	_ = on.StartWith(&stubInitial{name: "start"})
	if err := on.Build(dice.New(1)); err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	history := on.Context().History
	if len(history) != 1 {
		t.Fatalf("history has %d frames, want 1", len(history))
	}
	for i, r := range history[0].Revealed {
		if !r {
			t.Fatalf("snapshot cell %d not revealed", i)
		}
	}
	// snapshots are copies
	on.Context().Grid.SetTile(2, 2, grid.TileFloor)
	if history[0].TileAt(2, 2) != grid.TileWall {
		t.Error("snapshot should not track later changes")
	}
}

func TestBuildErrorMessage(t *testing.T) {
	err := &BuildError{Stage: "distant_exit", Err: ErrNoExit}
	want := "stage distant_exit: " + ErrNoExit.Error()
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
