package grid

import (
	"errors"
	"testing"
)

func TestNewGridIsAllWall(t *testing.T) {
	g := New(3, 10, 6)

	if g.Width != 10 || g.Height != 6 {
		t.Fatalf("size = %dx%d, want 10x6", g.Width, g.Height)
	}
	if len(g.Tiles) != 60 {
		t.Errorf("len(Tiles) = %d, want 60", len(g.Tiles))
	}
	if g.Depth() != 3 {
		t.Errorf("Depth() = %d, want 3", g.Depth())
	}
	if got := g.CountTiles(TileWall); got != 60 {
		t.Errorf("wall count = %d, want 60", got)
	}
}

func TestIndexRoundTrip(t *testing.T) {
	g := New(1, 7, 5)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			idx := g.Index(x, y)
			gx, gy := g.XY(idx)
			if gx != x || gy != y {
				t.Errorf("XY(Index(%d,%d)) = (%d,%d)", x, y, gx, gy)
			}
		}
	}
	if g.Index(3, 2) != 17 {
		t.Errorf("Index(3,2) = %d, want 17", g.Index(3, 2))
	}
}

func TestInBoundsAndTileAt(t *testing.T) {
	g := New(1, 4, 4)
	g.SetTile(1, 1, TileFloor)
	g.SetTile(-1, 0, TileFloor) // ignored
	g.SetTile(4, 0, TileFloor)  // ignored

	if g.TileAt(1, 1) != TileFloor {
		t.Error("TileAt(1,1) should be floor")
	}
	if g.TileAt(9, 9) != TileWall {
		t.Error("out of bounds TileAt should read as wall")
	}
	if g.CountTiles(TileFloor) != 1 {
		t.Errorf("floor count = %d, want 1", g.CountTiles(TileFloor))
	}
}

func TestPopulateBlocked(t *testing.T) {
	g := New(1, 3, 1)
	g.Tiles[0] = TileFloor
	g.Tiles[1] = TileDownStairs
	g.PopulateBlocked()

	if g.IsBlocked(0) {
		t.Error("floor should not be blocked")
	}
	if !g.IsBlocked(1) {
		t.Error("stairs should be blocked (non-floor)")
	}
	if !g.IsBlocked(2) {
		t.Error("wall should be blocked")
	}
	if !g.IsBlocked(99) {
		t.Error("invalid index should be blocked")
	}
}

func TestSnapshotRevealsAndCopies(t *testing.T) {
	g := New(2, 5, 5)
	s := g.Snapshot()

	for i, r := range s.Revealed {
		if !r {
			t.Fatalf("snapshot cell %d not revealed", i)
		}
	}
	if g.Revealed[0] {
		t.Error("snapshot mutated the source grid")
	}

	s.Tiles[0] = TileFloor
	if g.Tiles[0] != TileWall {
		t.Error("snapshot shares tile storage with the source grid")
	}
	if s.Depth() != 2 {
		t.Errorf("snapshot depth = %d, want 2", s.Depth())
	}
}

func TestRowsRoundTrip(t *testing.T) {
	g := New(4, 4, 3)
	g.SetTile(1, 1, TileFloor)
	g.SetTile(2, 1, TileDownStairs)

	rows := g.Rows()
	want := []string{"####", "#.>#", "####"}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d = %q, want %q", i, rows[i], want[i])
		}
	}

	back, err := FromRows(4, rows)
	if err != nil {
		t.Fatalf("FromRows failed: %v", err)
	}
	if back.Fingerprint() != g.Fingerprint() {
		t.Error("round-tripped grid has a different fingerprint")
	}
}

func TestFromRowsErrors(t *testing.T) {
	if _, err := FromRows(1, nil); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("FromRows(nil) error = %v, want ErrInvalidSize", err)
	}
	if _, err := FromRows(1, []string{"###", "##"}); !errors.Is(err, ErrRowWidth) {
		t.Errorf("FromRows(ragged) error = %v, want ErrRowWidth", err)
	}
}

func TestFingerprintDependsOnDepthAndTiles(t *testing.T) {
	a := New(1, 6, 6)
	b := New(1, 6, 6)
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatal("identical grids should share a fingerprint")
	}

	b.SetTile(2, 2, TileFloor)
	if a.Fingerprint() == b.Fingerprint() {
		t.Error("different tiles should change the fingerprint")
	}

	c := New(2, 6, 6)
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("different depth should change the fingerprint")
	}
}

func TestRect(t *testing.T) {
	r := NewRect(2, 3, 6, 4)
	if r.X2 != 8 || r.Y2 != 7 {
		t.Errorf("NewRect corners = (%d,%d), want (8,7)", r.X2, r.Y2)
	}
	if c := r.Center(); c != (Position{X: 5, Y: 5}) {
		t.Errorf("Center() = %v, want 5,5", c)
	}
	if !r.Intersect(NewRect(8, 7, 2, 2)) {
		t.Error("touching rects should intersect")
	}
	if r.Intersect(NewRect(20, 20, 2, 2)) {
		t.Error("distant rects should not intersect")
	}
	if r.Width() != 6 || r.Height() != 4 {
		t.Errorf("size = %dx%d, want 6x4", r.Width(), r.Height())
	}
}

func TestLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		wantLen        int
	}{
		{"horizontal", 0, 0, 5, 0, 6},
		{"vertical", 2, 7, 2, 3, 5},
		{"diagonal", 0, 0, 4, 4, 5},
		{"single", 3, 3, 3, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pts := Line(tt.x0, tt.y0, tt.x1, tt.y1)
			if len(pts) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(pts), tt.wantLen)
			}
			if pts[0] != (Position{tt.x0, tt.y0}) {
				t.Errorf("first point = %v, want start", pts[0])
			}
			if pts[len(pts)-1] != (Position{tt.x1, tt.y1}) {
				t.Errorf("last point = %v, want end", pts[len(pts)-1])
			}
			for i := 1; i < len(pts); i++ {
				if Chebyshev(pts[i-1], pts[i]) != 1 {
					t.Errorf("points %v and %v are not adjacent", pts[i-1], pts[i])
				}
			}
		})
	}
}

func TestDistances(t *testing.T) {
	a := Position{X: 1, Y: 1}
	b := Position{X: 4, Y: 5}

	if got := Manhattan(a, b); got != 7 {
		t.Errorf("Manhattan = %d, want 7", got)
	}
	if got := Chebyshev(a, b); got != 4 {
		t.Errorf("Chebyshev = %d, want 4", got)
	}
	if got := PythagorasSquared(a, b); got != 25 {
		t.Errorf("PythagorasSquared = %d, want 25", got)
	}
	if got := Pythagoras(a, b); got != 5 {
		t.Errorf("Pythagoras = %v, want 5", got)
	}
}

func TestDijkstraFrom(t *testing.T) {
	// Two floor regions separated by a wall column
	g := New(1, 9, 5)
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			g.SetTile(x, y, TileFloor)
		}
		for x := 5; x <= 7; x++ {
			g.SetTile(x, y, TileFloor)
		}
	}

	dm := g.DijkstraFrom(Position{X: 1, Y: 1}, DefaultMaxCost)

	if dm.Cost(g.Index(1, 1)) != 0 {
		t.Errorf("start cost = %d, want 0", dm.Cost(g.Index(1, 1)))
	}
	if got := dm.Cost(g.Index(2, 1)); got != CostCardinal {
		t.Errorf("cardinal neighbour cost = %d, want %d", got, CostCardinal)
	}
	if got := dm.Cost(g.Index(2, 2)); got != CostDiagonal {
		t.Errorf("diagonal neighbour cost = %d, want %d", got, CostDiagonal)
	}
	if !dm.Reachable(g.Index(3, 3)) {
		t.Error("far corner of region A should be reachable")
	}
	if dm.Reachable(g.Index(6, 2)) {
		t.Error("region B should be unreachable")
	}
	if dm.Reachable(g.Index(4, 2)) {
		t.Error("wall cell should be unreachable")
	}
	if dm.Reachable(-1) {
		t.Error("invalid index should be unreachable")
	}
}
