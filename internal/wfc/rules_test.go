package wfc

import (
	"testing"

	"github.com/lawnchairsociety/towergen/internal/grid"
)

func mustRows(t *testing.T, rows ...string) *grid.Grid {
	t.Helper()
	g, err := grid.FromRows(1, rows)
	if err != nil {
		t.Fatalf("FromRows() failed: %v", err)
	}
	return g
}

// corridor chunks: horizontal, vertical, solid
func corridorPatterns(t *testing.T) []Pattern {
	t.Helper()
	src := mustRows(t,
		"###"+"#.#"+"###",
		"..."+"#.#"+"###",
		"###"+"#.#"+"###",
	)
	return BuildPatterns(src, 3, false, false)
}

func TestBuildPatterns(t *testing.T) {
	src := mustRows(t,
		"#.##",
		"..##",
		"####",
		"##>#",
	)

	plain := BuildPatterns(src, 2, false, false)
	if len(plain) != 4 {
		t.Fatalf("got %d patterns, want 4", len(plain))
	}
	// stairs are read as floor
	if got := plain[3].At(2, 0, 1); got != grid.TileFloor {
		t.Errorf("stairs cell = %v, want floor", got)
	}

	flipped := BuildPatterns(src, 2, true, false)
	if len(flipped) != 16 {
		t.Errorf("got %d patterns with flips, want 16", len(flipped))
	}

	unique := BuildPatterns(src, 2, true, true)
	seen := make(map[string]bool)
	for _, p := range unique {
		if seen[p.key()] {
			t.Errorf("duplicate pattern after dedupe")
		}
		seen[p.key()] = true
	}
	if len(unique) >= len(flipped) {
		t.Errorf("dedupe kept %d of %d patterns", len(unique), len(flipped))
	}
	// first-seen order survives
	if unique[0].key() != plain[0].key() {
		t.Error("first pattern should be the first source chunk")
	}
}

func TestBuildPatternsInvalidChunk(t *testing.T) {
	src := mustRows(t, "..", "..")
	if got := BuildPatterns(src, 0, true, true); got != nil {
		t.Errorf("chunk size 0 returned %d patterns", len(got))
	}
}

func TestRulesExits(t *testing.T) {
	rules := NewRules(corridorPatterns(t), 3)
	if rules.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", rules.Len())
	}

	h, v, solid := rules.Chunks[0], rules.Chunks[1], rules.Chunks[2]
	if !h.HasExits || !v.HasExits {
		t.Error("corridor chunks should have exits")
	}
	if solid.HasExits {
		t.Error("solid chunk should have no exits")
	}
	if !h.Exits[West][1] || !h.Exits[East][1] {
		t.Error("horizontal corridor should exit west and east at the middle slot")
	}
	if anyTrue(h.Exits[North]) || anyTrue(h.Exits[South]) {
		t.Error("horizontal corridor should not exit north or south")
	}
	if !v.Exits[North][1] || !v.Exits[South][1] {
		t.Error("vertical corridor should exit north and south at the middle slot")
	}
}

func TestRulesCompatibility(t *testing.T) {
	rules := NewRules(corridorPatterns(t), 3)
	const h, v, solid = 0, 1, 2

	tests := []struct {
		name string
		a, b int
		dir  Direction
		want bool
	}{
		{"corridor continues east", h, h, East, true},
		{"corridor cannot meet a wall side", h, v, East, false},
		{"closed sides fit", h, h, North, true},
		{"vertical continues south", v, v, South, true},
		{"vertical cannot open into closed side", v, h, North, false},
		{"solid fits anywhere", h, solid, East, true},
		{"anything fits next to solid", solid, v, West, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rules.CanBorder(tt.a, tt.b, tt.dir); got != tt.want {
				t.Errorf("CanBorder(%d, %d, %v) = %v, want %v", tt.a, tt.b, tt.dir, got, tt.want)
			}
		})
	}
}

func TestEdgesFit(t *testing.T) {
	tests := []struct {
		name string
		a, b []bool
		want bool
	}{
		{"shared slot", []bool{false, true, false}, []bool{false, true, true}, true},
		{"no shared slot", []bool{true, false, false}, []bool{false, false, true}, false},
		{"both closed", []bool{false, false}, []bool{false, false}, true},
		{"one closed", []bool{false, false}, []bool{true, false}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := edgesFit(tt.a, tt.b); got != tt.want {
				t.Errorf("edgesFit() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRulesStamp(t *testing.T) {
	rules := NewRules(corridorPatterns(t), 3)
	g := grid.New(1, 6, 3)
	rules.Stamp(g, 0, 3, 0)

	want := []string{"######", "###...", "######"}
	for y, row := range g.Rows() {
		if row != want[y] {
			t.Errorf("row %d = %q, want %q", y, row, want[y])
		}
	}
}
