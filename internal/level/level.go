// Package level turns builder chains into validated, reproducible levels and
// moves them in and out of YAML.
package level

import (
	"sort"
	"strings"

	"github.com/lawnchairsociety/towergen/internal/grid"
	"github.com/lawnchairsociety/towergen/internal/spawner"
)

// Level is a finished map for one depth together with everything needed to
// populate and reproduce it.
type Level struct {
	Depth int
	// Seed is the seed of the attempt that succeeded
	Seed    int64
	Attempt int

	Grid   *grid.Grid
	Start  grid.Position
	Exit   grid.Position
	Spawns []spawner.Entry
	Stages []string

	// History holds the carving snapshots when recording was enabled
	History []*grid.Grid
}

// Width returns the map width
func (l *Level) Width() int {
	return l.Grid.Width
}

// Height returns the map height
func (l *Level) Height() int {
	return l.Grid.Height
}

// Fingerprint identifies the map contents
func (l *Level) Fingerprint() string {
	return l.Grid.Fingerprint()
}

// ASCII renders the map with '@' for the start, '+' for doors and '*' for
// every other spawn.
func (l *Level) ASCII() string {
	rows := l.Grid.Rows()
	cells := make([][]byte, len(rows))
	for y, row := range rows {
		cells[y] = []byte(row)
	}

	for _, e := range l.Spawns {
		x, y := l.Grid.XY(e.Index)
		if !l.Grid.InBounds(x, y) {
			continue
		}
		if e.Name == spawner.Door {
			cells[y][x] = '+'
		} else {
			cells[y][x] = '*'
		}
	}
	if l.Grid.InBounds(l.Start.X, l.Start.Y) {
		cells[l.Start.Y][l.Start.X] = '@'
	}

	var sb strings.Builder
	for y, row := range cells {
		if y > 0 {
			sb.WriteByte('\n')
		}
		sb.Write(row)
	}
	return sb.String()
}

// Census counts queued spawns by entity name. It satisfies
// builder.EntitySpawner so a chain can hand its final list straight to it.
type Census map[string]int

func (c Census) SpawnEntities(_ int, entries []spawner.Entry) error {
	for _, e := range entries {
		c[e.Name]++
	}
	return nil
}

// Names returns the counted names in alphabetical order
func (c Census) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
