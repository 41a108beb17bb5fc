package level

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/towergen/internal/grid"
	"github.com/lawnchairsociety/towergen/internal/spawner"
)

// ErrFingerprintMismatch means a level file was edited after it was written
var ErrFingerprintMismatch = errors.New("level: fingerprint does not match map")

// LevelYAML is the on-disk form of a level
type LevelYAML struct {
	Depth       int             `yaml:"depth"`
	Seed        int64           `yaml:"seed"`
	Attempt     int             `yaml:"attempt"`
	Width       int             `yaml:"width"`
	Height      int             `yaml:"height"`
	Fingerprint string          `yaml:"fingerprint"`
	Start       PositionYAML    `yaml:"start"`
	Exit        PositionYAML    `yaml:"exit"`
	Stages      []string        `yaml:"stages,omitempty"`
	Spawns      []spawner.Entry `yaml:"spawns,omitempty"`
	Rows        []string        `yaml:"rows"`
}

// PositionYAML is a cell coordinate in a level file
type PositionYAML struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// ToYAML converts the level to its file form
func (l *Level) ToYAML() *LevelYAML {
	return &LevelYAML{
		Depth:       l.Depth,
		Seed:        l.Seed,
		Attempt:     l.Attempt,
		Width:       l.Width(),
		Height:      l.Height(),
		Fingerprint: l.Fingerprint(),
		Start:       PositionYAML{X: l.Start.X, Y: l.Start.Y},
		Exit:        PositionYAML{X: l.Exit.X, Y: l.Exit.Y},
		Stages:      l.Stages,
		Spawns:      l.Spawns,
		Rows:        l.Grid.Rows(),
	}
}

// FromYAML rebuilds a level from its file form. The rows must match the
// recorded size and fingerprint.
func FromYAML(doc *LevelYAML) (*Level, error) {
	g, err := grid.FromRows(doc.Depth, doc.Rows)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rows: %w", err)
	}
	if g.Width != doc.Width || g.Height != doc.Height {
		return nil, fmt.Errorf("%w: rows are %dx%d, header says %dx%d",
			grid.ErrInvalidSize, g.Width, g.Height, doc.Width, doc.Height)
	}
	if doc.Fingerprint != "" && g.Fingerprint() != doc.Fingerprint {
		return nil, ErrFingerprintMismatch
	}

	return &Level{
		Depth:   doc.Depth,
		Seed:    doc.Seed,
		Attempt: doc.Attempt,
		Grid:    g,
		Start:   grid.Position{X: doc.Start.X, Y: doc.Start.Y},
		Exit:    grid.Position{X: doc.Exit.X, Y: doc.Exit.Y},
		Spawns:  doc.Spawns,
		Stages:  doc.Stages,
	}, nil
}

// WriteYAML writes the level with a short comment header
func (l *Level) WriteYAML(w io.Writer) error {
	fmt.Fprintf(w, "# Depth %d - %dx%d\n", l.Depth, l.Width(), l.Height())
	fmt.Fprintf(w, "# Generated with seed: %d (attempt %d)\n", l.Seed, l.Attempt)
	fmt.Fprintf(w, "# Spawn count: %d\n\n", len(l.Spawns))

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(l.ToYAML()); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}

// ReadYAML parses a level written by WriteYAML
func ReadYAML(r io.Reader) (*Level, error) {
	var doc LevelYAML
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return FromYAML(&doc)
}

// SaveYAML writes the level to path, creating parent directories
func (l *Level) SaveYAML(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	return l.WriteYAML(f)
}

// LoadYAML reads a level file from path
func LoadYAML(path string) (*Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open level file: %w", err)
	}
	defer f.Close()

	return ReadYAML(f)
}
