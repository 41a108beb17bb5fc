package viewer

import (
	"github.com/lawnchairsociety/towergen/internal/grid"
	"github.com/lawnchairsociety/towergen/internal/level"
	"github.com/lawnchairsociety/towergen/internal/spawner"
)

// Frame types sent over the socket
const (
	FrameStep  = "step"
	FrameFinal = "final"
	FrameError = "error"
)

// Frame is one JSON message of a stream. Step frames carry only the map;
// the final frame adds everything a client needs to draw the finished level.
type Frame struct {
	Type  string `json:"type"`
	Index int    `json:"index"`
	Total int    `json:"total"`

	Depth  int      `json:"depth"`
	Width  int      `json:"width,omitempty"`
	Height int      `json:"height,omitempty"`
	Rows   []string `json:"rows,omitempty"`

	Seed        int64           `json:"seed,omitempty"`
	Attempt     int             `json:"attempt,omitempty"`
	Fingerprint string          `json:"fingerprint,omitempty"`
	Start       *grid.Position  `json:"start,omitempty"`
	Exit        *grid.Position  `json:"exit,omitempty"`
	Spawns      []spawner.Entry `json:"spawns,omitempty"`
	Stages      []string        `json:"stages,omitempty"`

	Error string `json:"error,omitempty"`
}

// framesFor turns a level into the messages of one stream.
func framesFor(l *level.Level) []Frame {
	snapshots := l.Frames()
	frames := make([]Frame, len(snapshots))
	for i, g := range snapshots {
		frames[i] = Frame{
			Type:   FrameStep,
			Index:  i,
			Total:  len(snapshots),
			Depth:  l.Depth,
			Width:  g.Width,
			Height: g.Height,
			Rows:   g.Rows(),
		}
	}

	final := &frames[len(frames)-1]
	start, exit := l.Start, l.Exit
	final.Type = FrameFinal
	final.Seed = l.Seed
	final.Attempt = l.Attempt
	final.Fingerprint = l.Fingerprint()
	final.Start = &start
	final.Exit = &exit
	final.Spawns = l.Spawns
	final.Stages = l.Stages
	return frames
}

func errorFrame(depth int, err error) Frame {
	return Frame{Type: FrameError, Depth: depth, Error: err.Error()}
}
