package viewer

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/lawnchairsociety/towergen/internal/archive"
	"github.com/lawnchairsociety/towergen/internal/builder"
	"github.com/lawnchairsociety/towergen/internal/config"
	"github.com/lawnchairsociety/towergen/internal/grid"
	"github.com/lawnchairsociety/towergen/internal/level"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Generator.Width = 80
	cfg.Generator.Height = 50
	cfg.Generator.MaxAttempts = 30
	cfg.Viewer.FrameDelayMS = 0
	return cfg
}

func startServer(t *testing.T, s *Server) string {
	t.Helper()
	t.Cleanup(func() { builder.SetHistoryEnabled(false) })

	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

// readFrames collects frames until the server closes the stream
func readFrames(t *testing.T, conn *websocket.Conn) []Frame {
	t.Helper()
	var frames []Frame
	for {
		var f Frame
		if err := conn.ReadJSON(&f); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				t.Fatalf("stream ended with %v", err)
			}
			return frames
		}
		frames = append(frames, f)
	}
}

func TestParseRequest(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    request
		wantErr bool
	}{
		{"depth and seed", "depth=4&seed=99", request{depth: 4, seed: 99}, false},
		{"default depth", "seed=-3", request{depth: 2, seed: -3}, false},
		{"archived id", "id=12&depth=9", request{depth: 2, id: 12}, false},
		{"bad depth", "depth=abc&seed=1", request{}, true},
		{"zero depth", "depth=0&seed=1", request{}, true},
		{"bad seed", "seed=x", request{}, true},
		{"bad id", "id=-1", request{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/ws?"+tt.query, nil)
			got, err := parseRequest(r, 2)
			if tt.wantErr {
				if !errors.Is(err, ErrBadRequest) {
					t.Errorf("parseRequest() error = %v, want ErrBadRequest", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseRequest() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("parseRequest() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseRequestRandomSeed(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/ws?depth=1", nil)
	got, err := parseRequest(r, 1)
	if err != nil {
		t.Fatalf("parseRequest() error = %v", err)
	}
	if got.seed == 0 {
		t.Error("missing seed should be filled from the clock")
	}
}

func TestStreamGeneratedLevel(t *testing.T) {
	cfg := testConfig()
	url := startServer(t, NewServer(cfg))

	conn, _, err := websocket.DefaultDialer.Dial(url+"/ws?depth=1&seed=5", nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	frames := readFrames(t, conn)
	if len(frames) < 2 {
		t.Fatalf("got %d frames, want history plus final", len(frames))
	}
	for i, f := range frames[:len(frames)-1] {
		if f.Type != FrameStep || f.Index != i || f.Total != len(frames) {
			t.Errorf("frame %d = %s %d/%d", i, f.Type, f.Index, f.Total)
		}
		if len(f.Rows) != 50 || len(f.Rows[0]) != 80 {
			t.Errorf("frame %d has %d rows", i, len(f.Rows))
		}
	}

	final := frames[len(frames)-1]
	if final.Type != FrameFinal {
		t.Fatalf("last frame type = %q", final.Type)
	}
	if final.Start == nil || final.Exit == nil {
		t.Fatal("final frame missing start or exit")
	}

	genCfg := cfg.Generator
	genCfg.History = true
	want, err := level.NewGenerator(genCfg).Generate(1, 5)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if final.Fingerprint != want.Fingerprint() {
		t.Error("streamed level differs from a direct generation with the same seed")
	}
	if *final.Exit != want.Exit || *final.Start != want.Start {
		t.Errorf("final start/exit = %v/%v, want %v/%v", *final.Start, *final.Exit, want.Start, want.Exit)
	}
}

func TestStreamArchivedLevel(t *testing.T) {
	a, err := archive.OpenSQLite(filepath.Join(t.TempDir(), "levels.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer a.Close()

	g, err := grid.FromRows(3, []string{
		"######",
		"#...>#",
		"######",
	})
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	stored := &level.Level{
		Depth: 3,
		Seed:  8,
		Grid:  g,
		Start: grid.Position{X: 1, Y: 1},
		Exit:  grid.Position{X: 4, Y: 1},
	}
	id, err := a.SaveLevel(stored)
	if err != nil {
		t.Fatalf("SaveLevel: %v", err)
	}

	url := startServer(t, NewServer(testConfig()).WithArchive(a))
	conn, _, err := websocket.DefaultDialer.Dial(url+"/ws?id="+strconv.FormatInt(id, 10), nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	frames := readFrames(t, conn)
	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(frames))
	}
	if frames[0].Type != FrameFinal || frames[0].Fingerprint != stored.Fingerprint() {
		t.Errorf("frame = %+v", frames[0])
	}
}

func TestStreamMissingArchivedLevel(t *testing.T) {
	a, err := archive.OpenSQLite(filepath.Join(t.TempDir(), "levels.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer a.Close()

	url := startServer(t, NewServer(testConfig()).WithArchive(a))
	conn, _, err := websocket.DefaultDialer.Dial(url+"/ws?id=404", nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	frames := readFrames(t, conn)
	if len(frames) != 1 || frames[0].Type != FrameError || frames[0].Error == "" {
		t.Errorf("frames = %+v, want a single error frame", frames)
	}
}

func TestRejectedRequests(t *testing.T) {
	s := NewServer(testConfig())
	url := startServer(t, s)

	tests := []struct {
		name   string
		path   string
		header http.Header
		setup  func()
		status int
	}{
		{
			name:   "bad depth",
			path:   "/ws?depth=zero",
			status: http.StatusBadRequest,
		},
		{
			name:   "archive not configured",
			path:   "/ws?id=1",
			status: http.StatusNotFound,
		},
		{
			name:   "foreign origin",
			path:   "/ws?seed=1",
			header: http.Header{"Origin": []string{"http://evil.example"}},
			status: http.StatusForbidden,
		},
		{
			name: "connection limit",
			path: "/ws?seed=1",
			setup: func() {
				for s.limiter.TryAcquire("127.0.0.1") {
				}
			},
			status: http.StatusTooManyRequests,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup()
			}
			_, resp, err := websocket.DefaultDialer.Dial(url+tt.path, tt.header)
			if err == nil {
				t.Fatal("Dial succeeded, want rejection")
			}
			if resp == nil || resp.StatusCode != tt.status {
				t.Errorf("response = %v, want status %d", resp, tt.status)
			}
		})
	}
}

func TestOriginReleasesSlot(t *testing.T) {
	cfg := testConfig()
	s := NewServer(cfg)
	url := startServer(t, s)

	header := http.Header{"Origin": []string{"http://evil.example"}}
	if _, _, err := websocket.DefaultDialer.Dial(url+"/ws?seed=1", header); err == nil {
		t.Fatal("Dial succeeded, want rejection")
	}
	if total, _ := s.limiter.Stats(); total != 0 {
		t.Errorf("rejected upgrade left %d slots taken", total)
	}
}

func TestFramesFor(t *testing.T) {
	g, _ := grid.FromRows(1, []string{"#####", "#.>.#", "#####"})
	l := &level.Level{
		Depth:   1,
		Grid:    g,
		Start:   grid.Position{X: 1, Y: 1},
		Exit:    grid.Position{X: 2, Y: 1},
		History: []*grid.Grid{grid.New(1, 5, 3), g.Snapshot()},
	}

	frames := framesFor(l)
	if len(frames) != 3 {
		t.Fatalf("framesFor() = %d frames, want 3", len(frames))
	}
	if frames[0].Rows[1] != "#####" {
		t.Errorf("first frame row = %q, want solid wall", frames[0].Rows[1])
	}
	if frames[0].Fingerprint != "" || frames[0].Start != nil {
		t.Error("step frames must not carry level details")
	}
	if frames[2].Type != FrameFinal || frames[2].Fingerprint != l.Fingerprint() {
		t.Errorf("final frame = %+v", frames[2])
	}
}
