// Package viewer streams level generation over a websocket so the carving
// can be watched step by step. It only observes: nothing a client sends
// changes the level.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lawnchairsociety/towergen/internal/archive"
	"github.com/lawnchairsociety/towergen/internal/config"
	"github.com/lawnchairsociety/towergen/internal/level"
	"github.com/lawnchairsociety/towergen/internal/logger"
)

const writeWait = 10 * time.Second

var ErrBadRequest = errors.New("viewer: bad request")

// Server serves the /ws endpoint.
type Server struct {
	cfg        *config.Config
	generator  *level.Generator
	limiter    *ConnLimiter
	archive    *archive.Archive
	frameDelay time.Duration
}

// NewServer creates a viewer. Levels are generated with history recording
// on regardless of the configured setting.
func NewServer(cfg *config.Config) *Server {
	genCfg := cfg.Generator
	genCfg.History = true

	return &Server{
		cfg:        cfg,
		generator:  level.NewGenerator(genCfg),
		limiter:    NewConnLimiter(cfg.Viewer.Connections),
		frameDelay: time.Duration(cfg.Viewer.FrameDelayMS) * time.Millisecond,
	}
}

// WithArchive lets clients replay stored levels with ?id=
func (s *Server) WithArchive(a *archive.Archive) *Server {
	s.archive = a
	return s
}

// Handler returns the HTTP routes of the viewer
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocketUpgrade)
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Viewer.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Level viewer listening", "address", s.cfg.Viewer.Address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// request is a parsed /ws query
type request struct {
	depth int
	seed  int64
	id    int64
}

func parseRequest(r *http.Request, defaultDepth int) (request, error) {
	q := r.URL.Query()
	req := request{depth: defaultDepth}

	if v := q.Get("id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id < 1 {
			return req, fmt.Errorf("%w: invalid id %q", ErrBadRequest, v)
		}
		req.id = id
		return req, nil
	}

	if v := q.Get("depth"); v != "" {
		depth, err := strconv.Atoi(v)
		if err != nil || depth < 1 {
			return req, fmt.Errorf("%w: invalid depth %q", ErrBadRequest, v)
		}
		req.depth = depth
	}

	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return req, fmt.Errorf("%w: invalid seed %q", ErrBadRequest, v)
		}
		req.seed = seed
	} else {
		req.seed = time.Now().UnixNano()
	}
	return req, nil
}

func (s *Server) handleWebSocketUpgrade(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r, s.cfg.Generator.Depth)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.id != 0 && s.archive == nil {
		http.Error(w, "no level archive configured", http.StatusNotFound)
		return
	}

	ip := clientIP(r, &s.cfg.Viewer.Connections)
	if !s.limiter.TryAcquire(ip) {
		logger.Warning("Viewer connection rejected - limit exceeded",
			"remote_addr", r.RemoteAddr,
			"client_ip", ip)
		http.Error(w, "Too many connections. Please try again later.", http.StatusTooManyRequests)
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			allowed := s.cfg.Viewer.WebSocket.IsOriginAllowed(origin, r.Host)
			if !allowed {
				logger.Warning("Viewer connection rejected - origin not allowed",
					"origin", origin,
					"host", r.Host,
					"remote_addr", r.RemoteAddr)
			}
			return allowed
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed", "error", err)
		s.limiter.Release(ip)
		return
	}

	go s.handleConnection(conn, ip, req)
}

func (s *Server) handleConnection(conn *websocket.Conn, ip string, req request) {
	defer func() {
		s.limiter.Release(ip)
		conn.Close()
	}()

	if limit := s.cfg.Viewer.WebSocket.MaxMessageSize; limit > 0 {
		conn.SetReadLimit(limit)
	}

	// Reading is what processes close frames, so drain until the client goes away
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	log := logger.With("client_ip", ip, "depth", req.depth, "seed", req.seed, "id", req.id)

	lvl, err := s.resolve(req)
	if err != nil {
		log.Warn("Viewer could not produce level", "error", err)
		s.writeFrame(conn, errorFrame(req.depth, err))
		s.closeNormally(conn)
		return
	}

	if err := s.stream(ctx, conn, lvl); err != nil {
		log.Debug("Viewer stream ended early", "error", err)
		return
	}
	log.Debug("Streamed level", "fingerprint", lvl.Fingerprint())
	s.closeNormally(conn)
}

func (s *Server) resolve(req request) (*level.Level, error) {
	if req.id != 0 {
		return s.archive.LoadLevel(req.id)
	}
	return s.generator.Generate(req.depth, req.seed)
}

// stream sends every frame of lvl, pausing frameDelay between them.
func (s *Server) stream(ctx context.Context, conn *websocket.Conn, lvl *level.Level) error {
	frames := framesFor(lvl)
	for i, f := range frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.writeFrame(conn, f); err != nil {
			return err
		}

		if s.frameDelay > 0 && i < len(frames)-1 {
			select {
			case <-time.After(s.frameDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}

func (s *Server) writeFrame(conn *websocket.Conn, f Frame) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(f)
}

func (s *Server) closeNormally(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done")
	conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}
