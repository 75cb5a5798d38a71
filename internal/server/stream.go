package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/katalvlaran/pathviz/gridgraph"
	"github.com/katalvlaran/pathviz/internal/runner"
	"github.com/katalvlaran/pathviz/search"
)

// Client actions.
const (
	actionStart  = "start"
	actionCancel = "cancel"
)

// clientMessage is what a browser sends over the socket.
type clientMessage struct {
	Action string `json:"action"`
	boardSpec
	// LayoutID loads a saved board instead of boardSpec.
	LayoutID  string `json:"layout_id,omitempty"`
	Algorithm string `json:"algorithm"`
	// Speed names a preset; empty selects the default.
	Speed string `json:"speed"`
}

// sessionMessage is the first message of every connection.
type sessionMessage struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
}

type errorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

var errRunInProgress = errors.New("server: a search is already running on this session")

// session serializes writes to one connection; gorilla allows a single
// concurrent writer.
type session struct {
	id     string
	conn   *websocket.Conn
	mu     sync.Mutex
	logger *slog.Logger
	// stop cancels every run started on the session.
	stop context.CancelFunc
}

// goAway cancels the session's runs, tells the client the server is going
// away and closes the connection, which ends the read loop.
func (ss *session) goAway() {
	ss.stop()
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	_ = ss.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	_ = ss.conn.Close()
}

// sessionSet tracks live sessions so that shutdown can close them.
type sessionSet struct {
	mu     sync.Mutex
	live   map[*session]struct{}
	closed bool
	wg     sync.WaitGroup
}

// add registers ss; it reports false once the set is closed.
func (set *sessionSet) add(ss *session) bool {
	set.mu.Lock()
	defer set.mu.Unlock()
	if set.closed {
		return false
	}
	if set.live == nil {
		set.live = make(map[*session]struct{})
	}
	set.live[ss] = struct{}{}
	set.wg.Add(1)

	return true
}

func (set *sessionSet) remove(ss *session) {
	set.mu.Lock()
	delete(set.live, ss)
	set.mu.Unlock()
	set.wg.Done()
}

// closeAll refuses new sessions and sends every live one away. Safe to
// call more than once.
func (set *sessionSet) closeAll() {
	set.mu.Lock()
	defer set.mu.Unlock()
	if set.closed {
		return
	}
	set.closed = true
	for ss := range set.live {
		ss.goAway()
	}
}

// wait blocks until every session has ended or ctx is done.
func (set *sessionSet) wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		set.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (ss *session) send(v any) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	err := ss.conn.WriteJSON(v)
	if err != nil {
		ss.logger.Warn("websocket write failed", "error", err)
	}

	return err
}

func (ss *session) sendError(err error) {
	_ = ss.send(errorMessage{Type: "error", Error: err.Error()})
}

// stream upgrades to a WebSocket and runs paced searches on request. One
// search runs at a time; {"action":"cancel"} aborts it and the client then
// receives a done event with status "cancelled".
func (s *Server) stream(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	defer s.metrics.StreamOpened()()

	sctx, stop := context.WithCancel(c.Request.Context())
	defer stop()
	ss := &session{id: uuid.NewString(), conn: conn, stop: stop}
	ss.logger = s.logger.With("session_id", ss.id)
	if !s.sessions.add(ss) {
		ss.goAway()
		return
	}
	defer s.sessions.remove(ss)
	ss.logger.Info("websocket session started")
	if err = ss.send(sessionMessage{Type: "session", SessionID: ss.id}); err != nil {
		return
	}

	var (
		cancel context.CancelFunc = func() {}
		done   chan struct{}
		wg     sync.WaitGroup
	)
	defer func() {
		cancel()
		wg.Wait()
		ss.logger.Info("websocket session closed")
	}()
	running := func() bool {
		if done == nil {
			return false
		}
		select {
		case <-done:
			return false
		default:
			return true
		}
	}

	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			ss.logger.Debug("websocket read ended", "error", err)
			return
		}

		switch msg.Action {
		case actionCancel:
			cancel()
		case actionStart:
			if running() {
				ss.sendError(errRunInProgress)
				continue
			}
			job, err := s.prepare(sctx, msg)
			if err != nil {
				ss.sendError(err)
				continue
			}
			cancel()
			var ctx context.Context
			ctx, cancel = context.WithCancel(sctx)
			done = make(chan struct{})
			wg.Add(1)
			go func(ctx context.Context, done chan struct{}) {
				defer wg.Done()
				defer close(done)
				_, _ = s.runner.Stream(ctx, job.snap, job.layout.Source, job.layout.Destination,
					job.alg, job.interval, func(ev runner.Event) error { return ss.send(ev) })
			}(ctx, done)
		default:
			ss.sendError(fmt.Errorf("%w: unknown action %q", errBadRequest, msg.Action))
		}
	}
}

// prepare resolves a start message into a runnable job.
func (s *Server) prepare(ctx context.Context, msg clientMessage) (streamJob, error) {
	var job streamJob
	alg, err := search.ParseAlgorithm(msg.Algorithm)
	if err != nil {
		return job, err
	}
	job.alg = alg
	if job.interval, err = s.cfg.Speed(msg.Speed); err != nil {
		return job, err
	}

	spec := msg.boardSpec
	if msg.LayoutID != "" {
		rec, err := s.store.Get(ctx, msg.LayoutID)
		if err != nil {
			return job, err
		}
		spec = boardSpec{Layout: &rec.Layout}
	}
	job.layout, job.snap, err = s.snapshotOf(spec)

	return job, err
}

type streamJob struct {
	layout   gridgraph.Layout
	snap     *gridgraph.Snapshot
	alg      search.Algorithm
	interval time.Duration
}
