package server_test

import (
	"context"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pathviz/internal/config"
	"github.com/katalvlaran/pathviz/internal/logging"
	"github.com/katalvlaran/pathviz/internal/runner"
	"github.com/katalvlaran/pathviz/internal/server"
	"github.com/katalvlaran/pathviz/internal/store"
)

type wsMessage struct {
	Type      string  `json:"type"`
	SessionID string  `json:"session_id"`
	Error     string  `json:"error"`
	Status    string  `json:"status"`
	Cell      *[2]int `json:"cell"`
	Seq       int     `json:"seq"`
}

func dial(t *testing.T) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(newTestServer(t).Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/v1/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	var hello wsMessage
	require.NoError(t, conn.ReadJSON(&hello))
	require.Equal(t, "session", hello.Type)
	require.NotEmpty(t, hello.SessionID)

	return conn
}

// readUntilDone collects messages up to and including the done event.
func readUntilDone(t *testing.T, conn *websocket.Conn) []wsMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(10*time.Second)))
	var out []wsMessage
	for {
		var m wsMessage
		require.NoError(t, conn.ReadJSON(&m))
		out = append(out, m)
		if m.Type == "done" {
			return out
		}
	}
}

func TestStream_Found(t *testing.T) {
	conn := dial(t)
	require.NoError(t, conn.WriteJSON(gin.H{
		"action": "start", "board": "S..\n.#.\n..D", "algorithm": "BFS", "speed": "fast",
	}))

	msgs := readUntilDone(t, conn)
	var explore, path []wsMessage
	for _, m := range msgs {
		switch m.Type {
		case "explore":
			explore = append(explore, m)
		case "path":
			path = append(path, m)
		}
	}
	assert.Len(t, explore, 6)
	require.Len(t, path, 4)
	assert.Equal(t, [2]int{2, 2}, *path[3].Cell)
	assert.Equal(t, "found", msgs[len(msgs)-1].Status)

	// the session accepts another run once the first is done
	require.NoError(t, conn.WriteJSON(gin.H{"action": "start", "board": "S#\n#D", "algorithm": "dfs"}))
	msgs = readUntilDone(t, conn)
	assert.Equal(t, "not_found", msgs[len(msgs)-1].Status)
}

func TestStream_Cancel(t *testing.T) {
	conn := dial(t)
	require.NoError(t, conn.WriteJSON(gin.H{"action": "start", "algorithm": "Dijkstra", "speed": "Slow"}))

	var first wsMessage
	require.NoError(t, conn.ReadJSON(&first))
	require.Equal(t, "explore", first.Type)

	require.NoError(t, conn.WriteJSON(gin.H{"action": "start", "algorithm": "BFS"}))
	require.NoError(t, conn.WriteJSON(gin.H{"action": "cancel"}))

	msgs := readUntilDone(t, conn)
	var sawBusy bool
	for _, m := range msgs {
		if m.Type == "error" && strings.Contains(m.Error, "already running") {
			sawBusy = true
		}
	}
	assert.True(t, sawBusy)
	assert.Equal(t, "cancelled", msgs[len(msgs)-1].Status)
	assert.Less(t, len(msgs), 20, "default board needs hundreds of expansions")
}

func TestStream_BadMessages(t *testing.T) {
	conn := dial(t)
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	for _, msg := range []gin.H{
		{"action": "start", "algorithm": "bogo"},
		{"action": "start", "algorithm": "BFS", "speed": "Warp"},
		{"action": "start", "algorithm": "BFS", "layout_id": "00000000-0000-0000-0000-000000000000"},
		{"action": "dance"},
	} {
		require.NoError(t, conn.WriteJSON(msg))
		var m wsMessage
		require.NoError(t, conn.ReadJSON(&m))
		assert.Equal(t, "error", m.Type, msg)
		assert.NotEmpty(t, m.Error)
	}
}

// TestServe_ShutdownClosesSessions starts a slow stream, shuts the server
// down, and expects the client to get a going-away close frame and Serve to
// return once the session has ended.
func TestServe_ShutdownClosesSessions(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	st, err := store.Open(store.Config{InMemory: true})
	require.NoError(t, err)
	defer st.Close()
	s := server.New(server.Deps{Config: cfg, Runner: runner.New(), Store: st, Gatherer: prometheus.NewRegistry(), Logger: logging.Discard()})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errc := make(chan error, 1)
	go func() { errc <- s.Serve(ctx, ln) }()

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+ln.Addr().String()+"/v1/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var m wsMessage
	require.NoError(t, conn.ReadJSON(&m))
	require.Equal(t, "session", m.Type)

	// the default board at the slow preset runs for seconds
	require.NoError(t, conn.WriteJSON(gin.H{"action": "start", "algorithm": "BFS", "speed": "slow"}))
	require.NoError(t, conn.ReadJSON(&m))
	require.Equal(t, "explore", m.Type)

	cancel()
	for err == nil {
		err = conn.ReadJSON(&m)
	}
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)

	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}
