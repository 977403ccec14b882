package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerequity/equity"
)

func TestServerHealth(t *testing.T) {
	t.Parallel()
	srv := NewServer("localhost:0")

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	resp := w.Result()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
}

// wireResponse mirrors Response with the result left raw for decoding.
type wireResponse struct {
	ID     string          `json:"id"`
	Op     Op              `json:"op"`
	Result json.RawMessage `json:"result"`
	Error  *ErrorData      `json:"error"`
}

func dialTestServer(t *testing.T, srv *Server) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	_ = conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	return conn
}

func TestWebSocketRoundTrip(t *testing.T) {
	t.Parallel()
	srv := NewServer("localhost:0",
		WithDefaultTrials(300),
		WithSimulator(equity.NewSimulator(equity.WithSeed(9))),
	)
	conn := dialTestServer(t, srv)

	require.NoError(t, conn.WriteJSON(Request{ID: "a", Op: OpClassify, Cards: "As Ad Ah Ks Kd"}))
	require.NoError(t, conn.WriteJSON(Request{ID: "b", Op: OpHandVsHand, Hero: "AsAd", Villain: "KcKh"}))
	require.NoError(t, conn.WriteJSON(Request{ID: "c", Op: OpClassify, Cards: "As"}))

	var first wireResponse
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, "a", first.ID)
	require.Nil(t, first.Error)
	var class ClassResult
	require.NoError(t, json.Unmarshal(first.Result, &class))
	assert.Equal(t, "Full House", class.Class)

	var second wireResponse
	require.NoError(t, conn.ReadJSON(&second))
	assert.Equal(t, "b", second.ID)
	require.Nil(t, second.Error)
	var res equity.Result
	require.NoError(t, json.Unmarshal(second.Result, &res))
	assert.Equal(t, 300, res.Trials)
	assert.Equal(t, 300, res.HeroWin+res.VillainWin+res.Tie)

	var third wireResponse
	require.NoError(t, conn.ReadJSON(&third))
	assert.Equal(t, "c", third.ID)
	require.NotNil(t, third.Error)
	assert.Equal(t, "InvalidHandSize", third.Error.Kind)
}

func TestWebSocketBadRequest(t *testing.T) {
	t.Parallel()
	conn := dialTestServer(t, NewServer("localhost:0"))

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))

	var resp wireResponse
	require.NoError(t, conn.ReadJSON(&resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, KindBadRequest, resp.Error.Kind)
}

func TestConnectionCount(t *testing.T) {
	t.Parallel()
	srv := NewServer("localhost:0")
	conn := dialTestServer(t, srv)

	require.Eventually(t, func() bool { return srv.ConnectionCount() == 1 }, 5*time.Second, 10*time.Millisecond)
	_ = conn.Close()
	require.Eventually(t, func() bool { return srv.ConnectionCount() == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestWebSocketCloseCancelsRunningRequest(t *testing.T) {
	t.Parallel()
	srv := NewServer("localhost:0", WithMaxTrials(0))
	conn := dialTestServer(t, srv)

	// Long enough that it can only end early through cancellation.
	trials := 500_000_000
	require.NoError(t, conn.WriteJSON(Request{Op: OpHandVsField, Hero: "AsKs", Trials: &trials}))
	require.Eventually(t, func() bool { return srv.ConnectionCount() == 1 }, 5*time.Second, 10*time.Millisecond)

	// The read loop keeps reading while the simulation runs, so it sees the
	// close and cancels the work.
	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	require.Eventually(t, func() bool { return srv.ConnectionCount() == 0 }, 5*time.Second, 10*time.Millisecond)
}
