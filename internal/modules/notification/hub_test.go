package notification

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialHub(t *testing.T, hub *Hub, userID int64) *websocket.Conn {
	t.Helper()
	upgrader := newUpgrader(nil)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Serve(conn, userID)
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.Eventually(t, func() bool { return hub.IsOnline(userID) }, time.Second, 10*time.Millisecond)
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestHub_SendToUser(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	assert.False(t, hub.SendToUser(7, &Event{Type: EventNotification}), "offline user")

	conn := dialHub(t, hub, 7)
	require.True(t, hub.SendToUser(7, &Event{Type: EventNotification, Payload: map[string]int{"negotiation_id": 3}}))

	ev := readEvent(t, conn)
	assert.Equal(t, EventNotification, ev["type"])
	assert.Equal(t, float64(3), ev["payload"].(map[string]interface{})["negotiation_id"])
}

func TestHub_PingPong(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	conn := dialHub(t, hub, 9)
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "ping"}))

	ev := readEvent(t, conn)
	assert.Equal(t, EventPong, ev["type"])
}

func TestHub_UnregistersOnDisconnect(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	conn := dialHub(t, hub, 11)
	assert.Equal(t, 1, hub.OnlineCount())

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return !hub.IsOnline(11) }, 2*time.Second, 10*time.Millisecond)
}

func TestUpgrader_CheckOrigin(t *testing.T) {
	up := newUpgrader([]string{"http://localhost:3000"})

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	assert.True(t, up.CheckOrigin(req), "no origin header")

	req.Header.Set("Origin", "http://localhost:3000")
	assert.True(t, up.CheckOrigin(req))

	req.Header.Set("Origin", "http://evil.example")
	assert.False(t, up.CheckOrigin(req))

	assert.True(t, newUpgrader([]string{"*"}).CheckOrigin(req))
}
