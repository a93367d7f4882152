package badge

import (
	"bufio"
	"encoding/json"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readLine(t *testing.T, conn net.Conn) string {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	line, err := bufio.NewReader(conn).ReadString('\n')
	require.NoError(t, err)
	return line
}

func TestWelcomeIsValidJSON(t *testing.T) {
	hub := NewHub()
	server, client := net.Pipe()
	t.Cleanup(func() { _ = server.Close(); _ = client.Close() })

	go hub.Welcome(server)

	var msg struct {
		Type    string `json:"type"`
		Message string `json:"message"`
		Clients int    `json:"clients"`
	}
	require.NoError(t, json.Unmarshal([]byte(readLine(t, client)), &msg))
	assert.Equal(t, "welcome", msg.Type)
	assert.Equal(t, "connected", msg.Message)
}

func TestBroadcastReachesTCPClients(t *testing.T) {
	hub := NewHub()
	server, client := net.Pipe()
	t.Cleanup(func() { _ = server.Close(); _ = client.Close() })

	hub.Add(server)
	assert.Equal(t, 1, hub.Stats().TCPClients)

	go hub.Broadcast("u1", StoreEvent{Type: "cart.update", UserID: "u1", CartCount: 2})

	var ev StoreEvent
	require.NoError(t, json.Unmarshal([]byte(readLine(t, client)), &ev))
	assert.Equal(t, "cart.update", ev.Type)
	assert.Equal(t, 2, ev.CartCount)

	hub.Remove(server)
	assert.Equal(t, 0, hub.Stats().TCPClients)
}

func TestBroadcastScopesWebSocketClientsByUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()

	r := gin.New()
	r.GET("/ws", WSHandler(hub, func(c *gin.Context) string {
		return c.Query("user")
	}))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?user="
	dial := func(user string) *websocket.Conn {
		conn, _, err := websocket.DefaultDialer.Dial(wsURL+user, nil)
		require.NoError(t, err)
		t.Cleanup(func() { _ = conn.Close() })
		_, _, err = conn.ReadMessage() // welcome frame
		require.NoError(t, err)
		return conn
	}

	mine := dial("u1")
	other := dial("u2")
	require.Equal(t, 2, hub.Stats().WSClients)

	hub.Broadcast("u1", StoreEvent{Type: "wishlist.update", UserID: "u1", WishlistCount: 1})

	require.NoError(t, mine.SetReadDeadline(time.Now().Add(time.Second)))
	_, msg, err := mine.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(msg), "wishlist.update")

	require.NoError(t, other.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err = other.ReadMessage()
	assert.Error(t, err, "another user's socket must not see the event")
}
