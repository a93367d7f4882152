package badge

import (
	"bufio"
	"encoding/json"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Hub fans badge events out to connected listeners: browser navbars
// over WebSocket, the CLI over line-delimited TCP. WebSocket clients
// are tagged with the session's user id and only receive that user's
// events; the TCP feed is an operational tap that carries everything.
type Hub struct {
	mu        sync.Mutex
	clients   map[net.Conn]struct{}
	wsClients map[*websocket.Conn]string // conn -> user id
}

type Stats struct {
	TCPClients int `json:"tcp_clients"`
	WSClients  int `json:"ws_clients"`
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[net.Conn]struct{}),
		wsClients: make(map[*websocket.Conn]string),
	}
}

func (h *Hub) Add(conn net.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Remove(conn net.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	_ = conn.Close()
}

// AddWS registers a WebSocket client scoped to userID. An empty id
// marks a trusted listener that receives every user's events.
func (h *Hub) AddWS(ws *websocket.Conn, userID string) {
	h.mu.Lock()
	h.wsClients[ws] = userID
	h.mu.Unlock()
}

func (h *Hub) RemoveWS(ws *websocket.Conn) {
	h.mu.Lock()
	delete(h.wsClients, ws)
	h.mu.Unlock()
	_ = ws.Close()
}

// Broadcast writes v to every TCP listener and to the WebSocket
// clients belonging to userID (empty userID reaches every socket).
// Failed connections are dropped; a slow or dead listener never blocks
// the store mutation that triggered the event for more than the write
// deadline.
func (h *Hub) Broadcast(userID string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	b = append(b, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		_ = c.SetWriteDeadline(time.Now().Add(2 * time.Second))
		w := bufio.NewWriter(c)
		if _, err := w.Write(b); err != nil {
			_ = c.Close()
			delete(h.clients, c)
			continue
		}
		if err := w.Flush(); err != nil {
			_ = c.Close()
			delete(h.clients, c)
			continue
		}
	}

	for ws, id := range h.wsClients {
		if userID != "" && id != "" && id != userID {
			continue
		}
		if err := ws.WriteMessage(websocket.TextMessage, b); err != nil {
			_ = ws.Close()
			delete(h.wsClients, ws)
		}
	}
}

func (h *Hub) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Stats{
		TCPClients: len(h.clients),
		WSClients:  len(h.wsClients),
	}
}

func (h *Hub) Welcome(conn net.Conn) {
	h.mu.Lock()
	n := len(h.clients)
	h.mu.Unlock()
	b, err := json.Marshal(welcome{Type: "welcome", Message: "connected", Clients: n})
	if err != nil {
		return
	}
	_, _ = conn.Write(append(b, '\n'))
}

type welcome struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Clients int    `json:"clients"`
}
