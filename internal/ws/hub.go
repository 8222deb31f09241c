package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shlee-dev/veloura-backend/pkg/logger"
)

const writeTimeout = 10 * time.Second

// Event is one message on the admin live feed
type Event struct {
	Type    string                 `json:"type"`
	Payload map[string]interface{} `json:"payload"`
	At      time.Time              `json:"at"`
}

// Hub fans events out to every connected admin dashboard. Slow or broken
// connections are dropped rather than blocking publishers.
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]chan []byte

	upgrader websocket.Upgrader
}

func NewHub(allowedOrigins []string) *Hub {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}

	return &Hub{
		conns: make(map[*websocket.Conn]chan []byte),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origins[origin]
			},
		},
	}
}

// Publish broadcasts an event to all connected clients. Never blocks.
func (h *Hub) Publish(event string, payload map[string]interface{}) {
	data, err := json.Marshal(Event{
		Type:    event,
		Payload: payload,
		At:      time.Now(),
	})
	if err != nil {
		logger.Error("Failed to encode event", err, map[string]interface{}{
			"event": event,
		})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, send := range h.conns {
		select {
		case send <- data:
		default:
			// Client is not keeping up, cut it loose
			h.dropLocked(conn)
		}
	}

	logger.Debug("Event published", map[string]interface{}{
		"event":   event,
		"clients": len(h.conns),
	})
}

// Serve upgrades the request and streams events until the client goes away
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("WebSocket upgrade failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	send := make(chan []byte, 16)
	h.mu.Lock()
	h.conns[conn] = send
	clients := len(h.conns)
	h.mu.Unlock()

	logger.Info("Event feed client connected", map[string]interface{}{
		"clients": clients,
	})

	go h.writeLoop(conn, send)
	h.readLoop(conn)
}

func (h *Hub) writeLoop(conn *websocket.Conn, send chan []byte) {
	for data := range send {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.drop(conn)
			return
		}
	}
}

// readLoop discards inbound frames, the feed is one-way. Returning on read
// error is how disconnects are detected.
func (h *Hub) readLoop(conn *websocket.Conn) {
	defer h.drop(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(conn)
}

func (h *Hub) dropLocked(conn *websocket.Conn) {
	if send, ok := h.conns[conn]; ok {
		delete(h.conns, conn)
		close(send)
		conn.Close()
	}
}

// Close disconnects every client
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		h.dropLocked(conn)
	}
}
