// Package events fans library and collection change notifications out to
// connected UI clients over websockets. Single-process only: this is a feed
// for the local front end, not device sync.
package events

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	EventLibraryUpdated    = "library_updated"
	EventCollectionUpdated = "collection_updated"
)

// Event is one change notification pushed to subscribers.
type Event struct {
	Type      string      `json:"type"`
	Action    string      `json:"action"` // added, removed, updated, toggled, deleted
	ID        string      `json:"id"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks subscribers and broadcasts events to them. Slow clients are
// dropped rather than allowed to block the writer.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*client]struct{}
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Publish sends the event to every connected client.
func (h *Hub) Publish(eventType, action, id string, data interface{}) {
	evt := Event{
		Type:      eventType,
		Action:    action,
		ID:        id,
		Data:      data,
		Timestamp: time.Now(),
	}
	raw, err := json.Marshal(evt)
	if err != nil {
		h.logger.Error("failed to encode event", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- raw:
		default:
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// Serve upgrades the request and streams events until the client disconnects.
func (h *Hub) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	cl := &client{conn: conn, send: make(chan []byte, 16)}
	h.mu.Lock()
	h.clients[cl] = struct{}{}
	h.mu.Unlock()

	go h.writePump(cl)
	h.readPump(cl)
}

func (h *Hub) writePump(cl *client) {
	for msg := range cl.send {
		if err := cl.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
	cl.conn.Close()
}

// readPump discards inbound frames; the feed is one-way. It exists to detect
// disconnects and unregister the client.
func (h *Hub) readPump(cl *client) {
	defer func() {
		h.mu.Lock()
		if _, ok := h.clients[cl]; ok {
			delete(h.clients, cl)
			close(cl.send)
		}
		h.mu.Unlock()
		cl.conn.Close()
	}()
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}
