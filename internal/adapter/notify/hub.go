// Package notify pushes persisted notices to connected clients over
// websockets. Each connection is scoped to one owner; notices only fan out
// to that owner's sockets.
package notify

import (
	"context"
	"encoding/json"
	"log"

	"critterkeep/internal/domain/pet"

	"github.com/hertz-contrib/websocket"
)

type envelope struct {
	Type    string       `json:"type"`
	Notices []pet.Notice `json:"notices"`
}

type client struct {
	ownerID string
	conn    *websocket.Conn
	send    chan []byte
}

type delivery struct {
	ownerID string
	payload []byte
}

// Hub tracks connected clients and routes notice batches to the sockets of
// the owner they belong to. Run must be started as a goroutine before any
// Publish or Subscribe call.
type Hub struct {
	Logger *log.Logger

	clients    map[*client]bool
	deliveries chan delivery
	register   chan *client
	unregister chan *client
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		deliveries: make(chan delivery, 64),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			return
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		case d := <-h.deliveries:
			for c := range h.clients {
				if c.ownerID != d.ownerID {
					continue
				}
				select {
				case c.send <- d.payload:
				default:
					// Slow consumer, drop the connection.
					close(c.send)
					delete(h.clients, c)
				}
			}
		}
	}
}

// Publish queues a notice batch for the owner's connections. Drops the
// batch when the hub backlog is full rather than blocking the caller.
func (h *Hub) Publish(ownerID string, notices []pet.Notice) {
	if len(notices) == 0 {
		return
	}
	payload, err := json.Marshal(envelope{Type: "notices", Notices: notices})
	if err != nil {
		return
	}
	select {
	case h.deliveries <- delivery{ownerID: ownerID, payload: payload}:
	default:
		h.logf("notify: backlog full, dropping %d notices for %s", len(notices), ownerID)
	}
}

// Serve pumps queued payloads to one websocket connection until it closes
// or the hub shuts down. Intended to be called from inside an upgraded
// handler.
func (h *Hub) Serve(ownerID string, conn *websocket.Conn) {
	c := &client{ownerID: ownerID, conn: conn, send: make(chan []byte, 16)}
	if !h.add(c) {
		_ = conn.Close()
		return
	}

	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case payload, ok := <-c.send:
			if !ok {
				_ = conn.Close()
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				h.remove(c)
				_ = conn.Close()
				return
			}
		case <-readerDone:
			h.remove(c)
			_ = conn.Close()
			return
		case <-h.done:
			_ = conn.Close()
			return
		}
	}
}

// add registers the client with the run loop; false means the hub has
// already shut down.
func (h *Hub) add(c *client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// remove hands the client back to the run loop. Must not block once the run
// loop has exited, or each open connection would leak its Serve goroutine at
// shutdown.
func (h *Hub) remove(c *client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) logf(format string, args ...any) {
	logger := h.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf(format, args...)
}
