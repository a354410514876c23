// Package ws fans notifications out to connected WebSocket clients.
package ws

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"go-campus-events/internal/metrics"

	"github.com/gofiber/contrib/websocket"
)

// Conn is the part of a WebSocket connection the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// ErrClosed is returned by Publish once the hub has stopped.
var ErrClosed = errors.New("ws: hub closed")

// Publisher delivers a notification payload to every client.
type Publisher interface {
	Publish(ctx context.Context, payload []byte) error
}

type Hub struct {
	clients    map[Conn]bool
	register   chan Conn
	unregister chan Conn
	broadcast  chan []byte
	done       chan struct{}
	mutex      sync.Mutex
	log        *slog.Logger
	metrics    *metrics.Metrics
}

func NewHub(log *slog.Logger, m *metrics.Metrics) *Hub {
	return &Hub{
		clients:    make(map[Conn]bool),
		register:   make(chan Conn),
		unregister: make(chan Conn),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
		log:        log,
		metrics:    m,
	}
}

// Run owns the client set until ctx is cancelled, then closes every client.
// After Run returns, Register and Unregister close the connection directly.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for conn := range h.clients {
				_ = conn.Close()
				delete(h.clients, conn)
				h.metrics.ClientDisconnected()
			}
			h.mutex.Unlock()
			return

		case conn := <-h.register:
			h.mutex.Lock()
			h.clients[conn] = true
			h.mutex.Unlock()
			h.metrics.ClientConnected()
			h.log.Debug("ws client connected")

		case conn := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				_ = conn.Close()
				h.metrics.ClientDisconnected()
			}
			h.mutex.Unlock()

		case message := <-h.broadcast:
			h.mutex.Lock()
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					h.log.Warn("ws write failed, dropping client", "error", err)
					_ = conn.Close()
					delete(h.clients, conn)
					h.metrics.ClientDisconnected()
				}
			}
			h.mutex.Unlock()
		}
	}
}

func (h *Hub) Register(conn Conn) {
	select {
	case h.register <- conn:
	case <-h.done:
		_ = conn.Close()
	}
}

func (h *Hub) Unregister(conn Conn) {
	select {
	case h.unregister <- conn:
	case <-h.done:
		_ = conn.Close()
	}
}

// Publish queues payload for local delivery.
func (h *Hub) Publish(ctx context.Context, payload []byte) error {
	select {
	case h.broadcast <- payload:
		h.metrics.NotificationSent("local")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-h.done:
		return ErrClosed
	}
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Serve is the fiber websocket handler. It keeps the connection registered
// until the client goes away; inbound frames are ignored.
func (h *Hub) Serve(c *websocket.Conn) {
	h.Register(c)
	defer h.Unregister(c)
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}
