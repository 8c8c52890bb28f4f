// Package live pushes update notifications to public site pages over
// WebSocket. When an admin publishes a resource, every connected viewer
// gets a small event telling it to refetch.
// File: live/hub.go
package live

import (
	"encoding/json"
	"sync"
	"time"

	"sportsfest-admin/logger"
)

// UpdateEvent is broadcast after a successful publish.
type UpdateEvent struct {
	Event    string `json:"event"`
	Resource string `json:"resource"`
	At       string `json:"at"`
}

// Hub tracks active viewer connections and fans broadcast messages out to
// them.
type Hub struct {
	mu          sync.Mutex
	connections map[*Connection]bool
	broadcast   chan []byte
}

// NewHub creates a hub. Call Run in a goroutine to start distribution.
func NewHub() *Hub {
	return &Hub{
		connections: make(map[*Connection]bool),
		broadcast:   make(chan []byte, 64),
	}
}

// Run distributes broadcast messages to all registered connections. Slow
// consumers with a full send buffer are skipped rather than blocking the
// hub.
func (h *Hub) Run() {
	for msg := range h.broadcast {
		h.mu.Lock()
		for c := range h.connections {
			select {
			case c.send <- msg:
			default:
				logger.Warnf("live: dropping update for slow connection %v", c.remoteAddr())
			}
		}
		h.mu.Unlock()
	}
}

// Broadcast queues a "resource updated" event for every viewer.
func (h *Hub) Broadcast(resource string) {
	msg, err := json.Marshal(UpdateEvent{
		Event:    "updated",
		Resource: resource,
		At:       time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		logger.Errorf("live: marshalling update event: %v", err)
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		logger.Warnf("live: broadcast queue full, dropping %s update", resource)
	}
}

// Count returns the number of connected viewers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.connections)
}

func (h *Hub) register(c *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c] = true
	logger.Infof("live: connection registered (%d active)", len(h.connections))
}

func (h *Hub) unregister(c *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.connections[c] {
		delete(h.connections, c)
		close(c.send)
	}
	logger.Infof("live: connection closed (%d active)", len(h.connections))
}
