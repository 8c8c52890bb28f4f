// File: live/connection.go
package live

import (
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"sportsfest-admin/logger"
)

// WSConn is the subset of *websocket.Conn the connection uses, split out so
// tests can substitute a fake.
type WSConn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	ReadMessage() (int, []byte, error)
	Close() error
	RemoteAddr() net.Addr
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetPongHandler(h func(string) error)
}

// Connection is one viewer's WebSocket connection.
type Connection struct {
	conn WSConn
	send chan []byte
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Viewers connect from the public site; origin enforcement is the
		// reverse proxy's job.
		return true
	},
}

// ServeWs upgrades the request and starts the read and write pumps.
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Errorf("live: WebSocket upgrade error: %v", err)
		return
	}

	c := &Connection{
		conn: wsConn,
		send: make(chan []byte, 32),
	}
	h.register(c)

	go c.writePump()
	go c.readPump(h)
}

func (c *Connection) remoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// readPump drains (and ignores) inbound frames so control messages are
// processed, unregistering on error.
func (c *Connection) readPump(h *Hub) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump forwards queued messages and keeps the connection alive with
// pings.
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
