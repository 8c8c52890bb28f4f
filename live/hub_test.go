// File: live/hub_test.go
package live

import (
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAddr struct{}

func (fakeAddr) Network() string { return "tcp" }
func (fakeAddr) String() string  { return "198.51.100.7:1234" }

type fakeConn struct{}

func (fakeConn) WriteMessage(int, []byte) error    { return nil }
func (fakeConn) SetWriteDeadline(time.Time) error  { return nil }
func (fakeConn) ReadMessage() (int, []byte, error) { return 0, nil, nil }
func (fakeConn) Close() error                      { return nil }
func (fakeConn) RemoteAddr() net.Addr              { return fakeAddr{} }
func (fakeConn) SetReadLimit(int64)                {}
func (fakeConn) SetReadDeadline(time.Time) error   { return nil }
func (fakeConn) SetPongHandler(func(string) error) {}

func newTestConnection() *Connection {
	return &Connection{conn: fakeConn{}, send: make(chan []byte, 4)}
}

func TestHub_RegisterUnregisterCount(t *testing.T) {
	h := NewHub()
	a := newTestConnection()
	b := newTestConnection()

	h.register(a)
	h.register(b)
	assert.Equal(t, 2, h.Count())

	h.unregister(a)
	assert.Equal(t, 1, h.Count())

	// Unregistering twice is harmless.
	h.unregister(a)
	assert.Equal(t, 1, h.Count())
}

func TestHub_BroadcastReachesEveryConnection(t *testing.T) {
	h := NewHub()
	go h.Run()

	a := newTestConnection()
	b := newTestConnection()
	h.register(a)
	h.register(b)

	h.Broadcast("results")

	for _, c := range []*Connection{a, b} {
		select {
		case msg := <-c.send:
			var ev UpdateEvent
			require.NoError(t, json.Unmarshal(msg, &ev))
			assert.Equal(t, "updated", ev.Event)
			assert.Equal(t, "results", ev.Resource)
			_, err := time.Parse(time.RFC3339, ev.At)
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("connection never received the update")
		}
	}
}

func TestHub_SlowConnectionIsSkipped(t *testing.T) {
	h := NewHub()
	go h.Run()

	slow := &Connection{conn: fakeConn{}, send: make(chan []byte)}
	fast := newTestConnection()
	h.register(slow)
	h.register(fast)

	h.Broadcast("gallery")

	// The fast connection still gets the event even though the slow one's
	// buffer is full.
	select {
	case <-fast.send:
	case <-time.After(time.Second):
		t.Fatal("fast connection starved by slow one")
	}
}
