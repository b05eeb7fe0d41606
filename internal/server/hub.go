package server

import (
	"sync"

	"github.com/gorilla/websocket"
)

type wsClient struct {
	conn    *websocket.Conn
	send    chan []byte
	dropped uint64
}

// hub fans frames out to websocket clients. A client whose buffer is full
// misses frames instead of stalling the tick loop.
type hub struct {
	mu      sync.RWMutex
	clients map[*wsClient]struct{}
	dropped uint64
	closed  bool
}

func newHub() *hub { return &hub{clients: make(map[*wsClient]struct{})} }

// add registers c. It reports false once the hub has been closed.
func (h *hub) add(c *wsClient) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

// remove unregisters c and returns how many frames it missed.
func (h *hub) remove(c *wsClient) uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	return c.dropped
}

func (h *hub) broadcast(b []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- b:
		default:
			c.dropped++
			h.dropped++
		}
	}
}

func (h *hub) len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *hub) droppedFrames() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dropped
}

func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
		_ = c.conn.Close()
	}
}
