package ws

import (
	"context"
	"log"
	"sync"
)

// Hub fans feed events out to every connected client. A client whose send
// buffer is full is dropped rather than allowed to stall the others.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     *log.Logger

	// done closes when Run returns. life guards stopped so no registration
	// slips into the queue after Run has drained it.
	done     chan struct{}
	stopOnce sync.Once
	life     sync.RWMutex
	stopped  bool
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		logger:     logger,
		done:       make(chan struct{}),
	}
}

// Run serves registrations and broadcasts until ctx is cancelled, then
// closes every client. Register and Unregister return immediately once Run
// has stopped.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			h.logf("[WS] Client connected total_clients=%d", total)

		case client := <-h.unregister:
			h.remove(client)

		case message := <-h.broadcast:
			h.mutex.RLock()
			snapshot := make([]*Client, 0, len(h.clients))
			for c := range h.clients {
				snapshot = append(snapshot, c)
			}
			h.mutex.RUnlock()

			for _, client := range snapshot {
				select {
				case client.send <- message:
				default:
					h.remove(client)
				}
			}
			h.logf("[WS] Broadcast clients=%d", len(snapshot))
		}
	}
}

func (h *Hub) shutdown() {
	h.stopOnce.Do(func() { close(h.done) })

	h.life.Lock()
	h.stopped = true
	h.life.Unlock()

	h.mutex.Lock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
	h.mutex.Unlock()

	for {
		select {
		case c := <-h.register:
			closeSend(c)
		case <-h.unregister:
		default:
			h.logf("[WS] Hub stopped")
			return
		}
	}
}

func closeSend(c *Client) {
	if c != nil && c.send != nil {
		close(c.send)
	}
}

func (h *Hub) remove(client *Client) {
	if client == nil {
		return
	}
	h.mutex.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mutex.Unlock()
	h.logf("[WS] Client disconnected total_clients=%d", total)
}

// Register queues client for the feed. After the hub stops the client's
// send channel is closed instead, which ends its write pump.
func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.life.RLock()
	defer h.life.RUnlock()
	if h.stopped {
		closeSend(client)
		return
	}
	select {
	case h.register <- client:
	case <-h.done:
		closeSend(client)
	}
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Stopped reports whether Run has shut the hub down.
func (h *Hub) Stopped() bool {
	if h == nil {
		return true
	}
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Broadcast queues message for every client, dropping it when the queue is
// full.
func (h *Hub) Broadcast(message []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- message:
	default:
		h.logf("[WS] Broadcast dropped reason=buffer_full")
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (h *Hub) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}
