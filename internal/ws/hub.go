package ws

import (
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/seabattle-go/internal/model"
)

// Hub tracks live connections and which player each is bound to
type Hub struct {
	mu       sync.RWMutex
	clients  map[*Client]bool
	byPlayer map[model.PlayerIndex]map[*Client]bool
	logger   *slog.Logger
}

// NewHub creates an empty Hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:  make(map[*Client]bool),
		byPlayer: make(map[model.PlayerIndex]map[*Client]bool),
		logger:   logger,
	}
}

// Register adds a client to the hub
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("ws client registered",
		slog.String("remote_addr", c.addr),
		slog.Int("total_clients", count))
}

// Unregister removes a client and closes its send channel. Safe to call twice.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if !h.clients[c] {
		h.mu.Unlock()
		return
	}
	index := c.index
	delete(h.clients, c)
	h.unbindLocked(c)
	c.closeSend()
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("ws client unregistered",
		slog.String("remote_addr", c.addr),
		slog.String("player_index", string(index)),
		slog.Duration("connection_duration", time.Since(c.connectedAt)),
		slog.Int("total_clients", count))
}

// Bind associates the client with a player, replacing any earlier binding
func (h *Hub) Bind(c *Client, index model.PlayerIndex) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.clients[c] {
		return
	}
	h.unbindLocked(c)
	c.index = index
	if h.byPlayer[index] == nil {
		h.byPlayer[index] = make(map[*Client]bool)
	}
	h.byPlayer[index][c] = true
}

// PlayerOf returns the player bound to the client, or "" if unbound
func (h *Hub) PlayerOf(c *Client) model.PlayerIndex {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return c.index
}

func (h *Hub) unbindLocked(c *Client) {
	if c.index == "" {
		return
	}
	if set := h.byPlayer[c.index]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.byPlayer, c.index)
		}
	}
	c.index = ""
}

// Send queues a message for one client. Returns false if it was dropped.
func (h *Hub) Send(c *Client, message []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if !h.clients[c] {
		return false
	}
	return h.enqueueLocked(c, message)
}

// SendToPlayer queues a message for every connection bound to the player.
// Returns the number of connections that accepted it.
func (h *Hub) SendToPlayer(index model.PlayerIndex, message []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	sent := 0
	for c := range h.byPlayer[index] {
		if h.enqueueLocked(c, message) {
			sent++
		}
	}
	return sent
}

// Broadcast queues a message for every live connection
func (h *Hub) Broadcast(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	dropped := 0
	for c := range h.clients {
		if !h.enqueueLocked(c, message) {
			dropped++
		}
	}
	if dropped > 0 {
		h.logger.Warn("ws broadcast partial failure",
			slog.Int("sent", len(h.clients)-dropped),
			slog.Int("dropped", dropped))
	}
}

func (h *Hub) enqueueLocked(c *Client, message []byte) bool {
	select {
	case c.send <- message:
		return true
	default:
		h.logger.Warn("ws message dropped - client buffer full",
			slog.String("remote_addr", c.addr),
			slog.String("player_index", string(c.index)))
		return false
	}
}

// ClientCount returns the number of live connections
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client
func (h *Hub) Close() {
	h.mu.Lock()
	count := len(h.clients)
	for c := range h.clients {
		c.closeSend()
		delete(h.clients, c)
	}
	h.byPlayer = make(map[model.PlayerIndex]map[*Client]bool)
	h.mu.Unlock()

	h.logger.Info("ws hub stopped", slog.Int("disconnected_clients", count))
}
