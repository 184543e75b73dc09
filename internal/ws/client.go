package ws

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mcoot/seabattle-go/internal/model"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound frame size
	maxMessageSize = 64 * 1024
)

// Client is one WebSocket connection
type Client struct {
	hub         *Hub
	conn        *websocket.Conn
	send        chan []byte
	addr        string
	connectedAt time.Time
	logger      *slog.Logger

	index     model.PlayerIndex // guarded by hub.mu
	closeOnce sync.Once
}

func newClient(hub *Hub, conn *websocket.Conn, addr string, bufferSize int, logger *slog.Logger) *Client {
	return &Client{
		hub:         hub,
		conn:        conn,
		send:        make(chan []byte, bufferSize),
		addr:        addr,
		connectedAt: time.Now(),
		logger:      logger.With(slog.String("remote_addr", addr)),
	}
}

func (c *Client) closeSend() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// readPump forwards inbound text frames to onMessage until the connection fails
func (c *Client) readPump(onMessage func(raw []byte)) {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error("failed to set read deadline", slog.String("error", err.Error()))
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				c.logger.Warn("ws read error", slog.String("error", err.Error()))
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		onMessage(message)
	}
}

// writePump drains the send channel to the connection and keeps it alive with pings
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Debug("ws write failed", slog.String("error", err.Error()))
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
