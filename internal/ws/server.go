package ws

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
)

// Config holds WebSocket transport settings
type Config struct {
	// SendBuffer is the per-connection outbound queue depth
	SendBuffer int
	// QueueSize is the dispatcher's inbound job queue depth
	QueueSize int
}

// DefaultConfig returns default transport settings
func DefaultConfig() Config {
	return Config{
		SendBuffer: 256,
		QueueSize:  1024,
	}
}

// Server upgrades HTTP requests to game connections
type Server struct {
	hub        *Hub
	dispatcher *Dispatcher
	router     *Router
	upgrader   websocket.Upgrader
	sendBuffer int
	logger     *slog.Logger
}

// NewServer creates a new Server
func NewServer(hub *Hub, dispatcher *Dispatcher, router *Router, cfg Config, logger *slog.Logger) *Server {
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = DefaultConfig().SendBuffer
	}
	return &Server{
		hub:        hub,
		dispatcher: dispatcher,
		router:     router,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The static client may be served from another port or host
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		sendBuffer: cfg.SendBuffer,
		logger:     logger,
	}
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("ws upgrade failed",
			slog.String("remote_addr", r.RemoteAddr),
			slog.String("error", err.Error()))
		return
	}

	client := newClient(s.hub, conn, r.RemoteAddr, s.sendBuffer, s.logger)
	s.hub.Register(client)

	if !s.dispatcher.Submit(func(ctx context.Context) { s.router.Welcome(ctx, client) }) {
		s.hub.Unregister(client)
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump(func(raw []byte) {
		s.dispatcher.Submit(func(ctx context.Context) {
			s.router.Handle(ctx, client, raw)
		})
	})
}
