package handler

import (
	"net/http"

	"github.com/mcoot/seabattle-go/internal/api/response"
)

// ConnectionCounter reports the number of live game connections
type ConnectionCounter interface {
	ClientCount() int
}

// HealthHandler reports liveness
type HealthHandler struct {
	conns ConnectionCounter
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(conns ConnectionCounter) *HealthHandler {
	return &HealthHandler{conns: conns}
}

// Get handles GET /api/v1/health
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{
		Status:      "ok",
		Connections: h.conns.ClientCount(),
	})
}
