package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/seabattle-go/internal/api/handler"
	"github.com/mcoot/seabattle-go/internal/api/middleware"
	basemw "github.com/mcoot/seabattle-go/internal/middleware"
	"github.com/mcoot/seabattle-go/internal/services/directory"
	"github.com/mcoot/seabattle-go/internal/services/matchmaker"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger     *slog.Logger
	Runner     handler.Runner
	Matchmaker *matchmaker.Controller
	Directory  *directory.Service
	Conns      handler.ConnectionCounter
	// WSHandler serves game connections at /ws
	WSHandler http.Handler
	// StaticDir is served at / when set
	StaticDir string
}

// NewRouter creates the HTTP router: the JSON API, the game socket and the static client
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.Use(basemw.RequestID)

	// Create handlers
	lobbyHandler := handler.NewLobbyHandler(cfg.Runner, cfg.Matchmaker, cfg.Directory)
	healthHandler := handler.NewHealthHandler(cfg.Conns)

	// Create middleware
	loggingMiddleware := basemw.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	api.HandleFunc("/health", healthHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/rooms", lobbyHandler.Rooms).Methods(http.MethodGet)
	api.HandleFunc("/winners", lobbyHandler.Winners).Methods(http.MethodGet)

	if cfg.WSHandler != nil {
		r.Handle("/ws", loggingMiddleware(cfg.WSHandler)).Methods(http.MethodGet)
	}

	if cfg.StaticDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.StaticDir))).Methods(http.MethodGet, http.MethodHead)
	}

	return r
}

// NewWSRouter creates the router for the dedicated game socket listener
func NewWSRouter(logger *slog.Logger, ws http.Handler) http.Handler {
	r := mux.NewRouter()
	r.Use(basemw.RequestID)
	r.Use(basemw.Logging(logger))
	r.Handle("/", ws).Methods(http.MethodGet)
	return r
}
