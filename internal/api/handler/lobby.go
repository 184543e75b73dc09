package handler

import (
	"context"
	"net/http"

	"github.com/mcoot/seabattle-go/internal/api/response"
	"github.com/mcoot/seabattle-go/internal/services/directory"
	"github.com/mcoot/seabattle-go/internal/services/matchmaker"
)

// LobbyHandler serves read-only views of the matchmaking pool and leaderboard
type LobbyHandler struct {
	runner  Runner
	rooms   *matchmaker.Controller
	players *directory.Service
}

// NewLobbyHandler creates a new lobby handler
func NewLobbyHandler(runner Runner, rooms *matchmaker.Controller, players *directory.Service) *LobbyHandler {
	return &LobbyHandler{
		runner:  runner,
		rooms:   rooms,
		players: players,
	}
}

// Rooms handles GET /api/v1/rooms
func (h *LobbyHandler) Rooms(w http.ResponseWriter, r *http.Request) {
	// Encoded inside the loop so no room is read while a join mutates it
	var rooms []response.Room
	err := h.runner.Do(r.Context(), func(ctx context.Context) error {
		joinable, err := h.rooms.JoinableRooms(ctx)
		if err != nil {
			return err
		}
		rooms = response.RoomsFromModel(joinable)
		return nil
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, rooms)
}

// Winners handles GET /api/v1/winners
func (h *LobbyHandler) Winners(w http.ResponseWriter, r *http.Request) {
	var winners []response.Winner
	err := h.runner.Do(r.Context(), func(ctx context.Context) error {
		snapshot, err := h.players.SnapshotWinners(ctx)
		if err != nil {
			return err
		}
		winners = response.WinnersFromModel(snapshot)
		return nil
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, winners)
}
