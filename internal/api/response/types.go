package response

import (
	"time"

	"github.com/mcoot/seabattle-go/internal/model"
)

// Health is the response for the health endpoint
type Health struct {
	Status      string `json:"status"`
	Connections int    `json:"connections"`
}

// RoomUser represents a waiting player in a room
type RoomUser struct {
	Name  string `json:"name"`
	Index string `json:"index"`
}

// Room represents a joinable room
type Room struct {
	ID        string     `json:"id"`
	Users     []RoomUser `json:"users"`
	CreatedAt time.Time  `json:"created_at"`
}

// RoomFromModel converts a model.Room to a response Room
func RoomFromModel(r *model.Room) Room {
	users := make([]RoomUser, len(r.Users))
	for i, u := range r.Users {
		users[i] = RoomUser{Name: u.Name, Index: string(u.Index)}
	}
	return Room{
		ID:        string(r.ID),
		Users:     users,
		CreatedAt: r.CreatedAt,
	}
}

// RoomsFromModel converts a list of rooms. The result is never nil.
func RoomsFromModel(rooms []*model.Room) []Room {
	out := make([]Room, len(rooms))
	for i, r := range rooms {
		out[i] = RoomFromModel(r)
	}
	return out
}

// Winner represents a leaderboard entry
type Winner struct {
	Name string `json:"name"`
	Wins int    `json:"wins"`
}

// WinnersFromModel converts the leaderboard. The result is never nil.
func WinnersFromModel(winners []model.Winner) []Winner {
	out := make([]Winner, len(winners))
	for i, w := range winners {
		out[i] = Winner{Name: w.Name, Wins: w.Wins}
	}
	return out
}
