package protocol

import "github.com/mcoot/seabattle-go/internal/model"

// RegResponse acknowledges a reg request. On failure Error is set and Index is empty.
type RegResponse struct {
	Name      string `json:"name"`
	Index     string `json:"index"`
	Error     bool   `json:"error"`
	ErrorText string `json:"errorText"`
}

// ErrorResponse is sent under the originating request type when a request fails
type ErrorResponse struct {
	Error     bool   `json:"error"`
	ErrorText string `json:"errorText"`
}

// RoomUser is a waiting player in an update_room entry
type RoomUser struct {
	Name  string `json:"name"`
	Index string `json:"index"`
}

// Room is one entry of update_room
type Room struct {
	RoomID    string     `json:"roomId"`
	RoomUsers []RoomUser `json:"roomUsers"`
}

// Winner is one entry of update_winners
type Winner struct {
	Name string `json:"name"`
	Wins int    `json:"wins"`
}

// CreateGame tells a participant the game id and their own session player id
type CreateGame struct {
	IDGame   string `json:"idGame"`
	IDPlayer string `json:"idPlayer"`
}

// StartGame echoes a participant's fleet
type StartGame struct {
	Ships              []Ship `json:"ships"`
	CurrentPlayerIndex string `json:"currentPlayerIndex"`
}

// Turn names the session player to move
type Turn struct {
	CurrentPlayer string `json:"currentPlayer"`
}

// Attack reports a resolved attack
type Attack struct {
	Position      Position `json:"position"`
	CurrentPlayer string   `json:"currentPlayer"`
	Status        string   `json:"status"`
}

// Finish names the winning session player
type Finish struct {
	WinPlayer string `json:"winPlayer"`
}

// RoomsFromModel converts rooms for update_room. Never returns nil so the list encodes as [].
func RoomsFromModel(rooms []*model.Room) []Room {
	out := make([]Room, 0, len(rooms))
	for _, r := range rooms {
		users := make([]RoomUser, 0, len(r.Users))
		for _, u := range r.Users {
			users = append(users, RoomUser{Name: u.Name, Index: string(u.Index)})
		}
		out = append(out, Room{RoomID: string(r.ID), RoomUsers: users})
	}
	return out
}

// WinnersFromModel converts the leaderboard for update_winners
func WinnersFromModel(winners []model.Winner) []Winner {
	out := make([]Winner, 0, len(winners))
	for _, w := range winners {
		out = append(out, Winner{Name: w.Name, Wins: w.Wins})
	}
	return out
}
