package model

import "time"

// RoomID uniquely identifies a pending room
type RoomID string

// MaxRoomUsers is the number of users that completes a room
const MaxRoomUsers = 2

// RoomUser is a player waiting in a room
type RoomUser struct {
	Name  string
	Index PlayerIndex
}

// Room pairs two players before a game exists
type Room struct {
	ID        RoomID
	Users     []RoomUser
	CreatedAt time.Time
}

// HasUser returns true if the player is listed in the room
func (r *Room) HasUser(index PlayerIndex) bool {
	for _, u := range r.Users {
		if u.Index == index {
			return true
		}
	}
	return false
}

// IsJoinable returns true if exactly one player is waiting
func (r *Room) IsJoinable() bool {
	return len(r.Users) == 1
}

// IsFull returns true once the room can spawn a game
func (r *Room) IsFull() bool {
	return len(r.Users) >= MaxRoomUsers
}
