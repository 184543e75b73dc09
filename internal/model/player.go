package model

import "time"

// PlayerIndex uniquely identifies a registered player across the system
type PlayerIndex string

// Player is a registered identity in the player directory
type Player struct {
	Index        PlayerIndex
	Name         string // natural key, immutable
	PasswordHash string // bcrypt hash of the password digest
	Wins         int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Winner is a leaderboard row
type Winner struct {
	Name string
	Wins int
}
