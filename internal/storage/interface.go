package storage

import (
	"context"

	"github.com/mcoot/seabattle-go/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, index model.PlayerIndex) (*model.Player, error)
	GetPlayerByName(ctx context.Context, name string) (*model.Player, error)
	ListPlayers(ctx context.Context) ([]*model.Player, error)

	// Room operations
	SaveRoom(ctx context.Context, room *model.Room) error
	GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error)
	DeleteRoom(ctx context.Context, id model.RoomID) error
	ListRooms(ctx context.Context) ([]*model.Room, error)
	DeleteAllRooms(ctx context.Context) error

	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
}
