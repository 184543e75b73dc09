package matchmaker

import (
	"context"
	"log/slog"
	"sort"

	"github.com/mcoot/seabattle-go/internal/dependencies/clock"
	"github.com/mcoot/seabattle-go/internal/dependencies/idgen"
	"github.com/mcoot/seabattle-go/internal/model"
	"github.com/mcoot/seabattle-go/internal/storage"
)

// GameCreator spawns a game for a completed room
type GameCreator interface {
	CreateGame(ctx context.Context, room *model.Room) (*model.Game, error)
}

// JoinResult describes a successful join
type JoinResult struct {
	Room *model.Room
	Game *model.Game // nil when the join did not complete the room
}

// Controller pairs registered players into rooms
type Controller struct {
	storage storage.Storage
	games   GameCreator
	clock   clock.Clock
	ids     idgen.Generator
	logger  *slog.Logger
}

// NewController creates a new matchmaker Controller
func NewController(
	storage storage.Storage,
	games GameCreator,
	clock clock.Clock,
	ids idgen.Generator,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		games:   games,
		clock:   clock,
		ids:     ids,
		logger:  logger,
	}
}

// CreateRoom opens a room with the player as its only user
func (c *Controller) CreateRoom(ctx context.Context, player *model.Player) (*model.Room, error) {
	existing, err := c.roomOf(ctx, player.Index)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, model.ErrAlreadyInRoom
	}

	room := &model.Room{
		ID:        model.RoomID(c.ids.NewID()),
		Users:     []model.RoomUser{{Name: player.Name, Index: player.Index}},
		CreatedAt: c.clock.Now(),
	}

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.logger.Info("room created",
		slog.String("room_id", string(room.ID)),
		slog.String("player_index", string(player.Index)),
	)

	return room, nil
}

// JoinRoom adds the player to a room. Completing the room spawns a game and removes the room.
func (c *Controller) JoinRoom(ctx context.Context, player *model.Player, roomID model.RoomID) (*JoinResult, error) {
	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if room.HasUser(player.Index) {
		return &JoinResult{Room: room}, nil
	}

	if room.IsFull() {
		return nil, model.ErrRoomFull
	}

	other, err := c.roomOf(ctx, player.Index)
	if err != nil {
		return nil, err
	}
	if other != nil {
		return nil, model.ErrAlreadyInAnotherRoom
	}

	// The stored room only changes once the join has fully succeeded
	joined := *room
	joined.Users = append(append([]model.RoomUser(nil), room.Users...),
		model.RoomUser{Name: player.Name, Index: player.Index})

	if !joined.IsFull() {
		if err := c.storage.SaveRoom(ctx, &joined); err != nil {
			return nil, err
		}
		return &JoinResult{Room: &joined}, nil
	}

	game, err := c.games.CreateGame(ctx, &joined)
	if err != nil {
		return nil, err
	}

	if err := c.storage.DeleteRoom(ctx, joined.ID); err != nil {
		return nil, err
	}

	c.logger.Info("room completed",
		slog.String("room_id", string(joined.ID)),
		slog.String("game_id", string(game.ID)),
	)

	return &JoinResult{Room: &joined, Game: game}, nil
}

// JoinableRooms returns rooms with exactly one user, oldest first
func (c *Controller) JoinableRooms(ctx context.Context) ([]*model.Room, error) {
	rooms, err := c.storage.ListRooms(ctx)
	if err != nil {
		return nil, err
	}

	joinable := make([]*model.Room, 0, len(rooms))
	for _, r := range rooms {
		if r.IsJoinable() {
			joinable = append(joinable, r)
		}
	}

	sort.Slice(joinable, func(i, j int) bool {
		if !joinable[i].CreatedAt.Equal(joinable[j].CreatedAt) {
			return joinable[i].CreatedAt.Before(joinable[j].CreatedAt)
		}
		return joinable[i].ID < joinable[j].ID
	})

	return joinable, nil
}

// roomOf returns the room listing the player, or nil
func (c *Controller) roomOf(ctx context.Context, index model.PlayerIndex) (*model.Room, error) {
	rooms, err := c.storage.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range rooms {
		if r.HasUser(index) {
			return r, nil
		}
	}
	return nil, nil
}
