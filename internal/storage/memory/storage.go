package memory

import (
	"context"
	"sync"

	"github.com/mcoot/seabattle-go/internal/model"
	"github.com/mcoot/seabattle-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players   map[model.PlayerIndex]*model.Player
	nameIndex map[string]model.PlayerIndex
	rooms     map[model.RoomID]*model.Room
	games     map[model.GameID]*model.Game
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:   make(map[model.PlayerIndex]*model.Player),
		nameIndex: make(map[string]model.PlayerIndex),
		rooms:     make(map[model.RoomID]*model.Room),
		games:     make(map[model.GameID]*model.Game),
	}
}

var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *player
	s.players[player.Index] = &stored
	s.nameIndex[player.Name] = player.Index
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, index model.PlayerIndex) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[index]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	result := *player
	return &result, nil
}

func (s *Storage) GetPlayerByName(ctx context.Context, name string) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	index, ok := s.nameIndex[name]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	player, ok := s.players[index]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	result := *player
	return &result, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]*model.Player, 0, len(s.players))
	for _, p := range s.players {
		player := *p
		players = append(players, &player)
	}
	return players, nil
}

// Room operations

func (s *Storage) SaveRoom(ctx context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[room.ID] = cloneRoom(room)
	return nil
}

func (s *Storage) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return cloneRoom(room), nil
}

func (s *Storage) DeleteRoom(ctx context.Context, id model.RoomID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, id)
	return nil
}

func (s *Storage) ListRooms(ctx context.Context) ([]*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rooms := make([]*model.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		rooms = append(rooms, cloneRoom(r))
	}
	return rooms, nil
}

func (s *Storage) DeleteAllRooms(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms = make(map[model.RoomID]*model.Room)
	return nil
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = cloneGame(game)
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return cloneGame(game), nil
}

// Stored values never alias caller memory, matching the serialized backend.

func cloneRoom(room *model.Room) *model.Room {
	c := *room
	c.Users = append([]model.RoomUser(nil), room.Users...)
	return &c
}

func cloneGame(game *model.Game) *model.Game {
	c := *game
	c.Players = make([]*model.GamePlayer, len(game.Players))
	for i, p := range game.Players {
		player := *p
		player.Ships = append([]model.Ship(nil), p.Ships...)
		if p.Board != nil {
			cells := make([][]model.CellState, len(p.Board.Cells))
			for y, row := range p.Board.Cells {
				cells[y] = append([]model.CellState(nil), row...)
			}
			player.Board = &model.Board{Cells: cells}
		}
		c.Players[i] = &player
	}
	return &c
}
