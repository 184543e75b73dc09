package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/seabattle-go/internal/model"
	"github.com/mcoot/seabattle-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	key := playerKey(player.Index)

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.Set(ctx, playerNameIndexKey(player.Name), string(player.Index), 0)
	pipe.SAdd(ctx, playersIndexKey(), key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, index model.PlayerIndex) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(index)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) GetPlayerByName(ctx context.Context, name string) (*model.Player, error) {
	index, err := s.client.Get(ctx, playerNameIndexKey(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	return s.GetPlayer(ctx, model.PlayerIndex(index))
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	var players []*model.Player
	err := s.listIndexed(ctx, playersIndexKey(), func(data []byte) error {
		var player model.Player
		if err := json.Unmarshal(data, &player); err != nil {
			return err
		}
		players = append(players, &player)
		return nil
	})
	return players, err
}

// Room operations

func (s *Storage) SaveRoom(ctx context.Context, room *model.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return err
	}

	key := roomKey(room.ID)

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, roomsIndexKey(), key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	data, err := s.client.Get(ctx, roomKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRoomNotFound
		}
		return nil, err
	}

	var room model.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *Storage) DeleteRoom(ctx context.Context, id model.RoomID) error {
	key := roomKey(id)

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.SRem(ctx, roomsIndexKey(), key)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) ListRooms(ctx context.Context) ([]*model.Room, error) {
	var rooms []*model.Room
	err := s.listIndexed(ctx, roomsIndexKey(), func(data []byte) error {
		var room model.Room
		if err := json.Unmarshal(data, &room); err != nil {
			return err
		}
		rooms = append(rooms, &room)
		return nil
	})
	return rooms, err
}

func (s *Storage) DeleteAllRooms(ctx context.Context) error {
	indexKey := roomsIndexKey()

	keys, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	for _, key := range keys {
		pipe.Del(ctx, key)
	}
	pipe.Del(ctx, indexKey)
	_, err = pipe.Exec(ctx)
	return err
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, gameKey(game.ID), data, s.cfg.GameTTL).Err()
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

// listIndexed fetches every live key in an index SET with one MGET.
// Keys that vanished since indexing are skipped.
func (s *Storage) listIndexed(ctx context.Context, indexKey string, decode func([]byte) error) error {
	keys, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return err
	}

	for _, val := range values {
		str, ok := val.(string)
		if !ok {
			continue
		}
		if err := decode([]byte(str)); err != nil {
			return err
		}
	}
	return nil
}
