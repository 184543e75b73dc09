package matchmaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/seabattle-go/internal/dependencies/mocks"
	"github.com/mcoot/seabattle-go/internal/model"
	"github.com/mcoot/seabattle-go/internal/services/fleet"
	"github.com/mcoot/seabattle-go/internal/services/game"
	"github.com/mcoot/seabattle-go/internal/storage/memory"
	"github.com/mcoot/seabattle-go/internal/testutil"
)

type noWins struct{}

func (noWins) RecordWin(ctx context.Context, index model.PlayerIndex) error { return nil }

type failingGames struct{ err error }

func (f failingGames) CreateGame(ctx context.Context, room *model.Room) (*model.Game, error) {
	return nil, f.err
}

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	ids        *mocks.MockIDGenerator
	controller *Controller
	ctx        context.Context

	alice *model.Player
	bob   *model.Player
	carol *model.Player
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.ids = mocks.NewMockIDGenerator()
	logger := testutil.NopLogger()
	games := game.NewController(s.storage, fleet.NewValidator(), noWins{}, s.clock, mocks.NewMockRandom(), s.ids, logger)
	s.controller = NewController(s.storage, games, s.clock, s.ids, logger)
	s.ctx = context.Background()

	s.alice = &model.Player{Index: "idx-alice", Name: "alice"}
	s.bob = &model.Player{Index: "idx-bob", Name: "bob"}
	s.carol = &model.Player{Index: "idx-carol", Name: "carol"}
}

// CreateRoom tests

func (s *ControllerSuite) TestCreateRoomSucceeds() {
	s.ids.Queue("room-1")

	room, err := s.controller.CreateRoom(s.ctx, s.alice)
	s.Require().NoError(err)

	s.Equal(model.RoomID("room-1"), room.ID)
	s.Equal([]model.RoomUser{{Name: "alice", Index: "idx-alice"}}, room.Users)

	joinable, err := s.controller.JoinableRooms(s.ctx)
	s.Require().NoError(err)
	s.Len(joinable, 1)
}

func (s *ControllerSuite) TestCreateRoomTwiceFails() {
	_, err := s.controller.CreateRoom(s.ctx, s.alice)
	s.Require().NoError(err)

	_, err = s.controller.CreateRoom(s.ctx, s.alice)
	s.ErrorIs(err, model.ErrAlreadyInRoom)
	s.ErrorIs(err, model.ErrConflict)
}

// JoinRoom tests

func (s *ControllerSuite) TestJoinRoomSpawnsGame() {
	room, _ := s.controller.CreateRoom(s.ctx, s.alice)

	res, err := s.controller.JoinRoom(s.ctx, s.bob, room.ID)
	s.Require().NoError(err)

	s.Require().NotNil(res.Game)
	s.Equal(model.GameStatusWaiting, res.Game.Status)
	s.Equal(model.PlayerIndex("idx-alice"), res.Game.Players[0].PlayerIndex)
	s.Equal(model.PlayerIndex("idx-bob"), res.Game.Players[1].PlayerIndex)

	_, err = s.storage.GetRoom(s.ctx, room.ID)
	s.ErrorIs(err, model.ErrRoomNotFound)

	joinable, _ := s.controller.JoinableRooms(s.ctx)
	s.Empty(joinable)
}

func (s *ControllerSuite) TestJoinRoomUnknown() {
	_, err := s.controller.JoinRoom(s.ctx, s.bob, "missing")
	s.ErrorIs(err, model.ErrRoomNotFound)
	s.ErrorIs(err, model.ErrNotFound)
}

func (s *ControllerSuite) TestJoinOwnRoomIsIdempotent() {
	room, _ := s.controller.CreateRoom(s.ctx, s.alice)

	res, err := s.controller.JoinRoom(s.ctx, s.alice, room.ID)
	s.Require().NoError(err)

	s.Nil(res.Game)
	s.Len(res.Room.Users, 1)

	stored, err := s.storage.GetRoom(s.ctx, room.ID)
	s.Require().NoError(err)
	s.Len(stored.Users, 1)
}

func (s *ControllerSuite) TestJoinFullRoomFails() {
	full := &model.Room{ID: "full", Users: []model.RoomUser{
		{Name: "alice", Index: "idx-alice"},
		{Name: "bob", Index: "idx-bob"},
	}}
	_ = s.storage.SaveRoom(s.ctx, full)

	_, err := s.controller.JoinRoom(s.ctx, s.carol, "full")
	s.ErrorIs(err, model.ErrRoomFull)
}

func (s *ControllerSuite) TestJoinWhileInAnotherRoomFails() {
	aliceRoom, _ := s.controller.CreateRoom(s.ctx, s.alice)
	_, _ = s.controller.CreateRoom(s.ctx, s.bob)

	_, err := s.controller.JoinRoom(s.ctx, s.bob, aliceRoom.ID)
	s.ErrorIs(err, model.ErrAlreadyInAnotherRoom)

	stored, _ := s.storage.GetRoom(s.ctx, aliceRoom.ID)
	s.Len(stored.Users, 1)
}

func (s *ControllerSuite) TestPlayerCanCreateRoomAfterGameSpawned() {
	room, _ := s.controller.CreateRoom(s.ctx, s.alice)
	_, err := s.controller.JoinRoom(s.ctx, s.bob, room.ID)
	s.Require().NoError(err)

	_, err = s.controller.CreateRoom(s.ctx, s.alice)
	s.NoError(err)
}

func (s *ControllerSuite) TestFailedGameCreationLeavesRoomUntouched() {
	createErr := errors.New("create failed")
	s.controller = NewController(s.storage, failingGames{err: createErr}, s.clock, s.ids, testutil.NopLogger())
	s.ids.Queue("room-1")
	_, err := s.controller.CreateRoom(s.ctx, s.alice)
	s.Require().NoError(err)

	_, err = s.controller.JoinRoom(s.ctx, s.bob, "room-1")
	s.ErrorIs(err, createErr)

	room, err := s.storage.GetRoom(s.ctx, "room-1")
	s.Require().NoError(err)
	s.Equal([]model.RoomUser{{Name: "alice", Index: "idx-alice"}}, room.Users)

	joinable, err := s.controller.JoinableRooms(s.ctx)
	s.Require().NoError(err)
	s.Len(joinable, 1)
}

// JoinableRooms tests

func (s *ControllerSuite) TestJoinableRoomsOldestFirst() {
	s.ids.Queue("room-b", "room-a")
	_, _ = s.controller.CreateRoom(s.ctx, s.alice)
	s.clock.Advance(time.Second)
	_, _ = s.controller.CreateRoom(s.ctx, s.bob)

	joinable, err := s.controller.JoinableRooms(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(joinable, 2)
	s.Equal(model.RoomID("room-b"), joinable[0].ID)
	s.Equal(model.RoomID("room-a"), joinable[1].ID)
}
