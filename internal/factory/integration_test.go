package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/seabattle-go/internal/model"
	"github.com/mcoot/seabattle-go/internal/services/directory"
	"github.com/mcoot/seabattle-go/internal/testutil"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) register(name string) *model.Player {
	reg, err := s.app.Directory.RegisterOrLogin(s.ctx, name, name+"-pw")
	s.Require().NoError(err)
	return reg.Player
}

// startGame registers two players, pairs them and submits both fleets.
// The first slot moves first.
func (s *IntegrationSuite) startGame() *model.Game {
	alice := s.register("alice")
	bob := s.register("bob")

	room, err := s.app.Matchmaker.CreateRoom(s.ctx, alice)
	s.Require().NoError(err)

	res, err := s.app.Matchmaker.JoinRoom(s.ctx, bob, room.ID)
	s.Require().NoError(err)
	s.Require().NotNil(res.Game)

	g := res.Game
	s.app.MockRandom.QueueIntn(0)
	for _, p := range g.Players {
		_, err := s.app.GameController.SubmitFleet(s.ctx, g.ID, p.ID, testutil.ValidFleet())
		s.Require().NoError(err)
	}

	g, err = s.app.GameController.GetGame(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Require().Equal(model.GameStatusPlaying, g.Status)
	return g
}

// Test: Complete game flow from registration to a recorded win
func (s *IntegrationSuite) TestCompleteGameFlow() {
	g := s.startGame()
	attacker := g.Players[0]
	defender := g.Players[1]

	// A miss passes the turn, then the defender misses back
	res, err := s.app.GameController.Attack(s.ctx, g.ID, attacker.ID, model.Position{X: 5, Y: 9})
	s.Require().NoError(err)
	s.Equal(model.AttackMiss, res.Status)

	res, err = s.app.GameController.Attack(s.ctx, g.ID, defender.ID, model.Position{X: 5, Y: 9})
	s.Require().NoError(err)
	s.Equal(model.AttackMiss, res.Status)

	// The attacker then hits every ship cell without losing the turn
	cells := testutil.FleetCells(testutil.ValidFleet())
	for i, cell := range cells {
		res, err = s.app.GameController.Attack(s.ctx, g.ID, attacker.ID, cell)
		s.Require().NoError(err, "cell %d", i)
		s.NotEqual(model.AttackMiss, res.Status)
	}

	s.True(res.Finished)
	s.Equal(model.AttackKilled, res.Status)

	winners, err := s.app.Directory.SnapshotWinners(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(winners, 1)
	s.Equal(model.Winner{Name: "alice", Wins: 1}, winners[0])

	_, err = s.app.GameController.Attack(s.ctx, g.ID, defender.ID, model.Position{X: 0, Y: 9})
	s.ErrorIs(err, model.ErrNotPlaying)
}

// Test: Finishing a game empties the room pool
func (s *IntegrationSuite) TestFinishClearsRooms() {
	g := s.startGame()

	carol := s.register("carol")
	_, err := s.app.Matchmaker.CreateRoom(s.ctx, carol)
	s.Require().NoError(err)

	rooms, err := s.app.Matchmaker.JoinableRooms(s.ctx)
	s.Require().NoError(err)
	s.Len(rooms, 1)

	for _, cell := range testutil.FleetCells(testutil.ValidFleet()) {
		_, err := s.app.GameController.Attack(s.ctx, g.ID, g.Players[0].ID, cell)
		s.Require().NoError(err)
	}

	rooms, err = s.app.Matchmaker.JoinableRooms(s.ctx)
	s.Require().NoError(err)
	s.Empty(rooms)
}

// Test: Seeded players can log in with their seeded password
func (s *IntegrationSuite) TestSeedThroughDispatcher() {
	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	go s.app.Run(ctx)

	err := s.app.Seed(s.ctx, []directory.Credentials{{Name: "gamer", Password: "gamer"}})
	s.Require().NoError(err)

	reg, err := s.app.Directory.RegisterOrLogin(s.ctx, "gamer", "gamer")
	s.Require().NoError(err)
	s.False(reg.Created)

	_, err = s.app.Directory.RegisterOrLogin(s.ctx, "gamer", "wrong")
	s.ErrorIs(err, model.ErrIncorrectCredentials)
}

// Test: A random attack never repeats a cell
func (s *IntegrationSuite) TestRandomAttackAvoidsRepeats() {
	g := s.startGame()
	attacker := g.Players[0]

	// Always pick the first unattacked cell; (0,0) is a hit so the turn stays
	s.app.MockRandom.QueueIntn(0, 0)

	first, err := s.app.GameController.RandomAttack(s.ctx, g.ID, attacker.ID)
	s.Require().NoError(err)
	second, err := s.app.GameController.RandomAttack(s.ctx, g.ID, attacker.ID)
	s.Require().NoError(err)

	s.Equal(model.Position{X: 0, Y: 0}, first.Position)
	s.Equal(model.Position{X: 1, Y: 0}, second.Position)
}

func (s *IntegrationSuite) TestNewSelectsStorage() {
	app, err := New(Config{})
	s.Require().NoError(err)
	s.NotNil(app.Storage)
	s.NoError(app.Close())

	_, err = New(Config{StorageType: StorageTypeRedis})
	s.Error(err)

	_, err = New(Config{StorageType: "postgres"})
	s.Error(err)
}
