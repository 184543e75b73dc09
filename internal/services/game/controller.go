package game

import (
	"context"
	"log/slog"

	"github.com/mcoot/seabattle-go/internal/dependencies/clock"
	"github.com/mcoot/seabattle-go/internal/dependencies/idgen"
	"github.com/mcoot/seabattle-go/internal/dependencies/random"
	"github.com/mcoot/seabattle-go/internal/model"
	"github.com/mcoot/seabattle-go/internal/services/fleet"
	"github.com/mcoot/seabattle-go/internal/storage"
)

// WinRecorder credits a finished game to the winner's directory identity
type WinRecorder interface {
	RecordWin(ctx context.Context, index model.PlayerIndex) error
}

// FleetResult describes an accepted fleet
type FleetResult struct {
	Game    *model.Game
	Player  *model.GamePlayer
	Started bool // both fleets accepted, game moved to playing
}

// AttackResult describes a resolved attack
type AttackResult struct {
	Game        *model.Game
	Attacker    *model.GamePlayer
	Position    model.Position
	Status      model.AttackStatus
	Sunk        *model.Ship      // set when Status is killed
	Surrounding []model.Position // cells auto-marked miss around a sunk ship
	Finished    bool
}

// Controller manages the game state machine and turn flow
type Controller struct {
	storage   storage.Storage
	validator *fleet.Validator
	wins      WinRecorder
	clock     clock.Clock
	random    random.Random
	ids       idgen.Generator
	logger    *slog.Logger
}

// NewController creates a new game Controller
func NewController(
	storage storage.Storage,
	validator *fleet.Validator,
	wins WinRecorder,
	clock clock.Clock,
	random random.Random,
	ids idgen.Generator,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:   storage,
		validator: validator,
		wins:      wins,
		clock:     clock,
		random:    random,
		ids:       ids,
		logger:    logger,
	}
}

// CreateGame starts a game in waiting state for the two users of a full room
func (c *Controller) CreateGame(ctx context.Context, room *model.Room) (*model.Game, error) {
	if len(room.Users) != model.MaxRoomUsers {
		return nil, model.ErrInvalidState
	}

	now := c.clock.Now()
	game := &model.Game{
		ID:          model.GameID(c.ids.NewID()),
		Players:     make([]*model.GamePlayer, 0, len(room.Users)),
		CurrentTurn: 0,
		Status:      model.GameStatusWaiting,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	for _, user := range room.Users {
		game.Players = append(game.Players, &model.GamePlayer{
			ID:          model.SessionPlayerID(c.ids.NewID()),
			PlayerIndex: user.Index,
			Ships:       []model.Ship{},
			Board:       model.NewBoard(),
		})
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.String("room_id", string(room.ID)),
	)

	return game, nil
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, gameID)
}

// SubmitFleet stores a player's validated fleet and starts the game once both are ready
func (c *Controller) SubmitFleet(ctx context.Context, gameID model.GameID, playerID model.SessionPlayerID, ships []model.Ship) (*FleetResult, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	slot := game.Slot(playerID)
	if slot < 0 {
		return nil, model.ErrPlayerNotInGame
	}

	if game.Status != model.GameStatusWaiting {
		return nil, model.ErrFleetLocked
	}

	if err := c.validator.Validate(ships); err != nil {
		c.logger.Debug("fleet rejected",
			slog.String("game_id", string(gameID)),
			slog.String("player_id", string(playerID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	player := game.Players[slot]
	player.Ships = ships
	player.Board = c.validator.PlaceShips(ships)
	player.Ready = true

	result := &FleetResult{Game: game, Player: player}

	if game.AllReady() {
		game.Status = model.GameStatusPlaying
		game.CurrentTurn = c.random.Intn(len(game.Players))
		result.Started = true

		c.logger.Info("game started",
			slog.String("game_id", string(gameID)),
			slog.String("first_player", string(game.CurrentPlayer().ID)),
		)
	}

	game.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	return result, nil
}

// Attack fires at an explicit coordinate on the opponent's board
func (c *Controller) Attack(ctx context.Context, gameID model.GameID, playerID model.SessionPlayerID, pos model.Position) (*AttackResult, error) {
	game, slot, err := c.loadTurn(ctx, gameID, playerID)
	if err != nil {
		return nil, err
	}

	if !pos.InBounds() {
		return nil, model.ErrOutOfBounds
	}

	defender := game.Players[model.Opponent(slot)]
	if defender.Board.Get(pos).IsAttacked() {
		return nil, model.ErrAlreadyAttacked
	}

	return c.resolve(ctx, game, slot, pos)
}

// RandomAttack fires at a uniformly chosen cell not yet attacked
func (c *Controller) RandomAttack(ctx context.Context, gameID model.GameID, playerID model.SessionPlayerID) (*AttackResult, error) {
	game, slot, err := c.loadTurn(ctx, gameID, playerID)
	if err != nil {
		return nil, err
	}

	available := game.Players[model.Opponent(slot)].Board.Unattacked()
	if len(available) == 0 {
		return nil, model.ErrNoAvailableCells
	}

	return c.resolve(ctx, game, slot, available[c.random.Intn(len(available))])
}

// loadTurn fetches the game and checks that playerID may move now
func (c *Controller) loadTurn(ctx context.Context, gameID model.GameID, playerID model.SessionPlayerID) (*model.Game, int, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, 0, err
	}

	if game.Status != model.GameStatusPlaying {
		return nil, 0, model.ErrNotPlaying
	}

	slot := game.Slot(playerID)
	if slot < 0 {
		return nil, 0, model.ErrPlayerNotInGame
	}

	if slot != game.CurrentTurn {
		return nil, 0, model.ErrNotYourTurn
	}

	return game, slot, nil
}

// resolve applies an attack whose target has already been checked
func (c *Controller) resolve(ctx context.Context, game *model.Game, slot int, pos model.Position) (*AttackResult, error) {
	attacker := game.Players[slot]
	defender := game.Players[model.Opponent(slot)]

	result := &AttackResult{
		Game:     game,
		Attacker: attacker,
		Position: pos,
	}

	ship := defender.ShipAt(pos)
	if ship == nil {
		defender.Board.Set(pos, model.CellMiss)
		game.CurrentTurn = model.Opponent(slot)
		result.Status = model.AttackMiss
	} else {
		defender.Board.Set(pos, model.CellHit)
		result.Status = model.AttackShot
		if defender.IsSunk(*ship) {
			result.Status = model.AttackKilled
			result.Sunk = ship
			for _, p := range ship.Surrounding() {
				if defender.Board.Get(p) == model.CellEmpty {
					defender.Board.Set(p, model.CellMiss)
					result.Surrounding = append(result.Surrounding, p)
				}
			}
			if !defender.Board.HasShipCells() {
				game.Status = model.GameStatusFinished
				game.Winner = attacker.ID
				result.Finished = true
			}
		}
	}

	game.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Debug("attack resolved",
		slog.String("game_id", string(game.ID)),
		slog.String("player_id", string(attacker.ID)),
		slog.Int("x", pos.X),
		slog.Int("y", pos.Y),
		slog.String("status", string(result.Status)),
	)

	if result.Finished {
		c.finish(ctx, game, attacker)
	}

	return result, nil
}

// finish credits the winner and empties the matchmaking pool.
// Failures are logged only: the game itself is already finished.
func (c *Controller) finish(ctx context.Context, game *model.Game, winner *model.GamePlayer) {
	c.logger.Info("game finished",
		slog.String("game_id", string(game.ID)),
		slog.String("winner", string(winner.ID)),
	)

	if err := c.wins.RecordWin(ctx, winner.PlayerIndex); err != nil {
		c.logger.Error("failed to record win",
			slog.String("game_id", string(game.ID)),
			slog.String("player_index", string(winner.PlayerIndex)),
			slog.String("error", err.Error()),
		)
	}

	if err := c.storage.DeleteAllRooms(ctx); err != nil {
		c.logger.Error("failed to clear rooms",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
	}
}
