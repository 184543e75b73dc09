package ws

import (
	"context"
	"log/slog"

	"github.com/mcoot/seabattle-go/internal/model"
	"github.com/mcoot/seabattle-go/internal/protocol"
	"github.com/mcoot/seabattle-go/internal/services/directory"
	"github.com/mcoot/seabattle-go/internal/services/game"
	"github.com/mcoot/seabattle-go/internal/services/matchmaker"
)

// Router decodes inbound messages and applies them to the game services.
// Every method must run on the dispatcher goroutine.
type Router struct {
	hub      *Hub
	players  *directory.Service
	rooms    *matchmaker.Controller
	games    *game.Controller
	notifier *Notifier
	logger   *slog.Logger
}

// NewRouter creates a new Router
func NewRouter(
	hub *Hub,
	players *directory.Service,
	rooms *matchmaker.Controller,
	games *game.Controller,
	notifier *Notifier,
	logger *slog.Logger,
) *Router {
	return &Router{
		hub:      hub,
		players:  players,
		rooms:    rooms,
		games:    games,
		notifier: notifier,
		logger:   logger,
	}
}

// Welcome sends a new connection the current rooms and leaderboard
func (r *Router) Welcome(ctx context.Context, c *Client) {
	if rooms, err := r.rooms.JoinableRooms(ctx); err != nil {
		r.logInternal(c, "welcome", err)
	} else {
		r.notifier.RoomsTo(c, rooms)
	}

	if winners, err := r.players.SnapshotWinners(ctx); err != nil {
		r.logInternal(c, "welcome", err)
	} else {
		r.notifier.WinnersTo(c, winners)
	}
}

// Handle processes one raw inbound frame from c
func (r *Router) Handle(ctx context.Context, c *Client, raw []byte) {
	env, err := protocol.Decode(raw)
	if err != nil {
		r.logger.Warn("dropping malformed message",
			slog.String("remote_addr", c.addr),
			slog.String("error", err.Error()))
		return
	}

	log := r.logger.With(
		slog.String("remote_addr", c.addr),
		slog.String("type", env.Type),
	)

	switch env.Type {
	case protocol.TypeReg:
		var req protocol.RegRequest
		if r.decode(log, env, &req) {
			r.handleReg(ctx, c, req)
		}

	case protocol.TypeCreateRoom:
		r.reply(c, env.Type, r.handleCreateRoom(ctx, c))

	case protocol.TypeAddUserToRoom:
		var req protocol.AddUserToRoomRequest
		if r.decode(log, env, &req) {
			r.reply(c, env.Type, r.handleAddUserToRoom(ctx, c, req))
		}

	case protocol.TypeAddShips:
		var req protocol.AddShipsRequest
		if r.decode(log, env, &req) {
			r.reply(c, env.Type, r.handleAddShips(ctx, c, req))
		}

	case protocol.TypeAttack:
		var req protocol.AttackRequest
		if r.decode(log, env, &req) {
			r.reply(c, env.Type, r.handleAttack(ctx, req))
		}

	case protocol.TypeRandomAttack:
		var req protocol.RandomAttackRequest
		if r.decode(log, env, &req) {
			r.reply(c, env.Type, r.handleRandomAttack(ctx, req))
		}

	default:
		log.Warn("dropping unknown message type")
	}
}

func (r *Router) decode(log *slog.Logger, env *protocol.Envelope, v any) bool {
	if err := env.DecodeData(v); err != nil {
		log.Warn("dropping malformed message", slog.String("error", err.Error()))
		return false
	}
	return true
}

// reply reports err, if any, to the originating connection only
func (r *Router) reply(c *Client, msgType string, err error) {
	if err == nil {
		return
	}
	if protocol.IsInternal(err) {
		r.logInternal(c, msgType, err)
	} else {
		r.logger.Debug("request rejected",
			slog.String("remote_addr", c.addr),
			slog.String("type", msgType),
			slog.String("error", err.Error()))
	}
	r.notifier.Error(c, msgType, err)
}

func (r *Router) logInternal(c *Client, msgType string, err error) {
	r.logger.Error("request failed",
		slog.String("remote_addr", c.addr),
		slog.String("type", msgType),
		slog.String("error", err.Error()))
}

func (r *Router) handleReg(ctx context.Context, c *Client, req protocol.RegRequest) {
	reg, err := r.players.RegisterOrLogin(ctx, req.Name, req.Password)
	if err != nil {
		if protocol.IsInternal(err) {
			r.logInternal(c, protocol.TypeReg, err)
		}
		r.notifier.RegFailed(c, req.Name, err)
		return
	}

	r.hub.Bind(c, reg.Player.Index)
	r.notifier.Registered(c, reg.Player)

	if reg.Created {
		r.broadcastWinners(ctx)
	}
}

// boundPlayer resolves the directory player behind the connection
func (r *Router) boundPlayer(ctx context.Context, c *Client) (*model.Player, error) {
	index := r.hub.PlayerOf(c)
	if index == "" {
		return nil, model.ErrNotRegistered
	}
	return r.players.GetPlayer(ctx, index)
}

func (r *Router) handleCreateRoom(ctx context.Context, c *Client) error {
	player, err := r.boundPlayer(ctx, c)
	if err != nil {
		return err
	}

	if _, err := r.rooms.CreateRoom(ctx, player); err != nil {
		return err
	}

	r.broadcastRooms(ctx)
	return nil
}

func (r *Router) handleAddUserToRoom(ctx context.Context, c *Client, req protocol.AddUserToRoomRequest) error {
	player, err := r.boundPlayer(ctx, c)
	if err != nil {
		return err
	}

	res, err := r.rooms.JoinRoom(ctx, player, model.RoomID(req.IndexRoom))
	if err != nil {
		return err
	}

	r.broadcastRooms(ctx)

	if res.Game != nil {
		r.notifier.CreateGame(res.Game)
	}
	return nil
}

func (r *Router) handleAddShips(ctx context.Context, c *Client, req protocol.AddShipsRequest) error {
	res, err := r.games.SubmitFleet(ctx,
		model.GameID(req.GameID),
		model.SessionPlayerID(req.IndexPlayer),
		protocol.ShipsToModel(req.Ships),
	)
	if err != nil {
		return err
	}

	if res.Started {
		r.notifier.GameStarted(res.Game)
	} else {
		r.notifier.FleetAccepted(c, res.Player)
	}
	return nil
}

func (r *Router) handleAttack(ctx context.Context, req protocol.AttackRequest) error {
	res, err := r.games.Attack(ctx,
		model.GameID(req.GameID),
		model.SessionPlayerID(req.IndexPlayer),
		model.Position{X: req.X, Y: req.Y},
	)
	if err != nil {
		return err
	}

	r.afterAttack(ctx, res)
	return nil
}

func (r *Router) handleRandomAttack(ctx context.Context, req protocol.RandomAttackRequest) error {
	res, err := r.games.RandomAttack(ctx,
		model.GameID(req.GameID),
		model.SessionPlayerID(req.IndexPlayer),
	)
	if err != nil {
		return err
	}

	r.afterAttack(ctx, res)
	return nil
}

// afterAttack fans out the attack outcome. A finished game also changes the
// leaderboard and empties the room pool, so both lists are rebroadcast.
func (r *Router) afterAttack(ctx context.Context, res *game.AttackResult) {
	r.notifier.Attack(res)

	if !res.Finished {
		return
	}

	r.broadcastWinners(ctx)
	r.broadcastRooms(ctx)
}

func (r *Router) broadcastRooms(ctx context.Context) {
	rooms, err := r.rooms.JoinableRooms(ctx)
	if err != nil {
		r.logger.Error("broadcast failed",
			slog.String("type", protocol.TypeUpdateRoom),
			slog.String("error", err.Error()))
		return
	}
	r.notifier.Rooms(rooms)
}

func (r *Router) broadcastWinners(ctx context.Context) {
	winners, err := r.players.SnapshotWinners(ctx)
	if err != nil {
		r.logger.Error("broadcast failed",
			slog.String("type", protocol.TypeUpdateWinners),
			slog.String("error", err.Error()))
		return
	}
	r.notifier.Winners(winners)
}
