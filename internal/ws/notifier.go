package ws

import (
	"log/slog"

	"github.com/mcoot/seabattle-go/internal/model"
	"github.com/mcoot/seabattle-go/internal/protocol"
	"github.com/mcoot/seabattle-go/internal/services/game"
)

// Notifier encodes outbound events and routes them through the hub
type Notifier struct {
	hub    *Hub
	logger *slog.Logger
}

// NewNotifier creates a Notifier over the hub
func NewNotifier(hub *Hub, logger *slog.Logger) *Notifier {
	return &Notifier{hub: hub, logger: logger}
}

func (n *Notifier) encode(msgType string, payload any) ([]byte, bool) {
	msg, err := protocol.Encode(msgType, payload)
	if err != nil {
		n.logger.Error("failed to encode message",
			slog.String("type", msgType),
			slog.String("error", err.Error()))
		return nil, false
	}
	return msg, true
}

func (n *Notifier) send(c *Client, msgType string, payload any) {
	if msg, ok := n.encode(msgType, payload); ok {
		n.hub.Send(c, msg)
	}
}

func (n *Notifier) toPlayer(index model.PlayerIndex, msgType string, payload any) {
	msg, ok := n.encode(msgType, payload)
	if !ok {
		return
	}
	if n.hub.SendToPlayer(index, msg) == 0 {
		n.logger.Debug("no live connection for player",
			slog.String("type", msgType),
			slog.String("player_index", string(index)))
	}
}

func (n *Notifier) broadcast(msgType string, payload any) {
	if msg, ok := n.encode(msgType, payload); ok {
		n.hub.Broadcast(msg)
	}
}

// toParticipants sends the same payload to both players of a game
func (n *Notifier) toParticipants(g *model.Game, msgType string, payload any) {
	for _, index := range g.ParticipantIndexes() {
		n.toPlayer(index, msgType, payload)
	}
}

// Registered acknowledges a successful reg
func (n *Notifier) Registered(c *Client, player *model.Player) {
	n.send(c, protocol.TypeReg, protocol.RegResponse{
		Name:  player.Name,
		Index: string(player.Index),
	})
}

// RegFailed reports a rejected reg
func (n *Notifier) RegFailed(c *Client, name string, err error) {
	n.send(c, protocol.TypeReg, protocol.RegResponse{
		Name:      name,
		Error:     true,
		ErrorText: protocol.ErrorText(err),
	})
}

// Error reports a failed request under its own type
func (n *Notifier) Error(c *Client, msgType string, err error) {
	n.send(c, msgType, protocol.ErrorResponse{
		Error:     true,
		ErrorText: protocol.ErrorText(err),
	})
}

// Rooms broadcasts the joinable rooms
func (n *Notifier) Rooms(rooms []*model.Room) {
	n.broadcast(protocol.TypeUpdateRoom, protocol.RoomsFromModel(rooms))
}

// RoomsTo sends the joinable rooms to one client
func (n *Notifier) RoomsTo(c *Client, rooms []*model.Room) {
	n.send(c, protocol.TypeUpdateRoom, protocol.RoomsFromModel(rooms))
}

// Winners broadcasts the leaderboard
func (n *Notifier) Winners(winners []model.Winner) {
	n.broadcast(protocol.TypeUpdateWinners, protocol.WinnersFromModel(winners))
}

// WinnersTo sends the leaderboard to one client
func (n *Notifier) WinnersTo(c *Client, winners []model.Winner) {
	n.send(c, protocol.TypeUpdateWinners, protocol.WinnersFromModel(winners))
}

// CreateGame tells each participant their own session player id
func (n *Notifier) CreateGame(g *model.Game) {
	for _, p := range g.Players {
		n.toPlayer(p.PlayerIndex, protocol.TypeCreateGame, protocol.CreateGame{
			IDGame:   string(g.ID),
			IDPlayer: string(p.ID),
		})
	}
}

// FleetAccepted echoes the fleet to the submitting connection while the opponent is not ready
func (n *Notifier) FleetAccepted(c *Client, p *model.GamePlayer) {
	n.send(c, protocol.TypeStartGame, protocol.StartGame{
		Ships:              protocol.ShipsFromModel(p.Ships),
		CurrentPlayerIndex: string(p.ID),
	})
}

// GameStarted sends each participant their fleet, then whose turn it is
func (n *Notifier) GameStarted(g *model.Game) {
	turn := protocol.Turn{CurrentPlayer: string(g.CurrentPlayer().ID)}
	for _, p := range g.Players {
		n.toPlayer(p.PlayerIndex, protocol.TypeStartGame, protocol.StartGame{
			Ships:              protocol.ShipsFromModel(p.Ships),
			CurrentPlayerIndex: string(p.ID),
		})
		n.toPlayer(p.PlayerIndex, protocol.TypeTurn, turn)
	}
}

// Attack reports a resolved attack to both participants, followed by the
// next turn or, if the game ended, the winner
func (n *Notifier) Attack(res *game.AttackResult) {
	n.toParticipants(res.Game, protocol.TypeAttack, protocol.Attack{
		Position:      protocol.Position{X: res.Position.X, Y: res.Position.Y},
		CurrentPlayer: string(res.Attacker.ID),
		Status:        string(res.Status),
	})

	if res.Finished {
		n.toParticipants(res.Game, protocol.TypeFinish, protocol.Finish{
			WinPlayer: string(res.Game.Winner),
		})
		return
	}

	n.toParticipants(res.Game, protocol.TypeTurn, protocol.Turn{
		CurrentPlayer: string(res.Game.CurrentPlayer().ID),
	})
}
