package model

import "time"

// GameID uniquely identifies a game
type GameID string

// SessionPlayerID identifies a participant within one game only.
// It is regenerated per game and never equals the directory index.
type SessionPlayerID string

// GameStatus represents the current phase of a game
type GameStatus string

const (
	GameStatusWaiting  GameStatus = "waiting"  // Fleets not yet both submitted
	GameStatusPlaying  GameStatus = "playing"  // Attacks in progress
	GameStatusFinished GameStatus = "finished" // One fleet destroyed, terminal
)

// AttackStatus is the outcome tag of a resolved attack
type AttackStatus string

const (
	AttackMiss   AttackStatus = "miss"
	AttackShot   AttackStatus = "shot"
	AttackKilled AttackStatus = "killed"
)

// GamePlayer is one participant's state within a game
type GamePlayer struct {
	ID          SessionPlayerID
	PlayerIndex PlayerIndex // owning directory identity
	Ships       []Ship
	Board       *Board
	Ready       bool
}

// ShipAt returns the ship occupying pos, or nil
func (p *GamePlayer) ShipAt(pos Position) *Ship {
	for i := range p.Ships {
		if p.Ships[i].Contains(pos) {
			return &p.Ships[i]
		}
	}
	return nil
}

// IsSunk returns true if every cell of the ship has been hit on this player's board
func (p *GamePlayer) IsSunk(ship Ship) bool {
	for _, pos := range ship.Cells() {
		if p.Board.Get(pos) != CellHit {
			return false
		}
	}
	return true
}

// Game is a two-player session
type Game struct {
	ID          GameID
	Players     []*GamePlayer // exactly two; order is the turn index
	CurrentTurn int           // 0 or 1
	Status      GameStatus
	Winner      SessionPlayerID // empty until finished
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Slot returns the turn index of the given session player, or -1
func (g *Game) Slot(id SessionPlayerID) int {
	for i, p := range g.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// CurrentPlayer returns the participant whose move it is
func (g *Game) CurrentPlayer() *GamePlayer {
	return g.Players[g.CurrentTurn]
}

// Opponent returns the turn index of the other participant
func Opponent(slot int) int {
	return 1 - slot
}

// AllReady returns true once both fleets have been accepted
func (g *Game) AllReady() bool {
	for _, p := range g.Players {
		if !p.Ready {
			return false
		}
	}
	return true
}

// ParticipantIndexes returns the directory indexes of both participants
func (g *Game) ParticipantIndexes() []PlayerIndex {
	indexes := make([]PlayerIndex, len(g.Players))
	for i, p := range g.Players {
		indexes[i] = p.PlayerIndex
	}
	return indexes
}
