package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mcoot/seabattle-go/internal/model"
)

// FlexID accepts an identifier sent as either a JSON string or a JSON number
type FlexID string

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*f = FlexID(n.String())
	return nil
}

// RegRequest registers or logs in a player
type RegRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// AddUserToRoomRequest joins a pending room
type AddUserToRoomRequest struct {
	IndexRoom FlexID `json:"indexRoom"`
}

// Position is a board coordinate on the wire
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Ship is a ship placement on the wire. Direction true means vertical.
type Ship struct {
	Position  Position `json:"position"`
	Direction bool     `json:"direction"`
	Length    int      `json:"length"`
	Type      string   `json:"type"`
}

// AddShipsRequest submits a fleet
type AddShipsRequest struct {
	GameID      FlexID `json:"gameId"`
	IndexPlayer FlexID `json:"indexPlayer"`
	Ships       []Ship `json:"ships"`
}

// AttackRequest fires at an explicit coordinate
type AttackRequest struct {
	GameID      FlexID `json:"gameId"`
	IndexPlayer FlexID `json:"indexPlayer"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
}

// RandomAttackRequest fires at a random cell
type RandomAttackRequest struct {
	GameID      FlexID `json:"gameId"`
	IndexPlayer FlexID `json:"indexPlayer"`
}

// ShipsToModel converts wire ships to model ships
func ShipsToModel(ships []Ship) []model.Ship {
	out := make([]model.Ship, len(ships))
	for i, s := range ships {
		out[i] = model.Ship{
			Position: model.Position{X: s.Position.X, Y: s.Position.Y},
			Vertical: s.Direction,
			Length:   s.Length,
			Type:     model.ShipType(s.Type),
		}
	}
	return out
}

// ShipsFromModel converts model ships to wire ships
func ShipsFromModel(ships []model.Ship) []Ship {
	out := make([]Ship, len(ships))
	for i, s := range ships {
		out[i] = Ship{
			Position:  Position{X: s.Position.X, Y: s.Position.Y},
			Direction: s.Vertical,
			Length:    s.Length,
			Type:      string(s.Type),
		}
	}
	return out
}
