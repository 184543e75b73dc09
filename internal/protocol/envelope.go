// Package protocol defines the WebSocket wire format: a JSON envelope whose
// data field carries a second JSON document encoded as a string.
package protocol

import (
	"encoding/json"
	"fmt"
)

// Message types
const (
	TypeReg           = "reg"
	TypeCreateRoom    = "create_room"
	TypeAddUserToRoom = "add_user_to_room"
	TypeAddShips      = "add_ships"
	TypeAttack        = "attack"
	TypeRandomAttack  = "randomAttack"

	TypeUpdateRoom    = "update_room"
	TypeUpdateWinners = "update_winners"
	TypeCreateGame    = "create_game"
	TypeStartGame     = "start_game"
	TypeTurn          = "turn"
	TypeFinish        = "finish"
)

// Envelope is the outer frame of every message in both directions
type Envelope struct {
	Type string `json:"type"`
	Data string `json:"data"`
	ID   int    `json:"id"`
}

// Decode parses a raw frame into an envelope
func Decode(raw []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Type == "" {
		return nil, fmt.Errorf("decode envelope: missing type")
	}
	return &env, nil
}

// DecodeData unmarshals the inner document. An empty data string decodes as {}.
func (e *Envelope) DecodeData(v any) error {
	if e.Data == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(e.Data), v); err != nil {
		return fmt.Errorf("decode %s data: %w", e.Type, err)
	}
	return nil
}

// Encode builds an outbound frame. The id is always 0.
func Encode(msgType string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s data: %w", msgType, err)
	}
	return json.Marshal(Envelope{Type: msgType, Data: string(data)})
}
