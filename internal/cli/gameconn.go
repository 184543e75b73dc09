package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mcoot/seabattle-go/internal/protocol"
)

// GameConn is a client connection speaking the game protocol
type GameConn struct {
	conn *websocket.Conn
}

// DialGame opens a game connection
func DialGame(ctx context.Context, url string) (*GameConn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("connection failed: %w", err)
	}
	return &GameConn{conn: conn}, nil
}

// Close closes the connection
func (g *GameConn) Close() error {
	_ = g.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return g.conn.Close()
}

// Send writes one request. data must already be the inner JSON document.
func (g *GameConn) Send(msgType string, data json.RawMessage) error {
	if len(data) == 0 {
		data = json.RawMessage("{}")
	}
	if !json.Valid(data) {
		return fmt.Errorf("request data is not valid JSON")
	}
	return g.conn.WriteJSON(protocol.Envelope{Type: msgType, Data: string(data)})
}

// Next reads the next server message. A deadline on ctx bounds the wait.
func (g *GameConn) Next(ctx context.Context) (*protocol.Envelope, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Time{}
	}
	if err := g.conn.SetReadDeadline(deadline); err != nil {
		return nil, err
	}

	_, raw, err := g.conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	return protocol.Decode(raw)
}

// Register logs in, or creates the player on first use, and returns the
// player index. Other messages that arrive first are passed to onOther.
func (g *GameConn) Register(ctx context.Context, name, password string, onOther func(*protocol.Envelope)) (string, error) {
	data, err := json.Marshal(protocol.RegRequest{Name: name, Password: password})
	if err != nil {
		return "", err
	}
	if err := g.Send(protocol.TypeReg, data); err != nil {
		return "", err
	}

	for {
		env, err := g.Next(ctx)
		if err != nil {
			return "", err
		}
		if env.Type != protocol.TypeReg {
			if onOther != nil {
				onOther(env)
			}
			continue
		}

		var resp protocol.RegResponse
		if err := env.DecodeData(&resp); err != nil {
			return "", err
		}
		if resp.Error {
			return "", errors.New(resp.ErrorText)
		}
		return resp.Index, nil
	}
}

// IsTimeout reports whether err came from an expired read deadline
func IsTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
