package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/seabattle-go/internal/model"
)

func TestEncodeDoubleEncodesData(t *testing.T) {
	raw, err := Encode(TypeTurn, Turn{CurrentPlayer: "p1"})
	require.NoError(t, err)

	var outer map[string]any
	require.NoError(t, json.Unmarshal(raw, &outer))
	assert.Equal(t, "turn", outer["type"])
	assert.Equal(t, `{"currentPlayer":"p1"}`, outer["data"])
	assert.Equal(t, float64(0), outer["id"])
}

func TestEncodeEmptyListIsArray(t *testing.T) {
	raw, err := Encode(TypeUpdateRoom, RoomsFromModel(nil))
	require.NoError(t, err)

	env, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "[]", env.Data)
}

func TestDecodeRequest(t *testing.T) {
	raw := []byte(`{"type":"attack","data":"{\"gameId\":\"g-1\",\"indexPlayer\":7,\"x\":3,\"y\":9}","id":0}`)

	env, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, TypeAttack, env.Type)

	var req AttackRequest
	require.NoError(t, env.DecodeData(&req))
	assert.Equal(t, FlexID("g-1"), req.GameID)
	assert.Equal(t, FlexID("7"), req.IndexPlayer)
	assert.Equal(t, 3, req.X)
	assert.Equal(t, 9, req.Y)
}

func TestDecodeEmptyData(t *testing.T) {
	env, err := Decode([]byte(`{"type":"create_room","data":"","id":0}`))
	require.NoError(t, err)

	var req struct{}
	assert.NoError(t, env.DecodeData(&req))
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte(`not json`))
	assert.Error(t, err)

	_, err = Decode([]byte(`{"data":"{}"}`))
	assert.Error(t, err)

	env, err := Decode([]byte(`{"type":"reg","data":"{broken"}`))
	require.NoError(t, err)
	assert.Error(t, env.DecodeData(&RegRequest{}))
}

func TestFlexIDRejectsObjects(t *testing.T) {
	var id FlexID
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &id))
	assert.NoError(t, json.Unmarshal([]byte(`null`), &id))
	assert.Equal(t, FlexID(""), id)
}

func TestShipConversionRoundTrip(t *testing.T) {
	wire := []Ship{{Position: Position{X: 1, Y: 2}, Direction: true, Length: 3, Type: "large"}}

	ships := ShipsToModel(wire)
	require.Len(t, ships, 1)
	assert.True(t, ships[0].Vertical)
	assert.Equal(t, model.ShipLarge, ships[0].Type)
	assert.Equal(t, wire, ShipsFromModel(ships))
}

func TestErrorText(t *testing.T) {
	assert.Equal(t, "Room is full", ErrorText(model.ErrRoomFull))
	assert.Equal(t, "Invalid ships configuration", ErrorText(fmt.Errorf("%w: ship 2 overlaps", model.ErrInvalidFleet)))
	assert.Equal(t, InternalErrorText, ErrorText(errors.New("redis: connection refused")))
	assert.True(t, IsInternal(errors.New("boom")))
	assert.False(t, IsInternal(model.ErrNotYourTurn))
}
