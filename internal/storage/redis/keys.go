package redis

import (
	"fmt"

	"github.com/mcoot/seabattle-go/internal/model"
)

const keyPrefix = "seabattle"

func playerKey(index model.PlayerIndex) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, index)
}

// playerNameIndexKey maps a player name to its index
func playerNameIndexKey(name string) string {
	return fmt.Sprintf("%s:idx:player_name:%s", keyPrefix, name)
}

// playersIndexKey is the SET of all player keys
func playersIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

func roomKey(id model.RoomID) string {
	return fmt.Sprintf("%s:room:%s", keyPrefix, id)
}

// roomsIndexKey is the SET of all room keys
func roomsIndexKey() string {
	return fmt.Sprintf("%s:idx:rooms", keyPrefix)
}

func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}
