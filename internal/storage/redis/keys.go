package redis

import (
	"fmt"

	"github.com/cardtable/eights/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "eights"

// snapshotKey returns the Redis key for a GameSnapshot
func snapshotKey(id model.GameID) string {
	return fmt.Sprintf("%s:snapshot:%s", keyPrefix, id)
}

// movesKey returns the Redis key for a game's move history list
func movesKey(id model.GameID) string {
	return fmt.Sprintf("%s:moves:%s", keyPrefix, id)
}

// gameIndexKey returns the Redis key for the SET of archived game ids
func gameIndexKey() string {
	return fmt.Sprintf("%s:idx:games", keyPrefix)
}
