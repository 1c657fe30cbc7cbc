package redis

import (
	"fmt"

	"github.com/mcoot/brewduel/internal/model"
)

// Key prefix for all brewduel data
const keyPrefix = "brewduel"

// waitingRoomKey returns the Redis key for a room in the waiting collection
func waitingRoomKey(id model.RoomID) string {
	return fmt.Sprintf("%s:room:waiting:%s", keyPrefix, id)
}

// activeRoomKey returns the Redis key for a room in the active collection
func activeRoomKey(id model.RoomID) string {
	return fmt.Sprintf("%s:room:active:%s", keyPrefix, id)
}

// waitingIndexKey is a ZSET of waiting room ids scored by creation time
func waitingIndexKey() string {
	return fmt.Sprintf("%s:idx:waiting_rooms", keyPrefix)
}

// activeIndexKey is a ZSET of active room ids scored by creation time
func activeIndexKey() string {
	return fmt.Sprintf("%s:idx:active_rooms", keyPrefix)
}

// resultsKey is the append-only LIST of results submitted for a room
func resultsKey(id model.RoomID) string {
	return fmt.Sprintf("%s:results:%s", keyPrefix, id)
}

// resultRoomsIndexKey is a SET of room ids that have at least one result
func resultRoomsIndexKey() string {
	return fmt.Sprintf("%s:idx:result_rooms", keyPrefix)
}

// lockKey returns the Redis key backing a named lock
func lockKey(name string) string {
	return fmt.Sprintf("%s:lock:%s", keyPrefix, name)
}
