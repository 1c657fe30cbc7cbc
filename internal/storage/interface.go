package storage

import (
	"context"

	"github.com/mcoot/brewduel/internal/model"
)

// Lock keys shared by the services
const (
	// MatchmakingLockKey serialises the scan-and-promote step of matchmaking
	MatchmakingLockKey = "matchmaking"
)

// RoomLockKey returns the lock key guarding a single room's read-modify-write spans
func RoomLockKey(id model.RoomID) string {
	return "room:" + string(id)
}

// Unlock releases a lock acquired through Locker
type Unlock func()

// Locker provides exclusive critical sections keyed by string.
// Lock blocks until the lock is held or ctx is done.
type Locker interface {
	Lock(ctx context.Context, key string) (Unlock, error)
}

// Storage defines the interface for room and result persistence.
// Implementations return copies; mutating a returned record never changes stored state.
type Storage interface {
	Locker

	// Room operations
	GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) // waiting first, then active
	GetWaitingRoom(ctx context.Context, id model.RoomID) (*model.Room, error)
	GetActiveRoom(ctx context.Context, id model.RoomID) (*model.Room, error)
	SaveWaitingRoom(ctx context.Context, room *model.Room) error
	SaveActiveRoom(ctx context.Context, room *model.Room) error
	MoveWaitingToActive(ctx context.Context, room *model.Room) error
	ListWaitingRooms(ctx context.Context) ([]*model.Room, error) // oldest first
	ListActiveRooms(ctx context.Context) ([]*model.Room, error)  // oldest first

	// Result operations
	AppendResult(ctx context.Context, result *model.PlayerResult) error
	ListResultsForRoom(ctx context.Context, id model.RoomID) ([]*model.PlayerResult, error) // submission order

	// Debug operations
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// Snapshot is a point-in-time dump of every collection, used by the debug endpoint
type Snapshot struct {
	WaitingRooms []*model.Room         `json:"waitingRooms"`
	ActiveRooms  []*model.Room         `json:"activeRooms"`
	Results      []*model.PlayerResult `json:"results"`

	WaitingRoomCount int `json:"waitingRoomCount"`
	ActiveRoomCount  int `json:"activeRoomCount"`
	ResultCount      int `json:"resultCount"`
}
