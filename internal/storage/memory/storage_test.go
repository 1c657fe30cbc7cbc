package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/brewduel/internal/model"
	"github.com/mcoot/brewduel/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
	now     time.Time
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
	s.now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func (s *StorageSuite) waitingRoom(id string, player1 string, age time.Duration) *model.Room {
	return &model.Room{
		ID:        model.RoomID(id),
		Player1:   model.WalletID(player1),
		Status:    model.RoomStatusWaiting,
		CreatedAt: s.now.Add(-age),
	}
}

// Room tests

func (s *StorageSuite) TestSaveAndGetWaitingRoom() {
	room := s.waitingRoom("room-1", "alice", 0)

	err := s.storage.SaveWaitingRoom(s.ctx, room)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRoom(s.ctx, "room-1")
	s.Require().NoError(err)
	s.Equal(room.ID, retrieved.ID)
	s.Equal(model.WalletID("alice"), retrieved.Player1)

	retrieved, err = s.storage.GetWaitingRoom(s.ctx, "room-1")
	s.Require().NoError(err)
	s.Equal(room.ID, retrieved.ID)

	_, err = s.storage.GetActiveRoom(s.ctx, "room-1")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestGetRoomNotFound() {
	_, err := s.storage.GetRoom(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestReturnedRoomsAreCopies() {
	_ = s.storage.SaveWaitingRoom(s.ctx, s.waitingRoom("room-1", "alice", 0))

	retrieved, _ := s.storage.GetRoom(s.ctx, "room-1")
	retrieved.Status = model.RoomStatusCompleted

	again, _ := s.storage.GetRoom(s.ctx, "room-1")
	s.Equal(model.RoomStatusWaiting, again.Status)
}

func (s *StorageSuite) TestMoveWaitingToActiveKeepsID() {
	room := s.waitingRoom("room-1", "alice", 0)
	_ = s.storage.SaveWaitingRoom(s.ctx, room)

	p2 := model.WalletID("bob")
	room.Player2 = &p2
	room.Status = model.RoomStatusActive
	err := s.storage.MoveWaitingToActive(s.ctx, room)
	s.Require().NoError(err)

	_, err = s.storage.GetWaitingRoom(s.ctx, "room-1")
	s.ErrorIs(err, model.ErrRoomNotFound)

	active, err := s.storage.GetActiveRoom(s.ctx, "room-1")
	s.Require().NoError(err)
	s.Equal(model.RoomStatusActive, active.Status)
	s.Equal(p2, *active.Player2)

	waiting, _ := s.storage.ListWaitingRooms(s.ctx)
	s.Empty(waiting)
}

func (s *StorageSuite) TestMoveWaitingToActiveNotFound() {
	err := s.storage.MoveWaitingToActive(s.ctx, s.waitingRoom("ghost", "alice", 0))
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestListWaitingRoomsOldestFirst() {
	_ = s.storage.SaveWaitingRoom(s.ctx, s.waitingRoom("room-b", "bob", time.Minute))
	_ = s.storage.SaveWaitingRoom(s.ctx, s.waitingRoom("room-c", "carol", 0))
	_ = s.storage.SaveWaitingRoom(s.ctx, s.waitingRoom("room-a", "alice", time.Minute))

	rooms, err := s.storage.ListWaitingRooms(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(rooms, 3)
	// Equal ages fall back to id order
	s.Equal(model.RoomID("room-a"), rooms[0].ID)
	s.Equal(model.RoomID("room-b"), rooms[1].ID)
	s.Equal(model.RoomID("room-c"), rooms[2].ID)
}

func (s *StorageSuite) TestListActiveRooms() {
	_ = s.storage.SaveWaitingRoom(s.ctx, s.waitingRoom("room-1", "alice", 0))
	_ = s.storage.SaveActiveRoom(s.ctx, &model.Room{ID: "room-2", Player1: "bob", Status: model.RoomStatusActive})

	rooms, err := s.storage.ListActiveRooms(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(rooms, 1)
	s.Equal(model.RoomID("room-2"), rooms[0].ID)
}

// Result tests

func (s *StorageSuite) TestAppendResultNeverOverwrites() {
	result := &model.PlayerResult{RoomID: "room-1", WalletID: "alice", ResourceUsed: 100, Duration: 10, SubmittedAt: s.now}

	// Identical key material, including the timestamp
	s.Require().NoError(s.storage.AppendResult(s.ctx, result))
	s.Require().NoError(s.storage.AppendResult(s.ctx, result))

	results, err := s.storage.ListResultsForRoom(s.ctx, "room-1")
	s.Require().NoError(err)
	s.Len(results, 2)
}

func (s *StorageSuite) TestListResultsForRoomInSubmissionOrder() {
	_ = s.storage.AppendResult(s.ctx, &model.PlayerResult{RoomID: "room-1", WalletID: "alice", ResourceUsed: 1, SubmittedAt: s.now})
	_ = s.storage.AppendResult(s.ctx, &model.PlayerResult{RoomID: "room-2", WalletID: "carol", ResourceUsed: 9, SubmittedAt: s.now})
	_ = s.storage.AppendResult(s.ctx, &model.PlayerResult{RoomID: "room-1", WalletID: "bob", ResourceUsed: 2, SubmittedAt: s.now})

	results, err := s.storage.ListResultsForRoom(s.ctx, "room-1")
	s.Require().NoError(err)
	s.Require().Len(results, 2)
	s.Equal(model.WalletID("alice"), results[0].WalletID)
	s.Equal(model.WalletID("bob"), results[1].WalletID)
}

func (s *StorageSuite) TestListResultsForRoomEmpty() {
	results, err := s.storage.ListResultsForRoom(s.ctx, "nonexistent")
	s.Require().NoError(err)
	s.Empty(results)
}

// Snapshot tests

func (s *StorageSuite) TestSnapshotCounts() {
	_ = s.storage.SaveWaitingRoom(s.ctx, s.waitingRoom("room-1", "alice", 0))
	_ = s.storage.SaveActiveRoom(s.ctx, &model.Room{ID: "room-2", Player1: "bob", Status: model.RoomStatusActive})
	_ = s.storage.AppendResult(s.ctx, &model.PlayerResult{RoomID: "room-2", WalletID: "bob", SubmittedAt: s.now})

	snap, err := s.storage.Snapshot(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, snap.WaitingRoomCount)
	s.Equal(1, snap.ActiveRoomCount)
	s.Equal(1, snap.ResultCount)
}

// Lock tests

func (s *StorageSuite) TestLockIsExclusive() {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := s.storage.Lock(s.ctx, storage.RoomLockKey("room-1"))
			s.NoError(err)
			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			inside--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()
	s.Equal(1, maxSeen)
}

func (s *StorageSuite) TestLockRespectsContext() {
	unlock, err := s.storage.Lock(s.ctx, "busy")
	s.Require().NoError(err)
	defer unlock()

	ctx, cancel := context.WithTimeout(s.ctx, 10*time.Millisecond)
	defer cancel()
	_, err = s.storage.Lock(ctx, "busy")
	s.ErrorIs(err, model.ErrLockTimeout)
}

func (s *StorageSuite) TestLockDifferentKeysIndependent() {
	unlock, err := s.storage.Lock(s.ctx, "a")
	s.Require().NoError(err)
	defer unlock()

	ctx, cancel := context.WithTimeout(s.ctx, time.Second)
	defer cancel()
	unlockB, err := s.storage.Lock(ctx, "b")
	s.Require().NoError(err)
	unlockB()
}

func (s *StorageSuite) TestUnlockIsIdempotent() {
	unlock, err := s.storage.Lock(s.ctx, "a")
	s.Require().NoError(err)
	unlock()
	unlock()

	unlock, err = s.storage.Lock(s.ctx, "a")
	s.Require().NoError(err)
	unlock()
}
