package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mcoot/brewduel/internal/model"
	"github.com/mcoot/brewduel/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// State lives for the lifetime of the process; rooms are never expired.
type Storage struct {
	mu sync.RWMutex

	waitingRooms map[model.RoomID]*model.Room
	activeRooms  map[model.RoomID]*model.Room
	results      map[resultKey]*model.PlayerResult
	nextSeq      uint64

	locks *keyedMutex
}

// resultKey is unique per submission, so resubmissions never overwrite history
type resultKey struct {
	roomID      model.RoomID
	walletID    model.WalletID
	submittedAt int64
	seq         uint64
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		waitingRooms: make(map[model.RoomID]*model.Room),
		activeRooms:  make(map[model.RoomID]*model.Room),
		results:      make(map[resultKey]*model.PlayerResult),
		locks:        newKeyedMutex(),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Lock acquires a process-local lock for key
func (s *Storage) Lock(ctx context.Context, key string) (storage.Unlock, error) {
	return s.locks.Lock(ctx, key)
}

// Room operations

func (s *Storage) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if room, ok := s.waitingRooms[id]; ok {
		return room.Clone(), nil
	}
	if room, ok := s.activeRooms[id]; ok {
		return room.Clone(), nil
	}
	return nil, model.ErrRoomNotFound
}

func (s *Storage) GetWaitingRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.waitingRooms[id]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return room.Clone(), nil
}

func (s *Storage) GetActiveRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.activeRooms[id]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return room.Clone(), nil
}

func (s *Storage) SaveWaitingRoom(ctx context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.activeRooms, room.ID)
	s.waitingRooms[room.ID] = room.Clone()
	return nil
}

func (s *Storage) SaveActiveRoom(ctx context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.waitingRooms, room.ID)
	s.activeRooms[room.ID] = room.Clone()
	return nil
}

func (s *Storage) MoveWaitingToActive(ctx context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, waiting := s.waitingRooms[room.ID]
	_, active := s.activeRooms[room.ID]
	if !waiting && !active {
		return model.ErrRoomNotFound
	}
	delete(s.waitingRooms, room.ID)
	s.activeRooms[room.ID] = room.Clone()
	return nil
}

func (s *Storage) ListWaitingRooms(ctx context.Context) ([]*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRooms(s.waitingRooms), nil
}

func (s *Storage) ListActiveRooms(ctx context.Context) ([]*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRooms(s.activeRooms), nil
}

func cloneRooms(rooms map[model.RoomID]*model.Room) []*model.Room {
	out := make([]*model.Room, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, room.Clone())
	}
	storage.SortRoomsByAge(out)
	return out
}

// Result operations

func (s *Storage) AppendResult(ctx context.Context, result *model.PlayerResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	key := resultKey{
		roomID:      result.RoomID,
		walletID:    result.WalletID,
		submittedAt: result.SubmittedAt.UnixNano(),
		seq:         s.nextSeq,
	}
	stored := *result
	s.results[key] = &stored
	return nil
}

func (s *Storage) ListResultsForRoom(ctx context.Context, id model.RoomID) ([]*model.PlayerResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var keys []resultKey
	for key := range s.results {
		if key.roomID == id {
			keys = append(keys, key)
		}
	}
	return s.resultsInOrder(keys), nil
}

// resultsInOrder returns copies of the results under keys, in submission order
func (s *Storage) resultsInOrder(keys []resultKey) []*model.PlayerResult {
	sort.Slice(keys, func(i, j int) bool { return keys[i].seq < keys[j].seq })
	out := make([]*model.PlayerResult, 0, len(keys))
	for _, key := range keys {
		r := *s.results[key]
		out = append(out, &r)
	}
	return out
}

// Debug operations

func (s *Storage) Snapshot(ctx context.Context) (*storage.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]resultKey, 0, len(s.results))
	for key := range s.results {
		keys = append(keys, key)
	}
	snap := &storage.Snapshot{
		WaitingRooms: cloneRooms(s.waitingRooms),
		ActiveRooms:  cloneRooms(s.activeRooms),
		Results:      s.resultsInOrder(keys),
	}
	snap.WaitingRoomCount = len(snap.WaitingRooms)
	snap.ActiveRoomCount = len(snap.ActiveRooms)
	snap.ResultCount = len(snap.Results)
	return snap, nil
}
