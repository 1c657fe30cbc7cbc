package rooms

import (
	"context"
	"fmt"
	"strings"

	"github.com/mcoot/brewduel/internal/model"
	"github.com/mcoot/brewduel/internal/storage"
)

// Service answers read-only queries about rooms and their outcomes
type Service struct {
	storage storage.Storage
}

// New creates a new room query Service
func New(storage storage.Storage) *Service {
	return &Service{storage: storage}
}

// GetRoom returns a room from either collection
func (s *Service) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	id, err := requireRoomID(id)
	if err != nil {
		return nil, err
	}
	return s.storage.GetRoom(ctx, id)
}

// ListActiveRooms returns every room that has left the waiting collection, oldest first
func (s *Service) ListActiveRooms(ctx context.Context) ([]*model.Room, error) {
	rooms, err := s.storage.ListActiveRooms(ctx)
	if err != nil {
		return nil, err
	}
	storage.SortRoomsByAge(rooms)
	return rooms, nil
}

// GetResults returns the arbitrated outcome of a room
func (s *Service) GetResults(ctx context.Context, id model.RoomID) (*model.ArbitrationOutcome, error) {
	id, err := requireRoomID(id)
	if err != nil {
		return nil, err
	}

	room, err := s.storage.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	if !room.IsCompleted() {
		return nil, fmt.Errorf("%w: room %s has no outcome yet", model.ErrResultsNotReady, id)
	}
	return room.Results, nil
}

// Snapshot dumps every collection for debugging
func (s *Service) Snapshot(ctx context.Context) (*storage.Snapshot, error) {
	return s.storage.Snapshot(ctx)
}

func requireRoomID(id model.RoomID) (model.RoomID, error) {
	id = model.RoomID(strings.TrimSpace(string(id)))
	if id == "" {
		return "", fmt.Errorf("%w: room id required", model.ErrInvalidRequest)
	}
	return id, nil
}
