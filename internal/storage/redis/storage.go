package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/brewduel/internal/model"
	"github.com/mcoot/brewduel/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Several server processes may share one Redis; locks are shared too.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	defaults := DefaultConfig()
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = defaults.LockTTL
	}
	if cfg.LockRetryInterval <= 0 {
		cfg.LockRetryInterval = defaults.LockRetryInterval
	}
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Room operations

func (s *Storage) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	room, err := s.GetWaitingRoom(ctx, id)
	if err == nil || !errors.Is(err, model.ErrRoomNotFound) {
		return room, err
	}
	return s.GetActiveRoom(ctx, id)
}

func (s *Storage) GetWaitingRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	return s.getRoom(ctx, waitingRoomKey(id))
}

func (s *Storage) GetActiveRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	return s.getRoom(ctx, activeRoomKey(id))
}

func (s *Storage) getRoom(ctx context.Context, key string) (*model.Room, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRoomNotFound
		}
		return nil, err
	}

	var room model.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *Storage) SaveWaitingRoom(ctx context.Context, room *model.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return err
	}

	// A room lives in exactly one collection
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, activeRoomKey(room.ID))
		pipe.ZRem(ctx, activeIndexKey(), string(room.ID))
		s.putRoom(ctx, pipe, waitingRoomKey(room.ID), waitingIndexKey(), room, data)
		return nil
	})
	return err
}

func (s *Storage) SaveActiveRoom(ctx context.Context, room *model.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, waitingRoomKey(room.ID))
		pipe.ZRem(ctx, waitingIndexKey(), string(room.ID))
		s.putRoom(ctx, pipe, activeRoomKey(room.ID), activeIndexKey(), room, data)
		return nil
	})
	return err
}

func (s *Storage) MoveWaitingToActive(ctx context.Context, room *model.Room) error {
	exists, err := s.client.Exists(ctx, waitingRoomKey(room.ID), activeRoomKey(room.ID)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrRoomNotFound
	}
	return s.SaveActiveRoom(ctx, room)
}

// putRoom queues the record write and index update for a room
func (s *Storage) putRoom(ctx context.Context, pipe redis.Pipeliner, key, indexKey string, room *model.Room, data []byte) {
	pipe.Set(ctx, key, data, s.cfg.RoomTTL)
	pipe.ZAdd(ctx, indexKey, redis.Z{
		Score:  float64(room.CreatedAt.UnixMilli()),
		Member: string(room.ID),
	})
	if s.cfg.RoomTTL > 0 {
		pipe.Expire(ctx, indexKey, s.cfg.RoomTTL) // Keep index TTL in sync
	}
}

func (s *Storage) ListWaitingRooms(ctx context.Context) ([]*model.Room, error) {
	return s.listRooms(ctx, waitingIndexKey(), waitingRoomKey)
}

func (s *Storage) ListActiveRooms(ctx context.Context) ([]*model.Room, error) {
	return s.listRooms(ctx, activeIndexKey(), activeRoomKey)
}

func (s *Storage) listRooms(ctx context.Context, indexKey string, keyFor func(model.RoomID) string) ([]*model.Room, error) {
	ids, err := s.client.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return []*model.Room{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = keyFor(model.RoomID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	rooms := make([]*model.Room, 0, len(values))
	var expired []any
	for i, val := range values {
		str, ok := val.(string)
		if !ok {
			expired = append(expired, ids[i]) // Record expired, index entry is stale
			continue
		}
		var room model.Room
		if err := json.Unmarshal([]byte(str), &room); err != nil {
			continue // Skip invalid data
		}
		rooms = append(rooms, &room)
	}

	if len(expired) > 0 {
		_ = s.client.ZRem(ctx, indexKey, expired...).Err()
	}

	storage.SortRoomsByAge(rooms)
	return rooms, nil
}

// Result operations

func (s *Storage) AppendResult(ctx context.Context, result *model.PlayerResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	key := resultsKey(result.RoomID)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, data)
		pipe.SAdd(ctx, resultRoomsIndexKey(), string(result.RoomID))
		if s.cfg.ResultTTL > 0 {
			pipe.Expire(ctx, key, s.cfg.ResultTTL)
			pipe.Expire(ctx, resultRoomsIndexKey(), s.cfg.ResultTTL)
		}
		return nil
	})
	return err
}

func (s *Storage) ListResultsForRoom(ctx context.Context, id model.RoomID) ([]*model.PlayerResult, error) {
	values, err := s.client.LRange(ctx, resultsKey(id), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	results := make([]*model.PlayerResult, 0, len(values))
	for _, val := range values {
		var result model.PlayerResult
		if err := json.Unmarshal([]byte(val), &result); err != nil {
			continue // Skip invalid data
		}
		results = append(results, &result)
	}
	return results, nil
}

// Debug operations

func (s *Storage) Snapshot(ctx context.Context) (*storage.Snapshot, error) {
	waiting, err := s.ListWaitingRooms(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.ListActiveRooms(ctx)
	if err != nil {
		return nil, err
	}

	roomIDs, err := s.client.SMembers(ctx, resultRoomsIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	results := []*model.PlayerResult{}
	for _, id := range roomIDs {
		roomResults, err := s.ListResultsForRoom(ctx, model.RoomID(id))
		if err != nil {
			return nil, err
		}
		results = append(results, roomResults...)
	}

	return &storage.Snapshot{
		WaitingRooms:     waiting,
		ActiveRooms:      active,
		Results:          results,
		WaitingRoomCount: len(waiting),
		ActiveRoomCount:  len(active),
		ResultCount:      len(results),
	}, nil
}
