package matchmaker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mcoot/brewduel/internal/dependencies/clock"
	"github.com/mcoot/brewduel/internal/dependencies/random"
	"github.com/mcoot/brewduel/internal/model"
	"github.com/mcoot/brewduel/internal/storage"
	"github.com/mcoot/brewduel/internal/wallet"
)

// RoomIDPrefix is prepended to the generated UUID of every new room
const RoomIDPrefix = "room_"

// Controller pairs wallets into rooms
type Controller struct {
	storage     storage.Storage
	clock       clock.Clock
	random      random.Random
	logger      *slog.Logger
	lockTimeout time.Duration
}

// NewController creates a new matchmaking Controller
func NewController(
	storage storage.Storage,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
	lockTimeout time.Duration,
) *Controller {
	return &Controller{
		storage:     storage,
		clock:       clock,
		random:      random,
		logger:      logger,
		lockTimeout: lockTimeout,
	}
}

// Join places a wallet into the oldest waiting room, or opens a new room if none is available
func (c *Controller) Join(ctx context.Context, rawWalletID string) (*model.JoinResult, error) {
	walletID, err := wallet.Normalize(rawWalletID)
	if err != nil {
		return nil, err
	}

	var result *model.JoinResult
	err = storage.WithLock(ctx, c.storage, storage.MatchmakingLockKey, c.lockTimeout, func() error {
		var err error
		result, err = c.join(ctx, walletID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// join must be called while holding the matchmaking lock
func (c *Controller) join(ctx context.Context, walletID model.WalletID) (*model.JoinResult, error) {
	waiting, err := c.storage.ListWaitingRooms(ctx)
	if err != nil {
		return nil, err
	}
	storage.SortRoomsByAge(waiting)

	// A wallet that is already waiting gets its own room back
	for _, room := range waiting {
		if room.Status == model.RoomStatusWaiting && room.Player1 == walletID {
			return &model.JoinResult{
				RoomID: room.ID,
				Role:   model.RolePlayer1,
				Status: model.JoinStatusWaiting,
			}, nil
		}
	}

	for _, candidate := range waiting {
		if candidate.Status != model.RoomStatusWaiting || candidate.HasPlayer2() {
			continue
		}
		matched, err := c.tryMatch(ctx, candidate.ID, walletID)
		if err != nil {
			return nil, err
		}
		if matched {
			return &model.JoinResult{
				RoomID: candidate.ID,
				Role:   model.RolePlayer2,
				Status: model.JoinStatusMatched,
			}, nil
		}
	}

	return c.createRoom(ctx, walletID)
}

// tryMatch binds walletID as player2 of the given room. It reports false if the
// room stopped waiting between listing and locking.
func (c *Controller) tryMatch(ctx context.Context, id model.RoomID, walletID model.WalletID) (bool, error) {
	matched := false
	err := storage.WithLock(ctx, c.storage, storage.RoomLockKey(id), c.lockTimeout, func() error {
		room, err := c.storage.GetWaitingRoom(ctx, id)
		if errors.Is(err, model.ErrRoomNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if room.Status != model.RoomStatusWaiting || room.HasPlayer2() || room.Player1 == walletID {
			return nil
		}

		player2 := walletID
		room.Player2 = &player2
		room.Status = model.RoomStatusActive
		room.UpdatedAt = c.clock.Now()

		if err := c.storage.MoveWaitingToActive(ctx, room); err != nil {
			return err
		}
		matched = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if matched {
		c.logger.Info("room matched",
			slog.String("room_id", string(id)),
			slog.String("player2", string(walletID)))
	}
	return matched, nil
}

func (c *Controller) createRoom(ctx context.Context, walletID model.WalletID) (*model.JoinResult, error) {
	now := c.clock.Now()
	room := &model.Room{
		ID:        model.RoomID(RoomIDPrefix + c.random.UUID()),
		Player1:   walletID,
		Status:    model.RoomStatusWaiting,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SaveWaitingRoom(ctx, room); err != nil {
		return nil, err
	}

	c.logger.Info("room created",
		slog.String("room_id", string(room.ID)),
		slog.String("player1", string(walletID)))

	return &model.JoinResult{
		RoomID: room.ID,
		Role:   model.RolePlayer1,
		Status: model.JoinStatusWaiting,
	}, nil
}
