package results

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mcoot/brewduel/internal/dependencies/clock"
	"github.com/mcoot/brewduel/internal/model"
	"github.com/mcoot/brewduel/internal/services/scoring"
	"github.com/mcoot/brewduel/internal/storage"
	"github.com/mcoot/brewduel/internal/wallet"
)

// Messages attached to submission outcomes
const (
	MessageCompleted          = "Match completed"
	MessageAlreadyCompleted   = "Match already completed"
	MessageWaitingForOpponent = "Waiting for opponent to submit results"
	MessageRoomNotFound       = "Result submitted successfully (room not found)"
)

// SubmitRequest carries one wallet's metrics for a room.
// Metrics are pointers so a missing field can be told apart from zero.
type SubmitRequest struct {
	RoomID       model.RoomID
	WalletID     string
	ResourceUsed *float64
	Duration     *float64
}

// Controller records player results and arbitrates rooms once both players have reported
type Controller struct {
	storage     storage.Storage
	scoring     *scoring.Service
	clock       clock.Clock
	logger      *slog.Logger
	lockTimeout time.Duration
}

// NewController creates a new results Controller
func NewController(
	storage storage.Storage,
	scoringService *scoring.Service,
	clock clock.Clock,
	logger *slog.Logger,
	lockTimeout time.Duration,
) *Controller {
	return &Controller{
		storage:     storage,
		scoring:     scoringService,
		clock:       clock,
		logger:      logger,
		lockTimeout: lockTimeout,
	}
}

// Submit records a result and, if both bound players have now reported, completes the room.
// The result is appended before arbitration and stays recorded even if a later step fails.
func (c *Controller) Submit(ctx context.Context, req SubmitRequest) (*model.SubmissionOutcome, error) {
	result, err := c.validate(req)
	if err != nil {
		return nil, err
	}

	var outcome *model.SubmissionOutcome
	err = storage.WithLock(ctx, c.storage, storage.RoomLockKey(result.RoomID), c.lockTimeout, func() error {
		var err error
		outcome, err = c.submit(ctx, result)
		return err
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

func (c *Controller) validate(req SubmitRequest) (*model.PlayerResult, error) {
	roomID := model.RoomID(strings.TrimSpace(string(req.RoomID)))
	if roomID == "" {
		return nil, fmt.Errorf("%w: roomId is required", model.ErrInvalidRequest)
	}
	walletID, err := wallet.Normalize(req.WalletID)
	if err != nil {
		return nil, err
	}
	if req.ResourceUsed == nil {
		return nil, fmt.Errorf("%w: resourceUsed is required", model.ErrInvalidRequest)
	}
	if req.Duration == nil {
		return nil, fmt.Errorf("%w: duration is required", model.ErrInvalidRequest)
	}
	if err := c.scoring.ValidateMetrics(*req.ResourceUsed, *req.Duration); err != nil {
		return nil, err
	}

	return &model.PlayerResult{
		RoomID:       roomID,
		WalletID:     walletID,
		ResourceUsed: *req.ResourceUsed,
		Duration:     *req.Duration,
	}, nil
}

// submit must be called while holding the room lock
func (c *Controller) submit(ctx context.Context, result *model.PlayerResult) (*model.SubmissionOutcome, error) {
	now := c.clock.Now()
	result.SubmittedAt = now

	if err := c.storage.AppendResult(ctx, result); err != nil {
		return nil, err
	}

	room, err := c.storage.GetRoom(ctx, result.RoomID)
	if errors.Is(err, model.ErrRoomNotFound) {
		c.logger.Warn("result submitted for unknown room",
			slog.String("room_id", string(result.RoomID)),
			slog.String("wallet_id", string(result.WalletID)))
		return &model.SubmissionOutcome{
			Status:  model.SubmissionSubmitted,
			Message: MessageRoomNotFound,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	if room.IsCompleted() {
		return completedOutcome(room.Results, MessageAlreadyCompleted), nil
	}

	if room.Status == model.RoomStatusWaiting {
		// Still waiting for a second player but a result arrived anyway
		room.Status = model.RoomStatusActive
		room.UpdatedAt = now
		if err := c.storage.MoveWaitingToActive(ctx, room); err != nil {
			return nil, err
		}
		c.logger.Info("waiting room promoted by result",
			slog.String("room_id", string(room.ID)))
	}

	submissions, err := c.storage.ListResultsForRoom(ctx, room.ID)
	if err != nil {
		return nil, err
	}

	player1, player2 := LatestForPlayers(room, submissions)
	if player1 == nil || player2 == nil {
		return &model.SubmissionOutcome{
			Status:  model.SubmissionWaitingForOpponent,
			Message: MessageWaitingForOpponent,
		}, nil
	}

	outcome := c.scoring.Arbitrate(*player1, *player2, now)
	room.Results = outcome
	room.Status = model.RoomStatusCompleted
	room.UpdatedAt = now
	if err := c.storage.SaveActiveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.logger.Info("room completed",
		slog.String("room_id", string(room.ID)),
		slog.String("winner", string(outcome.Winner)),
		slog.Float64("margin", outcome.Margin))

	return completedOutcome(outcome, MessageCompleted), nil
}

// LatestForPlayers picks the most recent submission of each wallet bound to the room.
// Submissions must be in submission order. Results from unbound wallets are ignored.
func LatestForPlayers(room *model.Room, submissions []*model.PlayerResult) (player1, player2 *model.PlayerResult) {
	for _, sub := range submissions {
		role, ok := room.RoleOf(sub.WalletID)
		if !ok {
			continue
		}
		switch role {
		case model.RolePlayer1:
			player1 = sub
		case model.RolePlayer2:
			player2 = sub
		}
	}
	return player1, player2
}

func completedOutcome(outcome *model.ArbitrationOutcome, message string) *model.SubmissionOutcome {
	return &model.SubmissionOutcome{
		Status:  model.SubmissionCompleted,
		Winner:  outcome.Winner,
		Results: outcome,
		Message: message,
	}
}
