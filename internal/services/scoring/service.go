package scoring

import (
	"fmt"
	"math"
	"time"

	"github.com/mcoot/brewduel/internal/model"
)

// Weights of the efficiency formula: score = ResourceWeight/resourceUsed + DurationWeight/duration
const (
	ResourceWeight = 1000.0
	DurationWeight = 500.0
)

// Service scores player submissions and arbitrates a winner between two of them
type Service struct{}

// New creates a new ScoringService
func New() *Service {
	return &Service{}
}

// ValidateMetrics rejects metrics the formula cannot score. Both values must be
// finite and strictly positive, and small enough values that overflow the score are refused.
func (s *Service) ValidateMetrics(resourceUsed, duration float64) error {
	if !isPositiveFinite(resourceUsed) || !isFinite(ResourceWeight/resourceUsed) {
		return fmt.Errorf("%w: resourceUsed must be a positive number", model.ErrInvalidRequest)
	}
	if !isPositiveFinite(duration) || !isFinite(DurationWeight/duration) {
		return fmt.Errorf("%w: duration must be a positive number of seconds", model.ErrInvalidRequest)
	}
	if !isFinite(score(resourceUsed, duration)) {
		return fmt.Errorf("%w: metrics are too small to score", model.ErrInvalidRequest)
	}
	return nil
}

func isPositiveFinite(v float64) bool {
	return v > 0 && isFinite(v)
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

func score(resourceUsed, duration float64) float64 {
	return ResourceWeight/resourceUsed + DurationWeight/duration
}

// Score calculates the efficiency score of a single submission. Higher is better.
func (s *Service) Score(result model.PlayerResult) float64 {
	return score(result.ResourceUsed, result.Duration)
}

// Arbitrate compares player1's and player2's submissions.
// A strictly greater score wins; equal scores are a tie with zero margin.
func (s *Service) Arbitrate(player1, player2 model.PlayerResult, completedAt time.Time) *model.ArbitrationOutcome {
	p1Score := s.Score(player1)
	p2Score := s.Score(player2)

	outcome := &model.ArbitrationOutcome{
		Player1Score: p1Score,
		Player2Score: p2Score,
		Player1:      player1,
		Player2:      player2,
		CompletedAt:  completedAt,
	}

	switch {
	case p1Score > p2Score:
		outcome.Winner = model.WinnerPlayer1
		outcome.Margin = p1Score - p2Score
	case p2Score > p1Score:
		outcome.Winner = model.WinnerPlayer2
		outcome.Margin = p2Score - p1Score
	default:
		outcome.Winner = model.WinnerTie
		outcome.Margin = 0
	}

	return outcome
}
