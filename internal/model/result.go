package model

import "time"

// PlayerResult is a single metrics submission from one wallet for one room.
// Entries are append-only; a wallet may submit more than once.
type PlayerResult struct {
	RoomID       RoomID    `json:"roomId"`
	WalletID     WalletID  `json:"walletId"`
	ResourceUsed float64   `json:"resourceUsed"`
	Duration     float64   `json:"duration"` // seconds
	SubmittedAt  time.Time `json:"submittedAt"`
}

// Winner names the winning seat of an arbitrated room
type Winner string

const (
	WinnerPlayer1 Winner = "player1"
	WinnerPlayer2 Winner = "player2"
	WinnerTie     Winner = "tie"
)

// ArbitrationOutcome is computed once per room and never changes afterwards
type ArbitrationOutcome struct {
	Winner       Winner       `json:"winner"`
	Player1Score float64      `json:"player1Score"`
	Player2Score float64      `json:"player2Score"`
	Margin       float64      `json:"margin"`
	Player1      PlayerResult `json:"player1"`
	Player2      PlayerResult `json:"player2"`
	CompletedAt  time.Time    `json:"completedAt"`
}

// SubmissionStatus describes what happened to a submitted result
type SubmissionStatus string

const (
	SubmissionCompleted          SubmissionStatus = "completed"
	SubmissionWaitingForOpponent SubmissionStatus = "waiting_for_opponent"
	SubmissionSubmitted          SubmissionStatus = "submitted" // Recorded, but no room to arbitrate against
)

// SubmissionOutcome is returned from a result submission
type SubmissionOutcome struct {
	Status  SubmissionStatus
	Winner  Winner              // Empty unless completed
	Results *ArbitrationOutcome // nil unless completed
	Message string
}
