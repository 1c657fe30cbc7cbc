package response

import (
	"time"

	"github.com/mcoot/brewduel/internal/model"
	"github.com/mcoot/brewduel/internal/storage"
)

// Join is the response to entering matchmaking
type Join struct {
	RoomID string `json:"roomId"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// JoinFromModel converts a model.JoinResult
func JoinFromModel(j *model.JoinResult) Join {
	return Join{
		RoomID: string(j.RoomID),
		Role:   string(j.Role),
		Status: string(j.Status),
	}
}

// Room represents a room in API responses
type Room struct {
	ID        string    `json:"id"`
	Player1   string    `json:"player1"`
	Player2   *string   `json:"player2"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Results   *Outcome  `json:"results,omitempty"`
}

// RoomFromModel converts a model.Room
func RoomFromModel(r *model.Room) Room {
	room := Room{
		ID:        string(r.ID),
		Player1:   string(r.Player1),
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.HasPlayer2() {
		p2 := string(*r.Player2)
		room.Player2 = &p2
	}
	if r.Results != nil {
		outcome := OutcomeFromModel(r.Results)
		room.Results = &outcome
	}
	return room
}

// RoomsFromModel converts a list of rooms, never returning nil
func RoomsFromModel(rooms []*model.Room) []Room {
	out := make([]Room, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, RoomFromModel(r))
	}
	return out
}

// PlayerResult represents one submission
type PlayerResult struct {
	RoomID       string    `json:"roomId"`
	WalletID     string    `json:"walletId"`
	ResourceUsed float64   `json:"resourceUsed"`
	Duration     float64   `json:"duration"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

// PlayerResultFromModel converts a model.PlayerResult
func PlayerResultFromModel(p *model.PlayerResult) PlayerResult {
	return PlayerResult{
		RoomID:       string(p.RoomID),
		WalletID:     string(p.WalletID),
		ResourceUsed: p.ResourceUsed,
		Duration:     p.Duration,
		SubmittedAt:  p.SubmittedAt,
	}
}

// Outcome is the arbitrated result of a room
type Outcome struct {
	Winner       string       `json:"winner"`
	Player1Score float64      `json:"player1Score"`
	Player2Score float64      `json:"player2Score"`
	Margin       float64      `json:"margin"`
	Player1      PlayerResult `json:"player1"`
	Player2      PlayerResult `json:"player2"`
	CompletedAt  time.Time    `json:"completedAt"`
}

// OutcomeFromModel converts a model.ArbitrationOutcome
func OutcomeFromModel(o *model.ArbitrationOutcome) Outcome {
	return Outcome{
		Winner:       string(o.Winner),
		Player1Score: o.Player1Score,
		Player2Score: o.Player2Score,
		Margin:       o.Margin,
		Player1:      PlayerResultFromModel(&o.Player1),
		Player2:      PlayerResultFromModel(&o.Player2),
		CompletedAt:  o.CompletedAt,
	}
}

// Submission is the response to a result submission
type Submission struct {
	Status  string   `json:"status"`
	Winner  string   `json:"winner,omitempty"`
	Results *Outcome `json:"results,omitempty"`
	Message string   `json:"message,omitempty"`
}

// SubmissionFromModel converts a model.SubmissionOutcome
func SubmissionFromModel(s *model.SubmissionOutcome) Submission {
	sub := Submission{
		Status:  string(s.Status),
		Winner:  string(s.Winner),
		Message: s.Message,
	}
	if s.Results != nil {
		outcome := OutcomeFromModel(s.Results)
		sub.Results = &outcome
	}
	return sub
}

// StorageSnapshot is the debug dump of every collection
type StorageSnapshot struct {
	WaitingRooms []Room         `json:"waitingRooms"`
	ActiveRooms  []Room         `json:"activeRooms"`
	Results      []PlayerResult `json:"results"`
	Counts       SnapshotCounts `json:"counts"`
}

// SnapshotCounts summarises a StorageSnapshot
type SnapshotCounts struct {
	WaitingRooms int `json:"waitingRooms"`
	ActiveRooms  int `json:"activeRooms"`
	Results      int `json:"results"`
}

// StorageSnapshotFromModel converts a storage.Snapshot
func StorageSnapshotFromModel(s *storage.Snapshot) StorageSnapshot {
	results := make([]PlayerResult, 0, len(s.Results))
	for _, r := range s.Results {
		results = append(results, PlayerResultFromModel(r))
	}
	return StorageSnapshot{
		WaitingRooms: RoomsFromModel(s.WaitingRooms),
		ActiveRooms:  RoomsFromModel(s.ActiveRooms),
		Results:      results,
		Counts: SnapshotCounts{
			WaitingRooms: s.WaitingRoomCount,
			ActiveRooms:  s.ActiveRoomCount,
			Results:      s.ResultCount,
		},
	}
}

// Health is the response of the health endpoint
type Health struct {
	Status string `json:"status"`
}
