package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	w      io.Writer
	format string
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(w io.Writer, format string) *Output {
	return &Output{w: w, format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case *JoinResult:
		o.printJoin(v)
	case *Room:
		o.printRoom(v)
	case []Room:
		o.printRooms(v)
	case *Submission:
		o.printSubmission(v)
	case *Outcome:
		o.printOutcome(v)
	case *DuelResult:
		o.printDuel(v)
	case *HealthResult:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// JoinResult response type (matches API)
type JoinResult struct {
	RoomID string `json:"roomId"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// Room response type
type Room struct {
	ID        string    `json:"id"`
	Player1   string    `json:"player1"`
	Player2   *string   `json:"player2"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Results   *Outcome  `json:"results,omitempty"`
}

// PlayerResult response type
type PlayerResult struct {
	WalletID     string    `json:"walletId"`
	ResourceUsed float64   `json:"resourceUsed"`
	Duration     float64   `json:"duration"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

// Outcome response type
type Outcome struct {
	Winner       string       `json:"winner"`
	Player1Score float64      `json:"player1Score"`
	Player2Score float64      `json:"player2Score"`
	Margin       float64      `json:"margin"`
	Player1      PlayerResult `json:"player1"`
	Player2      PlayerResult `json:"player2"`
	CompletedAt  time.Time    `json:"completedAt"`
}

// Submission response type
type Submission struct {
	Status  string   `json:"status"`
	Winner  string   `json:"winner,omitempty"`
	Results *Outcome `json:"results,omitempty"`
	Message string   `json:"message,omitempty"`
}

// DuelResult summarises a duel driven by the CLI
type DuelResult struct {
	RoomID  string      `json:"roomId"`
	Player1 string      `json:"player1"`
	Player2 string      `json:"player2"`
	Result  *Submission `json:"result"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printJoin(j *JoinResult) {
	fmt.Fprintf(o.w, "Room: %s\n", j.RoomID)
	fmt.Fprintf(o.w, "Role: %s\n", j.Role)
	fmt.Fprintf(o.w, "Status: %s\n", j.Status)
}

func (o *Output) printRoom(r *Room) {
	fmt.Fprintf(o.w, "Room: %s\n", r.ID)
	fmt.Fprintf(o.w, "Status: %s\n", r.Status)
	fmt.Fprintf(o.w, "Player 1: %s\n", r.Player1)
	if r.Player2 != nil {
		fmt.Fprintf(o.w, "Player 2: %s\n", *r.Player2)
	} else {
		fmt.Fprintln(o.w, "Player 2: (waiting)")
	}
	fmt.Fprintf(o.w, "Created: %s\n", r.CreatedAt.Format(time.RFC3339))
	if r.Results != nil {
		fmt.Fprintln(o.w)
		o.printOutcome(r.Results)
	}
}

func (o *Output) printRooms(rooms []Room) {
	if len(rooms) == 0 {
		fmt.Fprintln(o.w, "No active rooms")
		return
	}
	fmt.Fprintf(o.w, "Active rooms (%d):\n", len(rooms))
	for _, r := range rooms {
		p2 := "-"
		if r.Player2 != nil {
			p2 = *r.Player2
		}
		fmt.Fprintf(o.w, "  - %s [%s] %s vs %s\n", r.ID, r.Status, r.Player1, p2)
	}
}

func (o *Output) printSubmission(s *Submission) {
	fmt.Fprintf(o.w, "Status: %s\n", s.Status)
	if s.Message != "" {
		fmt.Fprintf(o.w, "Message: %s\n", s.Message)
	}
	if s.Results != nil {
		fmt.Fprintln(o.w)
		o.printOutcome(s.Results)
	}
}

func (o *Output) printOutcome(r *Outcome) {
	fmt.Fprintf(o.w, "Winner: %s\n", r.Winner)
	fmt.Fprintf(o.w, "  player1 %s: %.2f (resource %.2f, %.2fs)\n",
		r.Player1.WalletID, r.Player1Score, r.Player1.ResourceUsed, r.Player1.Duration)
	fmt.Fprintf(o.w, "  player2 %s: %.2f (resource %.2f, %.2fs)\n",
		r.Player2.WalletID, r.Player2Score, r.Player2.ResourceUsed, r.Player2.Duration)
	fmt.Fprintf(o.w, "Margin: %.2f\n", r.Margin)
}

func (o *Output) printDuel(d *DuelResult) {
	fmt.Fprintf(o.w, "Duel in room %s: %s vs %s\n", d.RoomID, d.Player1, d.Player2)
	o.printSubmission(d.Result)
}
