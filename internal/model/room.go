package model

import "time"

// RoomID uniquely identifies a room for its whole lifecycle
type RoomID string

// WalletID is the opaque identifier of a player's wallet
type WalletID string

// RoomStatus represents where a room is in its lifecycle
type RoomStatus string

const (
	RoomStatusWaiting   RoomStatus = "waiting"   // Only player1 bound
	RoomStatusActive    RoomStatus = "active"    // Both players bound, match in progress
	RoomStatusCompleted RoomStatus = "completed" // Outcome arbitrated
)

// PlayerRole is the seat a wallet occupies in a room
type PlayerRole string

const (
	RolePlayer1 PlayerRole = "player1"
	RolePlayer2 PlayerRole = "player2"
)

// JoinStatus is reported back to a joining wallet
type JoinStatus string

const (
	JoinStatusWaiting JoinStatus = "waiting"
	JoinStatusMatched JoinStatus = "matched"
)

// Room pairs up to two wallets for a single match
type Room struct {
	ID        RoomID              `json:"id"`
	Player1   WalletID            `json:"player1"`
	Player2   *WalletID           `json:"player2"` // nil until a second wallet joins
	Status    RoomStatus          `json:"status"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
	Results   *ArbitrationOutcome `json:"results,omitempty"` // nil until arbitrated
}

// HasPlayer2 returns true once a second wallet is bound
func (r *Room) HasPlayer2() bool {
	return r.Player2 != nil && *r.Player2 != ""
}

// RoleOf returns the seat held by the wallet, or false if it is not bound to the room
func (r *Room) RoleOf(wallet WalletID) (PlayerRole, bool) {
	switch {
	case r.Player1 == wallet:
		return RolePlayer1, true
	case r.HasPlayer2() && *r.Player2 == wallet:
		return RolePlayer2, true
	default:
		return "", false
	}
}

// IsCompleted returns true once an outcome has been attached
func (r *Room) IsCompleted() bool {
	return r.Results != nil
}

// Clone returns a deep copy so stores never share state with callers
func (r *Room) Clone() *Room {
	if r == nil {
		return nil
	}
	c := *r
	if r.Player2 != nil {
		p2 := *r.Player2
		c.Player2 = &p2
	}
	if r.Results != nil {
		res := *r.Results
		c.Results = &res
	}
	return &c
}

// JoinResult is returned to a wallet entering matchmaking
type JoinResult struct {
	RoomID RoomID     `json:"roomId"`
	Role   PlayerRole `json:"role"`
	Status JoinStatus `json:"status"`
}
