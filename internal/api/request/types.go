package request

// JoinRequest is the request body for entering matchmaking
type JoinRequest struct {
	WalletID string `json:"walletId"`
}

// SubmitResultRequest is the request body for reporting match metrics
type SubmitResultRequest struct {
	RoomID       string   `json:"roomId"`
	WalletID     string   `json:"walletId"`
	ResourceUsed *float64 `json:"resourceUsed"`
	Duration     *float64 `json:"duration"`

	// TotalManaUsed is the older client's name for ResourceUsed
	TotalManaUsed *float64 `json:"totalManaUsed,omitempty"`
}

// Resource returns the reported resource usage, preferring resourceUsed over its alias
func (r SubmitResultRequest) Resource() *float64 {
	if r.ResourceUsed != nil {
		return r.ResourceUsed
	}
	return r.TotalManaUsed
}
