package model

import "errors"

// Common errors used across the application
var (
	// Request errors
	ErrInvalidRequest = errors.New("invalid request")

	// Room errors
	ErrRoomNotFound    = errors.New("room not found")
	ErrResultsNotReady = errors.New("results not ready")

	// Storage errors
	ErrLockTimeout = errors.New("timed out acquiring lock")
)
