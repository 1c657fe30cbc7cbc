package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// TTL settings. Rooms left waiting or unfinished expire after RoomTTL,
	// which is the only reaping this service does. Zero disables expiry.
	RoomTTL   time.Duration
	ResultTTL time.Duration

	// Lock settings. LockTTL caps how long a crashed holder can block a key.
	LockTTL           time.Duration
	LockRetryInterval time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:               "redis://localhost:6379",
		PoolSize:          10,
		MinIdleConns:      2,
		RoomTTL:           24 * time.Hour,
		ResultTTL:         24 * time.Hour,
		LockTTL:           5 * time.Second,
		LockRetryInterval: 10 * time.Millisecond,
	}
}
