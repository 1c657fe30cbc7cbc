package random

import "github.com/google/uuid"

// Random provides identifier generation that can be mocked for testing
type Random interface {
	// UUID returns a new random (version 4) UUID in canonical string form
	UUID() string
}

// UUIDRandom implements Random using github.com/google/uuid
type UUIDRandom struct{}

// New creates a new UUIDRandom
func New() *UUIDRandom {
	return &UUIDRandom{}
}

// UUID returns a new random UUID
func (r *UUIDRandom) UUID() string {
	return uuid.NewString()
}
