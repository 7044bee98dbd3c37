package portfolio

import "github.com/google/uuid"

// NewID returns a fresh, time-ordered entity identity (UUIDv7).
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
