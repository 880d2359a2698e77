package domain

import "github.com/google/uuid"

// NewTimerID creates a new unique identifier for a timer instance.
func NewTimerID() string {
	return uuid.New().String()
}
