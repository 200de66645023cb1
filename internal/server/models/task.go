package models

import "time"

// Task is a user-owned record. CreatorID is the owning user's ID; every query
// touching tasks filters on it.
type Task struct {
	ID          string
	CreatorID   string
	Text        string
	Completed   bool
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
