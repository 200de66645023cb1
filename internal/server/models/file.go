package models

import "time"

// TaskFile describes server-side metadata for a binary attachment of a task.
// The content itself lives in object storage; the server only hands out
// presigned URLs for it.
type TaskFile struct {
	// ID identifies the attachment row.
	ID string
	// TaskID links the file to its parent task.
	TaskID string
	// UserID is the owner of the file (same as the task's creator).
	UserID string
	// StorageKey is the object-storage key (path) of the blob.
	StorageKey string
	// UploadStatus tracks server-side upload state ("pending", "completed").
	UploadStatus string

	CreatedAt time.Time
}

// Upload status values for TaskFile.
const (
	UploadStatusPending   = "pending"
	UploadStatusCompleted = "completed"
)
