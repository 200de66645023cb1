package files

import (
	"context"

	"github.com/akosarev/taskvault/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, file *models.TaskFile) error
	// ListByTask returns attachment metadata for the task, but only when the
	// task is owned by userID.
	ListByTask(ctx context.Context, userID, taskID string) ([]*models.TaskFile, error)
	// UpdateStatus sets the upload status of the attachment, but only when it
	// belongs to the given task and the task's owner.
	UpdateStatus(ctx context.Context, userID, taskID, fileID, status string) error
}
