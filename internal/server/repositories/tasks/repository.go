package tasks

import (
	"context"

	"github.com/akosarev/taskvault/internal/server/models"
)

// TaskUpdate carries the mutable task fields for Update. Nil fields are left
// unchanged.
type TaskUpdate struct {
	Text      *string
	Completed *bool
}

type Repository interface {
	Create(ctx context.Context, task *models.Task) error
	// GetByID returns the task only if it belongs to userID; a task owned by
	// another user is indistinguishable from an absent one.
	GetByID(ctx context.Context, userID, id string) (*models.Task, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Task, error)
	Update(ctx context.Context, userID, id string, upd TaskUpdate) (*models.Task, error)
	Delete(ctx context.Context, userID, id string) (*models.Task, error)
}
