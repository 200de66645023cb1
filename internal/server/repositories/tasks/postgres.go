// Package tasks provides the PostgreSQL-backed repository for user-owned
// tasks. Every statement filters by the owning user's id, so a task that
// exists but belongs to someone else behaves exactly like a missing one.
package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akosarev/taskvault/internal/common"
	"github.com/akosarev/taskvault/internal/dbx"
	"github.com/akosarev/taskvault/internal/server/models"
)

// PostgresRepository implements task storage over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new task.
func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (id, user_id, text)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, task.ID, task.CreatorID, task.Text).
		Scan(&task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// GetByID returns the task owned by userID, or common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, userID, id string) (*models.Task, error) {
	query := `
		SELECT id, user_id, text, completed, completed_at, created_at, updated_at FROM tasks
		WHERE user_id = $1 AND id = $2
	`
	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, userID, id).Scan(
		&task.ID, &task.CreatorID, &task.Text, &task.Completed, &task.CompletedAt,
		&task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return task, nil
}

// ListByUser returns all tasks owned by userID, oldest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Task, error) {
	query := `
		SELECT id, user_id, text, completed, completed_at, created_at, updated_at FROM tasks
		WHERE user_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", err)
	}
	defer rows.Close()

	var result []*models.Task
	for rows.Next() {
		var item models.Task
		if err := rows.Scan(
			&item.ID, &item.CreatorID, &item.Text, &item.Completed, &item.CompletedAt,
			&item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update applies the given fields to the task owned by userID and returns the
// updated row. Marking a task completed stamps completed_at; marking it not
// completed clears the stamp.
func (r *PostgresRepository) Update(ctx context.Context, userID, id string, upd TaskUpdate) (*models.Task, error) {
	query := `
		UPDATE tasks SET
			text = COALESCE($3, text),
			completed = COALESCE($4::boolean, completed),
			completed_at = CASE
				WHEN $4::boolean IS TRUE THEN now()
				WHEN $4::boolean IS FALSE THEN NULL
				ELSE completed_at
			END,
			updated_at = now()
		WHERE user_id = $1 AND id = $2
		RETURNING id, user_id, text, completed, completed_at, created_at, updated_at
	`
	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, userID, id, upd.Text, upd.Completed).Scan(
		&task.ID, &task.CreatorID, &task.Text, &task.Completed, &task.CompletedAt,
		&task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return task, nil
}

// Delete removes the task owned by userID and returns the removed row.
func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) (*models.Task, error) {
	query := `
		DELETE FROM tasks
		WHERE user_id = $1 AND id = $2
		RETURNING id, user_id, text, completed, completed_at, created_at, updated_at
	`
	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, userID, id).Scan(
		&task.ID, &task.CreatorID, &task.Text, &task.Completed, &task.CompletedAt,
		&task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return task, nil
}
