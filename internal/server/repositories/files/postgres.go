// Package files provides the PostgreSQL-backed repository for task
// attachment metadata. Blob content lives in object storage.
package files

import (
	"context"
	"fmt"

	"github.com/akosarev/taskvault/internal/common"
	"github.com/akosarev/taskvault/internal/dbx"
	"github.com/akosarev/taskvault/internal/server/models"
)

// PostgresRepository implements attachment metadata storage over dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts attachment metadata in the pending state.
func (r *PostgresRepository) Create(ctx context.Context, file *models.TaskFile) error {
	query := `
		INSERT INTO task_files (id, task_id, user_id, storage_key, upload_status)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.ExecContext(ctx, query,
		file.ID, file.TaskID, file.UserID, file.StorageKey, file.UploadStatus); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ListByTask returns attachment rows for the task owned by userID, oldest first.
func (r *PostgresRepository) ListByTask(ctx context.Context, userID, taskID string) ([]*models.TaskFile, error) {
	query := `
		SELECT id, task_id, user_id, storage_key, upload_status, created_at FROM task_files
		WHERE user_id = $1 AND task_id = $2
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, userID, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to select task files: %w", err)
	}
	defer rows.Close()

	var result []*models.TaskFile
	for rows.Next() {
		var item models.TaskFile
		if err := rows.Scan(&item.ID, &item.TaskID, &item.UserID,
			&item.StorageKey, &item.UploadStatus, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateStatus sets the upload status of the attachment identified by
// (userID, taskID, fileID). A file hanging off a different task does not
// match, so a completion request cannot drift to another task's attachment.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, userID, taskID, fileID, status string) error {
	query := `
		UPDATE task_files SET upload_status = $4
		WHERE user_id = $1 AND task_id = $2 AND id = $3
	`
	res, err := r.db.ExecContext(ctx, query, userID, taskID, fileID, status)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
