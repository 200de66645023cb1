// Package tokens provides the PostgreSQL-backed session store: the per-user
// ordered list of currently valid (access, token) pairs.
package tokens

import (
	"context"
	"fmt"

	"github.com/akosarev/taskvault/internal/common"
	"github.com/akosarev/taskvault/internal/dbx"
	"github.com/akosarev/taskvault/internal/server/models"
)

// PostgresRepository implements session-token storage over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Add appends a session entry for userID.
func (r *PostgresRepository) Add(ctx context.Context, userID, access, token string) error {
	query := `
		INSERT INTO user_tokens (user_id, access, token)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.ExecContext(ctx, query, userID, access, token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Remove deletes the session entry matching the token value. Removing an
// already-removed token yields common.ErrorNotFound.
func (r *PostgresRepository) Remove(ctx context.Context, userID, token string) error {
	query := `
		DELETE FROM user_tokens
		WHERE user_id = $1 AND token = $2
	`
	res, err := r.db.ExecContext(ctx, query, userID, token)
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

// Has reports whether the token is currently listed for userID.
func (r *PostgresRepository) Has(ctx context.Context, userID, token string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM user_tokens
			WHERE user_id = $1 AND token = $2
		)
	`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, token).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

// ListByUser returns the user's session entries in insertion order.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.SessionToken, error) {
	query := `
		SELECT id, user_id, access, token, created_at FROM user_tokens
		WHERE user_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.SessionToken
	for rows.Next() {
		var item models.SessionToken
		if err := rows.Scan(&item.ID, &item.UserID, &item.Access, &item.Token, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
