package tokens

import (
	"context"

	"github.com/akosarev/taskvault/internal/server/models"
)

type Repository interface {
	// Add appends one session entry for the user. The INSERT is a single
	// atomic statement, so concurrent logins for the same user cannot lose
	// an entry.
	Add(ctx context.Context, userID, access, token string) error
	// Remove deletes the entry whose token equals the given value, leaving
	// all other sessions untouched.
	Remove(ctx context.Context, userID, token string) error
	// Has reports whether the token is currently listed for the user.
	Has(ctx context.Context, userID, token string) (bool, error)
	// ListByUser returns the user's sessions in insertion order.
	ListByUser(ctx context.Context, userID string) ([]*models.SessionToken, error)
}
