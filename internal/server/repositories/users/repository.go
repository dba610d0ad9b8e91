// Package users declares the repository contract for user accounts in
// persistent storage.
package users

import (
	"context"

	"github.com/neogulmap/zonemap/internal/server/models"
)

type Repository interface {
	// Create inserts a new account and returns it with its assigned ID.
	// A duplicate email yields common.ErrConflict.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByOauthID(ctx context.Context, provider, oauthID string) (*models.User, error)

	// Update rewrites the mutable columns of the account identified by
	// user.ID. A missing row yields common.ErrNotFound.
	Update(ctx context.Context, user *models.User) (*models.User, error)

	// Delete removes the account by ID. A missing row yields
	// common.ErrNotFound.
	Delete(ctx context.Context, id int64) error
}
