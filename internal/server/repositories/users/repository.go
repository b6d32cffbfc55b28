// Package users declares the credential store contract: persistence of user
// records keyed by identity fields.
package users

import (
	"context"

	"github.com/dmitrijs2005/authd/internal/server/models"
)

// Repository defines operations for creating and looking up user records.
// Lookups are exact-match, no case normalization.
type Repository interface {
	// Create inserts a new user row. When the username or email is already
	// taken it returns common.ErrConflict, including the case where a
	// concurrent insert wins the race and the uniqueness constraint fires.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// FindByUsername returns the user with the given username,
	// or common.ErrNotFound.
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// FindByEmail returns the user with the given email, or common.ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByID returns the user with the given id, or common.ErrNotFound.
	FindByID(ctx context.Context, id string) (*models.User, error)
}
