// Package users declares the server-side repository contract for the
// persisted user directory.
package users

import (
	"context"

	"github.com/dmitrijs2005/userboard/internal/server/models"
)

// Repository defines operations over user rows.
type Repository interface {
	// Create inserts a new user row. A username collision yields
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByUsername looks up a user by username. Implementations return
	// common.ErrorNotFound when the user is absent.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetByID looks up a user by id. Implementations return
	// common.ErrorNotFound when the user is absent.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// List returns all users ordered newest first by creation time.
	List(ctx context.Context) ([]*models.User, error)

	// Delete removes a user row by id. Returns common.ErrorNotFound when
	// nothing was deleted.
	Delete(ctx context.Context, id string) error

	// CountAll returns the total number of user rows.
	CountAll(ctx context.Context) (int64, error)

	// CountAdminsForUpdate locks the current admin rows and returns their
	// count. Inside a transaction this serializes concurrent admin deletes.
	CountAdminsForUpdate(ctx context.Context) (int64, error)
}
