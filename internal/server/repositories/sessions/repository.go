// Package sessions declares the server-side session store contract and its
// PostgreSQL and in-process implementations.
package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/userboard/internal/server/models"
)

// Repository defines storage operations over session state. Expiry policy
// lives in the session service; implementations return rows as stored.
type Repository interface {
	// Create stores a new session keyed by its token.
	Create(ctx context.Context, session *models.Session) error

	// Find looks up a session by its opaque token. Implementations return
	// common.ErrorNotFound when the token is absent.
	Find(ctx context.Context, token string) (*models.Session, error)

	// Delete removes a session by token. Deleting a non-existent token is
	// not an error.
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes every session whose expiry is at or before now
	// and returns the number of sessions removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
