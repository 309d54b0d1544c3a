// Package services implements the application services sitting between the
// HTTP layer and the repositories: the user directory and the session
// manager.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/userboard/internal/common"
	"github.com/dmitrijs2005/userboard/internal/cryptox"
	"github.com/dmitrijs2005/userboard/internal/dbx"
	"github.com/dmitrijs2005/userboard/internal/server/config"
	"github.com/dmitrijs2005/userboard/internal/server/models"
	"github.com/dmitrijs2005/userboard/internal/server/repositories/repomanager"
)

// dummyHash is a syntactically valid bcrypt hash that matches no password.
// Authenticate verifies against it when the username does not exist, so the
// unknown-user and wrong-password paths cost the same.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// UserService owns the user directory: registration, credential checks,
// listing and the admin-protected delete.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	bcryptCost  int
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		bcryptCost:  cfg.BcryptCost,
	}
}

// Register creates a new account. The very first account in an empty
// directory becomes the administrator. The count and the insert run in one
// transaction; the username UNIQUE constraint makes the check-then-insert
// race-free, so a concurrent duplicate observes common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {

	if username == "" || password == "" {
		return nil, common.ErrorValidation
	}

	hash, err := cryptox.HashPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	var user *models.User

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		count, err := repo.CountAll(ctx)
		if err != nil {
			return fmt.Errorf("error counting users: %w", err)
		}

		user, err = repo.Create(ctx, &models.User{
			ID:           uuid.NewString(),
			Username:     username,
			PasswordHash: hash,
			IsAdmin:      count == 0,
		})
		if err != nil {
			return err
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Authenticate checks a username/password pair. Unknown usernames and wrong
// passwords both yield common.ErrorUnauthorized, with no distinguishing
// detail; the password check always goes through the bcrypt hasher.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {

	if username == "" || password == "" {
		return nil, common.ErrorValidation
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// Burn the same hashing cost as the wrong-password path.
			cryptox.VerifyPassword([]byte(password), dummyHash)
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !cryptox.VerifyPassword([]byte(password), user.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}

// List returns all users, newest first.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.repomanager.Users(s.db).List(ctx)
}

// GetByID returns the current user row. The admin guard uses it as the
// authoritative privilege check instead of the session snapshot.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}

// Delete removes a user. When the target is an administrator, the current
// administrators are locked and re-counted in the same transaction; the sole
// administrator deleting themself fails with common.ErrorLastAdmin. A
// different caller deleting the sole administrator is not blocked.
func (s *UserService) Delete(ctx context.Context, targetID, requestingUserID string) error {

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		target, err := repo.GetByID(ctx, targetID)
		if err != nil {
			return err
		}

		if target.IsAdmin {
			admins, err := repo.CountAdminsForUpdate(ctx)
			if err != nil {
				return fmt.Errorf("error counting admins: %w", err)
			}
			if admins == 1 && requestingUserID == targetID {
				return common.ErrorLastAdmin
			}
		}

		return repo.Delete(ctx, targetID)
	})

	if err != nil {
		if errors.Is(err, common.ErrorNotFound) ||
			errors.Is(err, common.ErrorLastAdmin) {
			return err
		}
		return fmt.Errorf("error deleting user: %w", err)
	}

	return nil
}
