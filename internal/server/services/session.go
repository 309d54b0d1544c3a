package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/userboard/internal/common"
	"github.com/dmitrijs2005/userboard/internal/server/config"
	"github.com/dmitrijs2005/userboard/internal/server/models"
	"github.com/dmitrijs2005/userboard/internal/server/repositories/sessions"
)

// sessionTokenBytes is the number of random bytes in a session token; the
// hex-encoded token is twice as long. 32 bytes keeps collisions
// cryptographically negligible.
const sessionTokenBytes = 32

// SessionService owns server-side session state: create on login, resolve
// on each request, destroy on logout, and periodic expiry sweeps.
type SessionService struct {
	repo sessions.Repository
	ttl  time.Duration
}

func NewSessionService(repo sessions.Repository, cfg *config.Config) *SessionService {
	return &SessionService{
		repo: repo,
		ttl:  cfg.SessionTTL,
	}
}

// TTL returns the configured session lifetime.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Create allocates a fresh unguessable token and stores the session state,
// including the admin snapshot taken at login time.
func (s *SessionService) Create(ctx context.Context, user *models.User) (string, error) {

	token, err := common.MakeRandHexString(sessionTokenBytes)
	if err != nil {
		return "", fmt.Errorf("error generating session token: %w", err)
	}

	now := time.Now()
	session := &models.Session{
		Token:     token,
		UserID:    user.ID,
		IsAdmin:   user.IsAdmin,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return "", fmt.Errorf("error storing session: %w", err)
	}

	return token, nil
}

// Resolve returns the active session for the token. Unknown, destroyed and
// expired tokens all yield common.ErrorNotFound; expiry is checked lazily
// here and the stale row is removed on the spot.
func (s *SessionService) Resolve(ctx context.Context, token string) (*models.Session, error) {

	if token == "" {
		return nil, common.ErrorNotFound
	}

	session, err := s.repo.Find(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error resolving session: %w", err)
	}

	if session.Expired(time.Now()) {
		_ = s.repo.Delete(ctx, token)
		return nil, common.ErrorNotFound
	}

	return session, nil
}

// Destroy removes the session. Destroying an absent session is not an error.
func (s *SessionService) Destroy(ctx context.Context, token string) error {
	if err := s.repo.Delete(ctx, token); err != nil {
		return fmt.Errorf("error destroying session: %w", err)
	}
	return nil
}

// DeleteExpired purges sessions past their expiry and returns how many were
// removed. The app runs it periodically.
func (s *SessionService) DeleteExpired(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(ctx, time.Now())
}
