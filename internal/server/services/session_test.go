package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/userboard/internal/common"
	"github.com/dmitrijs2005/userboard/internal/server/config"
	"github.com/dmitrijs2005/userboard/internal/server/models"
	"github.com/dmitrijs2005/userboard/internal/server/repositories/sessions"
)

func newSessionService(ttl time.Duration) (*SessionService, *sessions.MemoryRepository) {
	repo := sessions.NewMemoryRepository()
	cfg := &config.Config{SessionTTL: ttl}
	return NewSessionService(repo, cfg), repo
}

func TestSessionCreateAndResolve(t *testing.T) {
	svc, _ := newSessionService(time.Hour)
	ctx := context.Background()

	user := &models.User{ID: "u-1", Username: "alice", IsAdmin: true}
	token, err := svc.Create(ctx, user)
	require.NoError(t, err)
	require.Len(t, token, 64, "32 random bytes hex-encoded")

	session, err := svc.Resolve(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "u-1", session.UserID)
	require.True(t, session.IsAdmin, "admin snapshot taken at creation")
}

func TestSessionTokensAreUnique(t *testing.T) {
	svc, _ := newSessionService(time.Hour)
	ctx := context.Background()

	user := &models.User{ID: "u-1"}
	t1, err := svc.Create(ctx, user)
	require.NoError(t, err)
	t2, err := svc.Create(ctx, user)
	require.NoError(t, err)
	require.NotEqual(t, t1, t2)
}

func TestResolve_UnknownToken(t *testing.T) {
	svc, _ := newSessionService(time.Hour)

	_, err := svc.Resolve(context.Background(), "no-such-token")
	require.True(t, errors.Is(err, common.ErrorNotFound))

	_, err = svc.Resolve(context.Background(), "")
	require.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestResolve_ExpiredTokenIsRemovedLazily(t *testing.T) {
	svc, repo := newSessionService(-time.Minute)
	ctx := context.Background()

	token, err := svc.Create(ctx, &models.User{ID: "u-1"})
	require.NoError(t, err)

	_, err = svc.Resolve(ctx, token)
	require.True(t, errors.Is(err, common.ErrorNotFound))

	// The expired row must be gone from the store as well.
	_, err = repo.Find(ctx, token)
	require.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestDestroy_Idempotent(t *testing.T) {
	svc, _ := newSessionService(time.Hour)
	ctx := context.Background()

	token, err := svc.Create(ctx, &models.User{ID: "u-1"})
	require.NoError(t, err)

	require.NoError(t, svc.Destroy(ctx, token))

	_, err = svc.Resolve(ctx, token)
	require.True(t, errors.Is(err, common.ErrorNotFound))

	// Destroying again must not error.
	require.NoError(t, svc.Destroy(ctx, token))
}

func TestDeleteExpired(t *testing.T) {
	svc, repo := newSessionService(time.Hour)
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.User{ID: "u-1"})
	require.NoError(t, err)

	expired := &models.Session{
		Token:     "old",
		UserID:    "u-2",
		CreatedAt: time.Now().Add(-2 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, repo.Create(ctx, expired))

	n, err := svc.DeleteExpired(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}
