package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/userboard/internal/common"
	"github.com/dmitrijs2005/userboard/internal/server/models"
)

// MemoryRepository keeps session state in process memory. It is safe for
// concurrent use from different request handlers; state is lost on restart.
type MemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

// NewMemoryRepository constructs an empty in-process session store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{sessions: make(map[string]models.Session)}
}

func (r *MemoryRepository) Create(_ context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.Token] = *session
	return nil
}

func (r *MemoryRepository) Find(_ context.Context, token string) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	// Copy out so callers cannot mutate stored state.
	return &session, nil
}

func (r *MemoryRepository) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
	return nil
}

func (r *MemoryRepository) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for token, session := range r.sessions {
		if session.Expired(now) {
			delete(r.sessions, token)
			deleted++
		}
	}
	return deleted, nil
}
