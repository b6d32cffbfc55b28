package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/authd/internal/common"
	"github.com/dmitrijs2005/authd/internal/server/models"
)

// MemoryRepository is a mutex-guarded in-memory Repository for tests.
// Unlike the Redis backend it keeps expired rows around until DeleteExpired
// runs, which mirrors the lazy-expiry behavior of the PostgreSQL backend.
type MemoryRepository struct {
	mu      sync.RWMutex
	byToken map[string]*models.Session
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byToken: make(map[string]*models.Session)}
}

func (r *MemoryRepository) Create(ctx context.Context, userID string, token string, expiresAt time.Time) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	r.byToken[token] = session

	result := *session
	return &result, nil
}

func (r *MemoryRepository) FindByToken(ctx context.Context, token string) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.byToken[token]
	if !ok {
		return nil, common.ErrNotFound
	}
	result := *session
	return &result, nil
}

func (r *MemoryRepository) DeleteByToken(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byToken[token]; !ok {
		return common.ErrNotFound
	}
	delete(r.byToken, token)
	return nil
}

func (r *MemoryRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var purged int64
	for token, session := range r.byToken {
		if session.ExpiresAt.Before(now) {
			delete(r.byToken, token)
			purged++
		}
	}
	return purged, nil
}

// ExpireToken rewrites the stored expiry so tests can simulate a session row
// that has gone stale without waiting for real time to pass.
func (r *MemoryRepository) ExpireToken(token string, expiresAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session, ok := r.byToken[token]; ok {
		session.ExpiresAt = expiresAt
	}
}
