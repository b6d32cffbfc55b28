package users

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/authd/internal/common"
	"github.com/dmitrijs2005/authd/internal/server/models"
)

// MemoryRepository is a mutex-guarded in-memory Repository used in tests and
// capable of standing in for PostgreSQL during local development. Each
// instance owns its data, so tests can construct an isolated store per run.
type MemoryRepository struct {
	mu         sync.RWMutex
	byID       map[string]*models.User
	byUsername map[string]string
	byEmail    map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:       make(map[string]*models.User),
		byUsername: make(map[string]string),
		byEmail:    make(map[string]string),
	}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUsername[user.UserName]; ok {
		return nil, common.ErrConflict
	}
	if _, ok := r.byEmail[user.Email]; ok {
		return nil, common.ErrConflict
	}

	stored := *user
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now()

	r.byID[stored.ID] = &stored
	r.byUsername[stored.UserName] = stored.ID
	r.byEmail[stored.Email] = stored.ID

	result := stored
	return &result, nil
}

func (r *MemoryRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.find(r.byUsername[username])
}

func (r *MemoryRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.find(r.byEmail[email])
}

func (r *MemoryRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.find(id)
}

// find must be called with the lock held; it copies the stored row so callers
// cannot mutate the repository's state through the returned pointer.
func (r *MemoryRepository) find(id string) (*models.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	result := *user
	return &result, nil
}
