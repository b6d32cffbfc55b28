package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/authd/internal/dbx"
	"github.com/dmitrijs2005/authd/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/authd/internal/server/repositories/users"
)

// MemoryRepositoryManager vends the in-memory repositories. Unlike the
// Postgres manager it must hand out the same instances on every call, since
// the state lives inside the repository values themselves.
type MemoryRepositoryManager struct {
	users    *users.MemoryRepository
	sessions *sessions.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:    users.NewMemoryRepository(),
		sessions: sessions.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}

func (m *MemoryRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return m.users
}

func (m *MemoryRepositoryManager) Sessions(db dbx.DBTX) sessions.Repository {
	return m.sessions
}
