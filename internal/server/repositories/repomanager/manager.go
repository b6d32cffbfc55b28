package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/authd/internal/dbx"
	"github.com/dmitrijs2005/authd/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/authd/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a database
// handle and owns the schema migration hook. Handing repos a DBTX keeps the
// same constructors usable inside transactions.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
}
