// Package sessions declares the session store contract: persistence of issued
// bearer tokens with their owner and expiry.
package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/authd/internal/server/models"
)

// Repository defines operations for creating, retrieving, and revoking
// sessions. A token maps to at most one session row.
type Repository interface {
	// Create stores a new session binding token to userID until expiresAt.
	Create(ctx context.Context, userID string, token string, expiresAt time.Time) (*models.Session, error)

	// FindByToken looks up a session by its token, or returns common.ErrNotFound.
	// An expired-but-unpurged session is still returned; expiry policy is the
	// caller's concern.
	FindByToken(ctx context.Context, token string) (*models.Session, error)

	// DeleteByToken removes the session for the token. It returns
	// common.ErrNotFound when no such session exists; the service layer
	// decides whether that is an error.
	DeleteByToken(ctx context.Context, token string) error

	// DeleteExpired bulk-removes sessions whose expiry precedes now and
	// reports how many were purged. Maintenance only, never on the request path.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
