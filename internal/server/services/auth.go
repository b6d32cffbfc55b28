// Package services contains the orchestration layer of the auth server.
// Services compose repositories and the token codec, and re-wrap lower-layer
// failures into the sentinel taxonomy of internal/common so transport
// handlers never see store or codec internals.
package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/authd/internal/common"
	"github.com/dmitrijs2005/authd/internal/logging"
	"github.com/dmitrijs2005/authd/internal/server/auth"
	"github.com/dmitrijs2005/authd/internal/server/config"
	"github.com/dmitrijs2005/authd/internal/server/models"
	"github.com/dmitrijs2005/authd/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/authd/internal/server/repositories/users"
)

const defaultBcryptCost = 12

// AuthService implements registration, login, session verification, and
// logout. Every issued token is backed by a session row; deleting the row
// revokes the token regardless of its remaining signature validity.
type AuthService struct {
	users           users.Repository
	sessions        sessions.Repository
	logger          logging.Logger
	jwtSecret       []byte
	sessionValidity time.Duration
	bcryptCost      int

	// dummyHash is compared against when the username does not exist, so a
	// failed login costs the same whether the user is missing or the
	// password is wrong.
	dummyHash []byte
}

func NewAuthService(u users.Repository, s sessions.Repository, cfg *config.Config, logger logging.Logger) *AuthService {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = defaultBcryptCost
	}

	dummyHash, err := bcrypt.GenerateFromPassword([]byte("authd-dummy-credential"), cost)
	if err != nil {
		// only reachable with an invalid cost, which is clamped above
		panic(err)
	}

	return &AuthService{
		users:           u,
		sessions:        s,
		logger:          logger.With("module", "auth_service"),
		jwtSecret:       []byte(cfg.SecretKey),
		sessionValidity: cfg.SessionValidityDuration,
		bcryptCost:      cost,
		dummyHash:       dummyHash,
	}
}

// Register creates a new user and starts a session for it. The returned user
// has its credential hash stripped. Duplicate username or email surfaces as
// common.ErrConflict, whether caught by the advisory lookups here or by the
// store's uniqueness constraint when two registrations race.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, string, error) {

	if username == "" || email == "" || password == "" {
		return nil, "", common.ErrValidation
	}

	if err := s.checkNotTaken(ctx, username, email); err != nil {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		s.logger.Error(ctx, "credential hashing failed", "error", err.Error())
		return nil, "", common.ErrInternal
	}

	user, err := s.users.Create(ctx, &models.User{
		UserName:     username,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, "", common.ErrConflict
		}
		s.logger.Error(ctx, "error creating user", "error", err.Error())
		return nil, "", common.ErrInternal
	}

	token, err := s.startSession(ctx, user)
	if err != nil {
		return nil, "", err
	}

	return stripCredential(user), token, nil
}

// Login verifies the credential and starts a new session. An unknown username
// and a wrong password are indistinguishable to the caller: both return
// common.ErrUnauthorized, and the unknown-user path still pays for a bcrypt
// comparison.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {

	if username == "" || password == "" {
		return nil, "", common.ErrValidation
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, "", common.ErrUnauthorized
		}
		s.logger.Error(ctx, "error searching user", "error", err.Error())
		return nil, "", common.ErrInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", common.ErrUnauthorized
	}

	token, err := s.startSession(ctx, user)
	if err != nil {
		return nil, "", err
	}

	return stripCredential(user), token, nil
}

// VerifySession returns the owner of a token. Both checks are required: the
// codec must accept the signature and expiry, and a live session row must
// still exist, so a signed-but-revoked token fails here.
func (s *AuthService) VerifySession(ctx context.Context, token string) (*models.User, error) {

	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	session, err := s.sessions.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		s.logger.Error(ctx, "error searching session", "error", err.Error())
		return nil, common.ErrInternal
	}

	// The row may outlive its expiry until the sweeper runs.
	if session.ExpiresAt.Before(time.Now()) {
		return nil, common.ErrUnauthorized
	}

	if session.UserID != claims.UserID {
		return nil, common.ErrUnauthorized
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		s.logger.Error(ctx, "error loading session owner", "error", err.Error())
		return nil, common.ErrInternal
	}

	return stripCredential(user), nil
}

// Logout revokes the session for the token. Logging out a session that is
// already gone is not an error from the caller's point of view.
func (s *AuthService) Logout(ctx context.Context, token string) error {

	err := s.sessions.DeleteByToken(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.logger.Debug(ctx, "logout for unknown session")
			return nil
		}
		s.logger.Error(ctx, "error deleting session", "error", err.Error())
		return common.ErrInternal
	}

	return nil
}

// CleanExpiredSessions purges sessions whose expiry has passed. Failures are
// logged and swallowed: this is maintenance, never user-facing.
func (s *AuthService) CleanExpiredSessions(ctx context.Context) {

	count, err := s.sessions.DeleteExpired(ctx, time.Now())
	if err != nil {
		s.logger.Error(ctx, "expired session cleanup failed", "error", err.Error())
		return
	}

	if count > 0 {
		s.logger.Info(ctx, "purged expired sessions", "count", count)
	}
}

// checkNotTaken is advisory only: the authoritative duplicate check is the
// store's uniqueness constraint at insert time.
func (s *AuthService) checkNotTaken(ctx context.Context, username, email string) error {
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return common.ErrConflict
	} else if !errors.Is(err, common.ErrNotFound) {
		s.logger.Error(ctx, "error searching user", "error", err.Error())
		return common.ErrInternal
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return common.ErrConflict
	} else if !errors.Is(err, common.ErrNotFound) {
		s.logger.Error(ctx, "error searching user", "error", err.Error())
		return common.ErrInternal
	}

	return nil
}

// startSession issues a signed token and persists the backing session row.
func (s *AuthService) startSession(ctx context.Context, user *models.User) (string, error) {
	token, err := auth.GenerateToken(user, s.jwtSecret, s.sessionValidity)
	if err != nil {
		s.logger.Error(ctx, "error generating token", "error", err.Error())
		return "", common.ErrInternal
	}

	expiresAt := time.Now().Add(s.sessionValidity)
	if _, err := s.sessions.Create(ctx, user.ID, token, expiresAt); err != nil {
		s.logger.Error(ctx, "error creating session", "error", err.Error())
		return "", common.ErrInternal
	}

	return token, nil
}

func stripCredential(user *models.User) *models.User {
	result := *user
	result.PasswordHash = ""
	return &result
}
