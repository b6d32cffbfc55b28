package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/authd/internal/common"
	"github.com/dmitrijs2005/authd/internal/server/models"
)

const sessionKeyPrefix = "session:"

// RedisRepository implements Repository on top of Redis. Rows are JSON blobs
// keyed by token with a TTL equal to the session's remaining lifetime, so
// expiry enforcement is delegated to Redis itself.
type RedisRepository struct {
	rdb *redis.Client
}

// NewRedisRepository constructs a repository bound to the given client.
func NewRedisRepository(rdb *redis.Client) *RedisRepository {
	return &RedisRepository{rdb: rdb}
}

type sessionBlob struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *RedisRepository) Create(ctx context.Context, userID string, token string, expiresAt time.Time) (*models.Session, error) {
	now := time.Now()
	blob := sessionBlob{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}

	data, err := json.Marshal(blob)
	if err != nil {
		return nil, fmt.Errorf("session encode error: %w", err)
	}

	ttl := expiresAt.Sub(now)
	if ttl <= 0 {
		// Already expired; Redis would reject a non-positive TTL.
		ttl = time.Millisecond
	}

	if err := r.rdb.Set(ctx, sessionKeyPrefix+token, data, ttl).Err(); err != nil {
		return nil, fmt.Errorf("redis error: %w", err)
	}

	return &models.Session{
		ID:        blob.ID,
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}, nil
}

func (r *RedisRepository) FindByToken(ctx context.Context, token string) (*models.Session, error) {
	data, err := r.rdb.Get(ctx, sessionKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("redis error: %w", err)
	}

	var blob sessionBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return nil, fmt.Errorf("session decode error: %w", err)
	}

	return &models.Session{
		ID:        blob.ID,
		UserID:    blob.UserID,
		Token:     token,
		ExpiresAt: blob.ExpiresAt,
		CreatedAt: blob.CreatedAt,
	}, nil
}

func (r *RedisRepository) DeleteByToken(ctx context.Context, token string) error {
	deleted, err := r.rdb.Del(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	if deleted == 0 {
		return common.ErrNotFound
	}
	return nil
}

// DeleteExpired is a no-op for the Redis backend: keys carry a TTL and Redis
// purges them itself, so there is never a backlog to sweep.
func (r *RedisRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}
