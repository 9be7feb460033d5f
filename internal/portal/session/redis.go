package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/parkmoor/clubhouse/internal/portal/domain"
)

// RedisStore keeps sessions in Redis with a TTL matching their expiry,
// so expired sessions vanish without any sweeper.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "session:",
	}
}

func (r *RedisStore) key(sessionID string) string {
	return r.prefix + sessionID
}

func (r *RedisStore) Create(ctx context.Context, s domain.Session) error {
	if s.ID == "" || s.UserID == "" {
		return errors.New("session: missing id or user_id")
	}

	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session: expires_at must be in the future")
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}

	return r.client.Set(ctx, r.key(s.ID), data, ttl).Err()
}

func (r *RedisStore) Get(ctx context.Context, sessionID string) (domain.Session, error) {
	val, err := r.client.Get(ctx, r.key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.Session{}, ErrNotFound
	}
	if err != nil {
		return domain.Session{}, err
	}

	var s domain.Session
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		return domain.Session{}, fmt.Errorf("session: unmarshal: %w", err)
	}

	return s, nil
}

func (r *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, r.key(sessionID)).Err()
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
