package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/freshmart/platform/core/session"
)

// redisKeyPrefix namespaces session slots inside a shared Redis.
const redisKeyPrefix = "freshmart:session:"

// RedisStore persists one session slot in Redis. The key TTL mirrors the
// session expiry, so Redis evicts stale slots on its own and an expired
// session can never be loaded back.
type RedisStore struct {
	client redis.UniversalClient
	key    string
}

// NewRedisStore creates a Redis-backed session store for the given slot,
// typically a device or client identifier.
func NewRedisStore(client redis.UniversalClient, slot string) *RedisStore {
	return &RedisStore{
		client: client,
		key:    redisKeyPrefix + slot,
	}
}

// Load implements session.Store.
func (s *RedisStore) Load(ctx context.Context) (session.Session, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return session.Session{}, session.ErrNotFound
	}
	if err != nil {
		return session.Session{}, fmt.Errorf("sessionstore: redis get %s: %w", s.key, err)
	}

	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return session.Session{}, fmt.Errorf("sessionstore: decode session: %w", err)
	}
	return sess, nil
}

// Save implements session.Store. Persisting an already expired session
// deletes the slot instead of storing a blob Redis would never expire.
func (s *RedisStore) Save(ctx context.Context, sess session.Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return s.Clear(ctx)
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("sessionstore: encode session: %w", err)
	}

	if err := s.client.Set(ctx, s.key, data, ttl).Err(); err != nil {
		return fmt.Errorf("sessionstore: redis set %s: %w", s.key, err)
	}
	return nil
}

// Clear implements session.Store.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("sessionstore: redis del %s: %w", s.key, err)
	}
	return nil
}
