package verification

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore keeps pending codes in Redis with a server-side TTL, so every
// instance behind a load balancer sees the same ledger. The prefix keeps
// independent ledgers (registration, password reset) from colliding on the
// same email key.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a RedisStore whose entries expire after ttl
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) Put(ctx context.Context, email, code string) error {
	return s.client.Set(ctx, s.prefix+email, code, s.ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, email string) (string, bool, error) {
	code, err := s.client.Get(ctx, s.prefix+email).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return code, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, s.prefix+email).Err()
}
