package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const csrfKeyPrefix = "csrf:"

// CSRFStore keeps issued CSRF tokens in redis, keyed by token value, so
// validation is a single existence check.
type CSRFStore struct {
	client *redis.Client
}

func NewCSRFStore(rc *RedisClient) *CSRFStore {
	return &CSRFStore{client: rc.Client()}
}

func (s *CSRFStore) Save(ctx context.Context, token string, ttl time.Duration) error {
	return s.client.Set(ctx, csrfKeyPrefix+token, "1", ttl).Err()
}

func (s *CSRFStore) Exists(ctx context.Context, token string) (bool, error) {
	err := s.client.Get(ctx, csrfKeyPrefix+token).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
