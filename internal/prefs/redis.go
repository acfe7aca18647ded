package prefs

import (
	"context"

	"github.com/go-redis/redis"
)

// RedisStore keeps preferences as plain redis strings under a namespace prefix.
type RedisStore struct {
	client    *redis.Client
	namespace string
}

// NewRedisStore wraps client; keys are stored as "<namespace>:<key>".
func NewRedisStore(client *redis.Client, namespace string) *RedisStore {
	return &RedisStore{client: client, namespace: namespace}
}

func (s *RedisStore) key(key string) string {
	if s.namespace == "" {
		return key
	}
	return s.namespace + ":" + key
}

// Get returns the stored value for key. A missing key is not an error.
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.WithContext(ctx).Get(s.key(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores value for key without expiry.
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	return s.client.WithContext(ctx).Set(s.key(key), value, 0).Err()
}
