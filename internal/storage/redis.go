package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore is an optional durable tier for deployments where several
// storefront terminals share state. Keys are namespaced to keep the
// database usable for other tenants.
type RedisStore struct {
	client    *redis.Client
	namespace string
}

func NewRedisStore(redisURL, namespace string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if namespace == "" {
		namespace = "storefront"
	}
	return &RedisStore{client: redis.NewClient(opts), namespace: namespace}, nil
}

func (r *RedisStore) Name() string { return "redis" }

func (r *RedisStore) Available(ctx context.Context) bool {
	probe, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	return r.client.Ping(probe).Err() == nil
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, r.key(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.key(key), value, 0).Err()
}

func (r *RedisStore) Remove(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

func (r *RedisStore) Close() error { return r.client.Close() }

func (r *RedisStore) key(k string) string {
	return r.namespace + ":" + k
}
