package localstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Get(ctx context.Context, merchantID, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, storeKey(merchantID, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return data, nil
}

func (r *RedisStore) Set(ctx context.Context, merchantID, key string, value []byte) error {
	// No TTL: these entries are the terminal's durable state, not a cache.
	if err := r.client.Set(ctx, storeKey(merchantID, key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisStore) List(ctx context.Context, merchantID string) ([]string, error) {
	prefix := storeKey(merchantID, "")
	keys, err := r.client.Keys(ctx, prefix+"*").Result()
	if err != nil {
		return nil, fmt.Errorf("redis keys failed: %w", err)
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, strings.TrimPrefix(k, prefix))
	}
	return names, nil
}

func (r *RedisStore) Delete(ctx context.Context, merchantID, key string) error {
	if err := r.client.Del(ctx, storeKey(merchantID, key)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func storeKey(merchantID, key string) string {
	return fmt.Sprintf("terminal:%s:%s", merchantID, key)
}
