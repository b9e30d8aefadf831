package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRepository keeps each item under its own key and refreshes the TTL on
// every write, so abandoned visitors expire on their own.
type RedisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
		Protocol: 2,
	})
}

func NewRedisRepository(client *redis.Client, ttl time.Duration) *RedisRepository {
	return &RedisRepository{client: client, ttl: ttl}
}

func redisKey(ns, key string) string {
	return fmt.Sprintf("storefront:%s:%s", ns, key)
}

func (r *RedisRepository) GetItem(ctx context.Context, ns, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, redisKey(ns, key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %s from redis: %w", key, err)
	}
	return v, true, nil
}

func (r *RedisRepository) SetItem(ctx context.Context, ns, key, value string) error {
	if err := r.client.Set(ctx, redisKey(ns, key), value, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write %s to redis: %w", key, err)
	}
	return nil
}

func (r *RedisRepository) RemoveItem(ctx context.Context, ns string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	pipe := r.client.TxPipeline()
	for _, k := range keys {
		pipe.Del(ctx, redisKey(ns, k))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to remove keys from redis: %w", err)
	}
	return nil
}
