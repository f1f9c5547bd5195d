package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient parses redisURL and verifies connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

type redisKV struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisKV stores values under their keys; ttl 0 keeps them forever.
func NewRedisKV(rdb *redis.Client, ttl time.Duration) KV {
	return &redisKV{rdb: rdb, ttl: ttl}
}

func (s *redisKV) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMissing
	}
	return v, err
}

func (s *redisKV) Set(ctx context.Context, key string, value []byte) error {
	return s.rdb.Set(ctx, key, value, s.ttl).Err()
}

func (s *redisKV) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
