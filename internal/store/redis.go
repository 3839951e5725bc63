package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/pocketfin-ledger/internal/config"
)

// RedisStore is a Store backed by Redis. Keys are scoped with a namespace
// prefix so Clear can wipe the whole ledger without touching other databases
// sharing the instance.
type RedisStore struct {
	client    *redis.Client
	namespace string
	logger    *slog.Logger
}

// NewRedisStore connects to Redis and returns the store
func NewRedisStore(ctx context.Context, logger *slog.Logger, cfg *config.RedisConfig, namespace string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	logger.Info("Connected to Redis")

	return &RedisStore{
		client:    client,
		namespace: namespace,
		logger:    logger,
	}, nil
}

func (s *RedisStore) scoped(key string) string {
	return s.namespace + ":" + key
}

// Read returns the value stored under key
func (s *RedisStore) Read(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.scoped(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrKeyNotFound
		}
		s.logger.Error("Failed to read key", "key", key, "error", err)
		return nil, fmt.Errorf("failed to read key %s: %w", key, err)
	}

	return value, nil
}

// Write stores the value under key without expiry
func (s *RedisStore) Write(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.scoped(key), value, 0).Err(); err != nil {
		s.logger.Error("Failed to write key", "key", key, "error", err)
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}

	return nil
}

// Exists reports whether key holds a value
func (s *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, s.scoped(key)).Result()
	if err != nil {
		s.logger.Error("Failed to check key existence", "key", key, "error", err)
		return false, fmt.Errorf("failed to check key %s: %w", key, err)
	}

	return n > 0, nil
}

// Clear deletes every key in the namespace
func (s *RedisStore) Clear(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, s.namespace+":*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			s.logger.Error("Failed to delete key during clear", "key", iter.Val(), "error", err)
			return fmt.Errorf("failed to delete key %s: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		s.logger.Error("Failed to scan namespace during clear", "error", err)
		return fmt.Errorf("failed to scan namespace: %w", err)
	}

	return nil
}

// Close releases the Redis client
func (s *RedisStore) Close(_ context.Context) error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("failed to close Redis connection: %w", err)
	}
	s.logger.Info("Closed Redis connection")
	return nil
}
