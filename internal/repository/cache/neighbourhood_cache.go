package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/opendata-browser/internal/domain"
	"github.com/opendata-browser/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultNeighbourhoodHash - hash в Redis, общий для всех реплик сервиса
const DefaultNeighbourhoodHash = "neighbourhood:names"

type redisNeighbourhoodCache struct {
	client *redis.Client
	hash   string
	logger *zap.Logger
}

// NewRedisNeighbourhoodCache - кеш районов в Redis hash без TTL
func NewRedisNeighbourhoodCache(r *Redis) repository.NeighbourhoodCache {
	return newRedisNeighbourhoodCache(r.client, DefaultNeighbourhoodHash, r.logger)
}

func newRedisNeighbourhoodCache(client *redis.Client, hash string, logger *zap.Logger) *redisNeighbourhoodCache {
	return &redisNeighbourhoodCache{
		client: client,
		hash:   hash,
		logger: logger,
	}
}

func (c *redisNeighbourhoodCache) Get(ctx context.Context, key string) (domain.NeighbourhoodEntry, bool, error) {
	val, err := c.client.HGet(ctx, c.hash, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.NeighbourhoodEntry{}, false, nil // Cache miss
	}
	if err != nil {
		c.logger.Error("Failed to get neighbourhood from cache", zap.String("key", key), zap.Error(err))
		return domain.NeighbourhoodEntry{}, false, fmt.Errorf("cache get error: %w", err)
	}

	var entry domain.NeighbourhoodEntry
	if err := json.Unmarshal(val, &entry); err != nil {
		c.logger.Error("Failed to unmarshal neighbourhood entry", zap.String("key", key), zap.Error(err))
		return domain.NeighbourhoodEntry{}, false, fmt.Errorf("unmarshal neighbourhood entry: %w", err)
	}

	c.logger.Debug("Cache hit", zap.String("key", key))
	return entry, true, nil
}

func (c *redisNeighbourhoodCache) Set(ctx context.Context, key string, entry domain.NeighbourhoodEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal neighbourhood entry: %w", err)
	}

	if err := c.client.HSet(ctx, c.hash, key, data).Err(); err != nil {
		c.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	c.logger.Debug("Cache set", zap.String("key", key), zap.String("outcome", string(entry.Outcome)))
	return nil
}

func (c *redisNeighbourhoodCache) Reset(ctx context.Context) error {
	if err := c.client.Del(ctx, c.hash).Err(); err != nil {
		c.logger.Error("Failed to reset cache", zap.String("hash", c.hash), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}
	return nil
}

func (c *redisNeighbourhoodCache) Len(ctx context.Context) (int, error) {
	n, err := c.client.HLen(ctx, c.hash).Result()
	if err != nil {
		return 0, fmt.Errorf("cache len error: %w", err)
	}
	return int(n), nil
}
