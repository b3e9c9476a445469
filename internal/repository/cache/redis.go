package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/opendata-browser/internal/config"
)

const (
	pingTimeout = 5 * time.Second
	// ioTimeout - предел на одну команду HGET/HSET
	ioTimeout = 2 * time.Second
)

// Redis - подключение к общему кешу районов
type Redis struct {
	client *redis.Client
	addr   string
	logger *zap.Logger
}

// NewRedis подключается и проверяет соединение. Ошибка ping закрывает клиент.
func NewRedis(cfg *config.Config, logger *zap.Logger) (*Redis, error) {
	addr := cfg.GetRedisAddr()
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  pingTimeout,
		ReadTimeout:  ioTimeout,
		WriteTimeout: ioTimeout,
	})

	r := &Redis{client: client, addr: addr, logger: logger.With(zap.String("redis_addr", addr))}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := r.Health(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s unreachable: %w", addr, err)
	}

	r.logger.Info("Redis connected", zap.Int("db", cfg.Redis.DB))
	return r, nil
}

// Health - проверка для /api/v1/health
func (r *Redis) Health(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	r.logger.Info("Closing Redis connection")
	return r.client.Close()
}
