package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/gauravtib/mybankchecknext-sub001/internal/config"
	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	client *redis.Client
}

// NewStore picks the backing store for the deployment: Redis when an address
// is configured, in-memory otherwise.
func NewStore(cfg *config.RedisConfig) Store {
	if cfg == nil || cfg.Addr == "" {
		return NewMemoryStore()
	}
	return NewRedisStore(cfg)
}

// NewRedisStore connects a history store to Redis.
func NewRedisStore(cfg *config.RedisConfig) Store {
	return &redisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

func (s *redisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read history key: %w", err)
	}
	return val, nil
}

func (s *redisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write history key: %w", err)
	}
	return nil
}

func (s *redisStore) ClearAll(ctx context.Context) error {
	if err := s.client.Del(ctx, Keys...).Err(); err != nil {
		return fmt.Errorf("failed to clear history keys: %w", err)
	}
	return nil
}
