package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Victor-armando18/storefront-engine/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisCache shares derived pages between engine instances. Values are JSON.
type RedisCache struct {
	client            *redis.Client
	prefix            string
	defaultExpiration time.Duration
}

func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

func NewRedisCache(client *redis.Client, prefix string, defaultExpiration time.Duration) *RedisCache {
	return &RedisCache{
		client:            client,
		prefix:            prefix,
		defaultExpiration: clampTTL(defaultExpiration, MaxTTL),
	}
}

func (c *RedisCache) Set(ctx context.Context, key string, vm *domain.PresentationViewModel, ttl time.Duration) error {
	data, err := json.Marshal(vm)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.prefix+key, data, clampTTL(ttl, c.defaultExpiration)).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string) (*domain.PresentationViewModel, bool, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var vm domain.PresentationViewModel
	if err := json.Unmarshal([]byte(val), &vm); err != nil {
		return nil, false, fmt.Errorf("corrupt cache entry %s: %w", key, err)
	}
	return &vm, true, nil
}

func (c *RedisCache) Close() error { return c.client.Close() }
