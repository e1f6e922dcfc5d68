package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Victor-armando18/storefront-engine/internal/domain"
	"github.com/Victor-armando18/storefront-engine/internal/metrics"
)

type cacheItem struct {
	data      *domain.PresentationViewModel
	expiresAt int64
}

// MemoryCache is a process-local TTL cache. Expired entries are never returned; GC removes them.
type MemoryCache struct {
	items             map[string]cacheItem
	defaultExpiration time.Duration
	cleanupInterval   time.Duration
	sync.RWMutex
	now     func() time.Time
	metrics *metrics.Registry
	log     *slog.Logger
}

func NewMemoryCache(defaultExpiration, cleanupInterval time.Duration, reg *metrics.Registry, log *slog.Logger) *MemoryCache {
	if cleanupInterval <= 0 {
		cleanupInterval = time.Minute
	}
	return &MemoryCache{
		items:             make(map[string]cacheItem),
		defaultExpiration: clampTTL(defaultExpiration, MaxTTL),
		cleanupInterval:   cleanupInterval,
		now:               time.Now,
		metrics:           reg,
		log:               log,
	}
}

func (c *MemoryCache) Set(_ context.Context, key string, vm *domain.PresentationViewModel, ttl time.Duration) error {
	c.Lock()
	defer c.Unlock()
	_, exists := c.items[key]
	c.items[key] = cacheItem{
		data:      vm,
		expiresAt: c.now().Add(clampTTL(ttl, c.defaultExpiration)).UnixNano(),
	}
	if !exists && c.metrics != nil {
		c.metrics.CacheSize.Inc()
	}
	return nil
}

func (c *MemoryCache) Get(_ context.Context, key string) (*domain.PresentationViewModel, bool, error) {
	c.RLock()
	defer c.RUnlock()

	res, ok := c.items[key]
	if !ok || c.now().UnixNano() > res.expiresAt {
		return nil, false, nil
	}
	return res.data, true, nil
}

func (c *MemoryCache) Len() int {
	c.RLock()
	defer c.RUnlock()
	return len(c.items)
}

// GC evicts expired entries every cleanup interval until ctx is done.
func (c *MemoryCache) GC(ctx context.Context) error {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := c.evictExpired(); n > 0 && c.log != nil {
				c.log.Debug("cache gc", slog.Int("evicted", n))
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (c *MemoryCache) evictExpired() int {
	c.Lock()
	defer c.Unlock()
	now := c.now().UnixNano()
	deleted := 0
	for key, item := range c.items {
		if now > item.expiresAt {
			delete(c.items, key)
			deleted++
		}
	}
	if deleted > 0 && c.metrics != nil {
		c.metrics.CacheSize.Sub(float64(deleted))
	}
	return deleted
}
