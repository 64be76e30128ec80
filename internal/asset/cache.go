package asset

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Faultbox/orbitview/internal/logger"
)

// Cache memoizes successful loads per reference and collapses concurrent
// requests for the same reference into one call to the wrapped loader.
// Failures are not cached.
type Cache struct {
	next  Loader
	group singleflight.Group
	log   *zap.Logger

	mu     sync.Mutex
	scenes map[string]*Scene
}

// NewCache wraps next.
func NewCache(next Loader) *Cache {
	return &Cache{
		next:   next,
		log:    logger.Named("asset.cache"),
		scenes: make(map[string]*Scene),
	}
}

// Load returns the cached scene or loads it once.
func (c *Cache) Load(ctx context.Context, ref Ref) (*Scene, error) {
	key := ref.URL()

	if s, ok := c.lookup(key); ok {
		c.log.Debug("cache hit", zap.String("ref", key))
		return s, nil
	}

	v, err, shared := c.group.Do(key, func() (any, error) {
		// A flight that finished between lookup and Do already stored it.
		if s, ok := c.lookup(key); ok {
			return s, nil
		}
		s, err := c.next.Load(ctx, ref)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.scenes[key] = s
		c.mu.Unlock()
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.log.Debug("joined in-flight load", zap.String("ref", key))
	}
	return v.(*Scene), nil
}

func (c *Cache) lookup(key string) (*Scene, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.scenes[key]
	return s, ok
}

// Evict drops a cached scene so the next Load fetches it again.
func (c *Cache) Evict(ref Ref) {
	c.mu.Lock()
	delete(c.scenes, ref.URL())
	c.mu.Unlock()
	c.group.Forget(ref.URL())
}
