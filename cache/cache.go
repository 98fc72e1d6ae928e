package cache

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Cache wraps go-cache. Used for schema previews so re-registering the same
// dataset file skips a collaborator round trip.
type Cache struct {
	cache *cache.Cache
}

func New() *Cache {
	return &Cache{
		cache: cache.New(10*time.Minute, 15*time.Minute),
	}
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.cache.Get(key)
}

func (c *Cache) Set(key string, value interface{}, expiration time.Duration) {
	c.cache.Set(key, value, expiration)
}

func (c *Cache) SetDefault(key string, value interface{}) {
	c.cache.Set(key, value, cache.DefaultExpiration)
}

func (c *Cache) Delete(key string) {
	c.cache.Delete(key)
}
