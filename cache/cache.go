package cache

import (
	"time"

	"github.com/patrickmn/go-cache"
)

const DefaultSessionTTL = 30 * time.Minute

var PresetCache = cache.New(cache.NoExpiration, 0)
var RateLimiterCache = cache.New(10*time.Minute, 15*time.Minute)

// NewSessionCache holds live form sessions; the janitor evicts idle ones.
func NewSessionCache(ttl time.Duration) *cache.Cache {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return cache.New(ttl, ttl/2)
}
