// README: Redis client initialization for the POI GEO index.
package infra

import "github.com/redis/go-redis/v9"

func NewRedis(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

// NewRedisOptional returns nil when addr is empty, which disables the GEO
// fast path and routes nearest-POI lookups through PostGIS.
func NewRedisOptional(addr string) *redis.Client {
	if addr == "" {
		return nil
	}
	return NewRedis(addr)
}
