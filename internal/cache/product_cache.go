package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ProductNameCache keeps product display names in redis under product-name:<id>.
type ProductNameCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewProductNameCache(rdb *redis.Client, ttl time.Duration) *ProductNameCache {
	return &ProductNameCache{rdb: rdb, ttl: ttl}
}

func key(productID string) string {
	return fmt.Sprintf("product-name:%s", productID)
}

// GetNames returns the cached names; misses are absent from the map.
func (c *ProductNameCache) GetNames(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = key(id)
	}

	vals, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return names, err
	}
	for i, v := range vals {
		if name, ok := v.(string); ok {
			names[ids[i]] = name
		}
	}
	return names, nil
}

func (c *ProductNameCache) SetNames(ctx context.Context, names map[string]string) error {
	if len(names) == 0 {
		return nil
	}

	pipe := c.rdb.Pipeline()
	for id, name := range names {
		pipe.Set(ctx, key(id), name, c.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}
