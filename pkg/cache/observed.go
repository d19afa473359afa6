package cache

import (
	"context"
	"time"

	"github.com/matzehuels/scatterfield/pkg/observability"
)

type observed struct {
	Cache
}

// Instrument reports every Get and Set on c to observability.Cache().
func Instrument(c Cache) Cache {
	if _, ok := c.(observed); ok {
		return c
	}
	return observed{Cache: c}
}

func (o observed) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := o.Cache.Get(ctx, key)
	if err == nil {
		if ok {
			observability.Cache().OnCacheHit(ctx, key)
		} else {
			observability.Cache().OnCacheMiss(ctx, key)
		}
	}
	return data, ok, err
}

func (o observed) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := o.Cache.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, key, len(data))
	}
	return err
}
