package cache

import (
	"context"
	"time"

	"github.com/sokoerp/pos-api/internal/domain/entity"
)

// ProductCache caches POS product lookups per organization. A miss is not an
// error; callers always fall through to the database.
type ProductCache interface {
	Get(ctx context.Context, key string) ([]entity.Product, bool, error)
	Set(ctx context.Context, key string, products []entity.Product, ttl time.Duration) error
	// Invalidate drops every cached lookup for the organization prefix.
	Invalidate(ctx context.Context, prefix string) error
}

// NoopProductCache satisfies ProductCache without caching anything. Used when
// Redis is not configured.
type NoopProductCache struct{}

func (NoopProductCache) Get(_ context.Context, _ string) ([]entity.Product, bool, error) {
	return nil, false, nil
}

func (NoopProductCache) Set(_ context.Context, _ string, _ []entity.Product, _ time.Duration) error {
	return nil
}

func (NoopProductCache) Invalidate(_ context.Context, _ string) error {
	return nil
}
