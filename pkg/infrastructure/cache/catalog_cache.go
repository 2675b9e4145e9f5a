// Package cache provides a read-through LRU decorator for catalog
// repositories. Catalog data is immutable during a generation run, so
// cached entries never need invalidation within one process lifetime.
package cache

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/torvan-medical/cleanstation-bom/pkg/domain/entities"
	"github.com/torvan-medical/cleanstation-bom/pkg/domain/repositories"
)

// DefaultSize bounds each of the assembly and part caches
const DefaultSize = 2048

// CatalogCache wraps a CatalogRepository with bounded LRU caches for
// assembly and part lookups. Misses (ErrNotFound) are not cached: they
// feed the fallback chain and stay cheap relative to real lookups.
type CatalogCache struct {
	inner      repositories.CatalogRepository
	assemblies *lru.Cache[entities.ItemID, *entities.Assembly]
	parts      *lru.Cache[entities.ItemID, *entities.Part]
}

// Verify interface compliance
var _ repositories.CatalogRepository = (*CatalogCache)(nil)

// NewCatalogCache creates a read-through cache in front of inner. A
// non-positive size falls back to DefaultSize.
func NewCatalogCache(inner repositories.CatalogRepository, size int) (*CatalogCache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	assemblies, err := lru.New[entities.ItemID, *entities.Assembly](size)
	if err != nil {
		return nil, err
	}
	parts, err := lru.New[entities.ItemID, *entities.Part](size)
	if err != nil {
		return nil, err
	}
	return &CatalogCache{
		inner:      inner,
		assemblies: assemblies,
		parts:      parts,
	}, nil
}

// GetAssemblyByID returns an assembly, serving repeated lookups from cache
func (c *CatalogCache) GetAssemblyByID(ctx context.Context, id entities.ItemID) (*entities.Assembly, error) {
	if assembly, ok := c.assemblies.Get(id); ok {
		return assembly, nil
	}
	assembly, err := c.inner.GetAssemblyByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.assemblies.Add(id, assembly)
	return assembly, nil
}

// GetPartByID returns a part, serving repeated lookups from cache
func (c *CatalogCache) GetPartByID(ctx context.Context, id entities.ItemID) (*entities.Part, error) {
	if part, ok := c.parts.Get(id); ok {
		return part, nil
	}
	part, err := c.inner.GetPartByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.parts.Add(id, part)
	return part, nil
}

// Purge empties both caches
func (c *CatalogCache) Purge() {
	c.assemblies.Purge()
	c.parts.Purge()
}
