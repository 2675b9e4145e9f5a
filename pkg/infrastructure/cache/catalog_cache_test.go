package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torvan-medical/cleanstation-bom/pkg/domain/entities"
	"github.com/torvan-medical/cleanstation-bom/pkg/infrastructure/repositories/memory"
)

// countingCatalog counts lookups that reach the inner repository
type countingCatalog struct {
	inner         *memory.CatalogRepository
	partLookups   int
	assemblyLooks int
}

func (c *countingCatalog) GetPartByID(ctx context.Context, id entities.ItemID) (*entities.Part, error) {
	c.partLookups++
	return c.inner.GetPartByID(ctx, id)
}

func (c *countingCatalog) GetAssemblyByID(ctx context.Context, id entities.ItemID) (*entities.Assembly, error) {
	c.assemblyLooks++
	return c.inner.GetAssemblyByID(ctx, id)
}

func newCountingCatalog(t *testing.T) *countingCatalog {
	t.Helper()
	repo := memory.NewCatalogRepository()

	part, err := entities.NewPart("T2-BRACKET", "Bracket", "HARDWARE", entities.PartActive)
	require.NoError(t, err)
	repo.AddPart(*part)

	assembly, err := entities.NewAssembly("T2-KIT", "Kit", entities.AssemblyTypeKit, nil)
	require.NoError(t, err)
	repo.AddAssembly(*assembly)

	return &countingCatalog{inner: repo}
}

func TestCatalogCache_ServesRepeatedLookups(t *testing.T) {
	counting := newCountingCatalog(t)
	cached, err := NewCatalogCache(counting, 16)
	require.NoError(t, err)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		part, err := cached.GetPartByID(ctx, "T2-BRACKET")
		require.NoError(t, err)
		assert.Equal(t, "Bracket", part.Name)

		assembly, err := cached.GetAssemblyByID(ctx, "T2-KIT")
		require.NoError(t, err)
		assert.Equal(t, "Kit", assembly.Name)
	}

	assert.Equal(t, 1, counting.partLookups)
	assert.Equal(t, 1, counting.assemblyLooks)
}

func TestCatalogCache_DoesNotCacheMisses(t *testing.T) {
	counting := newCountingCatalog(t)
	cached, err := NewCatalogCache(counting, 16)
	require.NoError(t, err)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := cached.GetPartByID(ctx, "T2-NOPE")
		assert.ErrorIs(t, err, entities.ErrNotFound)
	}
	assert.Equal(t, 3, counting.partLookups, "misses go through every time")
}

func TestCatalogCache_Purge(t *testing.T) {
	counting := newCountingCatalog(t)
	cached, err := NewCatalogCache(counting, 16)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = cached.GetPartByID(ctx, "T2-BRACKET")
	require.NoError(t, err)
	cached.Purge()
	_, err = cached.GetPartByID(ctx, "T2-BRACKET")
	require.NoError(t, err)

	assert.Equal(t, 2, counting.partLookups)
}

func TestCatalogCache_DefaultSize(t *testing.T) {
	counting := newCountingCatalog(t)
	_, err := NewCatalogCache(counting, 0)
	assert.NoError(t, err)
}
