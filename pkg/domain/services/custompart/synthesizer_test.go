package custompart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torvan-medical/cleanstation-bom/pkg/domain/entities"
	"github.com/torvan-medical/cleanstation-bom/pkg/infrastructure/repositories/memory"
)

func newSynthesizer(t *testing.T) (*Synthesizer, *memory.CatalogRepository) {
	t.Helper()
	repo := memory.NewCatalogRepository()
	return NewSynthesizer(repo), repo
}

func TestSynthesizer_PegboardID(t *testing.T) {
	synth, _ := newSynthesizer(t)
	ctx := context.Background()

	id, err := synth.PegboardID(ctx, 30, 48)
	require.NoError(t, err)
	assert.Equal(t, entities.ItemID("T2-CUSTOM-PB-30X48"), id)

	info, err := Parse(id)
	require.NoError(t, err)
	assert.Equal(t, KindPegboard, info.Kind)
	assert.Equal(t, 30, info.Width)
	assert.Equal(t, 48, info.Length)
	assert.Equal(t, 0, info.Depth)
}

func TestSynthesizer_BasinID(t *testing.T) {
	synth, _ := newSynthesizer(t)
	ctx := context.Background()

	id, err := synth.BasinID(ctx, 20, 20, 8)
	require.NoError(t, err)
	assert.Equal(t, entities.ItemID("T2-CUSTOM-BSN-20X20X8"), id)

	info, err := Parse(id)
	require.NoError(t, err)
	assert.Equal(t, KindBasin, info.Kind)
	assert.Equal(t, 20, info.Width)
	assert.Equal(t, 20, info.Length)
	assert.Equal(t, 8, info.Depth)
}

func TestSynthesizer_InvalidDimensions(t *testing.T) {
	synth, _ := newSynthesizer(t)
	ctx := context.Background()

	_, err := synth.PegboardID(ctx, 0, 48)
	assert.Error(t, err)

	_, err = synth.PegboardID(ctx, 30, -1)
	assert.Error(t, err)

	_, err = synth.PegboardID(ctx, 1000, 48)
	assert.Error(t, err, "dimension above MaxDimension must be rejected")

	_, err = synth.BasinID(ctx, 20, 20, 0)
	assert.Error(t, err)

	// MaxDimension itself is valid
	_, err = synth.BasinID(ctx, 999, 999, 999)
	assert.NoError(t, err)
}

func TestSynthesizer_CatalogCollision(t *testing.T) {
	synth, repo := newSynthesizer(t)
	ctx := context.Background()

	part, err := entities.NewPart("T2-CUSTOM-PB-30X48", "Pre-existing part", "FABRICATION", entities.PartActive)
	require.NoError(t, err)
	repo.AddPart(*part)

	_, err = synth.PegboardID(ctx, 30, 48)
	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrPartNumberCollision)

	assembly, err := entities.NewAssembly("T2-CUSTOM-BSN-20X20X8", "Pre-existing assembly", entities.AssemblyTypeKit, nil)
	require.NoError(t, err)
	repo.AddAssembly(*assembly)

	_, err = synth.BasinID(ctx, 20, 20, 8)
	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrPartNumberCollision)
}

func TestParse_RejectsNonCustomIDs(t *testing.T) {
	for _, id := range []entities.ItemID{
		"T2-BSN-ESK-KIT",
		"T2-CUSTOM-PB-30X48X8",   // pegboard with three dims
		"T2-CUSTOM-BSN-20X20",    // basin with two dims
		"T2-CUSTOM-PB-30X",       // truncated
		"T2-CUSTOM-PB-1000X48",   // four-digit dimension
		"X-T2-CUSTOM-PB-30X48",   // prefix not anchored
	} {
		_, err := Parse(id)
		assert.Error(t, err, "%s", id)
	}
}

func TestIsCustomID(t *testing.T) {
	assert.True(t, IsCustomID("T2-CUSTOM-PB-30X48"))
	assert.True(t, IsCustomID("T2-CUSTOM-BSN-20X20X8"))
	assert.False(t, IsCustomID("T2-BSN-ESK-KIT"))
	assert.False(t, IsCustomID("T2-CUSTOM-PBX"))
}

func TestDisplayName(t *testing.T) {
	pb, err := Parse("T2-CUSTOM-PB-30X48")
	require.NoError(t, err)
	assert.Equal(t, `Custom Pegboard 30" x 48"`, DisplayName(pb))

	bsn, err := Parse("T2-CUSTOM-BSN-20X20X8")
	require.NoError(t, err)
	assert.Equal(t, `Custom Basin 20" x 20" x 8"`, DisplayName(bsn))
}
