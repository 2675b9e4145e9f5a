// Package memory provides an in-memory CatalogRepository used by tests
// and by the CLI when a catalog is loaded from CSV files.
package memory

import (
	"context"

	"github.com/torvan-medical/cleanstation-bom/pkg/domain/entities"
	"github.com/torvan-medical/cleanstation-bom/pkg/domain/repositories"
)

// CatalogRepository stores parts and assemblies in maps keyed by identifier
type CatalogRepository struct {
	parts      map[entities.ItemID]entities.Part
	assemblies map[entities.ItemID]entities.Assembly
}

// NewCatalogRepository creates an empty in-memory catalog
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{
		parts:      make(map[entities.ItemID]entities.Part),
		assemblies: make(map[entities.ItemID]entities.Assembly),
	}
}

// Verify interface compliance
var _ repositories.CatalogRepository = (*CatalogRepository)(nil)

// AddPart adds a part to the catalog
func (r *CatalogRepository) AddPart(part entities.Part) {
	r.parts[part.ID] = part
}

// AddAssembly adds an assembly to the catalog
func (r *CatalogRepository) AddAssembly(assembly entities.Assembly) {
	r.assemblies[assembly.ID] = assembly
}

// LoadParts loads parts into the catalog
func (r *CatalogRepository) LoadParts(parts []*entities.Part) error {
	for _, part := range parts {
		r.AddPart(*part)
	}
	return nil
}

// LoadAssemblies loads assemblies into the catalog
func (r *CatalogRepository) LoadAssemblies(assemblies []*entities.Assembly) error {
	for _, assembly := range assemblies {
		r.AddAssembly(*assembly)
	}
	return nil
}

// GetAssemblyByID returns an assembly with its component links
func (r *CatalogRepository) GetAssemblyByID(_ context.Context, id entities.ItemID) (*entities.Assembly, error) {
	assembly, ok := r.assemblies[id]
	if !ok {
		return nil, entities.ErrNotFound
	}
	return &assembly, nil
}

// GetPartByID returns a leaf catalog part
func (r *CatalogRepository) GetPartByID(_ context.Context, id entities.ItemID) (*entities.Part, error) {
	part, ok := r.parts[id]
	if !ok {
		return nil, entities.ErrNotFound
	}
	return &part, nil
}
