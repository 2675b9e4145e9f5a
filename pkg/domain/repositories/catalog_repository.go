package repositories

import (
	"context"

	"github.com/torvan-medical/cleanstation-bom/pkg/domain/entities"
)

// CatalogRepository provides read-only access to the parts and assemblies
// catalog. Implementations return entities.ErrNotFound for a missing
// identifier; any other error is treated as a fatal repository failure by
// the expansion engine.
type CatalogRepository interface {
	// GetAssemblyByID returns the assembly with its direct component links
	GetAssemblyByID(ctx context.Context, id entities.ItemID) (*entities.Assembly, error)

	// GetPartByID returns a leaf catalog part
	GetPartByID(ctx context.Context, id entities.ItemID) (*entities.Part, error)
}

// FallbackProvider answers catalog misses from static resource data. It is
// consulted only after the primary repository misses on both the assembly
// and the part namespace. Implementations load their data once and hold it
// for the process lifetime; they are explicitly constructed and injected,
// never global.
type FallbackProvider interface {
	// ResolveGeneric maps a generic identifier to a specific catalog
	// identifier (e.g. HEIGHT-ADJUSTABLE -> T2-DL27-KIT)
	ResolveGeneric(id entities.ItemID) (entities.ItemID, bool)

	// GetAssembly returns a static assembly definition for identifiers the
	// primary catalog does not carry
	GetAssembly(id entities.ItemID) (*entities.Assembly, bool)
}
