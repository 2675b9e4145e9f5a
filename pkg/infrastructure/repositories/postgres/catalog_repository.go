// Package postgres provides a CatalogRepository backed by PostgreSQL.
// Schema: parts(id, name, type, manufacturer_pn, status, unit_cost),
// assemblies(id, name, type, category_code, subcategory_code),
// assembly_components(assembly_id, position, child_part_id,
// child_assembly_id, quantity, notes) with child columns nullable so that
// integrity-broken links remain representable and are surfaced by the
// engine instead of disappearing in a join.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/torvan-medical/cleanstation-bom/pkg/domain/entities"
	"github.com/torvan-medical/cleanstation-bom/pkg/domain/repositories"
)

// CatalogRepository reads the parts and assemblies catalog from Postgres
type CatalogRepository struct {
	db *sql.DB
}

// Verify interface compliance
var _ repositories.CatalogRepository = (*CatalogRepository)(nil)

// Open connects to Postgres with the given DSN and verifies the connection
func Open(dsn string) (*CatalogRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return &CatalogRepository{db: db}, nil
}

// NewCatalogRepository wraps an existing database handle
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Close releases the underlying database handle
func (r *CatalogRepository) Close() error {
	return r.db.Close()
}

// GetPartByID retrieves a leaf catalog part
func (r *CatalogRepository) GetPartByID(ctx context.Context, id entities.ItemID) (*entities.Part, error) {
	query := `SELECT id, name, type, COALESCE(manufacturer_pn, ''), status, COALESCE(unit_cost, 0)
              FROM parts WHERE id = $1`

	var part entities.Part
	var status int
	var unitCost string
	err := r.db.QueryRowContext(ctx, query, string(id)).Scan(
		&part.ID,
		&part.Name,
		&part.Type,
		&part.ManufacturerPN,
		&status,
		&unitCost,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrNotFound
		}
		return nil, fmt.Errorf("error getting part %s: %w", id, err)
	}
	part.Status = entities.PartStatus(status)
	cost, err := decimal.NewFromString(unitCost)
	if err != nil {
		return nil, fmt.Errorf("error parsing unit cost for part %s: %w", id, err)
	}
	part.UnitCost = cost
	return &part, nil
}

// GetAssemblyByID retrieves an assembly and its direct component links,
// ordered by their catalog position
func (r *CatalogRepository) GetAssemblyByID(ctx context.Context, id entities.ItemID) (*entities.Assembly, error) {
	query := `SELECT id, name, type, COALESCE(category_code, ''), COALESCE(subcategory_code, '')
              FROM assemblies WHERE id = $1`

	var assembly entities.Assembly
	var typeName string
	err := r.db.QueryRowContext(ctx, query, string(id)).Scan(
		&assembly.ID,
		&assembly.Name,
		&typeName,
		&assembly.CategoryCode,
		&assembly.SubcategoryCode,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrNotFound
		}
		return nil, fmt.Errorf("error getting assembly %s: %w", id, err)
	}
	assemblyType, err := entities.ParseAssemblyType(typeName)
	if err != nil {
		return nil, fmt.Errorf("assembly %s: %w", id, err)
	}
	assembly.Type = assemblyType

	components, err := r.getComponents(ctx, id)
	if err != nil {
		return nil, err
	}
	assembly.Components = components
	return &assembly, nil
}

// getComponents loads the ordered component links of an assembly
func (r *CatalogRepository) getComponents(ctx context.Context, id entities.ItemID) ([]entities.ComponentLink, error) {
	query := `SELECT child_part_id, child_assembly_id, quantity, COALESCE(notes, '')
              FROM assembly_components WHERE assembly_id = $1 ORDER BY position ASC`

	rows, err := r.db.QueryContext(ctx, query, string(id))
	if err != nil {
		return nil, fmt.Errorf("error listing components for assembly %s: %w", id, err)
	}
	defer rows.Close()

	var links []entities.ComponentLink
	for rows.Next() {
		var childPart, childAssembly sql.NullString
		var link entities.ComponentLink
		if err := rows.Scan(&childPart, &childAssembly, &link.Quantity, &link.Notes); err != nil {
			return nil, fmt.Errorf("error scanning component row for assembly %s: %w", id, err)
		}
		if childPart.Valid {
			link.ChildPartID = entities.ItemID(childPart.String)
		}
		if childAssembly.Valid {
			link.ChildAssemblyID = entities.ItemID(childAssembly.String)
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating component rows for assembly %s: %w", id, err)
	}
	return links, nil
}
