package bom

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/torvan-medical/cleanstation-bom/pkg/domain/entities"
	"github.com/torvan-medical/cleanstation-bom/pkg/domain/repositories"
	"github.com/torvan-medical/cleanstation-bom/pkg/infrastructure/metrics"
)

// Recursion guard defaults. Past WarnDepth the expander logs; past
// MaxDepth it fails with a DepthExceededError.
const (
	DefaultWarnDepth = 20
	DefaultMaxDepth  = 100
)

// assemblyPrefix is the catalog convention for part identifiers that also
// exist as assemblies in the shared namespace.
const assemblyPrefix = "ASSY-"

// visitKey dedupes expansion within one branch: the same identifier is
// skipped when re-encountered under the same category tag on the current
// ancestor path. The same identifier in unrelated branches still expands,
// which is correct (the same fastener can appear in two sub-assemblies).
type visitKey struct {
	ID       entities.ItemID
	Category entities.Category
}

// Expander resolves identifiers against the catalog and recursively
// expands assemblies into BOM item trees.
type Expander struct {
	catalog   repositories.CatalogRepository
	fallback  repositories.FallbackProvider // may be nil
	logger    *zap.Logger
	warnDepth int
	maxDepth  int
}

// NewExpander creates an Expander. A nil fallback disables the resource
// fallback chain; a nil logger is replaced with a nop logger.
func NewExpander(
	catalog repositories.CatalogRepository,
	fallback repositories.FallbackProvider,
	logger *zap.Logger,
	warnDepth, maxDepth int,
) *Expander {
	if logger == nil {
		logger = zap.NewNop()
	}
	if warnDepth <= 0 {
		warnDepth = DefaultWarnDepth
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Expander{
		catalog:   catalog,
		fallback:  fallback,
		logger:    logger,
		warnDepth: warnDepth,
		maxDepth:  maxDepth,
	}
}

// Expand resolves id and appends the resulting BOM item (with its fully
// expanded children) to out. quantity is the already-multiplied quantity
// for this node. An unresolved identifier degrades to a placeholder and
// never fails the call; only a depth ceiling breach or an unexpected
// repository error is returned.
func (e *Expander) Expand(
	ctx context.Context,
	id entities.ItemID,
	quantity entities.Quantity,
	category entities.Category,
	visited map[visitKey]bool,
	depth int,
	out *[]*entities.BOMItem,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := visitKey{ID: id, Category: category}
	if visited[key] {
		e.logger.Debug("skipping already visited assembly",
			zap.String("assembly_id", string(id)),
			zap.String("category", string(category)),
			zap.Int("depth", depth))
		return nil
	}
	visited[key] = true
	defer delete(visited, key) // branch-scoped, not call-global

	if depth > e.maxDepth {
		return &entities.DepthExceededError{ID: id, Depth: depth}
	}
	if depth > e.warnDepth {
		e.logger.Warn("expansion depth beyond expected nesting",
			zap.String("assembly_id", string(id)),
			zap.Int("depth", depth))
	}
	metrics.ExpansionDepth.Observe(float64(depth))

	assembly, err := e.catalog.GetAssemblyByID(ctx, id)
	if err == nil {
		metrics.ExpansionsTotal.WithLabelValues("assembly").Inc()
		item, err := e.expandAssembly(ctx, assembly, quantity, category, visited, depth)
		if err != nil {
			return err
		}
		*out = append(*out, item)
		return nil
	}
	if !errors.Is(err, entities.ErrNotFound) {
		return &entities.RepositoryError{Op: "get assembly", ID: id, Err: err}
	}

	// Some catalogs register plain parts under identifiers callers expand
	// directly, so fall through to the part namespace.
	part, err := e.catalog.GetPartByID(ctx, id)
	if err == nil {
		metrics.ExpansionsTotal.WithLabelValues("part").Inc()
		*out = append(*out, leafFromPart(part, quantity, category))
		return nil
	}
	if !errors.Is(err, entities.ErrNotFound) {
		return &entities.RepositoryError{Op: "get part", ID: id, Err: err}
	}

	return e.expandFallback(ctx, id, quantity, category, visited, depth, out)
}

// expandAssembly builds the BOM item for a resolved assembly and expands
// every component link beneath it.
func (e *Expander) expandAssembly(
	ctx context.Context,
	assembly *entities.Assembly,
	quantity entities.Quantity,
	category entities.Category,
	visited map[visitKey]bool,
	depth int,
) (*entities.BOMItem, error) {
	item := &entities.BOMItem{
		ID:       assembly.ID,
		Name:     assembly.Name,
		Quantity: quantity,
		Category: category,
		ItemType: assembly.Type.String(),
	}

	for _, link := range assembly.Components {
		childQty := quantity * link.Quantity

		switch {
		case link.ChildAssemblyID != "":
			err := e.Expand(ctx, link.ChildAssemblyID, childQty,
				entities.CategorySubAssembly, visited, depth+1, &item.Children)
			if err != nil {
				return nil, err
			}

		case link.ChildPartID != "":
			if err := e.expandPartLink(ctx, link.ChildPartID, childQty, visited, depth, item); err != nil {
				return nil, err
			}

		default:
			// Integrity violation: the link resolves to nothing. Surface it
			// rather than silently dropping the line.
			e.logger.Warn("component link with no child reference",
				zap.String("assembly_id", string(assembly.ID)),
				zap.String("notes", link.Notes))
			item.Children = append(item.Children, &entities.BOMItem{
				ID:            "UNKNOWN",
				Name:          "Unknown component",
				Quantity:      childQty,
				Category:      entities.CategoryUnknownComponent,
				ItemType:      entities.ItemTypeUnknown,
				IsPlaceholder: true,
				IsPart:        true,
			})
			metrics.PlaceholdersTotal.Inc()
		}
	}

	return item, nil
}

// expandPartLink appends a child for a part-referencing component link.
// Parts carrying the ASSY- prefix that also resolve in the assembly
// namespace are treated as deeper sub-assemblies.
func (e *Expander) expandPartLink(
	ctx context.Context,
	partID entities.ItemID,
	quantity entities.Quantity,
	visited map[visitKey]bool,
	depth int,
	parent *entities.BOMItem,
) error {
	if strings.HasPrefix(string(partID), assemblyPrefix) {
		if _, err := e.catalog.GetAssemblyByID(ctx, partID); err == nil {
			return e.Expand(ctx, partID, quantity,
				entities.CategorySubAssembly, visited, depth+1, &parent.Children)
		} else if !errors.Is(err, entities.ErrNotFound) {
			return &entities.RepositoryError{Op: "get assembly", ID: partID, Err: err}
		}
	}

	part, err := e.catalog.GetPartByID(ctx, partID)
	if err == nil {
		parent.Children = append(parent.Children, leafFromPart(part, quantity, entities.CategoryPart))
		return nil
	}
	if !errors.Is(err, entities.ErrNotFound) {
		return &entities.RepositoryError{Op: "get part", ID: partID, Err: err}
	}

	// Part referenced by a link but absent from the catalog: keep the line
	// as a placeholder leaf so the gap stays visible downstream.
	e.logger.Warn("linked part missing from catalog",
		zap.String("part_id", string(partID)))
	metrics.PlaceholdersTotal.Inc()
	parent.Children = append(parent.Children, &entities.BOMItem{
		ID:            partID,
		Name:          "Unknown part: " + string(partID),
		Quantity:      quantity,
		Category:      entities.CategoryPart,
		ItemType:      entities.ItemTypeUnknown,
		IsPlaceholder: true,
		IsPart:        true,
	})
	return nil
}

// expandFallback runs the resource fallback chain for an identifier the
// primary catalog does not know: generic-to-specific mapping first (only
// when the mapped identifier is catalog-present), then the static assembly
// table, then a placeholder carrying the mapping suggestion if one exists.
func (e *Expander) expandFallback(
	ctx context.Context,
	id entities.ItemID,
	quantity entities.Quantity,
	category entities.Category,
	visited map[visitKey]bool,
	depth int,
	out *[]*entities.BOMItem,
) error {
	var suggestion entities.ItemID

	if e.fallback != nil {
		if mapped, ok := e.fallback.ResolveGeneric(id); ok {
			present, err := e.catalogHas(ctx, mapped)
			if err != nil {
				return err
			}
			if present {
				e.logger.Info("substituting generic identifier",
					zap.String("generic_id", string(id)),
					zap.String("specific_id", string(mapped)))
				metrics.FallbackHitsTotal.WithLabelValues("generic_mapping").Inc()
				return e.Expand(ctx, mapped, quantity, category, visited, depth, out)
			}
			suggestion = mapped
		}

		if assembly, ok := e.fallback.GetAssembly(id); ok {
			e.logger.Info("resolving assembly from fallback resources",
				zap.String("assembly_id", string(id)))
			metrics.FallbackHitsTotal.WithLabelValues("static_assembly").Inc()
			item, err := e.expandAssembly(ctx, assembly, quantity, category, visited, depth)
			if err != nil {
				return err
			}
			*out = append(*out, item)
			return nil
		}
	}

	if category == "" {
		category = entities.CategoryUnknown
	}
	e.logger.Warn("identifier unresolved, degrading to placeholder",
		zap.String("assembly_id", string(id)),
		zap.String("suggestion", string(suggestion)))
	metrics.ExpansionsTotal.WithLabelValues("placeholder").Inc()
	metrics.PlaceholdersTotal.Inc()
	*out = append(*out, &entities.BOMItem{
		ID:                   id,
		Name:                 "Unresolved: " + string(id),
		Quantity:             quantity,
		Category:             category,
		ItemType:             entities.ItemTypeUnknown,
		IsPlaceholder:        true,
		IsPart:               true,
		ResolutionSuggestion: suggestion,
	})
	return nil
}

// catalogHas reports whether id resolves in either catalog namespace
func (e *Expander) catalogHas(ctx context.Context, id entities.ItemID) (bool, error) {
	if _, err := e.catalog.GetAssemblyByID(ctx, id); err == nil {
		return true, nil
	} else if !errors.Is(err, entities.ErrNotFound) {
		return false, &entities.RepositoryError{Op: "get assembly", ID: id, Err: err}
	}
	if _, err := e.catalog.GetPartByID(ctx, id); err == nil {
		return true, nil
	} else if !errors.Is(err, entities.ErrNotFound) {
		return false, &entities.RepositoryError{Op: "get part", ID: id, Err: err}
	}
	return false, nil
}

// leafFromPart builds a terminal BOM item for a catalog part
func leafFromPart(part *entities.Part, quantity entities.Quantity, category entities.Category) *entities.BOMItem {
	itemType := part.Type
	if itemType == "" {
		itemType = entities.ItemTypePart
	}
	return &entities.BOMItem{
		ID:       part.ID,
		Name:     part.Name,
		Quantity: quantity,
		Category: category,
		ItemType: itemType,
		IsPart:   true,
		UnitCost: part.UnitCost,
	}
}
