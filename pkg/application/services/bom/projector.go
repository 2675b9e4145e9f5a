package bom

import (
	"github.com/shopspring/decimal"

	"github.com/torvan-medical/cleanstation-bom/pkg/application/dto"
	"github.com/torvan-medical/cleanstation-bom/pkg/domain/entities"
)

// Project converts a hierarchical BOM into the full generation result:
// the tree itself, its depth-first flattened projection, counts, and the
// extended-cost rollup. Flattening preserves insertion order
// (first-expanded-first-flattened) and is idempotent on a given tree.
func Project(hierarchical []*entities.BOMItem) *dto.BOMResult {
	flattened := Flatten(hierarchical)

	total := decimal.Zero
	for _, row := range flattened {
		total = total.Add(row.ExtendedCost)
	}

	return &dto.BOMResult{
		Hierarchical:  hierarchical,
		Flattened:     flattened,
		TotalItems:    len(flattened),
		TopLevelItems: len(hierarchical),
		TotalCost:     total,
	}
}

// Flatten walks the tree depth-first, producing a flat sequence where
// every row carries its own nesting depth and a parent pointer into the
// sequence (-1 for top-level rows).
func Flatten(items []*entities.BOMItem) []dto.FlattenedItem {
	var rows []dto.FlattenedItem
	for _, item := range items {
		rows = flattenInto(rows, item, 0, -1)
	}
	return rows
}

func flattenInto(rows []dto.FlattenedItem, item *entities.BOMItem, level, parent int) []dto.FlattenedItem {
	row := dto.FlattenedItem{
		ID:                   item.ID,
		Name:                 item.Name,
		Quantity:             item.Quantity,
		Category:             item.Category,
		ItemType:             item.ItemType,
		IndentLevel:          level,
		HasChildren:          len(item.Children) > 0,
		Parent:               parent,
		IsPlaceholder:        item.IsPlaceholder,
		IsCustom:             item.IsCustom,
		IsPart:               item.IsPart,
		ResolutionSuggestion: item.ResolutionSuggestion,
		UnitCost:             item.UnitCost,
		ExtendedCost:         item.UnitCost.Mul(decimal.NewFromInt(int64(item.Quantity))),
	}

	index := len(rows)
	rows = append(rows, row)
	for _, child := range item.Children {
		rows = flattenInto(rows, child, level+1, index)
	}
	return rows
}
