package dto

import (
	"github.com/shopspring/decimal"

	"github.com/torvan-medical/cleanstation-bom/pkg/domain/entities"
)

// FlattenedItem is one row of the level-annotated flat projection of a BOM
// tree. Parent indexes into the flattened slice (-1 for top-level rows),
// so the sequence is losslessly writable as a parent-pointer table.
type FlattenedItem struct {
	ID            entities.ItemID   `json:"id"`
	Name          string            `json:"name"`
	Quantity      entities.Quantity `json:"quantity"`
	Category      entities.Category `json:"category"`
	ItemType      string            `json:"itemType"`
	IndentLevel   int               `json:"indentLevel"`
	HasChildren   bool              `json:"hasChildren"`
	Parent        int               `json:"parent"`
	IsPlaceholder bool              `json:"isPlaceholder"`
	IsCustom      bool              `json:"isCustom"`
	IsPart        bool              `json:"isPart"`

	ResolutionSuggestion entities.ItemID `json:"resolutionSuggestion,omitempty"`

	UnitCost     decimal.Decimal `json:"unitCost"`
	ExtendedCost decimal.Decimal `json:"extendedCost"`
}

// BOMResult is the complete output of one generation call
type BOMResult struct {
	Hierarchical  []*entities.BOMItem `json:"hierarchical"`
	Flattened     []FlattenedItem     `json:"flattened"`
	TotalItems    int                 `json:"totalItems"`
	TopLevelItems int                 `json:"topLevelItems"`
	TotalCost     decimal.Decimal     `json:"totalCost"`
}

// PlaceholderReport collects the placeholder and unknown-component rows of
// a result so callers can gate an order before releasing it to production.
func PlaceholderReport(result *BOMResult) []FlattenedItem {
	var rows []FlattenedItem
	for _, row := range result.Flattened {
		if row.IsPlaceholder || row.Category == entities.CategoryUnknownComponent {
			rows = append(rows, row)
		}
	}
	return rows
}
