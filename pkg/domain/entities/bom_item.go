package entities

import "github.com/shopspring/decimal"

// Category tags a BOM line with its business meaning within the sink build
type Category string

const (
	CategoryManuals           Category = "MANUALS"
	CategorySinkBody          Category = "SINK_BODY"
	CategoryLegs              Category = "LEGS"
	CategoryFeet              Category = "FEET"
	CategoryOverheadLightKit  Category = "OVERHEAD_LIGHT_KIT"
	CategoryPegboardKit       Category = "PEGBOARD_SPECIFIC_KIT"
	CategoryDrawerCompartment Category = "DRAWER_COMPARTMENT"
	CategoryBasinTypeKit      Category = "BASIN_TYPE_KIT"
	CategoryBasinSize         Category = "BASIN_SIZE"
	CategoryBasinAddon        Category = "BASIN_ADDON"
	CategoryControlBox        Category = "CONTROL_BOX"
	CategoryFaucet            Category = "FAUCET"
	CategorySprayer           Category = "SPRAYER"
	CategoryAccessory         Category = "ACCESSORY"
	CategorySubAssembly       Category = "SUB_ASSEMBLY"
	CategoryPart              Category = "PART"
	CategoryUnknown           Category = "UNKNOWN"
	CategoryUnknownComponent  Category = "UNKNOWN_COMPONENT"
)

// Item types carried on BOM lines when the catalog cannot supply one
const (
	ItemTypePart    = "PART"
	ItemTypeUnknown = "UNKNOWN"
	ItemTypeCustom  = "CUSTOM"
)

// BOMItem is a node in the generated bill-of-materials tree. Quantity is
// already multiplied through the ancestor chain; for an item with children
// the item's own quantity is the multiplier applied to its component link
// quantities when expanding grandchildren. Items are created fresh per
// generation call and never mutated once appended to a parent.
type BOMItem struct {
	ID       ItemID
	Name     string
	Quantity Quantity
	Category Category
	ItemType string
	Children []*BOMItem

	// IsPlaceholder marks a stand-in for an identifier the catalog and the
	// fallback chain could not resolve. ResolutionSuggestion, when set,
	// names the generic-mapping target an operator should verify.
	IsPlaceholder        bool
	ResolutionSuggestion ItemID

	// IsCustom marks a dimensionally generated item that has no catalog entry
	IsCustom bool

	// IsPart marks a terminal leaf as opposed to an expandable assembly
	IsPart bool

	UnitCost decimal.Decimal
}

// CountNodes returns the number of nodes in the subtree rooted at the item
func (b *BOMItem) CountNodes() int {
	count := 1
	for _, child := range b.Children {
		count += child.CountNodes()
	}
	return count
}
