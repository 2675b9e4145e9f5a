package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ItemID identifies a catalog item. Parts and assemblies share one
// identifier namespace; some catalogs reuse a part id for an assembly
// under the ASSY- prefix convention.
type ItemID string

// Quantity represents an integer quantity for discrete manufacturing units
type Quantity int64

// PartStatus represents the lifecycle status of a catalog part
type PartStatus int

const (
	PartActive PartStatus = iota
	PartInactive
	PartObsolete
)

// String method for PartStatus enum
func (s PartStatus) String() string {
	switch s {
	case PartActive:
		return "Active"
	case PartInactive:
		return "Inactive"
	case PartObsolete:
		return "Obsolete"
	default:
		return "Unknown"
	}
}

// Part is a leaf catalog item, immutable from the engine's perspective
type Part struct {
	ID             ItemID
	Name           string
	Type           string // free-form category tag
	ManufacturerPN string
	Status         PartStatus
	UnitCost       decimal.Decimal // zero when the catalog carries no price
}

// NewPart creates a validated Part
func NewPart(id ItemID, name, partType string, status PartStatus) (*Part, error) {
	if id == "" {
		return nil, fmt.Errorf("part id cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("part %s: name cannot be empty", id)
	}
	return &Part{
		ID:     id,
		Name:   name,
		Type:   partType,
		Status: status,
	}, nil
}

// AssemblyType classifies how an assembly is composed
type AssemblyType int

const (
	AssemblyTypeAssembly AssemblyType = iota
	AssemblyTypeKit
	AssemblyTypeComplex
)

// String method for AssemblyType enum
func (t AssemblyType) String() string {
	switch t {
	case AssemblyTypeAssembly:
		return "ASSEMBLY"
	case AssemblyTypeKit:
		return "KIT"
	case AssemblyTypeComplex:
		return "COMPLEX"
	default:
		return "Unknown"
	}
}

// ParseAssemblyType parses the catalog's string form of an assembly type
func ParseAssemblyType(s string) (AssemblyType, error) {
	switch s {
	case "ASSEMBLY":
		return AssemblyTypeAssembly, nil
	case "KIT":
		return AssemblyTypeKit, nil
	case "COMPLEX":
		return AssemblyTypeComplex, nil
	default:
		return AssemblyTypeAssembly, fmt.Errorf("unknown assembly type: %q", s)
	}
}

// ComponentLink belongs to exactly one parent assembly and references
// exactly one child, either a part or a nested assembly. A link with
// neither child set is a catalog integrity violation; the expander
// surfaces it as an UNKNOWN_COMPONENT placeholder rather than dropping it.
type ComponentLink struct {
	ChildPartID     ItemID
	ChildAssemblyID ItemID
	Quantity        Quantity
	Notes           string
}

// HasChild reports whether the link resolves to any child at all
func (l ComponentLink) HasChild() bool {
	return l.ChildPartID != "" || l.ChildAssemblyID != ""
}

// Assembly is a catalog item composed of other items, immutable from
// the engine's perspective
type Assembly struct {
	ID              ItemID
	Name            string
	Type            AssemblyType
	CategoryCode    string
	SubcategoryCode string
	Components      []ComponentLink
}

// NewAssembly creates a validated Assembly
func NewAssembly(id ItemID, name string, assemblyType AssemblyType, components []ComponentLink) (*Assembly, error) {
	if id == "" {
		return nil, fmt.Errorf("assembly id cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("assembly %s: name cannot be empty", id)
	}
	for i, link := range components {
		if link.ChildPartID != "" && link.ChildAssemblyID != "" {
			return nil, fmt.Errorf(
				"assembly %s component %d: link cannot reference both a part and an assembly",
				id, i,
			)
		}
		if link.Quantity <= 0 {
			return nil, fmt.Errorf(
				"assembly %s component %d: quantity must be positive, got %d",
				id, i, link.Quantity,
			)
		}
	}
	return &Assembly{
		ID:         id,
		Name:       name,
		Type:       assemblyType,
		Components: components,
	}, nil
}
