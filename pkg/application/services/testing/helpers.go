// Package testing provides shared catalog fixtures for engine tests.
package testing

import (
	"github.com/shopspring/decimal"

	"github.com/torvan-medical/cleanstation-bom/pkg/domain/entities"
	"github.com/torvan-medical/cleanstation-bom/pkg/infrastructure/fallback"
	"github.com/torvan-medical/cleanstation-bom/pkg/infrastructure/repositories/memory"
)

// Part builds a catalog part fixture - panics on validation error
func Part(id, name, partType string) entities.Part {
	part, err := entities.NewPart(entities.ItemID(id), name, partType, entities.PartActive)
	if err != nil {
		panic(err)
	}
	return *part
}

// PricedPart builds a catalog part fixture carrying a unit cost
func PricedPart(id, name, partType, unitCost string) entities.Part {
	part := Part(id, name, partType)
	cost, err := decimal.NewFromString(unitCost)
	if err != nil {
		panic(err)
	}
	part.UnitCost = cost
	return part
}

// Assembly builds a catalog assembly fixture - panics on validation error
func Assembly(id, name string, assemblyType entities.AssemblyType, links ...entities.ComponentLink) entities.Assembly {
	assembly, err := entities.NewAssembly(entities.ItemID(id), name, assemblyType, links)
	if err != nil {
		panic(err)
	}
	return *assembly
}

// PartLink builds a component link referencing a part
func PartLink(id string, qty int64) entities.ComponentLink {
	return entities.ComponentLink{ChildPartID: entities.ItemID(id), Quantity: entities.Quantity(qty)}
}

// AssemblyLink builds a component link referencing a nested assembly
func AssemblyLink(id string, qty int64) entities.ComponentLink {
	return entities.ComponentLink{ChildAssemblyID: entities.ItemID(id), Quantity: entities.Quantity(qty)}
}

// BuildTestCatalog builds the standard CleanStation test catalog used
// across the engine tests.
func BuildTestCatalog() *memory.CatalogRepository {
	repo := memory.NewCatalogRepository()

	// Documentation
	repo.AddPart(Part("T2-DOC-IFU-EN", "Instructions For Use (English)", "DOCUMENT"))
	repo.AddPart(Part("T2-DOC-IFU-FR", "Instructions For Use (French)", "DOCUMENT"))
	repo.AddPart(Part("T2-DOC-QC-CHECKLIST", "QC Checklist", "DOCUMENT"))
	repo.AddAssembly(Assembly("T2-MANUAL-EN-KIT", "CleanStation Manuals Kit (English)", entities.AssemblyTypeKit,
		PartLink("T2-DOC-IFU-EN", 1),
		PartLink("T2-DOC-QC-CHECKLIST", 1),
	))
	repo.AddAssembly(Assembly("T2-MANUAL-FR-KIT", "CleanStation Manuals Kit (French)", entities.AssemblyTypeKit,
		PartLink("T2-DOC-IFU-FR", 1),
		PartLink("T2-DOC-QC-CHECKLIST", 1),
	))

	// Sink bodies with a nested frame sub-assembly for multiplication cases
	repo.AddPart(PricedPart("T2-BRACKET", "Mounting Bracket", "HARDWARE", "4.50"))
	repo.AddPart(PricedPart("T2-HDW-M5-PACK", "M5 Hardware Pack", "HARDWARE", "2.25"))
	repo.AddPart(Part("T2-BODY-SHELL", "Sink Body Shell", "FABRICATION"))
	repo.AddAssembly(Assembly("FRAME-KIT", "Frame Kit", entities.AssemblyTypeKit,
		PartLink("T2-BRACKET", 3),
		PartLink("T2-HDW-M5-PACK", 1),
	))
	for _, bodyID := range []string{"BODY-48-60", "BODY-61-72", "BODY-73-120"} {
		repo.AddAssembly(Assembly(bodyID, "Sink Body "+bodyID, entities.AssemblyTypeAssembly,
			PartLink("T2-BODY-SHELL", 1),
			AssemblyLink("FRAME-KIT", 2),
		))
	}

	// Legs and feet
	repo.AddPart(Part("T2-LEG-COLUMN", "Leg Column", "FABRICATION"))
	repo.AddAssembly(Assembly("T2-DL27-KIT", "Height Adjustable Leg Kit DL27", entities.AssemblyTypeKit,
		PartLink("T2-LEG-COLUMN", 4),
	))
	repo.AddPart(Part("T2-CASTER", "Locking Caster", "HARDWARE"))
	repo.AddAssembly(Assembly("T2-CASTER-KIT", "Locking Caster Kit", entities.AssemblyTypeKit,
		PartLink("T2-CASTER", 4),
	))

	// Overhead light and pegboard kits
	repo.AddPart(Part("T2-OHL-FIXTURE", "Overhead LED Fixture", "ELECTRICAL"))
	repo.AddAssembly(Assembly("T2-OHL-KIT", "Overhead Light Kit", entities.AssemblyTypeKit,
		PartLink("T2-OHL-FIXTURE", 1),
		PartLink("T2-HDW-M5-PACK", 1),
	))
	repo.AddPart(Part("T2-PB-PANEL-48", "Pegboard Panel 48", "FABRICATION"))
	repo.AddAssembly(Assembly("T2-ADW-PB-48-KIT", "Pegboard Kit 48", entities.AssemblyTypeKit,
		PartLink("T2-PB-PANEL-48", 1),
		PartLink("T2-HDW-M5-PACK", 2),
	))
	repo.AddAssembly(Assembly("T2-ADW-PB-60-KIT", "Pegboard Kit 60", entities.AssemblyTypeKit,
		PartLink("T2-PB-PANEL-48", 1),
	))
	repo.AddAssembly(Assembly("T2-ADW-PB-48-PERF-GREEN-KIT", "Pegboard Kit 48 Perforated Green", entities.AssemblyTypeKit,
		PartLink("T2-PB-PANEL-48", 1),
	))

	// Basins
	repo.AddPart(Part("T2-DRAIN-VALVE", "Drain Valve", "PLUMBING"))
	repo.AddAssembly(Assembly("T2-BSN-ESK-KIT", "E-Sink Basin Kit", entities.AssemblyTypeKit,
		PartLink("T2-DRAIN-VALVE", 1),
	))
	repo.AddAssembly(Assembly("T2-BSN-EDR-KIT", "E-Drain Basin Kit", entities.AssemblyTypeKit,
		PartLink("T2-DRAIN-VALVE", 1),
	))
	repo.AddAssembly(Assembly("T2-BSN-ESK-DI-KIT", "E-Sink DI Basin Kit", entities.AssemblyTypeKit,
		PartLink("T2-DRAIN-VALVE", 1),
	))
	repo.AddPart(Part("T2-BSN-SIZE-2020", "Basin 20x20x8", "FABRICATION"))
	repo.AddAssembly(Assembly("T2-BSN-LIGHT-KIT", "Basin Light Kit", entities.AssemblyTypeKit,
		PartLink("T2-OHL-FIXTURE", 1),
	))

	// Faucets and sprayers
	repo.AddAssembly(Assembly("T2-DI-GOOSENECK-FAUCET-KIT", "DI Gooseneck Faucet Kit", entities.AssemblyTypeKit,
		PartLink("T2-DRAIN-VALVE", 1),
	))
	repo.AddAssembly(Assembly("T2-FCT-STD-KIT", "Standard Faucet Kit", entities.AssemblyTypeKit,
		PartLink("T2-DRAIN-VALVE", 1),
	))
	repo.AddAssembly(Assembly("T2-SPR-AIR-KIT", "Air Gun Sprayer Kit", entities.AssemblyTypeKit,
		PartLink("T2-DRAIN-VALVE", 1),
	))

	// Control box components used by the dynamic expansion table
	repo.AddPart(PricedPart("T2-CB-ENCL-S", "Control Box Enclosure Small", "ELECTRICAL", "85.00"))
	repo.AddPart(PricedPart("T2-CB-ENCL-M", "Control Box Enclosure Medium", "ELECTRICAL", "110.00"))
	repo.AddPart(PricedPart("T2-EDRAIN-BOARD", "E-Drain Control Board", "ELECTRICAL", "240.00"))
	repo.AddPart(PricedPart("T2-ESINK-BOARD", "E-Sink Control Board", "ELECTRICAL", "260.00"))
	repo.AddPart(Part("T2-CB-PSU-120", "Power Supply 120W", "ELECTRICAL"))
	repo.AddPart(Part("T2-CB-PSU-240", "Power Supply 240W", "ELECTRICAL"))
	repo.AddPart(Part("T2-CB-HARNESS-EDR", "E-Drain Harness", "ELECTRICAL"))
	repo.AddPart(Part("T2-CB-HARNESS-ESK", "E-Sink Harness", "ELECTRICAL"))

	// A catalog-defined control box outside the dynamic component set
	repo.AddAssembly(Assembly("T2-CTRL-ESK3", "Control Box ESK3", entities.AssemblyTypeComplex,
		PartLink("T2-CB-ENCL-M", 1),
		PartLink("T2-ESINK-BOARD", 3),
	))

	// Part id that also resolves as an assembly under the ASSY- convention
	repo.AddPart(Part("ASSY-T2-VALVE-SET", "Valve Set (part entry)", "PLUMBING"))
	repo.AddAssembly(Assembly("ASSY-T2-VALVE-SET", "Valve Set", entities.AssemblyTypeAssembly,
		PartLink("T2-DRAIN-VALVE", 2),
	))
	repo.AddAssembly(Assembly("T2-PLUMBING-KIT", "Plumbing Kit", entities.AssemblyTypeKit,
		PartLink("ASSY-T2-VALVE-SET", 1),
	))

	return repo
}

// BuildTestFallback builds the standard fallback provider fixture
func BuildTestFallback() *fallback.Provider {
	return fallback.NewStaticProvider(
		map[entities.ItemID]entities.ItemID{
			"HEIGHT-ADJUSTABLE": "T2-DL27-KIT",
			"GHOST-GENERIC":     "GHOST-SPECIFIC", // maps to an id nothing carries
		},
		[]entities.Assembly{
			Assembly("T2-ADW-PB-KIT", "Pegboard Kit (Generic)", entities.AssemblyTypeKit,
				PartLink("T2-HDW-M5-PACK", 1),
			),
		},
	)
}

// CompleteSinkConfig builds a complete two-basin sink configuration
func CompleteSinkConfig() *entities.SinkConfiguration {
	return &entities.SinkConfiguration{
		ModelID:    "T2-B2",
		Length:     60,
		Width:      30,
		LegsTypeID: "T2-DL27-KIT",
		FeetTypeID: "T2-CASTER-KIT",
		Basins: []entities.BasinConfiguration{
			{BasinTypeID: "T2-BSN-ESK-KIT", BasinSizePartNumber: "T2-BSN-SIZE-2020"},
			{BasinTypeID: "T2-BSN-EDR-KIT", BasinSizePartNumber: "T2-BSN-SIZE-2020"},
		},
		Faucets: []entities.FaucetConfiguration{
			{FaucetTypeID: "T2-FCT-STD-KIT", Quantity: 1},
		},
	}
}

// SampleOrder builds an order configuration with the given build numbers,
// each carrying a copy of the complete two-basin configuration
func SampleOrder(buildNumbers ...string) *entities.OrderConfiguration {
	configs := make(map[string]*entities.SinkConfiguration, len(buildNumbers))
	for _, buildNumber := range buildNumbers {
		configs[buildNumber] = CompleteSinkConfig()
	}
	return &entities.OrderConfiguration{
		Customer:     entities.CustomerInfo{Name: "St. Mary's Hospital", Language: entities.LanguageEnglish},
		BuildNumbers: buildNumbers,
		Configs:      configs,
	}
}
