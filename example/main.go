package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/torvan-medical/cleanstation-bom/pkg/application/dto"
	"github.com/torvan-medical/cleanstation-bom/pkg/application/services/bom"
	"github.com/torvan-medical/cleanstation-bom/pkg/domain/entities"
	"github.com/torvan-medical/cleanstation-bom/pkg/infrastructure/fallback"
	"github.com/torvan-medical/cleanstation-bom/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()

	// Build a small in-memory catalog
	catalog := memory.NewCatalogRepository()
	setupCleanStationCatalog(catalog)

	fallbackProvider, err := fallback.NewDefaultProvider()
	if err != nil {
		fmt.Printf("failed to load fallback resources: %v\n", err)
		os.Exit(1)
	}

	service := bom.NewService(catalog, fallbackProvider, bom.DefaultConfig(), nil)

	// A single-build order: one 60" dual-basin reprocessing sink
	order := &entities.OrderConfiguration{
		Customer: entities.CustomerInfo{
			Name:     "General Hospital SPD",
			Language: entities.LanguageEnglish,
		},
		BuildNumbers: []string{"BN-2024-0042"},
		Configs: map[string]*entities.SinkConfiguration{
			"BN-2024-0042": {
				ModelID:        "T2-B2",
				Length:         60,
				Width:          30,
				LegsTypeID:     "HEIGHT-ADJUSTABLE", // generic id, resolved by the fallback mapping
				Pegboard:       true,
				PegboardTypeID: entities.PegboardPerforated,
				Basins: []entities.BasinConfiguration{
					{BasinTypeID: "T2-BSN-EDR-KIT", BasinSizePartNumber: "T2-BSN-SIZE-2020"},
					{BasinTypeID: "T2-BSN-ESK-KIT", BasinSizePartNumber: "T2-BSN-SIZE-2020"},
				},
				Faucets: []entities.FaucetConfiguration{
					{FaucetTypeID: "T2-FCT-STD-KIT", Quantity: 1},
				},
			},
		},
	}

	fmt.Println("🚰 Generating CleanStation BOM...")
	fmt.Printf("Order: %s, %d build(s)\n\n", order.Customer.Name, len(order.BuildNumbers))

	result, err := service.Generate(ctx, order)
	if err != nil {
		fmt.Printf("❌ generation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("📊 Results:")
	fmt.Printf("  Total lines: %d\n", result.TotalItems)
	fmt.Printf("  Top-level lines: %d\n", result.TopLevelItems)
	fmt.Printf("  Rolled-up cost: %s\n\n", result.TotalCost.StringFixed(2))

	fmt.Println("📝 Bill of Materials:")
	for _, row := range result.Flattened {
		marker := " "
		if row.IsPlaceholder {
			marker = "?"
		}
		fmt.Printf("  %s%s%-40s x%-4d %s\n",
			marker, strings.Repeat("  ", row.IndentLevel), row.ID, row.Quantity, row.Category)
	}

	if placeholders := dto.PlaceholderReport(result); len(placeholders) > 0 {
		fmt.Printf("\n⚠️  %d line(s) need catalog attention:\n", len(placeholders))
		for _, row := range placeholders {
			fmt.Printf("  %s", row.ID)
			if row.ResolutionSuggestion != "" {
				fmt.Printf(" (consider %s)", row.ResolutionSuggestion)
			}
			fmt.Println()
		}
	}
}

// setupCleanStationCatalog loads just enough catalog data to expand the
// demo order
func setupCleanStationCatalog(catalog *memory.CatalogRepository) {
	addPart := func(id, name, partType string) {
		part, err := entities.NewPart(entities.ItemID(id), name, partType, entities.PartActive)
		if err != nil {
			panic(err)
		}
		catalog.AddPart(*part)
	}
	addAssembly := func(id, name string, assemblyType entities.AssemblyType, links ...entities.ComponentLink) {
		assembly, err := entities.NewAssembly(entities.ItemID(id), name, assemblyType, links)
		if err != nil {
			panic(err)
		}
		catalog.AddAssembly(*assembly)
	}
	part := func(id string, qty int64) entities.ComponentLink {
		return entities.ComponentLink{ChildPartID: entities.ItemID(id), Quantity: entities.Quantity(qty)}
	}

	addPart("T2-DOC-IFU-EN", "Instructions For Use (English)", "DOCUMENT")
	addPart("T2-DOC-QC-CHECKLIST", "QC Checklist", "DOCUMENT")
	addAssembly("T2-MANUAL-EN-KIT", "CleanStation Manuals Kit (English)", entities.AssemblyTypeKit,
		part("T2-DOC-IFU-EN", 1), part("T2-DOC-QC-CHECKLIST", 1))

	addPart("T2-BODY-SHELL", "Sink Body Shell", "FABRICATION")
	addPart("T2-BRACKET", "Mounting Bracket", "HARDWARE")
	addAssembly("BODY-48-60", "Sink Body 48-60", entities.AssemblyTypeAssembly,
		part("T2-BODY-SHELL", 1), part("T2-BRACKET", 6))

	addPart("T2-LEG-COLUMN", "Height Adjustable Leg Column", "FABRICATION")
	addAssembly("T2-DL27-KIT", "Height Adjustable Leg Kit DL27", entities.AssemblyTypeKit,
		part("T2-LEG-COLUMN", 4))

	addPart("T2-OHL-FIXTURE", "Overhead LED Fixture", "ELECTRICAL")
	addAssembly("T2-OHL-KIT", "Overhead Light Kit", entities.AssemblyTypeKit,
		part("T2-OHL-FIXTURE", 1))

	addPart("T2-PB-PANEL-60", "Pegboard Panel 60", "FABRICATION")
	addAssembly("T2-ADW-PB-60-KIT", "Pegboard Kit 60", entities.AssemblyTypeKit,
		part("T2-PB-PANEL-60", 1))

	addPart("T2-DRAIN-VALVE", "Drain Valve", "PLUMBING")
	addAssembly("T2-BSN-EDR-KIT", "E-Drain Basin Kit", entities.AssemblyTypeKit,
		part("T2-DRAIN-VALVE", 1))
	addAssembly("T2-BSN-ESK-KIT", "E-Sink Basin Kit", entities.AssemblyTypeKit,
		part("T2-DRAIN-VALVE", 1))
	addPart("T2-BSN-SIZE-2020", "Basin 20x20x8", "FABRICATION")

	addAssembly("T2-FCT-STD-KIT", "Standard Faucet Kit", entities.AssemblyTypeKit,
		part("T2-DRAIN-VALVE", 1))

	addPart("T2-CB-ENCL-M", "Control Box Enclosure Medium", "ELECTRICAL")
	addPart("T2-EDRAIN-BOARD", "E-Drain Control Board", "ELECTRICAL")
	addPart("T2-ESINK-BOARD", "E-Sink Control Board", "ELECTRICAL")
	addPart("T2-CB-PSU-240", "Power Supply 240W", "ELECTRICAL")
	addPart("T2-CB-HARNESS-EDR", "E-Drain Harness", "ELECTRICAL")
	addPart("T2-CB-HARNESS-ESK", "E-Sink Harness", "ELECTRICAL")
}
