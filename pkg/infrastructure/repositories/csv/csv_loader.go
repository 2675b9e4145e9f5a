// Package csv loads catalog data from CSV files into an in-memory
// catalog repository, for the CLI and for seed scenarios.
package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/torvan-medical/cleanstation-bom/pkg/domain/entities"
)

// Loader handles loading catalog data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadParts loads parts from a CSV file with the header
// id,name,type,manufacturer_pn,status,unit_cost
func (l *Loader) LoadParts(filename string) ([]*entities.Part, error) {
	records, err := readAll(filename)
	if err != nil {
		return nil, fmt.Errorf("parts CSV: %w", err)
	}

	expectedHeader := []string{"id", "name", "type", "manufacturer_pn", "status", "unit_cost"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("parts CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var parts []*entities.Part
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("parts CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		part, err := parsePart(record)
		if err != nil {
			return nil, fmt.Errorf("parts CSV row %d: %w", i+2, err)
		}
		parts = append(parts, part)
	}

	return parts, nil
}

// LoadAssemblies loads assemblies from a CSV file with the header
// id,name,type,category_code,subcategory_code
func (l *Loader) LoadAssemblies(filename string) ([]*entities.Assembly, error) {
	records, err := readAll(filename)
	if err != nil {
		return nil, fmt.Errorf("assemblies CSV: %w", err)
	}

	expectedHeader := []string{"id", "name", "type", "category_code", "subcategory_code"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("assemblies CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var assemblies []*entities.Assembly
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("assemblies CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		assemblyType, err := entities.ParseAssemblyType(record[2])
		if err != nil {
			return nil, fmt.Errorf("assemblies CSV row %d: %w", i+2, err)
		}
		assembly, err := entities.NewAssembly(entities.ItemID(record[0]), record[1], assemblyType, nil)
		if err != nil {
			return nil, fmt.Errorf("assemblies CSV row %d: %w", i+2, err)
		}
		assembly.CategoryCode = record[3]
		assembly.SubcategoryCode = record[4]
		assemblies = append(assemblies, assembly)
	}

	return assemblies, nil
}

// LoadComponents loads component links from a CSV file with the header
// assembly_id,child_part_id,child_assembly_id,quantity,notes and attaches
// them to the given assemblies in file order.
func (l *Loader) LoadComponents(filename string, assemblies []*entities.Assembly) error {
	records, err := readAll(filename)
	if err != nil {
		return fmt.Errorf("components CSV: %w", err)
	}

	expectedHeader := []string{"assembly_id", "child_part_id", "child_assembly_id", "quantity", "notes"}
	if !validateHeader(records[0], expectedHeader) {
		return fmt.Errorf("components CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	byID := make(map[entities.ItemID]*entities.Assembly, len(assemblies))
	for _, assembly := range assemblies {
		byID[assembly.ID] = assembly
	}

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return fmt.Errorf("components CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		parent, ok := byID[entities.ItemID(record[0])]
		if !ok {
			return fmt.Errorf("components CSV row %d: unknown assembly %s", i+2, record[0])
		}
		quantity, err := strconv.ParseInt(record[3], 10, 64)
		if err != nil {
			return fmt.Errorf("components CSV row %d: invalid quantity %s", i+2, record[3])
		}
		parent.Components = append(parent.Components, entities.ComponentLink{
			ChildPartID:     entities.ItemID(record[1]),
			ChildAssemblyID: entities.ItemID(record[2]),
			Quantity:        entities.Quantity(quantity),
			Notes:           record[4],
		})
	}

	return nil
}

// parsePart parses one parts CSV record
func parsePart(record []string) (*entities.Part, error) {
	status, err := parsePartStatus(record[4])
	if err != nil {
		return nil, err
	}
	part, err := entities.NewPart(entities.ItemID(record[0]), record[1], record[2], status)
	if err != nil {
		return nil, err
	}
	part.ManufacturerPN = record[3]
	if record[5] != "" {
		cost, err := decimal.NewFromString(record[5])
		if err != nil {
			return nil, fmt.Errorf("invalid unit_cost %s: %w", record[5], err)
		}
		part.UnitCost = cost
	}
	return part, nil
}

// parsePartStatus parses the CSV form of a part lifecycle status
func parsePartStatus(s string) (entities.PartStatus, error) {
	switch strings.ToLower(s) {
	case "", "active":
		return entities.PartActive, nil
	case "inactive":
		return entities.PartInactive, nil
	case "obsolete":
		return entities.PartObsolete, nil
	default:
		return entities.PartActive, fmt.Errorf("invalid part status: %s", s)
	}
}

// readAll opens a CSV file and returns its records, requiring a header
// and at least one data row
func readAll(filename string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s must have header and at least one data row", filename)
	}
	return records, nil
}

// validateHeader checks if the CSV header matches the expected format
func validateHeader(header, expected []string) bool {
	if len(header) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.TrimSpace(strings.ToLower(header[i])) != col {
			return false
		}
	}
	return true
}
