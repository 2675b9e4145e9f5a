// Package output renders generated BOM results for callers that cannot
// display recursive trees: an indented text table, JSON, and a CSV
// parent-pointer table matching the persisted row shape.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/torvan-medical/cleanstation-bom/pkg/application/dto"
)

// Render writes the result to w in the requested format
func Render(w io.Writer, result *dto.BOMResult, format string) error {
	switch format {
	case "text":
		return renderText(w, result)
	case "json":
		return renderJSON(w, result)
	case "csv":
		return renderCSV(w, result)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// PlaceholderRows returns the placeholder and unknown-component rows of a
// result, for operator follow-up before an order is released.
func PlaceholderRows(result *dto.BOMResult) []dto.FlattenedItem {
	return dto.PlaceholderReport(result)
}

// renderText writes a human-readable indented listing
func renderText(w io.Writer, result *dto.BOMResult) error {
	var b strings.Builder
	b.WriteString("BILL OF MATERIALS\n")
	b.WriteString(fmt.Sprintf("Top-level items: %d    Total items: %d    Total cost: %s\n",
		result.TopLevelItems, result.TotalItems, result.TotalCost.StringFixed(2)))
	b.WriteString(strings.Repeat("-", 72) + "\n")

	for _, row := range result.Flattened {
		indent := strings.Repeat("  ", row.IndentLevel)
		marker := " "
		switch {
		case row.IsPlaceholder:
			marker = "?"
		case row.IsCustom:
			marker = "*"
		}
		b.WriteString(fmt.Sprintf("%s%s %-36s qty %-6d %-20s %s\n",
			indent, marker, row.ID, row.Quantity, row.Category, row.Name))
		if row.ResolutionSuggestion != "" {
			b.WriteString(fmt.Sprintf("%s    suggested substitute: %s\n", indent, row.ResolutionSuggestion))
		}
	}

	if placeholders := PlaceholderRows(result); len(placeholders) > 0 {
		b.WriteString(strings.Repeat("-", 72) + "\n")
		b.WriteString(fmt.Sprintf("WARNING: %d line(s) could not be resolved against the catalog\n", len(placeholders)))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// renderJSON writes the full result as indented JSON
func renderJSON(w io.Writer, result *dto.BOMResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// renderCSV writes the flattened rows as a parent-pointer table
func renderCSV(w io.Writer, result *dto.BOMResult) error {
	writer := csv.NewWriter(w)
	header := []string{
		"row", "parent_row", "id", "name", "quantity", "category",
		"item_type", "indent_level", "has_children", "is_placeholder",
		"is_custom", "is_part", "unit_cost", "extended_cost",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i, row := range result.Flattened {
		record := []string{
			strconv.Itoa(i),
			strconv.Itoa(row.Parent),
			string(row.ID),
			row.Name,
			strconv.FormatInt(int64(row.Quantity), 10),
			string(row.Category),
			row.ItemType,
			strconv.Itoa(row.IndentLevel),
			strconv.FormatBool(row.HasChildren),
			strconv.FormatBool(row.IsPlaceholder),
			strconv.FormatBool(row.IsCustom),
			strconv.FormatBool(row.IsPart),
			row.UnitCost.StringFixed(2),
			row.ExtendedCost.StringFixed(2),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
