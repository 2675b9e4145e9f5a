package output

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torvan-medical/cleanstation-bom/pkg/application/dto"
	"github.com/torvan-medical/cleanstation-bom/pkg/application/services/bom"
	"github.com/torvan-medical/cleanstation-bom/pkg/domain/entities"
)

func sampleResult() *dto.BOMResult {
	return bom.Project([]*entities.BOMItem{
		{
			ID: "BODY-48-60", Name: "Sink Body 48-60", Quantity: 1,
			Category: entities.CategorySinkBody, ItemType: "ASSEMBLY",
			Children: []*entities.BOMItem{
				{ID: "T2-BRACKET", Name: "Bracket", Quantity: 6, Category: entities.CategoryPart,
					IsPart: true, UnitCost: decimal.RequireFromString("4.50")},
			},
		},
		{
			ID: "T2-MISSING-KIT", Name: "Unresolved: T2-MISSING-KIT", Quantity: 1,
			Category: entities.CategoryAccessory, ItemType: entities.ItemTypeUnknown,
			IsPlaceholder: true, IsPart: true, ResolutionSuggestion: "T2-REAL-KIT",
		},
	})
}

func TestRender_Text(t *testing.T) {
	var b strings.Builder
	require.NoError(t, Render(&b, sampleResult(), "text"))
	out := b.String()

	assert.Contains(t, out, "BILL OF MATERIALS")
	assert.Contains(t, out, "BODY-48-60")
	assert.Contains(t, out, "? T2-MISSING-KIT", "placeholder rows carry the ? marker")
	assert.Contains(t, out, "suggested substitute: T2-REAL-KIT")
	assert.Contains(t, out, "WARNING: 1 line(s)")
}

func TestRender_JSON(t *testing.T) {
	var b strings.Builder
	require.NoError(t, Render(&b, sampleResult(), "json"))

	var decoded dto.BOMResult
	require.NoError(t, json.Unmarshal([]byte(b.String()), &decoded))
	assert.Equal(t, 3, decoded.TotalItems)
	assert.Len(t, decoded.Flattened, 3)
}

func TestRender_CSV(t *testing.T) {
	var b strings.Builder
	require.NoError(t, Render(&b, sampleResult(), "csv"))

	records, err := csv.NewReader(strings.NewReader(b.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4, "header plus three rows")

	assert.Equal(t, "row", records[0][0])
	assert.Equal(t, "-1", records[1][1], "top-level row has parent -1")
	assert.Equal(t, "0", records[2][1], "child points at its parent row")
	assert.Equal(t, "27.00", records[2][13], "extended cost = 6 x 4.50")
}

func TestRender_UnknownFormat(t *testing.T) {
	var b strings.Builder
	assert.Error(t, Render(&b, sampleResult(), "yaml"))
}

func TestPlaceholderRows(t *testing.T) {
	rows := PlaceholderRows(sampleResult())
	require.Len(t, rows, 1)
	assert.Equal(t, entities.ItemID("T2-MISSING-KIT"), rows[0].ID)
}
