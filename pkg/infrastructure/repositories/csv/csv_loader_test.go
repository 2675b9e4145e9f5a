package csv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torvan-medical/cleanstation-bom/pkg/domain/entities"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_LoadParts(t *testing.T) {
	loader := NewLoader()
	path := writeCSV(t, "parts.csv", `id,name,type,manufacturer_pn,status,unit_cost
T2-BRACKET,Mounting Bracket,HARDWARE,MFG-001,active,4.50
T2-DRAIN-VALVE,Drain Valve,PLUMBING,,inactive,
T2-OLD-PART,Obsolete Part,HARDWARE,MFG-002,obsolete,1.00
`)

	parts, err := loader.LoadParts(path)
	require.NoError(t, err)
	require.Len(t, parts, 3)

	assert.Equal(t, entities.ItemID("T2-BRACKET"), parts[0].ID)
	assert.Equal(t, "MFG-001", parts[0].ManufacturerPN)
	assert.True(t, parts[0].UnitCost.Equal(decimal.RequireFromString("4.50")))
	assert.Equal(t, entities.PartActive, parts[0].Status)

	assert.Equal(t, entities.PartInactive, parts[1].Status)
	assert.True(t, parts[1].UnitCost.IsZero(), "empty unit_cost stays zero")

	assert.Equal(t, entities.PartObsolete, parts[2].Status)
}

func TestLoader_LoadParts_BadHeader(t *testing.T) {
	loader := NewLoader()
	path := writeCSV(t, "parts.csv", `id,name,category
T2-BRACKET,Bracket,HARDWARE
`)
	_, err := loader.LoadParts(path)
	assert.Error(t, err)
}

func TestLoader_LoadParts_BadStatus(t *testing.T) {
	loader := NewLoader()
	path := writeCSV(t, "parts.csv", `id,name,type,manufacturer_pn,status,unit_cost
T2-BRACKET,Bracket,HARDWARE,,retired,
`)
	_, err := loader.LoadParts(path)
	assert.Error(t, err)
}

func TestLoader_LoadParts_BadUnitCost(t *testing.T) {
	loader := NewLoader()
	path := writeCSV(t, "parts.csv", `id,name,type,manufacturer_pn,status,unit_cost
T2-BRACKET,Bracket,HARDWARE,,active,four-fifty
`)
	_, err := loader.LoadParts(path)
	assert.Error(t, err)
}

func TestLoader_LoadAssemblies(t *testing.T) {
	loader := NewLoader()
	path := writeCSV(t, "assemblies.csv", `id,name,type,category_code,subcategory_code
T2-OHL-KIT,Overhead Light Kit,KIT,718,718.201
BODY-48-60,Sink Body 48-60,ASSEMBLY,721,721.10
T2-CTRL-ESK3,Control Box ESK3,COMPLEX,719,
`)

	assemblies, err := loader.LoadAssemblies(path)
	require.NoError(t, err)
	require.Len(t, assemblies, 3)

	assert.Equal(t, entities.AssemblyTypeKit, assemblies[0].Type)
	assert.Equal(t, "718", assemblies[0].CategoryCode)
	assert.Equal(t, "718.201", assemblies[0].SubcategoryCode)
	assert.Equal(t, entities.AssemblyTypeAssembly, assemblies[1].Type)
	assert.Equal(t, entities.AssemblyTypeComplex, assemblies[2].Type)
}

func TestLoader_LoadAssemblies_BadType(t *testing.T) {
	loader := NewLoader()
	path := writeCSV(t, "assemblies.csv", `id,name,type,category_code,subcategory_code
T2-KIT,Kit,WIDGET,,
`)
	_, err := loader.LoadAssemblies(path)
	assert.Error(t, err)
}

func TestLoader_LoadComponents(t *testing.T) {
	loader := NewLoader()

	assembliesPath := writeCSV(t, "assemblies.csv", `id,name,type,category_code,subcategory_code
T2-OHL-KIT,Overhead Light Kit,KIT,,
BODY-48-60,Sink Body 48-60,ASSEMBLY,,
`)
	assemblies, err := loader.LoadAssemblies(assembliesPath)
	require.NoError(t, err)

	componentsPath := writeCSV(t, "components.csv", `assembly_id,child_part_id,child_assembly_id,quantity,notes
T2-OHL-KIT,T2-OHL-FIXTURE,,1,
T2-OHL-KIT,T2-HDW-M5-PACK,,1,hardware
BODY-48-60,,T2-OHL-KIT,1,nested
`)
	require.NoError(t, loader.LoadComponents(componentsPath, assemblies))

	require.Len(t, assemblies[0].Components, 2)
	assert.Equal(t, entities.ItemID("T2-OHL-FIXTURE"), assemblies[0].Components[0].ChildPartID)
	assert.Equal(t, "hardware", assemblies[0].Components[1].Notes)

	require.Len(t, assemblies[1].Components, 1)
	assert.Equal(t, entities.ItemID("T2-OHL-KIT"), assemblies[1].Components[0].ChildAssemblyID)
}

func TestLoader_LoadComponents_UnknownAssembly(t *testing.T) {
	loader := NewLoader()

	assembliesPath := writeCSV(t, "assemblies.csv", `id,name,type,category_code,subcategory_code
T2-OHL-KIT,Overhead Light Kit,KIT,,
`)
	assemblies, err := loader.LoadAssemblies(assembliesPath)
	require.NoError(t, err)

	componentsPath := writeCSV(t, "components.csv", `assembly_id,child_part_id,child_assembly_id,quantity,notes
T2-NOPE,T2-OHL-FIXTURE,,1,
`)
	err = loader.LoadComponents(componentsPath, assemblies)
	assert.Error(t, err)
}

func TestLoader_MissingFile(t *testing.T) {
	loader := NewLoader()
	_, err := loader.LoadParts("/nonexistent/parts.csv")
	assert.Error(t, err)
}
