package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPart_Validation(t *testing.T) {
	part, err := NewPart("T2-BRACKET", "Bracket", "HARDWARE", PartActive)
	require.NoError(t, err)
	assert.Equal(t, ItemID("T2-BRACKET"), part.ID)

	_, err = NewPart("", "Bracket", "HARDWARE", PartActive)
	assert.Error(t, err)

	_, err = NewPart("T2-BRACKET", "", "HARDWARE", PartActive)
	assert.Error(t, err)
}

func TestNewAssembly_Validation(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assembly, err := NewAssembly("T2-KIT", "Kit", AssemblyTypeKit, []ComponentLink{
			{ChildPartID: "T2-BRACKET", Quantity: 2},
			{ChildAssemblyID: "T2-SUB", Quantity: 1},
		})
		require.NoError(t, err)
		assert.Len(t, assembly.Components, 2)
	})

	t.Run("empty id", func(t *testing.T) {
		_, err := NewAssembly("", "Kit", AssemblyTypeKit, nil)
		assert.Error(t, err)
	})

	t.Run("link with both child references", func(t *testing.T) {
		_, err := NewAssembly("T2-KIT", "Kit", AssemblyTypeKit, []ComponentLink{
			{ChildPartID: "T2-BRACKET", ChildAssemblyID: "T2-SUB", Quantity: 1},
		})
		assert.Error(t, err)
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		_, err := NewAssembly("T2-KIT", "Kit", AssemblyTypeKit, []ComponentLink{
			{ChildPartID: "T2-BRACKET", Quantity: 0},
		})
		assert.Error(t, err)
	})

	t.Run("link with neither child is tolerated", func(t *testing.T) {
		// Catalog rows like this exist; the expander surfaces them as
		// unknown-component placeholders instead of rejecting the assembly
		_, err := NewAssembly("T2-KIT", "Kit", AssemblyTypeKit, []ComponentLink{
			{Quantity: 1, Notes: "legacy row"},
		})
		assert.NoError(t, err)
	})
}

func TestParseAssemblyType(t *testing.T) {
	for s, want := range map[string]AssemblyType{
		"ASSEMBLY": AssemblyTypeAssembly,
		"KIT":      AssemblyTypeKit,
		"COMPLEX":  AssemblyTypeComplex,
	} {
		got, err := ParseAssemblyType(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, got)
		assert.Equal(t, s, got.String())
	}

	_, err := ParseAssemblyType("WIDGET")
	assert.Error(t, err)
}

func TestBOMItem_CountNodes(t *testing.T) {
	tree := &BOMItem{
		ID: "ROOT",
		Children: []*BOMItem{
			{ID: "A", Children: []*BOMItem{{ID: "A1"}, {ID: "A2"}}},
			{ID: "B"},
		},
	}
	assert.Equal(t, 5, tree.CountNodes())
	assert.Equal(t, 1, (&BOMItem{ID: "LEAF"}).CountNodes())
}
