package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torvan-medical/cleanstation-bom/pkg/domain/entities"
)

func TestSinkBodyForLength(t *testing.T) {
	tests := []struct {
		name   string
		length int
		wantID entities.ItemID
		wantOK bool
	}{
		{"below minimum", 47, "", false},
		{"minimum", 48, "BODY-48-60", true},
		{"small band upper edge", 60, "BODY-48-60", true},
		{"mid band lower edge", 61, "BODY-61-72", true},
		{"mid band upper edge", 72, "BODY-61-72", true},
		{"large band lower edge", 73, "BODY-73-120", true},
		{"maximum", 120, "BODY-73-120", true},
		{"above maximum", 121, "", false},
		{"zero", 0, "", false},
		{"negative", -10, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := SinkBodyForLength(tt.length)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestCountBasinMix(t *testing.T) {
	basins := []entities.BasinConfiguration{
		{BasinTypeID: BasinEDrain},
		{BasinTypeID: BasinESink},
		{BasinTypeID: BasinESinkDI},
	}
	eDrain, eSink := CountBasinMix(basins)
	assert.Equal(t, 1, eDrain)
	assert.Equal(t, 2, eSink, "DI basin should count as an E-Sink")
}

func TestCountBasinMixIgnoresUnknownTypes(t *testing.T) {
	basins := []entities.BasinConfiguration{
		{BasinTypeID: "T2-BSN-LEGACY-KIT"},
		{BasinTypeID: BasinEDrain},
	}
	eDrain, eSink := CountBasinMix(basins)
	assert.Equal(t, 1, eDrain)
	assert.Equal(t, 0, eSink)
}

func TestControlBoxForBasinMix(t *testing.T) {
	tests := []struct {
		eDrain int
		eSink  int
		wantID entities.ItemID
		wantOK bool
	}{
		{1, 0, "T2-CTRL-EDR1", true},
		{0, 1, "T2-CTRL-ESK1", true},
		{1, 1, "T2-CTRL-EDR1-ESK1", true},
		{2, 0, "T2-CTRL-EDR2", true},
		{0, 2, "T2-CTRL-ESK2", true},
		{3, 0, "T2-CTRL-EDR3", true},
		{0, 3, "T2-CTRL-ESK3", true},
		{1, 2, "T2-CTRL-EDR1-ESK2", true},
		{2, 1, "T2-CTRL-EDR2-ESK1", true},
		// not in the table: exact match only, never approximated
		{2, 2, "", false},
		{0, 0, "", false},
		{4, 0, "", false},
	}
	for _, tt := range tests {
		id, ok := ControlBoxForBasinMix(tt.eDrain, tt.eSink)
		assert.Equal(t, tt.wantOK, ok, "mix (%d,%d)", tt.eDrain, tt.eSink)
		assert.Equal(t, tt.wantID, id, "mix (%d,%d)", tt.eDrain, tt.eSink)
	}
}

func TestConfigurationComplete(t *testing.T) {
	complete := &entities.SinkConfiguration{
		ModelID: "T2-B2",
		Basins: []entities.BasinConfiguration{
			{BasinTypeID: BasinESink},
			{BasinTypeID: BasinEDrain},
		},
	}
	assert.True(t, ConfigurationComplete(complete))

	t.Run("nil configuration", func(t *testing.T) {
		assert.False(t, ConfigurationComplete(nil))
	})
	t.Run("no model", func(t *testing.T) {
		cfg := *complete
		cfg.ModelID = ""
		assert.False(t, ConfigurationComplete(&cfg))
	})
	t.Run("unknown model", func(t *testing.T) {
		cfg := *complete
		cfg.ModelID = "T2-B9"
		assert.False(t, ConfigurationComplete(&cfg))
	})
	t.Run("basin count mismatch", func(t *testing.T) {
		cfg := *complete
		cfg.Basins = cfg.Basins[:1]
		assert.False(t, ConfigurationComplete(&cfg))
	})
	t.Run("basin without a type", func(t *testing.T) {
		cfg := *complete
		cfg.Basins = []entities.BasinConfiguration{
			{BasinTypeID: BasinESink},
			{},
		}
		assert.False(t, ConfigurationComplete(&cfg))
	})
}

func TestModelBasinCount(t *testing.T) {
	for model, want := range map[string]int{"T2-B1": 1, "T2-B2": 2, "T2-B3": 3} {
		got, ok := ModelBasinCount(model)
		require.True(t, ok, model)
		assert.Equal(t, want, got, model)
	}
	_, ok := ModelBasinCount("T2-B4")
	assert.False(t, ok)
}

func TestPegboardSizeForLength(t *testing.T) {
	tests := []struct {
		length   int
		wantSize string
		wantOK   bool
	}{
		{1, "34", true},
		{34, "34", true},
		{35, "48", true},
		{48, "48", true},
		{49, "60", true},
		{72, "72", true},
		{108, "108", true},
		{109, "120", true},
		{130, "120", true},
		{131, "", false},
		{0, "", false},
	}
	for _, tt := range tests {
		size, ok := PegboardSizeForLength(tt.length)
		assert.Equal(t, tt.wantOK, ok, "length %d", tt.length)
		assert.Equal(t, tt.wantSize, size, "length %d", tt.length)
	}
}

func TestPegboardKitForConfig(t *testing.T) {
	t.Run("colored perforated", func(t *testing.T) {
		id, ok := PegboardKitForConfig(48, entities.PegboardPerforated, "GREEN")
		require.True(t, ok)
		assert.Equal(t, entities.ItemID("T2-ADW-PB-48-PERF-GREEN-KIT"), id)
	})
	t.Run("colored solid", func(t *testing.T) {
		id, ok := PegboardKitForConfig(72, entities.PegboardSolid, "BLUE")
		require.True(t, ok)
		assert.Equal(t, entities.ItemID("T2-ADW-PB-72-SOLID-BLUE-KIT"), id)
	})
	t.Run("no color falls back to size-only kit", func(t *testing.T) {
		id, ok := PegboardKitForConfig(60, entities.PegboardPerforated, "")
		require.True(t, ok)
		assert.Equal(t, entities.ItemID("T2-ADW-PB-60-KIT"), id)
	})
	t.Run("length out of band", func(t *testing.T) {
		_, ok := PegboardKitForConfig(131, entities.PegboardPerforated, "GREEN")
		assert.False(t, ok)
	})
}

func TestGenericPegboardKits(t *testing.T) {
	assert.Equal(t,
		[]entities.ItemID{"T2-ADW-PB-PERF-KIT", "T2-ADW-PB-KIT"},
		GenericPegboardKits(entities.PegboardPerforated))
	assert.Equal(t,
		[]entities.ItemID{"T2-ADW-PB-SOLID-KIT", "T2-ADW-PB-KIT"},
		GenericPegboardKits(entities.PegboardSolid))
}

func TestAutoFaucetQuantity(t *testing.T) {
	basins := []entities.BasinConfiguration{
		{BasinTypeID: BasinESinkDI},
		{BasinTypeID: BasinESink},
		{BasinTypeID: BasinESinkDI},
	}
	assert.Equal(t, entities.Quantity(2), AutoFaucetQuantity(basins))
	assert.Equal(t, entities.Quantity(0), AutoFaucetQuantity(nil))
}
