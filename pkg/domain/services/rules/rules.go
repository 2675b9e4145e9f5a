// Package rules holds the static business-logic tables that map sink
// configuration attributes to catalog assembly identifiers. Every function
// is pure and total: it returns a definite result or reports no match, and
// never returns an error or panics.
package rules

import (
	"fmt"

	"github.com/torvan-medical/cleanstation-bom/pkg/domain/entities"
)

// Supported sink length range in inches
const (
	MinSinkLength = 48
	MaxSinkLength = 120
)

// Basin type kit identifiers recognized by the basin-mix rules
const (
	BasinEDrain  entities.ItemID = "T2-BSN-EDR-KIT"
	BasinESink   entities.ItemID = "T2-BSN-ESK-KIT"
	BasinESinkDI entities.ItemID = "T2-BSN-ESK-DI-KIT"
)

// Assemblies selected by rule rather than by the user
const (
	OverheadLightKitID  entities.ItemID = "T2-OHL-KIT"
	DIGooseneckFaucetID entities.ItemID = "T2-DI-GOOSENECK-FAUCET-KIT"
)

// SinkBodyForLength returns the sink body assembly covering the given
// length in inches. Lengths outside [MinSinkLength, MaxSinkLength] report
// no match; the caller must treat that as an order-validation error, not
// silently omit the body.
func SinkBodyForLength(length int) (entities.ItemID, bool) {
	switch {
	case length >= 48 && length <= 60:
		return "BODY-48-60", true
	case length >= 61 && length <= 72:
		return "BODY-61-72", true
	case length >= 73 && length <= 120:
		return "BODY-73-120", true
	default:
		return "", false
	}
}

// basinMix is the exact (eDrain, eSink) combination key for control box
// selection
type basinMix struct {
	EDrain int
	ESink  int
}

// controlBoxTable is the fixed table of the nine known basin combinations.
// Combinations absent from the table select no control box; the engine
// logs the miss and never invents a substitute.
var controlBoxTable = map[basinMix]entities.ItemID{
	{EDrain: 1, ESink: 0}: "T2-CTRL-EDR1",
	{EDrain: 0, ESink: 1}: "T2-CTRL-ESK1",
	{EDrain: 1, ESink: 1}: "T2-CTRL-EDR1-ESK1",
	{EDrain: 2, ESink: 0}: "T2-CTRL-EDR2",
	{EDrain: 0, ESink: 2}: "T2-CTRL-ESK2",
	{EDrain: 3, ESink: 0}: "T2-CTRL-EDR3",
	{EDrain: 0, ESink: 3}: "T2-CTRL-ESK3",
	{EDrain: 1, ESink: 2}: "T2-CTRL-EDR1-ESK2",
	{EDrain: 2, ESink: 1}: "T2-CTRL-EDR2-ESK1",
}

// CountBasinMix counts E-Drain and E-Sink basins in a build. The DI
// variant counts as an E-Sink for control box selection.
func CountBasinMix(basins []entities.BasinConfiguration) (eDrain, eSink int) {
	for _, basin := range basins {
		switch basin.BasinTypeID {
		case BasinEDrain:
			eDrain++
		case BasinESink, BasinESinkDI:
			eSink++
		}
	}
	return eDrain, eSink
}

// ControlBoxForBasinMix looks up the exact basin combination against the
// fixed table. Unknown combinations report no match.
func ControlBoxForBasinMix(eDrain, eSink int) (entities.ItemID, bool) {
	id, ok := controlBoxTable[basinMix{EDrain: eDrain, ESink: eSink}]
	return id, ok
}

// modelBasinCounts maps sink model to its expected basin count
var modelBasinCounts = map[string]int{
	"T2-B1": 1,
	"T2-B2": 2,
	"T2-B3": 3,
}

// ModelBasinCount returns the expected basin count for a sink model
func ModelBasinCount(modelID string) (int, bool) {
	count, ok := modelBasinCounts[modelID]
	return count, ok
}

// ConfigurationComplete reports whether a sink configuration is far enough
// along to commit to a control box: model chosen, every basin has a
// resolved type, and the basin count matches the model's expected count.
// This debounces control box expansion while a configuration is still
// being assembled.
func ConfigurationComplete(cfg *entities.SinkConfiguration) bool {
	if cfg == nil || cfg.ModelID == "" {
		return false
	}
	expected, ok := ModelBasinCount(cfg.ModelID)
	if !ok || len(cfg.Basins) != expected {
		return false
	}
	for _, basin := range cfg.Basins {
		if basin.BasinTypeID == "" {
			return false
		}
	}
	return true
}

// pegboardSizeBands are the eight standard pegboard sizes; a sink length
// is covered by the smallest band at least as long as the sink.
var pegboardSizeBands = []struct {
	MaxLength int
	Size      string
}{
	{34, "34"},
	{48, "48"},
	{60, "60"},
	{72, "72"},
	{84, "84"},
	{96, "96"},
	{108, "108"},
	{130, "120"},
}

// PegboardSizeForLength returns the standard pegboard size band covering
// the sink length. Lengths beyond the largest band report no match.
func PegboardSizeForLength(length int) (string, bool) {
	if length <= 0 {
		return "", false
	}
	for _, band := range pegboardSizeBands {
		if length <= band.MaxLength {
			return band.Size, true
		}
	}
	return "", false
}

// PegboardKitForConfig combines the size band with the pegboard type and,
// when a color is chosen, yields the colored kit identifier; otherwise the
// size-only kit identifier.
func PegboardKitForConfig(length int, pegboardType entities.PegboardType, colorID string) (entities.ItemID, bool) {
	size, ok := PegboardSizeForLength(length)
	if !ok {
		return "", false
	}
	if colorID != "" {
		style := "PERF"
		if pegboardType == entities.PegboardSolid {
			style = "SOLID"
		}
		return entities.ItemID(fmt.Sprintf("T2-ADW-PB-%s-%s-%s-KIT", size, style, colorID)), true
	}
	return entities.ItemID(fmt.Sprintf("T2-ADW-PB-%s-KIT", size)), true
}

// GenericPegboardKits returns the legacy generic kit chain for a pegboard
// type, tried in order after the size-specific kits miss the catalog.
func GenericPegboardKits(pegboardType entities.PegboardType) []entities.ItemID {
	if pegboardType == entities.PegboardSolid {
		return []entities.ItemID{"T2-ADW-PB-SOLID-KIT", "T2-ADW-PB-KIT"}
	}
	return []entities.ItemID{"T2-ADW-PB-PERF-KIT", "T2-ADW-PB-KIT"}
}

// AutoFaucetQuantity returns how many DI gooseneck faucets the basin list
// requires: one unit per E-Sink DI basin, in addition to any user-selected
// faucets.
func AutoFaucetQuantity(basins []entities.BasinConfiguration) entities.Quantity {
	var qty entities.Quantity
	for _, basin := range basins {
		if basin.BasinTypeID == BasinESinkDI {
			qty++
		}
	}
	return qty
}
