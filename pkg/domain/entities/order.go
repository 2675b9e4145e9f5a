package entities

// Language selects the language-specific manuals kit for an order
type Language string

const (
	LanguageEnglish Language = "EN"
	LanguageFrench  Language = "FR"
	LanguageSpanish Language = "SP"
)

// CustomerInfo carries the order-level customer attributes the engine needs
type CustomerInfo struct {
	Name     string   `json:"name"`
	Language Language `json:"language" validate:"required"`
}

// AccessorySelection is an order-level accessory choice for one build
type AccessorySelection struct {
	AssemblyID ItemID   `json:"assemblyId" validate:"required"`
	Quantity   Quantity `json:"quantity" validate:"gt=0"`
}

// BasinDimensions are the integer dimensions of a dimensionally custom basin
type BasinDimensions struct {
	Width  int `json:"width" validate:"gt=0"`
	Length int `json:"length" validate:"gt=0"`
	Depth  int `json:"depth" validate:"gt=0"`
}

// PegboardDimensions are the integer dimensions of a dimensionally custom pegboard
type PegboardDimensions struct {
	Width  int `json:"width" validate:"gt=0"`
	Length int `json:"length" validate:"gt=0"`
}

// BasinConfiguration describes one basin instance. Sizes and addons are
// basin-instance-specific even when basin types repeat within a build.
type BasinConfiguration struct {
	BasinTypeID         ItemID           `json:"basinTypeId"`
	BasinSizePartNumber ItemID           `json:"basinSizePartNumber"`
	CustomDimensions    *BasinDimensions `json:"customDimensions,omitempty"`
	AddonIDs            []ItemID         `json:"addonIds,omitempty"`
}

// FaucetConfiguration describes one user-selected faucet line
type FaucetConfiguration struct {
	FaucetTypeID ItemID   `json:"faucetTypeId"`
	Quantity     Quantity `json:"quantity"`
	PlacementID  string   `json:"placementId,omitempty"`
}

// SprayerConfiguration describes one sprayer line
type SprayerConfiguration struct {
	SprayerTypeID ItemID   `json:"sprayerTypeId"`
	Quantity      Quantity `json:"quantity"`
	LocationID    string   `json:"locationId,omitempty"`
}

// LegacySprayer is the older single-sprayer-plus-id-list configuration
// shape. Normalize folds it into the Sprayers array.
type LegacySprayer struct {
	Enabled        bool     `json:"enabled"`
	SprayerTypeIDs []ItemID `json:"sprayerTypeIds"`
	Quantity       Quantity `json:"quantity"`
}

// PegboardType is the pegboard surface style
type PegboardType string

const (
	PegboardPerforated PegboardType = "PERFORATED"
	PegboardSolid      PegboardType = "SOLID"
)

// SinkConfiguration is the per-build-number sink description. The engine
// treats it as read-only input for one generation call.
type SinkConfiguration struct {
	ModelID string `json:"modelId"`
	Length  int    `json:"length"`
	Width   int    `json:"width"`

	LegsTypeID ItemID `json:"legsTypeId"`
	FeetTypeID ItemID `json:"feetTypeId"`

	Pegboard               bool                `json:"pegboard"`
	PegboardTypeID         PegboardType        `json:"pegboardTypeId,omitempty"`
	PegboardColorID        string              `json:"pegboardColorId,omitempty"`
	PegboardSizePartNumber ItemID              `json:"pegboardSizePartNumber,omitempty"`
	PegboardCustom         *PegboardDimensions `json:"pegboardCustom,omitempty"`

	DrawersAndCompartments []ItemID `json:"drawersAndCompartments,omitempty"`

	Basins []BasinConfiguration `json:"basins"`

	// Faucets is the canonical array shape; Faucet is the legacy single
	// field kept for older configuration payloads.
	Faucets []FaucetConfiguration `json:"faucets,omitempty"`
	Faucet  *FaucetConfiguration  `json:"faucet,omitempty"`

	Sprayers []SprayerConfiguration `json:"sprayers,omitempty"`
	Sprayer  *LegacySprayer         `json:"sprayer,omitempty"`

	// ControlBoxID, when set, overrides automatic control box selection
	ControlBoxID ItemID `json:"controlBoxId,omitempty"`
}

// OrderConfiguration is the engine's input: customer info, build numbers,
// and one sink configuration per build number. Caller-owned and read-only
// for the duration of one Generate call.
type OrderConfiguration struct {
	Customer     CustomerInfo                    `json:"customer" validate:"required"`
	BuildNumbers []string                        `json:"buildNumbers" validate:"required,min=1,dive,required"`
	Configs      map[string]*SinkConfiguration   `json:"configs" validate:"required"`
	Accessories  map[string][]AccessorySelection `json:"accessories,omitempty"`
}

// Normalized returns a normalized shallow copy, leaving the receiver
// untouched. Order configurations are caller-owned, so the engine works
// on copies.
func (c *SinkConfiguration) Normalized() *SinkConfiguration {
	cfg := *c
	cfg.Normalize()
	return &cfg
}

// Normalize folds the legacy single-object faucet and sprayer shapes into
// the canonical array shapes so the orchestrator never branches on shape.
// The array forms take precedence when both are present.
func (c *SinkConfiguration) Normalize() {
	if len(c.Faucets) == 0 && c.Faucet != nil {
		f := *c.Faucet
		if f.Quantity <= 0 {
			f.Quantity = 1
		}
		c.Faucets = []FaucetConfiguration{f}
	}
	c.Faucet = nil

	if len(c.Sprayers) == 0 && c.Sprayer != nil && c.Sprayer.Enabled {
		qty := c.Sprayer.Quantity
		if qty <= 0 {
			qty = 1
		}
		for _, id := range c.Sprayer.SprayerTypeIDs {
			c.Sprayers = append(c.Sprayers, SprayerConfiguration{
				SprayerTypeID: id,
				Quantity:      qty,
			})
		}
	}
	c.Sprayer = nil
}
