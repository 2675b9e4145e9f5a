// Package bom implements the BOM generation engine: the assembly
// expander, the order orchestrator, and the result projector.
package bom

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/torvan-medical/cleanstation-bom/pkg/application/dto"
	"github.com/torvan-medical/cleanstation-bom/pkg/domain/entities"
	"github.com/torvan-medical/cleanstation-bom/pkg/domain/repositories"
	"github.com/torvan-medical/cleanstation-bom/pkg/domain/services/custompart"
	"github.com/torvan-medical/cleanstation-bom/pkg/domain/services/rules"
	"github.com/torvan-medical/cleanstation-bom/pkg/infrastructure/metrics"
)

// DynamicComponent is one injected control-box component line
type DynamicComponent struct {
	ID       entities.ItemID
	Quantity entities.Quantity
}

// Config holds the engine configuration. The dynamic control-box component
// lists and the manuals kit table are data, injected here rather than
// hardcoded in the expansion logic, so they can change without a redeploy.
type Config struct {
	WarnDepth int
	MaxDepth  int

	// ControlBoxComponents maps a control-box model to the ordered
	// component list expanded in place of its catalog definition
	ControlBoxComponents map[entities.ItemID][]DynamicComponent

	// ManualKits maps order language to the manuals kit assembly
	ManualKits map[entities.Language]entities.ItemID
}

// DefaultConfig returns the engine configuration used in production
func DefaultConfig() Config {
	return Config{
		WarnDepth: DefaultWarnDepth,
		MaxDepth:  DefaultMaxDepth,
		ControlBoxComponents: map[entities.ItemID][]DynamicComponent{
			"T2-CTRL-EDR1": {
				{ID: "T2-CB-ENCL-S", Quantity: 1},
				{ID: "T2-EDRAIN-BOARD", Quantity: 1},
				{ID: "T2-CB-PSU-120", Quantity: 1},
				{ID: "T2-CB-HARNESS-EDR", Quantity: 1},
			},
			"T2-CTRL-ESK1": {
				{ID: "T2-CB-ENCL-S", Quantity: 1},
				{ID: "T2-ESINK-BOARD", Quantity: 1},
				{ID: "T2-CB-PSU-120", Quantity: 1},
				{ID: "T2-CB-HARNESS-ESK", Quantity: 1},
			},
			"T2-CTRL-EDR1-ESK1": {
				{ID: "T2-CB-ENCL-M", Quantity: 1},
				{ID: "T2-EDRAIN-BOARD", Quantity: 1},
				{ID: "T2-ESINK-BOARD", Quantity: 1},
				{ID: "T2-CB-PSU-240", Quantity: 1},
				{ID: "T2-CB-HARNESS-EDR", Quantity: 1},
				{ID: "T2-CB-HARNESS-ESK", Quantity: 1},
			},
			"T2-CTRL-EDR2": {
				{ID: "T2-CB-ENCL-M", Quantity: 1},
				{ID: "T2-EDRAIN-BOARD", Quantity: 2},
				{ID: "T2-CB-PSU-240", Quantity: 1},
				{ID: "T2-CB-HARNESS-EDR", Quantity: 2},
			},
			"T2-CTRL-ESK2": {
				{ID: "T2-CB-ENCL-M", Quantity: 1},
				{ID: "T2-ESINK-BOARD", Quantity: 2},
				{ID: "T2-CB-PSU-240", Quantity: 1},
				{ID: "T2-CB-HARNESS-ESK", Quantity: 2},
			},
		},
		ManualKits: map[entities.Language]entities.ItemID{
			entities.LanguageEnglish: "T2-MANUAL-EN-KIT",
			entities.LanguageFrench:  "T2-MANUAL-FR-KIT",
			entities.LanguageSpanish: "T2-MANUAL-SP-KIT",
		},
	}
}

// Service orchestrates BOM generation: it walks an order configuration,
// applies the rule tables to decide which assemblies to expand, and
// assembles per-build and order-level results via the expander.
type Service struct {
	catalog  repositories.CatalogRepository
	fallback repositories.FallbackProvider
	synth    *custompart.Synthesizer
	validate *validator.Validate
	logger   *zap.Logger
	config   Config
}

// NewService creates a BOM generation service. A nil logger is replaced
// with a nop logger; a nil fallback disables the resource fallback chain.
func NewService(
	catalog repositories.CatalogRepository,
	fallback repositories.FallbackProvider,
	config Config,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		catalog:  catalog,
		fallback: fallback,
		synth:    custompart.NewSynthesizer(catalog),
		validate: validator.New(),
		logger:   logger,
		config:   config,
	}
}

// Generate expands a full order configuration into hierarchical and
// flattened BOMs. Input validation failures and recursion-safety breaches
// are fatal; catalog misses degrade to placeholder lines so operators can
// manufacture around missing catalog data.
func (s *Service) Generate(ctx context.Context, order *entities.OrderConfiguration) (*dto.BOMResult, error) {
	result, err := s.generate(ctx, order)
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.GenerationsTotal.WithLabelValues("ok").Inc()
	return result, nil
}

func (s *Service) generate(ctx context.Context, order *entities.OrderConfiguration) (*dto.BOMResult, error) {
	if err := s.validateOrder(order); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := s.logger.With(zap.String("run_id", runID))
	logger.Info("starting BOM generation",
		zap.Int("build_count", len(order.BuildNumbers)),
		zap.String("language", string(order.Customer.Language)))

	expander := NewExpander(s.catalog, s.fallback, logger, s.config.WarnDepth, s.config.MaxDepth)
	visited := make(map[visitKey]bool)

	var hierarchical []*entities.BOMItem

	// The manuals kit is selected by order language and expanded once per
	// order, never once per build.
	manualKit, ok := s.config.ManualKits[order.Customer.Language]
	if !ok {
		manualKit = s.config.ManualKits[entities.LanguageEnglish]
	}
	if manualKit != "" {
		if err := expander.Expand(ctx, manualKit, 1, entities.CategoryManuals, visited, 0, &hierarchical); err != nil {
			return nil, fmt.Errorf("expanding manuals kit %s: %w", manualKit, err)
		}
	}

	for _, buildNumber := range order.BuildNumbers {
		// The order is caller-owned; normalization works on a copy
		cfg := order.Configs[buildNumber].Normalized()
		buildLogger := logger.With(zap.String("build_number", buildNumber))

		if err := s.generateBuild(ctx, expander, visited, cfg, buildNumber, buildLogger, &hierarchical); err != nil {
			return nil, fmt.Errorf("build %s: %w", buildNumber, err)
		}
	}

	// Order-level accessories, expanded per build number after all builds
	for _, buildNumber := range order.BuildNumbers {
		for _, accessory := range order.Accessories[buildNumber] {
			qty := accessory.Quantity
			if qty <= 0 {
				qty = 1
			}
			err := expander.Expand(ctx, accessory.AssemblyID, qty, entities.CategoryAccessory, visited, 0, &hierarchical)
			if err != nil {
				return nil, fmt.Errorf("build %s: expanding accessory %s: %w", buildNumber, accessory.AssemblyID, err)
			}
		}
	}

	result := Project(hierarchical)
	logger.Info("BOM generation complete",
		zap.Int("total_items", result.TotalItems),
		zap.Int("top_level_items", result.TopLevelItems))
	return result, nil
}

// validateOrder fails fast with a descriptive error naming the missing field
func (s *Service) validateOrder(order *entities.OrderConfiguration) error {
	if order == nil {
		return entities.NewValidationError("order", "order configuration is required")
	}
	if order.Customer.Language == "" {
		return entities.NewValidationError("customer.language", "customer info with language is required")
	}
	if len(order.BuildNumbers) == 0 {
		return entities.NewValidationError("buildNumbers", "at least one build number is required")
	}
	if order.Configs == nil {
		return entities.NewValidationError("configs", "sink configuration map is required")
	}
	if err := s.validate.Struct(order); err != nil {
		return entities.NewValidationError("order", err.Error())
	}
	for _, buildNumber := range order.BuildNumbers {
		cfg, ok := order.Configs[buildNumber]
		if !ok || cfg == nil {
			return entities.NewBuildValidationError(buildNumber, "configs", "no sink configuration for build number")
		}
		if _, ok := rules.SinkBodyForLength(cfg.Length); !ok {
			return entities.NewBuildValidationError(buildNumber, "length",
				fmt.Sprintf("sink length %d is outside the supported range [%d, %d]",
					cfg.Length, rules.MinSinkLength, rules.MaxSinkLength))
		}
	}
	return nil
}

// generateBuild expands one build number's sink configuration
func (s *Service) generateBuild(
	ctx context.Context,
	expander *Expander,
	visited map[visitKey]bool,
	cfg *entities.SinkConfiguration,
	buildNumber string,
	logger *zap.Logger,
	out *[]*entities.BOMItem,
) error {
	// Sink body; validateOrder already rejected out-of-range lengths
	bodyID, ok := rules.SinkBodyForLength(cfg.Length)
	if !ok {
		return entities.NewBuildValidationError(buildNumber, "length",
			fmt.Sprintf("no sink body covers length %d", cfg.Length))
	}
	if err := expander.Expand(ctx, bodyID, 1, entities.CategorySinkBody, visited, 0, out); err != nil {
		return fmt.Errorf("expanding sink body %s: %w", bodyID, err)
	}

	if cfg.LegsTypeID != "" {
		if err := expander.Expand(ctx, cfg.LegsTypeID, 1, entities.CategoryLegs, visited, 0, out); err != nil {
			return fmt.Errorf("expanding legs %s: %w", cfg.LegsTypeID, err)
		}
	}
	if cfg.FeetTypeID != "" {
		if err := expander.Expand(ctx, cfg.FeetTypeID, 1, entities.CategoryFeet, visited, 0, out); err != nil {
			return fmt.Errorf("expanding feet %s: %w", cfg.FeetTypeID, err)
		}
	}

	if cfg.Pegboard {
		if err := s.expandPegboard(ctx, expander, visited, cfg, logger, out); err != nil {
			return err
		}
	}

	for _, drawerID := range cfg.DrawersAndCompartments {
		if err := expander.Expand(ctx, drawerID, 1, entities.CategoryDrawerCompartment, visited, 0, out); err != nil {
			return fmt.Errorf("expanding drawer/compartment %s: %w", drawerID, err)
		}
	}

	if err := s.expandBasins(ctx, expander, visited, cfg, buildNumber, out); err != nil {
		return err
	}

	if err := s.expandControlBox(ctx, expander, visited, cfg, logger, out); err != nil {
		return err
	}

	if err := s.expandFaucetsAndSprayers(ctx, expander, visited, cfg, out); err != nil {
		return err
	}

	return nil
}

// expandPegboard expands the mandatory overhead light kit and then the
// best-available pegboard kit. The kit tiers are attempted strictly in
// order: pre-resolved specific kit, custom dimensions, computed colored
// kit, computed size-only kit, legacy generic kits. The expansion only
// degrades to a placeholder when every tier misses.
func (s *Service) expandPegboard(
	ctx context.Context,
	expander *Expander,
	visited map[visitKey]bool,
	cfg *entities.SinkConfiguration,
	logger *zap.Logger,
	out *[]*entities.BOMItem,
) error {
	// The overhead light kit is unconditional whenever pegboard is enabled
	err := expander.Expand(ctx, rules.OverheadLightKitID, 1, entities.CategoryOverheadLightKit, visited, 0, out)
	if err != nil {
		return fmt.Errorf("expanding overhead light kit: %w", err)
	}

	if cfg.PegboardCustom != nil {
		customID, err := s.synth.PegboardID(ctx, cfg.PegboardCustom.Width, cfg.PegboardCustom.Length)
		if err != nil {
			return fmt.Errorf("generating custom pegboard part number: %w", err)
		}
		info, err := custompart.Parse(customID)
		if err != nil {
			return fmt.Errorf("parsing custom pegboard part number %s: %w", customID, err)
		}
		*out = append(*out, &entities.BOMItem{
			ID:       customID,
			Name:     custompart.DisplayName(info),
			Quantity: 1,
			Category: entities.CategoryPegboardKit,
			ItemType: entities.ItemTypeCustom,
			IsCustom: true,
			IsPart:   true,
		})
		return nil
	}

	var candidates []entities.ItemID
	if cfg.PegboardSizePartNumber != "" {
		candidates = append(candidates, cfg.PegboardSizePartNumber)
	}
	if cfg.PegboardColorID != "" {
		if coloredID, ok := rules.PegboardKitForConfig(cfg.Length, cfg.PegboardTypeID, cfg.PegboardColorID); ok {
			candidates = append(candidates, coloredID)
		}
	}
	if sizeID, ok := rules.PegboardKitForConfig(cfg.Length, cfg.PegboardTypeID, ""); ok {
		candidates = append(candidates, sizeID)
	}
	candidates = append(candidates, rules.GenericPegboardKits(cfg.PegboardTypeID)...)

	for i, candidate := range candidates {
		resolvable, err := s.resolvable(ctx, candidate)
		if err != nil {
			return err
		}
		if resolvable || i == len(candidates)-1 {
			if !resolvable {
				logger.Warn("no pegboard kit tier resolved, expanding last tier as placeholder",
					zap.String("assembly_id", string(candidate)))
			}
			return expander.Expand(ctx, candidate, 1, entities.CategoryPegboardKit, visited, 0, out)
		}
	}
	return nil
}

// resolvable reports whether an identifier resolves through the catalog or
// the fallback provider. Generic mappings are followed for one hop only,
// matching the expander's substitution rule, so a cyclic mapping resource
// cannot recurse.
func (s *Service) resolvable(ctx context.Context, id entities.ItemID) (bool, error) {
	ok, err := s.inCatalog(ctx, id)
	if ok || err != nil {
		return ok, err
	}
	if s.fallback == nil {
		return false, nil
	}
	if _, ok := s.fallback.GetAssembly(id); ok {
		return true, nil
	}
	if mapped, ok := s.fallback.ResolveGeneric(id); ok {
		return s.inCatalog(ctx, mapped)
	}
	return false, nil
}

// inCatalog reports whether id resolves in either catalog namespace
func (s *Service) inCatalog(ctx context.Context, id entities.ItemID) (bool, error) {
	if _, err := s.catalog.GetAssemblyByID(ctx, id); err == nil {
		return true, nil
	} else if !errors.Is(err, entities.ErrNotFound) {
		return false, &entities.RepositoryError{Op: "get assembly", ID: id, Err: err}
	}
	if _, err := s.catalog.GetPartByID(ctx, id); err == nil {
		return true, nil
	} else if !errors.Is(err, entities.ErrNotFound) {
		return false, &entities.RepositoryError{Op: "get part", ID: id, Err: err}
	}
	return false, nil
}

// expandBasins aggregates basin type kits (identical types sum into one
// line) and then processes each basin instance's size part and addons,
// which are instance-specific even when types repeat.
func (s *Service) expandBasins(
	ctx context.Context,
	expander *Expander,
	visited map[visitKey]bool,
	cfg *entities.SinkConfiguration,
	buildNumber string,
	out *[]*entities.BOMItem,
) error {
	typeCounts := make(map[entities.ItemID]entities.Quantity)
	var typeOrder []entities.ItemID
	for _, basin := range cfg.Basins {
		if basin.BasinTypeID == "" {
			continue
		}
		if _, seen := typeCounts[basin.BasinTypeID]; !seen {
			typeOrder = append(typeOrder, basin.BasinTypeID)
		}
		typeCounts[basin.BasinTypeID]++
	}
	for _, typeID := range typeOrder {
		err := expander.Expand(ctx, typeID, typeCounts[typeID], entities.CategoryBasinTypeKit, visited, 0, out)
		if err != nil {
			return fmt.Errorf("expanding basin type %s: %w", typeID, err)
		}
	}

	for i, basin := range cfg.Basins {
		if basin.CustomDimensions != nil {
			dims := basin.CustomDimensions
			customID, err := s.synth.BasinID(ctx, dims.Width, dims.Length, dims.Depth)
			if err != nil {
				return fmt.Errorf("basin %d: generating custom basin part number: %w", i+1, err)
			}
			info, err := custompart.Parse(customID)
			if err != nil {
				return fmt.Errorf("basin %d: parsing custom basin part number %s: %w", i+1, customID, err)
			}
			*out = append(*out, &entities.BOMItem{
				ID:       customID,
				Name:     custompart.DisplayName(info),
				Quantity: 1,
				Category: entities.CategoryBasinSize,
				ItemType: entities.ItemTypeCustom,
				IsCustom: true,
				IsPart:   true,
			})
		} else if basin.BasinSizePartNumber != "" {
			err := expander.Expand(ctx, basin.BasinSizePartNumber, 1, entities.CategoryBasinSize, visited, 0, out)
			if err != nil {
				return fmt.Errorf("basin %d: expanding size part %s: %w", i+1, basin.BasinSizePartNumber, err)
			}
		}

		for _, addonID := range basin.AddonIDs {
			err := expander.Expand(ctx, addonID, 1, entities.CategoryBasinAddon, visited, 0, out)
			if err != nil {
				return fmt.Errorf("basin %d: expanding addon %s: %w", i+1, addonID, err)
			}
		}
	}
	return nil
}

// expandControlBox resolves and expands the control box once the
// configuration is complete. An explicit override takes precedence over
// table selection; models in the dynamic component set expand from the
// injected component list instead of the catalog.
func (s *Service) expandControlBox(
	ctx context.Context,
	expander *Expander,
	visited map[visitKey]bool,
	cfg *entities.SinkConfiguration,
	logger *zap.Logger,
	out *[]*entities.BOMItem,
) error {
	if !rules.ConfigurationComplete(cfg) {
		logger.Debug("configuration incomplete, skipping control box selection",
			zap.String("model_id", cfg.ModelID),
			zap.Int("basin_count", len(cfg.Basins)))
		return nil
	}

	controlBoxID := cfg.ControlBoxID
	if controlBoxID == "" {
		eDrain, eSink := rules.CountBasinMix(cfg.Basins)
		id, ok := rules.ControlBoxForBasinMix(eDrain, eSink)
		if !ok {
			logger.Warn("no control box matches basin combination",
				zap.Int("edrain_count", eDrain),
				zap.Int("esink_count", eSink))
			return nil
		}
		controlBoxID = id
	}

	if components, ok := s.config.ControlBoxComponents[controlBoxID]; ok {
		return s.expandDynamicControlBox(ctx, expander, visited, controlBoxID, components, out)
	}

	if err := expander.Expand(ctx, controlBoxID, 1, entities.CategoryControlBox, visited, 0, out); err != nil {
		return fmt.Errorf("expanding control box %s: %w", controlBoxID, err)
	}
	return nil
}

// expandDynamicControlBox builds a control box line from the injected
// per-model component list, bypassing the catalog definition of the box
// itself. The component entries still resolve through the expander so
// their names and nested structure come from the catalog.
func (s *Service) expandDynamicControlBox(
	ctx context.Context,
	expander *Expander,
	visited map[visitKey]bool,
	controlBoxID entities.ItemID,
	components []DynamicComponent,
	out *[]*entities.BOMItem,
) error {
	name := "Control Box " + string(controlBoxID)
	assembly, err := s.catalog.GetAssemblyByID(ctx, controlBoxID)
	switch {
	case err == nil:
		name = assembly.Name
	case !errors.Is(err, entities.ErrNotFound):
		return &entities.RepositoryError{Op: "get assembly", ID: controlBoxID, Err: err}
	}

	item := &entities.BOMItem{
		ID:       controlBoxID,
		Name:     name,
		Quantity: 1,
		Category: entities.CategoryControlBox,
		ItemType: entities.AssemblyTypeComplex.String(),
	}
	for _, component := range components {
		err := expander.Expand(ctx, component.ID, component.Quantity, entities.CategoryPart, visited, 1, &item.Children)
		if err != nil {
			return fmt.Errorf("expanding control box %s component %s: %w", controlBoxID, component.ID, err)
		}
	}
	*out = append(*out, item)
	return nil
}

// expandFaucetsAndSprayers expands the DI auto-selected faucets, the
// user-selected faucets, and the sprayers. Legacy single-object shapes
// were already folded into the arrays by Normalize.
func (s *Service) expandFaucetsAndSprayers(
	ctx context.Context,
	expander *Expander,
	visited map[visitKey]bool,
	cfg *entities.SinkConfiguration,
	out *[]*entities.BOMItem,
) error {
	if autoQty := rules.AutoFaucetQuantity(cfg.Basins); autoQty > 0 {
		err := expander.Expand(ctx, rules.DIGooseneckFaucetID, autoQty, entities.CategoryFaucet, visited, 0, out)
		if err != nil {
			return fmt.Errorf("expanding DI gooseneck faucet: %w", err)
		}
	}

	for _, faucet := range cfg.Faucets {
		if faucet.FaucetTypeID == "" {
			continue
		}
		qty := faucet.Quantity
		if qty <= 0 {
			qty = 1
		}
		if err := expander.Expand(ctx, faucet.FaucetTypeID, qty, entities.CategoryFaucet, visited, 0, out); err != nil {
			return fmt.Errorf("expanding faucet %s: %w", faucet.FaucetTypeID, err)
		}
	}

	for _, sprayer := range cfg.Sprayers {
		if sprayer.SprayerTypeID == "" {
			continue
		}
		qty := sprayer.Quantity
		if qty <= 0 {
			qty = 1
		}
		if err := expander.Expand(ctx, sprayer.SprayerTypeID, qty, entities.CategorySprayer, visited, 0, out); err != nil {
			return fmt.Errorf("expanding sprayer %s: %w", sprayer.SprayerTypeID, err)
		}
	}
	return nil
}
