// Package fallback provides the resource-backed catalog fallback: a
// generic-to-specific identifier mapping and a static assemblies-by-id
// table, loaded once at construction and held for the process lifetime.
// The provider is explicitly constructed and injected so tests can
// substitute their own data without touching global state.
package fallback

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/torvan-medical/cleanstation-bom/pkg/domain/entities"
	"github.com/torvan-medical/cleanstation-bom/pkg/domain/repositories"
)

//go:embed resources/generic_mappings.json
var defaultGenericMappings []byte

//go:embed resources/fallback_assemblies.json
var defaultFallbackAssemblies []byte

// assemblyResource is the JSON shape of a static assembly definition
type assemblyResource struct {
	ID         entities.ItemID `json:"id"`
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Components []struct {
		ChildPartID     entities.ItemID   `json:"childPartId,omitempty"`
		ChildAssemblyID entities.ItemID   `json:"childAssemblyId,omitempty"`
		Quantity        entities.Quantity `json:"quantity"`
		Notes           string            `json:"notes,omitempty"`
	} `json:"components"`
}

// Provider serves catalog misses from static resource data
type Provider struct {
	genericMappings map[entities.ItemID]entities.ItemID
	assemblies      map[entities.ItemID]entities.Assembly
}

// Verify interface compliance
var _ repositories.FallbackProvider = (*Provider)(nil)

// NewDefaultProvider loads the resource tables embedded in the binary
func NewDefaultProvider() (*Provider, error) {
	return newFromBytes(defaultGenericMappings, defaultFallbackAssemblies)
}

// NewProviderFromFiles loads the resource tables from JSON files on disk
func NewProviderFromFiles(genericPath, assembliesPath string) (*Provider, error) {
	genericData, err := os.ReadFile(genericPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read generic mappings %s: %w", genericPath, err)
	}
	assemblyData, err := os.ReadFile(assembliesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read fallback assemblies %s: %w", assembliesPath, err)
	}
	return newFromBytes(genericData, assemblyData)
}

// NewStaticProvider builds a provider directly from maps; intended for tests
func NewStaticProvider(
	genericMappings map[entities.ItemID]entities.ItemID,
	assemblies []entities.Assembly,
) *Provider {
	p := &Provider{
		genericMappings: make(map[entities.ItemID]entities.ItemID, len(genericMappings)),
		assemblies:      make(map[entities.ItemID]entities.Assembly, len(assemblies)),
	}
	for generic, specific := range genericMappings {
		p.genericMappings[generic] = specific
	}
	for _, assembly := range assemblies {
		p.assemblies[assembly.ID] = assembly
	}
	return p
}

func newFromBytes(genericData, assemblyData []byte) (*Provider, error) {
	var raw map[string]string
	if err := json.Unmarshal(genericData, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse generic mappings: %w", err)
	}

	var resources []assemblyResource
	if err := json.Unmarshal(assemblyData, &resources); err != nil {
		return nil, fmt.Errorf("failed to parse fallback assemblies: %w", err)
	}

	p := &Provider{
		genericMappings: make(map[entities.ItemID]entities.ItemID, len(raw)),
		assemblies:      make(map[entities.ItemID]entities.Assembly, len(resources)),
	}
	for generic, specific := range raw {
		p.genericMappings[entities.ItemID(generic)] = entities.ItemID(specific)
	}
	for _, resource := range resources {
		assemblyType, err := entities.ParseAssemblyType(resource.Type)
		if err != nil {
			return nil, fmt.Errorf("fallback assembly %s: %w", resource.ID, err)
		}
		links := make([]entities.ComponentLink, 0, len(resource.Components))
		for _, component := range resource.Components {
			links = append(links, entities.ComponentLink{
				ChildPartID:     component.ChildPartID,
				ChildAssemblyID: component.ChildAssemblyID,
				Quantity:        component.Quantity,
				Notes:           component.Notes,
			})
		}
		p.assemblies[resource.ID] = entities.Assembly{
			ID:         resource.ID,
			Name:       resource.Name,
			Type:       assemblyType,
			Components: links,
		}
	}
	return p, nil
}

// ResolveGeneric maps a generic identifier to a specific catalog identifier
func (p *Provider) ResolveGeneric(id entities.ItemID) (entities.ItemID, bool) {
	specific, ok := p.genericMappings[id]
	return specific, ok
}

// GetAssembly returns a static assembly definition by identifier
func (p *Provider) GetAssembly(id entities.ItemID) (*entities.Assembly, bool) {
	assembly, ok := p.assemblies[id]
	if !ok {
		return nil, false
	}
	return &assembly, true
}
