// Package custompart generates deterministic, parseable part numbers for
// dimensionally custom pegboards and basins that have no catalog entry.
package custompart

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/torvan-medical/cleanstation-bom/pkg/domain/entities"
	"github.com/torvan-medical/cleanstation-bom/pkg/domain/repositories"
)

// Custom part number prefixes
const (
	PegboardPrefix = "T2-CUSTOM-PB"
	BasinPrefix    = "T2-CUSTOM-BSN"
)

// MaxDimension bounds any single custom dimension in inches
const MaxDimension = 999

var (
	pegboardPattern = regexp.MustCompile(`^T2-CUSTOM-PB-(\d{1,3})X(\d{1,3})$`)
	basinPattern    = regexp.MustCompile(`^T2-CUSTOM-BSN-(\d{1,3})X(\d{1,3})X(\d{1,3})$`)
)

// Kind distinguishes the custom part families
type Kind int

const (
	KindPegboard Kind = iota
	KindBasin
)

// String method for Kind enum
func (k Kind) String() string {
	switch k {
	case KindPegboard:
		return "Pegboard"
	case KindBasin:
		return "Basin"
	default:
		return "Unknown"
	}
}

// Info is the parsed form of a custom part number
type Info struct {
	Kind   Kind
	Width  int
	Length int
	Depth  int // zero for pegboards
}

// Synthesizer generates and validates custom part numbers, checking each
// generated identifier against the standard catalog so a custom part never
// shadows a real part number.
type Synthesizer struct {
	catalog repositories.CatalogRepository
}

// NewSynthesizer creates a Synthesizer backed by the given catalog
func NewSynthesizer(catalog repositories.CatalogRepository) *Synthesizer {
	return &Synthesizer{catalog: catalog}
}

// PegboardID generates the part number for a custom pegboard of the given
// integer dimensions. Fails on invalid dimensions or a catalog collision.
func (s *Synthesizer) PegboardID(ctx context.Context, width, length int) (entities.ItemID, error) {
	if err := checkDimension("width", width); err != nil {
		return "", err
	}
	if err := checkDimension("length", length); err != nil {
		return "", err
	}
	id := entities.ItemID(fmt.Sprintf("%s-%dX%d", PegboardPrefix, width, length))
	if !pegboardPattern.MatchString(string(id)) {
		return "", fmt.Errorf("generated pegboard part number %s failed validation", id)
	}
	if err := s.checkCollision(ctx, id); err != nil {
		return "", err
	}
	return id, nil
}

// BasinID generates the part number for a custom basin of the given
// integer dimensions. Fails on invalid dimensions or a catalog collision.
func (s *Synthesizer) BasinID(ctx context.Context, width, length, depth int) (entities.ItemID, error) {
	if err := checkDimension("width", width); err != nil {
		return "", err
	}
	if err := checkDimension("length", length); err != nil {
		return "", err
	}
	if err := checkDimension("depth", depth); err != nil {
		return "", err
	}
	id := entities.ItemID(fmt.Sprintf("%s-%dX%dX%d", BasinPrefix, width, length, depth))
	if !basinPattern.MatchString(string(id)) {
		return "", fmt.Errorf("generated basin part number %s failed validation", id)
	}
	if err := s.checkCollision(ctx, id); err != nil {
		return "", err
	}
	return id, nil
}

// checkCollision verifies the generated identifier does not already exist
// in the catalog, in either the part or the assembly namespace.
func (s *Synthesizer) checkCollision(ctx context.Context, id entities.ItemID) error {
	if _, err := s.catalog.GetPartByID(ctx, id); err == nil {
		return fmt.Errorf("%w: part %s", entities.ErrPartNumberCollision, id)
	} else if !errors.Is(err, entities.ErrNotFound) {
		return &entities.RepositoryError{Op: "get part", ID: id, Err: err}
	}
	if _, err := s.catalog.GetAssemblyByID(ctx, id); err == nil {
		return fmt.Errorf("%w: assembly %s", entities.ErrPartNumberCollision, id)
	} else if !errors.Is(err, entities.ErrNotFound) {
		return &entities.RepositoryError{Op: "get assembly", ID: id, Err: err}
	}
	return nil
}

// checkDimension validates one integer dimension
func checkDimension(name string, value int) error {
	if value <= 0 {
		return fmt.Errorf("custom part %s must be positive, got %d", name, value)
	}
	if value > MaxDimension {
		return fmt.Errorf("custom part %s must be at most %d, got %d", name, MaxDimension, value)
	}
	return nil
}

// Parse is the inverse of the generators: it recovers the kind and
// dimensions from a custom part number.
func Parse(id entities.ItemID) (*Info, error) {
	if m := pegboardPattern.FindStringSubmatch(string(id)); m != nil {
		width, _ := strconv.Atoi(m[1])
		length, _ := strconv.Atoi(m[2])
		return &Info{Kind: KindPegboard, Width: width, Length: length}, nil
	}
	if m := basinPattern.FindStringSubmatch(string(id)); m != nil {
		width, _ := strconv.Atoi(m[1])
		length, _ := strconv.Atoi(m[2])
		depth, _ := strconv.Atoi(m[3])
		return &Info{Kind: KindBasin, Width: width, Length: length, Depth: depth}, nil
	}
	return nil, fmt.Errorf("not a custom part number: %s", id)
}

// IsCustomID reports whether an identifier belongs to the custom part
// number families.
func IsCustomID(id entities.ItemID) bool {
	return strings.HasPrefix(string(id), PegboardPrefix+"-") ||
		strings.HasPrefix(string(id), BasinPrefix+"-")
}

// DisplayName formats a human-readable name for a custom part number
func DisplayName(info *Info) string {
	switch info.Kind {
	case KindBasin:
		return fmt.Sprintf("Custom Basin %d\" x %d\" x %d\"", info.Width, info.Length, info.Depth)
	default:
		return fmt.Sprintf("Custom Pegboard %d\" x %d\"", info.Width, info.Length)
	}
}
