package entities

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by catalog repositories when an identifier does
// not exist. The expander treats it as a data-quality signal, never as a
// fatal error; any other repository error aborts the generation.
var ErrNotFound = errors.New("catalog item not found")

// ErrPartNumberCollision is returned when a synthesized custom part number
// would shadow an existing catalog identifier.
var ErrPartNumberCollision = errors.New("custom part number collides with catalog")

// ValidationError reports an order configuration the engine refuses to
// expand. It is fatal to the whole generation call.
type ValidationError struct {
	Field       string
	BuildNumber string
	Message     string
}

func (e *ValidationError) Error() string {
	if e.BuildNumber != "" {
		return fmt.Sprintf("invalid order configuration: build %s: %s: %s", e.BuildNumber, e.Field, e.Message)
	}
	return fmt.Sprintf("invalid order configuration: %s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for an order-level field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NewBuildValidationError creates a ValidationError scoped to one build number
func NewBuildValidationError(buildNumber, field, message string) *ValidationError {
	return &ValidationError{BuildNumber: buildNumber, Field: field, Message: message}
}

// DepthExceededError reports an expansion that passed the hard recursion
// ceiling: a catalog cycle the dedupe failed to catch, or pathological
// nesting. Fatal.
type DepthExceededError struct {
	ID    ItemID
	Depth int
}

func (e *DepthExceededError) Error() string {
	return fmt.Sprintf("expansion of %s exceeded maximum recursion depth %d", e.ID, e.Depth)
}

// RepositoryError wraps an unexpected catalog repository failure with the
// identifier being resolved at the time. Fatal.
type RepositoryError struct {
	Op  string
	ID  ItemID
	Err error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("catalog repository %s %s: %v", e.Op, e.ID, e.Err)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}
