package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/gridverse/spacesync/space/engine"
)

var (
	// ErrSpaceNotFound indicates the space identifier is unknown to the
	// metadata source. Joins against it are rejected locally; the
	// connection stays open.
	ErrSpaceNotFound = errors.New("space not found")

	// ErrInvalidSpace indicates a space definition that exists but does
	// not parse or violates its own dimensions.
	ErrInvalidSpace = errors.New("invalid space definition")
)

// Directory looks up the descriptor for a space. Implementations must be
// safe for concurrent use; lookups happen outside any room's critical
// section.
type Directory interface {
	Describe(ctx context.Context, spaceID string) (*engine.SpaceSnapshot, error)
}

// SpaceDefinition mirrors the JSON schema for a space, both in local
// definition files and in the metadata service's responses.
type SpaceDefinition struct {
	Name       string                 `json:"name"`
	Dimensions string                 `json:"dimensions"`
	Elements   []engine.StaticElement `json:"elements"`
}

// Snapshot converts a definition into the immutable snapshot handed to
// rooms, validating dimensions and element bounds.
func (d *SpaceDefinition) Snapshot(spaceID string) (*engine.SpaceSnapshot, error) {
	width, height, err := engine.ParseDimensions(d.Dimensions)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpace, err)
	}
	snap := engine.NewSpaceSnapshot(spaceID, width, height, d.Elements)
	for _, el := range d.Elements {
		if !snap.InBounds(engine.Position{X: el.X, Y: el.Y}) {
			return nil, fmt.Errorf("%w: element %s outside dimensions", ErrInvalidSpace, el.ElementID)
		}
	}
	return snap, nil
}
