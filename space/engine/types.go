package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadDimensions indicates a space dimension string that is not of the
// form "WIDTHxHEIGHT" with both sides positive.
var ErrBadDimensions = errors.New("invalid dimensions")

// Position is a cell coordinate inside a space. Coordinates are
// zero-based; a position is in bounds when 0 <= X < width and
// 0 <= Y < height.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// StaticElement is an element placed on the space map at creation time.
// Elements never move and block spawn placement.
type StaticElement struct {
	ElementID string `json:"elementId"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
}

// SpaceSnapshot is the immutable descriptor of one space, fetched from
// the metadata service when the first session joins. It is shared by
// reference across all sessions of a room and must never be mutated
// after construction.
type SpaceSnapshot struct {
	ID       string
	Width    int
	Height   int
	Elements []StaticElement

	static map[Position]bool
}

// NewSpaceSnapshot builds a snapshot with a precomputed static-element
// index so spawn scans do not have to walk the element list per cell.
func NewSpaceSnapshot(id string, width, height int, elements []StaticElement) *SpaceSnapshot {
	static := make(map[Position]bool, len(elements))
	for _, el := range elements {
		static[Position{X: el.X, Y: el.Y}] = true
	}
	return &SpaceSnapshot{
		ID:       id,
		Width:    width,
		Height:   height,
		Elements: elements,
		static:   static,
	}
}

// InBounds reports whether the position lies inside the space.
func (s *SpaceSnapshot) InBounds(p Position) bool {
	return p.X >= 0 && p.X < s.Width && p.Y >= 0 && p.Y < s.Height
}

// HasStaticElement reports whether a static element occupies the cell.
func (s *SpaceSnapshot) HasStaticElement(p Position) bool {
	return s.static[p]
}

// ParseDimensions parses the "WIDTHxHEIGHT" dimension string used by the
// space metadata service (for example "100x200").
func ParseDimensions(dims string) (width, height int, err error) {
	parts := strings.Split(dims, "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadDimensions, dims)
	}
	width, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadDimensions, dims)
	}
	height, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadDimensions, dims)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadDimensions, dims)
	}
	return width, height, nil
}
