// Package entity contains the core business entities of the domain layer.
package entity

import (
	"errors"
	"fmt"

	"github.com/hapkiduki/boxpick-go/internal/domain/valueobject"
)

// Box errors define domain-specific error conditions for boxes.
var (
	ErrInvalidBoxDimension = errors.New("box dimensions must be strictly positive")
	ErrInvalidBoxMaxWeight = errors.New("box max weight must be strictly positive")
)

// Box represents a shipping box available in the catalog.
// Boxes are immutable after construction. The identifier is optional:
// a box loaded from the catalog carries one, while a box constructed
// ad hoc (e.g., in tests for the heuristic stage) may not.
type Box struct {
	// ID is the catalog identifier, nil when the box is not persisted.
	ID *int64 `json:"id,omitempty"`

	// Width in centimeters.
	Width float64 `json:"width"`

	// Height in centimeters.
	Height float64 `json:"height"`

	// Length in centimeters.
	Length float64 `json:"length"`

	// MaxWeight is the maximum load in kilograms.
	MaxWeight float64 `json:"max_weight"`
}

// NewBox creates a new Box entity without an identifier.
//
// Parameters:
//   - width: Width in centimeters (must be positive)
//   - height: Height in centimeters (must be positive)
//   - length: Length in centimeters (must be positive)
//   - maxWeight: Maximum load in kilograms (must be positive)
//
// Returns:
//   - Box: the created box
//   - error: validation error if any measurement is not strictly positive
func NewBox(width, height, length, maxWeight float64) (Box, error) {
	if width <= 0 || height <= 0 || length <= 0 {
		return Box{}, ErrInvalidBoxDimension
	}
	if maxWeight <= 0 {
		return Box{}, ErrInvalidBoxMaxWeight
	}

	return Box{
		Width:     width,
		Height:    height,
		Length:    length,
		MaxWeight: maxWeight,
	}, nil
}

// NewBoxWithID creates a new Box entity carrying a catalog identifier.
//
// Parameters:
//   - id: catalog identifier
//   - width, height, length: dimensions in centimeters
//   - maxWeight: maximum load in kilograms
//
// Returns:
//   - Box: the created box
//   - error: validation error if any measurement is not strictly positive
func NewBoxWithID(id int64, width, height, length, maxWeight float64) (Box, error) {
	box, err := NewBox(width, height, length, maxWeight)
	if err != nil {
		return Box{}, err
	}
	box.ID = &id
	return box, nil
}

// Volume calculates the internal volume in cubic centimeters.
//
// Returns:
//   - float64: volume in cm³
func (b Box) Volume() float64 {
	return b.Width * b.Height * b.Length
}

// SortedDims returns the box dimensions sorted ascending, for
// rotation-invariant comparison against product triples.
//
// Returns:
//   - [3]float64: dimensions in ascending order
func (b Box) SortedDims() [3]float64 {
	dims := [3]float64{b.Width, b.Height, b.Length}
	if dims[0] > dims[1] {
		dims[0], dims[1] = dims[1], dims[0]
	}
	if dims[1] > dims[2] {
		dims[1], dims[2] = dims[2], dims[1]
	}
	if dims[0] > dims[1] {
		dims[0], dims[1] = dims[1], dims[0]
	}
	return dims
}

// CanHold reports whether a single product passes the rotation-invariant
// bounding check against this box. It says nothing about packing several
// products together; see the packing checkers for that.
//
// Parameters:
//   - p: the product to test
//
// Returns:
//   - bool: true if the product's sorted triple fits inside the box's
func (b Box) CanHold(p valueobject.Product) bool {
	bd := b.SortedDims()
	pd := p.SortedDims()
	return pd[0] <= bd[0] && pd[1] <= bd[1] && pd[2] <= bd[2]
}

// String returns a formatted string representation.
//
// Returns:
//   - string: formatted box (e.g., "box#4 40.0x30.0x20.0 cm, max 25.00 kg")
func (b Box) String() string {
	id := "-"
	if b.ID != nil {
		id = fmt.Sprintf("%d", *b.ID)
	}
	return fmt.Sprintf("box#%s %.1fx%.1fx%.1f cm, max %.2f kg", id, b.Width, b.Height, b.Length, b.MaxWeight)
}
