// Package valueobject contains value objects that represent concepts without identity.
// Value objects are immutable and compared by their attributes rather than identity.
// They encapsulate validation logic and ensure data integrity.
//
// Value Objects follow these principles:
//   - Immutability: Once created, they cannot be changed.
//   - Equality: Two value objects are equal if all their attributes are equal.
//   - Self-validation: They validate their own data upon creation.
//   - Side-effect free: Methods return new instances rather than modifying state
package valueobject

import (
	"errors"
	"fmt"
)

// Measurement bounds enforced at construction time.
// Dimensions are centimeters, weight is kilograms.
const (
	MinDimension = 0.01
	MaxDimension = 1000.0
	MaxWeight    = 1000.0
)

// Product errors define domain-specific error conditions.
var (
	ErrDimensionOutOfRange = errors.New("product dimension must be between 0.01 and 1000 cm")
	ErrWeightOutOfRange    = errors.New("product weight must be positive and at most 1000 kg")
)

// Product represents a single physical item to be shipped.
// It is immutable once constructed; construction fails if any
// measurement falls outside the supported bounds.
//
// Example usage:
//
//	p, err := valueobject.NewProduct(20, 10, 30, 1.5)
type Product struct {
	width  float64
	height float64
	length float64
	weight float64
}

// NewProduct creates a new Product value object.
//
// Parameters:
//   - width: Width in centimeters
//   - height: Height in centimeters
//   - length: Length in centimeters
//   - weight: Weight in kilograms
//
// Returns:
//   - Product: the created Product value object
//   - error: ErrDimensionOutOfRange or ErrWeightOutOfRange if a bound is violated
func NewProduct(width, height, length, weight float64) (Product, error) {
	for _, d := range [3]float64{width, height, length} {
		if d < MinDimension || d > MaxDimension {
			return Product{}, ErrDimensionOutOfRange
		}
	}
	if weight <= 0 || weight > MaxWeight {
		return Product{}, ErrWeightOutOfRange
	}

	return Product{
		width:  width,
		height: height,
		length: length,
		weight: weight,
	}, nil
}

// Width returns the width in centimeters.
func (p Product) Width() float64 { return p.width }

// Height returns the height in centimeters.
func (p Product) Height() float64 { return p.height }

// Length returns the length in centimeters.
func (p Product) Length() float64 { return p.length }

// Weight returns the weight in kilograms.
func (p Product) Weight() float64 { return p.weight }

// SortedDims returns the three dimensions sorted ascending.
// The triple is rotation-invariant: any axis relabeling of the same
// physical item produces the same result.
//
// Returns:
//   - [3]float64: dimensions in ascending order
func (p Product) SortedDims() [3]float64 {
	return sortTriple(p.width, p.height, p.length)
}

// Volume calculates the volume in cubic centimeters.
//
// Returns:
//   - float64: volume in cm³
func (p Product) Volume() float64 {
	return p.width * p.height * p.length
}

// String returns a formatted string representation.
//
// Returns:
//   - string: formatted product (e.g., "10.0x20.0x30.0 cm, 1.50 kg")
func (p Product) String() string {
	return fmt.Sprintf("%.1fx%.1fx%.1f cm, %.2f kg", p.width, p.height, p.length, p.weight)
}

// sortTriple sorts three values ascending without allocating.
func sortTriple(a, b, c float64) [3]float64 {
	if a > b {
		a, b = b, a
	}
	if b > c {
		b, c = c, b
	}
	if a > b {
		a, b = b, a
	}
	return [3]float64{a, b, c}
}
