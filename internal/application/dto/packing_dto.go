package dto

import (
	"errors"
	"net/http"

	"github.com/hapkiduki/boxpick-go/internal/domain/entity"
)

// ProductPayload is one product in a resolve request.
type ProductPayload struct {
	// Width in centimeters.
	Width float64 `json:"width"`

	// Height in centimeters.
	Height float64 `json:"height"`

	// Length in centimeters.
	Length float64 `json:"length"`

	// Weight in kilograms.
	Weight float64 `json:"weight"`
}

// ResolveBoxRequest is the payload for the box resolution endpoint.
type ResolveBoxRequest struct {
	// Products is the set of products to ship together.
	Products []ProductPayload `json:"products"`
}

// Bind implements render.Binder for ResolveBoxRequest.
// Per-product bound checks happen in the handler through the domain
// constructors; here only the request shape is validated.
func (r *ResolveBoxRequest) Bind(_ *http.Request) error {
	if len(r.Products) == 0 {
		return errors.New("products must be a non-empty list")
	}
	return nil
}

// CreateBoxRequest is the payload for creating a catalog box.
type CreateBoxRequest struct {
	// Width in centimeters.
	Width float64 `json:"width"`

	// Height in centimeters.
	Height float64 `json:"height"`

	// Length in centimeters.
	Length float64 `json:"length"`

	// MaxWeight is the maximum load in kilograms.
	MaxWeight float64 `json:"max_weight"`
}

// Bind implements render.Binder for CreateBoxRequest. Measurement
// bounds are enforced by the domain constructor, not here.
func (r *CreateBoxRequest) Bind(_ *http.Request) error {
	return nil
}

// BoxResponse is the API representation of a catalog box.
type BoxResponse struct {
	// ID is the catalog identifier.
	ID int64 `json:"id"`

	// Width in centimeters.
	Width float64 `json:"width"`

	// Height in centimeters.
	Height float64 `json:"height"`

	// Length in centimeters.
	Length float64 `json:"length"`

	// MaxWeight is the maximum load in kilograms.
	MaxWeight float64 `json:"max_weight"`

	// Volume in cubic centimeters.
	Volume float64 `json:"volume"`
}

// NewBoxResponse maps a box entity to its API representation.
//
// Parameters:
//   - box: the box to map (must carry an identifier)
//
// Returns:
//   - BoxResponse: the API representation
func NewBoxResponse(box entity.Box) BoxResponse {
	var id int64
	if box.ID != nil {
		id = *box.ID
	}
	return BoxResponse{
		ID:        id,
		Width:     box.Width,
		Height:    box.Height,
		Length:    box.Length,
		MaxWeight: box.MaxWeight,
		Volume:    box.Volume(),
	}
}
