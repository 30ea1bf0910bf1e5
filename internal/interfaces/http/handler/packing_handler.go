// Package handler contains the HTTP handlers (driving adapters).
// Handlers translate between the HTTP wire format and the application
// services: all payload validation happens here, so the services only
// ever see well-formed domain objects.
package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	"github.com/hapkiduki/boxpick-go/internal/application/dto"
	"github.com/hapkiduki/boxpick-go/internal/application/port"
	"github.com/hapkiduki/boxpick-go/internal/application/service"
	"github.com/hapkiduki/boxpick-go/internal/domain/valueobject"
)

// PackingHandler serves the box resolution endpoint.
type PackingHandler struct {
	resolver *service.Resolver
	log      port.Logger
}

// NewPackingHandler creates a new PackingHandler.
//
// Parameters:
//   - resolver: the resolution service
//   - log: structured logger
//
// Returns:
//   - *PackingHandler: the handler
func NewPackingHandler(resolver *service.Resolver, log port.Logger) *PackingHandler {
	return &PackingHandler{resolver: resolver, log: log}
}

// Resolve handles POST /api/v1/packing/resolve.
//
// Responses:
//   - 200: the selected box
//   - 400: malformed request body or empty product list
//   - 422: one or more products violate the measurement bounds
//   - 404: no catalog box can hold the product set (a normal outcome,
//     distinct from malformed input)
func (h *PackingHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	payload := &dto.ResolveBoxRequest{}
	if err := render.Bind(r, payload); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, dto.NewErrorResponse[any]("BAD_REQUEST", err.Error()))
		return
	}

	products := make([]valueobject.Product, 0, len(payload.Products))
	var invalid []dto.ValidationError
	for i, p := range payload.Products {
		product, err := valueobject.NewProduct(p.Width, p.Height, p.Length, p.Weight)
		if err != nil {
			invalid = append(invalid, dto.ValidationError{
				Field:   fmt.Sprintf("products[%d]", i),
				Message: err.Error(),
			})
			continue
		}
		products = append(products, product)
	}
	if len(invalid) > 0 {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, dto.NewValidationErrorResponse[any](invalid))
		return
	}

	box, err := h.resolver.Resolve(r.Context(), products)
	if err != nil {
		h.log.WithContext(r.Context()).Error("Box resolution failed", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, dto.NewErrorResponse[any]("INTERNAL_ERROR", "Box resolution failed"))
		return
	}

	if box == nil {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, dto.NewErrorResponse[any]("NO_SUITABLE_BOX", "No box in the catalog can hold the given products"))
		return
	}

	render.JSON(w, r, dto.NewSuccessResponse(dto.NewBoxResponse(*box)))
}
