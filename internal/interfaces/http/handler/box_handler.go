package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/hapkiduki/boxpick-go/internal/application/dto"
	"github.com/hapkiduki/boxpick-go/internal/application/port"
	"github.com/hapkiduki/boxpick-go/internal/domain/entity"
	"github.com/hapkiduki/boxpick-go/internal/domain/repository"
)

// BoxHandler serves the box catalog administration endpoints.
// The resolution core treats the catalog as read-only; these endpoints
// exist so the catalog can be populated and inspected.
type BoxHandler struct {
	boxes repository.BoxRepository
	log   port.Logger
}

// NewBoxHandler creates a new BoxHandler.
//
// Parameters:
//   - boxes: the box catalog repository
//   - log: structured logger
//
// Returns:
//   - *BoxHandler: the handler
func NewBoxHandler(boxes repository.BoxRepository, log port.Logger) *BoxHandler {
	return &BoxHandler{boxes: boxes, log: log}
}

// Create handles POST /api/v1/boxes.
func (h *BoxHandler) Create(w http.ResponseWriter, r *http.Request) {
	payload := &dto.CreateBoxRequest{}
	if err := render.Bind(r, payload); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, dto.NewErrorResponse[any]("BAD_REQUEST", err.Error()))
		return
	}

	box, err := entity.NewBox(payload.Width, payload.Height, payload.Length, payload.MaxWeight)
	if err != nil {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, dto.NewErrorResponse[any]("VALIDATION_ERROR", err.Error()))
		return
	}

	if err := h.boxes.Create(r.Context(), &box); err != nil {
		h.log.WithContext(r.Context()).Error("Failed to create box", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, dto.NewErrorResponse[any]("INTERNAL_ERROR", "Failed to create box"))
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, dto.NewSuccessResponse(dto.NewBoxResponse(box)))
}

// GetByID handles GET /api/v1/boxes/{id}.
func (h *BoxHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, dto.NewErrorResponse[any]("BAD_REQUEST", "box id must be an integer"))
		return
	}

	box, err := h.boxes.FindByID(r.Context(), id)
	if err != nil {
		if repository.IsNotFoundError(err) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, dto.NewErrorResponse[any]("NOT_FOUND", "Box not found"))
			return
		}
		h.log.WithContext(r.Context()).Error("Failed to fetch box", "box_id", id, "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, dto.NewErrorResponse[any]("INTERNAL_ERROR", "Failed to fetch box"))
		return
	}

	render.JSON(w, r, dto.NewSuccessResponse(dto.NewBoxResponse(*box)))
}
