package category

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vietlong/booking-api/internal/pkg/response"
	"github.com/vietlong/booking-api/internal/pkg/validator"
)

// Handler handles category HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates category handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListPublic handles GET /categories
func (h *Handler) ListPublic(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListPublic(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, ToResponseList(categories))
}

// ListAll handles GET /admin/categories
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListAll(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, ToResponseList(categories))
}

// Create handles POST /admin/categories
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	c, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrNameTaken) {
			response.Conflict(w, "NAME_TAKEN", "Category name already exists")
			return
		}
		response.InternalError(w)
		return
	}

	response.Created(w, ToResponse(c))
}

// Update handles PUT /admin/categories/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid category id")
		return
	}

	var req UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	c, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(w, "Category not found")
		case errors.Is(err, ErrNameTaken):
			response.Conflict(w, "NAME_TAKEN", "Category name already exists")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, ToResponse(c))
}

// Activate handles PUT /admin/categories/{id}/activate
func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

// Deactivate handles PUT /admin/categories/{id}/deactivate
func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

func (h *Handler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid category id")
		return
	}

	if err := h.service.SetActive(r.Context(), id, active); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Category not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]bool{"isActive": active})
}

// Delete handles DELETE /admin/categories/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid category id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(w, "Category not found")
		case errors.Is(err, ErrHasServices):
			response.Conflict(w, "CATEGORY_IN_USE", "Category still has services")
		default:
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}
