package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vietlong/booking-api/internal/domain/user"
	"github.com/vietlong/booking-api/internal/pkg/response"
	"github.com/vietlong/booking-api/internal/pkg/validator"
)

// Handler handles admin panel HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates admin handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Dashboard handles GET /admin/dashboard
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Dashboard(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, stats)
}

// ListUsers handles GET /admin/users?page=&limit=
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, total, err := h.service.ListUsers(r.Context(), page, limit)
	if err != nil {
		response.InternalError(w)
		return
	}

	out := make([]*user.ProfileResponse, 0, len(users))
	for _, u := range users {
		out = append(out, user.ToProfileResponse(u, ""))
	}

	response.WithMeta(w, out, response.NewMeta(total, page, limit))
}

// GetUser handles GET /admin/users/{id}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	u, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		h.writeUserError(w, err)
		return
	}

	response.OK(w, user.ToProfileResponse(u, ""))
}

// CreateUser handles POST /admin/users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	u, err := h.service.CreateUser(r.Context(), &req)
	if err != nil {
		if errors.Is(err, user.ErrEmailAlreadyUsed) {
			response.Conflict(w, "EMAIL_TAKEN", "Email is already registered")
			return
		}
		response.InternalError(w)
		return
	}

	response.Created(w, user.ToProfileResponse(u, ""))
}

// UpdateUser handles PUT /admin/users/{id}
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	u, err := h.service.UpdateUser(r.Context(), id, &req)
	if err != nil {
		h.writeUserError(w, err)
		return
	}

	response.OK(w, user.ToProfileResponse(u, ""))
}

// ChangeRole handles PUT /admin/users/{id}/role
func (h *Handler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req ChangeRoleRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := h.service.ChangeRole(r.Context(), id, req.Role); err != nil {
		h.writeUserError(w, err)
		return
	}

	response.OK(w, map[string]string{"message": "Role updated"})
}

// SetBanned handles PUT /admin/users/{id}/ban
func (h *Handler) SetBanned(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req SetBannedRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if err := h.service.SetBanned(r.Context(), id, req.Banned); err != nil {
		h.writeUserError(w, err)
		return
	}

	response.OK(w, map[string]bool{"banned": req.Banned})
}

// DeleteUser handles DELETE /admin/users/{id}
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		h.writeUserError(w, err)
		return
	}

	response.NoContent(w)
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) writeUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrNotFound):
		response.NotFound(w, "User not found")
	case errors.Is(err, user.ErrInvalidRole):
		response.BadRequest(w, "Invalid role")
	case errors.Is(err, user.ErrCannotDeleteAdmin):
		response.Forbidden(w, "Admin accounts cannot be modified this way")
	default:
		response.InternalError(w)
	}
}
