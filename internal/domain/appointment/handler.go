package appointment

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vietlong/booking-api/internal/middleware"
	"github.com/vietlong/booking-api/internal/pkg/response"
	"github.com/vietlong/booking-api/internal/pkg/validator"
)

// Handler handles appointment HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates appointment handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /appointments
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateAppointmentRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	d, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, ErrScheduleNotAvailable) {
			response.Conflict(w, "SCHEDULE_NOT_AVAILABLE",
				"The selected time slot is no longer available")
			return
		}
		response.InternalError(w)
		return
	}

	response.Created(w, ToResponse(d))
}

// ListMine handles GET /appointments/my, grouped by calendar day
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	details, err := h.service.ListMine(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, GroupByDate(details))
}

// GetMine handles GET /appointments/{id}
func (h *Handler) GetMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	d, err := h.service.GetMine(r.Context(), id, userID)
	if err != nil {
		h.writeAppointmentError(w, err)
		return
	}

	response.OK(w, ToResponse(d))
}

// CancelMine handles PUT /appointments/{id}/cancel
func (h *Handler) CancelMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	if err := h.service.CancelMine(r.Context(), id, userID); err != nil {
		h.writeAppointmentError(w, err)
		return
	}

	response.OK(w, map[string]string{"message": "Appointment cancelled"})
}

// ListForProvider handles GET /provider/appointments?providerId=&status=
func (h *Handler) ListForProvider(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	providerID, err := uuid.Parse(r.URL.Query().Get("providerId"))
	if err != nil {
		response.BadRequest(w, "Invalid provider ID")
		return
	}

	status := r.URL.Query().Get("status")
	if status != "" && !IsValidStatus(status) {
		response.BadRequest(w, "Invalid appointment status")
		return
	}

	details, err := h.service.ListForProvider(r.Context(), ownerID, providerID, Status(status))
	if err != nil {
		h.writeAppointmentError(w, err)
		return
	}

	response.OK(w, ToResponseList(details))
}

// Confirm handles PUT /provider/appointments/{id}/confirm
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.providerTransition(w, r, h.service.Confirm)
}

// Complete handles PUT /provider/appointments/{id}/complete
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	h.providerTransition(w, r, h.service.Complete)
}

// CancelForProvider handles PUT /provider/appointments/{id}/cancel
func (h *Handler) CancelForProvider(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	if err := h.service.CancelForProvider(r.Context(), id, ownerID); err != nil {
		h.writeAppointmentError(w, err)
		return
	}

	response.OK(w, map[string]string{"message": "Appointment cancelled"})
}

func (h *Handler) providerTransition(w http.ResponseWriter, r *http.Request,
	fn func(ctx context.Context, id, ownerID uuid.UUID) (*Detail, error)) {
	ownerID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	d, err := fn(r.Context(), id, ownerID)
	if err != nil {
		h.writeAppointmentError(w, err)
		return
	}

	response.OK(w, ToResponse(d))
}

func (h *Handler) writeAppointmentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, "Appointment not found")
	case errors.Is(err, ErrNotOwner):
		response.Forbidden(w, "You do not own this appointment")
	case errors.Is(err, ErrInvalidTransition):
		response.Conflict(w, "INVALID_TRANSITION", "Appointment status cannot change that way")
	default:
		response.InternalError(w)
	}
}
