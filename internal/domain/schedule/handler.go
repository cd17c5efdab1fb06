package schedule

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vietlong/booking-api/internal/middleware"
	"github.com/vietlong/booking-api/internal/pkg/response"
	"github.com/vietlong/booking-api/internal/pkg/validator"
)

// Handler handles schedule HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates schedule handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListAvailable handles GET /schedules/available?serviceId=
func (h *Handler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	serviceID, err := uuid.Parse(r.URL.Query().Get("serviceId"))
	if err != nil {
		response.BadRequest(w, "Invalid service ID")
		return
	}

	schedules, err := h.service.ListAvailable(r.Context(), serviceID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, ToResponseList(schedules))
}

// Get handles GET /schedules/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid schedule ID")
		return
	}

	sched, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeScheduleError(w, err)
		return
	}

	response.OK(w, ToResponse(sched))
}

// ListByService handles GET /provider/schedules?serviceId=
func (h *Handler) ListByService(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	serviceID, err := uuid.Parse(r.URL.Query().Get("serviceId"))
	if err != nil {
		response.BadRequest(w, "Invalid service ID")
		return
	}

	schedules, err := h.service.ListByService(r.Context(), ownerID, serviceID)
	if err != nil {
		h.writeScheduleError(w, err)
		return
	}

	response.OK(w, ToResponseList(schedules))
}

// Create handles POST /provider/schedules
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	var req CreateScheduleRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	created, skipped, err := h.service.Create(r.Context(), ownerID, &req)
	if err != nil {
		h.writeScheduleError(w, err)
		return
	}

	response.Created(w, &CreateSeriesResponse{
		Created: ToResponseList(created),
		Skipped: skipped,
	})
}

// Update handles PUT /provider/schedules/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid schedule ID")
		return
	}

	var req UpdateScheduleRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	sched, err := h.service.Update(r.Context(), id, ownerID, &req)
	if err != nil {
		h.writeScheduleError(w, err)
		return
	}

	response.OK(w, ToResponse(sched))
}

// Delete handles DELETE /provider/schedules/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid schedule ID")
		return
	}

	if err := h.service.Delete(r.Context(), id, ownerID); err != nil {
		h.writeScheduleError(w, err)
		return
	}

	response.NoContent(w)
}

func (h *Handler) writeScheduleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, "Schedule not found")
	case errors.Is(err, ErrNotOwner):
		response.Forbidden(w, "You do not own this schedule")
	case errors.Is(err, ErrOverlap):
		response.Conflict(w, "SCHEDULE_OVERLAP", "Slot overlaps an existing schedule")
	case errors.Is(err, ErrHasBookings):
		response.Conflict(w, "SCHEDULE_BOOKED", "Slot already has bookings")
	case errors.Is(err, ErrInvalidTimeRange):
		response.BadRequest(w, "End time must be after start time")
	case errors.Is(err, ErrInPast):
		response.BadRequest(w, "Schedule cannot start in the past")
	default:
		response.InternalError(w)
	}
}
