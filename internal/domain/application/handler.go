package application

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vietlong/booking-api/internal/domain/media"
	"github.com/vietlong/booking-api/internal/middleware"
	"github.com/vietlong/booking-api/internal/pkg/response"
	"github.com/vietlong/booking-api/internal/pkg/validator"
)

// Handler handles provider application HTTP requests
type Handler struct {
	service *Service
	media   *media.Service
}

// NewHandler creates application handler
func NewHandler(service *Service, mediaSvc *media.Service) *Handler {
	return &Handler{service: service, media: mediaSvc}
}

// Submit handles POST /provider-applications (multipart: form fields + optional license file)
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	applicantID := middleware.GetUserID(r.Context())

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	req := &SubmitApplicationRequest{
		BusinessName: r.FormValue("businessName"),
		Description:  r.FormValue("description"),
		Address:      r.FormValue("address"),
		Phone:        r.FormValue("phone"),
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	licenseKey, err := h.storeLicense(r, applicantID)
	if err != nil {
		h.writeMediaError(w, err)
		return
	}

	a, err := h.service.Submit(r.Context(), applicantID, req, licenseKey)
	if err != nil {
		if errors.Is(err, ErrAlreadyPending) {
			response.Conflict(w, "APPLICATION_PENDING", "You already have a pending application")
			return
		}
		response.InternalError(w)
		return
	}

	response.Created(w, h.service.ToResponse(a))
}

// ListMine handles GET /provider-applications/my
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	applicantID := middleware.GetUserID(r.Context())

	apps, err := h.service.ListMine(r.Context(), applicantID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, h.service.ToResponseList(apps))
}

// Update handles PUT /provider-applications/{id} (multipart, pending only)
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	applicantID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid application ID")
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	req := &SubmitApplicationRequest{
		BusinessName: r.FormValue("businessName"),
		Description:  r.FormValue("description"),
		Address:      r.FormValue("address"),
		Phone:        r.FormValue("phone"),
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	licenseKey, err := h.storeLicense(r, applicantID)
	if err != nil {
		h.writeMediaError(w, err)
		return
	}

	a, err := h.service.UpdateMine(r.Context(), id, applicantID, req, licenseKey)
	if err != nil {
		h.writeApplicationError(w, err)
		return
	}

	response.OK(w, h.service.ToResponse(a))
}

// Withdraw handles DELETE /provider-applications/{id} (pending only)
func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	applicantID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid application ID")
		return
	}

	if err := h.service.Withdraw(r.Context(), id, applicantID); err != nil {
		h.writeApplicationError(w, err)
		return
	}

	response.NoContent(w)
}

// ListByStatus handles GET /admin/provider-applications?status=&page=&limit=
func (h *Handler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = string(StatusPending)
	}
	if !IsValidStatus(status) {
		response.BadRequest(w, "Invalid application status")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	apps, total, err := h.service.ListByStatus(r.Context(), Status(status), page, limit)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.WithMeta(w, h.service.ToResponseList(apps), response.NewMeta(total, page, limit))
}

// Get handles GET /admin/provider-applications/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid application ID")
		return
	}

	a, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeApplicationError(w, err)
		return
	}

	response.OK(w, h.service.ToResponse(a))
}

// Approve handles PUT /admin/provider-applications/{id}/approve
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	reviewerID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid application ID")
		return
	}

	p, err := h.service.Approve(r.Context(), id, reviewerID)
	if err != nil {
		h.writeApplicationError(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"message":    "Application approved",
		"providerId": p.ID,
	})
}

// Reject handles PUT /admin/provider-applications/{id}/reject
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	reviewerID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid application ID")
		return
	}

	var req RejectApplicationRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := h.service.Reject(r.Context(), id, reviewerID, req.Reason); err != nil {
		h.writeApplicationError(w, err)
		return
	}

	response.OK(w, map[string]string{"message": "Application rejected"})
}

func (h *Handler) storeLicense(r *http.Request, ownerID uuid.UUID) (string, error) {
	file, header, err := r.FormFile("license")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", err
	}
	defer file.Close()

	upload, err := h.media.Store(r.Context(), ownerID, media.KindLicense,
		header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		return "", err
	}
	return upload.Key, nil
}

func (h *Handler) writeApplicationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, "Application not found")
	case errors.Is(err, ErrNotApplicant):
		response.Forbidden(w, "You do not own this application")
	case errors.Is(err, ErrAlreadyReviewed):
		response.Conflict(w, "APPLICATION_REVIEWED", "Application has already been reviewed")
	default:
		response.InternalError(w)
	}
}

func (h *Handler) writeMediaError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, media.ErrInvalidFileType):
		response.BadRequest(w, "Unsupported file type")
	case errors.Is(err, media.ErrFileTooLarge):
		response.BadRequest(w, "File exceeds maximum size")
	default:
		response.InternalError(w)
	}
}
